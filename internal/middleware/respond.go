package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError writes the API's JSON error shape. Middleware that rejects a
// request before routing uses it so clients see one format everywhere.
func writeError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": code})
}
