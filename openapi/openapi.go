// Package openapi embeds the OpenAPI description of the RoamLog API.
// The server publishes it at /openapi.yaml.
package openapi

import (
	_ "embed"
	"net/http"
	"strconv"
)

// Document contains the raw bytes of openapi.yaml, embedded at compile time.
// Serving it from the binary keeps the document and the running code in step.
//
//go:embed openapi.yaml
var Document []byte

// Handler serves Document as YAML.
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Header().Set("Content-Length", strconv.Itoa(len(Document)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(Document)
	})
}
