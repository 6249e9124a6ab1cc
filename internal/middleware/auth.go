package middleware

import (
	"net/http"

	"github.com/pkordes/roamlog/backend/internal/auth"
	"github.com/pkordes/roamlog/backend/internal/domain"
)

// TokenVerifier checks a session token. *auth.Tokens implements it.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// RequireAuth rejects requests without a valid session cookie with 401 and
// otherwise stores the caller's identity in the request context, where
// auth.IdentityFromContext finds it.
func RequireAuth(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.TokenFromRequest(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized", "unauthorized")
				return
			}
			id, err := v.Verify(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Unauthorized", "unauthorized")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}
