// Package auth guards the document download routes with a shared-secret
// bearer token.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/biglittlethings/paperwork/internal/respond"
)

// Middleware rejects requests whose Authorization header does not carry the
// shared secret. Comparison is constant-time over a digest so the secret
// length stays unobservable.
func Middleware(secret string) func(http.Handler) http.Handler {
	want := sha256.Sum256([]byte(secret))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				respond.Fail(w, http.StatusUnauthorized, "Authorization required")
				return
			}
			got := sha256.Sum256([]byte(token))
			if subtle.ConstantTimeCompare(want[:], got[:]) != 1 {
				respond.Fail(w, http.StatusUnauthorized, "Invalid authorization token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractToken reads the Authorization header. "Bearer <token>" and a raw
// token are both accepted.
func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return header
}
