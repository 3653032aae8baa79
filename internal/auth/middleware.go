// Package auth protects the admin endpoints with a static API key.
package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/grantsy/licensegate/internal/httptools"
)

// HeaderName carries the admin API key.
const HeaderName = "X-Api-Key"

func Middleware(apiKey string) httptools.Middleware {
	keyBytes := []byte(apiKey)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(HeaderName)
			switch {
			case provided == "":
				httptools.Unauthorized(w, r, "Missing API key")
			case subtle.ConstantTimeCompare([]byte(provided), keyBytes) != 1:
				httptools.Unauthorized(w, r, "Invalid API key")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
