package httptools

import "net/http"

// Hidden answers with statusCode and an empty body unless pass(r) holds.
func Hidden(
	pass func(r *http.Request) bool,
	statusCode int,
) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if pass(r) {
				next.ServeHTTP(w, r)
				return
			}
			w.WriteHeader(statusCode)
		})
	}
}
