package httptools

import (
	"net/http"
)

// Middleware decorates a handler.
type Middleware = func(next http.Handler) http.Handler

// Wrap applies mw to h so that mw[0] runs first.
func Wrap(h http.Handler, mw ...Middleware) http.HandlerFunc {
	for i := range mw {
		h = mw[len(mw)-1-i](h)
	}
	return h.ServeHTTP
}
