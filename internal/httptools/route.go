package httptools

import (
	"net/http"

	"github.com/swaggest/openapi-go/openapi31"
)

// Route registers one admin endpoint on the mux and documents it in the
// reflector.
type Route interface {
	Register(mux *http.ServeMux, r *openapi31.Reflector)
}
