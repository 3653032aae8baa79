package openapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-http-utils/headers"
	"github.com/swaggest/openapi-go/openapi31"

	"github.com/grantsy/licensegate/internal/httptools"
	"github.com/grantsy/licensegate/internal/infra/logger"
)

// Path serves the generated document.
const Path = "/openapi.json"

type Route struct {
	reflector *openapi31.Reflector
	mw        []httptools.Middleware
}

// NewRoute serves the document built in reflector, wrapped in mw.
func NewRoute(reflector *openapi31.Reflector, mw ...httptools.Middleware) *Route {
	return &Route{reflector: reflector, mw: mw}
}

func (route *Route) Register(mux *http.ServeMux, _ *openapi31.Reflector) {
	mux.Handle("GET "+Path, httptools.Wrap(http.HandlerFunc(route.serveJSON), route.mw...))
}

func (route *Route) serveJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(headers.ContentType, "application/json")
	if err := json.NewEncoder(w).Encode(route.reflector.Spec); err != nil {
		logger.FromContext(r.Context()).Debug("failed to write openapi document", "error", err)
	}
}
