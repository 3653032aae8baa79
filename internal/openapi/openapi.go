// Package openapi documents the admin API.
package openapi

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi31"

	"github.com/grantsy/licensegate/internal/auth"
	"github.com/grantsy/licensegate/internal/httptools"
)

// SecurityName is the security scheme of API-key protected operations.
const SecurityName = "ApiKeyAuth"

// NewReflector creates a reflector with API info and the API key scheme.
func NewReflector() *openapi31.Reflector {
	r := openapi31.NewReflector()
	r.Spec.Info.
		WithTitle("licensegate admin API").
		WithVersion("1.0.0").
		WithDescription("Local status of the license phone-home check")

	r.Spec.SetAPIKeySecurity(SecurityName, auth.HeaderName, openapi.InHeader, "Admin API key")

	// "GateStatusResponse" -> "StatusResponse"
	r.JSONSchemaReflector().InterceptDefName(func(_ reflect.Type, defaultDefName string) string {
		for _, prefix := range []string{"Gate", "Httptools"} {
			if strings.HasPrefix(defaultDefName, prefix) {
				return strings.TrimPrefix(defaultDefName, prefix)
			}
		}
		return defaultDefName
	})

	return r
}

var errorDescriptions = map[int]string{
	http.StatusUnauthorized: "Unauthorized - missing or invalid API key",
	http.StatusNotFound:     "Not Found",
}

// AddErrorResponses documents the problem-details responses an operation
// can return.
func AddErrorResponses(op openapi.OperationContext, statuses ...int) {
	for _, status := range statuses {
		description, ok := errorDescriptions[status]
		if !ok {
			description = http.StatusText(status)
		}
		op.AddRespStructure(new(httptools.ErrorResponse), func(cu *openapi.ContentUnit) {
			cu.HTTPStatus = status
			cu.Description = description
		})
	}
}
