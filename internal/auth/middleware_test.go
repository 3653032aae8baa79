package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantsy/licensegate/internal/auth"
	"github.com/grantsy/licensegate/internal/httptools"
)

const testAPIKey = "admin-secret"

func TestMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := auth.Middleware(testAPIKey)(next)

	tests := []struct {
		name       string
		key        string
		setHeader  bool
		wantCode   int
		wantDetail string
	}{
		{name: "missing", wantCode: http.StatusUnauthorized, wantDetail: "Missing API key"},
		{name: "empty", setHeader: true, wantCode: http.StatusUnauthorized, wantDetail: "Missing API key"},
		{name: "wrong", key: "guess", setHeader: true, wantCode: http.StatusUnauthorized, wantDetail: "Invalid API key"},
		{name: "prefix of key", key: "admin", setHeader: true, wantCode: http.StatusUnauthorized, wantDetail: "Invalid API key"},
		{name: "valid", key: testAPIKey, setHeader: true, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/status", nil)
			if tt.setHeader {
				req.Header.Set(auth.HeaderName, tt.key)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantDetail == "" {
				return
			}
			var resp httptools.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantDetail, resp.Error.Detail)
			assert.Equal(t, httptools.ErrTypeUnauthorized, resp.Error.Type)
		})
	}
}
