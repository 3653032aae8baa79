package httptools_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantsy/licensegate/internal/httptools"
	"github.com/grantsy/licensegate/internal/infra/logger"
)

func TestJSON_Envelope(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/status", nil)
	r = r.WithContext(logger.WithRequestID(r.Context(), "req-42"))

	httptools.JSON(w, r, http.StatusOK, map[string]string{"outcome": "continued"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp struct {
		Data map[string]string `json:"data"`
		Meta httptools.Meta    `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "continued", resp.Data["outcome"])
	assert.Equal(t, "req-42", resp.Meta.RequestID)
	assert.Equal(t, httptools.Version, resp.Meta.Version)
	_, err := time.Parse(time.RFC3339, resp.Meta.Timestamp)
	assert.NoError(t, err)
}

func TestJSON_NilDataOmitted(t *testing.T) {
	w := httptest.NewRecorder()
	httptools.JSON(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, nil)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotContains(t, resp, "data")
	assert.Contains(t, resp, "meta")
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name      string
		write     func(w http.ResponseWriter, r *http.Request)
		wantCode  int
		wantType  string
		wantTitle string
	}{
		{
			name:      "not found",
			write:     func(w http.ResponseWriter, r *http.Request) { httptools.NotFound(w, r, "nothing yet") },
			wantCode:  http.StatusNotFound,
			wantType:  httptools.ErrTypeNotFound,
			wantTitle: "Not Found",
		},
		{
			name:      "unauthorized",
			write:     func(w http.ResponseWriter, r *http.Request) { httptools.Unauthorized(w, r, "nothing yet") },
			wantCode:  http.StatusUnauthorized,
			wantType:  httptools.ErrTypeUnauthorized,
			wantTitle: "Unauthorized",
		},
		{
			name: "custom",
			write: func(w http.ResponseWriter, r *http.Request) {
				httptools.Error(w, r, http.StatusTeapot, "https://example.com/errors/teapot", "Teapot", "nothing yet")
			},
			wantCode:  http.StatusTeapot,
			wantType:  "https://example.com/errors/teapot",
			wantTitle: "Teapot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantCode, w.Code)

			var resp httptools.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantType, resp.Error.Type)
			assert.Equal(t, tt.wantTitle, resp.Error.Title)
			assert.Equal(t, "nothing yet", resp.Error.Detail)
			assert.Equal(t, tt.wantCode, resp.Error.Status)
			assert.Empty(t, resp.Error.RequestID)
		})
	}
}
