package gate_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/swaggest/openapi-go/openapi31"

	"github.com/grantsy/licensegate/internal/gate"
	"github.com/grantsy/licensegate/internal/gate/mocks"
	"github.com/grantsy/licensegate/internal/httptools"
	"github.com/grantsy/licensegate/internal/prefs"
)

func newStatusMux(g *gate.Gate) *http.ServeMux {
	mux := http.NewServeMux()
	gate.NewRouteStatus(g).Register(mux, openapi31.NewReflector())
	return mux
}

func TestRouteStatus_NoCheckYet(t *testing.T) {
	g := gate.New(prefs.NewMemory(), mocks.NewMockFetcher(t), nil)

	w := httptest.NewRecorder()
	newStatusMux(g).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/status", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp httptools.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, httptools.ErrTypeNotFound, resp.Error.Type)
}

func TestRouteStatus_LastResult(t *testing.T) {
	store := flagAbsent(t)
	store.EXPECT().Set(mock.Anything, gate.FlagKey, gate.FlagSentinel).Return(errors.New("read-only"))
	g := gate.New(store, respond(t, http.StatusAccepted, ""), nil)
	g.Check(context.Background(), testURL)

	w := httptest.NewRecorder()
	newStatusMux(g).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/status", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data gate.StatusResponse `json:"data"`
		Meta httptools.Meta      `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, gate.OutcomeConfirmed, resp.Data.Outcome)
	assert.Equal(t, gate.ReasonPaymentReceived, resp.Data.Reason)
	assert.Equal(t, http.StatusAccepted, resp.Data.StatusCode)
	assert.False(t, resp.Data.TerminationRequested)
	assert.Equal(t, "read-only", resp.Data.Error)
	assert.False(t, resp.Data.CheckedAt.IsZero())
}

func TestRouteStatus_MethodNotAllowed(t *testing.T) {
	g := gate.New(prefs.NewMemory(), mocks.NewMockFetcher(t), nil)

	w := httptest.NewRecorder()
	newStatusMux(g).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/status", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
