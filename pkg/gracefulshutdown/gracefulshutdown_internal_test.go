package gracefulshutdown

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitForShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	subscribe(ctx, cancel)
	t.Cleanup(func() { subscribe(context.Background(), func() {}) })

	health := HealthCheckMiddleware(nil)
	rec := httptest.NewRecorder()
	health.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := &http.Server{
		Handler: health,
		BaseContext: func(net.Listener) context.Context {
			return GetServerBaseContext()
		},
	}
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ln) }()

	stopped := make(chan struct{})
	go func() {
		WaitForShutdown(srv)
		close(stopped)
	}()

	cancel()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.ErrorIs(t, <-served, http.ErrServerClosed)
	assert.True(t, IsShuttingDown())

	rec = httptest.NewRecorder()
	health.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthCheckMiddleware_CallsNext(t *testing.T) {
	subscribe(context.Background(), func() {})

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	HealthCheckMiddleware(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
