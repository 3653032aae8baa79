// Package gracefulshutdown ties the admin server lifetime to SIGINT/SIGTERM.
package gracefulshutdown

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// Timeout bounds how long in-flight admin requests may take to finish.
var Timeout = 10 * time.Second

var (
	mu           sync.Mutex
	baseCtx      = context.Background()
	cancelBase   context.CancelFunc = func() {}
	shuttingDown atomic.Bool
)

// SubscribeForShutdown installs the signal handler. The server base context
// is cancelled on the first SIGINT or SIGTERM.
func SubscribeForShutdown() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	subscribe(ctx, stop)
}

func subscribe(ctx context.Context, stop context.CancelFunc) {
	mu.Lock()
	defer mu.Unlock()
	shuttingDown.Store(false)
	baseCtx = ctx
	cancelBase = stop
}

// GetServerBaseContext returns the context cancelled on shutdown.
func GetServerBaseContext() context.Context {
	mu.Lock()
	defer mu.Unlock()
	return baseCtx
}

// IsShuttingDown reports whether a shutdown signal was received.
func IsShuttingDown() bool {
	return shuttingDown.Load()
}

// WaitForShutdown blocks until a shutdown signal arrives, then stops srv.
func WaitForShutdown(srv *http.Server) {
	ctx := GetServerBaseContext()
	<-ctx.Done()
	shuttingDown.Store(true)

	mu.Lock()
	cancelBase()
	mu.Unlock()

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server shutdown failed", "error", err)
		return
	}
	slog.Info("server stopped")
}

// HealthCheckMiddleware fails health checks once shutdown has begun so load
// balancers stop routing to the instance.
func HealthCheckMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsShuttingDown() {
			http.Error(w, "shutting down", http.StatusServiceUnavailable)
			return
		}
		if next != nil {
			next.ServeHTTP(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}
