package db

import (
	"context"
	"net/http"
)

// Pinger is a backing store that can report whether it is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

func HealthCheckMiddleware(p Pinger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := p.PingContext(r.Context()); err != nil {
				http.Error(w, "store is down", http.StatusServiceUnavailable)
				return
			}
			if next != nil {
				next.ServeHTTP(w, r)
				return
			}
			w.WriteHeader(http.StatusOK)
		})
	}
}
