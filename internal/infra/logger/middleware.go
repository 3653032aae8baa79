package logger

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/zenazn/goji/web/mutil"
)

// RequestIDHeader carries the request id on admin requests and responses.
const RequestIDHeader = "X-Request-Id"

// Middleware creates HTTP logging middleware for the admin server.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		log := slog.Default().With(
			slog.Group("request",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("ip", r.RemoteAddr),
				slog.String("request_id", requestID),
			),
		)

		ctx := WithRequestID(WithLogger(r.Context(), log), requestID)
		r = r.WithContext(ctx)

		lw := mutil.WrapWriter(w)
		next.ServeHTTP(lw, r)

		status := lw.Status()
		level := slog.LevelInfo
		msg := "success"
		switch {
		case status >= 500:
			msg = "server error"
			level = slog.LevelError
		case status >= 400:
			msg = "client error"
		}

		log.Log(r.Context(), level, msg, slog.Group("response",
			slog.Int("status", status),
			slog.Int("size", lw.BytesWritten()),
			slog.Duration("duration", time.Since(start)),
		))
	})
}

// RecoveryMiddleware creates panic recovery middleware
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log := FromContext(r.Context())
				log.Error("panic recovered",
					"error", rec,
					"stack", string(debug.Stack()),
				)
				http.Error(
					w,
					http.StatusText(http.StatusInternalServerError),
					http.StatusInternalServerError,
				)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
