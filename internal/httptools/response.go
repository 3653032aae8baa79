package httptools

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-http-utils/headers"

	"github.com/grantsy/licensegate/internal/infra/logger"
)

const Version = "1.0"

const (
	ErrTypeNotFound     = "https://licensegate.example/errors/not-found"
	ErrTypeUnauthorized = "https://licensegate.example/errors/unauthorized"
)

type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta"`
}

type Meta struct {
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

type ErrorResponse struct {
	Error ProblemDetails `json:"error"`
}

// ProblemDetails follows RFC 9457.
type ProblemDetails struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Detail    string `json:"detail"`
	Status    int    `json:"status"`
	RequestID string `json:"request_id"`
}

func JSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeJSON(w, r, status, Response{
		Data: data,
		Meta: &Meta{
			RequestID: logger.RequestID(r.Context()),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   Version,
		},
	})
}

func Error(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	errType, title, detail string,
) {
	writeJSON(w, r, status, ErrorResponse{
		Error: ProblemDetails{
			Type:      errType,
			Title:     title,
			Detail:    detail,
			Status:    status,
			RequestID: logger.RequestID(r.Context()),
		},
	})
}

func NotFound(w http.ResponseWriter, r *http.Request, detail string) {
	Error(w, r, http.StatusNotFound,
		ErrTypeNotFound,
		"Not Found",
		detail,
	)
}

func Unauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	Error(w, r, http.StatusUnauthorized,
		ErrTypeUnauthorized,
		"Unauthorized",
		detail,
	)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set(headers.ContentType, "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Debug("failed to write response", "error", err)
	}
}
