package notify

import (
	"context"

	"github.com/grantsy/licensegate/internal/infra/logger"
)

// Log writes notifications to the context logger.
type Log struct {
	authorized bool
}

func NewLog(authorized bool) *Log {
	return &Log{authorized: authorized}
}

func (l *Log) Authorized(context.Context) (bool, error) {
	return l.authorized, nil
}

func (l *Log) Add(ctx context.Context, req Request) error {
	logger.FromContext(ctx).Warn("license notification",
		"identifier", req.Identifier,
		"title", req.Title,
		"body", req.Body,
		"delay", req.Delay,
		"repeats", req.Repeats,
	)
	return nil
}
