// Package notify delivers the local notification shown before a license
// violation terminates the application.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/grantsy/licensegate/internal/infra/config"
)

// Request describes one notification. A zero Delay means immediate display.
type Request struct {
	Identifier string
	Title      string
	Body       string
	Delay      time.Duration
	Repeats    bool
}

// Notifier submits notifications. Add returns once the request is accepted;
// it does not wait for the notification to be displayed.
type Notifier interface {
	// Authorized reports whether the user granted notification permission.
	Authorized(ctx context.Context) (bool, error)
	Add(ctx context.Context, req Request) error
}

// New builds the notifier selected by cfg.Driver.
func New(cfg config.NotificationsConfig) (Notifier, error) {
	switch cfg.Driver {
	case "", "log":
		return NewLog(cfg.Authorized), nil
	case "webhook":
		webhook, err := NewWebhook(cfg.Webhook.URL, cfg.Webhook.Secret, cfg.Authorized)
		if err != nil {
			return nil, err
		}
		return webhook, nil
	case "none":
		return Disabled{}, nil
	default:
		return nil, fmt.Errorf("notify: unsupported driver: %s", cfg.Driver)
	}
}

// Disabled never has permission to notify.
type Disabled struct{}

func (Disabled) Authorized(context.Context) (bool, error) { return false, nil }

func (Disabled) Add(context.Context, Request) error { return nil }
