package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-http-utils/headers"
	"github.com/google/uuid"
	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"

	"github.com/grantsy/licensegate/internal/infra/logger"
)

// Payload is the structure sent to the notification webhook.
type Payload struct {
	Identifier   string `json:"identifier"`
	Title        string `json:"title"`
	Body         string `json:"body"`
	DelaySeconds int64  `json:"delay_seconds"`
	Repeats      bool   `json:"repeats"`
}

// Webhook relays notifications to an HTTP endpoint, signed per the
// Standard Webhooks scheme.
type Webhook struct {
	url        string
	signer     *standardwebhooks.Webhook
	authorized bool
	client     *http.Client
}

func NewWebhook(url, secret string, authorized bool) (*Webhook, error) {
	signer, err := standardwebhooks.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("notify: failed to create webhook signer: %w", err)
	}
	return &Webhook{
		url:        url,
		signer:     signer,
		authorized: authorized,
		client:     &http.Client{Timeout: 5 * time.Second},
	}, nil
}

func (w *Webhook) Authorized(context.Context) (bool, error) {
	return w.authorized, nil
}

func (w *Webhook) Add(ctx context.Context, req Request) error {
	body, err := json.Marshal(Payload{
		Identifier:   req.Identifier,
		Title:        req.Title,
		Body:         req.Body,
		DelaySeconds: int64(req.Delay / time.Second),
		Repeats:      req.Repeats,
	})
	if err != nil {
		return fmt.Errorf("notify: failed to marshal payload: %w", err)
	}

	msgID := uuid.New().String()
	ts := time.Now()
	signature, err := w.signer.Sign(msgID, ts, body)
	if err != nil {
		return fmt.Errorf("notify: failed to sign webhook: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: failed to create request: %w", err)
	}

	httpReq.Header.Set(headers.ContentType, "application/json")
	httpReq.Header.Set("webhook-id", msgID)
	httpReq.Header.Set("webhook-timestamp", fmt.Sprint(ts.Unix()))
	httpReq.Header.Set("webhook-signature", signature)

	resp, err := w.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("notify: webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notify: webhook failed: status %d", resp.StatusCode)
	}

	logger.FromContext(ctx).Debug("notification webhook sent", "url", w.url, "status", resp.StatusCode)
	return nil
}
