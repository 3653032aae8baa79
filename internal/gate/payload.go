package gate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/grantsy/licensegate/internal/notify"
)

// NotificationIdentifier identifies the notification shown on a violation.
const NotificationIdentifier = "Little Finger Notification"

// ErrMalformedPayload is returned when a violation response body does not
// carry a usable notification.
var ErrMalformedPayload = errors.New("gate: malformed notification payload")

// NotificationPayload is the optional body of a 409 response.
type NotificationPayload struct {
	Title string
	Text  string
}

// ParseNotification decodes a JSON object with the string fields
// NotificationTitle and NotificationText. Keys are matched exactly.
func ParseNotification(body []byte) (NotificationPayload, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return NotificationPayload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if obj == nil {
		return NotificationPayload{}, fmt.Errorf("%w: not an object", ErrMalformedPayload)
	}

	title, err := stringField(obj, "NotificationTitle")
	if err != nil {
		return NotificationPayload{}, err
	}
	text, err := stringField(obj, "NotificationText")
	if err != nil {
		return NotificationPayload{}, err
	}
	return NotificationPayload{Title: title, Text: text}, nil
}

// Request builds the zero-delay, one-shot notification request.
func (p NotificationPayload) Request() notify.Request {
	return notify.Request{
		Identifier: NotificationIdentifier,
		Title:      p.Title,
		Body:       p.Text,
	}
}

func stringField(obj map[string]json.RawMessage, key string) (string, error) {
	raw, ok := obj[key]
	if !ok {
		return "", fmt.Errorf("%w: missing %s", ErrMalformedPayload, key)
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", fmt.Errorf("%w: %s is null", ErrMalformedPayload, key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %s is not a string", ErrMalformedPayload, key)
	}
	return s, nil
}
