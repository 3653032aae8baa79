// Package remote performs the license verification request.
package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-http-utils/headers"
	"github.com/go-resty/resty/v2"
)

const userAgent = "licensegate/1.0"

// ErrTransport marks failures where no well-formed HTTP response was obtained.
var ErrTransport = errors.New("remote: transport failure")

// TransportError wraps the underlying cause of a failed request.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("remote: request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// Response is the status code and body of the verification response.
type Response struct {
	StatusCode int
	Body       []byte
}

// Client issues single, unretried GET requests.
type Client struct {
	client *resty.Client
}

// NewClient creates a client. A zero timeout leaves the request unbounded
// apart from the context.
func NewClient(timeout time.Duration) *Client {
	client := resty.New().
		SetRetryCount(0).
		SetHeader(headers.UserAgent, userAgent).
		SetHeader(headers.Accept, "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &Client{client: client}
}

// Fetch performs one GET to url. Any status code is returned as a Response;
// only the absence of a usable response is an error.
func (c *Client) Fetch(ctx context.Context, url string) (*Response, error) {
	resp, err := c.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	if resp.RawResponse == nil || resp.StatusCode() == 0 {
		return nil, &TransportError{URL: url, Err: errors.New("malformed HTTP response")}
	}
	return &Response{StatusCode: resp.StatusCode(), Body: resp.Body()}, nil
}
