// Package gate implements the license phone-home check: a persisted flag
// suppresses the check once payment is confirmed, otherwise one request to
// the license server decides whether the application may keep running.
package gate

import (
	"context"
	"sync"
	"time"

	"github.com/grantsy/licensegate/internal/infra/logger"
	"github.com/grantsy/licensegate/internal/infra/metrics"
	"github.com/grantsy/licensegate/internal/notify"
	"github.com/grantsy/licensegate/internal/remote"
)

const (
	// FlagKey is the preference key of the "do not call again" flag.
	FlagKey = "lf_should_call"
	// FlagSentinel is written under FlagKey when payment is confirmed. Any
	// stored value suppresses future checks.
	FlagSentinel = "False"

	// DefaultNotifyTimeout bounds the notification hand-off on a violation.
	DefaultNotifyTimeout = time.Second
)

// Store persists the flag.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Fetcher performs the verification request. A non-nil error means no
// well-formed HTTP response was obtained.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*remote.Response, error)
}

type Option func(*Gate)

// WithUnhandledPolicy sets the action for undefined status codes.
func WithUnhandledPolicy(policy UnhandledPolicy) Option {
	return func(g *Gate) { g.policy = policy }
}

// WithSingleFlight makes Start return the pending Call while a request is
// in flight instead of issuing another one.
func WithSingleFlight(enabled bool) Option {
	return func(g *Gate) { g.singleFlight = enabled }
}

// WithNotifyTimeout bounds how long a violation waits on the notifier
// before termination proceeds. Non-positive values keep the default.
func WithNotifyTimeout(d time.Duration) Option {
	return func(g *Gate) {
		if d > 0 {
			g.notifyTimeout = d
		}
	}
}

// WithCompletionHandler registers fn to run once per Call, before the Call
// is marked done.
func WithCompletionHandler(fn func(Result)) Option {
	return func(g *Gate) { g.onComplete = fn }
}

type Gate struct {
	store         Store
	fetcher       Fetcher
	notifier      notify.Notifier
	policy        UnhandledPolicy
	singleFlight  bool
	onComplete    func(Result)
	notifyTimeout time.Duration
	now           func() time.Time

	flightMu sync.Mutex
	inflight *Call

	mu   sync.Mutex
	last *Result
}

// New creates a gate. A nil notifier disables notifications.
func New(store Store, fetcher Fetcher, notifier notify.Notifier, opts ...Option) *Gate {
	if notifier == nil {
		notifier = notify.Disabled{}
	}
	g := &Gate{
		store:         store,
		fetcher:       fetcher,
		notifier:      notifier,
		policy:        PolicyIgnore,
		notifyTimeout: DefaultNotifyTimeout,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Start runs the license check. The flag is read synchronously; when it is
// absent the request runs in the background and Start returns immediately.
func (g *Gate) Start(ctx context.Context, serverURL string) *Call {
	if g.singleFlight {
		g.flightMu.Lock()
		if g.inflight != nil {
			call := g.inflight
			g.flightMu.Unlock()
			return call
		}
	}

	call := newCall()
	suppressed := g.suppressed(ctx)

	if g.singleFlight {
		if !suppressed {
			g.inflight = call
		}
		g.flightMu.Unlock()
	}

	if suppressed {
		g.finish(ctx, call, Result{Outcome: OutcomeSkipped, Reason: ReasonAlreadyConfirmed})
		return call
	}

	go func() {
		res := g.verify(ctx, serverURL)
		if g.singleFlight {
			g.flightMu.Lock()
			if g.inflight == call {
				g.inflight = nil
			}
			g.flightMu.Unlock()
		}
		g.finish(ctx, call, res)
	}()

	return call
}

// Check runs the license check synchronously.
func (g *Gate) Check(ctx context.Context, serverURL string) Result {
	call := g.Start(ctx, serverURL)
	<-call.Done()
	return call.result
}

// Last returns the most recent completed result.
func (g *Gate) Last() (Result, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.last == nil {
		return Result{}, false
	}
	return *g.last, true
}

func (g *Gate) suppressed(ctx context.Context) bool {
	_, ok, err := g.store.Get(ctx, FlagKey)
	if err != nil {
		logger.FromContext(ctx).Warn("failed to read license flag, checking with server", "error", err)
		return false
	}
	return ok
}

func (g *Gate) verify(ctx context.Context, serverURL string) Result {
	log := logger.FromContext(ctx)

	start := time.Now()
	resp, err := g.fetcher.Fetch(ctx, serverURL)
	metrics.RecordRemoteCall(time.Since(start))
	if err != nil {
		return Result{Outcome: OutcomeTerminated, Reason: ReasonTransportFailure, Err: err}
	}

	decision := Interpret(resp.StatusCode, g.policy)
	res := Result{Reason: decision.Reason, StatusCode: resp.StatusCode}

	switch decision.Action {
	case ActionContinue:
		res.Outcome = OutcomeContinued
		if decision.Reason == ReasonUnhandledStatus {
			log.Debug("unhandled license status, continuing", "status", resp.StatusCode)
		}
	case ActionConfirm:
		res.Outcome = OutcomeConfirmed
		res.Err = g.persistFlag(ctx)
	case ActionTerminate:
		res.Outcome = OutcomeTerminated
		res.Notified = g.notifyViolation(ctx, resp.Body)
	}
	return res
}

func (g *Gate) persistFlag(ctx context.Context) error {
	err := g.store.Set(ctx, FlagKey, FlagSentinel)
	metrics.RecordFlagWrite(err == nil)
	if err != nil {
		logger.FromContext(ctx).Error("failed to persist license flag", "error", err)
	}
	return err
}

// notifyViolation shows the server-provided notification when the body
// carries one and permission was granted. It never fails and returns within
// notifyTimeout; a notifier still running after that is left to finish on
// its own.
func (g *Gate) notifyViolation(ctx context.Context, body []byte) bool {
	log := logger.FromContext(ctx)

	payload, err := ParseNotification(body)
	if err != nil {
		log.Debug("no notification in violation response", "error", err)
		metrics.RecordNotification("skipped")
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, g.notifyTimeout)
	defer cancel()

	submitted := make(chan string, 1)
	go func() {
		submitted <- g.submit(ctx, payload.Request())
	}()

	var result string
	select {
	case result = <-submitted:
	case <-ctx.Done():
		result = "timeout"
		log.Warn("notification not submitted in time", "timeout", g.notifyTimeout)
	}

	metrics.RecordNotification(result)
	return result == "sent"
}

func (g *Gate) submit(ctx context.Context, req notify.Request) string {
	log := logger.FromContext(ctx)

	authorized, err := g.notifier.Authorized(ctx)
	if err != nil || !authorized {
		log.Debug("notification permission not granted", "error", err)
		return "unauthorized"
	}

	if err := g.notifier.Add(ctx, req); err != nil {
		log.Warn("failed to submit notification", "error", err)
		return "failed"
	}
	return "sent"
}

func (g *Gate) finish(ctx context.Context, call *Call, res Result) {
	res.CheckedAt = g.now()

	g.mu.Lock()
	g.last = &res
	g.mu.Unlock()

	metrics.RecordGateCheck(string(res.Outcome), string(res.Reason))

	log := logger.FromContext(ctx)
	if res.TerminationRequested() {
		log.Error("license check requested termination",
			"reason", res.Reason, "status", res.StatusCode, "notified", res.Notified, "error", res.Err)
	} else {
		log.Info("license check completed",
			"outcome", res.Outcome, "reason", res.Reason, "status", res.StatusCode)
	}

	// The handler runs before Done is closed so a waiter never observes a
	// terminating result ahead of its enforcement.
	if g.onComplete != nil {
		g.onComplete(res)
	}
	call.complete(res)
}
