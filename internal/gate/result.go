package gate

import "time"

// Outcome is the final state of one Start.
type Outcome string

const (
	// OutcomeSkipped: the flag was already set, no request was made.
	OutcomeSkipped    Outcome = "skipped"
	OutcomeContinued  Outcome = "continued"
	OutcomeConfirmed  Outcome = "confirmed"
	OutcomeTerminated Outcome = "terminated"
)

// Reason explains an outcome.
type Reason string

const (
	ReasonAlreadyConfirmed Reason = "already_confirmed"
	ReasonOK               Reason = "ok"
	ReasonPaymentPending   Reason = "payment_pending"
	ReasonPaymentReceived  Reason = "payment_received"
	ReasonLicenseViolation Reason = "license_violation"
	ReasonUnhandledStatus  Reason = "unhandled_status"
	ReasonTransportFailure Reason = "transport_failure"
)

// Result describes what a Start decided. Err carries a failure the gate
// absorbed (transport error, flag write error); it never changes Outcome.
type Result struct {
	Outcome    Outcome
	Reason     Reason
	StatusCode int
	Notified   bool
	Err        error
	CheckedAt  time.Time
}

// TerminationRequested reports whether the host must terminate the process.
func (r Result) TerminationRequested() bool {
	return r.Outcome == OutcomeTerminated
}
