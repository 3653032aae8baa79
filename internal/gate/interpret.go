package gate

import (
	"fmt"
	"net/http"
)

// Action is what the gate does with a verification response.
type Action int

const (
	// ActionContinue lets the application run; the flag stays unset.
	ActionContinue Action = iota
	// ActionConfirm persists the flag so that no further checks are made.
	ActionConfirm
	// ActionTerminate requests termination after an optional notification.
	ActionTerminate
)

func (a Action) String() string {
	switch a {
	case ActionContinue:
		return "continue"
	case ActionConfirm:
		return "confirm"
	case ActionTerminate:
		return "terminate"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// UnhandledPolicy decides the action for status codes the server contract
// does not define.
type UnhandledPolicy string

const (
	// PolicyIgnore continues normally.
	PolicyIgnore UnhandledPolicy = "ignore"
	// PolicyTerminate treats any unknown status as a violation.
	PolicyTerminate UnhandledPolicy = "terminate"
)

// ParseUnhandledPolicy maps a config value to a policy; empty means ignore.
func ParseUnhandledPolicy(s string) (UnhandledPolicy, error) {
	switch UnhandledPolicy(s) {
	case "", PolicyIgnore:
		return PolicyIgnore, nil
	case PolicyTerminate:
		return PolicyTerminate, nil
	default:
		return "", fmt.Errorf("gate: unknown unhandled status policy %q", s)
	}
}

// Decision is the interpreter's verdict for one status code.
type Decision struct {
	Action Action
	Reason Reason
}

// Interpret maps a response status code to a decision. It performs no I/O.
func Interpret(statusCode int, policy UnhandledPolicy) Decision {
	switch statusCode {
	case http.StatusPaymentRequired:
		return Decision{Action: ActionContinue, Reason: ReasonPaymentPending}
	case http.StatusOK:
		return Decision{Action: ActionContinue, Reason: ReasonOK}
	case http.StatusAccepted:
		return Decision{Action: ActionConfirm, Reason: ReasonPaymentReceived}
	case http.StatusConflict:
		return Decision{Action: ActionTerminate, Reason: ReasonLicenseViolation}
	}

	if policy == PolicyTerminate {
		return Decision{Action: ActionTerminate, Reason: ReasonUnhandledStatus}
	}
	return Decision{Action: ActionContinue, Reason: ReasonUnhandledStatus}
}
