package gate

import (
	"log/slog"
	"os"
)

// ExitCode is the status the process exits with on termination.
const ExitCode = 1

// TerminateFunc ends the process for a result that requested termination.
type TerminateFunc func(res Result)

// ExitProcess logs the reason and exits immediately. Deferred functions do
// not run.
func ExitProcess(res Result) {
	slog.Error("license check failed, terminating",
		"reason", res.Reason,
		"status", res.StatusCode,
		"error", res.Err,
	)
	os.Exit(ExitCode)
}

// Enforce returns a completion handler that calls terminate for results
// requesting termination and ignores everything else.
func Enforce(terminate TerminateFunc) func(Result) {
	return func(res Result) {
		if res.TerminationRequested() {
			terminate(res)
		}
	}
}
