// internal/status/snapshot.go
package status

import (
	"errors"
	"time"

	"github.com/tamzrod/gridwait/internal/wait"
)

// Report is what one wait tells the person triaging a failure.
type Report struct {
	Target  string
	Outcome Outcome

	Attempts int
	Elapsed  time.Duration
	Host     string

	Err error
}

// FromError classifies the error returned by a wait.
func FromError(target string, err error) Report {
	r := Report{Target: target}

	var te *wait.TimeoutError
	switch {
	case err == nil:
		r.Outcome = OutcomeOK
	case errors.As(err, &te):
		r.Outcome = OutcomeTimeout
		r.Attempts = te.Attempts
		r.Elapsed = te.Elapsed
		r.Host = te.Host
		r.Err = err
	default:
		r.Outcome = OutcomeFatal
		r.Err = err
	}
	return r
}

// ExitCode folds reports into one process exit code.
// Any fatal outranks any timeout.
func ExitCode(reports []Report) int {
	code := ExitOK
	for _, r := range reports {
		switch r.Outcome {
		case OutcomeFatal:
			return ExitFatal
		case OutcomeTimeout:
			code = ExitTimeout
		}
	}
	return code
}
