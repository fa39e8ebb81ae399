// internal/status/constants.go
package status

// Outcome classifies one finished wait for triage.
// Codes are stable: tooling keys flaky timeouts off them.
// The zero Outcome renders as "unknown".
type Outcome uint16

// OutcomeOK represents a satisfied condition.
const OutcomeOK Outcome = 1

// OutcomeFatal represents an unexpected error that ended the wait early.
const OutcomeFatal Outcome = 2

// OutcomeTimeout represents a condition that never became true.
const OutcomeTimeout Outcome = 3

// ---- EXIT CODES ----

const (
	ExitOK      = 0
	ExitFatal   = 1
	ExitTimeout = 2
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeFatal:
		return "fatal"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}
