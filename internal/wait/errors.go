// internal/wait/errors.go
package wait

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tamzrod/gridwait/internal/poller"
)

// KindTimeout is the only kind a *TimeoutError carries. The kinds of LastErr
// stay behind it, so an outer wait never mistakes a nested timeout for the
// transient error that caused it.
const KindTimeout poller.Kind = "timeout"

// TimeoutError reports a wait whose condition never became true.
// It is never produced for fatal evaluation errors.
type TimeoutError struct {
	Wait     string
	ID       string
	Timeout  time.Duration
	Attempts int
	Elapsed  time.Duration

	// LastErr is the last transient error seen, if any.
	LastErr error

	// Host names the execution host; empty when no session or environment was available.
	Host string
}

func (e *TimeoutError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "condition never became true within %s", e.Timeout)
	if e.LastErr != nil {
		fmt.Fprintf(&b, ", last seen error: %v", e.LastErr)
	}
	if e.Host != "" {
		fmt.Fprintf(&b, ", host: %s", e.Host)
	}
	return b.String()
}

func (e *TimeoutError) Unwrap() error { return e.LastErr }

func (e *TimeoutError) ErrorKind() poller.Kind { return KindTimeout }

// IsTimeout reports whether err is, or wraps, a *TimeoutError.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}
