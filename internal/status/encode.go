// internal/status/encode.go
package status

import (
	"fmt"
	"strings"
)

// Encode renders a report as one stable, greppable line.
// No IO. No side effects.
func Encode(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "target=%q outcome=%s", r.Target, r.Outcome)

	switch r.Outcome {
	case OutcomeTimeout:
		fmt.Fprintf(&b, " attempts=%d elapsed=%s", r.Attempts, r.Elapsed)
		if r.Host != "" {
			fmt.Fprintf(&b, " host=%s", r.Host)
		}
		if r.Err != nil {
			fmt.Fprintf(&b, " error=%q", r.Err.Error())
		}
	case OutcomeFatal:
		if r.Err != nil {
			fmt.Fprintf(&b, " error=%q", "unexpected error: "+r.Err.Error())
		}
	}
	return b.String()
}
