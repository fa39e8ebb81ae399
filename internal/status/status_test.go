// internal/status/status_test.go
package status

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tamzrod/gridwait/internal/wait"
)

func TestFromError_DistinguishesTimeoutFromFatal(t *testing.T) {
	timeout := &wait.TimeoutError{
		Timeout:  time.Second,
		Attempts: 3,
		Elapsed:  time.Second,
		Host:     "10.0.0.9",
	}

	ok := FromError("#a", nil)
	if ok.Outcome != OutcomeOK {
		t.Fatalf("expected ok, got %s", ok.Outcome)
	}

	to := FromError("#b", fmt.Errorf("login: %w", timeout))
	if to.Outcome != OutcomeTimeout || to.Host != "10.0.0.9" || to.Attempts != 3 {
		t.Fatalf("unexpected timeout report %+v", to)
	}

	fatal := FromError("#c", errors.New("invalid selector"))
	if fatal.Outcome != OutcomeFatal {
		t.Fatalf("expected fatal, got %s", fatal.Outcome)
	}
}

func TestEncode(t *testing.T) {
	timeout := &wait.TimeoutError{Timeout: time.Second, Attempts: 3, Elapsed: time.Second, Host: "node-2"}

	cases := []struct {
		r    Report
		want string
	}{
		{FromError("#ok", nil), `target="#ok" outcome=ok`},
		{
			FromError("#slow", timeout),
			`target="#slow" outcome=timeout attempts=3 elapsed=1s host=node-2 error="condition never became true within 1s, host: node-2"`,
		},
		{
			FromError("#bad", errors.New("boom")),
			`target="#bad" outcome=fatal error="unexpected error: boom"`,
		},
		{Report{Target: "#bare", Outcome: OutcomeTimeout}, `target="#bare" outcome=timeout attempts=0 elapsed=0s`},
		{Report{Target: "#bare", Outcome: OutcomeFatal}, `target="#bare" outcome=fatal`},
		{Report{Target: "#new"}, `target="#new" outcome=unknown`},
	}

	for _, tc := range cases {
		if got := Encode(tc.r); got != tc.want {
			t.Errorf("Encode:\n got  %s\n want %s", got, tc.want)
		}
	}
}

func TestExitCode(t *testing.T) {
	ok := Report{Outcome: OutcomeOK}
	to := Report{Outcome: OutcomeTimeout}
	fatal := Report{Outcome: OutcomeFatal}

	if got := ExitCode([]Report{ok, ok}); got != ExitOK {
		t.Fatalf("expected %d, got %d", ExitOK, got)
	}
	if got := ExitCode([]Report{ok, to}); got != ExitTimeout {
		t.Fatalf("expected %d, got %d", ExitTimeout, got)
	}
	if got := ExitCode([]Report{to, fatal, ok}); got != ExitFatal {
		t.Fatalf("expected %d, got %d", ExitFatal, got)
	}
	if got := ExitCode(nil); got != ExitOK {
		t.Fatalf("expected %d for no reports, got %d", ExitOK, got)
	}
}
