// internal/poller/poller.go
package poller

import (
	"errors"
	"time"
)

// Config is the minimal runtime config one poll run needs.
type Config struct {
	Interval time.Duration
	Timeout  time.Duration

	// Ignored decides which evaluation errors are transient.
	// It is consulted on every attempt, so a mutable set may change mid-run.
	// Nil ignores nothing.
	Ignored Matcher

	// Clock defaults to wall time.
	Clock Clock
}

// Validate checks the run config.
// A zero or negative Timeout is valid: the run still evaluates once.
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return errors.New("poller: interval must be > 0")
	}
	return nil
}

// Until evaluates repeatedly until it yields a present value or the timeout elapses.
//
// A non-nil error is returned only for configuration errors and for evaluation
// errors not matched by cfg.Ignored; the latter are returned unchanged and stop
// polling at once. A timeout is not an error: Result.TimedOut is set instead.
func Until[T any](cfg Config, evaluate func() (T, error)) (Result[T], error) {
	var res Result[T]

	if err := cfg.Validate(); err != nil {
		return res, err
	}
	if evaluate == nil {
		return res, errors.New("poller: evaluate func required")
	}

	clock := cfg.Clock
	if clock == nil {
		clock = wallClock{}
	}

	start := clock.Now()
	deadline := start.Add(cfg.Timeout)

	for {
		res.Attempts++

		v, err := evaluate()
		switch {
		case err == nil:
			if Present(v) {
				res.Value = v
				res.Elapsed = clock.Now().Sub(start)
				return res, nil
			}

		case cfg.Ignored != nil && cfg.Ignored.Matches(err):
			res.LastErr = err

		default:
			res.Elapsed = clock.Now().Sub(start)
			return res, err
		}

		// Deadline is checked only after a failed attempt: success on the
		// deadline attempt wins.
		now := clock.Now()
		if !now.Before(deadline) {
			res.TimedOut = true
			res.Elapsed = now.Sub(start)
			return res, nil
		}

		sleep := cfg.Interval
		if remaining := deadline.Sub(now); remaining < sleep {
			sleep = remaining
		}
		clock.Sleep(sleep)
	}
}
