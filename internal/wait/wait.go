// internal/wait/wait.go

// Package wait polls browser conditions and, when a wait times out, names
// the execution host that ran the session.
package wait

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/tamzrod/gridwait/internal/grid"
	"github.com/tamzrod/gridwait/internal/poller"
)

var tracer = otel.Tracer("github.com/tamzrod/gridwait/internal/wait")

// Config is the construction-time shape of a Wait.
type Config struct {
	Name     string
	Interval time.Duration
	Timeout  time.Duration
	Ignore   []poller.Kind
}

// Option customises a Wait.
type Option func(*Wait)

// WithLogger sets the logger. Default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Wait) {
		if l != nil {
			w.log = l
		}
	}
}

// WithEnvironment attaches the resolver used to name the execution host on timeout.
func WithEnvironment(r grid.HostResolver) Option {
	return func(w *Wait) { w.env = r }
}

// WithSession binds the session reported on timeout.
func WithSession(s fmt.Stringer) Option {
	return func(w *Wait) { w.session = s }
}

// WithClock replaces wall time.
func WithClock(c poller.Clock) Option {
	return func(w *Wait) { w.clock = c }
}

// Wait is a reusable polling wait.
// Interval and timeout are fixed; the ignored kinds may widen at any time.
type Wait struct {
	name     string
	interval time.Duration
	timeout  time.Duration
	ignored  *poller.KindSet

	env     grid.HostResolver
	session fmt.Stringer
	clock   poller.Clock
	log     *zap.Logger
}

// New creates a wait.
func New(cfg Config, opts ...Option) (*Wait, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("wait: interval must be > 0")
	}
	if cfg.Name == "" {
		cfg.Name = "default"
	}

	w := &Wait{
		name:     cfg.Name,
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		ignored:  poller.NewKindSet(cfg.Ignore...),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.With(zap.String("wait", w.name))
	return w, nil
}

// Ignoring widens the set of transient kinds. Every later attempt, including
// attempts of waits already running, sees the change.
func (w *Wait) Ignoring(kinds ...poller.Kind) *Wait {
	w.ignored.Add(kinds...)
	w.log.Debug("ignoring kinds", zap.Any("kinds", w.ignored.Kinds()))
	return w
}

// IgnoredKinds returns the current transient kinds.
func (w *Wait) IgnoredKinds() []poller.Kind { return w.ignored.Kinds() }

func (w *Wait) Name() string                   { return w.name }
func (w *Wait) Interval() time.Duration        { return w.interval }
func (w *Wait) Timeout() time.Duration         { return w.timeout }
func (w *Wait) Environment() grid.HostResolver { return w.env }

// Until polls evaluate with the bound session.
func Until[T any](ctx context.Context, w *Wait, evaluate func() (T, error)) (T, error) {
	return UntilSession(ctx, w, w.session, evaluate)
}

// UntilSession polls evaluate until it yields a present value.
//
// Errors whose kind is ignored keep the wait going. Any other error is returned
// unchanged at once. When the timeout elapses a *TimeoutError is returned; if
// both session and an environment are known, it names the execution host.
// ctx bounds only the host lookup; polling itself is not interruptible.
func UntilSession[T any](ctx context.Context, w *Wait, session fmt.Stringer, evaluate func() (T, error)) (T, error) {
	var zero T
	if ctx == nil {
		ctx = context.Background()
	}

	id := uuid.NewString()
	ctx, span := tracer.Start(ctx, "wait.Until", trace.WithAttributes(
		attribute.String("wait.name", w.name),
		attribute.String("wait.id", id),
		attribute.Int64("wait.timeout_ms", w.timeout.Milliseconds()),
	))
	defer span.End()

	log := w.log.With(zap.String("wait_id", id))

	res, err := poller.Until(poller.Config{
		Interval: w.interval,
		Timeout:  w.timeout,
		Ignored:  w.ignored,
		Clock:    w.clock,
	}, evaluate)

	span.SetAttributes(attribute.Int("wait.attempts", res.Attempts))
	attemptsObserved.WithLabelValues(w.name).Observe(float64(res.Attempts))

	if err != nil {
		waitsTotal.WithLabelValues(w.name, outcomeFatal).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "fatal")
		log.Debug("wait failed",
			zap.Int("attempts", res.Attempts),
			zap.Duration("elapsed", res.Elapsed),
			zap.Error(err))
		return zero, err
	}

	if !res.TimedOut {
		waitsTotal.WithLabelValues(w.name, outcomeOK).Inc()
		log.Debug("wait satisfied",
			zap.Int("attempts", res.Attempts),
			zap.Duration("elapsed", res.Elapsed))
		return res.Value, nil
	}

	terr := &TimeoutError{
		Wait:     w.name,
		ID:       id,
		Timeout:  w.timeout,
		Attempts: res.Attempts,
		Elapsed:  res.Elapsed,
		LastErr:  res.LastErr,
	}
	if session != nil && w.env != nil {
		terr.Host = w.env.ResolveHost(ctx, session)
		span.SetAttributes(attribute.String("wait.host", terr.Host))
	}

	waitsTotal.WithLabelValues(w.name, outcomeTimeout).Inc()
	span.SetStatus(codes.Error, "timeout")
	log.Warn("wait timed out",
		zap.Int("attempts", res.Attempts),
		zap.Duration("elapsed", res.Elapsed),
		zap.String("host", terr.Host),
		zap.NamedError("last_error", res.LastErr))

	return zero, terr
}
