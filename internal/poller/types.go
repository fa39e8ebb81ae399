// internal/poller/types.go
package poller

import (
	"reflect"
	"time"
)

// Result is the outcome of one Until run.
// Exactly one of Value (when !TimedOut) or TimedOut is meaningful.
type Result[T any] struct {
	Value    T
	TimedOut bool

	// LastErr is the last transient error seen, if any.
	LastErr error

	Attempts int
	Elapsed  time.Duration
}

// Clock abstracts time so runs can be driven deterministically.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type wallClock struct{}

func (wallClock) Now() time.Time        { return time.Now() }
func (wallClock) Sleep(d time.Duration) { time.Sleep(d) }

// Present reports whether v satisfies a condition.
// nil, false, nil references and empty strings/slices/maps are not present;
// everything else is.
func Present(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return !rv.IsNil()
	case reflect.Map, reflect.Slice:
		return !rv.IsNil() && rv.Len() > 0
	case reflect.String:
		return rv.Len() > 0
	case reflect.Bool:
		return rv.Bool()
	}
	return true
}
