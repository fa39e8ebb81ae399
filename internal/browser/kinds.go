// internal/browser/kinds.go

// Package browser adapts go-rod pages to the evaluate callables a wait polls.
package browser

import (
	"context"
	"errors"

	"github.com/go-rod/rod"

	"github.com/tamzrod/gridwait/internal/poller"
)

// Error kinds raised by browser conditions.
// KindDriver is the parent kind: every classified browser error carries it.
const (
	KindNoSuchElement  poller.Kind = "no_such_element"
	KindStaleReference poller.Kind = "stale_reference"
	KindDriver         poller.Kind = "driver"
)

// Known reports whether k is one of the kinds this package raises.
func Known(k poller.Kind) bool {
	switch k {
	case KindNoSuchElement, KindStaleReference, KindDriver:
		return true
	}
	return false
}

// Classify tags a rod error with its kinds.
// Context cancellation stays untagged so it always ends a wait.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if len(poller.KindsOf(err)) > 0 {
		return err
	}

	var notFound *rod.ElementNotFoundError
	if errors.As(err, &notFound) {
		return poller.Tag(KindNoSuchElement, poller.Tag(KindDriver, err))
	}
	var gone *rod.ObjectNotFoundError
	if errors.As(err, &gone) {
		return poller.Tag(KindStaleReference, poller.Tag(KindDriver, err))
	}
	return poller.Tag(KindDriver, err)
}
