// internal/poller/kinds.go
package poller

import (
	"errors"
	"sort"
	"sync"
)

// Kind labels an error so a wait can decide whether to keep polling.
// Kinds are open: any package may define its own.
type Kind string

// KindError tags Err with a Kind.
// Tagged errors may wrap other tagged errors; every kind in the chain counts.
type KindError struct {
	Kind Kind
	Err  error
}

// Tag wraps err with kind. A nil err stays nil.
func Tag(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &KindError{Kind: kind, Err: err}
}

func (e *KindError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Err.Error()
}

func (e *KindError) Unwrap() error { return e.Err }

// KindsOf returns every kind found in err's chain, outermost first.
// Joined errors are walked depth-first.
//
// An error implementing ErrorKind() Kind ends its branch: the kinds of
// whatever it wraps are not inherited.
func KindsOf(err error) []Kind {
	var out []Kind
	walk(err, func(e error) bool {
		// Only direct KindError nodes; errors.As would re-find inner ones.
		if ke, ok := e.(*KindError); ok {
			out = append(out, ke.Kind)
		}
		type kinder interface{ ErrorKind() Kind }
		if k, ok := e.(kinder); ok {
			out = append(out, k.ErrorKind())
			return false
		}
		return true
	})
	return out
}

func walk(err error, visit func(error) bool) {
	for err != nil {
		if !visit(err) {
			return
		}
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner, visit)
			}
			return
		default:
			err = errors.Unwrap(err)
		}
	}
}

// Matcher decides whether an error is transient.
type Matcher interface {
	Matches(err error) bool
}

// KindSet is a mutable set of kinds. Safe for concurrent use.
// Changes are visible to every wait still consulting the set.
type KindSet struct {
	mu    sync.RWMutex
	kinds map[Kind]struct{}
}

// NewKindSet returns a set holding kinds.
func NewKindSet(kinds ...Kind) *KindSet {
	s := &KindSet{kinds: make(map[Kind]struct{}, len(kinds))}
	s.Add(kinds...)
	return s
}

// Add inserts kinds into the set. Empty kinds are skipped.
func (s *KindSet) Add(kinds ...Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kinds == nil {
		s.kinds = make(map[Kind]struct{}, len(kinds))
	}
	for _, k := range kinds {
		if k == "" {
			continue
		}
		s.kinds[k] = struct{}{}
	}
}

// Contains reports whether k is in the set.
func (s *KindSet) Contains(k Kind) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.kinds[k]
	return ok
}

// Kinds returns the set contents sorted.
func (s *KindSet) Kinds() []Kind {
	s.mu.RLock()
	out := make([]Kind, 0, len(s.kinds))
	for k := range s.kinds {
		out = append(out, k)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Matches reports whether any kind carried by err is in the set.
func (s *KindSet) Matches(err error) bool {
	if s == nil || err == nil {
		return false
	}
	for _, k := range KindsOf(err) {
		if s.Contains(k) {
			return true
		}
	}
	return false
}
