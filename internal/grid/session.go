// internal/grid/session.go
package grid

// SessionID is the plain string form of a grid session handle.
type SessionID string

func (s SessionID) String() string { return string(s) }
