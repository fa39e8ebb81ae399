// internal/grid/local.go
package grid

import (
	"context"
	"fmt"
	"os"
)

// Local resolves sessions running on this machine.
type Local struct {
	// Hostname defaults to os.Hostname.
	Hostname func() (string, error)
}

// ResolveHost returns the local hostname, or UnknownHost.
func (l Local) ResolveHost(_ context.Context, _ fmt.Stringer) string {
	hostname := l.Hostname
	if hostname == nil {
		hostname = os.Hostname
	}

	name, err := hostname()
	if err != nil || name == "" {
		lookupsTotal.WithLabelValues(outcomeHostname).Inc()
		return UnknownHost
	}
	lookupsTotal.WithLabelValues(outcomeLocal).Inc()
	return name
}
