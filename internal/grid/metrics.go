// internal/grid/metrics.go
package grid

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK           = "ok"
	outcomeTransport    = "transport"
	outcomeStatus       = "status"
	outcomeDecode       = "decode"
	outcomeMissingField = "missing_field"
	outcomeNoSession    = "no_session"
	outcomePanic        = "panic"
	outcomeLocal        = "local"
	outcomeHostname     = "hostname"
)

var lookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "gridwait",
	Subsystem: "grid",
	Name:      "lookups_total",
	Help:      "Execution host lookups by outcome.",
}, []string{"outcome"})
