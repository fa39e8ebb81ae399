// internal/wait/metrics.go
package wait

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK      = "ok"
	outcomeTimeout = "timeout"
	outcomeFatal   = "fatal"
)

var (
	waitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridwait",
		Subsystem: "wait",
		Name:      "runs_total",
		Help:      "Completed waits by wait name and outcome.",
	}, []string{"wait", "outcome"})

	attemptsObserved = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gridwait",
		Subsystem: "wait",
		Name:      "attempts",
		Help:      "Evaluation attempts per wait.",
		Buckets:   []float64{1, 2, 3, 5, 10, 20, 50, 100},
	}, []string{"wait"})
)
