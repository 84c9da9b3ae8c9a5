package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RemoteRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zko",
		Name:      "remote_requests_total",
		Help:      "Requests to the ZKO backend by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	RemoteDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "zko",
		Name:      "remote_request_duration_seconds",
		Help:      "Latency of requests to the ZKO backend.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"endpoint"})

	PlanningRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zko",
		Name:      "planning_runs_total",
		Help:      "Pallet planning workflows by final state.",
	}, []string{"state"})

	PendingConfirmations = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "zko",
		Name:      "planning_pending_confirmations",
		Help:      "Planning workflows waiting for an overwrite decision.",
	})
)
