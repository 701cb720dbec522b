package http

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

// metrics holds the Prometheus collectors for the tree API.
// They are registered per-server to keep concurrent handlers (and tests)
// isolated from global registry state.
type metrics struct {
	builds   *prometheus.CounterVec
	duration prometheus.Histogram
	nodes    prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		builds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bomtree_builds_total",
				Help: "Total number of tree build requests by outcome.",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bomtree_build_duration_seconds",
				Help:    "Duration of tree builds.",
				Buckets: prometheus.DefBuckets,
			},
		),
		nodes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bomtree_build_nodes",
				Help:    "Total node count per successful tree build.",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
	}
	reg.MustRegister(m.builds, m.duration, m.nodes)
	return m
}
