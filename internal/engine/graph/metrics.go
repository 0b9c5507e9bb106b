package graph

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("depgraph.graph")

var (
	buildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "depgraph_graph_build_duration_seconds",
		Help:    "Graph build duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
	}, []string{"source"})

	graphNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "depgraph_graph_nodes",
		Help:    "Number of nodes per built graph",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
)

const (
	sourceCache   = "cache"
	sourceTracker = "tracker"
)
