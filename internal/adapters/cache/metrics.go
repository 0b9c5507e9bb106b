package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultHit     = "hit"
	resultMiss    = "miss"
	resultExpired = "expired"
	resultCorrupt = "corrupt"
)

var (
	lookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "depgraph_cache_lookups_total",
		Help: "Cache lookups by namespace and result",
	}, []string{"namespace", "result"})

	writeFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "depgraph_cache_write_failures_total",
		Help: "Cache writes that failed and were ignored",
	}, []string{"namespace"})

	evictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "depgraph_cache_evictions_total",
		Help: "Cache entries removed by expiry, corruption or clearing",
	}, []string{"namespace"})
)
