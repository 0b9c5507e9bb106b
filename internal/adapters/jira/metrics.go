package jira

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "depgraph_tracker_requests_total",
	Help: "Tracker requests by operation and HTTP status",
}, []string{"operation", "status"})
