package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// queriesTotal counts lookups served by either surface of the web
// server, labeled by query mode and matrix version.
var queriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "matrixlens_queries_total",
		Help: "Total matrix queries served, by mode and version.",
	},
	[]string{"mode", "version"},
)
