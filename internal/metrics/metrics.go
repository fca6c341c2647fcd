package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors are registered with the default registry on import and served
// from /metrics.
var (
	// MessagesTotal counts client messages by type and outcome.
	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hexpath_messages_total",
			Help: "Total number of client messages handled",
		},
		[]string{"type", "status"},
	)

	// SearchDuration measures wall time of path searches.
	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hexpath_search_duration_seconds",
			Help:    "Duration of path searches in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	// SearchExpanded tracks how many tiles a search settles.
	SearchExpanded = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hexpath_search_expanded_nodes",
			Help:    "Number of tiles settled per path search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 9),
		},
	)

	// SearchUnreachable counts searches that found no path.
	SearchUnreachable = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hexpath_search_unreachable_total",
			Help: "Total number of path searches with no path",
		},
	)

	// ConnectedClients is the number of open websocket connections.
	ConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hexpath_connected_clients",
			Help: "Number of connected websocket clients",
		},
	)
)
