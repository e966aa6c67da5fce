package reader

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metrics for the read path. Registered against the default
// registry on first use so library consumers that never scrape pay nothing
// beyond a few idle counters.

var (
	readerMetricsOnce sync.Once

	endpointRotations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ethfetch",
			Subsystem: "rpc",
			Name:      "endpoint_rotations_total",
			Help:      "Times a request was moved to the next endpoint, by reason.",
		},
		[]string{"pool", "reason"},
	)

	poolExhaustions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ethfetch",
			Subsystem: "rpc",
			Name:      "pool_exhaustions_total",
			Help:      "Times every endpoint in a pool was tried without success.",
		},
		[]string{"pool", "outcome"},
	)

	nodeRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ethfetch",
			Subsystem: "rpc",
			Name:      "node_requests_total",
			Help:      "Requests issued to upstream nodes, by operation.",
		},
		[]string{"pool", "op"},
	)

	multicallChunks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ethfetch",
			Subsystem: "multicall",
			Name:      "chunks_total",
			Help:      "Aggregate3 chunks sent on-chain.",
		},
	)

	multicallFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ethfetch",
			Subsystem: "multicall",
			Name:      "fallback_calls_total",
			Help:      "Calls executed one by one because no aggregator was available.",
		},
	)

	fetchLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ethfetch",
			Subsystem: "fetch",
			Name:      "lookups_total",
			Help:      "Per-category lookups scheduled by the fetch orchestrator.",
		},
		[]string{"category"},
	)
)

func initReaderMetrics() {
	readerMetricsOnce.Do(func() {
		prometheus.MustRegister(
			endpointRotations,
			poolExhaustions,
			nodeRequests,
			multicallChunks,
			multicallFallbacks,
			fetchLookups,
		)
	})
}
