package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ProviderRequests counts balance queries by provider and outcome.
	ProviderRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gringotts",
			Name:      "provider_requests_total",
			Help:      "Balance queries issued per provider, labelled by outcome.",
		},
		[]string{"provider", "outcome"},
	)

	// PriceRequests counts upstream quote requests by source and outcome.
	PriceRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gringotts",
			Name:      "price_requests_total",
			Help:      "Quote requests issued per price source, labelled by outcome.",
		},
		[]string{"source", "outcome"},
	)

	// QuoteCacheLookups counts quote cache hits and misses.
	QuoteCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gringotts",
			Name:      "quote_cache_lookups_total",
			Help:      "Quote cache lookups, labelled hit or miss.",
		},
		[]string{"result"},
	)

	// QueryCycles counts portfolio query cycles.
	QueryCycles = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gringotts",
			Name:      "query_cycles_total",
			Help:      "Completed portfolio query cycles.",
		},
	)
)

// MustRegister installs every collector on the default registry. Call once
// from main.
func MustRegister() {
	prometheus.MustRegister(
		ProviderRequests,
		PriceRequests,
		QuoteCacheLookups,
		QueryCycles,
	)
}

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)
