package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits counts derived-query cache reads served without a facade call.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atrium_cache_hits_total",
		Help: "Derived-query cache reads served from a present entry.",
	}, []string{"kind"})

	// CacheMisses counts reads that had to run the compute function.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atrium_cache_misses_total",
		Help: "Derived-query cache reads that triggered a facade call.",
	}, []string{"kind"})

	// CacheCoalesced counts concurrent misses that piggybacked on an
	// in-flight computation instead of issuing their own.
	CacheCoalesced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atrium_cache_coalesced_total",
		Help: "Cache misses coalesced onto an already in-flight computation.",
	}, []string{"kind"})

	// SuggestDiscarded counts suggestion responses dropped because a newer
	// request had already been dispatched.
	SuggestDiscarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "atrium_suggest_discarded_total",
		Help: "Stale suggestion responses discarded by token comparison.",
	})

	// PollTicks counts refresh callback invocations, by trigger source.
	PollTicks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atrium_poll_ticks_total",
		Help: "Polling refresh invocations.",
	}, []string{"source"})

	// Confirmations counts confirmation gate outcomes.
	Confirmations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atrium_confirmations_total",
		Help: "Confirmation gate outcomes.",
	}, []string{"outcome"})
)
