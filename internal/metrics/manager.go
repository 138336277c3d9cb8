package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	CounterCacheLookups   *prometheus.CounterVec
	CounterCacheDedup     prometheus.Counter
	CounterFetchErrors    *prometheus.CounterVec
	CounterCacheOversized *prometheus.CounterVec

	CounterBackendRequests *prometheus.CounterVec
	HistBackendDuration    *prometheus.HistogramVec

	CounterOnboardingSubmits prometheus.Counter
}

func SetupPrometheus() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func NewTestManager() *Manager {
	return NewManager("titanlift", "test", prometheus.NewRegistry())
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterCacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "query_cache_lookups_total",
			Help:      "Query cache lookups by query name and outcome",
		}, []string{"query", "outcome"}),
		CounterCacheDedup: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "query_cache_dedup_total",
			Help:      "Lookups that joined an in-flight fetch instead of starting one",
		}),
		CounterFetchErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "query_fetch_errors_total",
			Help:      "Failed query fetches by query name",
		}, []string{"query"}),
		CounterCacheOversized: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "query_cache_oversized_total",
			Help:      "Fetched values too large for the cache store, by query name",
		}, []string{"query"}),
		CounterBackendRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "backend_requests_total",
			Help:      "Requests sent to the TitanLift API by method and status class",
		}, []string{"method", "status"}),
		HistBackendDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "backend_request_duration_seconds",
			Help:      "Duration of requests sent to the TitanLift API",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method"}),
		CounterOnboardingSubmits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "onboarding_submits_total",
			Help:      "Completed onboarding submissions",
		}),
	}
}
