package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "supportchat",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "supportchat",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "supportchat",
			Name:      "turns_total",
			Help:      "Total chat turns by outcome",
		},
		[]string{"outcome"},
	)

	ConversationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "supportchat",
			Name:      "conversations_created_total",
			Help:      "Total conversations created",
		},
	)

	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "supportchat",
			Name:      "cache_hits_total",
			Help:      "History reads served from the cache",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "supportchat",
			Name:      "cache_misses_total",
			Help:      "History reads that fell back to the durable store",
		},
	)

	ProviderErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "supportchat",
			Name:      "provider_errors_total",
			Help:      "Total reply generation failures",
		},
	)
)

// Handler returns the Prometheus metrics handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRequest records an HTTP request.
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordTurn records a completed chat turn. outcome is "ok", "fallback" or
// "error".
func RecordTurn(outcome string) {
	TurnsTotal.WithLabelValues(outcome).Inc()
}

// RecordConversationCreated counts a newly minted conversation.
func RecordConversationCreated() {
	ConversationsCreatedTotal.Inc()
}

// RecordCacheHit counts a history read served from the cache.
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss counts a history read that fell back to the store.
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}

// RecordProviderError counts a failed provider call.
func RecordProviderError() {
	ProviderErrorsTotal.Inc()
}
