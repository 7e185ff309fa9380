package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hearth_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hearth_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// VotesCast counts vote operations by target type and direction.
	VotesCast = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hearth_votes_cast_total",
		Help: "Total number of votes cast by target type and direction",
	}, []string{"target", "direction"})

	// WriteAdmissionRejections counts writes denied by the rate governor.
	WriteAdmissionRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hearth_write_admission_rejections_total",
		Help: "Total number of writes rejected by the sliding-window governor",
	}, []string{"operation"})

	// IdentityLookupFailures counts failed identity gateway lookups.
	IdentityLookupFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hearth_identity_lookup_failures_total",
		Help: "Total number of failed identity gateway lookups",
	})

	// IdentityLookupLatency records identity gateway lookup latency.
	IdentityLookupLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hearth_identity_lookup_latency_seconds",
		Help:    "Identity gateway lookup latency in seconds",
		Buckets: prometheus.DefBuckets,
	})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// RecordVote increments the votes counter for the target type and direction.
func RecordVote(target string, up bool) {
	direction := "down"
	if up {
		direction = "up"
	}
	VotesCast.WithLabelValues(target, direction).Inc()
}

// RecordWriteRejection increments the governor rejection counter for the operation.
func RecordWriteRejection(operation string) {
	WriteAdmissionRejections.WithLabelValues(operation).Inc()
}
