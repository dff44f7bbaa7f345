// Package observability provides metrics and tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitness_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fitness_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// DatabaseErrors counts failed statements by operation.
	DatabaseErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitness_database_errors_total",
		Help: "Total number of failed database statements",
	}, []string{"operation"})

	// LikeToggles counts like toggles by outcome ("liked" or "unliked").
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitness_like_toggles_total",
		Help: "Total number of workout like toggles by result",
	}, []string{"result"})

	// WorkoutsCreated counts stored workouts by visibility.
	WorkoutsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitness_workouts_created_total",
		Help: "Total number of workouts created",
	}, []string{"visibility"})

	// ExerciseLogRows counts history rows written, by source ("workout" or "manual").
	ExerciseLogRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitness_exercise_log_rows_total",
		Help: "Total number of exercise log rows written",
	}, []string{"source"})

	// CacheLookups counts cache-aside lookups by cache name and result.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitness_cache_lookups_total",
		Help: "Cache lookups by cache and result",
	}, []string{"cache", "result"})

	// UpstreamLatency records latency of calls to external APIs.
	UpstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fitness_upstream_latency_seconds",
		Help:    "Latency of calls to external services",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"upstream", "outcome"})

	// AvatarUploads counts stored avatars by encoded format.
	AvatarUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitness_avatar_uploads_total",
		Help: "Total number of avatars stored by format",
	}, []string{"format"})

	// WebSocketConnectionsTotal is the gauge of total WebSocket connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fitness_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketEventsTotal counts events fanned out to WebSocket clients by type.
	WebSocketEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitness_websocket_events_total",
		Help: "Total WebSocket events by type",
	}, []string{"event_type"})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by hub and reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitness_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})
)
