// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Polls
	PollsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_polls_created_total",
			Help: "Total number of polls created",
		},
	)

	VotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_votes_total",
			Help: "Vote attempts by outcome",
		},
		[]string{"outcome"}, // accepted, validation, not_found, invalid_state, conflict, unknown
	)

	// Events
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_events_published_total",
			Help: "Events published to the notification channel",
		},
		[]string{"event"},
	)

	EventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_events_dropped_total",
			Help: "Events dropped because a buffer was full",
		},
		[]string{"reason"}, // hub_full, client_full, redis_error
	)

	WebSocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "portfolio_websocket_clients",
			Help: "Currently connected WebSocket clients",
		},
	)

	// Media
	MediaStoreOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_media_store_operations_total",
			Help: "Media store operations by backend, operation and result",
		},
		[]string{"backend", "operation", "result"},
	)

	MediaStoreDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_media_store_duration_seconds",
			Help:    "Media store operation latency in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"backend", "operation"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "portfolio_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// RecordAPIRequest records one completed HTTP request
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordMediaOp records one media store operation
func RecordMediaOp(backend, operation string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	MediaStoreOps.WithLabelValues(backend, operation, result).Inc()
	MediaStoreDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
}
