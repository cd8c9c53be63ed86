// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package metrics provides Prometheus instrumentation for the HTTP surface,
// the Storage Engine, and the Queue Port/Consumer.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dp1_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dp1_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dp1_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Storage Engine Metrics (C4)
	StorageOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dp1_storage_op_duration_seconds",
			Help:    "Duration of KV Port operations issued by the Storage Engine",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "resource"},
	)

	StorageOpErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dp1_storage_op_errors_total",
			Help: "Total number of Storage Engine operation errors",
		},
		[]string{"operation", "resource"},
	)

	// Signer Metrics (C3)
	SignOperations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dp1_sign_operations_total",
			Help: "Total number of Ed25519 signing operations",
		},
	)

	// Queue Metrics (C2, C5, C6)
	QueuePublishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dp1_queue_publish_total",
			Help: "Total number of messages published to the Queue Port",
		},
		[]string{"operation", "result"},
	)

	QueueConsumeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dp1_queue_consume_total",
			Help: "Total number of messages drained by the Queue Consumer",
		},
		[]string{"operation", "result"},
	)

	QueueBatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dp1_queue_batch_duration_seconds",
			Help:    "Duration of a single Queue Consumer batch drain",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	// URL resolver metrics (§4.4.5)
	URLResolveTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dp1_url_resolve_total",
			Help: "Total number of channel playlist URL resolutions",
		},
		[]string{"kind", "result"}, // kind: self_hosted|external
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordStorageOp records a Storage Engine KV operation.
func RecordStorageOp(operation, resource string, duration time.Duration, err error) {
	StorageOpDuration.WithLabelValues(operation, resource).Observe(duration.Seconds())
	if err != nil {
		StorageOpErrors.WithLabelValues(operation, resource).Inc()
	}
}

// RecordSign records a completed signing operation.
func RecordSign() {
	SignOperations.Inc()
}

// RecordQueuePublish records a Queue Port publish outcome.
func RecordQueuePublish(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	QueuePublishTotal.WithLabelValues(operation, result).Inc()
}

// RecordQueueConsume records a single message's consumption outcome.
func RecordQueueConsume(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	QueueConsumeTotal.WithLabelValues(operation, result).Inc()
}

// RecordQueueBatch records the wall-clock duration of a consumer batch.
func RecordQueueBatch(duration time.Duration) {
	QueueBatchDuration.Observe(duration.Seconds())
}

// RecordURLResolve records a channel playlist URL resolution outcome.
func RecordURLResolve(kind string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	URLResolveTotal.WithLabelValues(kind, result).Inc()
}
