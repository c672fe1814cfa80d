package core

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder exports service operation counts and latencies.
type PrometheusRecorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
}

// NewPrometheusRecorder registers the service collectors on a private
// registry, exposed through Registry for the metrics endpoint.
func NewPrometheusRecorder() *PrometheusRecorder {
	r := &PrometheusRecorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "restaurant_service_operations_total",
			Help: "Service operations by name and outcome.",
		}, []string{"operation", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "restaurant_service_operation_duration_seconds",
			Help:    "Service operation latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	r.registry.MustRegister(r.operations, r.durations)
	return r
}

// Registry returns the registry holding the recorder's collectors.
func (r *PrometheusRecorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe records a service operation outcome.
func (r *PrometheusRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.operations.WithLabelValues(operation, status).Inc()
	r.durations.WithLabelValues(operation).Observe(duration.Seconds())
}
