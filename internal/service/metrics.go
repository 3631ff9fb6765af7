package service

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsObserver counts use cases and records their latency in a private
// Prometheus registry. The CLI is short-lived, so the registry is flushed to
// a node-exporter textfile rather than scraped.
type MetricsObserver struct {
	registry *prometheus.Registry
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	items    *prometheus.CounterVec
}

func NewMetricsObserver() *MetricsObserver {
	m := &MetricsObserver{
		registry: prometheus.NewRegistry(),
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobwbs",
			Name:      "use_case_total",
			Help:      "Service use cases executed, by name and outcome.",
		}, []string{"use_case", "success"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jobwbs",
			Name:      "use_case_duration_seconds",
			Help:      "Service use case latency.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 7),
		}, []string{"use_case"}),
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobwbs",
			Name:      "items_written_total",
			Help:      "WBS line items written by saves and seeding.",
		}, []string{"use_case"}),
	}
	m.registry.MustRegister(m.total, m.duration, m.items)
	return m
}

func (m *MetricsObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	m.total.WithLabelValues(event.Name, strconv.FormatBool(event.Success)).Inc()
	m.duration.WithLabelValues(event.Name).Observe(event.Duration.Seconds())
	if n, ok := event.Fields["items_written"].(int); ok && event.Success && n > 0 {
		m.items.WithLabelValues(event.Name).Add(float64(n))
	}
}

// Gatherer exposes the registry, mainly for tests.
func (m *MetricsObserver) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile atomically writes the current metrics in the text exposition
// format. An empty path is a no-op.
func (m *MetricsObserver) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
