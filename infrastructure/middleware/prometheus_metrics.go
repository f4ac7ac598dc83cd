// Package middleware provides cross-cutting concerns for the grading engine.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/edulytics/go-classrank/internal/ports"
)

// Compile-time verification that PrometheusMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It provides real-time monitoring of unit execution
// performance, records processed, and class-level grading outcomes.
type PrometheusMetrics struct {
	recordsProcessed *prometheus.CounterVec
	classAverage     *prometheus.GaugeVec
	executionLatency *prometheus.HistogramVec
	operationCounter *prometheus.CounterVec
	systemGauges     *prometheus.GaugeVec
	scoreHistogram   *prometheus.HistogramVec
}

// NewPrometheusMetrics creates a new PrometheusMetrics instance and registers
// all metrics with the given registerer. A nil registerer falls back to the
// default Prometheus registry.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		// Grading-specific metrics.
		recordsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grading_records_processed_total",
				Help: "Total number of performance records processed by grading units.",
			},
			[]string{"pipeline_id", "class_id", "unit"},
		),
		classAverage: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "grading_class_average",
				Help: "Most recent weighted class average computed per class.",
			},
			[]string{"pipeline_id", "class_id", "unit"},
		),
		scoreHistogram: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "grading_score_distribution",
				Help:    "Distribution of individual scores on the grading scale.",
				Buckets: prometheus.LinearBuckets(0, 1, 11),
			},
			[]string{"class_id", "unit"},
		),

		// General execution metrics for comprehensive observability.
		executionLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "grading_unit_execution_duration_seconds",
				Help:    "Execution time of grading unit operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "unit"},
		),
		operationCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grading_unit_operations_total",
				Help: "Total number of operations performed by grading units.",
			},
			[]string{"operation", "status", "unit"},
		),
		systemGauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "grading_system_state",
				Help: "Current system state values for the grading engine.",
			},
			[]string{"metric", "unit"},
		),
	}
}

// unitLabel extracts the unit label, defaulting to "unknown" when callers
// omit it.
func unitLabel(labels map[string]string) string {
	unit, ok := labels["unit"]
	if !ok || unit == "" {
		return "unknown"
	}
	return unit
}

// RecordLatency implements the MetricsCollector interface by recording
// execution latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	labels map[string]string,
) {
	pm.executionLatency.WithLabelValues(operation, unitLabel(labels)).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// Prometheus counters.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	unit := unitLabel(labels)

	switch metric {
	case "grading_records_processed_total":
		pm.recordsProcessed.WithLabelValues(
			labels["pipeline_id"],
			labels["class_id"],
			unit,
		).Add(value)
	case "grading_unit_failures_total":
		pm.operationCounter.WithLabelValues(labels["operation"], "failure", unit).Add(value)
	default:
		pm.operationCounter.WithLabelValues(metric, "success", unit).Add(value)
	}
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauge values.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, labels map[string]string,
) {
	unit := unitLabel(labels)

	switch metric {
	case "grading_class_average":
		pm.classAverage.WithLabelValues(
			labels["pipeline_id"],
			labels["class_id"],
			unit,
		).Set(value)
	default:
		pm.systemGauges.WithLabelValues(metric, unit).Set(value)
	}
}

// RecordHistogram implements the MetricsCollector interface by recording
// values in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordHistogram(
	metric string, value float64, labels map[string]string,
) {
	unit := unitLabel(labels)

	switch metric {
	case "grading_score_distribution":
		pm.scoreHistogram.WithLabelValues(labels["class_id"], unit).Observe(value)
	default:
		pm.executionLatency.WithLabelValues(metric, unit).Observe(value)
	}
}
