// Package metrics provides Prometheus metrics for a bankcore run.
//
// A run is a short-lived batch job, so metrics are written to a node_exporter
// textfile at exit instead of being served over HTTP.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hance08/bankcore/internal/model"
)

// Metrics holds all Prometheus metrics for the transfer core.
type Metrics struct {
	registry *prometheus.Registry

	// Transfer metrics
	TransfersTotal  *prometheus.CounterVec
	TransferLatency prometheus.Histogram
	LegsTotal       *prometheus.CounterVec

	// Recovery metrics
	RecoveryClassified *prometheus.CounterVec
	RecoverySkipped    prometheus.Counter

	// Worker pool metrics
	WorkerPoolActive  prometheus.Gauge
	WorkerPoolPending prometheus.Gauge
}

// NewMetrics creates metrics on a private registry with the given namespace.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		TransfersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfers_total",
			Help:      "Transfers attempted by outcome (applied, rejected, failed)",
		}, []string{"outcome"}),
		TransferLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transfer_latency_seconds",
			Help:      "Transfer latency in seconds, including both syncs",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		LegsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "legs_applied_total",
			Help:      "Transfer legs durably applied by kind (debit, credit)",
		}, []string{"leg"}),

		RecoveryClassified: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recovery_requests_total",
			Help:      "Requests classified by the recovery pass (completed, repair, pending)",
		}, []string{"class"}),
		RecoverySkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recovery_skipped_records_total",
			Help:      "Log records skipped as inconsistent during recovery",
		}),

		WorkerPoolActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "worker_pool_active",
			Help:      "Number of workers currently running a transfer",
		}),
		WorkerPoolPending: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "worker_pool_pending",
			Help:      "Number of requests waiting in the worker pool queue",
		}),
	}
}

// RecordTransfer records one finished transfer call.
func (m *Metrics) RecordTransfer(outcome model.Outcome, duration time.Duration) {
	m.TransfersTotal.WithLabelValues(outcome.String()).Inc()
	m.TransferLatency.Observe(duration.Seconds())
}

func (m *Metrics) RecordLeg(leg string) {
	m.LegsTotal.WithLabelValues(leg).Inc()
}

// RecordRecovery records the classification produced by one recovery pass.
func (m *Metrics) RecordRecovery(completed, repairs, pending, skipped int) {
	m.RecoveryClassified.WithLabelValues("completed").Add(float64(completed))
	m.RecoveryClassified.WithLabelValues("repair").Add(float64(repairs))
	m.RecoveryClassified.WithLabelValues("pending").Add(float64(pending))
	m.RecoverySkipped.Add(float64(skipped))
}

// UpdateWorkerPool updates worker pool gauges.
func (m *Metrics) UpdateWorkerPool(active int64, pending int) {
	m.WorkerPoolActive.Set(float64(active))
	m.WorkerPoolPending.Set(float64(pending))
}

// WriteTextfile writes the current values in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
