package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for decode traffic.
type Metrics struct {
	Decodes        *prometheus.CounterVec
	DecodeDuration prometheus.Histogram
	SequenceLength prometheus.Histogram
}

// NewMetrics builds the decode instruments and registers them with reg.
// Passing nil skips registration so tests can build instruments freely.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Decodes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lattice_decodes_total",
				Help: "Total number of decode requests",
			},
			[]string{"model", "outcome"},
		),
		DecodeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name: "lattice_decode_duration_seconds",
				Help: "Duration of decode requests",
			},
		),
		SequenceLength: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lattice_sequence_length",
				Help:    "Observation sequence lengths submitted for decoding",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
	}

	if reg != nil {
		reg.MustRegister(m.Decodes, m.DecodeDuration, m.SequenceLength)
	}
	return m
}

// ObserveDecode records one decode attempt. Safe to call on a nil receiver,
// so instrumented code paths need no guard when metrics are disabled.
func (m *Metrics) ObserveDecode(model, outcome string, duration time.Duration, length int) {
	if m == nil {
		return
	}
	m.Decodes.WithLabelValues(model, outcome).Inc()
	m.DecodeDuration.Observe(duration.Seconds())
	m.SequenceLength.Observe(float64(length))
}

// StoreMetrics holds the Prometheus instruments for model store traffic,
// recorded by the instrumentation middleware.
type StoreMetrics struct {
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
}

// NewStoreMetrics builds the store instruments and registers them with reg.
// Passing nil skips registration so tests can build instruments freely.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	m := &StoreMetrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lattice_store_operations_total",
				Help: "Total number of model store operations",
			},
			[]string{"op", "outcome"},
		),
		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "lattice_store_operation_duration_seconds",
				Help: "Duration of model store operations",
			},
			[]string{"op"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.Operations, m.OperationDuration)
	}
	return m
}

// ObserveOp records one store operation. Safe to call on a nil receiver.
func (m *StoreMetrics) ObserveOp(op string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Operations.WithLabelValues(op, outcome).Inc()
	m.OperationDuration.WithLabelValues(op).Observe(duration.Seconds())
}
