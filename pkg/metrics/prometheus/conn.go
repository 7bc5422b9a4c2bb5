package prometheus

import (
	"github.com/marmos91/ircd/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// connMetrics is the Prometheus implementation of metrics.ConnectionMetrics.
type connMetrics struct {
	accepted    prometheus.Counter
	closed      prometheus.Counter
	forceClosed prometheus.Counter
	active      prometheus.Gauge
}

// NewConnectionMetrics creates a new Prometheus-backed ConnectionMetrics
// instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewConnectionMetrics() metrics.ConnectionMetrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &connMetrics{
		accepted: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "ircd_connections_accepted_total",
				Help: "Total number of accepted TCP connections",
			},
		),
		closed: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "ircd_connections_closed_total",
				Help: "Total number of closed TCP connections",
			},
		),
		forceClosed: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "ircd_connections_force_closed_total",
				Help: "Total number of connections force-closed after shutdown timeout",
			},
		),
		active: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "ircd_connections_active",
				Help: "Current number of active TCP connections",
			},
		),
	}
}

func (m *connMetrics) RecordConnectionAccepted() {
	if m == nil {
		return
	}
	m.accepted.Inc()
}

func (m *connMetrics) RecordConnectionClosed() {
	if m == nil {
		return
	}
	m.closed.Inc()
}

func (m *connMetrics) RecordConnectionForceClosed() {
	if m == nil {
		return
	}
	m.forceClosed.Inc()
}

func (m *connMetrics) SetActiveConnections(count int32) {
	if m == nil {
		return
	}
	m.active.Set(float64(count))
}
