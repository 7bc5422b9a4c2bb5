package prometheus

import (
	"github.com/marmos91/ircd/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ircMetrics is the Prometheus implementation of metrics.IRCMetrics.
type ircMetrics struct {
	commands     *prometheus.CounterVec
	repliesSent  prometheus.Counter
	pingTimeouts prometheus.Counter
	clients      prometheus.Gauge
	channels     prometheus.Gauge
}

// NewIRCMetrics creates a new Prometheus-backed IRCMetrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewIRCMetrics() metrics.IRCMetrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &ircMetrics{
		commands: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "ircd_commands_total",
				Help: "Total number of processed commands by verb",
			},
			[]string{"verb"}, // "NICK", "JOIN", "PRIVMSG", ...
		),
		repliesSent: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "ircd_replies_sent_total",
				Help: "Total number of replies delivered to client queues",
			},
		),
		pingTimeouts: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "ircd_ping_timeouts_total",
				Help: "Total number of connections closed for missing a keepalive PONG",
			},
		),
		clients: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "ircd_clients",
				Help: "Current number of connected clients",
			},
		),
		channels: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "ircd_channels",
				Help: "Current number of channels",
			},
		),
	}
}

func (m *ircMetrics) RecordCommand(verb string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(verb).Inc()
}

func (m *ircMetrics) RecordRepliesSent(count int) {
	if m == nil {
		return
	}
	m.repliesSent.Add(float64(count))
}

func (m *ircMetrics) RecordPingTimeout() {
	if m == nil {
		return
	}
	m.pingTimeouts.Inc()
}

func (m *ircMetrics) SetClients(count int) {
	if m == nil {
		return
	}
	m.clients.Set(float64(count))
}

func (m *ircMetrics) SetChannels(count int) {
	if m == nil {
		return
	}
	m.channels.Set(float64(count))
}
