package metrics

// IRCMetrics provides observability for the IRC dispatcher.
//
// Implementations collect metrics about command throughput, reply fan-out,
// keepalive timeouts, and server population. This interface is optional -
// pass nil to disable metrics collection with zero overhead.
//
// Example usage:
//
//	// With metrics enabled
//	metrics.InitRegistry()
//	ircMetrics := prometheus.NewIRCMetrics()
//	adapter := irc.NewAdapter(config, ircMetrics, connMetrics)
//
//	// Without metrics (pass nil for zero overhead)
//	adapter := irc.NewAdapter(config, nil, nil)
type IRCMetrics interface {
	// RecordCommand records a processed command by its verb
	// (e.g., "NICK", "JOIN", "PRIVMSG").
	RecordCommand(verb string)

	// RecordRepliesSent records replies delivered to client queues.
	RecordRepliesSent(count int)

	// RecordPingTimeout records a connection closed for failing to answer a
	// keepalive PING.
	RecordPingTimeout()

	// SetClients updates the current connected client count.
	SetClients(count int)

	// SetChannels updates the current channel count.
	SetChannels(count int)
}
