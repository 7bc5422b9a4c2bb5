package irc

// Metrics allows the dispatcher to record protocol-level metrics.
// A nil Metrics disables collection.
type Metrics interface {
	// RecordCommand counts one processed command by verb.
	RecordCommand(verb string)

	// RecordRepliesSent counts replies pushed to egress queues.
	RecordRepliesSent(count int)

	// RecordPingTimeout counts connections dropped by the keepalive ticker.
	RecordPingTimeout()

	// SetClients tracks the current size of the connection table.
	SetClients(count int)

	// SetChannels tracks the current size of the channel table.
	SetChannels(count int)
}
