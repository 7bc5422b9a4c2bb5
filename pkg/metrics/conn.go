package metrics

// ConnectionMetrics provides observability for TCP connection lifecycle.
//
// This interface matches the adapter layer's MetricsRecorder so a single
// implementation can be passed straight to the listener. Pass nil to disable
// collection.
type ConnectionMetrics interface {
	// RecordConnectionAccepted increments the total accepted connections counter.
	RecordConnectionAccepted()

	// RecordConnectionClosed increments the total closed connections counter.
	RecordConnectionClosed()

	// RecordConnectionForceClosed increments the force-closed connections
	// counter. Called when connections are forcibly closed after the shutdown
	// timeout.
	RecordConnectionForceClosed()

	// SetActiveConnections updates the current connection count.
	SetActiveConnections(count int32)
}
