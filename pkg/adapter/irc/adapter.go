package irc

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/marmos91/ircd/pkg/adapter"
)

// AdapterConfig holds the IRC adapter configuration: the shared TCP settings
// plus the protocol parameters handed to the dispatcher.
type AdapterConfig struct {
	adapter.BaseConfig

	// ServerName is the host presented in all server-originated replies.
	ServerName string

	// Version is reported in the registration storm.
	Version string

	// MOTD lines, one reply each. Empty means no MOTD body.
	MOTD []string

	// PingFrequency is the keepalive idle threshold.
	PingFrequency time.Duration

	// InboundQueueLen bounds the shared dispatcher queue.
	InboundQueueLen int

	// ReplyQueueLen bounds each connection's egress queue.
	ReplyQueueLen int
}

// IRCAdapter serves the IRC protocol on top of the shared TCP lifecycle. One
// dispatcher goroutine owns all protocol state; the adapter only accepts
// sockets and hands each one a connection worker pair.
type IRCAdapter struct {
	*adapter.BaseAdapter

	config     AdapterConfig
	dispatcher *Dispatcher

	dispatcherDone sync.WaitGroup
}

// NewAdapter creates an IRC adapter. metrics may be nil to disable protocol
// metrics; connMetrics may be nil to disable connection lifecycle metrics.
func NewAdapter(config AdapterConfig, metrics Metrics, connMetrics adapter.MetricsRecorder) *IRCAdapter {
	base := adapter.NewBaseAdapter(config.BaseConfig, "IRC")
	base.Metrics = connMetrics

	dispatcher := NewDispatcher(Config{
		ServerHost:      config.ServerName,
		Version:         config.Version,
		MOTD:            config.MOTD,
		PingFrequency:   config.PingFrequency,
		InboundQueueLen: config.InboundQueueLen,
	}, metrics)

	return &IRCAdapter{
		BaseAdapter: base,
		config:      config,
		dispatcher:  dispatcher,
	}
}

// Dispatcher exposes the core for tests.
func (a *IRCAdapter) Dispatcher() *Dispatcher {
	return a.dispatcher
}

// Serve starts the dispatcher and runs the accept loop until the context is
// cancelled.
func (a *IRCAdapter) Serve(ctx context.Context) error {
	a.dispatcherDone.Add(1)
	go func() {
		defer a.dispatcherDone.Done()
		a.dispatcher.Run(a.ShutdownCtx)
	}()

	err := a.ServeWithFactory(ctx, a, nil, nil)
	a.dispatcherDone.Wait()
	return err
}

// NewConnection implements adapter.ConnectionFactory.
func (a *IRCAdapter) NewConnection(conn net.Conn) adapter.ConnectionHandler {
	return NewConn(conn, a.dispatcher, a.config.ReplyQueueLen)
}
