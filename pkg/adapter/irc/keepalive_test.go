package irc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/ircd/internal/adapter/irc/proto"
)

func TestKeepalive_ProbesIdleConnection(t *testing.T) {
	d := newTestDispatcher(nil)
	id, queue := register(t, d, "alice")

	base := time.Now()
	d.clients[id].lastActivity = base

	// Not yet idle: no probe
	d.checkKeepalive(base.Add(30 * time.Second))
	assertEmpty(t, queue)
	assert.False(t, d.clients[id].awaitingPong)

	// Idle threshold reached: probe queued once
	d.checkKeepalive(base.Add(time.Minute))
	batch := recvBatch(t, queue)
	require.Len(t, batch, 1)
	_, ok := batch[0].(proto.PingReply)
	assert.True(t, ok)
	assert.True(t, d.clients[id].awaitingPong)

	// Already awaiting: no second probe
	d.checkKeepalive(base.Add(time.Minute + 3*time.Second))
	assertEmpty(t, queue)
	assert.False(t, d.clients[id].gone)
}

func TestKeepalive_ClosesOnMissedPong(t *testing.T) {
	d := newTestDispatcher(nil)
	id, queue := register(t, d, "alice")

	closed := false
	d.clients[id].close = func() { closed = true }

	base := time.Now()
	d.clients[id].lastActivity = base

	d.checkKeepalive(base.Add(time.Minute))
	recvBatch(t, queue) // the probe

	// Within the grace window the connection survives
	d.checkKeepalive(base.Add(time.Minute + 4*time.Second))
	assert.False(t, closed)

	// Five seconds after the unanswered probe the socket is closed
	d.checkKeepalive(base.Add(time.Minute + 6*time.Second))
	assert.True(t, closed)
	assert.True(t, d.clients[id].gone)
}

func TestKeepalive_PongClearsProbe(t *testing.T) {
	d := newTestDispatcher(nil)
	id, queue := register(t, d, "alice")

	base := time.Now()
	d.clients[id].lastActivity = base

	d.checkKeepalive(base.Add(time.Minute))
	recvBatch(t, queue)
	require.True(t, d.clients[id].awaitingPong)

	send(d, id, proto.Pong{Token: "localhost"})
	assert.False(t, d.clients[id].awaitingPong)

	// The answered probe does not close the connection later
	closed := false
	d.clients[id].close = func() { closed = true }
	d.checkKeepalive(base.Add(3 * time.Minute))
	assert.False(t, closed)
}

func TestKeepalive_SkipsGoneConnections(t *testing.T) {
	d := newTestDispatcher(nil)
	id, queue := register(t, d, "alice")

	d.clients[id].gone = true
	d.clients[id].lastActivity = time.Now().Add(-time.Hour)

	d.checkKeepalive(time.Now())
	assertEmpty(t, queue)
}
