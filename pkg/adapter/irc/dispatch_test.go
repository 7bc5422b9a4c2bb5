package irc

import (
	"context"
	"testing"
	"time"

	"github.com/rs/xid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/ircd/internal/adapter/irc/proto"
)

func newTestDispatcher(motd []string) *Dispatcher {
	return NewDispatcher(Config{
		ServerHost:    "localhost",
		Version:       "0.1.0",
		MOTD:          motd,
		PingFrequency: time.Minute,
	}, nil)
}

// connect registers a connection with the dispatcher and returns its id and
// reply queue. The queue is generously buffered so delivery never blocks in
// tests.
func connect(t *testing.T, d *Dispatcher, addr string) (xid.ID, chan []proto.Reply) {
	t.Helper()

	id := xid.New()
	queue := make(chan []proto.Reply, 64)
	d.process(context.Background(), Message{ConnID: id, Command: proto.Connected{
		Queue:      queue,
		RemoteAddr: addr,
	}})
	require.Contains(t, d.clients, id)
	return id, queue
}

func send(d *Dispatcher, id xid.ID, cmd proto.Command) {
	d.process(context.Background(), Message{ConnID: id, Command: cmd})
}

// recvBatch pops one queued reply batch without blocking.
func recvBatch(t *testing.T, queue chan []proto.Reply) []proto.Reply {
	t.Helper()

	select {
	case batch := <-queue:
		return batch
	default:
		t.Fatal("expected a reply batch, queue is empty")
		return nil
	}
}

// drain discards whatever the queue currently holds.
func drain(queue chan []proto.Reply) {
	for {
		select {
		case <-queue:
		default:
			return
		}
	}
}

func assertEmpty(t *testing.T, queue chan []proto.Reply) {
	t.Helper()

	select {
	case batch := <-queue:
		t.Fatalf("expected no replies, got %#v", batch)
	default:
	}
}

func TestNick_WelcomeStorm(t *testing.T) {
	d := newTestDispatcher(nil)
	id, queue := connect(t, d, "127.0.0.1:5000")

	send(d, id, proto.Nick{Nick: "JOE"})

	batch := recvBatch(t, queue)
	require.Len(t, batch, 15)

	welcome, ok := batch[0].(proto.RplWelcome)
	require.True(t, ok)
	assert.Equal(t, "JOE", welcome.Nick)
	assert.Equal(t, "localhost", welcome.Host)

	_, ok = batch[13].(proto.RplMotdStart)
	assert.True(t, ok)
	_, ok = batch[14].(proto.RplEndOfMotd)
	assert.True(t, ok)

	assert.Equal(t, "JOE!~JOE@localhost", d.clients[id].clientSource)
}

func TestNick_WelcomeStormWithMotd(t *testing.T) {
	d := newTestDispatcher([]string{"first line", "second line"})
	id, queue := connect(t, d, "127.0.0.1:5000")

	send(d, id, proto.Nick{Nick: "JOE"})

	batch := recvBatch(t, queue)
	require.Len(t, batch, 17)

	motd1, ok := batch[14].(proto.RplMotd)
	require.True(t, ok)
	assert.Equal(t, "first line", motd1.Line)
	motd2, ok := batch[15].(proto.RplMotd)
	require.True(t, ok)
	assert.Equal(t, "second line", motd2.Line)
	_, ok = batch[16].(proto.RplEndOfMotd)
	assert.True(t, ok)
}

func TestNick_Empty(t *testing.T) {
	d := newTestDispatcher(nil)
	id, queue := connect(t, d, "")

	send(d, id, proto.Nick{})

	batch := recvBatch(t, queue)
	require.Len(t, batch, 1)
	_, ok := batch[0].(proto.ErrNoNicknameGiven)
	assert.True(t, ok)
}

func TestUser_MissingParams(t *testing.T) {
	d := newTestDispatcher(nil)
	id, queue := connect(t, d, "")

	send(d, id, proto.User{User: "joe"}) // no realname

	batch := recvBatch(t, queue)
	require.Len(t, batch, 1)
	needMore, ok := batch[0].(proto.ErrNeedMoreParams)
	require.True(t, ok)
	assert.Equal(t, "USER", needMore.Command)
}

func TestUser_Stored(t *testing.T) {
	d := newTestDispatcher(nil)
	id, queue := connect(t, d, "")

	send(d, id, proto.User{User: "joe", Mode: "0", RealName: "Joe Doe"})

	assertEmpty(t, queue)
	assert.Equal(t, "joe", d.clients[id].user)
	assert.Equal(t, "Joe Doe", d.clients[id].realName)
}

func register(t *testing.T, d *Dispatcher, nick string) (xid.ID, chan []proto.Reply) {
	t.Helper()

	id, queue := connect(t, d, "127.0.0.1:5000")
	send(d, id, proto.Nick{Nick: nick})
	recvBatch(t, queue) // drain the registration storm
	return id, queue
}

func TestJoin_FirstMember(t *testing.T) {
	d := newTestDispatcher(nil)
	id, queue := register(t, d, "alice")

	send(d, id, proto.Join{Channels: []string{"#go"}})

	batch := recvBatch(t, queue)
	require.Len(t, batch, 5)

	join, ok := batch[0].(proto.JoinReply)
	require.True(t, ok)
	assert.Equal(t, "alice!~alice@localhost", join.Client)
	assert.Equal(t, "#go", join.Channel)

	topic, ok := batch[1].(proto.RplTopic)
	require.True(t, ok)
	assert.Equal(t, "foobar topic", topic.Topic)

	whoTime, ok := batch[2].(proto.RplTopicWhoTime)
	require.True(t, ok)
	assert.Equal(t, "alice", whoTime.SetBy)

	nam, ok := batch[3].(proto.RplNamReply)
	require.True(t, ok)
	assert.Equal(t, []string{"alice"}, nam.Nicks)

	_, ok = batch[4].(proto.RplEndOfNames)
	assert.True(t, ok)
}

func TestJoin_EchoesToMembers(t *testing.T) {
	d := newTestDispatcher(nil)
	aliceID, aliceQueue := register(t, d, "alice")
	bobID, bobQueue := register(t, d, "bob")

	send(d, aliceID, proto.Join{Channels: []string{"#go"}})
	recvBatch(t, aliceQueue)

	send(d, bobID, proto.Join{Channels: []string{"#go"}})

	bobBatch := recvBatch(t, bobQueue)
	require.Len(t, bobBatch, 5)
	nam, ok := bobBatch[3].(proto.RplNamReply)
	require.True(t, ok)
	assert.Equal(t, []string{"alice", "bob"}, nam.Nicks)

	aliceBatch := recvBatch(t, aliceQueue)
	require.Len(t, aliceBatch, 1)
	join, ok := aliceBatch[0].(proto.JoinReply)
	require.True(t, ok)
	assert.Equal(t, "bob!~bob@localhost", join.Client)
}

func TestJoin_NoChannels(t *testing.T) {
	d := newTestDispatcher(nil)
	id, queue := register(t, d, "alice")

	send(d, id, proto.Join{})

	batch := recvBatch(t, queue)
	require.Len(t, batch, 1)
	needMore, ok := batch[0].(proto.ErrNeedMoreParams)
	require.True(t, ok)
	assert.Equal(t, "JOIN", needMore.Command)
}

func TestPart_BroadcastToMembers(t *testing.T) {
	d := newTestDispatcher(nil)
	aliceID, aliceQueue := register(t, d, "alice")
	bobID, bobQueue := register(t, d, "bob")

	send(d, aliceID, proto.Join{Channels: []string{"#go"}})
	recvBatch(t, aliceQueue)
	send(d, bobID, proto.Join{Channels: []string{"#go"}})
	recvBatch(t, bobQueue)
	recvBatch(t, aliceQueue)

	send(d, aliceID, proto.Part{Channels: []string{"#go"}})

	// The remaining member sees the departure
	bobBatch := recvBatch(t, bobQueue)
	require.Len(t, bobBatch, 1)
	part, ok := bobBatch[0].(proto.PartReply)
	require.True(t, ok)
	assert.Equal(t, "alice!~alice@localhost", part.Client)
	assert.Equal(t, "#go", part.Channel)

	// Alice is no longer a member
	drain(aliceQueue)
	send(d, aliceID, proto.Part{Channels: []string{"#go"}})
	again := recvBatch(t, aliceQueue)
	require.Len(t, again, 1)
	_, ok = again[0].(proto.ErrNotOnChannel)
	assert.True(t, ok)
}

func TestPart_UnknownChannel(t *testing.T) {
	d := newTestDispatcher(nil)
	id, queue := register(t, d, "alice")

	send(d, id, proto.Part{Channels: []string{"#nope"}})

	batch := recvBatch(t, queue)
	require.Len(t, batch, 1)
	noSuch, ok := batch[0].(proto.ErrNoSuchChannel)
	require.True(t, ok)
	assert.Equal(t, "#nope", noSuch.Channel)
}

func TestPart_NoChannels(t *testing.T) {
	d := newTestDispatcher(nil)
	id, queue := register(t, d, "alice")

	send(d, id, proto.Part{})

	batch := recvBatch(t, queue)
	require.Len(t, batch, 1)
	needMore, ok := batch[0].(proto.ErrNeedMoreParams)
	require.True(t, ok)
	assert.Equal(t, "PART", needMore.Command)
}

func TestMode_FixedEcho(t *testing.T) {
	d := newTestDispatcher(nil)
	id, queue := register(t, d, "alice")

	// MODE answers even for channels that do not exist
	send(d, id, proto.Mode{Channel: "#go"})

	batch := recvBatch(t, queue)
	require.Len(t, batch, 2)

	modeIs, ok := batch[0].(proto.RplChannelModeIs)
	require.True(t, ok)
	assert.Equal(t, "+mtn1", modeIs.Modes)
	assert.Equal(t, "100", modeIs.Limit)

	_, ok = batch[1].(proto.RplCreationTime)
	assert.True(t, ok)
}

func TestWho_NoMask(t *testing.T) {
	d := newTestDispatcher(nil)
	id, queue := register(t, d, "alice")

	send(d, id, proto.Who{})

	batch := recvBatch(t, queue)
	require.Len(t, batch, 1)
	needMore, ok := batch[0].(proto.ErrNeedMoreParams)
	require.True(t, ok)
	assert.Equal(t, "WHO", needMore.Command)
}

func TestWho_Channel(t *testing.T) {
	d := newTestDispatcher(nil)
	aliceID, aliceQueue := register(t, d, "alice")
	bobID, bobQueue := register(t, d, "bob")

	send(d, aliceID, proto.Join{Channels: []string{"#go"}})
	recvBatch(t, aliceQueue)
	send(d, bobID, proto.Join{Channels: []string{"#go"}})
	recvBatch(t, bobQueue)
	recvBatch(t, aliceQueue)

	send(d, aliceID, proto.Who{Mask: "#go"})

	batch := recvBatch(t, aliceQueue)
	require.Len(t, batch, 3) // two members plus the terminator

	// Members are listed in connection order
	first, ok := batch[0].(proto.RplWhoReply)
	require.True(t, ok)
	assert.Equal(t, "alice", first.UserNick)
	second, ok := batch[1].(proto.RplWhoReply)
	require.True(t, ok)
	assert.Equal(t, "bob", second.UserNick)

	end, ok := batch[2].(proto.RplEndOfWho)
	require.True(t, ok)
	assert.Equal(t, "#go", end.Mask)
}

func TestWho_GlobMask(t *testing.T) {
	d := newTestDispatcher(nil)
	aliceID, aliceQueue := register(t, d, "alice")
	_, bobQueue := register(t, d, "bob")

	send(d, aliceID, proto.User{User: "al", Mode: "0", RealName: "Alice"})

	send(d, aliceID, proto.Who{Mask: "alice*"})

	batch := recvBatch(t, aliceQueue)
	require.Len(t, batch, 2)

	who, ok := batch[0].(proto.RplWhoReply)
	require.True(t, ok)
	assert.Equal(t, "alice", who.UserNick)
	assert.Equal(t, "al", who.UserName)

	_, ok = batch[1].(proto.RplEndOfWho)
	assert.True(t, ok)
	assertEmpty(t, bobQueue)
}

func TestPrivMsg_FanOut(t *testing.T) {
	d := newTestDispatcher(nil)
	aliceID, aliceQueue := register(t, d, "alice")
	bobID, bobQueue := register(t, d, "bob")

	send(d, aliceID, proto.Join{Channels: []string{"#go"}})
	recvBatch(t, aliceQueue)
	send(d, bobID, proto.Join{Channels: []string{"#go"}})
	recvBatch(t, bobQueue)
	recvBatch(t, aliceQueue)

	send(d, aliceID, proto.PrivMsg{Target: "#go", Text: "hello"})

	bobBatch := recvBatch(t, bobQueue)
	require.Len(t, bobBatch, 1)
	msg, ok := bobBatch[0].(proto.PrivMsgReply)
	require.True(t, ok)
	assert.Equal(t, "alice", msg.Nick)
	assert.Equal(t, "hello", msg.Text)

	// The sender never receives its own message
	assertEmpty(t, aliceQueue)
}

func TestPrivMsg_UnknownChannelDropped(t *testing.T) {
	d := newTestDispatcher(nil)
	id, queue := register(t, d, "alice")

	send(d, id, proto.PrivMsg{Target: "#nope", Text: "hello"})

	assertEmpty(t, queue)
}

func TestPing(t *testing.T) {
	d := newTestDispatcher(nil)
	id, queue := register(t, d, "alice")

	send(d, id, proto.Ping{})
	batch := recvBatch(t, queue)
	require.Len(t, batch, 1)
	needMore, ok := batch[0].(proto.ErrNeedMoreParams)
	require.True(t, ok)
	assert.Equal(t, "PING", needMore.Command)

	send(d, id, proto.Ping{Token: "token123"})
	batch = recvBatch(t, queue)
	require.Len(t, batch, 1)
	pong, ok := batch[0].(proto.PongReply)
	require.True(t, ok)
	assert.Equal(t, "token123", pong.Token)
}

func TestQuit(t *testing.T) {
	d := newTestDispatcher(nil)
	aliceID, aliceQueue := register(t, d, "alice")
	bobID, bobQueue := register(t, d, "bob")

	send(d, aliceID, proto.Join{Channels: []string{"#go"}})
	recvBatch(t, aliceQueue)
	send(d, bobID, proto.Join{Channels: []string{"#go"}})
	recvBatch(t, bobQueue)
	recvBatch(t, aliceQueue)

	send(d, aliceID, proto.Quit{})

	// Survivors see one quit notice with the default farewell
	bobBatch := recvBatch(t, bobQueue)
	require.Len(t, bobBatch, 1)
	quit, ok := bobBatch[0].(proto.QuitReply)
	require.True(t, ok)
	assert.Equal(t, "alice", quit.Nick)
	assert.Equal(t, "Leaving", quit.Message)

	// The quitter's own copy closes out its queue and marks it gone
	aliceBatch := recvBatch(t, aliceQueue)
	require.Len(t, aliceBatch, 1)
	own, ok := aliceBatch[0].(proto.QuitReply)
	require.True(t, ok)
	assert.Equal(t, aliceID, own.ConnID)
	assert.True(t, d.clients[aliceID].gone)

	// Further traffic no longer reaches the quitter
	send(d, bobID, proto.PrivMsg{Target: "#go", Text: "anyone?"})
	assertEmpty(t, aliceQueue)

	// The record is removed only by the trailing Disconnected
	send(d, aliceID, proto.Disconnected{})
	assert.NotContains(t, d.clients, aliceID)
}

func TestUnknownConnectionDropped(t *testing.T) {
	d := newTestDispatcher(nil)

	// Must not panic or create state
	send(d, xid.New(), proto.Nick{Nick: "ghost"})
	assert.Empty(t, d.clients)
}

func TestSubmit_ShutdownUnblocks(t *testing.T) {
	d := newTestDispatcher(nil)
	d.inbound = make(chan Message) // unbuffered so Submit must block

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Submit(ctx, Message{ConnID: xid.New(), Command: proto.Quit{}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_ClosesQueuesOnShutdown(t *testing.T) {
	d := newTestDispatcher(nil)
	id, queue := connect(t, d, "")
	_ = id

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop")
	}

	_, open := <-queue
	assert.False(t, open)
}
