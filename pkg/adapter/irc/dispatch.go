// Package irc implements the IRC protocol adapter: a single-owner dispatcher
// that holds the connection and channel tables, per-connection read and write
// workers, and the keepalive ticker. All state mutation happens on the
// dispatcher goroutine; workers communicate with it exclusively through
// bounded queues.
package irc

import (
	"context"
	"sort"
	"time"

	"github.com/rs/xid"

	"github.com/marmos91/ircd/internal/adapter/irc/proto"
	"github.com/marmos91/ircd/internal/logger"
	"github.com/marmos91/ircd/internal/telemetry"
)

// Fixed payloads for the registration storm. These reproduce the placeholder
// values the numerics have always carried; they are not live counts.
const (
	maxChannelLen = 32

	luserUsers       = 100
	luserInvisible   = 20
	luserServers     = 1
	luserOps         = 1337
	luserUnknown     = 7
	luserChannels    = 9999
	luserMeClients   = 900
	luserMeServers   = 1
	localUsersCur    = 845
	localUsersMax    = 1000
	globalUsersCur   = 9832
	globalUsersMax   = 23455
	statsHighest     = 9998
	statsClients     = 9000
	statsConnections = 99999
)

const (
	// pongGrace is how long after a probe a connection may stay silent
	// before the keepalive sweep closes it.
	pongGrace = 5 * time.Second

	// channelTopic is the fixed topic echoed on every join. Topics are not
	// mutable state.
	channelTopic = "foobar topic"

	// channelModes and channelLimit are the fixed values echoed by MODE.
	channelModes = "+mtn1"
	channelLimit = "100"

	// defaultQuitMessage substitutes for an absent QUIT farewell.
	defaultQuitMessage = "Leaving"

	// fallbackClientHost stands in for the remote address when a connection
	// record has none, so WHO hostmasks always render.
	fallbackClientHost = "127.0.0.1:1234"
)

// Message is one unit of work for the dispatcher: a parsed command tagged with
// the connection it arrived on.
type Message struct {
	ConnID  xid.ID
	Command proto.Command
}

// client is a connection record. Owned exclusively by the dispatcher
// goroutine; no locking.
type client struct {
	queue      chan []proto.Reply
	remoteAddr string
	close      func()

	nick     string
	user     string
	realName string

	// clientSource is the nick!~nick@localhost prefix used in JOIN/PART
	// echoes, set when the nick is.
	clientSource string

	// gone is set once the client's own QuitReply has been queued. Further
	// replies to this connection are dropped; the record itself is removed by
	// the trailing Disconnected event.
	gone bool

	lastActivity time.Time
	awaitingPong bool
	pingSent     time.Time
}

// channel is a member set. Owned exclusively by the dispatcher goroutine.
type channel struct {
	members map[xid.ID]struct{}
	created time.Time
}

// Config carries the protocol parameters the dispatcher needs.
type Config struct {
	// ServerHost is the source prefix used in all server-originated replies.
	ServerHost string

	// Version is reported in the registration storm.
	Version string

	// MOTD lines are sent one per reply after MotdStart. Empty means none.
	MOTD []string

	// PingFrequency is the idle threshold before a keepalive probe is sent.
	PingFrequency time.Duration

	// InboundQueueLen bounds the shared command queue. Producers block when
	// it is full.
	InboundQueueLen int
}

// Dispatcher is the single-owner core. Run consumes the inbound queue one
// message at a time and is the only goroutine that touches clients and
// channels.
type Dispatcher struct {
	serverHost    string
	version       string
	motd          []string
	pingFrequency time.Duration

	inbound chan Message

	clients  map[xid.ID]*client
	channels map[string]*channel

	started time.Time

	// now is swappable for keepalive tests.
	now func() time.Time

	metrics Metrics
}

// NewDispatcher creates a dispatcher ready to Run. A nil metrics disables
// collection.
func NewDispatcher(cfg Config, metrics Metrics) *Dispatcher {
	queueLen := cfg.InboundQueueLen
	if queueLen <= 0 {
		queueLen = 64
	}
	return &Dispatcher{
		serverHost:    cfg.ServerHost,
		version:       cfg.Version,
		motd:          cfg.MOTD,
		pingFrequency: cfg.PingFrequency,
		inbound:       make(chan Message, queueLen),
		clients:       make(map[xid.ID]*client),
		channels:      make(map[string]*channel),
		started:       time.Now(),
		now:           time.Now,
		metrics:       metrics,
	}
}

// Submit queues a message for the dispatcher, blocking while the inbound
// queue is full. It returns the context error if the server shuts down first.
func (d *Dispatcher) Submit(ctx context.Context, msg Message) error {
	select {
	case d.inbound <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drains the inbound queue until the context is cancelled. The keepalive
// sweep runs on a ticker inside the same loop so that all state access stays
// on this goroutine.
func (d *Dispatcher) Run(ctx context.Context) {
	interval := d.pingFrequency / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("IRC dispatcher running",
		"server_host", d.serverHost, "ping_frequency", d.pingFrequency)

	for {
		select {
		case <-ctx.Done():
			d.drainOnShutdown()
			return
		case msg := <-d.inbound:
			d.process(ctx, msg)
		case now := <-ticker.C:
			d.checkKeepalive(now)
		}
	}
}

// drainOnShutdown closes every egress queue so write workers terminate even
// if their context observation races the queue close.
func (d *Dispatcher) drainOnShutdown() {
	for id, c := range d.clients {
		close(c.queue)
		delete(d.clients, id)
	}
	logger.Debug("IRC dispatcher stopped", "channels", len(d.channels))
}

// process handles one message: housekeeping for lifecycle events, then the
// per-command handler, then delivery of the resulting reply batches.
func (d *Dispatcher) process(ctx context.Context, msg Message) {
	verb := proto.Verb(msg.Command)
	if d.metrics != nil {
		d.metrics.RecordCommand(verb)
	}

	spanCtx, span := telemetry.StartCommandSpan(ctx, verb,
		telemetry.ConnID(msg.ConnID.String()))
	defer span.End()

	if conn, ok := msg.Command.(proto.Connected); ok {
		d.handleConnected(msg.ConnID, conn)
		return
	}

	c, ok := d.clients[msg.ConnID]
	if !ok {
		logger.Debug("Dropping command for unknown connection",
			"conn_id", msg.ConnID, "command", verb)
		return
	}
	c.lastActivity = d.now()

	if _, ok := msg.Command.(proto.Disconnected); ok {
		d.handleDisconnected(msg.ConnID, c)
		return
	}

	out := d.handle(msg.ConnID, c, msg.Command)
	d.deliver(spanCtx, out)
}

// handle runs the command handler and returns the per-recipient reply
// batches.
func (d *Dispatcher) handle(id xid.ID, c *client, cmd proto.Command) map[xid.ID][]proto.Reply {
	out := make(map[xid.ID][]proto.Reply)

	switch v := cmd.(type) {
	case proto.Nick:
		d.handleNick(id, c, v, out)
	case proto.User:
		d.handleUser(id, c, v, out)
	case proto.Join:
		d.handleJoin(id, c, v, out)
	case proto.Part:
		d.handlePart(id, c, v, out)
	case proto.Mode:
		d.handleMode(id, c, v, out)
	case proto.Who:
		d.handleWho(id, c, v, out)
	case proto.PrivMsg:
		d.handlePrivMsg(id, c, v, out)
	case proto.Ping:
		d.handlePing(id, c, v, out)
	case proto.Pong:
		c.awaitingPong = false
	case proto.Quit:
		d.handleQuit(id, c, v, out)
	case proto.Unhandled:
		logger.Debug("Unhandled command", "conn_id", id, "line", v.Raw)
	}

	return out
}

func (d *Dispatcher) handleConnected(id xid.ID, cmd proto.Connected) {
	d.clients[id] = &client{
		queue:        cmd.Queue,
		remoteAddr:   cmd.RemoteAddr,
		close:        cmd.Close,
		lastActivity: d.now(),
	}
	if d.metrics != nil {
		d.metrics.SetClients(len(d.clients))
	}
	logger.Debug("IRC client connected", "conn_id", id, "address", cmd.RemoteAddr)
}

func (d *Dispatcher) handleDisconnected(id xid.ID, c *client) {
	// Channel membership is torn down by QUIT; member sets may still hold
	// this id afterwards, and every iteration over members tolerates that.
	close(c.queue)
	delete(d.clients, id)
	if d.metrics != nil {
		d.metrics.SetClients(len(d.clients))
	}
	logger.Debug("IRC client disconnected", "conn_id", id, "nick", c.nick)
}

func (d *Dispatcher) handleNick(id xid.ID, c *client, cmd proto.Nick, out map[xid.ID][]proto.Reply) {
	if cmd.Nick == "" {
		out[id] = append(out[id], proto.ErrNoNicknameGiven{Host: d.serverHost, Nick: c.nick})
		return
	}

	c.nick = cmd.Nick
	c.clientSource = cmd.Nick + "!~" + cmd.Nick + "@localhost"

	out[id] = append(out[id], d.welcomeStorm(c)...)
	logger.Info("IRC client registered", "conn_id", id, "nick", c.nick)
}

// welcomeStorm builds the fixed registration sequence: thirteen numerics, the
// MOTD banner, one line per configured MOTD entry, and the MOTD terminator.
func (d *Dispatcher) welcomeStorm(c *client) []proto.Reply {
	h, n := d.serverHost, c.nick

	replies := []proto.Reply{
		proto.RplWelcome{Host: h, Nick: n},
		proto.RplYourHost{Host: h, Nick: n, Version: d.version},
		proto.RplCreated{Host: h, Nick: n, Created: d.started.Format(time.ANSIC)},
		proto.RplMyInfo{Host: h, Nick: n, Version: d.version, UserModes: "o", ChanModes: "o"},
		proto.RplISupport{Host: h, Nick: n, ChannelLen: maxChannelLen},
		proto.RplLuserClient{Host: h, Nick: n, Users: luserUsers, Invisible: luserInvisible, Servers: luserServers},
		proto.RplLuserOp{Host: h, Nick: n, Ops: luserOps},
		proto.RplLuserUnknown{Host: h, Nick: n, Unknown: luserUnknown},
		proto.RplLuserChannels{Host: h, Nick: n, Channels: luserChannels},
		proto.RplLuserMe{Host: h, Nick: n, Clients: luserMeClients, Servers: luserMeServers},
		proto.RplLocalUsers{Host: h, Nick: n, Current: localUsersCur, Max: localUsersMax},
		proto.RplGlobalUsers{Host: h, Nick: n, Current: globalUsersCur, Max: globalUsersMax},
		proto.RplStatsDLine{Host: h, Nick: n, Highest: statsHighest, Clients: statsClients, Connections: statsConnections},
		proto.RplMotdStart{Host: h, Nick: n},
	}
	for _, line := range d.motd {
		replies = append(replies, proto.RplMotd{Host: h, Nick: n, Line: line})
	}
	return append(replies, proto.RplEndOfMotd{Host: h, Nick: n})
}

func (d *Dispatcher) handleUser(id xid.ID, c *client, cmd proto.User, out map[xid.ID][]proto.Reply) {
	if cmd.User == "" || cmd.RealName == "" {
		out[id] = append(out[id], proto.ErrNeedMoreParams{Host: d.serverHost, Nick: c.nick, Command: "USER"})
		return
	}
	c.user = cmd.User
	c.realName = cmd.RealName
}

func (d *Dispatcher) handleJoin(id xid.ID, c *client, cmd proto.Join, out map[xid.ID][]proto.Reply) {
	if len(cmd.Channels) == 0 {
		out[id] = append(out[id], proto.ErrNeedMoreParams{Host: d.serverHost, Nick: c.nick, Command: "JOIN"})
		return
	}

	for _, name := range cmd.Channels {
		ch, ok := d.channels[name]
		if !ok {
			ch = &channel{members: make(map[xid.ID]struct{}), created: d.now()}
			d.channels[name] = ch
			if d.metrics != nil {
				d.metrics.SetChannels(len(d.channels))
			}
		}
		ch.members[id] = struct{}{}

		out[id] = append(out[id],
			proto.JoinReply{Client: c.clientSource, Channel: name},
			proto.RplTopic{Host: d.serverHost, Nick: c.nick, Channel: name, Topic: channelTopic},
			proto.RplTopicWhoTime{Host: d.serverHost, Nick: c.nick, Channel: name, SetBy: c.nick, At: d.now()},
			proto.RplNamReply{Host: d.serverHost, Nick: c.nick, Channel: name, Nicks: d.memberNicks(ch)},
			proto.RplEndOfNames{Host: d.serverHost, Nick: c.nick, Channel: name},
		)

		for m := range ch.members {
			if m == id {
				continue
			}
			if _, live := d.clients[m]; !live {
				continue
			}
			out[m] = append(out[m], proto.JoinReply{Client: c.clientSource, Channel: name})
		}
	}
}

// memberNicks lists the nicks of the channel members that have one, sorted
// for stable output.
func (d *Dispatcher) memberNicks(ch *channel) []string {
	nicks := make([]string, 0, len(ch.members))
	for m := range ch.members {
		if mc, ok := d.clients[m]; ok && mc.nick != "" {
			nicks = append(nicks, mc.nick)
		}
	}
	sort.Strings(nicks)
	return nicks
}

func (d *Dispatcher) handlePart(id xid.ID, c *client, cmd proto.Part, out map[xid.ID][]proto.Reply) {
	if len(cmd.Channels) == 0 {
		out[id] = append(out[id], proto.ErrNeedMoreParams{Host: d.serverHost, Nick: c.nick, Command: "PART"})
		return
	}

	for _, name := range cmd.Channels {
		ch, ok := d.channels[name]
		if !ok {
			out[id] = append(out[id], proto.ErrNoSuchChannel{Host: d.serverHost, Nick: c.nick, Channel: name})
			continue
		}
		if _, member := ch.members[id]; !member {
			out[id] = append(out[id], proto.ErrNotOnChannel{Host: d.serverHost, Nick: c.nick, Channel: name})
			continue
		}

		// Broadcast before removal, so the leaver is iterated too and sees
		// its own PART echo.
		logger.Debug("PART broadcast includes leaver", "conn_id", id, "channel", name)
		for m := range ch.members {
			if _, live := d.clients[m]; !live {
				continue
			}
			out[m] = append(out[m], proto.PartReply{Client: c.clientSource, Channel: name})
		}
		delete(ch.members, id)
	}
}

func (d *Dispatcher) handleMode(id xid.ID, c *client, cmd proto.Mode, out map[xid.ID][]proto.Reply) {
	// The channel mode is fixed; this echoes it without touching state.
	out[id] = append(out[id],
		proto.RplChannelModeIs{Host: d.serverHost, Nick: c.nick, Channel: cmd.Channel, Modes: channelModes, Limit: channelLimit},
		proto.RplCreationTime{Host: d.serverHost, Nick: c.nick, Channel: cmd.Channel, At: d.now()},
	)
}

func (d *Dispatcher) handleWho(id xid.ID, c *client, cmd proto.Who, out map[xid.ID][]proto.Reply) {
	if cmd.Mask == "" {
		out[id] = append(out[id], proto.ErrNeedMoreParams{Host: d.serverHost, Nick: c.nick, Command: "WHO"})
		return
	}

	if ch, ok := d.channels[cmd.Mask]; ok {
		members := make([]xid.ID, 0, len(ch.members))
		for m := range ch.members {
			members = append(members, m)
		}
		sort.Slice(members, func(i, j int) bool { return members[i].Compare(members[j]) < 0 })
		for _, m := range members {
			mc, live := d.clients[m]
			if !live {
				continue
			}
			out[id] = append(out[id], d.whoReply(c, cmd.Mask, mc))
		}
	} else {
		for _, mc := range d.clientsSorted() {
			hostmask := mc.nick + "!" + mc.user + "@" + clientHost(mc)
			if proto.Match(hostmask, cmd.Mask) {
				out[id] = append(out[id], d.whoReply(c, cmd.Mask, mc))
			}
		}
	}

	out[id] = append(out[id], proto.RplEndOfWho{Host: d.serverHost, Nick: c.nick, Mask: cmd.Mask})
}

// clientsSorted returns the connection records in a stable order for WHO
// listings.
func (d *Dispatcher) clientsSorted() []*client {
	ids := make([]xid.ID, 0, len(d.clients))
	for id := range d.clients {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Compare(ids[j]) < 0 })

	out := make([]*client, len(ids))
	for i, id := range ids {
		out[i] = d.clients[id]
	}
	return out
}

func (d *Dispatcher) whoReply(recipient *client, mask string, target *client) proto.Reply {
	return proto.RplWhoReply{
		Host:     d.serverHost,
		Nick:     recipient.nick,
		Mask:     mask,
		UserName: target.user,
		UserHost: clientHost(target),
		UserNick: target.nick,
		RealName: target.realName,
	}
}

func clientHost(c *client) string {
	if c.remoteAddr == "" {
		return fallbackClientHost
	}
	return c.remoteAddr
}

func (d *Dispatcher) handlePrivMsg(id xid.ID, c *client, cmd proto.PrivMsg, out map[xid.ID][]proto.Reply) {
	ch, ok := d.channels[cmd.Target]
	if !ok {
		logger.Debug("PRIVMSG to unknown channel", "conn_id", id, "channel", cmd.Target)
		return
	}

	for m := range ch.members {
		if m == id {
			continue
		}
		if _, live := d.clients[m]; !live {
			// Stale member ids are tolerated until QUIT sweeps them.
			continue
		}
		out[m] = append(out[m], proto.PrivMsgReply{
			Nick:    c.nick,
			User:    c.user,
			Host:    clientHost(c),
			Channel: cmd.Target,
			Text:    cmd.Text,
		})
	}
}

func (d *Dispatcher) handlePing(id xid.ID, c *client, cmd proto.Ping, out map[xid.ID][]proto.Reply) {
	if cmd.Token == "" {
		out[id] = append(out[id], proto.ErrNeedMoreParams{Host: d.serverHost, Nick: c.nick, Command: "PING"})
		return
	}
	out[id] = append(out[id], proto.PongReply{Host: d.serverHost, Token: cmd.Token})
}

func (d *Dispatcher) handleQuit(id xid.ID, c *client, cmd proto.Quit, out map[xid.ID][]proto.Reply) {
	message := cmd.Message
	if message == "" {
		message = defaultQuitMessage
	}

	quit := proto.QuitReply{
		ConnID:  id,
		Nick:    c.nick,
		User:    c.user,
		Host:    clientHost(c),
		Message: message,
	}

	for name, ch := range d.channels {
		if _, member := ch.members[id]; !member {
			continue
		}
		delete(ch.members, id)
		for m := range ch.members {
			if _, live := d.clients[m]; !live {
				continue
			}
			out[m] = append(out[m], quit)
		}
		logger.Debug("IRC client left channel on quit", "conn_id", id, "channel", name)
	}

	// The quitter's own copy goes last; its write worker treats it as the
	// final reply. The connection record stays until Disconnected arrives.
	out[id] = append(out[id], quit)
}

// deliver pushes each recipient's batch onto its egress queue in handler
// order. A full queue blocks the dispatcher, pushing backpressure through the
// pipeline instead of dropping replies.
func (d *Dispatcher) deliver(ctx context.Context, out map[xid.ID][]proto.Reply) {
	sent := 0
	for id, batch := range out {
		c, ok := d.clients[id]
		if !ok || c.gone || len(batch) == 0 {
			continue
		}

		select {
		case c.queue <- batch:
			sent += len(batch)
		case <-ctx.Done():
			return
		}

		if quit, ok := batch[len(batch)-1].(proto.QuitReply); ok && quit.ConnID == id {
			c.gone = true
		}
	}
	if d.metrics != nil && sent > 0 {
		d.metrics.RecordRepliesSent(sent)
	}
}

// checkKeepalive probes idle connections and closes the ones that failed to
// answer in time. Called from the dispatcher loop, so it may touch state
// freely.
func (d *Dispatcher) checkKeepalive(now time.Time) {
	for id, c := range d.clients {
		if c.gone {
			continue
		}

		if c.awaitingPong {
			if now.Sub(c.pingSent) > pongGrace {
				logger.Info("Closing connection on ping timeout",
					"conn_id", id, "nick", c.nick, "ping_sent", c.pingSent)
				if d.metrics != nil {
					d.metrics.RecordPingTimeout()
				}
				if c.close != nil {
					c.close()
				}
				c.gone = true
			}
			continue
		}

		if now.Sub(c.lastActivity) >= d.pingFrequency {
			select {
			case c.queue <- []proto.Reply{proto.PingReply{Host: d.serverHost}}:
				c.awaitingPong = true
				c.pingSent = now
			default:
				// A wedged egress queue will be caught by the next sweep or
				// the timeout path.
			}
		}
	}
}
