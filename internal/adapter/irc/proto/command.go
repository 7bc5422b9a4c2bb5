// Package proto implements the IRC wire protocol: line framing, command
// parsing, and reply rendering. It is a pure package with no knowledge of
// sockets or dispatch; the adapter layer feeds it bytes and forwards the
// command values it produces.
package proto

// Command is a parsed client command. It is a closed set of variants; the
// dispatcher switches on the concrete type. Synthetic lifecycle events
// (Connected, Disconnected) share the same set so that a connection's whole
// history flows through one queue.
type Command interface {
	isCommand()
}

// Connected is a synthetic event emitted by the read worker before any other
// message for a connection. Queue is the producing end of the connection's
// reply queue; Close force-closes the underlying socket and is used by the
// keepalive sweep.
type Connected struct {
	Queue      chan []Reply
	RemoteAddr string
	Close      func()
}

// Disconnected is a synthetic event emitted by the read worker after the
// socket is gone. It is always the last message for a connection.
type Disconnected struct{}

// Nick carries a NICK command. An empty Nick means the parameter was absent.
type Nick struct {
	Nick string
}

// User carries a USER command. Mode is accepted but ignored. Empty fields
// mean the parameter was absent.
type User struct {
	User     string
	Mode     string
	RealName string
}

// Join carries a JOIN command with the requested channels in client order.
// A nil slice means no channel parameter was supplied.
type Join struct {
	Channels []string
}

// Part carries a PART command.
type Part struct {
	Channels []string
}

// Mode carries a MODE command. Any mode arguments are discarded at parse
// time; the server only echoes a fixed channel mode.
type Mode struct {
	Channel string
}

// Who carries a WHO command. An empty Mask means the parameter was absent.
type Who struct {
	Mask string
}

// PrivMsg carries a PRIVMSG command.
type PrivMsg struct {
	Target string
	Text   string
}

// Ping carries a client PING. An empty Token means the parameter was absent.
type Ping struct {
	Token string
}

// Pong carries a client PONG answering a server keepalive probe.
type Pong struct {
	Token string
}

// Quit carries a QUIT command. An empty Message means no farewell was given.
type Quit struct {
	Message string
}

// Unhandled carries a line whose command token is not recognized. It produces
// no reply; the dispatcher logs it and moves on.
type Unhandled struct {
	Raw string
}

func (Connected) isCommand()    {}
func (Disconnected) isCommand() {}
func (Nick) isCommand()         {}
func (User) isCommand()         {}
func (Join) isCommand()         {}
func (Part) isCommand()         {}
func (Mode) isCommand()         {}
func (Who) isCommand()          {}
func (PrivMsg) isCommand()      {}
func (Ping) isCommand()         {}
func (Pong) isCommand()         {}
func (Quit) isCommand()         {}
func (Unhandled) isCommand()    {}

// Verb returns the wire-level command token for logging and metrics.
func Verb(cmd Command) string {
	switch cmd.(type) {
	case Connected:
		return "CONNECTED"
	case Disconnected:
		return "DISCONNECTED"
	case Nick:
		return "NICK"
	case User:
		return "USER"
	case Join:
		return "JOIN"
	case Part:
		return "PART"
	case Mode:
		return "MODE"
	case Who:
		return "WHO"
	case PrivMsg:
		return "PRIVMSG"
	case Ping:
		return "PING"
	case Pong:
		return "PONG"
	case Quit:
		return "QUIT"
	case Unhandled:
		return "UNHANDLED"
	default:
		return "UNKNOWN"
	}
}
