package proto

import (
	"time"

	"github.com/rs/xid"
)

// Reply is a server-to-client response. Like Command it is a closed set of
// variants; each carries the fields it needs to render and nothing
// pre-formatted. Format turns a Reply into its exact wire representation
// (without the trailing CRLF).
type Reply interface {
	isReply()
}

// Registration storm numerics. The luser/stats payloads are fixed placeholder
// values, not live counts.

type RplWelcome struct {
	Host string
	Nick string
}

type RplYourHost struct {
	Host    string
	Nick    string
	Version string
}

type RplCreated struct {
	Host    string
	Nick    string
	Created string
}

type RplMyInfo struct {
	Host      string
	Nick      string
	Version   string
	UserModes string
	ChanModes string
}

type RplISupport struct {
	Host       string
	Nick       string
	ChannelLen int
}

type RplStatsDLine struct {
	Host        string
	Nick        string
	Highest     int
	Clients     int
	Connections int
}

type RplLuserClient struct {
	Host      string
	Nick      string
	Users     int
	Invisible int
	Servers   int
}

type RplLuserOp struct {
	Host string
	Nick string
	Ops  int
}

type RplLuserUnknown struct {
	Host    string
	Nick    string
	Unknown int
}

type RplLuserChannels struct {
	Host     string
	Nick     string
	Channels int
}

type RplLuserMe struct {
	Host    string
	Nick    string
	Clients int
	Servers int
}

type RplLocalUsers struct {
	Host    string
	Nick    string
	Current int
	Max     int
}

type RplGlobalUsers struct {
	Host    string
	Nick    string
	Current int
	Max     int
}

type RplMotdStart struct {
	Host string
	Nick string
}

type RplMotd struct {
	Host string
	Nick string
	Line string
}

type RplEndOfMotd struct {
	Host string
	Nick string
}

// Channel numerics.

type RplTopic struct {
	Host    string
	Nick    string
	Channel string
	Topic   string
}

type RplTopicWhoTime struct {
	Host    string
	Nick    string
	Channel string
	SetBy   string
	At      time.Time
}

type RplNamReply struct {
	Host    string
	Nick    string
	Channel string
	Nicks   []string
}

type RplEndOfNames struct {
	Host    string
	Nick    string
	Channel string
}

type RplChannelModeIs struct {
	Host    string
	Nick    string
	Channel string
	Modes   string
	Limit   string
}

type RplCreationTime struct {
	Host    string
	Nick    string
	Channel string
	At      time.Time
}

type RplWhoReply struct {
	Host     string
	Nick     string
	Mask     string
	UserName string
	UserHost string
	UserNick string
	RealName string
}

type RplEndOfWho struct {
	Host string
	Nick string
	Mask string
}

// Message echoes carrying a client source prefix.

// JoinReply is the JOIN echo sent to the joining client and to the other
// channel members. Client is the joiner's nick!~nick@localhost string.
type JoinReply struct {
	Client  string
	Channel string
}

// PartReply is the PART echo broadcast to the remaining channel members.
type PartReply struct {
	Client  string
	Channel string
}

// PrivMsgReply fans a channel message out to every member but the sender.
type PrivMsgReply struct {
	Nick    string
	User    string
	Host    string
	Channel string
	Text    string
}

// QuitReply is broadcast to surviving channel members and, last, to the
// quitting connection itself. A write worker observing its own ConnID here
// treats it as the final reply and stops.
type QuitReply struct {
	ConnID  xid.ID
	Nick    string
	User    string
	Host    string
	Message string
}

// PingReply is the server-initiated keepalive probe.
type PingReply struct {
	Host string
}

// PongReply answers a client PING.
type PongReply struct {
	Host  string
	Token string
}

// Error numerics.

type ErrNoNicknameGiven struct {
	Host string
	Nick string
}

type ErrNeedMoreParams struct {
	Host    string
	Nick    string
	Command string
}

type ErrNoSuchChannel struct {
	Host    string
	Nick    string
	Channel string
}

type ErrNotOnChannel struct {
	Host    string
	Nick    string
	Channel string
}

func (RplWelcome) isReply() {}
func (RplYourHost) isReply() {}
func (RplCreated) isReply() {}
func (RplMyInfo) isReply() {}
func (RplISupport) isReply() {}
func (RplStatsDLine) isReply() {}
func (RplLuserClient) isReply() {}
func (RplLuserOp) isReply() {}
func (RplLuserUnknown) isReply() {}
func (RplLuserChannels) isReply() {}
func (RplLuserMe) isReply() {}
func (RplLocalUsers) isReply() {}
func (RplGlobalUsers) isReply() {}
func (RplMotdStart) isReply() {}
func (RplMotd) isReply() {}
func (RplEndOfMotd) isReply() {}
func (RplTopic) isReply() {}
func (RplTopicWhoTime) isReply() {}
func (RplNamReply) isReply() {}
func (RplEndOfNames) isReply() {}
func (RplChannelModeIs) isReply() {}
func (RplCreationTime) isReply() {}
func (RplWhoReply) isReply() {}
func (RplEndOfWho) isReply() {}
func (JoinReply) isReply() {}
func (PartReply) isReply() {}
func (PrivMsgReply) isReply() {}
func (QuitReply) isReply() {}
func (PingReply) isReply() {}
func (PongReply) isReply() {}
func (ErrNoNicknameGiven) isReply() {}
func (ErrNeedMoreParams) isReply() {}
func (ErrNoSuchChannel) isReply() {}
func (ErrNotOnChannel) isReply() {}
