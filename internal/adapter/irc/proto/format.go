package proto

import (
	"fmt"
	"strings"
)

// Format renders a reply into its exact wire form, without the trailing CRLF.
// The write worker appends the terminator.
func Format(r Reply) string {
	switch v := r.(type) {
	case RplWelcome:
		return fmt.Sprintf(":%s 001 %s :Welcome to the server %s", v.Host, v.Nick, v.Nick)
	case RplYourHost:
		return fmt.Sprintf(":%s 002 %s :Your host is %s, running version %s", v.Host, v.Nick, v.Host, v.Version)
	case RplCreated:
		return fmt.Sprintf(":%s 003 %s :This server was created %s", v.Host, v.Nick, v.Created)
	case RplMyInfo:
		return fmt.Sprintf(":%s 004 %s %s %s %s %s", v.Host, v.Nick, v.Host, v.Version, v.UserModes, v.ChanModes)
	case RplISupport:
		return fmt.Sprintf(":%s 005 %s CHANNELLEN=%d :are supported by this server", v.Host, v.Nick, v.ChannelLen)
	case RplStatsDLine:
		return fmt.Sprintf(":%s 250 %s :Highest connection count: %d (%d clients) (%d connections received)",
			v.Host, v.Nick, v.Highest, v.Clients, v.Connections)
	case RplLuserClient:
		return fmt.Sprintf(":%s 251 %s :There are %d users and %d invisible on %d servers",
			v.Host, v.Nick, v.Users, v.Invisible, v.Servers)
	case RplLuserOp:
		return fmt.Sprintf(":%s 252 %s %d :IRC Operators online", v.Host, v.Nick, v.Ops)
	case RplLuserUnknown:
		return fmt.Sprintf(":%s 253 %s %d :unknown connection(s)", v.Host, v.Nick, v.Unknown)
	case RplLuserChannels:
		return fmt.Sprintf(":%s 254 %s %d :channels formed", v.Host, v.Nick, v.Channels)
	case RplLuserMe:
		return fmt.Sprintf(":%s 255 %s :I have %d clients and %d servers", v.Host, v.Nick, v.Clients, v.Servers)
	case RplLocalUsers:
		return fmt.Sprintf(":%s 265 %s %d %d :Current local users %d, max %d",
			v.Host, v.Nick, v.Current, v.Max, v.Current, v.Max)
	case RplGlobalUsers:
		return fmt.Sprintf(":%s 266 %s %d %d :Current global users %d, max %d",
			v.Host, v.Nick, v.Current, v.Max, v.Current, v.Max)
	case RplMotdStart:
		return fmt.Sprintf(":%s 375 %s :- %s Message of the Day -", v.Host, v.Nick, v.Host)
	case RplMotd:
		return fmt.Sprintf(":%s 372 %s :- %s", v.Host, v.Nick, v.Line)
	case RplEndOfMotd:
		return fmt.Sprintf(":%s 376 %s :End of /MOTD command.", v.Host, v.Nick)
	case RplTopic:
		return fmt.Sprintf(":%s 332 %s %s :%s", v.Host, v.Nick, v.Channel, v.Topic)
	case RplTopicWhoTime:
		return fmt.Sprintf(":%s 333 %s %s %s %d", v.Host, v.Nick, v.Channel, v.SetBy, v.At.Unix())
	case RplNamReply:
		return fmt.Sprintf(":%s 353 %s = %s :%s", v.Host, v.Nick, v.Channel, strings.Join(v.Nicks, " "))
	case RplEndOfNames:
		return fmt.Sprintf(":%s 366 %s %s :End of /NAMES list.", v.Host, v.Nick, v.Channel)
	case RplChannelModeIs:
		return fmt.Sprintf(":%s 324 %s %s %s %s", v.Host, v.Nick, v.Channel, v.Modes, v.Limit)
	case RplCreationTime:
		return fmt.Sprintf(":%s 329 %s %s %d", v.Host, v.Nick, v.Channel, v.At.Unix())
	case RplWhoReply:
		return fmt.Sprintf(":%s 352 %s %s %s %s %s %s H :0 %s",
			v.Host, v.Nick, v.Mask, v.UserName, v.UserHost, v.Host, v.UserNick, v.RealName)
	case RplEndOfWho:
		return fmt.Sprintf(":%s 315 %s %s :End of /WHO list.", v.Host, v.Nick, v.Mask)
	case JoinReply:
		return fmt.Sprintf(":%s JOIN %s", v.Client, v.Channel)
	case PartReply:
		return fmt.Sprintf(":%s PART %s", v.Client, v.Channel)
	case PrivMsgReply:
		return fmt.Sprintf(":%s!%s@%s PRIVMSG %s :%s", v.Nick, v.User, v.Host, v.Channel, v.Text)
	case QuitReply:
		return fmt.Sprintf(":%s!%s@%s QUIT :%s", v.Nick, v.User, v.Host, v.Message)
	case PingReply:
		return fmt.Sprintf("PING :%s", v.Host)
	case PongReply:
		return fmt.Sprintf(":%s PONG %s :%s", v.Host, v.Host, v.Token)
	case ErrNoNicknameGiven:
		return fmt.Sprintf(":%s 431 %s :No nickname given", v.Host, v.Nick)
	case ErrNeedMoreParams:
		return fmt.Sprintf(":%s 461 %s %s :Not enough parameters", v.Host, v.Nick, v.Command)
	case ErrNoSuchChannel:
		return fmt.Sprintf(":%s 403 %s %s :No such channel", v.Host, v.Nick, v.Channel)
	case ErrNotOnChannel:
		return fmt.Sprintf(":%s 442 %s %s :You're not on that channel", v.Host, v.Nick, v.Channel)
	default:
		return ""
	}
}
