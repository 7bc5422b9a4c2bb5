package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for protocol operations.
// These follow OpenTelemetry semantic conventions where applicable.
// Protocol-agnostic keys use standard prefixes, IRC-specific keys use "irc.".
const (
	// Client attributes (protocol-agnostic)
	AttrClientIP   = "client.ip"
	AttrClientAddr = "client.address"
	AttrClientPort = "client.port"
	AttrClientHost = "client.host"

	// Protocol attributes
	AttrProtocol = "protocol.name"

	// IRC-specific attributes
	AttrIRCCommand = "irc.command"
	AttrIRCChannel = "irc.channel"
	AttrIRCNick    = "irc.nick"
	AttrIRCConnID  = "irc.conn_id"
	AttrIRCReplies = "irc.replies"
)

// Span names for operations.
// Format: irc.<COMMAND> for protocol commands, <component>.<operation> for
// internal operations.
const (
	SpanIRCRequest = "irc.request"

	SpanIRCNick    = "irc.NICK"
	SpanIRCUser    = "irc.USER"
	SpanIRCJoin    = "irc.JOIN"
	SpanIRCPart    = "irc.PART"
	SpanIRCMode    = "irc.MODE"
	SpanIRCWho     = "irc.WHO"
	SpanIRCPrivMsg = "irc.PRIVMSG"
	SpanIRCPing    = "irc.PING"
	SpanIRCPong    = "irc.PONG"
	SpanIRCQuit    = "irc.QUIT"

	SpanDispatch  = "dispatcher.dispatch"
	SpanKeepalive = "dispatcher.keepalive"
)

// ClientIP returns an attribute for client IP address
func ClientIP(ip string) attribute.KeyValue {
	return attribute.String(AttrClientIP, ip)
}

// ClientAddr returns an attribute for the full client address (ip:port)
func ClientAddr(addr string) attribute.KeyValue {
	return attribute.String(AttrClientAddr, addr)
}

// Protocol returns an attribute for the protocol name
func Protocol(name string) attribute.KeyValue {
	return attribute.String(AttrProtocol, name)
}

// Command returns an attribute for the IRC command verb
func Command(verb string) attribute.KeyValue {
	return attribute.String(AttrIRCCommand, verb)
}

// Channel returns an attribute for an IRC channel name
func Channel(name string) attribute.KeyValue {
	return attribute.String(AttrIRCChannel, name)
}

// Nick returns an attribute for an IRC nickname
func Nick(nick string) attribute.KeyValue {
	return attribute.String(AttrIRCNick, nick)
}

// ConnID returns an attribute for the connection identifier
func ConnID(id string) attribute.KeyValue {
	return attribute.String(AttrIRCConnID, id)
}

// ReplyCount returns an attribute for the number of replies produced
func ReplyCount(n int) attribute.KeyValue {
	return attribute.Int(AttrIRCReplies, n)
}

// StartCommandSpan starts a span for one dispatched IRC command.
// The span name is "irc.<VERB>" and the command attribute is set.
func StartCommandSpan(ctx context.Context, verb string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	spanAttrs := append([]attribute.KeyValue{
		Protocol("irc"),
		Command(verb),
	}, attrs...)

	return StartSpan(ctx, "irc."+verb, trace.WithAttributes(spanAttrs...))
}

// StartProtocolSpan starts a span for a protocol-level operation with a
// custom name.
func StartProtocolSpan(ctx context.Context, protocol, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	spanAttrs := append([]attribute.KeyValue{Protocol(protocol)}, attrs...)
	return StartSpan(ctx, protocol+"."+operation, trace.WithAttributes(spanAttrs...))
}
