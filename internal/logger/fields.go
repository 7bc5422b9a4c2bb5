package logger

import (
	"log/slog"
)

// Standard field keys for structured logging.
// Use these keys consistently across all log statements for log aggregation
// and querying.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Protocol & Operation
	// ========================================================================
	KeyProtocol  = "protocol"   // Protocol type: irc
	KeyCommand   = "command"    // Command verb: NICK, JOIN, PRIVMSG, etc.
	KeyStatus    = "status"     // Numeric reply code (001, 403, etc.)
	KeyStatusMsg = "status_msg" // Human-readable status message

	// ========================================================================
	// IRC State
	// ========================================================================
	KeyNick     = "nick"     // Client nickname
	KeyUser     = "user"     // Client username
	KeyChannel  = "channel"  // Channel name
	KeyChannels = "channels" // Channel count
	KeyMask     = "mask"     // WHO mask
	KeyMembers  = "members"  // Channel member count
	KeyReplies  = "replies"  // Replies produced/sent

	// ========================================================================
	// Client Identification
	// ========================================================================
	KeyClientIP   = "client_ip"   // Client IP address
	KeyClientPort = "client_port" // Client source port
	KeyClientHost = "client_host" // Client host (addr:port as seen on accept)

	// ========================================================================
	// Session & Connection
	// ========================================================================
	KeyConnectionID = "conn_id" // Connection identifier

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeyQueueLen   = "queue_len"   // Queue occupancy
)

// ============================================================================
// Field constructors for type safety
// These functions provide type-safe construction of slog.Attr values.
// ============================================================================

// TraceID returns a slog.Attr for OpenTelemetry trace ID
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for OpenTelemetry span ID
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// Protocol returns a slog.Attr for protocol type
func Protocol(proto string) slog.Attr {
	return slog.String(KeyProtocol, proto)
}

// Command returns a slog.Attr for the command verb
func Command(verb string) slog.Attr {
	return slog.String(KeyCommand, verb)
}

// Status returns a slog.Attr for a numeric reply code
func Status(code int) slog.Attr {
	return slog.Int(KeyStatus, code)
}

// StatusMsg returns a slog.Attr for human-readable status message
func StatusMsg(msg string) slog.Attr {
	return slog.String(KeyStatusMsg, msg)
}

// Nick returns a slog.Attr for a client nickname
func Nick(nick string) slog.Attr {
	return slog.String(KeyNick, nick)
}

// User returns a slog.Attr for a client username
func User(user string) slog.Attr {
	return slog.String(KeyUser, user)
}

// Channel returns a slog.Attr for a channel name
func Channel(name string) slog.Attr {
	return slog.String(KeyChannel, name)
}

// Channels returns a slog.Attr for a channel count
func Channels(n int) slog.Attr {
	return slog.Int(KeyChannels, n)
}

// Mask returns a slog.Attr for a WHO mask
func Mask(mask string) slog.Attr {
	return slog.String(KeyMask, mask)
}

// Members returns a slog.Attr for a channel member count
func Members(n int) slog.Attr {
	return slog.Int(KeyMembers, n)
}

// Replies returns a slog.Attr for a reply count
func Replies(n int) slog.Attr {
	return slog.Int(KeyReplies, n)
}

// ClientIP returns a slog.Attr for client IP address
func ClientIP(addr string) slog.Attr {
	return slog.String(KeyClientIP, addr)
}

// ClientPort returns a slog.Attr for client source port
func ClientPort(port int) slog.Attr {
	return slog.Int(KeyClientPort, port)
}

// ClientHost returns a slog.Attr for client host
func ClientHost(host string) slog.Attr {
	return slog.String(KeyClientHost, host)
}

// ConnectionID returns a slog.Attr for connection identifier
func ConnectionID(id string) slog.Attr {
	return slog.String(KeyConnectionID, id)
}

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// QueueLen returns a slog.Attr for queue occupancy
func QueueLen(n int) slog.Attr {
	return slog.Int(KeyQueueLen, n)
}
