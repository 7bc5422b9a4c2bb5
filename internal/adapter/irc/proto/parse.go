package proto

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"
)

// MaxLineLength is the maximum accepted line length including the CRLF
// terminator, per the usual IRC limit.
const MaxLineLength = 512

var (
	// ErrClosed signals a clean end of input: no bytes buffered when the
	// stream ended.
	ErrClosed = errors.New("connection closed")

	// ErrInvalidData signals unframeable input: non-UTF-8 bytes, an
	// over-long line, or a stream that ended mid-line. The connection must
	// be torn down.
	ErrInvalidData = errors.New("invalid data on wire")
)

// Framer splits an incrementally fed byte stream into CRLF-terminated lines.
// Bytes without a terminator are buffered until the next Push.
type Framer struct {
	buf []byte
}

// Push appends p to the residual buffer and returns every complete line now
// available, terminators stripped. It returns ErrInvalidData when a complete
// line is not valid UTF-8 or when the unterminated residual exceeds
// MaxLineLength; the caller must drop the connection in either case.
func (f *Framer) Push(p []byte) ([]string, error) {
	f.buf = append(f.buf, p...)

	var lines []string
	for {
		i := bytes.Index(f.buf, []byte("\r\n"))
		if i < 0 {
			break
		}
		line := f.buf[:i]
		f.buf = f.buf[i+2:]
		if !utf8.Valid(line) {
			return lines, ErrInvalidData
		}
		lines = append(lines, string(line))
	}

	if len(f.buf) > MaxLineLength {
		return lines, ErrInvalidData
	}
	return lines, nil
}

// Close reports how the stream ended: ErrClosed for a clean close with an
// empty residual, ErrInvalidData when bytes were left without a terminator.
func (f *Framer) Close() error {
	if len(f.buf) == 0 {
		return ErrClosed
	}
	return ErrInvalidData
}

// ParseCommand parses one framed line into a Command. The grammar is relaxed
// IRC: an optional :source prefix (ignored for client messages), an uppercase
// command token, then whitespace-separated parameters where a leading ':'
// introduces a trailing parameter that swallows the rest of the line.
// Unrecognized commands map to Unhandled.
func ParseCommand(line string) Command {
	rest := strings.TrimLeft(line, " ")

	// Client-originated source prefixes carry no information for us.
	if strings.HasPrefix(rest, ":") {
		if i := strings.IndexByte(rest, ' '); i >= 0 {
			rest = strings.TrimLeft(rest[i+1:], " ")
		} else {
			return Unhandled{Raw: line}
		}
	}

	verb, params := splitParams(rest)

	switch strings.ToUpper(verb) {
	case "NICK":
		return Nick{Nick: param(params, 0)}
	case "USER":
		return User{
			User:     param(params, 0),
			Mode:     param(params, 1),
			RealName: strings.TrimPrefix(param(params, 3), ":"),
		}
	case "JOIN":
		return Join{Channels: splitChannels(param(params, 0))}
	case "PART":
		return Part{Channels: splitChannels(param(params, 0))}
	case "MODE":
		return Mode{Channel: param(params, 0)}
	case "WHO":
		return Who{Mask: param(params, 0)}
	case "PRIVMSG":
		return PrivMsg{Target: param(params, 0), Text: param(params, 1)}
	case "PING":
		return Ping{Token: param(params, 0)}
	case "PONG":
		return Pong{Token: param(params, 0)}
	case "QUIT":
		return Quit{Message: param(params, 0)}
	default:
		return Unhandled{Raw: line}
	}
}

// splitParams separates the command token from its parameters. A parameter
// opening with ':' consumes the remainder of the line, embedded spaces
// included, with the ':' stripped.
func splitParams(s string) (verb string, params []string) {
	for len(s) > 0 {
		s = strings.TrimLeft(s, " ")
		if len(s) == 0 {
			break
		}
		if verb != "" && strings.HasPrefix(s, ":") {
			params = append(params, s[1:])
			break
		}
		token := s
		if i := strings.IndexByte(s, ' '); i >= 0 {
			token = s[:i]
			s = s[i+1:]
		} else {
			s = ""
		}
		if verb == "" {
			verb = token
		} else {
			params = append(params, token)
		}
	}
	return verb, params
}

// param returns params[i] or the empty string when the parameter is absent.
func param(params []string, i int) string {
	if i < len(params) {
		return params[i]
	}
	return ""
}

// splitChannels splits a comma-separated channel list, preserving order.
func splitChannels(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, ch := range strings.Split(s, ",") {
		if ch != "" {
			out = append(out, ch)
		}
	}
	return out
}
