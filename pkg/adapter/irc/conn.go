package irc

import (
	"context"
	"errors"
	"net"
	"sync"

	"github.com/rs/xid"

	"github.com/marmos91/ircd/internal/adapter/irc/proto"
	"github.com/marmos91/ircd/internal/logger"
)

const readBufferSize = 4096

// Conn owns one client socket. Serve runs the read worker on the calling
// goroutine and the write worker on a second one; the pair communicates with
// the dispatcher only through the inbound queue and the per-connection reply
// queue.
type Conn struct {
	id         xid.ID
	sock       net.Conn
	dispatcher *Dispatcher
	queueLen   int

	closeOnce sync.Once
}

// NewConn wraps an accepted socket. queueLen bounds the reply queue; the
// dispatcher blocks when it is full.
func NewConn(sock net.Conn, dispatcher *Dispatcher, queueLen int) *Conn {
	if queueLen <= 0 {
		queueLen = 16
	}
	return &Conn{
		id:         xid.New(),
		sock:       sock,
		dispatcher: dispatcher,
		queueLen:   queueLen,
	}
}

// ID returns the connection identifier used as the dispatcher table key.
func (c *Conn) ID() xid.ID {
	return c.id
}

// Serve drives the connection until the socket closes or the context is
// cancelled. It emits exactly one Connected before any command and exactly
// one Disconnected before returning.
func (c *Conn) Serve(ctx context.Context) {
	queue := make(chan []proto.Reply, c.queueLen)

	connected := proto.Connected{
		Queue:      queue,
		RemoteAddr: c.sock.RemoteAddr().String(),
		Close:      c.closeSock,
	}
	if err := c.dispatcher.Submit(ctx, Message{ConnID: c.id, Command: connected}); err != nil {
		c.closeSock()
		return
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.writeLoop(ctx, queue)
	}()

	c.readLoop(ctx)

	// The read side is done: the dispatcher removes the record and closes
	// the reply queue, which releases the write worker if it is still up.
	_ = c.dispatcher.Submit(ctx, Message{ConnID: c.id, Command: proto.Disconnected{}})

	wg.Wait()
}

// readLoop frames the byte stream into lines, parses them, and forwards each
// command to the dispatcher. Any framing error tears the connection down.
func (c *Conn) readLoop(ctx context.Context) {
	defer c.closeSock()

	var framer proto.Framer
	buf := make([]byte, readBufferSize)

	for {
		n, err := c.sock.Read(buf)
		if n > 0 {
			lines, ferr := framer.Push(buf[:n])
			for _, line := range lines {
				cmd := proto.ParseCommand(line)
				if serr := c.dispatcher.Submit(ctx, Message{ConnID: c.id, Command: cmd}); serr != nil {
					return
				}
			}
			if ferr != nil {
				logger.Debug("Dropping connection on framing error",
					"conn_id", c.id, "error", ferr)
				return
			}
		}
		if err != nil {
			if cerr := framer.Close(); errors.Is(cerr, proto.ErrInvalidData) {
				logger.Debug("Connection ended mid-line", "conn_id", c.id)
			}
			return
		}
	}
}

// writeLoop drains the reply queue, rendering each reply and appending the
// CRLF terminator. It exits when the queue is closed, the context is
// cancelled, or it observes the connection's own quit reply.
func (c *Conn) writeLoop(ctx context.Context, queue chan []proto.Reply) {
	for {
		select {
		case <-ctx.Done():
			return
		case batch, ok := <-queue:
			if !ok {
				return
			}
			for _, reply := range batch {
				if _, err := c.sock.Write([]byte(proto.Format(reply) + "\r\n")); err != nil {
					logger.Debug("Write failed", "conn_id", c.id, "error", err)
					c.closeSock()
					return
				}
				if quit, isQuit := reply.(proto.QuitReply); isQuit && quit.ConnID == c.id {
					c.closeSock()
					return
				}
			}
		}
	}
}

func (c *Conn) closeSock() {
	c.closeOnce.Do(func() {
		if err := c.sock.Close(); err != nil {
			logger.Debug("Error closing socket", "conn_id", c.id, "error", err)
		}
	})
}
