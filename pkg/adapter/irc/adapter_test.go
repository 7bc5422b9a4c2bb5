package irc

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/ircd/pkg/adapter"
)

func newTestAdapter(t *testing.T) *IRCAdapter {
	t.Helper()

	a := NewAdapter(AdapterConfig{
		BaseConfig: adapter.BaseConfig{
			BindAddress:     "127.0.0.1",
			Port:            0, // ephemeral
			ShutdownTimeout: 2 * time.Second,
		},
		ServerName:    "localhost",
		Version:       "0.1.0",
		PingFrequency: time.Minute,
	}, nil, nil)

	serveDone := make(chan error, 1)
	go func() {
		serveDone <- a.Serve(context.Background())
	}()

	t.Cleanup(func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.Stop(stopCtx)

		select {
		case <-serveDone:
		case <-time.After(5 * time.Second):
			t.Error("adapter did not stop")
		}
	})

	return a
}

func TestAdapter_Protocol(t *testing.T) {
	a := NewAdapter(AdapterConfig{ServerName: "localhost"}, nil, nil)
	assert.Equal(t, "IRC", a.Protocol())
}

func TestAdapter_EndToEnd(t *testing.T) {
	a := newTestAdapter(t)

	sock, err := net.Dial("tcp", a.GetListenerAddr())
	require.NoError(t, err)
	defer sock.Close()
	require.NoError(t, sock.SetDeadline(time.Now().Add(5*time.Second)))

	_, err = sock.Write([]byte("NICK JOE\r\nJOIN #go\r\n"))
	require.NoError(t, err)

	r := bufio.NewReader(sock)
	for i := 0; i < 15; i++ {
		readLine(t, r)
	}

	assert.Equal(t, ":JOE!~JOE@localhost JOIN #go", readLine(t, r))
}

func TestAdapter_TwoClientsSeeEachOther(t *testing.T) {
	a := newTestAdapter(t)

	dial := func(nick string) (net.Conn, *bufio.Reader) {
		sock, err := net.Dial("tcp", a.GetListenerAddr())
		require.NoError(t, err)
		t.Cleanup(func() { sock.Close() })
		require.NoError(t, sock.SetDeadline(time.Now().Add(5*time.Second)))

		_, err = sock.Write([]byte("NICK " + nick + "\r\nJOIN #go\r\n"))
		require.NoError(t, err)

		r := bufio.NewReader(sock)
		for i := 0; i < 15; i++ {
			readLine(t, r) // registration storm
		}
		readLine(t, r) // own JOIN
		return sock, r
	}

	_, aliceReader := dial("alice")
	for i := 0; i < 4; i++ {
		readLine(t, aliceReader) // topic, topic time, names, end of names
	}

	bobSock, _ := dial("bob")

	// Alice sees bob's join echo
	assert.Equal(t, ":bob!~bob@localhost JOIN #go", readLine(t, aliceReader))

	_, err := bobSock.Write([]byte("PRIVMSG #go :hello\r\n"))
	require.NoError(t, err)

	line := readLine(t, aliceReader)
	assert.Contains(t, line, "PRIVMSG #go :hello")
	assert.Contains(t, line, ":bob!")
}
