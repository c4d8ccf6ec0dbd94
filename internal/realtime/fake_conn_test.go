package realtime

import (
	"errors"
	"io"
	"log/slog"
	"sync"
)

var errPeerGone = errors.New("peer gone")

// fakeConn records every payload it is asked to send.
type fakeConn struct {
	mu       sync.Mutex
	received []string
	closed   bool
	failSend bool
}

func (c *fakeConn) Send(message []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSend || c.closed {
		return errPeerGone
	}
	c.received = append(c.received, string(message))
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.received...)
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
