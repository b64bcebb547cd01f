package connection

import (
	"context"
	"sync"
	"time"
	"typeracer/pkg/protocol"
)

// Client is a connected player. Writes are serialized so concurrent
// broadcasts never interleave on the wire.
type Client struct {
	id           int
	conn         Conn
	connectedAt  time.Time
	writeTimeout time.Duration

	sendMu    sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

// ID returns the client id.
func (c *Client) ID() int { return c.id }

// RemoteAddr returns the peer address.
func (c *Client) RemoteAddr() string { return c.conn.RemoteAddr() }

// ConnectedAt returns when the client was registered.
func (c *Client) ConnectedAt() time.Time { return c.connectedAt }

// Send writes msg to the client, waiting at most for the write timeout.
func (c *Client) Send(ctx context.Context, msg protocol.Message) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.writeTimeout)
		defer cancel()
	}

	return c.conn.WriteMessage(ctx, msg)
}

// Close closes the transport. The read loop of the client ends afterwards.
func (c *Client) Close() error {
	c.closeOnce.Do(func() { c.closeErr = c.conn.Close() })

	return c.closeErr
}
