// Package connection keeps track of the clients connected to the game server
// and moves protocol messages between their transports and the handler.
package connection

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"
	"typeracer/pkg/protocol"

	"github.com/gorilla/websocket"
)

// Conn is a message oriented client transport.
type Conn interface {
	// ReadMessage blocks until the next message arrives. Errors wrapping
	// protocol.ErrMalformed leave the transport usable; io.EOF means the peer left.
	ReadMessage() (protocol.Message, error)
	// WriteMessage writes msg, giving up at the deadline of ctx.
	WriteMessage(ctx context.Context, msg protocol.Message) error
	Close() error
	RemoteAddr() string
}

// lineConn carries one JSON message per line over a stream connection.
type lineConn struct {
	conn net.Conn
	dec  *protocol.Decoder
	enc  *protocol.Encoder
}

// NewLineConn wraps a stream connection such as TCP. Lines longer than
// maxLineBytes terminate the connection.
func NewLineConn(conn net.Conn, maxLineBytes int) Conn {
	return &lineConn{
		conn: conn,
		dec:  protocol.NewDecoder(conn, maxLineBytes),
		enc:  protocol.NewEncoder(conn),
	}
}

func (c *lineConn) ReadMessage() (protocol.Message, error) {
	return c.dec.Decode()
}

func (c *lineConn) WriteMessage(ctx context.Context, msg protocol.Message) error {
	deadline, _ := ctx.Deadline()
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}

	return c.enc.Encode(msg)
}

func (c *lineConn) Close() error { return c.conn.Close() }

func (c *lineConn) RemoteAddr() string { return c.conn.RemoteAddr().String() }

// wsConn carries one JSON message per text frame.
type wsConn struct {
	conn *websocket.Conn
}

// NewWSConn wraps an upgraded WebSocket connection. Frames larger than
// maxMessageBytes terminate the connection.
func NewWSConn(conn *websocket.Conn, maxMessageBytes int) Conn {
	if maxMessageBytes <= 0 {
		maxMessageBytes = protocol.DefaultMaxLineBytes
	}
	conn.SetReadLimit(int64(maxMessageBytes))

	return &wsConn{conn: conn}
}

func (c *wsConn) ReadMessage() (protocol.Message, error) {
	for {
		kind, data, err := c.conn.ReadMessage()
		switch {
		case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
			return nil, io.EOF
		case errors.Is(err, websocket.ErrReadLimit):
			return nil, protocol.ErrLineTooLong
		case err != nil:
			return nil, fmt.Errorf("read message: %w", err)
		}

		if kind != websocket.TextMessage {
			return nil, fmt.Errorf("%w: binary frame", protocol.ErrMalformed)
		}

		data = bytes.TrimSpace(data)
		if len(data) == 0 {
			continue
		}

		m, err := protocol.Unmarshal(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", protocol.ErrMalformed, err)
		}

		return m, nil
	}
}

func (c *wsConn) WriteMessage(ctx context.Context, msg protocol.Message) error {
	data, err := protocol.Marshal(msg)
	if err != nil {
		return err
	}

	deadline, _ := ctx.Deadline()
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("write message: %w", err)
	}

	return nil
}

func (c *wsConn) Close() error {
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))

	return c.conn.Close()
}

func (c *wsConn) RemoteAddr() string { return c.conn.RemoteAddr().String() }
