// Package client is the terminal client of the game server. It joins a
// session, readies up and streams every keystroke of the player.
package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"typeracer/internal/connection"
	"typeracer/pkg/logger"
	"typeracer/pkg/protocol"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	keyInterrupt = 0x03
	keyEOF       = 0x04
)

// ErrDenied is returned when the server refuses to let the player in.
var ErrDenied = errors.New("denied by server")

// Options configure a Client.
type Options struct {
	// Name is the player name.
	Name string
	// SessionID joins an existing session when positive.
	SessionID int
	// Create opens a new session and joins it. It is ignored when SessionID is set.
	Create bool
	// MaxLineBytes bounds a single server message.
	MaxLineBytes int
}

// Client plays one session over conn.
type Client struct {
	conn connection.Conn
	in   io.Reader
	view *View
	opts Options
}

// Dial connects to a game server at addr.
func Dial(ctx context.Context, addr string, in io.Reader, out io.Writer, opts Options) (*Client, error) {
	var d net.Dialer
	c, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("could not connect to %s: %w", addr, err)
	}

	return New(connection.NewLineConn(c, opts.MaxLineBytes), in, out, opts), nil
}

// New returns a Client using an established connection.
func New(conn connection.Conn, in io.Reader, out io.Writer, opts Options) *Client {
	return &Client{conn: conn, in: in, view: NewView(out), opts: opts}
}

// Run joins a session, readies up and forwards keystrokes until the player
// presses Ctrl-C or Ctrl-D, the input ends or the server goes away.
func (c *Client) Run(ctx context.Context) error {
	defer c.conn.Close()

	if err := c.join(ctx); err != nil {
		return err
	}
	if err := c.conn.WriteMessage(ctx, &protocol.ReadyRequest{Ready: true}); err != nil {
		return fmt.Errorf("could not send ready: %w", err)
	}
	c.view.Info("ready, the race starts when every player is ready (Ctrl-C leaves)")

	g, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	g.Go(func() error {
		defer close(done)

		return c.receive()
	})
	g.Go(func() error {
		err := c.typeKeys(ctx, done)
		_ = c.conn.Close()

		return err
	})

	return g.Wait() //nolint: wrapcheck
}

func (c *Client) join(ctx context.Context) error {
	if c.opts.SessionID <= 0 && !c.opts.Create {
		if err := c.conn.WriteMessage(ctx, &protocol.JoinGameRequest{PlayerName: c.opts.Name}); err != nil {
			return fmt.Errorf("could not send join game: %w", err)
		}

		return c.expectAccepted(protocol.TypeJoinGameResponse)
	}

	if err := c.conn.WriteMessage(ctx, &protocol.HandshakeRequest{PlayerName: c.opts.Name}); err != nil {
		return fmt.Errorf("could not send handshake: %w", err)
	}
	if err := c.expectAccepted(protocol.TypeHandshakeResponse); err != nil {
		return err
	}

	sessionID := c.opts.SessionID
	if sessionID <= 0 {
		if err := c.conn.WriteMessage(ctx, &protocol.CreateSessionRequest{}); err != nil {
			return fmt.Errorf("could not send create session: %w", err)
		}
		msg, err := c.await(protocol.TypeCreateSessionResponse)
		if err != nil {
			return err
		}
		res, _ := msg.(*protocol.CreateSessionResponse)
		if res.Reason != protocol.ReasonSuccess {
			return fmt.Errorf("%w: %s", ErrDenied, res.Reason)
		}
		sessionID = res.SessionID
		c.view.Info(fmt.Sprintf("created session %d", sessionID))
	}

	if err := c.conn.WriteMessage(ctx, &protocol.JoinSessionRequest{SessionID: sessionID}); err != nil {
		return fmt.Errorf("could not send join session: %w", err)
	}

	return c.expectAccepted(protocol.TypeJoinSessionResponse)
}

// await reads messages until one of type t arrives, rendering the others.
func (c *Client) await(t protocol.MessageType) (protocol.Message, error) {
	for {
		msg, err := c.conn.ReadMessage()
		switch {
		case errors.Is(err, protocol.ErrMalformed):
			continue
		case err != nil:
			return nil, fmt.Errorf("waiting for %s: %w", t, err)
		}
		if msg.Type() == t {
			return msg, nil
		}
		c.view.Render(msg)
	}
}

func (c *Client) expectAccepted(t protocol.MessageType) error {
	msg, err := c.await(t)
	if err != nil {
		return err
	}

	p, ok := permission(msg)
	if !ok || p.Status != protocol.Accepted {
		return fmt.Errorf("%w: %s", ErrDenied, p.Reason)
	}

	return nil
}

// receive renders server messages until the connection closes.
func (c *Client) receive() error {
	for {
		msg, err := c.conn.ReadMessage()
		switch {
		case errors.Is(err, protocol.ErrMalformed):
			continue
		case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed), errors.Is(err, io.ErrClosedPipe):
			c.view.Info("disconnected")

			return nil
		case err != nil:
			return fmt.Errorf("could not read from server: %w", err)
		}

		c.view.Render(msg)
		if res, ok := msg.(*protocol.LeaveSessionResponse); ok && res.Reason == protocol.ReasonSessionKicked {
			return nil
		}
	}
}

// typeKeys sends one CharacterRequest per rune read from the input.
func (c *Client) typeKeys(ctx context.Context, done <-chan struct{}) error {
	runes := make(chan rune)
	readErr := make(chan error, 1)
	go func() {
		r := bufio.NewReader(c.in)
		for {
			ch, _, err := r.ReadRune()
			if err != nil {
				readErr <- err

				return
			}
			select {
			case runes <- ch:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return c.leave(context.WithoutCancel(ctx))
		case err := <-readErr:
			if !errors.Is(err, io.EOF) {
				logger.Warn(ctx, "could not read keystroke", zap.Error(err))
			}

			return c.leave(ctx)
		case ch := <-runes:
			if ch == keyInterrupt || ch == keyEOF {
				return c.leave(ctx)
			}
			if ch == '\r' {
				ch = '\n'
			}
			if err := c.conn.WriteMessage(ctx, &protocol.CharacterRequest{Character: ch}); err != nil {
				return fmt.Errorf("could not send keystroke: %w", err)
			}
		}
	}
}

func (c *Client) leave(ctx context.Context) error {
	if err := c.conn.WriteMessage(ctx, &protocol.LeaveSessionRequest{}); err != nil {
		logger.Debug(ctx, "could not send leave", zap.Error(err))
	}
	c.view.Info("left the session")

	return nil
}

func permission(msg protocol.Message) (protocol.Permission, bool) {
	switch m := msg.(type) {
	case *protocol.HandshakeResponse:
		return m.Permission, true
	case *protocol.JoinSessionResponse:
		return m.Permission, true
	case *protocol.JoinGameResponse:
		return m.Permission, true
	default:
		return protocol.Permission{}, false
	}
}
