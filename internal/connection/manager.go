package connection

import (
	"context"
	"errors"
	"io"
	"net"
	"slices"
	"strings"
	"sync"
	"time"
	"typeracer/pkg/ident"
	"typeracer/pkg/logger"
	"typeracer/pkg/metrics"
	"typeracer/pkg/protocol"
	"typeracer/pkg/serrors"
	"unicode"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var (
	// ErrClientNotFound is returned for unknown client ids.
	ErrClientNotFound = serrors.With(serrors.ErrNotFound, "client not found")
	// ErrNoName is returned by Name for clients that did not complete a handshake.
	ErrNoName = serrors.With(serrors.ErrForbidden, "handshake required")
)

// Handler processes the messages read from clients.
type Handler interface {
	Handle(ctx context.Context, clientID int, msg protocol.Message)
	// Disconnected is called once the client is unregistered.
	Disconnected(ctx context.Context, clientID int)
}

// Options configure a Manager.
type Options struct {
	// WriteTimeout bounds every write to a client.
	WriteTimeout time.Duration
	// BannedNames are refused by SetName, compared case-insensitively.
	BannedNames []string
	// Now returns the current time.
	Now func() time.Time
}

type entry struct {
	client *Client
	name   string
}

// Manager owns the connected clients and their player names.
type Manager struct {
	ids      *ident.Generator
	metrics  *metrics.Metrics
	validate *validator.Validate
	opts     Options
	banned   map[string]struct{}

	mu      sync.RWMutex
	clients map[int]*entry
	// names maps lower-cased names to the client holding them.
	names map[string]int
}

type playerName struct {
	Name string `validate:"required,max=20,printable"`
}

// NewManager returns a Manager without clients.
func NewManager(m *metrics.Metrics, opts Options) *Manager {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("printable", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if !unicode.IsPrint(r) {
				return false
			}
		}

		return true
	})

	banned := make(map[string]struct{}, len(opts.BannedNames))
	for _, n := range opts.BannedNames {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			banned[n] = struct{}{}
		}
	}

	return &Manager{
		ids:      ident.New(),
		metrics:  m,
		validate: v,
		opts:     opts,
		banned:   banned,
		clients:  make(map[int]*entry),
		names:    make(map[string]int),
	}
}

// Register adds a client for conn.
func (m *Manager) Register(conn Conn) *Client {
	c := &Client{
		id:           m.ids.Next(),
		conn:         conn,
		connectedAt:  m.opts.Now(),
		writeTimeout: m.opts.WriteTimeout,
	}

	m.mu.Lock()
	m.clients[c.id] = &entry{client: c}
	m.mu.Unlock()

	m.metrics.ClientConnected()

	return c
}

// Unregister closes and forgets a client, releasing its name.
func (m *Manager) Unregister(clientID int) {
	m.mu.Lock()
	e, ok := m.clients[clientID]
	if ok {
		delete(m.clients, clientID)
		if e.name != "" {
			delete(m.names, strings.ToLower(e.name))
		}
	}
	m.mu.Unlock()

	if !ok {
		return
	}

	_ = e.client.Close()
	m.metrics.ClientDisconnected()
}

// Send writes msg to a client. A client that cannot be written to is
// disconnected; its read loop unregisters it.
func (m *Manager) Send(ctx context.Context, clientID int, msg protocol.Message) error {
	c, ok := m.client(clientID)
	if !ok {
		return ErrClientNotFound
	}

	if err := c.Send(ctx, msg); err != nil {
		logger.Warn(ctx, "could not write to client, disconnecting",
			zap.Int("clientID", clientID), zap.String("messageType", string(msg.Type())), zap.Error(err))
		_ = c.Close()

		return err
	}

	return nil
}

// SetName validates name and assigns it to the client. The name is trimmed
// and must be unique among connected clients, ignoring case. A client may
// repeat its handshake to change its name.
func (m *Manager) SetName(clientID int, name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := m.validate.Struct(playerName{Name: name}); err != nil {
		return "", serrors.Wrap(serrors.ErrInvalidName, err, "invalid player name %q", name)
	}

	key := strings.ToLower(name)
	if _, ok := m.banned[key]; ok {
		return "", serrors.With(serrors.ErrBanned, "player name %q is banned", name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.clients[clientID]
	if !ok {
		return "", ErrClientNotFound
	}
	if holder, taken := m.names[key]; taken && holder != clientID {
		return "", serrors.With(serrors.ErrInvalidName, "player name %q is taken", name)
	}

	if e.name != "" {
		delete(m.names, strings.ToLower(e.name))
	}
	e.name = name
	m.names[key] = clientID

	return name, nil
}

// Name returns the name of a client, or ErrNoName before its handshake.
func (m *Manager) Name(clientID int) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.clients[clientID]
	switch {
	case !ok:
		return "", ErrClientNotFound
	case e.name == "":
		return "", ErrNoName
	}

	return e.name, nil
}

// Count returns the number of connected clients.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.clients)
}

// IDs returns the ids of the connected clients in ascending order.
func (m *Manager) IDs() []int {
	m.mu.RLock()
	ids := make([]int, 0, len(m.clients))
	for id := range m.clients {
		ids = append(ids, id)
	}
	m.mu.RUnlock()
	slices.Sort(ids)

	return ids
}

// Disconnect closes the transport of a client.
func (m *Manager) Disconnect(clientID int) error {
	c, ok := m.client(clientID)
	if !ok {
		return ErrClientNotFound
	}

	return c.Close()
}

// CloseAll closes every client transport.
func (m *Manager) CloseAll() {
	m.mu.RLock()
	clients := make([]*Client, 0, len(m.clients))
	for _, e := range m.clients {
		clients = append(clients, e.client)
	}
	m.mu.RUnlock()

	for _, c := range clients {
		_ = c.Close()
	}
}

// Serve registers conn and dispatches its messages to h until the peer goes
// away, the transport fails or ctx is done.
func (m *Manager) Serve(ctx context.Context, conn Conn, h Handler) {
	c := m.Register(conn)
	ctx = logger.WithFields(ctx, zap.Int("clientID", c.id), zap.String("remote", conn.RemoteAddr()))
	logger.Info(ctx, "client connected")

	stop := context.AfterFunc(ctx, func() { _ = c.Close() })
	defer func() {
		stop()
		m.Unregister(c.id)

		ctx := context.WithoutCancel(ctx)
		h.Disconnected(ctx, c.id)
		logger.Info(ctx, "client disconnected")
	}()

	for {
		msg, err := conn.ReadMessage()
		switch {
		case err == nil:
			h.Handle(ctx, c.id, msg)
		case errors.Is(err, protocol.ErrMalformed):
			logger.Warn(ctx, "dropping malformed message", zap.Error(err))
		case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
			return
		default:
			logger.Warn(ctx, "could not read from client", zap.Error(err))

			return
		}
	}
}

func (m *Manager) client(clientID int) (*Client, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.clients[clientID]
	if !ok {
		return nil, false
	}

	return e.client, true
}
