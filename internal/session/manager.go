package session

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"
	"typeracer/internal/game"
	"typeracer/internal/game/text"
	"typeracer/pkg/ident"
	"typeracer/pkg/logger"
	"typeracer/pkg/metrics"
	"typeracer/pkg/protocol"
	"typeracer/pkg/serrors"

	"go.uber.org/zap"
)

// DefaultMaxPlayers is the player limit of a session.
const DefaultMaxPlayers = 5

var (
	// ErrSessionNotFound is returned for unknown session ids.
	ErrSessionNotFound = serrors.With(serrors.ErrNotFound, "session not found")
	// ErrSessionFull is returned when joining a session at its player limit.
	ErrSessionFull = serrors.KindOnly(serrors.ErrSessionFull)
	// ErrGameStarted is returned when joining a session with a running race.
	ErrGameStarted = serrors.KindOnly(serrors.ErrGameStarted)
	// ErrAlreadyInSession is returned when a client that plays in a session joins another one.
	ErrAlreadyInSession = serrors.With(serrors.ErrConflict, "client already in a session")
	// ErrNotInSession is returned for clients that do not play in any session.
	ErrNotInSession = serrors.With(serrors.ErrNotFound, "client not in a session")
)

// Options configure the sessions created by a Manager.
type Options struct {
	// MaxPlayers is the player limit of every session.
	MaxPlayers int
	// IdleTimeout is how long an empty session survives Reap.
	IdleTimeout time.Duration
	// Game configures the game of every session. OnFinish is set by the session.
	Game game.Options
	// Now returns the current time.
	Now func() time.Time
}

// Manager owns every session and the client to session mapping.
type Manager struct {
	sender   Sender
	recorder Recorder
	texts    text.Source
	metrics  *metrics.Metrics
	ids      *ident.Generator
	opts     Options

	mu       sync.Mutex
	sessions map[int]*Session
	byClient map[int]int
}

// NewManager returns an empty Manager.
func NewManager(sender Sender, recorder Recorder, texts text.Source, m *metrics.Metrics, opts Options) *Manager {
	if opts.MaxPlayers <= 0 {
		opts.MaxPlayers = DefaultMaxPlayers
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Game.Now == nil {
		opts.Game.Now = opts.Now
	}

	return &Manager{
		sender:   sender,
		recorder: recorder,
		texts:    texts,
		metrics:  m,
		ids:      ident.New(),
		opts:     opts,
		sessions: make(map[int]*Session),
		byClient: make(map[int]int),
	}
}

// Create opens a new, empty session and returns its id.
func (m *Manager) Create(ctx context.Context) (int, error) {
	s, err := m.create(ctx)
	if err != nil {
		return -1, err
	}

	return s.id, nil
}

func (m *Manager) create(ctx context.Context) (*Session, error) {
	t, err := m.texts.Text(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get race text: %w", err)
	}

	now := m.opts.Now()
	s := &Session{
		id:         m.ids.Next(),
		maxPlayers: m.opts.MaxPlayers,
		createdAt:  now,
		emptySince: now,
		sender:     m.sender,
		recorder:   m.recorder,
		texts:      m.texts,
		metrics:    m.metrics,
		now:        m.opts.Now,
	}
	gameOpts := m.opts.Game
	gameOpts.OnFinish = s.onFinish
	s.game = game.New(t, s, gameOpts)

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	m.metrics.SessionOpened()
	logger.Info(ctx, "session created", zap.Int("sessionID", s.id))

	return s, nil
}

// Join adds the client to a session.
func (m *Manager) Join(_ context.Context, clientID int, name string, sessionID int) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byClient[clientID]; ok {
		return nil, ErrAlreadyInSession
	}

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	if err := m.joinLocked(s, clientID, name); err != nil {
		return nil, err
	}

	return s, nil
}

func (m *Manager) joinLocked(s *Session, clientID int, name string) error {
	switch {
	case s.HasGameStarted():
		return ErrGameStarted
	case s.IsFull():
		return ErrSessionFull
	}

	if err := s.addPlayer(clientID, name); err != nil {
		return err
	}
	m.byClient[clientID] = s.id

	return nil
}

// QuickJoin adds the client to the oldest session that is waiting for players
// and has room, or to a new session when there is none.
func (m *Manager) QuickJoin(ctx context.Context, clientID int, name string) (*Session, error) {
	m.mu.Lock()
	if _, ok := m.byClient[clientID]; ok {
		m.mu.Unlock()

		return nil, ErrAlreadyInSession
	}

	for _, s := range m.sortedLocked() {
		if s.game.Status() != protocol.GameStatusWaiting || s.IsFull() {
			continue
		}
		if err := m.joinLocked(s, clientID, name); err == nil {
			m.mu.Unlock()

			return s, nil
		}
	}
	m.mu.Unlock()

	s, err := m.create(ctx)
	if err != nil {
		return nil, err
	}

	return m.Join(ctx, clientID, name, s.id)
}

// Leave removes the client from its session. The remaining players receive a
// PlayerLeftNotification; an empty session is closed.
func (m *Manager) Leave(ctx context.Context, clientID int) (*Session, error) {
	m.mu.Lock()
	sessionID, ok := m.byClient[clientID]
	if !ok {
		m.mu.Unlock()

		return nil, ErrNotInSession
	}
	delete(m.byClient, clientID)

	s := m.sessions[sessionID]
	empty, _ := s.detach(clientID)
	if empty {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()

	s.finishLeave(ctx, clientID)

	if empty {
		m.metrics.SessionClosed()
		logger.Info(ctx, "session closed, last player left", zap.Int("sessionID", sessionID))
	}

	return s, nil
}

// Kick removes a player from a session on behalf of an operator. The player
// receives a LeaveSessionResponse carrying SESSION_KICKED.
func (m *Manager) Kick(ctx context.Context, sessionID, clientID int) error {
	m.mu.Lock()
	if _, ok := m.sessions[sessionID]; !ok {
		m.mu.Unlock()

		return ErrSessionNotFound
	}
	if id, ok := m.byClient[clientID]; !ok || id != sessionID {
		m.mu.Unlock()

		return serrors.With(serrors.ErrNotFound, "player %d not in session %d", clientID, sessionID)
	}
	m.mu.Unlock()

	if _, err := m.Leave(ctx, clientID); err != nil {
		return err
	}

	if err := m.sender.Send(ctx, clientID,
		protocol.NewLeaveSessionResponse(protocol.Accepted, protocol.ReasonSessionKicked)); err != nil {
		logger.Debug(ctx, "could not notify kicked player", zap.Int("clientID", clientID), zap.Error(err))
	}
	logger.Info(ctx, "player kicked", zap.Int("sessionID", sessionID), zap.Int("clientID", clientID))

	return nil
}

// Close kicks every player of a session and removes it.
func (m *Manager) Close(ctx context.Context, sessionID int) error {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if !ok {
		m.mu.Unlock()

		return ErrSessionNotFound
	}
	delete(m.sessions, sessionID)

	players := s.PlayerIDs()
	for _, id := range players {
		delete(m.byClient, id)
		s.detach(id)
	}
	m.mu.Unlock()

	s.game.Reset(s.game.Text())
	for _, id := range players {
		if err := m.sender.Send(ctx, id,
			protocol.NewLeaveSessionResponse(protocol.Accepted, protocol.ReasonSessionKicked)); err != nil {
			logger.Debug(ctx, "could not notify kicked player", zap.Int("clientID", id), zap.Error(err))
		}
	}

	m.metrics.SessionClosed()
	logger.Info(ctx, "session closed", zap.Int("sessionID", sessionID), zap.Int("kicked", len(players)))

	return nil
}

// ByID returns the session with the given id.
func (m *Manager) ByID(sessionID int) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]

	return s, ok
}

// ByClient returns the session the client plays in.
func (m *Manager) ByClient(clientID int) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byClient[clientID]
	if !ok {
		return nil, false
	}
	s, ok := m.sessions[id]

	return s, ok
}

// List returns snapshots of every session, oldest first.
func (m *Manager) List() []Snapshot {
	m.mu.Lock()
	sessions := m.sortedLocked()
	m.mu.Unlock()

	out := make([]Snapshot, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.Snapshot())
	}

	return out
}

// Count returns the number of open sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}

// Reap closes sessions that have been empty for longer than idle and returns
// how many it closed.
func (m *Manager) Reap(ctx context.Context, idle time.Duration) int {
	now := m.opts.Now()

	m.mu.Lock()
	var reaped []int
	for id, s := range m.sessions {
		since, empty := s.idleSince()
		if empty && now.Sub(since) > idle {
			delete(m.sessions, id)
			reaped = append(reaped, id)
		}
	}
	m.mu.Unlock()

	for _, id := range reaped {
		m.metrics.SessionClosed()
		logger.Info(ctx, "idle session reaped", zap.Int("sessionID", id))
	}

	return len(reaped)
}

// RunReaper calls Reap with Options.IdleTimeout every interval until ctx is done.
func (m *Manager) RunReaper(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Reap(ctx, m.opts.IdleTimeout)
		}
	}
}

// sortedLocked returns the sessions ordered by id, which follows creation order.
func (m *Manager) sortedLocked() []*Session {
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b *Session) int { return a.id - b.id })

	return out
}
