// Package session groups players into sessions that share a game and keeps
// track of which client plays in which session.
//
//go:generate mockgen -package mocksession -source=session.go -destination=mock/mocksession.go
package session

import (
	"context"
	"sync"
	"time"
	"typeracer/internal/game"
	"typeracer/internal/game/text"
	"typeracer/pkg/domain"
	"typeracer/pkg/logger"
	"typeracer/pkg/metrics"
	"typeracer/pkg/protocol"

	"go.uber.org/zap"
)

// Sender delivers a message to a single client.
type Sender interface {
	Send(ctx context.Context, clientID int, msg protocol.Message) error
}

// Recorder stores finished races.
type Recorder interface {
	Record(ctx context.Context, race domain.Race) error
}

// Session is a group of players racing each other, round after round.
type Session struct {
	id         int
	maxPlayers int
	createdAt  time.Time

	sender   Sender
	recorder Recorder
	texts    text.Source
	metrics  *metrics.Metrics
	now      func() time.Time

	game *game.Game

	mu      sync.Mutex
	players []int
	// emptySince is when the last player left, or creation time for a session nobody joined.
	emptySince time.Time
}

// Snapshot is a point in time view of a session.
type Snapshot struct {
	ID         int
	Status     protocol.GameStatus
	MaxPlayers int
	CreatedAt  time.Time
	StartedAt  time.Time
	Players    []game.Player
}

// ID returns the session id.
func (s *Session) ID() int { return s.id }

// Game returns the game played in the session.
func (s *Session) Game() *game.Game { return s.game }

// Broadcast sends msg to every player of the session. Delivery failures are
// logged; the connection layer drops clients it cannot write to.
func (s *Session) Broadcast(ctx context.Context, msg protocol.Message) {
	for _, id := range s.PlayerIDs() {
		if err := s.sender.Send(ctx, id, msg); err != nil {
			logger.Debug(ctx, "could not deliver broadcast",
				zap.Int("sessionID", s.id), zap.Int("clientID", id), zap.Error(err))
		}
	}
}

// Send sends msg to one client.
func (s *Session) Send(ctx context.Context, clientID int, msg protocol.Message) error {
	return s.sender.Send(ctx, clientID, msg)
}

// PlayerIDs returns the ids of the players in the order they joined.
func (s *Session) PlayerIDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]int(nil), s.players...)
}

// NumPlayers returns the number of players in the session.
func (s *Session) NumPlayers() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.players)
}

// IsFull reports whether the session reached its player limit.
func (s *Session) IsFull() bool {
	return s.NumPlayers() >= s.maxPlayers
}

// IsEmpty reports whether nobody plays in the session.
func (s *Session) IsEmpty() bool {
	return s.NumPlayers() == 0
}

// HasGameStarted reports whether a race is running.
func (s *Session) HasGameStarted() bool {
	return s.game.Status() == protocol.GameStatusRunning
}

// Snapshot returns a view of the session for listings.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:         s.id,
		Status:     s.game.Status(),
		MaxPlayers: s.maxPlayers,
		CreatedAt:  s.createdAt,
		StartedAt:  s.game.StartedAt(),
		Players:    s.game.Players(),
	}
}

// SetReady changes the readiness of a player.
func (s *Session) SetReady(clientID int, ready bool) error {
	return s.game.SetPlayerReady(clientID, ready)
}

// StartIfReady starts the race when every player is ready. It reports whether
// a race was started.
func (s *Session) StartIfReady(ctx context.Context) (bool, error) {
	if !s.game.EveryoneReady() {
		return false, nil
	}

	if err := s.game.Start(ctx); err != nil {
		return false, err
	}

	return true, nil
}

// TypeCharacter forwards a keystroke to the game. reply, if set, runs before
// the race stops, so the typist sees the answer to the last keystroke ahead of
// the finish broadcasts.
func (s *Session) TypeCharacter(
	ctx context.Context,
	clientID int,
	r rune,
	reply func(game.TypingResult),
) (game.TypingResult, error) {
	res, finish, err := s.game.Keystroke(clientID, r)
	if err != nil {
		return res, err
	}
	if res != game.PlayerFinishedAlready {
		s.metrics.CharacterTyped(ctx, res == game.Correct)
	}

	if reply != nil {
		reply(res)
	}
	if finish != nil {
		finish(ctx)
	}

	return res, nil
}

// addPlayer is called with the manager's lock held.
func (s *Session) addPlayer(clientID int, name string) error {
	if err := s.game.AddPlayer(clientID, name); err != nil {
		return err
	}

	s.mu.Lock()
	s.players = append(s.players, clientID)
	s.mu.Unlock()

	return nil
}

// detach removes clientID from the player list and reports whether the
// session became empty. The game is updated separately by finishLeave.
func (s *Session) detach(clientID int) (empty, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, id := range s.players {
		if id == clientID {
			s.players = append(s.players[:i], s.players[i+1:]...)
			if len(s.players) == 0 {
				s.emptySince = s.now()
			}

			return len(s.players) == 0, true
		}
	}

	return len(s.players) == 0, false
}

// finishLeave removes the player from the game, tells the others and starts
// the race if everyone left behind is ready.
func (s *Session) finishLeave(ctx context.Context, clientID int) {
	if err := s.game.RemovePlayer(ctx, clientID); err != nil {
		logger.Warn(ctx, "player was not part of the game", zap.Int("clientID", clientID), zap.Error(err))
	}

	s.Broadcast(ctx, &protocol.PlayerLeftNotification{NumPlayers: s.NumPlayers(), PlayerID: clientID})

	if s.game.Status() == protocol.GameStatusWaiting {
		if _, err := s.StartIfReady(ctx); err != nil {
			logger.Warn(ctx, "could not start race after player left", zap.Error(err))
		}
	}
}

func (s *Session) idleSince() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.emptySince, len(s.players) == 0
}

// onFinish stores the race and prepares the next round.
func (s *Session) onFinish(ctx context.Context, result game.Result) {
	ctx = logger.WithFields(ctx, zap.Int("sessionID", s.id))
	s.metrics.RaceFinished(ctx, len(result.Standings))

	if len(result.Standings) > 0 {
		if err := s.recorder.Record(ctx, raceFromResult(s.id, result)); err != nil {
			logger.Error(ctx, "could not record race", zap.Error(err))
		}
	}

	s.nextRound(ctx)
}

func (s *Session) nextRound(ctx context.Context) {
	next, err := s.texts.Text(ctx)
	if err != nil || next == "" {
		logger.Warn(ctx, "could not get text for next round, reusing the last one", zap.Error(err))
		next = s.game.Text()
	}
	s.game.Reset(next)

	s.Broadcast(ctx, &protocol.GameStateNotification{GameStatus: protocol.GameStatusWaiting})
	players := s.game.Players()
	for _, p := range players {
		s.Broadcast(ctx, &protocol.PlayerUpdateNotification{
			NumPlayers: len(players),
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Ready:      p.Ready,
		})
	}
}

func raceFromResult(sessionID int, result game.Result) domain.Race {
	race := domain.Race{
		ID:         domain.NewRaceID(),
		SessionID:  sessionID,
		Text:       result.Text,
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
		Results:    make([]domain.RaceResult, 0, len(result.Standings)),
	}
	for _, st := range result.Standings {
		race.Results = append(race.Results, domain.RaceResult{
			PlayerName: st.Name,
			Place:      st.Place,
			WPM:        st.WPM,
			CPM:        st.CPM,
			Accuracy:   st.Accuracy,
			Finished:   st.Finished,
			Duration:   st.Duration,
		})
	}

	return race
}
