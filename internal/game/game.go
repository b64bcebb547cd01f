// Package game implements a single typing race: its players, the text they
// type, per-keystroke validation and the periodic player state broadcast.
package game

import (
	"context"
	"sort"
	"sync"
	"time"
	"typeracer/pkg/logger"
	"typeracer/pkg/protocol"
	"typeracer/pkg/serrors"

	"go.uber.org/zap"
)

// DefaultStateInterval is how often player states are broadcast while a race runs.
const DefaultStateInterval = 200 * time.Millisecond

var (
	// ErrPlayerExists is returned when adding a player id twice.
	ErrPlayerExists = serrors.With(serrors.ErrConflict, "player already in game")
	// ErrPlayerNotFound is returned for ids that are not part of the game.
	ErrPlayerNotFound = serrors.With(serrors.ErrNotFound, "player not in game")
	// ErrGameStarted is returned for operations that are only valid before the race.
	ErrGameStarted = serrors.With(serrors.ErrGameStarted, "game already started")
	// ErrNotReady is returned by Start when the game has no players or someone is not ready.
	ErrNotReady = serrors.With(serrors.ErrConflict, "not every player is ready")
	// ErrNoText is returned by Start when there is nothing to type.
	ErrNoText = serrors.With(serrors.ErrInternal, "game has no text")
)

// Broadcaster delivers a message to every player of the game.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg protocol.Message)
}

// Standing is a player's final position in a race.
type Standing struct {
	PlayerID int
	Name     string
	Place    int
	Finished bool
	WPM      float64
	CPM      float64
	Accuracy float64
	// Duration is the time the player needed, or the race duration when they did not finish.
	Duration time.Duration
}

// Result describes a race that has ended.
type Result struct {
	Text       string
	StartedAt  time.Time
	FinishedAt time.Time
	Standings  []Standing
}

// Options tune a Game. Zero values select defaults.
type Options struct {
	// StateInterval is the player state broadcast period.
	StateInterval time.Duration
	// RaceTimeout stops a running race after this long. Non-positive disables it.
	RaceTimeout time.Duration
	// OnFinish is called after a race has stopped, outside of the game's lock.
	OnFinish func(ctx context.Context, result Result)
	// Now returns the current time.
	Now func() time.Time
}

// Game is a race between the players of a session.
type Game struct {
	broadcaster Broadcaster
	opts        Options

	mu        sync.Mutex
	status    protocol.GameStatus
	text      []rune
	players   map[int]*Player
	order     []int
	startedAt time.Time
	// round identifies the current race so a late notifier tick cannot stop the next one.
	round        int
	stopNotifier context.CancelFunc
}

// New creates a game waiting for players that will race on text.
func New(text string, b Broadcaster, opts Options) *Game {
	if opts.StateInterval <= 0 {
		opts.StateInterval = DefaultStateInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Game{
		broadcaster: b,
		opts:        opts,
		status:      protocol.GameStatusWaiting,
		text:        []rune(text),
		players:     make(map[int]*Player),
	}
}

// Status returns the lifecycle state of the game.
func (g *Game) Status() protocol.GameStatus {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.status
}

// Text returns the text of the current round.
func (g *Game) Text() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return string(g.text)
}

// StartedAt returns when the current race started, or the zero time.
func (g *Game) StartedAt() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.startedAt
}

// Players returns copies of all players in the order they joined.
func (g *Game) Players() []Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Player, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, *g.players[id])
	}

	return out
}

// Player returns a copy of the player with the given id.
func (g *Game) Player(id int) (Player, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.players[id]
	if !ok {
		return Player{}, false
	}

	return *p, true
}

// AddPlayer adds a player. Players joining a running race cannot type until the next round.
func (g *Game) AddPlayer(id int, name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.players[id]; ok {
		return ErrPlayerExists
	}

	p := newPlayer(id, name)
	if g.status == protocol.GameStatusRunning {
		p.Finished = true
	}
	g.players[id] = p
	g.order = append(g.order, id)

	return nil
}

// RemovePlayer removes a player. A running race stops once nobody is left
// typing.
func (g *Game) RemovePlayer(ctx context.Context, id int) error {
	g.mu.Lock()
	if _, ok := g.players[id]; !ok {
		g.mu.Unlock()

		return ErrPlayerNotFound
	}

	delete(g.players, id)
	for i, pid := range g.order {
		if pid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)

			break
		}
	}

	stop := g.status == protocol.GameStatusRunning && g.allFinishedLocked()
	round := g.round
	g.mu.Unlock()

	if stop {
		g.stop(ctx, round)
	}

	return nil
}

// SetPlayerReady changes the readiness of a player. It fails once the race started.
func (g *Game) SetPlayerReady(id int, ready bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != protocol.GameStatusWaiting {
		return ErrGameStarted
	}

	p, ok := g.players[id]
	if !ok {
		return ErrPlayerNotFound
	}
	p.Ready = ready

	return nil
}

// EveryoneReady reports whether there is at least one player and all are ready.
func (g *Game) EveryoneReady() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.everyoneReadyLocked()
}

func (g *Game) everyoneReadyLocked() bool {
	if len(g.players) == 0 {
		return false
	}
	for _, p := range g.players {
		if !p.Ready {
			return false
		}
	}

	return true
}

// allFinishedLocked is true for an empty game as well.
func (g *Game) allFinishedLocked() bool {
	for _, p := range g.players {
		if !p.Finished {
			return false
		}
	}

	return true
}

// Start begins the race. Every player must be ready. The running state and the
// text are broadcast before the notifier starts.
func (g *Game) Start(ctx context.Context) error {
	g.mu.Lock()
	switch {
	case g.status != protocol.GameStatusWaiting:
		g.mu.Unlock()

		return ErrGameStarted
	case !g.everyoneReadyLocked():
		g.mu.Unlock()

		return ErrNotReady
	case len(g.text) == 0:
		g.mu.Unlock()

		return ErrNoText
	}

	g.status = protocol.GameStatusRunning
	g.startedAt = g.opts.Now()
	g.round++
	round := g.round
	text := string(g.text)

	notifierCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	g.stopNotifier = cancel
	g.mu.Unlock()

	logger.Info(ctx, "race started", zap.Int("round", round), zap.Int("textLength", len([]rune(text))))

	g.broadcaster.Broadcast(ctx, &protocol.GameStateNotification{GameStatus: protocol.GameStatusRunning})
	g.broadcaster.Broadcast(ctx, &protocol.TextNotification{Text: text})

	go g.notify(notifierCtx, round)

	return nil
}

// TypeCharacter validates a keystroke of the given player. The race stops when
// the keystroke makes every player finish.
func (g *Game) TypeCharacter(ctx context.Context, id int, r rune) (TypingResult, error) {
	res, finish, err := g.Keystroke(id, r)
	if finish != nil {
		finish(ctx)
	}

	return res, err
}

// Keystroke validates a keystroke like TypeCharacter but leaves stopping the
// race to the caller. finish is non-nil when the keystroke made every player
// finish; it stops the race of that round and must be called.
func (g *Game) Keystroke(id int, r rune) (TypingResult, func(ctx context.Context), error) {
	g.mu.Lock()
	p, ok := g.players[id]
	if !ok {
		g.mu.Unlock()

		return PlayerFinishedAlready, nil, ErrPlayerNotFound
	}
	if g.status != protocol.GameStatusRunning {
		g.mu.Unlock()

		return PlayerFinishedAlready, nil, nil
	}

	result := p.typeRune(r, g.text, g.startedAt, g.opts.Now())
	done := result == Correct && p.Finished && g.allFinishedLocked()
	round := g.round
	g.mu.Unlock()

	if !done {
		return result, nil, nil
	}

	return result, func(ctx context.Context) { g.stop(ctx, round) }, nil
}

// Stop ends the running race. It broadcasts the finished state and the final
// player states, then reports the result to Options.OnFinish. Stopping a game
// that is not running does nothing.
func (g *Game) Stop(ctx context.Context) {
	g.mu.Lock()
	round := g.round
	g.mu.Unlock()

	g.stop(ctx, round)
}

func (g *Game) stop(ctx context.Context, round int) {
	g.mu.Lock()
	if g.status != protocol.GameStatusRunning || g.round != round {
		g.mu.Unlock()

		return
	}

	g.status = protocol.GameStatusFinished
	if g.stopNotifier != nil {
		g.stopNotifier()
		g.stopNotifier = nil
	}
	result := g.resultLocked(g.opts.Now())
	states := g.stateMessagesLocked()
	g.mu.Unlock()

	// the caller may be the notifier whose context was just cancelled, or a
	// client that is about to disconnect; the result must still be recorded
	ctx = context.WithoutCancel(ctx)

	logger.Info(ctx, "race finished", zap.Int("round", round), zap.Int("players", len(result.Standings)))

	g.broadcaster.Broadcast(ctx, &protocol.GameStateNotification{GameStatus: protocol.GameStatusFinished})
	for _, msg := range states {
		g.broadcaster.Broadcast(ctx, msg)
	}

	if g.opts.OnFinish != nil {
		g.opts.OnFinish(ctx, result)
	}
}

// Reset prepares a new round on text. Readiness and statistics are cleared.
func (g *Game) Reset(text string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stopNotifier != nil {
		g.stopNotifier()
		g.stopNotifier = nil
	}
	// a reset during a race invalidates its round
	if g.status == protocol.GameStatusRunning {
		g.round++
	}

	g.status = protocol.GameStatusWaiting
	g.text = []rune(text)
	g.startedAt = time.Time{}
	for _, p := range g.players {
		p.reset()
	}
}

// BroadcastPlayerStates sends one PlayerStateNotification per player.
func (g *Game) BroadcastPlayerStates(ctx context.Context) {
	g.mu.Lock()
	states := g.stateMessagesLocked()
	g.mu.Unlock()

	for _, msg := range states {
		g.broadcaster.Broadcast(ctx, msg)
	}
}

// broadcastRoundStates is BroadcastPlayerStates limited to a race that is still running.
func (g *Game) broadcastRoundStates(ctx context.Context, round int) {
	g.mu.Lock()
	if g.status != protocol.GameStatusRunning || g.round != round {
		g.mu.Unlock()

		return
	}
	states := g.stateMessagesLocked()
	g.mu.Unlock()

	for _, msg := range states {
		g.broadcaster.Broadcast(ctx, msg)
	}
}

func (g *Game) stateMessagesLocked() []protocol.Message {
	msgs := make([]protocol.Message, 0, len(g.order))
	for _, id := range g.order {
		p := g.players[id]
		msgs = append(msgs, &protocol.PlayerStateNotification{
			Accuracy: p.Accuracy,
			PlayerID: p.ID,
			Progress: p.Progress,
			WPM:      p.WPM,
		})
	}

	return msgs
}

// resultLocked ranks finished players by finish time ahead of the others by progress.
func (g *Game) resultLocked(now time.Time) Result {
	standings := make([]Standing, 0, len(g.order))
	for _, id := range g.order {
		p := g.players[id]
		s := Standing{
			PlayerID: p.ID,
			Name:     p.Name,
			Finished: p.Finished && !p.FinishedAt.IsZero(),
			WPM:      p.WPM,
			CPM:      p.CPM,
			Accuracy: p.Accuracy,
			Duration: now.Sub(g.startedAt),
		}
		if s.Finished {
			s.Duration = p.FinishedAt.Sub(g.startedAt)
		}
		standings = append(standings, s)
	}

	progress := make(map[int]float64, len(g.players))
	for id, p := range g.players {
		progress[id] = p.Progress
	}

	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Finished != b.Finished {
			return a.Finished
		}
		if a.Finished {
			return a.Duration < b.Duration
		}

		return progress[a.PlayerID] > progress[b.PlayerID]
	})
	for i := range standings {
		standings[i].Place = i + 1
	}

	return Result{
		Text:       string(g.text),
		StartedAt:  g.startedAt,
		FinishedAt: now,
		Standings:  standings,
	}
}

// notify broadcasts player states every StateInterval and stops the race once
// RaceTimeout elapses.
func (g *Game) notify(ctx context.Context, round int) {
	ticker := time.NewTicker(g.opts.StateInterval)
	defer ticker.Stop()

	var timeout <-chan time.Time
	if g.opts.RaceTimeout > 0 {
		timer := time.NewTimer(g.opts.RaceTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.broadcastRoundStates(ctx, round)
		case <-timeout:
			logger.Info(ctx, "race timed out", zap.Int("round", round))
			g.stop(ctx, round)

			return
		}
	}
}
