package game_test

import (
	"context"
	"sync"
	"testing"
	"time"
	"typeracer/internal/game"
	"typeracer/pkg/logger"
	"typeracer/pkg/protocol"
	"typeracer/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Setup("test")
	m.Run()
}

type recorder struct {
	mu   sync.Mutex
	msgs []protocol.Message
}

func (r *recorder) Broadcast(_ context.Context, msg protocol.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) messages() []protocol.Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]protocol.Message(nil), r.msgs...)
}

func (r *recorder) count(t protocol.MessageType) int {
	n := 0
	for _, m := range r.messages() {
		if m.Type() == t {
			n++
		}
	}

	return n
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// quiet keeps the notifier out of the way of message assertions.
func quiet(c *clock, onFinish func(context.Context, game.Result)) game.Options {
	return game.Options{StateInterval: time.Hour, Now: c.Now, OnFinish: onFinish}
}

func startedGame(t *testing.T, text string, opts game.Options, ids ...int) (*game.Game, *recorder) {
	t.Helper()

	rec := &recorder{}
	g := game.New(text, rec, opts)
	for _, id := range ids {
		require.NoError(t, g.AddPlayer(id, "p"))
		require.NoError(t, g.SetPlayerReady(id, true))
	}
	require.NoError(t, g.Start(context.Background()))
	t.Cleanup(func() { g.Reset("") })

	return g, rec
}

func typeString(t *testing.T, g *game.Game, id int, s string) []game.TypingResult {
	t.Helper()

	out := make([]game.TypingResult, 0, len(s))
	for _, r := range s {
		res, err := g.TypeCharacter(context.Background(), id, r)
		require.NoError(t, err)
		out = append(out, res)
	}

	return out
}

func TestGame_AddRemovePlayer(t *testing.T) {
	g := game.New("text", &recorder{}, game.Options{})

	require.NoError(t, g.AddPlayer(1, "ada"))
	require.ErrorIs(t, g.AddPlayer(1, "ada"), game.ErrPlayerExists)
	require.ErrorIs(t, g.AddPlayer(1, "ada"), serrors.ErrConflict)

	require.NoError(t, g.AddPlayer(2, "bob"))
	players := g.Players()
	require.Len(t, players, 2)
	require.Equal(t, "ada", players[0].Name)
	require.Equal(t, 1.0, players[0].Accuracy)

	require.NoError(t, g.RemovePlayer(context.Background(), 1))
	require.ErrorIs(t, g.RemovePlayer(context.Background(), 1), game.ErrPlayerNotFound)

	_, ok := g.Player(1)
	require.False(t, ok)
}

func TestGame_Readiness(t *testing.T) {
	g := game.New("text", &recorder{}, game.Options{})
	require.False(t, g.EveryoneReady(), "an empty game is never ready")

	require.NoError(t, g.AddPlayer(1, "ada"))
	require.NoError(t, g.AddPlayer(2, "bob"))
	require.ErrorIs(t, g.SetPlayerReady(3, true), game.ErrPlayerNotFound)

	require.NoError(t, g.SetPlayerReady(1, true))
	require.False(t, g.EveryoneReady())
	require.ErrorIs(t, g.Start(context.Background()), game.ErrNotReady)

	require.NoError(t, g.SetPlayerReady(2, true))
	require.True(t, g.EveryoneReady())
}

func TestGame_StartBroadcastsStateThenText(t *testing.T) {
	g, rec := startedGame(t, "hello world", quiet(newClock(), nil), 1)

	require.Equal(t, protocol.GameStatusRunning, g.Status())
	require.Equal(t, []protocol.Message{
		&protocol.GameStateNotification{GameStatus: protocol.GameStatusRunning},
		&protocol.TextNotification{Text: "hello world"},
	}, rec.messages())

	err := g.SetPlayerReady(1, false)
	require.ErrorIs(t, err, game.ErrGameStarted)
	require.ErrorIs(t, err, serrors.ErrGameStarted)
	require.ErrorIs(t, g.Start(context.Background()), game.ErrGameStarted)
}

func TestGame_StartWithoutText(t *testing.T) {
	g := game.New("", &recorder{}, game.Options{})
	require.NoError(t, g.AddPlayer(1, "ada"))
	require.NoError(t, g.SetPlayerReady(1, true))

	require.ErrorIs(t, g.Start(context.Background()), game.ErrNoText)
}

func TestGame_TypeCharacterBeforeStart(t *testing.T) {
	g := game.New("abc", &recorder{}, game.Options{})
	require.NoError(t, g.AddPlayer(1, "ada"))

	res, err := g.TypeCharacter(context.Background(), 1, 'a')
	require.NoError(t, err)
	require.Equal(t, game.PlayerFinishedAlready, res)

	_, err = g.TypeCharacter(context.Background(), 2, 'a')
	require.ErrorIs(t, err, game.ErrPlayerNotFound)
}

func TestGame_TypingStatistics(t *testing.T) {
	c := newClock()
	finished := make(chan game.Result, 1)
	g, rec := startedGame(t, "ab cd", quiet(c, func(_ context.Context, r game.Result) { finished <- r }), 1)

	c.Advance(30 * time.Second)
	require.Equal(t,
		[]game.TypingResult{game.Correct, game.Incorrect, game.Correct, game.Correct},
		typeString(t, g, 1, "axb "))

	p, ok := g.Player(1)
	require.True(t, ok)
	require.Equal(t, 3, p.TextIndex)
	require.Equal(t, 1, p.TypedWords)
	require.InDelta(t, 0.6, p.Progress, 1e-9)
	require.InDelta(t, 0.75, p.Accuracy, 1e-9)
	require.InDelta(t, 2.0, p.WPM, 1e-9)
	require.InDelta(t, 6.0, p.CPM, 1e-9)
	require.False(t, p.Finished)

	c.Advance(30 * time.Second)
	require.Equal(t, []game.TypingResult{game.Correct, game.Correct}, typeString(t, g, 1, "cd"))

	p, _ = g.Player(1)
	require.True(t, p.Finished)
	require.Equal(t, 1.0, p.Progress)
	require.Equal(t, 2, p.TypedWords)
	require.InDelta(t, 2.0, p.WPM, 1e-9)
	require.InDelta(t, 5.0, p.CPM, 1e-9)

	require.Equal(t, protocol.GameStatusFinished, g.Status())
	require.Equal(t, 1, rec.count(protocol.TypeGameStateNotification)-1, "one FINISHED after RUNNING")
	require.Equal(t, 1, rec.count(protocol.TypePlayerStateNotification))

	result := <-finished
	require.Equal(t, "ab cd", result.Text)
	require.Len(t, result.Standings, 1)
	require.Equal(t, 1, result.Standings[0].Place)
	require.True(t, result.Standings[0].Finished)
	require.Equal(t, time.Minute, result.Standings[0].Duration)

	res, err := g.TypeCharacter(context.Background(), 1, 'x')
	require.NoError(t, err)
	require.Equal(t, game.PlayerFinishedAlready, res)
}

func TestGame_StandingsOrder(t *testing.T) {
	c := newClock()
	finished := make(chan game.Result, 1)
	g, _ := startedGame(t, "go", quiet(c, func(_ context.Context, r game.Result) { finished <- r }), 1, 2, 3)

	c.Advance(10 * time.Second)
	typeString(t, g, 3, "go")
	c.Advance(10 * time.Second)
	typeString(t, g, 1, "g")
	typeString(t, g, 2, "go")
	require.Equal(t, protocol.GameStatusRunning, g.Status())

	g.Stop(context.Background())

	result := <-finished
	require.Equal(t, []int{3, 2, 1}, []int{
		result.Standings[0].PlayerID,
		result.Standings[1].PlayerID,
		result.Standings[2].PlayerID,
	})
	require.False(t, result.Standings[2].Finished)
	require.Equal(t, 20*time.Second, result.Standings[2].Duration)

	// stopping twice reports once
	g.Stop(context.Background())
	require.Empty(t, finished)
}

func TestGame_RemoveLastTypingPlayerStopsRace(t *testing.T) {
	finished := make(chan game.Result, 1)
	g, _ := startedGame(t, "go", quiet(newClock(), func(_ context.Context, r game.Result) { finished <- r }), 1, 2)

	typeString(t, g, 1, "go")
	require.Equal(t, protocol.GameStatusRunning, g.Status())

	require.NoError(t, g.RemovePlayer(context.Background(), 2))
	require.Equal(t, protocol.GameStatusFinished, g.Status())

	result := <-finished
	require.Len(t, result.Standings, 1)
}

func TestGame_Reset(t *testing.T) {
	g, _ := startedGame(t, "go", quiet(newClock(), nil), 1)
	typeString(t, g, 1, "g")

	g.Reset("next text")

	require.Equal(t, protocol.GameStatusWaiting, g.Status())
	require.Equal(t, "next text", g.Text())
	require.True(t, g.StartedAt().IsZero())

	p, _ := g.Player(1)
	require.False(t, p.Ready)
	require.Zero(t, p.TextIndex)
	require.Zero(t, p.Keystrokes)
	require.Equal(t, 1.0, p.Accuracy)
	require.NoError(t, g.SetPlayerReady(1, true))
}

func TestGame_NotifierBroadcastsStates(t *testing.T) {
	rec := &recorder{}
	g := game.New("some text", rec, game.Options{StateInterval: 5 * time.Millisecond})
	require.NoError(t, g.AddPlayer(1, "ada"))
	require.NoError(t, g.SetPlayerReady(1, true))
	require.NoError(t, g.Start(context.Background()))

	require.Eventually(t, func() bool {
		return rec.count(protocol.TypePlayerStateNotification) >= 3
	}, time.Second, 5*time.Millisecond)

	g.Stop(context.Background())
	settled := rec.count(protocol.TypePlayerStateNotification)
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, settled, rec.count(protocol.TypePlayerStateNotification), "no ticks after stop")
}

func TestGame_RaceTimeout(t *testing.T) {
	finished := make(chan game.Result, 1)
	var finishErr error
	g := game.New("some text", &recorder{}, game.Options{
		StateInterval: time.Hour,
		RaceTimeout:   20 * time.Millisecond,
		OnFinish: func(ctx context.Context, r game.Result) {
			finishErr = ctx.Err()
			finished <- r
		},
	})
	require.NoError(t, g.AddPlayer(1, "ada"))
	require.NoError(t, g.SetPlayerReady(1, true))
	require.NoError(t, g.Start(context.Background()))

	select {
	case result := <-finished:
		require.False(t, result.Standings[0].Finished)
		require.NoError(t, finishErr, "the result is reported with a live context")
	case <-time.After(2 * time.Second):
		t.Fatal("race did not time out")
	}
	require.Equal(t, protocol.GameStatusFinished, g.Status())
}

func TestTypingResultString(t *testing.T) {
	require.Equal(t, "CORRECT", game.Correct.String())
	require.Equal(t, "PLAYER_FINISHED_ALREADY", game.PlayerFinishedAlready.String())
}

func TestGame_KeystrokeLeavesStopToCaller(t *testing.T) {
	var finished []game.Result
	g := game.New("ab", &recorder{}, game.Options{
		StateInterval: time.Hour,
		OnFinish:      func(_ context.Context, r game.Result) { finished = append(finished, r) },
	})
	require.NoError(t, g.AddPlayer(1, "ada"))
	require.NoError(t, g.SetPlayerReady(1, true))
	require.NoError(t, g.Start(context.Background()))

	res, finish, err := g.Keystroke(1, 'a')
	require.NoError(t, err)
	require.Equal(t, game.Correct, res)
	require.Nil(t, finish)

	res, finish, err = g.Keystroke(1, 'b')
	require.NoError(t, err)
	require.Equal(t, game.Correct, res)
	require.NotNil(t, finish)
	require.Equal(t, protocol.GameStatusRunning, g.Status())
	require.Empty(t, finished)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	finish(ctx)
	require.Equal(t, protocol.GameStatusFinished, g.Status())
	require.Len(t, finished, 1)

	finish(context.Background())
	require.Len(t, finished, 1, "a round stops once")
}
