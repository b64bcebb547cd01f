package session_test

import (
	"context"
	"sync"
	"testing"
	"time"
	"typeracer/internal/game"
	"typeracer/internal/game/text"
	"typeracer/internal/session"
	mocksession "typeracer/internal/session/mock"
	"typeracer/pkg/domain"
	"typeracer/pkg/logger"
	"typeracer/pkg/metrics"
	"typeracer/pkg/protocol"
	"typeracer/pkg/serrors"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	logger.Setup("test")
	m.Run()
}

type outbox struct {
	mu   sync.Mutex
	msgs map[int][]protocol.Message
}

func (o *outbox) Send(_ context.Context, clientID int, msg protocol.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.msgs == nil {
		o.msgs = make(map[int][]protocol.Message)
	}
	o.msgs[clientID] = append(o.msgs[clientID], msg)

	return nil
}

func (o *outbox) of(clientID int) []protocol.Message {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]protocol.Message(nil), o.msgs[clientID]...)
}

func (o *outbox) reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.msgs = nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	manager  *session.Manager
	outbox   *outbox
	recorder *mocksession.MockRecorder
	clock    *fakeClock
}

func newFixture(t *testing.T, maxPlayers int) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fixture{
		outbox:   &outbox{},
		recorder: mocksession.NewMockRecorder(ctrl),
		clock:    &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
	}
	f.manager = session.NewManager(f.outbox, f.recorder, text.StaticSource("go go"), metrics.NewNop(), session.Options{
		MaxPlayers: maxPlayers,
		Game:       game.Options{StateInterval: time.Hour},
		Now:        f.clock.Now,
	})

	return f
}

func TestManager_CreateAndLookup(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()

	a, err := f.manager.Create(ctx)
	require.NoError(t, err)
	b, err := f.manager.Create(ctx)
	require.NoError(t, err)
	require.Positive(t, a)
	require.Greater(t, b, a)

	s, ok := f.manager.ByID(a)
	require.True(t, ok)
	require.Equal(t, a, s.ID())
	require.True(t, s.IsEmpty())
	require.Equal(t, protocol.GameStatusWaiting, s.Game().Status())
	require.Equal(t, "go go", s.Game().Text())

	_, ok = f.manager.ByID(a + 1)
	require.False(t, ok)

	list := f.manager.List()
	require.Len(t, list, 2)
	require.Equal(t, a, list[0].ID)
	require.Equal(t, 2, f.manager.Count())
}

func TestManager_Join(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()
	id, err := f.manager.Create(ctx)
	require.NoError(t, err)

	_, err = f.manager.Join(ctx, 1, "ada", id+1)
	require.ErrorIs(t, err, session.ErrSessionNotFound)
	require.ErrorIs(t, err, serrors.ErrNotFound)

	s, err := f.manager.Join(ctx, 1, "ada", id)
	require.NoError(t, err)
	require.Equal(t, []int{1}, s.PlayerIDs())

	_, err = f.manager.Join(ctx, 1, "ada", id)
	require.ErrorIs(t, err, session.ErrAlreadyInSession)

	_, err = f.manager.Join(ctx, 2, "bob", id)
	require.NoError(t, err)
	require.True(t, s.IsFull())

	_, err = f.manager.Join(ctx, 3, "cy", id)
	require.ErrorIs(t, err, serrors.ErrSessionFull)

	byClient, ok := f.manager.ByClient(2)
	require.True(t, ok)
	require.Same(t, s, byClient)
}

func TestManager_JoinRunningRace(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()
	id, _ := f.manager.Create(ctx)

	s, err := f.manager.Join(ctx, 1, "ada", id)
	require.NoError(t, err)
	require.NoError(t, s.SetReady(1, true))
	started, err := s.StartIfReady(ctx)
	require.NoError(t, err)
	require.True(t, started)
	t.Cleanup(func() { s.Game().Reset("") })

	_, err = f.manager.Join(ctx, 2, "bob", id)
	require.ErrorIs(t, err, serrors.ErrGameStarted)
}

func TestManager_Leave(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()
	id, _ := f.manager.Create(ctx)

	_, err := f.manager.Leave(ctx, 1)
	require.ErrorIs(t, err, session.ErrNotInSession)

	_, err = f.manager.Join(ctx, 1, "ada", id)
	require.NoError(t, err)
	_, err = f.manager.Join(ctx, 2, "bob", id)
	require.NoError(t, err)

	s, err := f.manager.Leave(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []int{2}, s.PlayerIDs())
	require.Equal(t, []protocol.Message{
		&protocol.PlayerLeftNotification{NumPlayers: 1, PlayerID: 1},
	}, f.outbox.of(2))
	require.Empty(t, f.outbox.of(1))

	_, ok := f.manager.ByClient(1)
	require.False(t, ok)

	_, err = f.manager.Leave(ctx, 2)
	require.NoError(t, err)
	_, ok = f.manager.ByID(id)
	require.False(t, ok, "empty session is closed")
}

func TestManager_LeaveStartsRaceWhenRestAreReady(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()
	id, _ := f.manager.Create(ctx)

	s, _ := f.manager.Join(ctx, 1, "ada", id)
	_, _ = f.manager.Join(ctx, 2, "bob", id)
	require.NoError(t, s.SetReady(1, true))
	t.Cleanup(func() { s.Game().Reset("") })

	_, err := f.manager.Leave(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, protocol.GameStatusRunning, s.Game().Status())
}

func TestManager_QuickJoin(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()

	first, err := f.manager.QuickJoin(ctx, 1, "ada")
	require.NoError(t, err)

	second, err := f.manager.QuickJoin(ctx, 2, "bob")
	require.NoError(t, err)
	require.Same(t, first, second)

	third, err := f.manager.QuickJoin(ctx, 3, "cy")
	require.NoError(t, err)
	require.NotEqual(t, first.ID(), third.ID())
	require.Equal(t, 2, f.manager.Count())

	_, err = f.manager.QuickJoin(ctx, 3, "cy")
	require.ErrorIs(t, err, session.ErrAlreadyInSession)
}

func TestManager_Kick(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()
	id, _ := f.manager.Create(ctx)
	_, _ = f.manager.Join(ctx, 1, "ada", id)
	_, _ = f.manager.Join(ctx, 2, "bob", id)

	require.ErrorIs(t, f.manager.Kick(ctx, id+1, 1), session.ErrSessionNotFound)
	require.ErrorIs(t, f.manager.Kick(ctx, id, 3), serrors.ErrNotFound)

	require.NoError(t, f.manager.Kick(ctx, id, 1))
	require.Equal(t, []protocol.Message{
		protocol.NewLeaveSessionResponse(protocol.Accepted, protocol.ReasonSessionKicked),
	}, f.outbox.of(1))
	require.Equal(t, []protocol.Message{
		&protocol.PlayerLeftNotification{NumPlayers: 1, PlayerID: 1},
	}, f.outbox.of(2))
}

func TestManager_Close(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()
	id, _ := f.manager.Create(ctx)
	_, _ = f.manager.Join(ctx, 1, "ada", id)
	_, _ = f.manager.Join(ctx, 2, "bob", id)

	require.NoError(t, f.manager.Close(ctx, id))
	require.ErrorIs(t, f.manager.Close(ctx, id), session.ErrSessionNotFound)

	kicked := protocol.NewLeaveSessionResponse(protocol.Accepted, protocol.ReasonSessionKicked)
	require.Equal(t, []protocol.Message{kicked}, f.outbox.of(1))
	require.Equal(t, []protocol.Message{kicked}, f.outbox.of(2))

	_, ok := f.manager.ByClient(1)
	require.False(t, ok)
	require.Zero(t, f.manager.Count())

	// the players are free to join elsewhere
	_, err := f.manager.QuickJoin(ctx, 1, "ada")
	require.NoError(t, err)
}

func TestManager_Reap(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()

	idle, _ := f.manager.Create(ctx)
	busy, _ := f.manager.Create(ctx)
	_, err := f.manager.Join(ctx, 1, "ada", busy)
	require.NoError(t, err)

	f.clock.Advance(5 * time.Minute)
	require.Zero(t, f.manager.Reap(ctx, 10*time.Minute))

	f.clock.Advance(6 * time.Minute)
	require.Equal(t, 1, f.manager.Reap(ctx, 10*time.Minute))

	_, ok := f.manager.ByID(idle)
	require.False(t, ok)
	_, ok = f.manager.ByID(busy)
	require.True(t, ok)
}

func TestSession_RaceIsRecordedAndRoundResets(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()
	id, _ := f.manager.Create(ctx)

	s, err := f.manager.Join(ctx, 1, "ada", id)
	require.NoError(t, err)
	require.NoError(t, s.SetReady(1, true))

	var recorded domain.Race
	f.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, race domain.Race) error {
			recorded = race

			return nil
		})

	started, err := s.StartIfReady(ctx)
	require.NoError(t, err)
	require.True(t, started)
	f.outbox.reset()

	reply := func(res game.TypingResult) {
		_ = f.outbox.Send(ctx, 1, &protocol.CharacterResponse{Correct: res == game.Correct})
	}
	for _, r := range "go go" {
		f.clock.Advance(6 * time.Second)
		res, err := s.TypeCharacter(ctx, 1, r, reply)
		require.NoError(t, err)
		require.Equal(t, game.Correct, res)
	}

	require.Equal(t, id, recorded.SessionID)
	require.Equal(t, "go go", recorded.Text)
	require.Len(t, recorded.Results, 1)
	require.Equal(t, "ada", recorded.Results[0].PlayerName)
	require.Equal(t, 1, recorded.Results[0].Place)
	require.True(t, recorded.Results[0].Finished)
	require.NotNil(t, recorded.Winner())

	require.Equal(t, protocol.GameStatusWaiting, s.Game().Status())
	typed := &protocol.CharacterResponse{Correct: true}
	require.Equal(t, []protocol.Message{
		typed, typed, typed, typed, typed,
		&protocol.GameStateNotification{GameStatus: protocol.GameStatusFinished},
		&protocol.PlayerStateNotification{Accuracy: 1, PlayerID: 1, Progress: 1, WPM: 4},
		&protocol.GameStateNotification{GameStatus: protocol.GameStatusWaiting},
		&protocol.PlayerUpdateNotification{NumPlayers: 1, PlayerID: 1, PlayerName: "ada", Ready: false},
	}, f.outbox.of(1))
}
