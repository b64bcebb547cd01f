package client_test

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"
	"typeracer/internal/client"
	"typeracer/internal/connection"
	"typeracer/pkg/logger"
	"typeracer/pkg/protocol"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

// syncBuffer is a bytes.Buffer safe for the concurrent writes of the view.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

// fakeServer answers on the server side of a pipe.
type fakeServer struct {
	t    *testing.T
	conn connection.Conn
}

func (s *fakeServer) expect(want protocol.Message) {
	s.t.Helper()
	msg, err := s.conn.ReadMessage()
	require.NoError(s.t, err)
	require.Equal(s.t, want, msg)
}

func (s *fakeServer) send(msg protocol.Message) {
	s.t.Helper()
	require.NoError(s.t, s.conn.WriteMessage(context.Background(), msg))
}

func pipe(t *testing.T) (connection.Conn, *fakeServer) {
	t.Helper()
	c, srv := net.Pipe()
	t.Cleanup(func() { _ = srv.Close() })

	return connection.NewLineConn(c, 4096), &fakeServer{t: t, conn: connection.NewLineConn(srv, 4096)}
}

func TestClient_QuickMatchRace(t *testing.T) {
	conn, srv := pipe(t)
	in, keys := io.Pipe()
	out := &syncBuffer{}

	c := client.New(conn, in, out, client.Options{Name: "ada"})
	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()

	srv.expect(&protocol.JoinGameRequest{PlayerName: "ada"})
	srv.send(protocol.NewJoinGameResponse(protocol.Accepted, protocol.ReasonSuccess))
	srv.expect(&protocol.ReadyRequest{Ready: true})
	srv.send(&protocol.PlayerJoinedNotification{NumPlayers: 2, PlayerID: 7, PlayerName: "bob"})
	srv.send(&protocol.GameStateNotification{GameStatus: protocol.GameStatusRunning})
	srv.send(&protocol.TextNotification{Text: "ab"})

	go func() { _, _ = keys.Write([]byte("a\x03")) }()
	srv.expect(&protocol.CharacterRequest{Character: 'a'})
	srv.expect(&protocol.LeaveSessionRequest{})

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("client did not stop")
	}

	text := out.String()
	require.Contains(t, text, "bob joined (2 players)\r\n")
	require.Contains(t, text, "game running\r\n")
	require.Contains(t, text, "type this:\r\nab\r\n")
	require.Contains(t, text, "left the session")
}

func TestClient_CreateSession(t *testing.T) {
	conn, srv := pipe(t)
	in, _ := io.Pipe()
	out := &syncBuffer{}

	c := client.New(conn, in, out, client.Options{Name: "ada", Create: true})
	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()

	srv.expect(&protocol.HandshakeRequest{PlayerName: "ada"})
	srv.send(protocol.NewHandshakeResponse(protocol.Accepted, protocol.ReasonSuccess))
	srv.expect(&protocol.CreateSessionRequest{})
	srv.send(&protocol.CreateSessionResponse{Reason: protocol.ReasonSuccess, SessionID: 42})
	srv.expect(&protocol.JoinSessionRequest{SessionID: 42})
	srv.send(protocol.NewJoinSessionResponse(protocol.Accepted, protocol.ReasonSuccess))
	srv.expect(&protocol.ReadyRequest{Ready: true})

	// the server kicks the player
	srv.send(protocol.NewLeaveSessionResponse(protocol.Accepted, protocol.ReasonSessionKicked))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("client did not stop")
	}
	require.Contains(t, out.String(), "created session 42")
	require.Contains(t, out.String(), "you were removed from the session")
}

func TestClient_Denied(t *testing.T) {
	conn, srv := pipe(t)
	out := &syncBuffer{}

	c := client.New(conn, strings.NewReader(""), out, client.Options{Name: "ada", SessionID: 9})
	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()

	srv.expect(&protocol.HandshakeRequest{PlayerName: "ada"})
	srv.send(protocol.NewHandshakeResponse(protocol.Accepted, protocol.ReasonSuccess))
	srv.expect(&protocol.JoinSessionRequest{SessionID: 9})
	srv.send(protocol.NewJoinSessionResponse(protocol.Denied, protocol.ReasonSessionFull))

	select {
	case err := <-done:
		require.ErrorIs(t, err, client.ErrDenied)
		require.ErrorContains(t, err, "SESSION_FULL")
	case <-time.After(2 * time.Second):
		t.Fatal("client did not stop")
	}
}

func TestView_Render(t *testing.T) {
	var out bytes.Buffer
	v := client.NewView(&out)

	v.Render(&protocol.PlayerUpdateNotification{NumPlayers: 1, PlayerID: 3, PlayerName: "ada", Ready: true})
	v.Render(&protocol.PlayerStateNotification{PlayerID: 3, Progress: 0.5, WPM: 42, Accuracy: 1})
	v.Render(&protocol.CharacterResponse{Correct: true})
	v.Render(&protocol.CharacterResponse{Correct: false})
	v.Render(&protocol.PlayerLeftNotification{NumPlayers: 0, PlayerID: 3})

	require.Equal(t, 1, v.Typed())
	require.Contains(t, out.String(), "ada is ready\r\n")
	require.Contains(t, out.String(), "ada                   50%   42.0 wpm 100% accuracy\r\n")
	require.Contains(t, out.String(), "\a")
	require.Contains(t, out.String(), "ada left (0 players)\r\n")
}
