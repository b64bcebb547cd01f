package connection_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"typeracer/internal/connection"
	"typeracer/pkg/protocol"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestLineConn(t *testing.T) {
	conn, peer := pipe(t)

	go func() {
		_, _ = io.WriteString(peer, "{\"messageType\":\"CharacterRequest\",\"character\":\"a\"}\n")
	}()
	msg, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, &protocol.CharacterRequest{Character: 'a'}, msg)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.Error(t, conn.WriteMessage(ctx, &protocol.CharacterResponse{}), "nobody reads the peer")

	require.Equal(t, "pipe", conn.RemoteAddr())
}

func wsPair(t *testing.T) (server connection.Conn, peer *websocket.Conn) {
	t.Helper()

	conns := make(chan connection.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := (&websocket.Upgrader{}).Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns <- connection.NewWSConn(c, 128)
	}))
	t.Cleanup(srv.Close)

	peer, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = peer.Close() })

	return <-conns, peer
}

func TestWSConn(t *testing.T) {
	conn, peer := wsPair(t)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, peer.WriteMessage(websocket.TextMessage, []byte(`{"messageType":"ReadyRequest","ready":true}`)))
	msg, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, &protocol.ReadyRequest{Ready: true}, msg)

	require.NoError(t, peer.WriteMessage(websocket.TextMessage, []byte(`{"ready":true}`)))
	_, err = conn.ReadMessage()
	require.ErrorIs(t, err, protocol.ErrMalformed)

	require.NoError(t, peer.WriteMessage(websocket.BinaryMessage, []byte{1, 2}))
	_, err = conn.ReadMessage()
	require.ErrorIs(t, err, protocol.ErrMalformed)

	require.NoError(t, conn.WriteMessage(context.Background(), &protocol.TextNotification{Text: "go"}))
	kind, data, err := peer.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.TextMessage, kind)
	require.JSONEq(t, `{"messageType":"TextNotification","text":"go"}`, string(data))

	require.NoError(t, peer.WriteMessage(websocket.TextMessage, []byte(strings.Repeat(" ", 200))))
	_, err = conn.ReadMessage()
	require.ErrorIs(t, err, protocol.ErrLineTooLong)
}

func TestWSConn_PeerCloses(t *testing.T) {
	conn, peer := wsPair(t)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, peer.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")))

	_, err := conn.ReadMessage()
	require.ErrorIs(t, err, io.EOF)
}
