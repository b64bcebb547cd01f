// Package server accepts game clients over TCP and WebSocket.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"sync"
	"time"
	"typeracer/internal/connection"
	"typeracer/pkg/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Options configure a Server.
type Options struct {
	// Addr is the TCP address ListenAndServe binds to.
	Addr string
	// MaxLineBytes bounds a single client message.
	MaxLineBytes int
	// AllowedOrigins restricts the Origin header of WebSocket upgrades. "*" or
	// an empty list allows any origin.
	AllowedOrigins []string
}

// Server hands every accepted connection to the connection manager.
type Server struct {
	conns    *connection.Manager
	handler  connection.Handler
	opts     Options
	upgrader websocket.Upgrader

	mu      sync.Mutex
	closing bool
	wg      sync.WaitGroup
}

// New returns a Server.
func New(conns *connection.Manager, h connection.Handler, opts Options) *Server {
	s := &Server{conns: conns, handler: h, opts: opts}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}

	return s
}

// ListenAndServe listens on Options.Addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("could not listen on %s: %w", s.opts.Addr, err)
	}

	return s.Serve(ctx, ln)
}

const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

// Serve accepts connections on ln until ctx is done. Accept errors other than
// a closed listener are retried with a growing delay. On return the listener
// is closed, every client is disconnected and their goroutines have exited.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()

	logger.Info(ctx, "game server listening", zap.String("addr", ln.Addr().String()))

	var (
		err   error
		delay time.Duration
	)
	for {
		var conn net.Conn
		conn, err = ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}

			delay = min(max(2*delay, minAcceptDelay), maxAcceptDelay)
			logger.Warn(ctx, "accept failed, retrying", zap.Duration("delay", delay), zap.Error(err))
			select {
			case <-ctx.Done():
			case <-time.After(delay):
			}

			continue
		}
		delay = 0

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.conns.Serve(ctx, connection.NewLineConn(conn, s.opts.MaxLineBytes), s.handler)
		}()
	}

	s.mu.Lock()
	s.closing = true
	s.mu.Unlock()

	s.conns.CloseAll()
	s.wg.Wait()

	if ctx.Err() != nil && errors.Is(err, net.ErrClosed) {
		logger.Info(ctx, "game server stopped")

		return nil
	}

	return fmt.Errorf("accept: %w", err)
}

// WebSocketHandler upgrades requests to WebSocket game connections that live
// until the client leaves or ctx is done. Once ctx is done or Serve is
// shutting down, requests are refused with 503.
func (s *Server) WebSocketHandler(ctx context.Context) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.track(ctx) {
			http.Error(w, "server is shutting down", http.StatusServiceUnavailable)

			return
		}

		ws, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.wg.Done()
			logger.Warn(r.Context(), "websocket upgrade failed", zap.Error(err))

			return
		}

		go func() {
			defer s.wg.Done()
			s.conns.Serve(ctx, connection.NewWSConn(ws, s.opts.MaxLineBytes), s.handler)
		}()
	})
}

// track adds a connection to the wait group unless the server is closing.
// Serve sets closing under the same lock before it waits.
func (s *Server) track(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closing || ctx.Err() != nil {
		return false
	}
	s.wg.Add(1)

	return true
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(s.opts.AllowedOrigins) == 0 || slices.Contains(s.opts.AllowedOrigins, "*") {
		return true
	}

	return slices.Contains(s.opts.AllowedOrigins, origin)
}
