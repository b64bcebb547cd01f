// Package handler answers the requests of game clients.
//
//go:generate mockgen -package mockhandler -source=handler.go -destination=mock/mockhandler.go
package handler

import (
	"context"
	"errors"
	"time"
	"typeracer/internal/session"
	"typeracer/pkg/logger"
	"typeracer/pkg/metrics"
	"typeracer/pkg/protocol"
	"typeracer/pkg/serrors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Clients is the connection registry the handler reads player names from and
// writes responses to.
type Clients interface {
	SetName(clientID int, name string) (string, error)
	Name(clientID int) (string, error)
	Send(ctx context.Context, clientID int, msg protocol.Message) error
}

// Sessions groups clients into sessions.
type Sessions interface {
	Create(ctx context.Context) (int, error)
	Join(ctx context.Context, clientID int, name string, sessionID int) (*session.Session, error)
	QuickJoin(ctx context.Context, clientID int, name string) (*session.Session, error)
	Leave(ctx context.Context, clientID int) (*session.Session, error)
	ByClient(clientID int) (*session.Session, bool)
}

type route func(ctx context.Context, clientID int, msg protocol.Message)

// Handler dispatches every client message to the function registered for its type.
type Handler struct {
	clients  Clients
	sessions Sessions
	metrics  *metrics.Metrics
	tracer   trace.Tracer
	routes   map[protocol.MessageType]route
}

// Options configure a Handler.
type Options struct {
	// TracerProvider creates the span around every handled message. The
	// global provider is used when nil.
	TracerProvider trace.TracerProvider
}

// New returns a Handler.
func New(clients Clients, sessions Sessions, m *metrics.Metrics, opts Options) *Handler {
	if opts.TracerProvider == nil {
		opts.TracerProvider = otel.GetTracerProvider()
	}

	h := &Handler{
		clients:  clients,
		sessions: sessions,
		metrics:  m,
		tracer:   opts.TracerProvider.Tracer("typeracer/internal/handler"),
	}
	h.routes = map[protocol.MessageType]route{
		protocol.TypeHandshakeRequest:     on(h.handshake),
		protocol.TypeCreateSessionRequest: on(h.createSession),
		protocol.TypeJoinSessionRequest:   on(h.joinSession),
		protocol.TypeJoinLobbyRequest:     on(h.joinLobby),
		protocol.TypeJoinGameRequest:      on(h.joinGame),
		protocol.TypeLeaveSessionRequest:  on(h.leaveSession),
		protocol.TypeReadyRequest:         on(h.ready),
		protocol.TypeCharacterRequest:     on(h.character),
	}

	return h
}

func on[M protocol.Message](fn func(ctx context.Context, clientID int, msg M)) route {
	return func(ctx context.Context, clientID int, msg protocol.Message) {
		if m, ok := msg.(M); ok {
			fn(ctx, clientID, m)
		}
	}
}

// Handle implements connection.Handler.
func (h *Handler) Handle(ctx context.Context, clientID int, msg protocol.Message) {
	t := msg.Type()
	fn, ok := h.routes[t]
	if !ok {
		logger.Warn(ctx, "dropping message without handler", zap.String("messageType", string(t)))

		return
	}

	ctx, span := h.tracer.Start(ctx, string(t), trace.WithAttributes(
		attribute.Int("client.id", clientID),
		attribute.String("message.type", string(t)),
	))
	defer span.End()

	start := time.Now()
	fn(ctx, clientID, msg)
	h.metrics.MessageHandled(ctx, string(t), time.Since(start))
}

// Disconnected implements connection.Handler. The session of the client, if
// any, is left.
func (h *Handler) Disconnected(ctx context.Context, clientID int) {
	_, err := h.sessions.Leave(ctx, clientID)
	if err != nil && !errors.Is(err, session.ErrNotInSession) {
		logger.Warn(ctx, "could not leave session of disconnected client", zap.Error(err))
	}
}

func (h *Handler) send(ctx context.Context, clientID int, msg protocol.Message) {
	if err := h.clients.Send(ctx, clientID, msg); err != nil {
		logger.Debug(ctx, "could not send response", zap.String("messageType", string(msg.Type())), zap.Error(err))
	}
}

// reason maps an error onto the protocol reason shown to the player.
func reason(err error) protocol.Reason {
	if errors.Is(err, session.ErrSessionNotFound) {
		return protocol.ReasonSessionNotFound
	}

	switch serrors.KindOf(err) {
	case serrors.ErrInvalidName:
		return protocol.ReasonInvalidUsername
	case serrors.ErrBanned:
		return protocol.ReasonHandshakeBanned
	case serrors.ErrSessionFull:
		return protocol.ReasonSessionFull
	case serrors.ErrGameStarted:
		return protocol.ReasonSessionGameAlreadyStarted
	case serrors.ErrKicked:
		return protocol.ReasonSessionKicked
	default:
		return protocol.ReasonUnknown
	}
}
