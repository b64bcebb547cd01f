package handler

import (
	"context"
	"errors"
	"typeracer/internal/game"
	"typeracer/internal/session"
	"typeracer/pkg/logger"
	"typeracer/pkg/protocol"

	"go.uber.org/zap"
)

func (h *Handler) handshake(ctx context.Context, clientID int, req *protocol.HandshakeRequest) {
	name, err := h.clients.SetName(clientID, req.PlayerName)
	if err != nil {
		logger.Info(ctx, "handshake denied", zap.String("playerName", req.PlayerName), zap.Error(err))
		h.send(ctx, clientID, protocol.NewHandshakeResponse(protocol.Denied, reason(err)))

		return
	}

	logger.Info(ctx, "handshake accepted", zap.String("playerName", name))
	h.send(ctx, clientID, protocol.NewHandshakeResponse(protocol.Accepted, protocol.ReasonSuccess))
}

func (h *Handler) createSession(ctx context.Context, clientID int, _ *protocol.CreateSessionRequest) {
	if _, err := h.clients.Name(clientID); err != nil {
		h.send(ctx, clientID, &protocol.CreateSessionResponse{
			Reason:    protocol.ReasonSessionCreateNoPermission,
			SessionID: -1,
		})

		return
	}

	id, err := h.sessions.Create(ctx)
	if err != nil {
		logger.Error(ctx, "could not create session", zap.Error(err))
		h.send(ctx, clientID, &protocol.CreateSessionResponse{Reason: protocol.ReasonUnknown, SessionID: -1})

		return
	}

	h.send(ctx, clientID, &protocol.CreateSessionResponse{Reason: protocol.ReasonSuccess, SessionID: id})
}

func (h *Handler) joinSession(ctx context.Context, clientID int, req *protocol.JoinSessionRequest) {
	h.join(ctx, clientID, req.SessionID, func(s protocol.PermissionStatus, r protocol.Reason) protocol.Message {
		return protocol.NewJoinSessionResponse(s, r)
	})
}

func (h *Handler) joinLobby(ctx context.Context, clientID int, req *protocol.JoinLobbyRequest) {
	h.join(ctx, clientID, req.LobbyID, func(s protocol.PermissionStatus, r protocol.Reason) protocol.Message {
		return protocol.NewJoinLobbyResponse(s, r)
	})
}

func (h *Handler) join(
	ctx context.Context,
	clientID, sessionID int,
	respond func(protocol.PermissionStatus, protocol.Reason) protocol.Message,
) {
	name, err := h.clients.Name(clientID)
	if err != nil {
		h.send(ctx, clientID, respond(protocol.Denied, protocol.ReasonUnknown))

		return
	}

	s, err := h.sessions.Join(ctx, clientID, name, sessionID)
	if err != nil {
		logger.Info(ctx, "join denied", zap.Int("sessionID", sessionID), zap.Error(err))
		h.send(ctx, clientID, respond(protocol.Denied, reason(err)))

		return
	}

	h.send(ctx, clientID, respond(protocol.Accepted, protocol.ReasonSuccess))
	h.announce(ctx, s, clientID, name)
}

func (h *Handler) joinGame(ctx context.Context, clientID int, req *protocol.JoinGameRequest) {
	name, err := h.clients.SetName(clientID, req.PlayerName)
	if err != nil {
		h.send(ctx, clientID, protocol.NewJoinGameResponse(protocol.Denied, reason(err)))

		return
	}

	s, err := h.sessions.QuickJoin(ctx, clientID, name)
	if err != nil {
		logger.Info(ctx, "quick match denied", zap.Error(err))
		h.send(ctx, clientID, protocol.NewJoinGameResponse(protocol.Denied, reason(err)))

		return
	}

	h.send(ctx, clientID, protocol.NewJoinGameResponse(protocol.Accepted, protocol.ReasonSuccess))
	h.announce(ctx, s, clientID, name)
}

// announce introduces the players of s to the client that just joined and the
// joined client to everyone.
func (h *Handler) announce(ctx context.Context, s *session.Session, clientID int, name string) {
	ctx = logger.WithFields(ctx, zap.Int("sessionID", s.ID()))
	logger.Info(ctx, "player joined session", zap.String("playerName", name))

	players := s.Game().Players()
	for _, p := range players {
		if p.ID == clientID {
			continue
		}
		h.send(ctx, clientID, &protocol.PlayerJoinedNotification{
			NumPlayers: len(players),
			PlayerID:   p.ID,
			PlayerName: p.Name,
		})
		h.send(ctx, clientID, &protocol.PlayerUpdateNotification{
			NumPlayers: len(players),
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Ready:      p.Ready,
		})
	}

	s.Broadcast(ctx, &protocol.PlayerJoinedNotification{
		NumPlayers: len(players),
		PlayerID:   clientID,
		PlayerName: name,
	})
}

func (h *Handler) leaveSession(ctx context.Context, clientID int, _ *protocol.LeaveSessionRequest) {
	s, err := h.sessions.Leave(ctx, clientID)
	if err != nil {
		h.send(ctx, clientID, protocol.NewLeaveSessionResponse(protocol.Denied, protocol.ReasonUnknown))

		return
	}

	logger.Info(ctx, "player left session", zap.Int("sessionID", s.ID()))
	h.send(ctx, clientID, protocol.NewLeaveSessionResponse(protocol.Accepted, protocol.ReasonSuccess))
}

func (h *Handler) ready(ctx context.Context, clientID int, req *protocol.ReadyRequest) {
	s, ok := h.sessions.ByClient(clientID)
	if !ok {
		h.send(ctx, clientID, protocol.NewReadyResponse(protocol.Denied, protocol.ReasonUnknown))

		return
	}
	ctx = logger.WithFields(ctx, zap.Int("sessionID", s.ID()))

	if err := s.SetReady(clientID, req.Ready); err != nil {
		h.send(ctx, clientID, protocol.NewReadyResponse(protocol.Denied, reason(err)))

		return
	}
	h.send(ctx, clientID, protocol.NewReadyResponse(protocol.Accepted, protocol.ReasonSuccess))

	player, ok := s.Game().Player(clientID)
	if !ok {
		return
	}
	s.Broadcast(ctx, &protocol.PlayerUpdateNotification{
		NumPlayers: s.NumPlayers(),
		PlayerID:   clientID,
		PlayerName: player.Name,
		Ready:      player.Ready,
	})

	started, err := s.StartIfReady(ctx)
	switch {
	case errors.Is(err, game.ErrGameStarted):
		// a concurrent ready request started the race
	case err != nil:
		logger.Warn(ctx, "could not start race", zap.Error(err))
	case started:
		logger.Info(ctx, "race started", zap.Int("players", s.NumPlayers()))
	}
}

func (h *Handler) character(ctx context.Context, clientID int, req *protocol.CharacterRequest) {
	s, ok := h.sessions.ByClient(clientID)
	if !ok {
		return
	}

	_, err := s.TypeCharacter(ctx, clientID, req.Character, func(res game.TypingResult) {
		if res == game.PlayerFinishedAlready {
			return
		}
		h.send(ctx, clientID, &protocol.CharacterResponse{Correct: res == game.Correct})
	})
	if err != nil {
		logger.Debug(ctx, "keystroke ignored", zap.Error(err))
	}
}
