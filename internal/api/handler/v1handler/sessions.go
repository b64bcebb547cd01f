package v1handler

import (
	"net/http"
	"strconv"
	"typeracer/pkg/logger"
	"typeracer/pkg/serrors"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

func pathInt(r *http.Request, name string) (int, error) {
	n, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, serrors.Wrap(serrors.ErrBadRequest, err, "invalid %s", name)
	}

	return n, nil
}

// ListSessions returns the live sessions, oldest first.
func (h *Handler) ListSessions(w http.ResponseWriter, _ *http.Request) {
	sessions := h.deps.Sessions.List()

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.FieldStart("items")
			e.Arr(func(e *jx.Encoder) {
				for i := range sessions {
					encodeSession(e, &sessions[i])
				}
			})
		})
	})
}

// CloseSession kicks every player of a session and removes it.
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	if err := h.deps.Sessions.Close(r.Context(), id); err != nil {
		h.writeError(w, r, err)

		return
	}
	logger.Info(r.Context(), "session closed by operator",
		zap.Int("sessionID", id), zap.String("operator", string(GetOperatorFromContext(r.Context()))))

	w.WriteHeader(http.StatusNoContent)
}

// KickPlayer removes one player from a session.
func (h *Handler) KickPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.writeError(w, r, err)

		return
	}
	playerID, err := pathInt(r, "playerId")
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	if err := h.deps.Sessions.Kick(r.Context(), id, playerID); err != nil {
		h.writeError(w, r, err)

		return
	}
	logger.Info(r.Context(), "player kicked by operator",
		zap.Int("sessionID", id),
		zap.Int("playerID", playerID),
		zap.String("operator", string(GetOperatorFromContext(r.Context()))))

	w.WriteHeader(http.StatusNoContent)
}
