package v1handler

import (
	"net/http"
	"strconv"
	"typeracer/pkg/domain"
	"typeracer/pkg/serrors"

	"github.com/go-faster/jx"
	"github.com/google/uuid"
)

// DefaultLimit is the page size used when the limit parameter is missing.
const DefaultLimit = 20

var errNoDatabase = serrors.With(serrors.ErrUnavailable, "race history is disabled")

func queryLimit(r *http.Request) (uint, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return DefaultLimit, nil
	}

	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n < 1 || n > 100 {
		return 0, serrors.With(serrors.ErrBadRequest, "limit must be between 1 and 100")
	}

	return uint(n), nil
}

// ListRaces returns a page of finished races, most recent first.
func (h *Handler) ListRaces(w http.ResponseWriter, r *http.Request) {
	if h.deps.Results == nil {
		h.writeError(w, r, errNoDatabase)

		return
	}
	limit, err := queryLimit(r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	races, next, err := h.deps.Results.RecentRaces(r.Context(), r.URL.Query().Get("cursor"), limit)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.FieldStart("items")
			e.Arr(func(e *jx.Encoder) {
				for i := range races {
					encodeRace(e, &races[i])
				}
			})
			e.FieldStart("nextCursor")
			if next == "" {
				e.Null()
			} else {
				e.Str(next)
			}
		})
	})
}

// GetRace returns a race by id.
func (h *Handler) GetRace(w http.ResponseWriter, r *http.Request) {
	if h.deps.Results == nil {
		h.writeError(w, r, errNoDatabase)

		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, serrors.Wrap(serrors.ErrBadRequest, err, "invalid race id"))

		return
	}

	race, err := h.deps.Results.Race(r.Context(), domain.RaceID(id))
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeRace(e, race) })
}

// GetPlayerStats returns the statistics of a player.
func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	if h.deps.Results == nil {
		h.writeError(w, r, errNoDatabase)

		return
	}

	stats, err := h.deps.Results.PlayerStats(r.Context(), r.PathValue("name"))
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodePlayerStats(e, stats, 0) })
}

// Leaderboard returns the fastest players.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	if h.deps.Results == nil {
		h.writeError(w, r, errNoDatabase)

		return
	}
	limit, err := queryLimit(r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	board, err := h.deps.Results.Leaderboard(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.FieldStart("items")
			e.Arr(func(e *jx.Encoder) {
				for i := range board {
					encodePlayerStats(e, &board[i], i+1)
				}
			})
		})
	})
}
