// Package results persists finished races and serves the history built from
// them: recent races, player statistics and the leaderboard.
package results

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"typeracer/pkg/domain"
	"typeracer/pkg/logger"
	"typeracer/pkg/serrors"
	"typeracer/pkg/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultLimit is the page size used when a caller passes 0.
	DefaultLimit = 20
	// MaxLimit caps every page.
	MaxLimit = 100
)

// Options configure a Recorder.
type Options struct {
	// MaxAttempts is how often a player stats job is retried before it is discarded.
	MaxAttempts int
	// StatsDelay postpones player stats jobs. Zero uses DefaultStatsDelay and a
	// negative value runs them right away.
	StatsDelay time.Duration
}

// Recorder stores races and queues the stats refresh of their players.
type Recorder struct {
	storage storage.Storage
	options Options
}

// New returns a Recorder backed by s.
func New(s storage.Storage, options Options) *Recorder {
	if options.MaxAttempts <= 0 {
		options.MaxAttempts = 5
	}
	if options.StatsDelay == 0 {
		options.StatsDelay = DefaultStatsDelay
	}

	return &Recorder{storage: s, options: options}
}

// Record stores race with its results and enqueues a stats job per player in
// the same transaction.
func (r *Recorder) Record(ctx context.Context, race domain.Race) error {
	if err := r.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		if err := tx.StoreRace(ctx, race); err != nil {
			return fmt.Errorf("could not store race: %w", err)
		}

		for _, res := range race.Results {
			added, err := tx.AddJob(ctx, PlayerStatsArgs{
				PlayerName:  res.PlayerName,
				maxAttempts: r.options.MaxAttempts,
				delay:       r.options.StatsDelay,
			}, nil)
			if err != nil {
				return fmt.Errorf("could not add player stats job: %w", err)
			}
			if !added {
				logger.Debug(ctx, "player stats job already queued", zap.String("playerName", res.PlayerName))
			}
		}

		return nil
	}); err != nil {
		return fmt.Errorf("could not record race %s: %w", race.ID, err)
	}

	logger.Info(ctx, "race recorded", zap.Stringer("raceID", race.ID), zap.Int("players", len(race.Results)))

	return nil
}

// RefreshPlayerStats recomputes the stats row of a player from the stored
// results. Players without results are left untouched.
func (r *Recorder) RefreshPlayerStats(ctx context.Context, playerName string) (*domain.PlayerStats, error) {
	var stats *domain.PlayerStats
	if err := r.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		var err error
		stats, err = tx.AggregatePlayerStats(ctx, playerName)
		if err != nil {
			return fmt.Errorf("could not aggregate stats: %w", err)
		}
		if stats == nil {
			return nil
		}

		return tx.UpsertPlayerStats(ctx, *stats) //nolint: wrapcheck
	}); err != nil {
		return nil, fmt.Errorf("could not refresh stats of %q: %w", playerName, err)
	}

	return stats, nil
}

// RecentRaces returns a page of races, most recent first. cursor is the
// value returned as next cursor by the previous page, or empty.
func (r *Recorder) RecentRaces(ctx context.Context, cursor string, limit uint) ([]domain.Race, string, error) {
	var from *storage.RaceCursor
	if cursor != "" {
		c, err := decodeCursor(cursor)
		if err != nil {
			return nil, "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
		}
		from = &c
	}

	page, err := r.storage.RecentRaces(ctx, from, clampLimit(limit))
	if err != nil {
		return nil, "", fmt.Errorf("could not get recent races: %w", err)
	}

	var next string
	if page.NextCursor != nil {
		next = encodeCursor(*page.NextCursor)
	}

	return page.Races, next, nil
}

// cursors are "<RFC3339Nano finish time>_<race id>".
func encodeCursor(c storage.RaceCursor) string {
	return c.FinishedAt.UTC().Format(time.RFC3339Nano) + "_" + c.ID.String()
}

func decodeCursor(s string) (storage.RaceCursor, error) {
	at, id, ok := strings.Cut(s, "_")
	if !ok {
		return storage.RaceCursor{}, errors.New("missing race id")
	}

	finishedAt, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return storage.RaceCursor{}, fmt.Errorf("bad finish time: %w", err)
	}

	raceID, err := uuid.Parse(id)
	if err != nil {
		return storage.RaceCursor{}, fmt.Errorf("bad race id: %w", err)
	}

	return storage.RaceCursor{FinishedAt: finishedAt, ID: domain.RaceID(raceID)}, nil
}

// Race returns one race by id.
func (r *Recorder) Race(ctx context.Context, id domain.RaceID) (*domain.Race, error) {
	race, err := r.storage.RaceByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get race: %w", err)
	}
	if race == nil {
		return nil, serrors.With(serrors.ErrNotFound, "race not found")
	}

	return race, nil
}

// PlayerStats returns the stats of a player.
func (r *Recorder) PlayerStats(ctx context.Context, playerName string) (*domain.PlayerStats, error) {
	stats, err := r.storage.PlayerStats(ctx, playerName)
	if err != nil {
		return nil, fmt.Errorf("could not get player stats: %w", err)
	}
	if stats == nil {
		return nil, serrors.With(serrors.ErrNotFound, "player has no stats")
	}

	return stats, nil
}

// Leaderboard returns the fastest players first.
func (r *Recorder) Leaderboard(ctx context.Context, limit uint) ([]domain.PlayerStats, error) {
	board, err := r.storage.Leaderboard(ctx, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("could not get leaderboard: %w", err)
	}

	return board, nil
}

func clampLimit(limit uint) uint {
	switch {
	case limit == 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// Discard is the recorder used without a database. Races are only logged.
type Discard struct{}

// Record logs race.
func (Discard) Record(ctx context.Context, race domain.Race) error {
	var winner string
	if w := race.Winner(); w != nil {
		winner = w.PlayerName
	}
	logger.Info(ctx, "race finished",
		zap.Stringer("raceID", race.ID),
		zap.Int("sessionID", race.SessionID),
		zap.String("winner", winner))

	return nil
}
