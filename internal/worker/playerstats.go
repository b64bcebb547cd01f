package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"typeracer/internal/results"
	"typeracer/pkg/logger"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// PlayerStatsWorker rebuilds the stats row of the player named in the job from
// every stored result of that player. Rebuilding instead of incrementing keeps
// retries and duplicate jobs harmless.
type PlayerStatsWorker struct {
	river.WorkerDefaults[results.PlayerStatsArgs]

	refresher StatsRefresher
}

// NewPlayerStatsWorker returns a worker refreshing stats through refresher.
func NewPlayerStatsWorker(refresher StatsRefresher) *PlayerStatsWorker {
	return &PlayerStatsWorker{refresher: refresher}
}

// Timeout bounds a single refresh.
func (w *PlayerStatsWorker) Timeout(*river.Job[results.PlayerStatsArgs]) time.Duration {
	return 30 * time.Second
}

// Work refreshes the stats of job.Args.PlayerName. Jobs without a player name
// are cancelled since no retry can fix them.
func (w *PlayerStatsWorker) Work(ctx context.Context, job *river.Job[results.PlayerStatsArgs]) error {
	ctx = logger.WithFields(ctx, zap.Int64("jobID", job.ID), zap.String("playerName", job.Args.PlayerName))

	if strings.TrimSpace(job.Args.PlayerName) == "" {
		return river.JobCancel(errors.New("job has no player name")) //nolint: wrapcheck
	}

	stats, err := w.refresher.RefreshPlayerStats(ctx, job.Args.PlayerName)
	if err != nil {
		logger.Error(ctx, "could not refresh player stats", zap.Error(err), zap.Int("attempt", job.Attempt))

		return fmt.Errorf("could not refresh player stats: %w", err)
	}
	if stats == nil {
		logger.Warn(ctx, "no results stored for player")

		return nil
	}

	logger.Info(ctx, "player stats refreshed",
		zap.Int("races", stats.Races),
		zap.Int("wins", stats.Wins),
		zap.Float64("bestWpm", stats.BestWPM))

	return nil
}
