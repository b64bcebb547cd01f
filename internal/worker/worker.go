// Package worker runs the background jobs queued by the results package.
//
//go:generate mockgen -package mockworker -source=worker.go -destination=mock/mockworker.go
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"typeracer/internal/results"
	"typeracer/pkg/domain"
	"typeracer/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"go.uber.org/zap/exp/zapslog"
)

// StatsRefresher recomputes the stored statistics of a player.
type StatsRefresher interface {
	RefreshPlayerStats(ctx context.Context, playerName string) (*domain.PlayerStats, error)
}

// Options configure the job runner.
type Options struct {
	// MaxWorkers is the number of jobs processed concurrently.
	MaxWorkers int
}

// Start registers every worker and starts processing the default queue. The
// returned client must be stopped by the caller.
func Start(ctx context.Context, dbPool *pgxpool.Pool, refresher StatsRefresher, opts Options) (*river.Client[pgx.Tx], error) {
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = 1
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewPlayerStatsWorker(refresher))

	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: opts.MaxWorkers},
		},
		Workers: workers,
		Logger:  slog.New(zapslog.NewHandler(logger.Get(ctx).Core())),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river queue client: %w", err)
	}

	return riverClient, nil
}

var _ river.Worker[results.PlayerStatsArgs] = (*PlayerStatsWorker)(nil)
