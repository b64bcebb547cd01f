package storage

import (
	"context"
	"time"
	"typeracer/pkg/domain"
)

// RaceCursor is the position of the last race of a page. Races are ordered
// by finish time then id, both descending, so ties on FinishedAt are kept
// apart by ID.
type RaceCursor struct {
	FinishedAt time.Time
	ID         domain.RaceID
}

// RacePage groups a page of races with the cursor of the next page.
type RacePage struct {
	// Races holds the current page, most recently finished first.
	Races []domain.Race
	// NextCursor is passed to get the next page. It is nil on the last page.
	NextCursor *RaceCursor
}

// RaceStorage stores finished races together with their per-player results.
type RaceStorage interface {
	// StoreRace inserts a race and all of its results.
	StoreRace(ctx context.Context, race domain.Race) error
	// RecentRaces returns the races after cursor in (finished_at, id)
	// descending order. A nil cursor starts at the most recent race.
	RecentRaces(ctx context.Context, cursor *RaceCursor, limit uint) (RacePage, error)
	// RaceByID returns a race with its results, or nil when it does not exist.
	RaceByID(ctx context.Context, id domain.RaceID) (*domain.Race, error)
}

// StatsStorage maintains the aggregated statistics of players.
type StatsStorage interface {
	// AggregatePlayerStats computes the statistics of a player from the stored
	// race results. It returns nil when the player has no results.
	AggregatePlayerStats(ctx context.Context, playerName string) (*domain.PlayerStats, error)
	// UpsertPlayerStats stores stats, replacing the previous row of the player.
	UpsertPlayerStats(ctx context.Context, stats domain.PlayerStats) error
	// PlayerStats returns the stored statistics of a player, or nil when there are none.
	PlayerStats(ctx context.Context, playerName string) (*domain.PlayerStats, error)
	// Leaderboard returns the players with the best speed first.
	Leaderboard(ctx context.Context, limit uint) ([]domain.PlayerStats, error)
}
