package postgres

import (
	"context"
	"fmt"
	"typeracer/pkg/domain"

	"github.com/doug-martin/goqu/v9"
)

const statsTable = "player_stats"

type aggregate struct {
	Races           int     `db:"races"`
	Wins            int     `db:"wins"`
	BestWPM         float64 `db:"best_wpm"`
	AverageWPM      float64 `db:"average_wpm"`
	AverageAccuracy float64 `db:"average_accuracy"`
}

// AggregatePlayerStats computes the statistics of a player from race_results.
func (p *PgSQL) AggregatePlayerStats(ctx context.Context, playerName string) (*domain.PlayerStats, error) {
	var agg aggregate
	_, err := p.Builder.From(resultsTable).
		Select(
			goqu.COUNT(goqu.Star()).As("races"),
			goqu.L("COUNT(*) FILTER (WHERE place = 1 AND finished)").As("wins"),
			goqu.COALESCE(goqu.MAX("wpm"), 0).As("best_wpm"),
			goqu.COALESCE(goqu.AVG("wpm"), 0).As("average_wpm"),
			goqu.COALESCE(goqu.AVG("accuracy"), 0).As("average_accuracy"),
		).
		Where(goqu.I("player_name").Eq(playerName)).
		Executor().ScanStructContext(ctx, &agg)
	if err != nil {
		return nil, fmt.Errorf("could not aggregate player stats: %w", err)
	}
	if agg.Races == 0 {
		return nil, nil
	}

	return &domain.PlayerStats{
		PlayerName:      playerName,
		Races:           agg.Races,
		Wins:            agg.Wins,
		BestWPM:         agg.BestWPM,
		AverageWPM:      agg.AverageWPM,
		AverageAccuracy: agg.AverageAccuracy,
	}, nil
}

// UpsertPlayerStats inserts or replaces the stats row of a player and sets
// updated_at automatically.
func (p *PgSQL) UpsertPlayerStats(ctx context.Context, stats domain.PlayerStats) error {
	var row PgPlayerStats
	row.FromDomain(stats)

	_, err := p.Builder.Insert(statsTable).
		Rows(row).
		OnConflict(goqu.DoUpdate("player_name", goqu.Record{
			"races":            goqu.L("EXCLUDED.races"),
			"wins":             goqu.L("EXCLUDED.wins"),
			"best_wpm":         goqu.L("EXCLUDED.best_wpm"),
			"average_wpm":      goqu.L("EXCLUDED.average_wpm"),
			"average_accuracy": goqu.L("EXCLUDED.average_accuracy"),
			"updated_at":       goqu.L("CURRENT_TIMESTAMP"),
		})).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("could not upsert player stats in pg: %w", err)
	}

	return nil
}

// PlayerStats returns the stats row of a player, or nil when there is none.
func (p *PgSQL) PlayerStats(ctx context.Context, playerName string) (*domain.PlayerStats, error) {
	var row PgPlayerStats
	found, err := p.Builder.From(statsTable).
		Where(goqu.I("player_name").Eq(playerName)).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch player stats: %w", err)
	}
	if !found {
		return nil, nil
	}

	stats := row.ToDomain()

	return &stats, nil
}

// Leaderboard returns stats ordered by best_wpm DESC, then name.
func (p *PgSQL) Leaderboard(ctx context.Context, limit uint) ([]domain.PlayerStats, error) {
	var rows []PgPlayerStats
	if err := p.Builder.From(statsTable).
		Order(goqu.I("best_wpm").Desc(), goqu.I("player_name").Asc()).
		Limit(limit).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch leaderboard from pg: %w", err)
	}

	out := make([]domain.PlayerStats, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}

	return out, nil
}
