package postgres

import (
	"context"
	"fmt"
	"typeracer/pkg/domain"
	"typeracer/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	racesTable   = "races"
	resultsTable = "race_results"
)

// StoreRace inserts the race row and one row per result. Call it inside a
// transaction to store both atomically.
func (p *PgSQL) StoreRace(ctx context.Context, race domain.Race) error {
	var row PgRace
	row.FromDomain(race)

	if _, err := p.Builder.Insert(racesTable).Rows(row).Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not store race into pg: %w", err)
	}

	if len(race.Results) == 0 {
		return nil
	}

	results := make([]PgRaceResult, len(race.Results))
	for i, r := range race.Results {
		results[i].FromDomain(race.ID, r)
	}
	if _, err := p.Builder.Insert(resultsTable).Rows(results).Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not store race results into pg: %w", err)
	}

	return nil
}

// RecentRaces returns races ordered by finished_at DESC, id DESC, starting
// after cursor.
func (p *PgSQL) RecentRaces(ctx context.Context, cursor *storage.RaceCursor, limit uint) (storage.RacePage, error) {
	ds := p.Builder.From(racesTable).
		Order(goqu.I("finished_at").Desc(), goqu.I("id").Desc()).
		// fetch one extra to determine if there is a next page
		Limit(limit + 1)
	if cursor != nil {
		ds = ds.Where(goqu.L("(finished_at, id) < (?, ?)", cursor.FinishedAt, uuid.UUID(cursor.ID)))
	}

	var rows []PgRace
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.RacePage{}, fmt.Errorf("could not fetch recent races from pg: %w", err)
	}

	var next *storage.RaceCursor
	if uint(len(rows)) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = &storage.RaceCursor{FinishedAt: last.FinishedAt, ID: domain.RaceID(last.ID)}
	}

	races, err := p.withResults(ctx, rows)
	if err != nil {
		return storage.RacePage{}, err
	}

	return storage.RacePage{Races: races, NextCursor: next}, nil
}

// RaceByID returns the race with its results, or nil when it does not exist.
func (p *PgSQL) RaceByID(ctx context.Context, id domain.RaceID) (*domain.Race, error) {
	var row PgRace
	found, err := p.Builder.From(racesTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch race by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	races, err := p.withResults(ctx, []PgRace{row})
	if err != nil {
		return nil, err
	}

	return &races[0], nil
}

// withResults converts rows and attaches their results ordered by place.
func (p *PgSQL) withResults(ctx context.Context, rows []PgRace) ([]domain.Race, error) {
	if len(rows) == 0 {
		return []domain.Race{}, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}

	var results []PgRaceResult
	if err := p.Builder.From(resultsTable).
		Where(goqu.I("race_id").In(ids)).
		Order(goqu.I("race_id").Asc(), goqu.I("place").Asc()).
		Executor().ScanStructsContext(ctx, &results); err != nil {
		return nil, fmt.Errorf("could not fetch race results from pg: %w", err)
	}

	byRace := make(map[uuid.UUID][]domain.RaceResult, len(rows))
	for i := range results {
		byRace[results[i].RaceID] = append(byRace[results[i].RaceID], results[i].ToDomain())
	}

	races := make([]domain.Race, len(rows))
	for i := range rows {
		races[i] = rows[i].ToDomain()
		races[i].Results = byRace[rows[i].ID]
		if races[i].Results == nil {
			races[i].Results = []domain.RaceResult{}
		}
	}

	return races, nil
}
