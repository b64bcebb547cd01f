package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"typeracer/pkg/storage"
	"typeracer/pkg/storage/postgres"

	"github.com/stretchr/testify/require"
)

func TestPgSQL_BeginCommitRollback(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.ErrorIs(t, pg.Commit(), storage.ErrNotInTx)
	require.ErrorIs(t, pg.Rollback(), storage.ErrNotInTx)

	tx, err := pg.Begin(ctx)
	require.NoError(t, err)
	inner, ok := tx.(*postgres.PgSQL)
	require.True(t, ok)
	_, isTx := inner.DB.(*sql.Tx)
	require.True(t, isTx)

	_, err = inner.Begin(ctx)
	require.ErrorIs(t, err, storage.ErrAlreadyInTx)
	require.ErrorIs(t, inner.Ping(ctx), storage.ErrNotConnected)

	committed := newRace(1, result("ada", 1, 80))
	require.NoError(t, tx.StoreRace(ctx, committed))
	require.NoError(t, tx.Commit())

	tx, err = pg.Begin(ctx)
	require.NoError(t, err)
	discarded := newRace(2, result("bob", 1, 70))
	require.NoError(t, tx.StoreRace(ctx, discarded))
	require.NoError(t, tx.Rollback())

	got, err := pg.RaceByID(ctx, committed.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	got, err = pg.RaceByID(ctx, discarded.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestPgSQL_WithTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	committed := newRace(1, result("ada", 1, 80))
	require.NoError(t, pg.WithTx(ctx, func(s storage.AllStorage) error {
		return s.StoreRace(ctx, committed)
	}))

	failed := newRace(2, result("bob", 1, 70))
	err := pg.WithTx(ctx, func(s storage.AllStorage) error {
		if err := s.StoreRace(ctx, failed); err != nil {
			return err
		}

		return errors.New("boom")
	})
	require.EqualError(t, err, "boom")

	page, err := pg.RecentRaces(ctx, nil, 10)
	require.NoError(t, err)
	require.Len(t, page.Races, 1)
	require.Equal(t, committed.ID, page.Races[0].ID)
}

var _ storage.Storage = (*postgres.PgSQL)(nil)

