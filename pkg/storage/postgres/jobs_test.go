package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"typeracer/pkg/storage/postgres"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivertest"
	"github.com/stretchr/testify/require"
)

type refreshArgs struct {
	PlayerName string `json:"playerName"`
}

func (refreshArgs) Kind() string { return "refresh_stats" }

func TestPgSQL_AddJob_WithinTransaction(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = txStorage.Rollback() }()

	inserted, err := txStorage.AddJob(ctx, refreshArgs{PlayerName: "ada"}, &river.InsertOpts{})
	require.NoError(t, err)
	require.True(t, inserted)
	rivertest.RequireInsertedTx[*riverdatabasesql.Driver](
		ctx,
		t,
		txStorage.(*postgres.PgSQL).DB.(*sql.Tx),
		&refreshArgs{},
		nil,
	)
}

func TestPgSQL_AddJob_OutsideTransaction(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	opts := &river.InsertOpts{UniqueOpts: river.UniqueOpts{ByArgs: true}}
	inserted, err := pg.AddJob(ctx, refreshArgs{PlayerName: "ada"}, opts)
	require.NoError(t, err)
	require.True(t, inserted)
	rivertest.RequireInserted[*riverdatabasesql.Driver](
		ctx,
		t,
		riverdatabasesql.New(pg.DB.(*sql.DB)),
		&refreshArgs{},
		nil,
	)

	inserted, err = pg.AddJob(ctx, refreshArgs{PlayerName: "ada"}, opts)
	require.NoError(t, err)
	require.False(t, inserted)
}
