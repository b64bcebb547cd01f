package main

import (
	"context"
	"database/sql"
	"fmt"
	root "typeracer"
	"typeracer/internal/config"
	"typeracer/pkg/logger"

	"github.com/pressly/goose/v3"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateSchema applies the race history migrations embedded in the binary.
func migrateSchema(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(root.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("could not set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("could not migrate race history: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("could not read schema version: %w", err)
	}
	logger.Info(ctx, "race history schema is up to date", zap.Int64("version", version))

	return nil
}

// migrateJobs brings the river job tables to the version the linked river
// release expects.
func migrateJobs(ctx context.Context, db *sql.DB) error {
	migrator, err := rivermigrate.New(riverdatabasesql.New(db), nil)
	if err != nil {
		return fmt.Errorf("could not create job queue migrator: %w", err)
	}

	res, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, nil)
	if err != nil {
		return fmt.Errorf("could not migrate job queue: %w", err)
	}
	for _, v := range res.Versions {
		logger.Info(ctx, "applied job queue migration", zap.Int("version", v.Version), zap.String("name", v.Name))
	}

	return nil
}

// migrateCommand constructs the 'migrate' subcommand that brings the race
// history and job queue tables to their latest version.
func migrateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrates the race history database to the latest version",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			skipJobs, _ := cmd.Flags().GetBool("skip-jobs")

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			db, ok := strg.DB.(*sql.DB)
			if !ok {
				logger.Fatal(ctx, "postgres storage is not backed by *sql.DB")
			}

			if err := migrateSchema(ctx, db); err != nil {
				logger.Fatal(ctx, "could not migrate database", zap.Error(err))
			}
			if skipJobs {
				return
			}
			if err := migrateJobs(ctx, db); err != nil {
				logger.Fatal(ctx, "could not migrate database", zap.Error(err))
			}
		},
	}

	cmd.Flags().Bool("skip-jobs", false, "only migrate the race history tables")

	return cmd
}
