package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"typeracer/internal/api"
	"typeracer/internal/api/handler/v1handler"
	"typeracer/internal/config"
	"typeracer/internal/connection"
	"typeracer/internal/game"
	"typeracer/internal/game/text"
	"typeracer/internal/handler"
	"typeracer/internal/results"
	"typeracer/internal/server"
	"typeracer/internal/session"
	"typeracer/internal/worker"
	"typeracer/pkg/logger"
	"typeracer/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// history wires race persistence. Without a database races are only logged
// and the history routes answer 503.
func history(ctx context.Context, cfg *config.Config) (session.Recorder, v1handler.Results, func()) {
	if !cfg.Database.Enabled {
		logger.Info(ctx, "database disabled, race history is not stored")

		return results.Discard{}, nil, func() {}
	}

	strg, closeStrg := getPostgres(ctx, cfg)
	recorder := results.New(strg, results.Options{})

	jobs, err := worker.Start(ctx, strg.Pool, recorder, worker.Options{MaxWorkers: cfg.Worker.MaxWorkers})
	if err != nil {
		logger.Fatal(ctx, "could not start background workers", zap.Error(err))
	}

	return recorder, recorder, func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
		defer cancel()

		logger.Info(ctx, "stopping background workers...")
		if err := jobs.Stop(stopCtx); err != nil {
			logger.Warn(ctx, "could not stop background workers", zap.Error(err))
		}
		closeStrg()
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the game server, the HTTP API and background workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			mp, err := metrics.NewMeterProvider(prometheus.DefaultRegisterer)
			if err != nil {
				logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
			}
			otel.SetMeterProvider(mp)
			m, err := metrics.New(prometheus.DefaultRegisterer, mp)
			if err != nil {
				logger.Fatal(ctx, "could not register metrics", zap.Error(err))
			}

			texts, err := text.NewSource(text.Options{
				Mode:       cfg.Game.TextMode,
				File:       cfg.Game.TextFile,
				CorpusFile: cfg.Game.CorpusFile,
				ModelFile:  cfg.Game.ModelFile,
				Words:      cfg.Game.Words,
			})
			if err != nil {
				logger.Fatal(ctx, "could not load race texts", zap.Error(err))
			}

			recorder, stored, closeHistory := history(ctx, cfg)
			defer closeHistory()

			conns := connection.NewManager(m, connection.Options{
				WriteTimeout: cfg.Server.WriteTimeout,
				BannedNames:  cfg.Server.BannedNames,
			})
			sessions := session.NewManager(conns, recorder, texts, m, session.Options{
				MaxPlayers:  cfg.Session.MaxPlayers,
				IdleTimeout: cfg.Session.IdleTimeout,
				Game: game.Options{
					StateInterval: cfg.Game.StateInterval,
					RaceTimeout:   cfg.Game.RaceTimeout,
				},
			})
			h := handler.New(conns, sessions, m, handler.Options{})
			gameServer := server.New(conns, h, server.Options{
				Addr:           cfg.Server.Addr,
				MaxLineBytes:   cfg.Server.MaxLineBytes,
				AllowedOrigins: cfg.HTTP.AllowedOrigins,
			})

			deps := api.Deps{
				Deps:      v1handler.Deps{Sessions: sessions},
				WebSocket: gameServer.WebSocketHandler(ctx),
			}
			if stored != nil {
				deps.Results = stored
			}
			webserver, err := api.NewServer(deps, api.NewOptions(cfg))
			if err != nil {
				logger.Fatal(ctx, "could not create webserver", zap.Error(err))
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return gameServer.ListenAndServe(gctx)
			})
			g.Go(func() error {
				return sessions.RunReaper(gctx, cfg.Session.ReapInterval)
			})
			g.Go(func() error {
				logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
				if err := webserver.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}

				return nil
			})
			g.Go(func() error {
				<-gctx.Done()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
				defer cancel()

				logger.Info(ctx, "stopping webserver...")
				if err := webserver.Shutdown(shutdownCtx); err != nil {
					logger.Error(ctx, "could not stop webserver", zap.Error(err))
				}

				return nil
			})

			if err := g.Wait(); err != nil {
				logger.Error(ctx, "server stopped with error", zap.Error(err))
			}
		},
	}

	return cmd
}
