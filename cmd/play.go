package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"typeracer/internal/client"
	"typeracer/internal/config"
	"typeracer/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func playCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Joins a race from the terminal",
		Run: func(cmd *cobra.Command, args []string) {
			addr, _ := cmd.Flags().GetString("addr")
			name, _ := cmd.Flags().GetString("name")
			sessionID, _ := cmd.Flags().GetInt("session")
			create, _ := cmd.Flags().GetBool("create")

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
			defer stop()

			c, err := client.Dial(ctx, addr, os.Stdin, os.Stdout, client.Options{
				Name:         name,
				SessionID:    sessionID,
				Create:       create,
				MaxLineBytes: cfg.Server.MaxLineBytes,
			})
			if err != nil {
				logger.Fatal(ctx, "could not connect to game server", zap.Error(err))
			}

			// raw mode delivers every keystroke immediately and turns Ctrl-C into input
			if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
				state, err := term.MakeRaw(fd)
				if err != nil {
					logger.Fatal(ctx, "could not switch terminal to raw mode", zap.Error(err))
				}
				defer func() { _ = term.Restore(fd, state) }()
			}

			err = c.Run(ctx)
			switch {
			case errors.Is(err, client.ErrDenied):
				logger.Warn(ctx, "server refused to seat player", zap.Error(err))
			case err != nil:
				logger.Error(ctx, "race ended with error", zap.Error(err))
			}
		},
	}

	cmd.Flags().String("addr", "localhost:4000", "game server address")
	cmd.Flags().String("name", "", "player name")
	cmd.Flags().Int("session", 0, "session id to join")
	cmd.Flags().Bool("create", false, "create a new session and join it")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
