package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jordan-pw/minesweeper/internal/app"
	"github.com/jordan-pw/minesweeper/internal/config"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the game server",
		Long: `Run the HTTP server until interrupted.

Settings come from the --config file, then from the environment:
  MINES_ADDR         listen address
  MINES_MODE         development or production
  MINES_JWT_SECRET   session token signing secret
  DEVELOPMENT        anything but 0 forces development mode`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := setupLogging(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	log.Info("starting up, mode = ", cfg.Mode)
	log.WithFields(cfg.Fields()).Debug("config")

	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}

	if err := a.Run(ctx); err != nil {
		log.Printf("exit reason: %s\n", err)
		return err
	}
	return nil
}
