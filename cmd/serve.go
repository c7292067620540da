package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/versus/internal/repositories"
	"github.com/desertthunder/versus/internal/server"
	"github.com/desertthunder/versus/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the reference voting API on SQLite until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if cmd.IsSet("host") {
		r.config.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		r.config.Server.Port = cmd.Int("port")
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	logger := shared.WithLogger(r.logger, "component", "server")
	router := server.NewVotingRouter(repositories.NewSongRepository(db), logger)
	srv := server.NewServer(r.config.Server.Addr(), router)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("database ready", "path", r.config.Database.Path)
	return server.Serve(ctx, srv, logger)
}
