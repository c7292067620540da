package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/desertthunder/versus/internal/formatter"
	"github.com/desertthunder/versus/internal/models"
	"github.com/desertthunder/versus/internal/shared"
	"github.com/desertthunder/versus/internal/tasks"
	"github.com/urfave/cli/v3"
)

// SongsList prints the song pool.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	songs, err := r.api.ListSongs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	if cmd.Bool("json") {
		if songs == nil {
			songs = []models.Song{}
		}
		return r.writeJSON(songs, cmd.Bool("pretty"))
	}

	if len(songs) == 0 {
		return r.writePlain("No songs yet. Add one with 'versus songs add <name>'.\n")
	}
	return r.writeBytes(formatter.SongsToText(songs))
}

// SongsAdd adds a single song. A blank name is a no-op.
func (r *Runner) SongsAdd(ctx context.Context, cmd *cli.Command) error {
	name := shared.NormalizeName(cmd.StringArg("name"))
	if name == "" {
		r.logger.Debug("blank song name, nothing to add")
		return nil
	}

	if err := r.api.AddSong(ctx, name); err != nil {
		return fmt.Errorf("failed to add song: %w", err)
	}

	r.logger.Info("song added", "name", name)
	return r.writePlain("✓ Added %s\n", name)
}

// SongsRemove deletes a song by name.
func (r *Runner) SongsRemove(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: song name", shared.ErrMissingArgument)
	}

	if err := r.api.RemoveSong(ctx, name); err != nil {
		return fmt.Errorf("failed to remove song: %w", err)
	}

	r.logger.Info("song removed", "name", name)
	return r.writePlain("✓ Removed %s\n", name)
}

// SongsImport bulk-adds the names in --file through the rate limited importer.
func (r *Runner) SongsImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("file")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open names file: %w", err)
	}
	defer f.Close()

	names, err := tasks.ReadNames(f)
	if err != nil {
		return err
	}

	opts := tasks.ImportOpts{NumWorkers: r.config.Import.Workers, RateLimit: r.config.Import.RateLimit}
	if cmd.IsSet("workers") {
		opts.NumWorkers = cmd.Int("workers")
	}
	if cmd.IsSet("rate") {
		opts.RateLimit = cmd.Float("rate")
	}

	r.logger.Info("importing songs", "file", path, "count", len(names), "workers", opts.NumWorkers, "rate", opts.RateLimit)

	progress := make(chan tasks.ProgressUpdate, 16)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			r.logger.Debug(update.Message, "phase", update.Phase, "step", update.Step, "total", update.Total)
		}
	}()

	result, err := r.importer.Import(ctx, progress, names, opts)
	close(progress)
	wg.Wait()
	if err != nil {
		return err
	}

	r.writePlainHeader("Import summary")
	r.writePlain("Added: %d  Failed: %d  Skipped: %d  Total: %d\n", result.Added, result.Failed, result.Skipped, result.Total)
	for _, res := range result.Results {
		if !res.Success {
			r.writePlain("✗ %s: %v\n", res.Name, res.Error)
		}
	}

	return nil
}
