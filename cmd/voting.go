package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/versus/internal/formatter"
	"github.com/desertthunder/versus/internal/models"
	"github.com/desertthunder/versus/internal/shared"
	"github.com/urfave/cli/v3"
)

// Pair prints the next matchup.
func (r *Runner) Pair(ctx context.Context, cmd *cli.Command) error {
	pair, err := r.api.GetPair(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pair: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(pair, false)
	}
	return r.writePlain("%s  vs  %s\n", pair.Left, pair.Right)
}

// Vote records that winner beat loser.
func (r *Runner) Vote(ctx context.Context, cmd *cli.Command) error {
	winner := shared.NormalizeName(cmd.StringArg("winner"))
	loser := shared.NormalizeName(cmd.StringArg("loser"))
	if winner == "" || loser == "" {
		return fmt.Errorf("%w: usage: versus vote <winner> <loser>", shared.ErrMissingArgument)
	}

	if err := r.api.Vote(ctx, winner, loser); err != nil {
		return fmt.Errorf("failed to record vote: %w", err)
	}

	r.logger.Info("vote recorded", "selected", winner, "other", loser)
	return r.writePlain("✓ %s beat %s\n", winner, loser)
}

// Leaderboard renders the rankings in the requested format, to stdout or --output.
func (r *Runner) Leaderboard(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		format = formatter.FormatJSON
	}

	rows, err := r.api.Leaderboard(ctx)
	if err != nil {
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}

	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteLeaderboard(rows, format, path); err != nil {
			return err
		}
		r.logger.Info("leaderboard exported", "path", path, "format", format, "rows", len(rows))
		return r.writePlain("✓ Wrote %d rows to %s\n", len(rows), path)
	}

	switch format {
	case formatter.FormatTable:
		if len(rows) == 0 {
			return r.writePlain("No songs yet.\n")
		}
		return r.writePlain("%s\n", formatter.LeaderboardTable(rows, 0))
	case formatter.FormatJSON:
		if rows == nil {
			rows = []models.LeaderboardRow{}
		}
		return r.writeJSON(rows, true)
	}

	out, err := formatter.RenderLeaderboard(rows, format)
	if err != nil {
		return err
	}
	return r.writeBytes(out)
}
