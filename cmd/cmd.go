// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// newApp builds the root command with every subcommand registered on r.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "versus",
		Usage:   "Vote on songs head to head and track the leaderboard",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Log at debug level",
			},
		},
		Before:    r.Before,
		Writer:    r.output,
		ErrWriter: r.output,
		Commands:  r.register(),
	}
}

// songsCommand handles song pool operations
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "songs",
		Usage: "Manage the song pool",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List songs in backend order",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.SongsList,
			},
			{
				Name:  "add",
				Usage: "Add a song to the pool",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.SongsAdd,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove a song from the pool",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.SongsRemove,
			},
			{
				Name:  "import",
				Usage: "Add every song listed in a file, one name per line",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the names file",
						Required: true,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Requests per second (defaults to import.rate_limit)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent workers (defaults to import.workers)",
					},
				},
				Action: r.SongsImport,
			},
		},
	}
}

// pairCommand fetches the next matchup
func pairCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "pair",
		Usage: "Show the next pair of songs to vote on",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Pair,
	}
}

// voteCommand records a single vote
func voteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "vote",
		Usage: "Record that winner beat loser",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "winner"},
			&cli.StringArg{Name: "loser"},
		},
		Action: r.Vote,
	}
}

// leaderboardCommand renders or exports the rankings
func leaderboardCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "leaderboard",
		Aliases: []string{"lb"},
		Usage:   "Show the leaderboard",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON (same as --format json)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: table, csv, md, txt or json",
				Value:   "table",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write to this file instead of stdout",
			},
		},
		Action: r.Leaderboard,
	}
}

// tuiCommand returns the top-level TUI command for interactive voting.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"ui", "play"},
		Usage:   "Launch the interactive voting TUI",
		Action:  r.TUI,
	}
}

// serveCommand runs the reference backend
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the SQLite backed voting API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Interface to listen on (defaults to server.host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (defaults to server.port)",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write a config file from the bundled template",
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Revert the most recent migration instead",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}
