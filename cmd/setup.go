package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/versus/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the bundled config template to the --config path.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := r.configPath
	if path == "" {
		path = "config.toml"
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	r.writePlain("✓ Config written to %s\n", path)
	r.writePlain("Set api.base_url (or %s) to point the client at your backend.\n", shared.EnvAPIURL)
	return nil
}

// SetupDatabase initializes the database and runs migrations, or reverts the latest one with --rollback.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	var (
		db  *sql.DB
		err error
	)

	if cmd.Bool("rollback") {
		if db, err = shared.NewDatabase(r.config.Database.Path); err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
		defer db.Close()

		r.logger.Info("rolling back latest migration", "path", r.config.Database.Path)
		if err := shared.RollbackMigration(db); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
	} else {
		if db, err = r.openDatabase(); err != nil {
			return err
		}
		defer db.Close()
	}

	statuses, err := shared.MigrationStatuses(db)
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}

	r.writePlainHeader("Migrations: " + r.config.Database.Path)
	for _, s := range statuses {
		mark := "pending"
		if s.Applied {
			mark = "applied"
		}
		r.writePlain("%03d  %-24s %s\n", s.Version, s.Name, mark)
	}
	return nil
}

// openDatabase opens the configured SQLite database and brings its schema up to date.
func (r *Runner) openDatabase() (*sql.DB, error) {
	r.logger.Info("initializing database", "path", r.config.Database.Path)

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}
