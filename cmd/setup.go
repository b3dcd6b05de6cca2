package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/vvsong/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the example configuration file.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.logger.Info("config file created", "path", path)
	return r.writePlain("✓ Configuration written to %s\n", path)
}

// SetupDatabase creates a song database with the sm table, or adds the table
// to an existing database that lacks it. Existing songs are never touched.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", shared.ErrInvalidArgument, path)
	}

	r.logger.Info("initializing database", "path", path)

	db, err := shared.NewDatabase(path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	existed, err := shared.HasSongTable(db)
	if err != nil {
		return fmt.Errorf("failed to inspect database: %w", err)
	}
	if err := shared.EnsureSchema(db); err != nil {
		return fmt.Errorf("failed to create song table: %w", err)
	}

	if existed {
		r.logger.Infof("song table already present in %v", path)
		return r.writePlain("✓ %s already has a %s table\n", path, shared.SongTable)
	}
	r.logger.Infof("setup complete for database: %v", path)
	return r.writePlain("✓ Created %s table in %s\n", shared.SongTable, path)
}
