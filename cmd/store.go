package main

import (
	"context"

	"github.com/desertthunder/vvsong/internal/shared"
	"github.com/urfave/cli/v3"
)

// Backup copies the song database to a timestamped sibling file.
func (r *Runner) Backup(ctx context.Context, cmd *cli.Command) error {
	store, err := r.resolveStore(cmd)
	if err != nil {
		return err
	}
	if err := shared.CheckStore(store); err != nil {
		return &shared.ConfigurationError{Reason: err}
	}

	path, err := shared.BackupDatabase(store, r.now())
	if err != nil {
		return err
	}
	return r.writePlain("✓ Backup created: %s\n", path)
}

// Locate prints the song database commands would use.
func (r *Runner) Locate(ctx context.Context, cmd *cli.Command) error {
	store, err := r.resolveStore(cmd)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", store)
}
