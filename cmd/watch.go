package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/vvsong/internal/formatter"
	"github.com/desertthunder/vvsong/internal/models"
	"github.com/desertthunder/vvsong/internal/shared"
	"github.com/desertthunder/vvsong/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Watch injects presentations saved into a folder until interrupted.
//
// There is nobody to answer duplicate questions, so --overwrite must be
// always or never.
func (r *Runner) Watch(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.StringArg("folder")
	if dir == "" {
		return fmt.Errorf("%w: folder", shared.ErrMissingArgument)
	}

	mode := cmd.String("overwrite")
	if mode == overwriteAsk {
		return fmt.Errorf("%w: watch cannot ask about duplicates, use --overwrite always or never", shared.ErrInvalidFlag)
	}
	decider, err := r.decider(mode, r.output)
	if err != nil {
		return err
	}

	store, err := r.resolveStore(cmd)
	if err != nil {
		return err
	}

	engine := tasks.NewMergeEngine(r.registry(), r.storeOpener(), decider, r.logger)
	watcher := tasks.NewFolderWatcher(engine, dir, store, r.settings(cmd), cmd.Duration("debounce"), r.logger)

	reports := make(chan *models.BatchReport)
	done := make(chan error, 1)
	go func() {
		done <- watcher.Watch(ctx, reports)
	}()

	r.writePlain("Watching %s (Ctrl+C to stop)\n", dir)
	for {
		select {
		case report := <-reports:
			if err := formatter.WriteReport(r.output, report, formatter.FormatText); err != nil {
				return err
			}
		case err := <-done:
			return err
		}
	}
}
