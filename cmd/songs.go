package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/vvsong/internal/formatter"
	"github.com/desertthunder/vvsong/internal/repositories"
	"github.com/desertthunder/vvsong/internal/shared"
	"github.com/desertthunder/vvsong/internal/tasks"
	"github.com/urfave/cli/v3"
)

// openSongs opens the resolved song database for reading.
func (r *Runner) openSongs(cmd *cli.Command) (*repositories.SongRepository, *sql.DB, error) {
	store, err := r.resolveStore(cmd)
	if err != nil {
		return nil, nil, err
	}

	db, err := shared.OpenExistingDatabase(store)
	if err != nil {
		return nil, nil, &shared.ConfigurationError{Reason: err}
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	ok, err := shared.HasSongTable(db)
	if err == nil && !ok {
		err = fmt.Errorf("%w: %s has no %s table", shared.ErrStoreNotFound, store, shared.SongTable)
	}
	if err != nil {
		db.Close()
		return nil, nil, &shared.ConfigurationError{Reason: err}
	}

	r.logger.Debug("opened song database", "path", store)
	return repositories.NewSongRepository(db), db, nil
}

// SongsList prints the songs stored in the database.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	switch format {
	case formatter.FormatText, formatter.FormatCSV, formatter.FormatJSON:
	default:
		return fmt.Errorf("%w: --format must be text, csv or json, got %q", shared.ErrInvalidFlag, format)
	}

	repo, db, err := r.openSongs(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	songs, err := repo.List(ctx, cmd.String("category"))
	if err != nil {
		return err
	}

	switch format {
	case formatter.FormatJSON:
		return r.writeJSON(songs, true)
	case formatter.FormatCSV:
		data, err := formatter.SongsToCSV(songs)
		if err != nil {
			return err
		}
		_, err = r.output.Write(data)
		return err
	default:
		if len(songs) == 0 {
			return r.writePlain("No songs found.\n")
		}
		if _, err := r.output.Write(formatter.SongsToText(songs)); err != nil {
			return err
		}
		return r.writePlainln("%d song(s)", len(songs))
	}
}

// SongsShow prints one song and its slides.
func (r *Runner) SongsShow(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: name", shared.ErrMissingArgument)
	}

	repo, db, err := r.openSongs(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	song, err := repo.Get(ctx, name)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(song, true)
	}
	_, err = r.output.Write(formatter.SongToText(song))
	return err
}

// SongsExport writes the stored songs to files, one per song, plus a manifest.
func (r *Runner) SongsExport(ctx context.Context, cmd *cli.Command) error {
	repo, db, err := r.openSongs(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	songs, err := repo.List(ctx, cmd.String("category"))
	if err != nil {
		return err
	}
	if len(songs) == 0 {
		return r.writePlain("No songs to export.\n")
	}

	progress := make(chan tasks.ProgressUpdate, len(songs)+1)
	result, err := tasks.ExportSongs(ctx, progress, songs, tasks.ExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("dir"),
		NumWorkers: int(cmd.Int("workers")),
	})
	close(progress)
	for update := range progress {
		r.logger.Debug(update.Message)
	}
	if err != nil {
		return err
	}

	r.writePlainHeader("Export Complete")
	r.writePlain("Directory: %s\n", result.OutputDirectory)
	r.writePlain("Exported:  %d/%d\n", result.Exported, result.Total)
	for _, res := range result.Results {
		if res.Error != nil {
			r.writePlain("  ✗ %s: %v\n", res.Name, res.Error)
		}
	}
	return r.writePlain("Manifest:  %s\n", result.ManifestPath)
}
