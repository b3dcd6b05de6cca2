package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vvsong/internal/extract"
	"github.com/desertthunder/vvsong/internal/models"
	"github.com/desertthunder/vvsong/internal/repositories"
	"github.com/desertthunder/vvsong/internal/shared"
)

// Settings are the values given to songs created by a batch.
type Settings struct {
	DefaultFont     string
	DefaultCategory string
}

// Batch is one injection request. Files are processed in order; the engine
// empties Files once the batch has run.
type Batch struct {
	StorePath string
	Files     []string
	Settings  Settings
}

// StoreOpener opens the song store once per batch. The returned closer is
// called after the last file.
type StoreOpener func(path string) (repositories.SongStore, io.Closer, error)

// OpenSQLiteStore returns a [StoreOpener] for existing VerseVIEW databases.
func OpenSQLiteStore(cfg shared.DatabaseConfig) StoreOpener {
	return func(path string) (repositories.SongStore, io.Closer, error) {
		db, err := shared.OpenExistingDatabase(path)
		if err != nil {
			return nil, nil, err
		}
		shared.ConfigureDatabase(db, cfg.MaxOpenConns, cfg.MaxIdleConns)

		ok, err := shared.HasSongTable(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		if !ok {
			db.Close()
			return nil, nil, fmt.Errorf("%w: %s has no %s table", shared.ErrStoreNotFound, path, shared.SongTable)
		}
		return repositories.NewSongRepository(db), db, nil
	}
}

// MergeEngine runs injection batches.
type MergeEngine struct {
	extractor extract.Extractor
	open      StoreOpener
	decider   Decider
	logger    *log.Logger
	now       func() time.Time
}

// NewMergeEngine creates a new MergeEngine. A nil decider never overwrites.
func NewMergeEngine(extractor extract.Extractor, open StoreOpener, decider Decider, logger *log.Logger) *MergeEngine {
	if decider == nil {
		decider = NeverOverwrite
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &MergeEngine{
		extractor: extractor,
		open:      open,
		decider:   decider,
		logger:    logger,
		now:       time.Now,
	}
}

func (e *MergeEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	sendProgress(progress, update)
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run processes every file of the batch in order and returns one outcome per file.
//
// Per-file failures are recorded in the report and never stop the batch. The
// returned error is always a [*shared.ConfigurationError] and means that no
// file was processed and the store was not touched.
func (e *MergeEngine) Run(ctx context.Context, batch *Batch, progress chan<- ProgressUpdate) (*models.BatchReport, error) {
	if err := preflight(batch); err != nil {
		return nil, err
	}

	report := &models.BatchReport{
		ID:        shared.GenerateID(),
		StorePath: batch.StorePath,
		StartedAt: e.now(),
		Outcomes:  make([]models.Outcome, 0, len(batch.Files)),
	}
	logger := shared.WithLogger(e.logger, "batch", report.ID)
	total := len(batch.Files)

	e.sendProgress(progress, openStoreUpdate(total, batch.StorePath))

	store, closer, err := e.open(batch.StorePath)
	if err != nil {
		return nil, &shared.ConfigurationError{Reason: err}
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Warn("failed to close song database", "error", err)
		}
	}()

	logger.Info("starting injection", "store", batch.StorePath, "files", total)

	for i, path := range batch.Files {
		outcome := e.process(ctx, store, path, batch.Settings)
		report.Outcomes = append(report.Outcomes, outcome)

		logOutcome(logger, outcome)
		e.sendProgress(progress, fileProcessedUpdate(i+1, total, outcome))
	}

	report.FinishedAt = e.now()
	batch.Files = nil

	logger.Info("injection complete",
		"added", report.Count(models.StatusAdded),
		"overwritten", report.Count(models.StatusOverwritten),
		"failed", len(report.Failed()))
	e.sendProgress(progress, completeUpdate(total, report))

	return report, nil
}

func preflight(batch *Batch) error {
	if batch == nil {
		return &shared.ConfigurationError{Reason: shared.ErrNoSources}
	}
	if len(batch.Files) == 0 {
		return &shared.ConfigurationError{Reason: shared.ErrNoSources}
	}
	if err := shared.CheckStore(batch.StorePath); err != nil {
		return &shared.ConfigurationError{Reason: err}
	}
	return nil
}

// process moves one file from pending to its terminal status.
func (e *MergeEngine) process(ctx context.Context, store repositories.SongStore, path string, settings Settings) models.Outcome {
	name := shared.SongName(path)
	outcome := models.Outcome{Name: name, Path: path}

	if name == "" {
		return failed(outcome, models.StatusFailedExtraction,
			shared.NewExtractionError(path, fmt.Errorf("%w: empty song name", shared.ErrInvalidInput)))
	}

	text, err := extract.Lyrics(ctx, e.extractor, path)
	if err != nil {
		return failed(outcome, models.StatusFailedExtraction, err)
	}

	id, found, err := store.FindByName(ctx, name)
	if err != nil {
		return failed(outcome, models.StatusFailedStorage, err)
	}

	if !found {
		next, err := store.NextID(ctx)
		if err != nil {
			return failed(outcome, models.StatusFailedStorage, err)
		}
		song := models.NewSong(next, name, settings.DefaultCategory, settings.DefaultFont, text)
		if err := store.Insert(ctx, song); err != nil {
			return failed(outcome, models.StatusFailedStorage, err)
		}
		outcome.Status = models.StatusAdded
		outcome.SongID = next
		return outcome
	}

	outcome.SongID = id
	if !e.decider.ConfirmOverwrite(ctx, name) {
		outcome.Status = models.StatusSkippedDuplicate
		return outcome
	}

	if err := store.UpdateLyrics(ctx, name, text); err != nil {
		return failed(outcome, models.StatusFailedStorage, err)
	}
	outcome.Status = models.StatusOverwritten
	return outcome
}

func failed(o models.Outcome, status models.Status, err error) models.Outcome {
	o.Status = status
	o.Detail = detail(err)
	return o
}

// detail keeps the innermost message of typed errors so the summary reads
// "DB Error: UNIQUE constraint failed" rather than repeating the song name.
func detail(err error) string {
	var storageErr *shared.StorageError
	if errors.As(err, &storageErr) && storageErr.Err != nil {
		return storageErr.Err.Error()
	}
	var extractErr *shared.ExtractionError
	if errors.As(err, &extractErr) && extractErr.Err != nil {
		return extractErr.Err.Error()
	}
	return strings.TrimSpace(err.Error())
}

func logOutcome(logger *log.Logger, o models.Outcome) {
	switch o.Status {
	case models.StatusAdded, models.StatusOverwritten:
		logger.Info("song injected", "name", o.Name, "id", o.SongID, "status", o.Status)
	case models.StatusSkippedDuplicate:
		logger.Info("song skipped", "name", o.Name, "id", o.SongID)
	default:
		logger.Warn("song failed", "name", o.Name, "path", o.Path, "status", o.Status, "error", o.Detail)
	}
}
