package tasks

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vvsong/internal/models"
	"github.com/desertthunder/vvsong/internal/shared"
	"github.com/fsnotify/fsnotify"
)

// BatchRunner runs one injection batch. [MergeEngine] implements it.
type BatchRunner interface {
	Run(ctx context.Context, batch *Batch, progress chan<- ProgressUpdate) (*models.BatchReport, error)
}

// FolderWatcher injects presentations as they are saved into a folder.
//
// Create and write events are collected per file and a file is injected once
// it has been quiet for the debounce period. Files that settle together form
// one batch. PowerPoint lock files (~$name.pptx) are ignored.
type FolderWatcher struct {
	runner   BatchRunner
	dir      string
	store    string
	settings Settings
	debounce time.Duration
	logger   *log.Logger
	now      func() time.Time
	pending  map[string]time.Time
}

// NewFolderWatcher creates a watcher that injects files saved in dir into store.
func NewFolderWatcher(runner BatchRunner, dir, store string, settings Settings, debounce time.Duration, logger *log.Logger) *FolderWatcher {
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	return &FolderWatcher{
		runner:   runner,
		dir:      dir,
		store:    store,
		settings: settings,
		debounce: debounce,
		logger:   shared.WithLogger(logger, "watch", dir),
		now:      time.Now,
		pending:  make(map[string]time.Time),
	}
}

// Watch blocks until ctx is cancelled, sending the report of every batch it
// runs to reports. A batch that cannot start because the store is gone ends
// the watch with that error.
func (w *FolderWatcher) Watch(ctx context.Context, reports chan<- *models.BatchReport) error {
	if err := shared.CheckStore(w.store); err != nil {
		return &shared.ConfigurationError{Reason: err}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return &shared.ConfigurationError{Reason: fmt.Errorf("%w: %s: %v", shared.ErrNoSources, w.dir, err)}
	}
	w.logger.Info("watching folder", "store", w.store, "debounce", w.debounce)

	tick := w.debounce / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-ticker.C:
			ready := w.settled()
			if len(ready) == 0 {
				continue
			}
			report, err := w.runner.Run(ctx, &Batch{StorePath: w.store, Files: ready, Settings: w.settings}, nil)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				var cfgErr *shared.ConfigurationError
				if errors.As(err, &cfgErr) {
					return err
				}
				w.logger.Error("batch failed", "error", err)
				continue
			}
			if reports != nil {
				select {
				case reports <- report:
				case <-ctx.Done():
					return nil
				}
			}
		}
	}
}

func (w *FolderWatcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
			delete(w.pending, event.Name)
		}
		return
	}
	if !shared.IsSource(event.Name) || strings.HasPrefix(filepath.Base(event.Name), "~$") {
		return
	}

	w.logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
	w.pending[event.Name] = w.now()
}

// settled removes and returns, in name order, the pending files that have been quiet long enough.
func (w *FolderWatcher) settled() []string {
	now := w.now()
	var ready []string
	for path, last := range w.pending {
		if now.Sub(last) >= w.debounce {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	sort.Strings(ready)
	return ready
}
