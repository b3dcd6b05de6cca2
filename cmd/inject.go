package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/desertthunder/vvsong/internal/formatter"
	"github.com/desertthunder/vvsong/internal/models"
	"github.com/desertthunder/vvsong/internal/shared"
	"github.com/desertthunder/vvsong/internal/tasks"
	"github.com/desertthunder/vvsong/internal/ui"
	"github.com/urfave/cli/v3"
)

const (
	overwriteAsk    = "ask"
	overwriteAlways = "always"
	overwriteNever  = "never"
)

// Inject extracts lyrics from the given files and folders and merges them into the song database.
func (r *Runner) Inject(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return &shared.ConfigurationError{Reason: fmt.Errorf("%w: at least one file or folder", shared.ErrNoSources)}
	}

	format := cmd.String("format")
	if _, err := formatter.FormatReport(&models.BatchReport{}, format); err != nil {
		return err
	}

	files, err := shared.CollectSources(args)
	if err != nil {
		return &shared.ConfigurationError{Reason: err}
	}
	if len(files) == 0 {
		return &shared.ConfigurationError{Reason: fmt.Errorf("%w: no .ppt or .pptx files in %v", shared.ErrNoSources, args)}
	}

	store, err := r.resolveStore(cmd)
	if err != nil {
		return err
	}
	if err := shared.CheckStore(store); err != nil {
		return &shared.ConfigurationError{Reason: err}
	}

	batch := &tasks.Batch{
		StorePath: store,
		Files:     files,
		Settings:  r.settings(cmd),
	}

	var report *models.BatchReport
	if cmd.Bool("tui") {
		report, err = r.injectTUI(ctx, batch, cmd.Bool("backup"))
	} else {
		report, err = r.injectCLI(ctx, cmd, batch)
	}
	if err != nil || report == nil {
		return err
	}

	if err := formatter.WriteReport(r.output, report, format); err != nil {
		return err
	}

	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteReportFile(report, path); err != nil {
			return err
		}
		r.logger.Info("report saved", "path", path)
	}

	return nil
}

func (r *Runner) injectCLI(ctx context.Context, cmd *cli.Command, batch *tasks.Batch) (*models.BatchReport, error) {
	out := &lockedWriter{w: r.output}
	decider, err := r.decider(cmd.String("overwrite"), out)
	if err != nil {
		return nil, err
	}

	if !cmd.Bool("yes") {
		for _, f := range batch.Files {
			r.writePlain("  %s\n", f)
		}
		ok, err := r.confirm(fmt.Sprintf("Inject %d file(s) into %s?", len(batch.Files), batch.StorePath))
		if err != nil {
			return nil, err
		}
		if !ok {
			r.writePlain("Injection cancelled.\n")
			return nil, nil
		}
	}

	engine := r.newInjector(decider, cmd.Bool("backup"))

	progress := make(chan tasks.ProgressUpdate, 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			if update.Phase == tasks.InjectSongs {
				fmt.Fprintln(out, update.Message)
			}
		}
	}()

	report, err := engine.Run(ctx, batch, progress)
	close(progress)
	<-done

	if err != nil {
		return nil, err
	}
	r.writePlain("\n")
	return report, nil
}

// decider maps an --overwrite mode to a [tasks.Decider]. "ask" prompts on w
// and reads answers from the runner's input.
func (r *Runner) decider(mode string, w io.Writer) (tasks.Decider, error) {
	switch mode {
	case overwriteAsk, "":
		return tasks.NewPromptDecider(r.input, w), nil
	case overwriteAlways:
		return tasks.AlwaysOverwrite, nil
	case overwriteNever:
		return tasks.NeverOverwrite, nil
	default:
		return nil, fmt.Errorf("%w: --overwrite must be ask, always or never, got %q", shared.ErrInvalidFlag, mode)
	}
}

// newInjector builds the merge engine for one command, backing up the store
// before the batch when withBackup is set.
func (r *Runner) newInjector(decider tasks.Decider, withBackup bool) ui.Injector {
	engine := tasks.NewMergeEngine(r.registry(), r.storeOpener(), decider, r.logger)
	if !withBackup {
		return engine
	}
	return &backupFirst{r: r, next: engine}
}

// backupFirst copies the store aside before running the wrapped batch.
type backupFirst struct {
	r    *Runner
	next ui.Injector
}

func (b *backupFirst) Run(ctx context.Context, batch *tasks.Batch, progress chan<- tasks.ProgressUpdate) (*models.BatchReport, error) {
	if batch != nil {
		if err := shared.CheckStore(batch.StorePath); err != nil {
			return nil, &shared.ConfigurationError{Reason: err}
		}
		if err := b.r.backup(batch.StorePath); err != nil {
			return nil, &shared.ConfigurationError{Reason: err}
		}
	}
	return b.next.Run(ctx, batch, progress)
}

// backup copies the store before a batch writes to it.
func (r *Runner) backup(store string) error {
	path, err := shared.BackupDatabase(store, r.now())
	if err != nil {
		return err
	}
	r.logger.Info("database backed up", "path", path)
	return nil
}

// lockedWriter serializes prompts with progress lines printed from another goroutine.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
