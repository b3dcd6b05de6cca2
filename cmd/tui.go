package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/vvsong/internal/models"
	"github.com/desertthunder/vvsong/internal/shared"
	"github.com/desertthunder/vvsong/internal/tasks"
	"github.com/desertthunder/vvsong/internal/ui"
)

// injectTUI lets the user review the batch and answer duplicate questions in the terminal UI.
func (r *Runner) injectTUI(ctx context.Context, batch *tasks.Batch, withBackup bool) (*models.BatchReport, error) {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(filepath.Join(os.TempDir(), "vvsong", "vvsong-tui.log"))
	if err != nil {
		return nil, fmt.Errorf("failed to create file logger: %w", err)
	}
	fileLogger.SetLevel(r.logger.GetLevel())
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, batch, func(d tasks.Decider) ui.Injector {
		return r.newInjector(d, withBackup)
	})
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return nil, fmt.Errorf("error running TUI: %w", err)
	}

	return model.Wait()
}
