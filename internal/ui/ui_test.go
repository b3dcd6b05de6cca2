package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/vvsong/internal/models"
	"github.com/desertthunder/vvsong/internal/tasks"
)

// scriptedEngine asks about every name in duplicates, then reports progress.
type scriptedEngine struct {
	decider    tasks.Decider
	duplicates []string
	answers    []bool
	files      []string
}

func (e *scriptedEngine) Run(ctx context.Context, batch *tasks.Batch, progress chan<- tasks.ProgressUpdate) (*models.BatchReport, error) {
	e.files = append([]string(nil), batch.Files...)
	report := &models.BatchReport{ID: "test"}
	for _, name := range e.duplicates {
		ok := e.decider.ConfirmOverwrite(ctx, name)
		e.answers = append(e.answers, ok)
		status := models.StatusSkippedDuplicate
		if ok {
			status = models.StatusOverwritten
		}
		report.Outcomes = append(report.Outcomes, models.Outcome{Name: name, Status: status})
		progress <- tasks.ProgressUpdate{Phase: tasks.InjectSongs, Step: len(report.Outcomes), Total: len(e.duplicates)}
	}
	batch.Files = nil
	return report, nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(engine *scriptedEngine, files ...string) *Model {
	batch := &tasks.Batch{StorePath: "songs.db", Files: files}
	return NewModel(context.Background(), batch, func(d tasks.Decider) Injector {
		engine.decider = d
		return engine
	})
}

// drive runs cmd and feeds its message back into the model until the model
// needs a key press (no command) or the batch completes.
func drive(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for cmd != nil {
		msgs := make(chan tea.Msg, 1)
		go func(c tea.Cmd) { msgs <- c() }(cmd)

		select {
		case msg := <-msgs:
			_, cmd = m.Update(msg)
		case <-deadline:
			t.Fatal("timed out waiting for batch events")
		}
		if m.view == ResultView {
			return
		}
	}
}

func TestModelFileList(t *testing.T) {
	m := newTestModel(&scriptedEngine{}, "/in/A.pptx", "/in/B.pptx", "/in/C.ppt")

	if m.view != FileListView {
		t.Fatalf("expected file list view, got %v", m.view)
	}

	m.Update(runes("d"))
	if n := len(m.fileList.Items()); n != 2 {
		t.Errorf("expected 2 files after removal, got %d", n)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != ConfirmView {
		t.Fatalf("expected confirm view, got %v", m.view)
	}

	m.Update(runes("n"))
	if m.view != FileListView {
		t.Errorf("declining should return to the file list, got %v", m.view)
	}
}

func TestModelInjection(t *testing.T) {
	t.Run("answers reach the batch", func(t *testing.T) {
		engine := &scriptedEngine{duplicates: []string{"Amazing Grace", "Holy"}}
		m := newTestModel(engine, "/in/Amazing Grace.pptx", "/in/Holy.pptx")

		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		_, cmd := m.Update(runes("y"))
		if m.view != InjectView {
			t.Fatalf("expected inject view, got %v", m.view)
		}

		drive(t, m, cmd)
		if m.view != OverwriteView || m.pending == nil || m.pending.name != "Amazing Grace" {
			t.Fatalf("expected question about Amazing Grace, view=%v", m.view)
		}

		_, cmd = m.Update(runes("y"))
		drive(t, m, cmd)
		if m.view != OverwriteView || m.pending.name != "Holy" {
			t.Fatalf("expected question about Holy, view=%v", m.view)
		}

		_, cmd = m.Update(runes("n"))
		drive(t, m, cmd)
		if m.view != ResultView {
			t.Fatalf("expected result view, got %v", m.view)
		}

		report, err := m.Wait()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(report.Outcomes) != 2 {
			t.Fatalf("expected 2 outcomes, got %d", len(report.Outcomes))
		}
		if !engine.answers[0] || engine.answers[1] {
			t.Errorf("unexpected answers %v", engine.answers)
		}
		if len(engine.files) != 2 {
			t.Errorf("engine should receive the listed files, got %v", engine.files)
		}
	})

	t.Run("overwrite all answers remaining questions", func(t *testing.T) {
		engine := &scriptedEngine{duplicates: []string{"A", "B", "C"}}
		m := newTestModel(engine, "/in/A.pptx", "/in/B.pptx", "/in/C.pptx")

		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		_, cmd := m.Update(runes("y"))
		drive(t, m, cmd)

		_, cmd = m.Update(runes("a"))
		drive(t, m, cmd)
		if m.view != ResultView {
			t.Fatalf("expected result view, got %v", m.view)
		}

		if _, err := m.Wait(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, ok := range engine.answers {
			if !ok {
				t.Errorf("answer %d should be yes", i)
			}
		}
	})

	t.Run("quitting declines the pending question", func(t *testing.T) {
		engine := &scriptedEngine{duplicates: []string{"A", "B"}}
		m := newTestModel(engine, "/in/A.pptx", "/in/B.pptx")

		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		_, cmd := m.Update(runes("y"))
		drive(t, m, cmd)

		m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		if _, err := m.Wait(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, ok := range engine.answers {
			if ok {
				t.Errorf("answer %d should be no after quit", i)
			}
		}
	})
}

func TestModelWaitWithoutBatch(t *testing.T) {
	m := newTestModel(&scriptedEngine{}, "/in/A.pptx")
	report, err := m.Wait()
	if report != nil || err != nil {
		t.Errorf("expected nil result, got %v %v", report, err)
	}
}

func TestPaletteOutcome(t *testing.T) {
	palette := NewPalette(Colors{Added: "#000001", Updated: "#000002", Skipped: "#000003", Failed: "#000004"})

	tests := []struct {
		status models.Status
		want   lipgloss.Color
	}{
		{status: models.StatusAdded, want: "#000001"},
		{status: models.StatusOverwritten, want: "#000002"},
		{status: models.StatusSkippedDuplicate, want: "#000003"},
		{status: models.StatusFailedExtraction, want: "#000004"},
		{status: models.StatusFailedStorage, want: "#000004"},
	}

	for _, tt := range tests {
		if got := palette.Outcome(tt.status).GetForeground(); got != tt.want {
			t.Errorf("Outcome(%v) foreground = %v, want %v", tt.status, got, tt.want)
		}
	}
}
