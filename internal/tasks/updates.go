package tasks

import (
	"fmt"

	"github.com/desertthunder/vvsong/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Files processed so far
	Total   int    // Files in the batch
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	OpenStore Phase = iota
	InjectSongs
	Complete
	ExportSongsPhase
)

func (p Phase) String() string {
	switch p {
	case OpenStore:
		return "open_store"
	case InjectSongs:
		return "inject_songs"
	case Complete:
		return "complete"
	case ExportSongsPhase:
		return "export_songs"
	default:
		return ""
	}
}

func openStoreUpdate(total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   OpenStore,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Opening song database (%s)...", path),
	}
}

// fileProcessedUpdate carries the file's [models.Outcome] as Data.
func fileProcessedUpdate(step, total int, o models.Outcome) ProgressUpdate {
	mark := "✓"
	if !o.Status.Succeeded() {
		mark = "✗"
	}
	return ProgressUpdate{
		Phase:   InjectSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s %s", step, total, mark, o.Label()),
		Data:    o,
	}
}

// completeUpdate carries the [models.BatchReport] as Data.
func completeUpdate(total int, report *models.BatchReport) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Complete,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("Injection complete: %d succeeded, %d failed", len(report.Succeeded()), len(report.Failed())),
		Data:    report,
	}
}

// exportedUpdate carries the song's [SongExportResult] as Data.
func exportedUpdate(step, total int, res SongExportResult) ProgressUpdate {
	mark := "✓"
	if res.Error != nil {
		mark = "✗"
	}
	return ProgressUpdate{
		Phase:   ExportSongsPhase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s %s", step, total, mark, res.Name),
		Data:    res,
	}
}
