package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/vvsong/internal/formatter"
	"github.com/desertthunder/vvsong/internal/lyrics"
	"github.com/desertthunder/vvsong/internal/models"
	"github.com/desertthunder/vvsong/internal/shared"
)

// Export file formats.
const (
	ExportMarkdown = "markdown"
	ExportText     = "txt"
	ExportJSON     = "json"
)

// ExportOpts contains configuration for song exports.
type ExportOpts struct {
	Format     string // Export format: markdown, txt or json
	OutputDir  string // Base output directory (default: vvsong_export_{epoch})
	NumWorkers int    // Concurrent workers (default: 4)
}

// SongExportResult is the outcome of writing one song.
type SongExportResult struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	File  string `json:"file,omitempty"`
	Error error  `json:"-"`
	// Detail is Error's message, kept for the manifest.
	Detail string `json:"error,omitempty"`
}

// ExportResult summarizes an export run.
type ExportResult struct {
	OutputDirectory string             `json:"output_directory"`
	Format          string             `json:"format"`
	Total           int                `json:"total"`
	Exported        int                `json:"exported"`
	Failed          int                `json:"failed"`
	Results         []SongExportResult `json:"results"`
	ManifestPath    string             `json:"-"`
}

// ExportSongs writes each song's lyrics to its own file with a pool of workers
// and finishes with a manifest listing every file.
//
// A song that cannot be written is recorded and does not stop the others.
// Results are ordered by song ID.
func ExportSongs(ctx context.Context, prog chan<- ProgressUpdate, songs []*models.Song, opts ExportOpts) (*ExportResult, error) {
	switch opts.Format {
	case "":
		opts.Format = ExportMarkdown
	case ExportMarkdown, ExportText, ExportJSON:
	default:
		return nil, fmt.Errorf("%w: export format %q", shared.ErrInvalidFlag, opts.Format)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("vvsong_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 16 {
		opts.NumWorkers = 16
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &ExportResult{
		OutputDirectory: opts.OutputDir,
		Format:          opts.Format,
		Total:           len(songs),
		Results:         make([]SongExportResult, 0, len(songs)),
	}

	jobs := make(chan *models.Song)
	results := make(chan SongExportResult, len(songs))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for _, song := range songs {
			select {
			case <-ctx.Done():
				return
			case jobs <- song:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		if res.Error != nil {
			res.Detail = res.Error.Error()
			result.Failed++
		} else {
			result.Exported++
		}
		result.Results = append(result.Results, res)
		sendProgress(prog, exportedUpdate(completed, len(songs), res))
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	sort.Slice(result.Results, func(i, j int) bool { return result.Results[i].ID < result.Results[j].ID })

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	data, err := formatter.MarshalJSON(result)
	if err == nil {
		err = os.WriteFile(manifestPath, data, 0644)
	}
	if err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker writes songs from the jobs channel until it is drained.
func exportWorker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan *models.Song, results chan<- SongExportResult, opts ExportOpts) {
	defer wg.Done()

	for song := range jobs {
		if ctx.Err() != nil {
			return
		}
		results <- exportSong(song, opts)
	}
}

func exportSong(song *models.Song, opts ExportOpts) SongExportResult {
	res := SongExportResult{ID: song.ID, Name: song.Name}

	var (
		ext  string
		data []byte
		err  error
	)
	switch opts.Format {
	case ExportText:
		ext, data = ".txt", []byte(song.Name+"\n\n"+lyrics.Display(song.Lyrics)+"\n")
	case ExportJSON:
		ext = ".json"
		data, err = formatter.MarshalJSON(song)
	default:
		ext, data = ".md", []byte(lyrics.Markdown(song.Name, song.Lyrics))
	}
	if err != nil {
		res.Error = fmt.Errorf("%s export failed: %w", opts.Format, err)
		return res
	}

	path := filepath.Join(opts.OutputDir, exportFileName(song)+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		res.Error = fmt.Errorf("%s write failed: %w", opts.Format, err)
		return res
	}
	res.File = path
	return res
}

var unsafeFileChars = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_",
)

// exportFileName is unique per song: the ID keeps songs with similar names apart.
func exportFileName(song *models.Song) string {
	name := strings.TrimSpace(unsafeFileChars.Replace(song.Name))
	if name == "" {
		name = "untitled"
	}
	return fmt.Sprintf("%04d-%s", song.ID, name)
}
