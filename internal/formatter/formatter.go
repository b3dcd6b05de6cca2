// package formatter renders batch reports, song listings and lyric previews (plain text, CSV, JSON, YAML, Markdown)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/vvsong/internal/lyrics"
	"github.com/desertthunder/vvsong/internal/models"
	"github.com/desertthunder/vvsong/internal/shared"
	"gopkg.in/yaml.v3"
)

// Report output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// Formats lists the accepted report formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatCSV}

// ReportToText renders the end-of-batch summary: succeeded songs first, then failed or skipped files.
func ReportToText(report *models.BatchReport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("Injection Complete!\n\n")

	if succeeded := report.Succeeded(); len(succeeded) > 0 {
		buf.WriteString("Added/Updated Songs:\n")
		for _, o := range succeeded {
			buf.WriteString(o.Label() + "\n")
		}
		buf.WriteString("\n")
	}

	if failed := report.Failed(); len(failed) > 0 {
		buf.WriteString("Failed Files:\n")
		for _, o := range failed {
			buf.WriteString(o.Label() + "\n")
		}
	}

	return buf.Bytes(), nil
}

// ReportToCSV converts a BatchReport to CSV format with columns: Name, Status, ID, Path, Detail
func ReportToCSV(report *models.BatchReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Name", "Status", "ID", "Path", "Detail"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, o := range report.Outcomes {
		id := ""
		if o.SongID > 0 {
			id = strconv.Itoa(o.SongID)
		}
		record := []string{o.Name, o.Status.String(), id, o.Path, o.Detail}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ReportToJSON converts a BatchReport to indented JSON.
func ReportToJSON(report *models.BatchReport) ([]byte, error) {
	data, err := MarshalJSON(report)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return data, nil
}

// MarshalJSON encodes v as indented JSON ending with a newline.
func MarshalJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// ReportToYAML converts a BatchReport to YAML.
func ReportToYAML(report *models.BatchReport) ([]byte, error) {
	data, err := yaml.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return data, nil
}

// FormatReport renders report in the named format.
func FormatReport(report *models.BatchReport, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return ReportToText(report)
	case FormatJSON:
		return ReportToJSON(report)
	case FormatYAML, "yml":
		return ReportToYAML(report)
	case FormatCSV:
		return ReportToCSV(report)
	default:
		return nil, fmt.Errorf("%w: unknown format %q (want one of %s)", shared.ErrInvalidFlag, format, strings.Join(Formats, ", "))
	}
}

// WriteReport renders report to w.
func WriteReport(w io.Writer, report *models.BatchReport, format string) error {
	data, err := FormatReport(report, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// FormatFromPath picks a report format from a file extension, defaulting to text.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".csv":
		return FormatCSV
	default:
		return FormatText
	}
}

// WriteReportFile saves report to path in the format its extension names.
func WriteReportFile(report *models.BatchReport, path string) error {
	data, err := FormatReport(report, FormatFromPath(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

// PreviewToText renders normalized lyrics the way they are shown before injection:
// the song name, then slides separated by a rule.
func PreviewToText(name, l string) []byte {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("%s (%d slides)\n\n", name, lyrics.SlideCount(l)))
	buf.WriteString(lyrics.Display(l))
	buf.WriteString("\n")
	return buf.Bytes()
}

// SongsToText renders songs as a table with id, name, category, font and slide count.
func SongsToText(songs []*models.Song) []byte {
	rows := make([][]string, 0, len(songs))
	for _, s := range songs {
		rows = append(rows, []string{
			strconv.Itoa(s.ID),
			s.Name,
			s.Category,
			s.Font,
			strconv.Itoa(lyrics.SlideCount(s.Lyrics)),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "CATEGORY", "FONT", "SLIDES").
		Rows(rows...)

	return []byte(t.Render() + "\n")
}

// SongsToCSV converts songs to CSV format with columns: ID, Name, Category, Font, Slides
func SongsToCSV(songs []*models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"ID", "Name", "Category", "Font", "Slides"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, s := range songs {
		record := []string{strconv.Itoa(s.ID), s.Name, s.Category, s.Font, strconv.Itoa(lyrics.SlideCount(s.Lyrics))}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// SongToText renders one stored song with its metadata and lyrics.
func SongToText(song *models.Song) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Song: %s\n", song.Name))
	buf.WriteString(fmt.Sprintf("ID: %d\n", song.ID))
	buf.WriteString(fmt.Sprintf("Category: %s\n", song.Category))
	buf.WriteString(fmt.Sprintf("Font: %s\n", song.Font))
	if song.Tags != "" {
		buf.WriteString(fmt.Sprintf("Tags: %s\n", song.Tags))
	}
	buf.WriteString(fmt.Sprintf("Slides: %d\n\n", lyrics.SlideCount(song.Lyrics)))
	buf.WriteString(lyrics.Display(song.Lyrics))
	buf.WriteString("\n")

	return buf.Bytes()
}
