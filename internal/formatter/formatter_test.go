package formatter

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/vvsong/internal/models"
	"github.com/desertthunder/vvsong/internal/shared"
	th "github.com/desertthunder/vvsong/internal/testing"
	"gopkg.in/yaml.v3"
)

func sampleReport() *models.BatchReport {
	started := time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)
	return &models.BatchReport{
		ID:         "batch-1",
		StorePath:  "/songs/songs.db",
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
		Outcomes: []models.Outcome{
			{Name: "Amazing Grace", Path: "/in/Amazing Grace.pptx", Status: models.StatusAdded, SongID: 1},
			{Name: "Broken", Path: "/in/Broken.ppt", Status: models.StatusFailedExtraction, Detail: "corrupt presentation"},
			{Name: "Holy", Path: "/in/Holy.pptx", Status: models.StatusOverwritten, SongID: 4},
			{Name: "Doxology", Path: "/in/Doxology.pptx", Status: models.StatusSkippedDuplicate, SongID: 2},
			{Name: "Clash", Path: "/in/Clash.pptx", Status: models.StatusFailedStorage, Detail: "UNIQUE constraint failed: sm.id"},
		},
	}
}

func TestReportExporters(t *testing.T) {
	t.Run("ReportToText", func(t *testing.T) {
		data, err := ReportToText(sampleReport())
		if err != nil {
			t.Fatalf("ReportToText failed: %v", err)
		}

		want := "Injection Complete!\n\n" +
			"Added/Updated Songs:\n" +
			"Amazing Grace\n" +
			"Holy (Overwritten)\n\n" +
			"Failed Files:\n" +
			"Broken (Error extracting lyrics)\n" +
			"Doxology (Skipped, duplicate)\n" +
			"Clash (DB Error: UNIQUE constraint failed: sm.id)\n"
		if got := string(data); got != want {
			t.Errorf("unexpected summary:\n%s\nwant:\n%s", got, want)
		}
	})

	t.Run("ReportToText only failures", func(t *testing.T) {
		report := &models.BatchReport{Outcomes: []models.Outcome{{Name: "X", Status: models.StatusFailedExtraction}}}
		data, _ := ReportToText(report)
		if strings.Contains(string(data), "Added/Updated Songs") {
			t.Errorf("empty section should be omitted: %s", data)
		}
	})

	t.Run("ReportToCSV", func(t *testing.T) {
		data, err := ReportToCSV(sampleReport())
		if err != nil {
			t.Fatalf("ReportToCSV failed: %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("invalid CSV: %v", err)
		}
		if len(records) != 6 {
			t.Fatalf("expected header and 5 rows, got %d", len(records))
		}
		if strings.Join(records[0], ",") != "Name,Status,ID,Path,Detail" {
			t.Errorf("unexpected headers %v", records[0])
		}
		if records[1][1] != "added" || records[1][2] != "1" {
			t.Errorf("unexpected first row %v", records[1])
		}
		if records[2][2] != "" || records[2][4] != "corrupt presentation" {
			t.Errorf("unexpected failed row %v", records[2])
		}
	})

	t.Run("ReportToJSON", func(t *testing.T) {
		data, err := ReportToJSON(sampleReport())
		if err != nil {
			t.Fatalf("ReportToJSON failed: %v", err)
		}

		var decoded struct {
			ID       string `json:"id"`
			Outcomes []struct {
				Name   string `json:"name"`
				Status string `json:"status"`
			} `json:"outcomes"`
		}
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.ID != "batch-1" || len(decoded.Outcomes) != 5 {
			t.Errorf("unexpected report %+v", decoded)
		}
		if decoded.Outcomes[3].Status != "skipped-duplicate" {
			t.Errorf("status should be encoded by name, got %q", decoded.Outcomes[3].Status)
		}
	})

	t.Run("ReportToYAML", func(t *testing.T) {
		data, err := ReportToYAML(sampleReport())
		if err != nil {
			t.Fatalf("ReportToYAML failed: %v", err)
		}

		var decoded map[string]any
		if err := yaml.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid YAML: %v", err)
		}
		if decoded["store"] != "/songs/songs.db" {
			t.Errorf("unexpected store %v", decoded["store"])
		}
		if !strings.Contains(string(data), "status: failed-storage") {
			t.Errorf("expected named status in YAML:\n%s", data)
		}
	})
}

func TestFormatReport(t *testing.T) {
	for _, format := range []string{"", "text", "JSON", "yaml", "yml", "csv"} {
		t.Run("format "+format, func(t *testing.T) {
			if _, err := FormatReport(sampleReport(), format); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		if _, err := FormatReport(sampleReport(), "xml"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("write failure", func(t *testing.T) {
		if err := WriteReport(&th.FWriter{}, sampleReport(), "text"); err == nil {
			t.Error("expected write error")
		}
	})

	t.Run("WriteReportFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.json")
		if err := WriteReportFile(sampleReport(), path); err != nil {
			t.Fatalf("WriteReportFile failed: %v", err)
		}
		th.AssertFileExists(t, path)
		if content := th.MustReadFile(t, path); !strings.HasPrefix(content, "{") {
			t.Errorf("expected JSON file, got %q", content)
		}
	})
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"out.json":    FormatJSON,
		"out.YAML":    FormatYAML,
		"out.yml":     FormatYAML,
		"out.csv":     FormatCSV,
		"summary.txt": FormatText,
		"summary":     FormatText,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestPreview(t *testing.T) {
	l := "Amazing grace<BR>How sweet the sound<slide>I once was lost"

	t.Run("PreviewToText", func(t *testing.T) {
		got := string(PreviewToText("Amazing Grace", l))
		want := "Amazing Grace (2 slides)\n\nAmazing grace\nHow sweet the sound\n\n---\n\nI once was lost\n"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("RenderPreview", func(t *testing.T) {
		out, err := RenderPreview("Amazing Grace", l, 60, false)
		if err != nil {
			t.Fatalf("RenderPreview failed: %v", err)
		}
		for _, want := range []string{"Amazing Grace", "How sweet the sound", "I once was lost"} {
			if !strings.Contains(out, want) {
				t.Errorf("rendered preview missing %q:\n%s", want, out)
			}
		}
	})
}

func TestSongs(t *testing.T) {
	songs := []*models.Song{
		models.NewSong(1, "Amazing Grace", "autoadd", "Calibri", "a<slide>b"),
		models.NewSong(2, "Holy", "hymns", "Georgia", "c"),
	}

	t.Run("SongsToText", func(t *testing.T) {
		out := string(SongsToText(songs))
		for _, want := range []string{"NAME", "Amazing Grace", "hymns", "Georgia"} {
			if !strings.Contains(out, want) {
				t.Errorf("table missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("SongsToCSV", func(t *testing.T) {
		data, err := SongsToCSV(songs)
		if err != nil {
			t.Fatalf("SongsToCSV failed: %v", err)
		}
		if !strings.Contains(string(data), "1,Amazing Grace,autoadd,Calibri,2") {
			t.Errorf("unexpected CSV:\n%s", data)
		}
	})

	t.Run("SongToText", func(t *testing.T) {
		song := models.NewSong(7, "Doxology", "hymns", "Georgia", "Praise God<BR>from whom")
		song.Tags = "praise"
		out := string(SongToText(song))
		for _, want := range []string{"Song: Doxology", "ID: 7", "Tags: praise", "Slides: 1", "Praise God\nfrom whom"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})
}

func TestMarshalJSON(t *testing.T) {
	data, err := MarshalJSON(map[string]int{"exported": 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "{\n  \"exported\": 2\n}\n" {
		t.Errorf("unexpected output %q", data)
	}

	if _, err := MarshalJSON(make(chan int)); err == nil {
		t.Error("expected error for unmarshalable value")
	}
}
