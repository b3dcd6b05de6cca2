package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCollectSources(t *testing.T) {
	dir := t.TempDir()
	touch := func(name string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, nil, 0644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
		return p
	}

	b := touch("B Song.pptx")
	a := touch("A Song.PPT")
	touch("notes.txt")
	if err := os.Mkdir(filepath.Join(dir, "nested.pptx"), 0755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	t.Run("directory", func(t *testing.T) {
		got, err := CollectSources([]string{dir})
		if err != nil {
			t.Fatalf("CollectSources failed: %v", err)
		}
		if diff := cmp.Diff([]string{a, b}, got); diff != "" {
			t.Errorf("CollectSources() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("keeps order and drops duplicates", func(t *testing.T) {
		got, err := CollectSources([]string{b, dir, b})
		if err != nil {
			t.Fatalf("CollectSources failed: %v", err)
		}
		if diff := cmp.Diff([]string{b, a}, got); diff != "" {
			t.Errorf("CollectSources() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := CollectSources([]string{filepath.Join(dir, "gone.pptx")})
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("IsSource", func(t *testing.T) {
		for path, want := range map[string]bool{
			"x.pptx": true, "x.PPTX": true, "x.ppt": true, "x.pps": false, "x.key": false, "pptx": false,
		} {
			if got := IsSource(path); got != want {
				t.Errorf("IsSource(%q) = %v, want %v", path, got, want)
			}
		}
	})
}
