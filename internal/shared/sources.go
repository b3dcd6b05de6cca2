package shared

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExtensions lists the presentation extensions accepted as song sources.
var SourceExtensions = []string{".pptx", ".ppt"}

// IsSource reports whether path has a recognized presentation extension.
func IsSource(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SourceExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// CollectSources expands paths into an ordered, de-duplicated list of
// presentation files. Directories contribute their direct children in name
// order; files with other extensions are skipped.
func CollectSources(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(p string) {
		if !IsSource(p) || seen[p] {
			return
		}
		seen[p] = true
		files = append(files, p)
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}

		if !info.IsDir() {
			add(p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", p, err)
		}
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			if !entry.IsDir() {
				names = append(names, entry.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			add(filepath.Join(p, name))
		}
	}

	return files, nil
}
