package ui

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/vvsong/internal/shared"
)

var _ list.Item = fileItem{}

// fileItem wraps a source file path to implement [list.Item].
type fileItem struct {
	path string
}

func (i fileItem) FilterValue() string { return shared.SongName(i.path) }
func (i fileItem) Title() string       { return shared.SongName(i.path) }
func (i fileItem) Description() string { return filepath.Base(i.path) + " • " + filepath.Dir(i.path) }

func fileItems(paths []string) []list.Item {
	items := make([]list.Item, len(paths))
	for i, p := range paths {
		items[i] = fileItem{path: p}
	}
	return items
}
