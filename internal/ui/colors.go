package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/vvsong/internal/models"
)

// VerseVIEW-like blues for chrome, traffic-light colors for song outcomes.
var styles = NewPalette(Colors{
	Title:   "#3B6EA8",
	Added:   "#04B575",
	Updated: "#2AA1B3",
	Skipped: "#FFA500",
	Failed:  "#E0474C",
	Help:    "#626262",
})

// Colors names the foreground color of each role in the injection UI.
type Colors struct {
	Title   string
	Added   string
	Updated string
	Skipped string
	Failed  string
	Help    string
}

// Palette holds the styles used by the views.
type Palette struct {
	title   lipgloss.Style
	ok      lipgloss.Style
	updated lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
	help    lipgloss.Style
}

func NewPalette(c Colors) *Palette {
	return &Palette{
		title:   NewBold(c.Title).MarginBottom(1),
		ok:      NewBold(c.Added),
		updated: NewStyle(c.Updated),
		warn:    NewStyle(c.Skipped),
		err:     NewBold(c.Failed),
		help:    NewEm(c.Help),
	}
}

// Outcome picks the style for an outcome line in the result view.
func (p *Palette) Outcome(s models.Status) lipgloss.Style {
	switch s {
	case models.StatusAdded:
		return p.ok
	case models.StatusOverwritten:
		return p.updated
	case models.StatusSkippedDuplicate:
		return p.warn
	default:
		return p.err
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
