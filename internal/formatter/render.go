package formatter

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/desertthunder/vvsong/internal/lyrics"
)

// RenderPreview renders lyrics as styled markdown for a terminal.
//
// Without styling the plain "notty" style is used, which keeps the output
// stable for pipes and tests.
func RenderPreview(name, l string, width int, styled bool) (string, error) {
	if width <= 0 {
		width = 80
	}

	style := glamour.WithStandardStyle(styles.NoTTYStyle)
	if styled {
		style = glamour.WithAutoStyle()
	}

	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := renderer.Render(lyrics.Markdown(name, l))
	if err != nil {
		return "", fmt.Errorf("failed to render preview: %w", err)
	}
	return out, nil
}
