package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vvsong/internal/lyrics"
	"github.com/desertthunder/vvsong/internal/shared"
)

// Extractor reads the ordered slides of one presentation file.
type Extractor interface {
	Extract(ctx context.Context, path string) ([]lyrics.Slide, error)
}

// Format is the presentation encoding of a source file.
type Format string

const (
	FormatModern Format = "pptx"
	FormatLegacy Format = "ppt"
)

// FormatOf selects the format from the file extension alone.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pptx":
		return FormatModern, nil
	case ".ppt":
		return FormatLegacy, nil
	default:
		return "", fmt.Errorf("%w: %q", shared.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Registry dispatches extraction to the extractor registered for a file's format.
type Registry struct {
	extractors map[Format]Extractor
	logger     *log.Logger
}

// NewRegistry creates a Registry with the given modern and legacy extractors.
// A nil extractor leaves that format unsupported.
func NewRegistry(logger *log.Logger, modern, legacy Extractor) *Registry {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	r := &Registry{extractors: make(map[Format]Extractor), logger: logger}
	if modern != nil {
		r.extractors[FormatModern] = modern
	}
	if legacy != nil {
		r.extractors[FormatLegacy] = legacy
	}
	return r
}

// NewDefaultRegistry wires the built-in readers, using LibreOffice for legacy files.
func NewDefaultRegistry(logger *log.Logger, cfg shared.ExtractConfig) *Registry {
	converter := &SofficeConverter{Binary: cfg.SofficePath, Timeout: cfg.Timeout()}
	return NewRegistry(logger, &PPTX{}, NewPPT(converter))
}

// Extract reads path with the extractor for its format.
// Every error returned is a [*shared.ExtractionError].
func (r *Registry) Extract(ctx context.Context, path string) ([]lyrics.Slide, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, shared.NewExtractionError(path, err)
	}

	ex, ok := r.extractors[format]
	if !ok {
		return nil, shared.NewExtractionError(path, fmt.Errorf("%w: no reader for %s", shared.ErrUnsupportedFormat, format))
	}

	r.logger.Debug("extracting presentation", "path", path, "format", format)

	slides, err := ex.Extract(ctx, path)
	if err != nil {
		return nil, shared.NewExtractionError(path, err)
	}
	return slides, nil
}

// Lyrics extracts path and normalizes its slides. Lyrics that normalize to the
// empty string are reported as an extraction failure wrapping
// [shared.ErrNoLyrics]; a deck of several blank slides is kept.
func Lyrics(ctx context.Context, ex Extractor, path string) (string, error) {
	slides, err := ex.Extract(ctx, path)
	if err != nil {
		return "", shared.NewExtractionError(path, err)
	}

	l := lyrics.Normalize(slides)
	if lyrics.IsEmpty(l) {
		return "", shared.NewExtractionError(path, shared.ErrNoLyrics)
	}
	return l, nil
}
