package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/vvsong/internal/extract"
	"github.com/desertthunder/vvsong/internal/formatter"
	"github.com/desertthunder/vvsong/internal/shared"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
)

// Preview prints the normalized lyrics of a single presentation.
func (r *Runner) Preview(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: file", shared.ErrMissingArgument)
	}

	l, err := extract.Lyrics(ctx, r.registry(), path)
	if err != nil {
		return err
	}
	name := shared.SongName(path)

	switch {
	case cmd.Bool("raw"):
		return r.writePlain("%s\n", l)
	case cmd.Bool("render"):
		out, err := formatter.RenderPreview(name, l, int(cmd.Int("width")), r.isTerminal())
		if err != nil {
			return err
		}
		return r.writePlain("%s", out)
	default:
		_, err := r.output.Write(formatter.PreviewToText(name, l))
		return err
	}
}

// isTerminal reports whether output goes to a terminal that can show styles.
func (r *Runner) isTerminal() bool {
	f, ok := r.output.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
