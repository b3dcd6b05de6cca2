// submodule cmd contains command definitions
package main

import (
	"time"

	"github.com/desertthunder/vvsong/internal/formatter"
	"github.com/desertthunder/vvsong/internal/tasks"
	"github.com/urfave/cli/v3"
)

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "db",
		Aliases: []string{"d"},
		Usage:   "Path to the VerseVIEW songs.db (defaults to config, then the installed VerseVIEW)",
	}
}

func songDefaultFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "font",
			Usage: "Font given to new songs",
		},
		&cli.StringFlag{
			Name:  "category",
			Usage: "Category given to new songs",
		},
	}
}

// injectCommand merges presentation files into the song database
func injectCommand(r *Runner) *cli.Command {
	flags := []cli.Flag{
		dbFlag(),
		&cli.StringFlag{
			Name:  "overwrite",
			Usage: "What to do with songs that already exist: ask, always or never",
			Value: overwriteAsk,
		},
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "Skip the confirmation before injecting",
		},
		&cli.BoolFlag{
			Name:  "backup",
			Usage: "Back up the song database before injecting",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Report format: text, json, yaml or csv",
			Value:   formatter.FormatText,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Also write the report to this file (format from extension)",
		},
		&cli.BoolFlag{
			Name:  "tui",
			Usage: "Review files and answer duplicate questions in the interactive UI",
		},
	}

	return &cli.Command{
		Name:      "inject",
		Aliases:   []string{"add"},
		Usage:     "Inject songs from .ppt/.pptx files or folders into the song database",
		ArgsUsage: "<file|folder>...",
		Flags:     append(flags, songDefaultFlags()...),
		Action:    r.Inject,
	}
}

// previewCommand shows the lyrics a file would produce
func previewCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "preview",
		Usage: "Show the slides extracted from a presentation without touching the database",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "file",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "render",
				Usage: "Render the slides as styled markdown",
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "Word wrap width for rendered output",
				Value: 80,
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Print the stored lyrics string with <BR> and <slide> delimiters",
			},
		},
		Action: r.Preview,
	}
}

// watchCommand injects presentations as they appear in a folder
func watchCommand(r *Runner) *cli.Command {
	flags := []cli.Flag{
		dbFlag(),
		&cli.StringFlag{
			Name:  "overwrite",
			Usage: "What to do with songs that already exist: always or never",
			Value: overwriteNever,
		},
		&cli.DurationFlag{
			Name:  "debounce",
			Usage: "Quiet period before a changed file is injected",
			Value: 2 * time.Second,
		},
	}

	return &cli.Command{
		Name:  "watch",
		Usage: "Watch a folder and inject presentations as they are saved",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "folder",
			},
		},
		Flags:  append(flags, songDefaultFlags()...),
		Action: r.Watch,
	}
}

// songsCommand reads the song database
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "songs",
		Usage: "Inspect songs in the database",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List stored songs",
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:  "category",
						Usage: "Only list songs in this category",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, csv or json",
						Value:   formatter.FormatText,
					},
				},
				Action: r.SongsList,
			},
			{
				Name:  "show",
				Usage: "Show a song and its slides",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Flags: []cli.Flag{
					dbFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SongsShow,
			},
			{
				Name:  "export",
				Usage: "Write every song's lyrics to its own file",
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:  "category",
						Usage: "Only export songs in this category",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "File format: markdown, txt or json",
						Value:   tasks.ExportMarkdown,
					},
					&cli.StringFlag{
						Name:    "dir",
						Aliases: []string{"o"},
						Usage:   "Output directory (default: vvsong_export_{epoch})",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent writers",
						Value: 4,
					},
				},
				Action: r.SongsExport,
			},
		},
	}
}

// backupCommand copies the song database aside
func backupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "backup",
		Usage:  "Copy the song database to a timestamped backup next to it",
		Flags:  []cli.Flag{dbFlag()},
		Action: r.Backup,
	}
}

// locateCommand prints the song database in use
func locateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "locate",
		Usage:  "Print the song database that commands would use",
		Flags:  []cli.Flag{dbFlag()},
		Action: r.Locate,
	}
}

// setupCommand handles setup operations for configuration and databases.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create configuration or an empty song database",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write an example config.toml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Where to write the configuration file",
						Value: "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Create a song database with the VerseVIEW sm table",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "path",
						Usage:    "Path of the database to create",
						Required: true,
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}
