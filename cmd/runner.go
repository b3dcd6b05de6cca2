package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vvsong/internal/extract"
	"github.com/desertthunder/vvsong/internal/shared"
	"github.com/desertthunder/vvsong/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	input      *bufio.Reader
	extractor  extract.Extractor
	opener     tasks.StoreOpener
	now        func() time.Time
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
	// Extractor replaces the format registry built from the config.
	Extractor extract.Extractor
	// Opener replaces the SQLite store opener.
	Opener tasks.StoreOpener
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      bufio.NewReader(opts.Input),
		extractor:  opts.Extractor,
		opener:     opts.Opener,
		now:        time.Now,
	}
}

// SetLogger replaces the logger used by later commands.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// Before loads the file named by --config and applies --log-level ahead of any command.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.IsSet("config") {
		path := cmd.String("config")
		config, err := shared.LoadConfig(path)
		if err != nil {
			return ctx, &shared.ConfigurationError{Reason: err}
		}
		if err := config.ApplyEnv(); err != nil {
			return ctx, &shared.ConfigurationError{Reason: err}
		}
		r.config = config
		r.configPath = path
	}

	level := r.config.Log.Level
	if cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}
	if err := shared.ApplyLogLevel(r.logger, level); err != nil {
		return ctx, &shared.ConfigurationError{Reason: err}
	}
	return ctx, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		injectCommand, previewCommand, watchCommand, songsCommand, backupCommand, locateCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// registry returns the injected extractor or a format registry built from the current config.
func (r *Runner) registry() extract.Extractor {
	if r.extractor != nil {
		return r.extractor
	}
	return extract.NewDefaultRegistry(r.logger, r.config.Extract)
}

func (r *Runner) storeOpener() tasks.StoreOpener {
	if r.opener == nil {
		return tasks.OpenSQLiteStore(r.config.Database)
	}
	return r.opener
}

// resolveStore picks the song database: the --db flag, then the config file,
// then the VerseVIEW install under the user's application data.
func (r *Runner) resolveStore(cmd *cli.Command) (string, error) {
	configured := r.config.Database.Path
	if cmd.IsSet("db") {
		configured = cmd.String("db")
	}
	path, err := shared.ResolveStore(configured)
	if err != nil {
		return "", &shared.ConfigurationError{Reason: err}
	}
	return path, nil
}

// settings returns the batch defaults, letting --font and --category override the config.
func (r *Runner) settings(cmd *cli.Command) tasks.Settings {
	s := tasks.Settings{
		DefaultFont:     r.config.Defaults.Font,
		DefaultCategory: r.config.Defaults.Category,
	}
	if cmd.IsSet("font") {
		s.DefaultFont = cmd.String("font")
	}
	if cmd.IsSet("category") {
		s.DefaultCategory = cmd.String("category")
	}
	return s
}

// confirm asks a yes/no question on the runner's input. Anything but y(es) is no.
func (r *Runner) confirm(question string) (bool, error) {
	if err := r.writePlain("%s [y/N] ", question); err != nil {
		return false, err
	}
	line, err := r.input.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			r.writePlain("\n")
			return false, nil
		}
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
