package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/versus/internal/services"
	"github.com/desertthunder/versus/internal/shared"
	"github.com/desertthunder/versus/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	api        services.VotingAPI
	gateway    *services.Gateway
	injected   bool
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	refresher  *tasks.Refresher
	importer   *tasks.Importer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	API        services.VotingAPI // built from Config.API when nil
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
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

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		api:        opts.API,
		injected:   opts.API != nil,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
	r.connect()
	return r
}

// connect builds the voting client from the current config unless one was injected.
func (r *Runner) connect() {
	if !r.injected {
		client := r.httpClient
		if client == nil {
			client = services.NewHTTPClient(r.config.API.TimeoutSeconds)
		}
		r.gateway = services.NewGateway(r.config.API.BaseURL, client)
		r.gateway.SetLogger(r.logger)
		r.api = services.NewVotingService(r.gateway)
	}

	r.refresher = tasks.NewRefresher(r.api)
	r.refresher.SetLogger(r.logger)
	r.importer = tasks.NewImporter(r.api)
	r.importer.SetLogger(r.logger)
}

// SetLogger replaces the logger used by the runner and everything it owns.
func (r *Runner) SetLogger(l *log.Logger) {
	if l == nil {
		return
	}
	r.logger = l
	if r.gateway != nil {
		r.gateway.SetLogger(l)
	}
	r.refresher.SetLogger(l)
	r.importer.SetLogger(l)
}

// Before loads the file named by --config, applies environment overrides and reconnects.
//
// A missing config file is not an error; defaults are used.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("debug") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}

	if r.configPath != "" {
		config, err := shared.LoadConfig(r.configPath)
		switch {
		case errors.Is(err, shared.ErrMissingConfig):
			r.logger.Debug("config file not found, using defaults", "path", r.configPath)
		case err != nil:
			return ctx, err
		default:
			r.config = config
		}
	}

	if err := r.config.ApplyEnv(); err != nil {
		return ctx, err
	}

	r.connect()
	r.logger.Debug("configured", "api", r.config.API.BaseURL)
	return ctx, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		songsCommand, pairCommand, voteCommand, leaderboardCommand, tuiCommand, serveCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
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

func (r *Runner) writeBytes(b []byte) error {
	if _, err := r.output.Write(b); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
