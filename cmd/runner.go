package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/podx/internal/formatter"
	"github.com/desertthunder/podx/internal/models"
	"github.com/desertthunder/podx/internal/player"
	"github.com/desertthunder/podx/internal/repositories"
	"github.com/desertthunder/podx/internal/services"
	"github.com/desertthunder/podx/internal/session"
	"github.com/desertthunder/podx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	portal     *services.PortalService
	live       *services.LiveService
	admin      *services.AdminService
	api        *services.APIService
	session    *session.Manager
	history    *repositories.HistoryRepository
	media      *player.ExecMedia
	engine     *player.Engine
	recorder   *playRecorder
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Portal     *services.PortalService
	Live       *services.LiveService
	Admin      *services.AdminService
	API        *services.APIService
	Session    *session.Manager
	History    *repositories.HistoryRepository
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
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	media := player.NewExecMedia(opts.Config.Player.Command, opts.Logger)

	engineOpts := player.EngineOpts{
		Media:   media,
		Logger:  opts.Logger,
		BaseURL: opts.Config.API.BaseURL,
		Volume:  opts.Config.Player.Volume,
	}
	var recorder *playRecorder
	if opts.Portal != nil || opts.History != nil {
		recorder = &playRecorder{
			portal:  opts.Portal,
			history: opts.History,
			logger:  opts.Logger,
		}
		engineOpts.Reporter = recorder
	}
	if opts.Session != nil {
		engineOpts.Auth = opts.Session
	}
	engine := player.NewEngine(engineOpts)

	return &Runner{
		config:     opts.Config,
		portal:     opts.Portal,
		live:       opts.Live,
		admin:      opts.Admin,
		api:        opts.API,
		session:    opts.Session,
		history:    opts.History,
		media:      media,
		engine:     engine,
		recorder:   recorder,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger replaces the runner's logger, propagating it to the player so
// engine and subprocess warnings follow. Used by the TUI command, which must
// keep log output off the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	r.engine.SetLogger(logger)
	r.media.SetLogger(logger)
	if r.recorder != nil {
		r.recorder.logger = logger
	}
}

// playRecorder fans a started play out to the portal's play counter and the
// local history log. Satisfies player.Reporter; the engine reports every
// playback start through here, CLI one-shots and TUI traversal alike.
type playRecorder struct {
	portal  *services.PortalService
	history *repositories.HistoryRepository
	logger  *log.Logger
}

func (p *playRecorder) ReportPlay(ctx context.Context, item models.Podcast) error {
	if p.history != nil {
		if eventID, err := p.history.Record(item.ID, item.Title); err != nil {
			p.logger.Warnf("failed to record play history: %v", err)
		} else {
			p.logger.Debug("play recorded", "event", eventID)
		}
	}
	if p.portal == nil {
		return nil
	}
	return p.portal.ReportPlay(ctx, item.ID)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, podcastsCommand, liveCommand, adminCommand, apiCommand, healthCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
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

// writePodcasts renders a podcast list in the requested format.
func (r *Runner) writePodcasts(podcasts []models.Podcast, format string) error {
	var data []byte
	var err error

	switch format {
	case "json":
		return r.writeJSON(podcasts, true)
	case "csv":
		data, err = formatter.PodcastsToCSV(podcasts)
	case "markdown", "md":
		data, err = formatter.PodcastsToMarkdown(podcasts)
	default:
		data, err = formatter.PodcastsToText(podcasts)
	}
	if err != nil {
		return fmt.Errorf("failed to format podcasts: %w", err)
	}

	_, err = r.output.Write(data)
	return err
}

// writeStreams renders a stream list in the requested format.
func (r *Runner) writeStreams(streams []models.LiveStream, format string) error {
	var data []byte
	var err error

	switch format {
	case "json":
		return r.writeJSON(streams, true)
	case "csv":
		data, err = formatter.StreamsToCSV(streams)
	case "markdown", "md":
		data, err = formatter.StreamsToMarkdown(streams)
	default:
		data, err = formatter.StreamsToText(streams)
	}
	if err != nil {
		return fmt.Errorf("failed to format streams: %w", err)
	}

	_, err = r.output.Write(data)
	return err
}
