package player

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/podx/internal/models"
	"github.com/desertthunder/podx/internal/shared"
)

// Engine drives the single media resource and mediates playlist traversal.
//
// Transitions are serialized by the caller (the bubbletea update loop or a
// CLI action); the engine itself holds no locks.
type Engine struct {
	media    Media
	reporter Reporter
	auth     Authorizer
	logger   *log.Logger
	baseURL  string

	state    State
	current  *models.Podcast
	playlist []models.Podcast

	volume     float64
	muted      bool
	seeking    bool
	position   time.Duration
	duration   time.Duration
	interacted bool
}

// EngineOpts contains dependencies and settings for a new Engine.
type EngineOpts struct {
	Media    Media
	Reporter Reporter
	Auth     Authorizer
	Logger   *log.Logger
	BaseURL  string
	Volume   float64
}

// NewEngine creates an Engine in the Idle state.
func NewEngine(opts EngineOpts) *Engine {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "http://localhost:8000"
	}
	if opts.Volume <= 0 || opts.Volume > 1 {
		opts.Volume = 0.8
	}

	e := &Engine{
		media:    opts.Media,
		reporter: opts.Reporter,
		auth:     opts.Auth,
		logger:   opts.Logger,
		baseURL:  strings.TrimSuffix(opts.BaseURL, "/"),
		volume:   opts.Volume,
	}

	if e.media != nil {
		e.media.SetVolume(e.volume)
	}

	return e
}

// SetLogger replaces the engine's logger. Same caller-serialization rule as
// every other transition.
func (e *Engine) SetLogger(logger *log.Logger) {
	if logger == nil {
		return
	}
	e.logger = logger
}

// SetPlaylist installs the most recently fetched snapshot. Order is
// significant only for next/previous traversal.
func (e *Engine) SetPlaylist(items []models.Podcast) {
	e.playlist = items
}

// Playlist returns the current snapshot.
func (e *Engine) Playlist() []models.Podcast { return e.playlist }

// Select loads a new item, resetting position to zero. Before the first
// explicit play the new item stays paused; afterwards every selection
// attempts to start playback immediately.
func (e *Engine) Select(ctx context.Context, item models.Podcast) {
	url := e.resolveMediaURL(item.AudioFileURL)
	if err := e.media.Load(url); err != nil {
		e.logger.Warnf("failed to load media %s: %v", url, err)
		e.state = Idle
		e.current = nil
		return
	}

	e.current = &item
	e.state = Paused
	e.position = 0
	e.duration = e.media.Duration()
	if e.duration == 0 && item.DurationMinutes != nil {
		e.duration = time.Duration(*item.DurationMinutes) * time.Minute
	}

	if e.interacted {
		e.startPlayback(ctx)
	}
}

// TogglePlayPause flips between Playing and Paused. The first explicit press
// marks the user as having interacted, unlocking autoplay on later
// selections.
func (e *Engine) TogglePlayPause(ctx context.Context) {
	switch e.state {
	case Idle:
		e.logger.Warn("toggle ignored: no media loaded")
	case Playing:
		e.media.Pause()
		e.state = Paused
	case Paused, Ended:
		e.interacted = true
		e.startPlayback(ctx)
	}
}

// startPlayback attempts to start the loaded media. On refusal the state
// stays Paused and only a warning is logged. On success the state becomes
// Playing and exactly one play report is issued for the current item.
func (e *Engine) startPlayback(ctx context.Context) {
	if err := e.media.Play(); err != nil {
		e.logger.Warnf("playback blocked: %v", err)
		e.state = Paused
		return
	}

	e.state = Playing
	e.reportPlay(ctx)
}

// reportPlay issues the play-count report for the current item when a valid
// credential is present. Best effort: failures are logged and ignored.
func (e *Engine) reportPlay(ctx context.Context) {
	if e.reporter == nil || e.current == nil {
		return
	}
	if e.auth == nil || !e.auth.Authenticated() {
		return
	}

	if err := e.reporter.ReportPlay(ctx, *e.current); err != nil {
		e.logger.Warnf("failed to report play for podcast %d: %v", e.current.ID, err)
	}
}

// HandleEnded processes the natural end-of-media event: position resets and,
// when a next item exists, traversal advances automatically. With a
// single-item snapshot the engine stays stopped.
func (e *Engine) HandleEnded(ctx context.Context) {
	if e.state != Playing {
		return
	}

	e.state = Ended
	e.position = 0

	if e.CanTraverse() {
		e.Next(ctx)
	}
}

// CanTraverse reports whether next/previous controls should be offered.
func (e *Engine) CanTraverse() bool { return len(e.playlist) > 1 }

// Next selects the following item in the snapshot, wrapping at the end. A
// no-op when the snapshot has fewer than two items or the current item is no
// longer in it.
func (e *Engine) Next(ctx context.Context) {
	e.traverse(ctx, 1)
}

// Previous selects the preceding item in the snapshot, wrapping at the
// start. Inverse of [Engine.Next].
func (e *Engine) Previous(ctx context.Context) {
	e.traverse(ctx, -1)
}

func (e *Engine) traverse(ctx context.Context, step int) {
	if !e.CanTraverse() || e.current == nil {
		return
	}

	idx := -1
	for i, item := range e.playlist {
		if item.ID == e.current.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		// Current item fell out of the latest snapshot; leave selection alone.
		return
	}

	n := len(e.playlist)
	e.Select(ctx, e.playlist[(idx+step+n)%n])
}

// SeekStart brackets the beginning of a drag on the position control. While
// bracketed, media clock sync is suppressed so the drag is not overwritten.
func (e *Engine) SeekStart() { e.seeking = true }

// SeekTo moves the pending position during a drag, or commits immediately
// when no drag is in progress.
func (e *Engine) SeekTo(pos time.Duration) {
	if pos < 0 {
		pos = 0
	}
	if e.duration > 0 && pos > e.duration {
		pos = e.duration
	}
	e.position = pos
	if !e.seeking {
		e.media.Seek(pos)
	}
}

// SeekEnd closes the drag bracket and commits the dragged position to the
// media clock.
func (e *Engine) SeekEnd() {
	if !e.seeking {
		return
	}
	e.seeking = false
	e.media.Seek(e.position)
}

// SyncPosition refreshes position and duration from the media clock. Called
// periodically; suppressed while a seek drag is in progress.
func (e *Engine) SyncPosition() {
	if e.seeking || e.state == Idle {
		return
	}
	e.position = e.media.Position()
	if d := e.media.Duration(); d > 0 {
		e.duration = d
	}
}

// SetVolume adjusts output gain, clamped to 0.0 through 1.0. Independent of
// the muted flag.
func (e *Engine) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	e.volume = v
	e.media.SetVolume(v)
}

// ToggleMute flips the muted flag without touching the stored volume, so
// unmuting restores the prior level.
func (e *Engine) ToggleMute() {
	e.muted = !e.muted
	e.media.SetMuted(e.muted)
}

// State returns the current transport state.
func (e *Engine) State() State { return e.state }

// Current returns the selected item, nil when Idle.
func (e *Engine) Current() *models.Podcast { return e.current }

// Position returns the current playback position.
func (e *Engine) Position() time.Duration { return e.position }

// Duration returns the total length of the loaded item when known.
func (e *Engine) Duration() time.Duration { return e.duration }

// Volume returns the stored gain setting.
func (e *Engine) Volume() float64 { return e.volume }

// Muted reports whether output is muted.
func (e *Engine) Muted() bool { return e.muted }

// Seeking reports whether a drag on the position control is in progress.
func (e *Engine) Seeking() bool { return e.seeking }

// resolveMediaURL resolves an item's media locator against the portal base
// address when it is not already absolute.
func (e *Engine) resolveMediaURL(loc string) string {
	if strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
		return loc
	}
	if !strings.HasPrefix(loc, "/") {
		loc = "/" + loc
	}
	return e.baseURL + loc
}
