package player

import (
	"context"
	"time"

	"github.com/desertthunder/podx/internal/models"
)

// State enumerates the transport states of the engine.
type State int

const (
	// Idle means no item is loaded.
	Idle State = iota
	// Paused means an item is loaded but not playing.
	Paused
	// Playing means the loaded item is playing.
	Playing
	// Ended means the loaded item played to its natural end.
	Ended
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Paused:
		return "paused"
	case Playing:
		return "playing"
	case Ended:
		return "ended"
	default:
		return ""
	}
}

// Media is the single underlying playback resource. Exactly one Media is
// owned by an [Engine]; only the engine may attach a source or command
// play, pause or seek.
type Media interface {
	// Load attaches a new source and resets the media clock.
	Load(url string) error
	// Play starts or resumes playback. The platform may refuse (for example
	// when playback needs a prior user gesture); refusal is an error, not a
	// crash.
	Play() error
	// Pause suspends playback, keeping the clock position.
	Pause()
	// Seek moves the media clock to the given position.
	Seek(pos time.Duration)
	// SetVolume adjusts output gain in the range 0.0 to 1.0.
	SetVolume(v float64)
	// SetMuted silences output without changing the gain setting.
	SetMuted(muted bool)
	// Position reports the current media clock.
	Position() time.Duration
	// Duration reports the total length when known, zero otherwise.
	Duration() time.Duration
}

// Reporter receives a best-effort notification for each started play. It
// carries the full item so implementations can report upstream and record
// locally without a second lookup. Failures never affect playback state.
type Reporter interface {
	ReportPlay(ctx context.Context, item models.Podcast) error
}

// Authorizer gates telemetry: reports are only sent for authenticated
// sessions. Satisfied by session.Manager.
type Authorizer interface {
	Authenticated() bool
}
