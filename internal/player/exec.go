package player

import (
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/podx/internal/shared"
)

// ExecMedia plays audio through an external player process (mpv by
// default). Pause and seek are implemented by stopping and respawning the
// process at the tracked position, with the clock kept client-side.
type ExecMedia struct {
	mu      sync.Mutex
	logger  *log.Logger
	command string

	url       string
	cmd       *exec.Cmd
	gen       int
	playing   bool
	base      time.Duration
	startedAt time.Time
	volume    float64
	muted     bool
	onEnded   func()
}

// NewExecMedia creates an ExecMedia using the given player command, or mpv
// when empty. The command must accept mpv-style flags.
func NewExecMedia(command string, logger *log.Logger) *ExecMedia {
	if command == "" {
		command = "mpv"
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ExecMedia{command: command, logger: logger, volume: 0.8}
}

// SetLogger redirects subprocess warnings to a different logger. Used when
// stderr is not a safe destination, such as under the TUI.
func (m *ExecMedia) SetLogger(logger *log.Logger) {
	if logger == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = logger
}

// SetOnEnded registers the natural end-of-media callback. Invoked only when
// the player process exits on its own, not when stopped by Pause or Load.
func (m *ExecMedia) SetOnEnded(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEnded = fn
}

// Load attaches a new source, stopping any running process.
func (m *ExecMedia) Load(url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked()
	m.url = url
	m.base = 0
	return nil
}

// Play spawns the player process at the current position.
func (m *ExecMedia) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.url == "" {
		return shared.ErrNoMedia
	}
	if m.playing {
		return nil
	}

	if _, err := exec.LookPath(m.command); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPlaybackBlocked, err)
	}

	args := []string{
		"--no-video",
		"--really-quiet",
		fmt.Sprintf("--start=%d", int(m.base.Seconds())),
		fmt.Sprintf("--volume=%d", int(m.volume*100)),
	}
	if m.muted {
		args = append(args, "--mute=yes")
	}
	args = append(args, m.url)

	cmd := exec.Command(m.command, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPlaybackBlocked, err)
	}

	m.cmd = cmd
	m.playing = true
	m.startedAt = time.Now()
	m.gen++

	gen := m.gen
	go func() {
		err := cmd.Wait()

		m.mu.Lock()
		// A newer generation means Pause/Load already stopped this process.
		if m.gen != gen || !m.playing {
			m.mu.Unlock()
			return
		}
		m.playing = false
		m.cmd = nil
		m.base = 0
		ended := m.onEnded
		logger := m.logger
		m.mu.Unlock()

		if err != nil {
			logger.Debugf("player process exited: %v", err)
		}
		if ended != nil {
			ended()
		}
	}()

	return nil
}

// Pause stops the player process, keeping the clock position.
func (m *ExecMedia) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

// Seek moves the clock; a playing process is restarted at the new position.
func (m *ExecMedia) Seek(pos time.Duration) {
	m.mu.Lock()
	wasPlaying := m.playing
	m.stopLocked()
	m.base = pos
	logger := m.logger
	m.mu.Unlock()

	if wasPlaying {
		if err := m.Play(); err != nil {
			logger.Warnf("failed to resume after seek: %v", err)
		}
	}
}

// SetVolume stores the gain for the next (re)spawn.
func (m *ExecMedia) SetVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = v
}

// SetMuted silences output; a playing process is restarted with the flag.
func (m *ExecMedia) SetMuted(muted bool) {
	m.mu.Lock()
	if m.muted == muted {
		m.mu.Unlock()
		return
	}
	m.muted = muted
	wasPlaying := m.playing
	pos := m.positionLocked()
	m.stopLocked()
	m.base = pos
	logger := m.logger
	m.mu.Unlock()

	if wasPlaying {
		if err := m.Play(); err != nil {
			logger.Warnf("failed to resume after mute toggle: %v", err)
		}
	}
}

// Position reports the client-side clock.
func (m *ExecMedia) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.positionLocked()
}

// Duration is unknown to the process player; the engine falls back to item
// metadata.
func (m *ExecMedia) Duration() time.Duration { return 0 }

func (m *ExecMedia) positionLocked() time.Duration {
	if m.playing {
		return m.base + time.Since(m.startedAt)
	}
	return m.base
}

// stopLocked kills the running process and freezes the clock. Callers hold
// the mutex.
func (m *ExecMedia) stopLocked() {
	if !m.playing {
		return
	}
	m.base = m.base + time.Since(m.startedAt)
	m.playing = false
	m.gen++
	if m.cmd != nil && m.cmd.Process != nil {
		if err := m.cmd.Process.Kill(); err != nil {
			m.logger.Debugf("failed to kill player process: %v", err)
		}
	}
	m.cmd = nil
}
