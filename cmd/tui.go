package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/podx/internal/shared"
	"github.com/desertthunder/podx/internal/tasks"
	"github.com/desertthunder/podx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.portal == nil || r.live == nil {
		return fmt.Errorf("%w: portal services not initialized", shared.ErrServiceUnavailable)
	}
	if r.session == nil {
		return fmt.Errorf("%w: session manager not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/podx-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	poller := tasks.NewPoller(tasks.PollerOpts{
		Lister: r.live,
		Logger: fileLogger,
	})

	model := ui.NewModel(ui.ModelOpts{
		Ctx:     ctx,
		Session: r.session,
		Portal:  r.portal,
		Live:    r.live,
		Engine:  r.engine,
		Poller:  poller,
	})
	p := tea.NewProgram(model)
	r.media.SetOnEnded(func() { p.Send(ui.MediaEndedMsg{}) })

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
