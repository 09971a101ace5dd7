package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/podx/internal/models"
	"github.com/desertthunder/podx/internal/player"
	"github.com/desertthunder/podx/internal/services"
	"github.com/desertthunder/podx/internal/session"
	"github.com/desertthunder/podx/internal/shared"
	"github.com/desertthunder/podx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	DashboardView ViewState = iota
	PodcastListView
	PlayerView
	StreamListView
)

const seekStep = 10 * time.Second

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	pollCancel context.CancelFunc
	view       ViewState
	session    *session.Manager
	portal     *services.PortalService
	live       *services.LiveService
	engine     *player.Engine
	poller     *tasks.Poller
	updates    chan tasks.StreamUpdate

	width  int
	height int

	podcastList   list.Model
	podcastsReady bool
	streamList    list.Model
	streamsReady  bool
	streams       []models.LiveStream
	joinedStream  int

	health    *models.Health
	healthErr error
	progress  progress.Model
	help      help.Model
	keys      keyMap
	status    string
	err       error
}

// ModelOpts carries the dependencies for NewModel.
type ModelOpts struct {
	Ctx     context.Context
	Session *session.Manager
	Portal  *services.PortalService
	Live    *services.LiveService
	Engine  *player.Engine
	Poller  *tasks.Poller
}

type sessionReadyMsg struct {
	sess session.Session
}

type healthFetchedMsg struct {
	health *models.Health
	err    error
}

type podcastsFetchedMsg struct {
	podcasts []models.Podcast
	err      error
}

type streamUpdateMsg tasks.StreamUpdate

type presenceChangedMsg struct {
	joined bool
	id     int
	err    error
}

type tickMsg time.Time

// MediaEndedMsg signals that the player process exited on its own. Sent from
// outside the update loop via Program.Send.
type MediaEndedMsg struct{}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(opts ModelOpts) *Model {
	ctx := opts.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	pollCtx, cancel := context.WithCancel(ctx)

	return &Model{
		ctx:        pollCtx,
		pollCancel: cancel,
		view:       DashboardView,
		session:    opts.Session,
		portal:     opts.Portal,
		live:       opts.Live,
		engine:     opts.Engine,
		poller:     opts.Poller,
		updates:    make(chan tasks.StreamUpdate, 16),
		progress:   progress.New(progress.WithDefaultGradient()),
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init restores the session, fetches initial data and starts the stream poller.
func (m *Model) Init() tea.Cmd {
	go m.poller.Run(m.ctx, m.updates)

	return tea.Batch(
		m.restoreSession(),
		m.fetchHealth(),
		m.fetchPodcasts(),
		m.waitForStreams(),
		tick(),
	)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.podcastsReady {
			m.podcastList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.streamsReady {
			m.streamList.SetSize(msg.Width-4, msg.Height-8)
		}
		m.progress.Width = msg.Width - 8
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case sessionReadyMsg:
		return m, nil

	case healthFetchedMsg:
		m.health = msg.health
		m.healthErr = msg.err
		return m, nil

	case podcastsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.engine.SetPlaylist(msg.podcasts)
		items := make([]list.Item, len(msg.podcasts))
		for i, p := range msg.podcasts {
			items[i] = podcastItem{podcast: p}
		}
		m.podcastList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.podcastList.Title = "Podcasts"
		m.podcastList.SetSize(m.width-4, m.height-8)
		m.podcastsReady = true
		return m, nil

	case streamUpdateMsg:
		if msg.Err == nil {
			m.streams = msg.Streams
			items := make([]list.Item, len(msg.Streams))
			for i, s := range msg.Streams {
				items[i] = streamItem{stream: s}
			}
			if !m.streamsReady {
				m.streamList = list.New(items, list.NewDefaultDelegate(), 0, 0)
				m.streamList.Title = "Live Streams"
				m.streamList.SetSize(m.width-4, m.height-8)
				m.streamsReady = true
			} else {
				m.streamList.SetItems(items)
			}
		}
		return m, m.waitForStreams()

	case presenceChangedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("stream %d: %v", msg.id, msg.err)
		} else if msg.joined {
			m.joinedStream = msg.id
			m.status = fmt.Sprintf("joined stream %d", msg.id)
		} else {
			m.joinedStream = 0
			m.status = fmt.Sprintf("left stream %d", msg.id)
		}
		m.poller.Invalidate()
		return m, func() tea.Msg {
			m.poller.Poll(m.ctx, m.updates)
			return nil
		}

	case MediaEndedMsg:
		m.engine.HandleEnded(m.ctx)
		return m, nil

	case tickMsg:
		m.engine.SyncPosition()
		return m, tick()
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch session.Guard(m.session.Current(), m.requirements()) {
	case session.Pending:
		return styles.help.Render("Checking session...")
	case session.RedirectLogin:
		return styles.warn.Render("Not signed in. Run 'podx auth login' first, then restart the TUI.\n\nPress q to quit.")
	}

	var body string
	switch m.view {
	case DashboardView:
		body = m.renderDashboard()
	case PodcastListView:
		body = m.renderPodcastList()
	case PlayerView:
		body = m.renderPlayer()
	case StreamListView:
		body = m.renderStreamList()
	}

	if m.status != "" {
		body += "\n" + styles.help.Render(m.status)
	}
	return body
}

// requirements returns what the active view demands of the session. Every
// view is portal content behind authentication; none require admin.
func (m *Model) requirements() session.Requirements {
	return session.Requirements{RequiresAuth: true}
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) {
		m.pollCancel()
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.tab) {
		m.view = (m.view + 1) % 4
		m.status = ""
		return m, nil
	}

	switch m.view {
	case PodcastListView:
		return m.handlePodcastKeys(msg)
	case PlayerView:
		return m.handlePlayerKeys(msg)
	case StreamListView:
		return m.handleStreamKeys(msg)
	}
	return m, nil
}

func (m *Model) handlePodcastKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.enter) {
		if selected := m.podcastList.SelectedItem(); selected != nil {
			if item, ok := selected.(podcastItem); ok {
				m.engine.Select(m.ctx, item.podcast)
				m.view = PlayerView
			}
		}
		return m, nil
	}

	if !m.podcastsReady {
		return m, nil
	}
	var cmd tea.Cmd
	m.podcastList, cmd = m.podcastList.Update(msg)
	return m, cmd
}

func (m *Model) handlePlayerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.toggle):
		m.engine.TogglePlayPause(m.ctx)
	case key.Matches(msg, m.keys.next):
		m.engine.Next(m.ctx)
	case key.Matches(msg, m.keys.previous):
		m.engine.Previous(m.ctx)
	case key.Matches(msg, m.keys.mute):
		m.engine.ToggleMute()
	case key.Matches(msg, m.keys.volUp):
		m.engine.SetVolume(m.engine.Volume() + 0.05)
	case key.Matches(msg, m.keys.volDown):
		m.engine.SetVolume(m.engine.Volume() - 0.05)
	case key.Matches(msg, m.keys.seekBack):
		m.seekBy(-seekStep)
	case key.Matches(msg, m.keys.seekFwd):
		m.seekBy(seekStep)
	}
	return m, nil
}

func (m *Model) handleStreamKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.join) {
		if selected := m.streamList.SelectedItem(); selected != nil {
			if item, ok := selected.(streamItem); ok && item.stream.IsLive() {
				return m, m.joinStream(item.stream.ID)
			}
		}
		return m, nil
	}
	if key.Matches(msg, m.keys.leave) && m.joinedStream != 0 {
		return m, m.leaveStream(m.joinedStream)
	}

	if !m.streamsReady {
		return m, nil
	}
	var cmd tea.Cmd
	m.streamList, cmd = m.streamList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PodcastListView:
		if m.podcastsReady {
			m.podcastList, cmd = m.podcastList.Update(msg)
		}
	case StreamListView:
		if m.streamsReady {
			m.streamList, cmd = m.streamList.Update(msg)
		}
	}
	return m, cmd
}

// seekBy performs a keyboard seek as a complete drag: bracket the position
// change so interim sync updates do not fight the new position.
func (m *Model) seekBy(delta time.Duration) {
	m.engine.SeekStart()
	m.engine.SeekTo(m.engine.Position() + delta)
	m.engine.SeekEnd()
}

func (m *Model) restoreSession() tea.Cmd {
	return func() tea.Msg {
		return sessionReadyMsg{sess: m.session.Restore()}
	}
}

func (m *Model) fetchHealth() tea.Cmd {
	return func() tea.Msg {
		health, err := m.portal.Health(m.ctx)
		return healthFetchedMsg{health: health, err: err}
	}
}

func (m *Model) fetchPodcasts() tea.Cmd {
	return func() tea.Msg {
		podcasts, err := m.portal.Podcasts(m.ctx)
		return podcastsFetchedMsg{podcasts: podcasts, err: err}
	}
}

func (m *Model) waitForStreams() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.updates
		if !ok {
			return nil
		}
		return streamUpdateMsg(update)
	}
}

func (m *Model) joinStream(id int) tea.Cmd {
	return func() tea.Msg {
		err := m.live.Join(m.ctx, id)
		return presenceChangedMsg{joined: true, id: id, err: err}
	}
}

func (m *Model) leaveStream(id int) tea.Cmd {
	return func() tea.Msg {
		err := m.live.Leave(m.ctx, id)
		return presenceChangedMsg{joined: false, id: id, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) renderDashboard() string {
	title := styles.title.Render("Podcast Portal")

	backend, database := "...", "..."
	switch {
	case m.healthErr != nil && errors.Is(m.healthErr, shared.ErrServiceUnavailable):
		backend, database = "Offline", "Unknown"
	case m.healthErr != nil:
		// Non-2xx responses carry the status code in the error text.
		backend, database = "Error: "+m.healthErr.Error(), "Unknown"
	case m.health != nil:
		backend = m.health.BackendLabel()
		database = m.health.DatabaseLabel()
	}
	backendStyle := styles.ok
	if backend != "Online" {
		backendStyle = styles.err
	}
	databaseStyle := styles.ok
	if database != "Connected" {
		databaseStyle = styles.err
	}

	sess := m.session.Current()
	who := "signed out"
	if sess.Authenticated && sess.User != nil {
		who = fmt.Sprintf("%s (%s)", sess.User.Username, sess.User.Role)
	}

	var errLine string
	if m.err != nil {
		errLine = "\n" + styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	}

	body := fmt.Sprintf(
		"%s\n\nBackend:  %s\nDatabase: %s\nSession:  %s\nStreams:  %d%s",
		title,
		backendStyle.Render(backend),
		databaseStyle.Render(database),
		who,
		len(m.streams),
		errLine,
	)

	return fmt.Sprintf("%s\n\n%s", body, m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m *Model) renderPodcastList() string {
	if !m.podcastsReady {
		return styles.help.Render("Loading podcasts...")
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.tab, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.podcastList.View(), helpView)
}

func (m *Model) renderPlayer() string {
	current := m.engine.Current()
	if current == nil {
		return styles.help.Render("Nothing selected. Pick an episode from the podcast list.")
	}

	title := styles.title.Render(current.Title)
	author := styles.help.Render(current.AuthorName())

	var state string
	switch m.engine.State() {
	case player.Playing:
		state = styles.ok.Render("▶ playing")
	case player.Paused:
		state = styles.warn.Render("⏸ paused")
	case player.Ended:
		state = styles.help.Render("■ ended")
	default:
		state = styles.help.Render("idle")
	}

	pos := int(m.engine.Position().Seconds())
	dur := int(m.engine.Duration().Seconds())
	timeline := fmt.Sprintf("%s / %s", shared.FormatDuration(pos), shared.FormatDuration(dur))

	var bar string
	if dur > 0 {
		bar = m.progress.ViewAs(float64(pos) / float64(dur))
	}

	volume := fmt.Sprintf("vol %d%%", int(m.engine.Volume()*100))
	if m.engine.Muted() {
		volume = "muted"
	}

	helpView := m.help.ShortHelpView([]key.Binding{
		m.keys.toggle, m.keys.next, m.keys.previous,
		m.keys.seekBack, m.keys.seekFwd, m.keys.mute, m.keys.quit,
	})

	return fmt.Sprintf("%s\n%s\n\n%s  %s  %s\n%s\n\n%s",
		title, author, state, timeline, volume, bar, helpView)
}

func (m *Model) renderStreamList() string {
	if !m.streamsReady {
		return styles.help.Render("Loading live streams...")
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.join, m.keys.leave, m.keys.tab, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.streamList.View(), helpView)
}
