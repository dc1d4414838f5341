package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Veraticus/credit-risk-console/internal/app"
	"github.com/Veraticus/credit-risk-console/internal/model"
	"github.com/Veraticus/credit-risk-console/internal/scoring"
	"github.com/Veraticus/credit-risk-console/internal/tui/components"
	"github.com/Veraticus/credit-risk-console/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Notification texts raised by the TUI itself.
const (
	MsgExampleLoaded      = "Example profile loaded"
	MsgExampleFailed      = "Could not load the example profile"
	MsgExampleUnavailable = "Example profiles are not available"
)

// Controller is the application state the TUI drives. *app.Coordinator
// implements it.
type Controller interface {
	OnChange(fn func(app.Snapshot))
	Snapshot() app.Snapshot
	Initialize(ctx context.Context)
	CheckReachability(ctx context.Context) app.Reachability
	SubmitProfile(ctx context.Context, profile model.ClientProfile) (scoring.Outcome, error)
	SwitchView(v app.View)
	ResetResult()
	Dismiss()
	Notify(kind app.NotificationKind, message string)
	RefreshDashboard(ctx context.Context)
}

// Model holds the main TUI state.
type Model struct {
	ctx       context.Context
	ctrl      Controller
	changes   chan struct{}
	theme     themes.Theme
	config    Config
	keymap    KeyMap
	snapshot  app.Snapshot
	form      components.FormModel
	result    components.ResultPanel
	dashboard components.DashboardPanel
	spinner   spinner.Model
	help      help.Model
	height    int
	width     int
	spinning  bool
	showHelp  bool
	quitting  bool
}

// newModel creates a model bound to ctrl. Coordinator changes are coalesced
// into a single pending signal so listeners never block on the event loop.
func newModel(ctx context.Context, ctrl Controller, cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(cfg.Theme.Primary)

	changes := make(chan struct{}, 1)
	ctrl.OnChange(func(app.Snapshot) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	m := Model{
		ctx:       ctx,
		ctrl:      ctrl,
		changes:   changes,
		config:    cfg,
		theme:     cfg.Theme,
		keymap:    DefaultKeyMap(),
		snapshot:  ctrl.Snapshot(),
		form:      components.NewFormModel(cfg.Theme),
		result:    components.NewResultPanel(cfg.Theme),
		dashboard: components.NewDashboardPanel(cfg.Theme),
		spinner:   s,
		help:      help.New(),
		width:     cfg.Width,
		height:    cfg.Height,
	}
	m.handleResize()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.initialize(),
		m.waitForChange(),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case stateChangedMsg:
		cmd := m.refreshSnapshot()
		return m, tea.Batch(cmd, m.waitForChange())

	case initializedMsg, refreshedMsg:
		cmd := m.refreshSnapshot()
		return m, cmd

	case submitDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, app.ErrBusy) {
			slog.Error("submit failed", "error", msg.err)
		}
		cmd := m.refreshSnapshot()
		return m, cmd

	case exampleLoadedMsg:
		if msg.err != nil {
			slog.Warn("failed to load example profile", "error", msg.err)
			m.ctrl.Notify(app.NotifyError, MsgExampleFailed)
		} else {
			m.form.SetProfile(msg.profile)
			m.ctrl.Notify(app.NotifyInfo, MsgExampleLoaded)
		}
		cmd := m.refreshSnapshot()
		return m, cmd

	case components.SubmitRequestMsg:
		return m, m.submit(msg.Profile)

	case components.InvalidProfileMsg:
		m.ctrl.Notify(app.NotifyError, msg.Err.Error())
		cmd := m.refreshSnapshot()
		return m, cmd

	case spinner.TickMsg:
		if !m.snapshot.Busy {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey routes a key press. Global keys win; the rest go to the active view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keymap.Dismiss):
		m.ctrl.Dismiss()
		cmd := m.refreshSnapshot()
		return m, cmd
	case key.Matches(msg, m.keymap.SwitchView):
		next := app.ViewDashboard
		if m.snapshot.View == app.ViewDashboard {
			next = app.ViewForm
		}
		m.ctrl.SwitchView(next)
		cmds := []tea.Cmd{m.refreshSnapshot()}
		if next == app.ViewDashboard {
			cmds = append(cmds, m.refreshDashboard())
		}
		return m, tea.Batch(cmds...)
	}

	if m.snapshot.View == app.ViewDashboard {
		if key.Matches(msg, m.keymap.Refresh) {
			return m, m.refreshDashboard()
		}
		return m, nil
	}

	// The form is read-only while a prediction is in flight.
	if m.snapshot.Busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Reset):
		m.form.Reset()
		m.ctrl.ResetResult()
		cmd := m.refreshSnapshot()
		return m, cmd
	case key.Matches(msg, m.keymap.Example):
		if m.config.Examples == nil {
			m.ctrl.Notify(app.NotifyInfo, MsgExampleUnavailable)
			cmd := m.refreshSnapshot()
			return m, cmd
		}
		return m, m.loadExample()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// refreshSnapshot takes the current coordinator state and starts the
// spinner when a prediction has just begun.
func (m *Model) refreshSnapshot() tea.Cmd {
	m.snapshot = m.ctrl.Snapshot()
	if m.snapshot.Busy && !m.spinning {
		m.spinning = true
		return m.spinner.Tick
	}
	return nil
}

// handleResize adjusts component sizes when terminal resizes.
func (m *Model) handleResize() {
	m.help.Width = m.width
	m.dashboard.Resize(m.width - 4)
	if m.width >= wideLayout {
		m.result.Resize(m.width/2 - 6)
	} else {
		m.result.Resize(m.width - 6)
	}
}
