// Package tui is the terminal front end: a Bubble Tea program that feeds key
// and tick events into the dashboard and renders the shared state.
package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"stonks/internal/app"
	"stonks/internal/util"
)

// TickInterval is how often a tick event is delivered.
const TickInterval = time.Second

type tickMsg time.Time

// stateChangedMsg signals that a background fetch committed new data.
type stateChangedMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// waitForChange blocks until the state publishes an update.
func waitForChange(sub <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-sub; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

// Model adapts an app.App to tea.Model.
type Model struct {
	app    *app.App
	sub    <-chan struct{}
	subID  int
	logger *slog.Logger

	width  int
	height int
	ready  bool
}

// NewModel subscribes to a's state changes. Call Close when the program
// exits.
func NewModel(a *app.App, logger *slog.Logger) *Model {
	if logger == nil {
		logger = util.DiscardLogger()
	}
	id, sub := a.Shared().Subscribe()
	return &Model{app: a, sub: sub, subID: id, logger: logger}
}

// Close drops the state subscription.
func (m *Model) Close() { m.app.Shared().Unsubscribe(m.subID) }

func (m *Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), waitForChange(m.sub))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.ForceQuit) || m.app.Dispatch(toEvent(msg)) {
			m.logger.Info("quit requested", "key", msg.String())
			return m, tea.Quit
		}
		return m, nil

	case tickMsg:
		m.app.Dispatch(app.Event{Kind: app.EventTick})
		return m, tickCmd()

	case stateChangedMsg:
		return m, waitForChange(m.sub)
	}
	return m, nil
}

func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	var out string
	m.app.Shared().With(func(st *app.State) {
		out = render(st, m.width, m.height)
	})
	return out
}

// Run starts the full-screen program and blocks until the user quits.
func Run(a *app.App, logger *slog.Logger) error {
	m := NewModel(a, logger)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
