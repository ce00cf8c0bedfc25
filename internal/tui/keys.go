package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"stonks/internal/app"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	ForceQuit key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("up", "previous symbol")),
	Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("down", "next symbol")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// toEvent translates a terminal key press into a dashboard event.
func toEvent(msg tea.KeyMsg) app.Event {
	switch {
	case key.Matches(msg, keys.Up):
		return app.Event{Kind: app.EventUp}
	case key.Matches(msg, keys.Down):
		return app.Event{Kind: app.EventDown}
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && !msg.Alt:
		return app.Event{Kind: app.EventChar, Char: msg.Runes[0]}
	default:
		return app.Event{Kind: app.EventOther}
	}
}
