// Package action is the message protocol between popups, views and the app.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action is an outcome reported by a component. ActionType names it in logs.
type Action interface {
	ActionType() string
}

// Msg carries an Action together with the name of the component that
// produced it, so the app can route results of popups it opened.
type Msg struct {
	Source string // "profile", "menu", "confirm", ...
	Action Action
}

var _ tea.Msg = Msg{}

// Cmd returns a command emitting a from source.
func Cmd(source string, a Action) tea.Cmd {
	return func() tea.Msg {
		return Msg{Source: source, Action: a}
	}
}
