// Package testutil holds helpers shared by the UI package tests.
package testutil

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// namedKeys maps the key names used by the key bindings to their key types.
var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"backspace": tea.KeyBackspace,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"pgup":      tea.KeyPgUp,
	"pgdown":    tea.KeyPgDown,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+d":    tea.KeyCtrlD,
	"ctrl+u":    tea.KeyCtrlU,
	"f5":        tea.KeyF5,
}

// Key builds the key message whose String() is name. Unknown names are
// sent as typed runes.
func Key(name string) tea.KeyMsg {
	if t, ok := namedKeys[name]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

// StripANSI removes escape sequences from s.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// Lines counts the lines of a rendered view, trailing padding included.
func Lines(view string) int {
	if view == "" {
		return 0
	}
	return strings.Count(view, "\n") + 1
}

// MaxWidth returns the display width of the widest line of view.
func MaxWidth(view string) int {
	widest := 0
	for _, line := range strings.Split(view, "\n") {
		widest = max(widest, ansi.StringWidth(line))
	}
	return widest
}
