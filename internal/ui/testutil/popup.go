package testutil

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/crates/internal/ui/action"
	"github.com/llehouerou/crates/internal/ui/popup"
)

// PopupHarness drives a popup the way a parent controller does and keeps
// every command it returned.
type PopupHarness struct {
	popup popup.Popup
	cmds  []tea.Cmd
}

// NewPopupHarness wraps p and records its Init command.
func NewPopupHarness(p popup.Popup) *PopupHarness {
	h := &PopupHarness{popup: p}
	h.record(p.Init())
	return h
}

func (h *PopupHarness) record(cmd tea.Cmd) {
	if cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
}

func (h *PopupHarness) View() string {
	return h.popup.View()
}

// SendMsg updates the popup with msg.
func (h *PopupHarness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.popup, cmd = h.popup.Update(msg)
	h.record(cmd)
	return cmd
}

// SendKey sends the key named like its binding: "j", "enter", "ctrl+d".
func (h *PopupHarness) SendKey(key string) tea.Cmd {
	return h.SendMsg(Key(key))
}

func (h *PopupHarness) SendEnter() tea.Cmd  { return h.SendKey("enter") }
func (h *PopupHarness) SendEscape() tea.Cmd { return h.SendKey("esc") }
func (h *PopupHarness) SendUp() tea.Cmd     { return h.SendKey("up") }
func (h *PopupHarness) SendDown() tea.Cmd   { return h.SendKey("down") }

// LastCommand returns the most recent non-nil command, or nil.
func (h *PopupHarness) LastCommand() tea.Cmd {
	if len(h.cmds) == 0 {
		return nil
	}
	return h.cmds[len(h.cmds)-1]
}

// ViewContains reports whether the unstyled view contains substr.
func (h *PopupHarness) ViewContains(substr string) bool {
	return strings.Contains(StripANSI(h.View()), substr)
}

// ExecuteCmd runs cmd, treating nil as producing no message.
func ExecuteCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// LastAction runs the last command and unwraps the action.Msg it must
// produce, failing the test when source or action type differ.
func LastAction[A action.Action](t testing.TB, h *PopupHarness, source string) A {
	t.Helper()
	cmd := h.LastCommand()
	require.NotNil(t, cmd, "popup returned no command")
	msg, ok := ExecuteCmd(cmd).(action.Msg)
	require.True(t, ok, "command did not produce an action.Msg")
	require.Equal(t, source, msg.Source)
	a, ok := msg.Action.(A)
	require.True(t, ok, "unexpected action %T", msg.Action)
	return a
}
