// Package confirm is the yes/no dialog shown before destructive actions
// such as deleting songs from disk.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/crates/internal/keymap"
	"github.com/llehouerou/crates/internal/ui"
	"github.com/llehouerou/crates/internal/ui/popup"
	"github.com/llehouerou/crates/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// Model asks one question and answers with a Result carrying the caller's
// context back.
type Model struct {
	ui.Base
	title   string
	message string
	context any
	danger  bool
	active  bool
}

func New() Model {
	return Model{}
}

// Show opens the dialog. context is returned untouched in the Result.
func (m *Model) Show(title, message string, context any, width, height int) {
	*m = Model{Base: m.Base, title: title, message: message, context: context, active: true}
	m.SetSize(width, height)
}

// ShowDanger is Show with the title drawn in the error color.
func (m *Model) ShowDanger(title, message string, context any, width, height int) {
	m.Show(title, message, context, width, height)
	m.danger = true
}

// Reset closes the dialog without answering.
func (m *Model) Reset() {
	*m = Model{Base: m.Base}
}

func (m Model) Active() bool {
	return m.active
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.active {
		return m, nil
	}
	switch keymap.Dialog.Resolve(key.String()) {
	case keymap.ActionConfirm:
		return m, m.answer(true)
	case keymap.ActionCancel:
		return m, m.answer(false)
	}
	return m, nil
}

func (m *Model) answer(confirmed bool) tea.Cmd {
	m.active = false
	res := Result{Confirmed: confirmed, Context: m.context}
	return func() tea.Msg { return ActionMsg(res) }
}

func (m *Model) View() string {
	if !m.active || m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	t := styles.T()
	s := t.S()
	title := s.Title.Foreground(t.Primary)
	if m.danger {
		title = s.Title.Foreground(t.Error)
	}
	hint := keymap.Dialog.Hints(
		keymap.Hint{Action: keymap.ActionConfirm, Label: "confirm"},
		keymap.Hint{Action: keymap.ActionCancel, Label: "cancel"},
	)
	return title.Render(m.title) + "\n\n" + s.Base.Render(m.message) + "\n\n" + s.Subtle.Render(hint)
}
