// Package textinput is the one-line prompt used to name a new playlist.
package textinput

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/crates/internal/ui"
	"github.com/llehouerou/crates/internal/ui/popup"
	"github.com/llehouerou/crates/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// nameLimit matches what playlist tables display without truncation.
const nameLimit = 128

// Model wraps a bubbles text input. Enter on blank text keeps the prompt
// open and shows a hint instead of answering.
type Model struct {
	ui.Base
	title   string
	input   textinput.Model
	context any
	blank   bool
}

func New() Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = nameLimit
	return Model{input: ti}
}

// Start focuses the prompt with initial text selected for editing.
// context comes back untouched in the Result.
func (m *Model) Start(title, initial string, context any, width, height int) {
	m.title, m.context, m.blank = title, context, false
	m.input.SetValue(initial)
	m.input.CursorEnd()
	m.input.Focus()
	m.SetSize(width, height)
}

func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.input.Width = max(width-8, 10)
}

func (m *Model) Reset() {
	m.title, m.context, m.blank = "", nil, false
	m.input.Reset()
	m.input.Blur()
}

func (m Model) Value() string {
	return m.input.Value()
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			return m, m.answer(Result{Canceled: true})
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				m.blank = true
				return m, nil
			}
			return m, m.answer(Result{Text: text})
		}
	}
	m.blank = false
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) answer(r Result) tea.Cmd {
	r.Context = m.context
	return func() tea.Msg { return ActionMsg(r) }
}

func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	t := styles.T()
	s := t.S()
	hint := s.Subtle.Render("enter save · esc cancel")
	if m.blank {
		hint = s.Warning.Render("A name is required")
	}
	return s.Title.Foreground(t.Primary).Render(m.title) + "\n\n" + m.input.View() + "\n\n" + hint
}
