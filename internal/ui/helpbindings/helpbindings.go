// Package helpbindings is the ? popup listing every key binding, grouped by
// where it applies.
package helpbindings

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/crates/internal/keymap"
	"github.com/llehouerou/crates/internal/ui"
	"github.com/llehouerou/crates/internal/ui/popup"
	"github.com/llehouerou/crates/internal/ui/render"
	"github.com/llehouerou/crates/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// sections lists the binding contexts in display order with their headings.
var sections = []struct {
	context string
	label   string
}{
	{keymap.ContextGlobal, "Global"},
	{keymap.ContextView, "Library Views"},
	{keymap.ContextMenu, "Context Menu"},
	{keymap.ContextDialog, "Confirmation"},
}

// chrome is the height taken by the title, the footer and the popup frame.
const chrome = 10

// Model scrolls through pre-rendered binding lines.
type Model struct {
	ui.Base
	contexts []string
	lines    []string
	width    int // widest line, so the frame does not jump while scrolling
	offset   int
}

// New shows every context.
func New() Model {
	var m Model
	all := make([]string, 0, len(sections))
	for _, s := range sections {
		all = append(all, s.context)
	}
	m.SetContexts(all)
	return m
}

// SetContexts restricts the popup to the given contexts. Sections keep
// their display order whatever the order of contexts.
func (m *Model) SetContexts(contexts []string) {
	m.contexts = contexts
	m.offset = 0
	m.lines = m.lines[:0]

	var bindings []keymap.Binding
	for _, s := range sections {
		if slices.Contains(contexts, s.context) {
			bindings = append(bindings, keymap.ByContext(s.context)...)
		}
	}
	keyW := 0
	for _, b := range bindings {
		keyW = max(keyW, len(keysText(b)))
	}

	t := styles.T()
	s := t.S()
	heading := s.Title.Foreground(t.Secondary)
	key := s.Title.Foreground(t.Primary)
	for _, sec := range sections {
		if !slices.Contains(contexts, sec.context) {
			continue
		}
		if len(m.lines) > 0 {
			m.lines = append(m.lines, "")
		}
		m.lines = append(m.lines,
			heading.Render(sec.label),
			s.Subtle.Render(render.Separator(keyW+16)))
		for _, b := range keymap.ByContext(sec.context) {
			m.lines = append(m.lines,
				key.Render(render.TruncateAndPad(keysText(b), keyW))+"  "+s.Base.Render(b.Description))
		}
	}

	m.width = 0
	for _, l := range m.lines {
		m.width = max(m.width, lipgloss.Width(l))
	}
}

func keysText(b keymap.Binding) string {
	return strings.Join(b.Keys, ", ")
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	key := keyMsg.String()
	switch keymap.Global.Resolve(key) { //nolint:exhaustive // only closing keys
	case keymap.ActionHelp, keymap.ActionBack, keymap.ActionQuit:
		return m, func() tea.Msg { return ActionMsg(Close{}) }
	}
	page := m.page()
	switch keymap.View.Resolve(key) { //nolint:exhaustive // only scrolling
	case keymap.ActionMoveDown:
		m.scroll(1)
	case keymap.ActionMoveUp:
		m.scroll(-1)
	case keymap.ActionPageDown, keymap.ActionHalfPageDown:
		m.scroll(page)
	case keymap.ActionPageUp, keymap.ActionHalfPageUp:
		m.scroll(-page)
	case keymap.ActionJumpStart:
		m.offset = 0
	case keymap.ActionJumpEnd:
		m.scroll(len(m.lines))
	}
	return m, nil
}

func (m *Model) scroll(delta int) {
	m.offset = min(max(m.offset+delta, 0), max(len(m.lines)-m.page(), 0))
}

func (m Model) page() int {
	return max(m.Height()-chrome, 5)
}

func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	end := min(m.offset+m.page(), len(m.lines))
	visible := make([]string, 0, end-m.offset)
	for _, l := range m.lines[m.offset:end] {
		visible = append(visible, l+strings.Repeat(" ", max(m.width-lipgloss.Width(l), 0)))
	}

	footer := "?/esc close"
	if len(m.lines) > m.page() {
		footer = "j/k scroll · " + footer
	}
	s := styles.T().S()
	return s.Title.Render("Help") + "\n\n" + strings.Join(visible, "\n") + "\n\n" + s.Subtle.Render(footer)
}
