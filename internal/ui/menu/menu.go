// Package menu provides the item context menu popup, including the
// add-to-playlist submenu.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/crates/internal/keymap"
	"github.com/llehouerou/crates/internal/library"
	"github.com/llehouerou/crates/internal/ui"
	"github.com/llehouerou/crates/internal/ui/popup"
	"github.com/llehouerou/crates/internal/ui/render"
	"github.com/llehouerou/crates/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

func titleStyle() lipgloss.Style {
	return styles.T().S().Title
}

func entryStyle() lipgloss.Style {
	return styles.T().S().Base
}

func cursorStyle() lipgloss.Style {
	return styles.T().S().Cursor
}

func hintStyle() lipgloss.Style {
	return styles.T().S().Subtle
}

type entry struct {
	action     Action
	playlistID int64
	label      string
}

// Model is a context menu over one library item.
type Model struct {
	ui.Base
	group     int
	title     string
	entries   []entry
	playlists []library.Playlist
	sub       bool // showing the playlist submenu
	cursor    int
	main      []entry // main entries while the submenu is shown
	mainPos   int
	active    bool
}

// New creates an inactive menu.
func New() Model {
	return Model{}
}

// Show opens the menu for group with the given actions. playlists populates
// the add-to-playlist submenu.
func (m *Model) Show(group int, title string, actions []Action, playlists []library.Playlist, width, height int) {
	m.group = group
	m.title = title
	m.playlists = playlists
	m.sub = false
	m.setEntries(mainEntries(actions))
	m.SetSize(width, height)
	m.active = true
}

func mainEntries(actions []Action) []entry {
	entries := make([]entry, len(actions))
	for i, a := range actions {
		entries[i] = entry{action: a, label: a.Label()}
	}
	return entries
}

func (m *Model) playlistEntries() []entry {
	entries := make([]entry, 0, len(m.playlists)+1)
	entries = append(entries, entry{action: ActionNewPlaylist, label: ActionNewPlaylist.Label()})
	for _, p := range m.playlists {
		entries = append(entries, entry{
			action:     ActionPlaylistSelected,
			playlistID: p.ID,
			label:      p.Name,
		})
	}
	return entries
}

func (m *Model) setEntries(entries []entry) {
	m.entries = entries
	m.cursor = 0
}

// Reset closes the menu.
func (m *Model) Reset() {
	*m = Model{Base: m.Base}
}

// Active returns whether the menu is shown.
func (m Model) Active() bool {
	return m.active
}

// Group returns the owner of the current menu.
func (m Model) Group() int {
	return m.group
}

// InSubmenu reports whether the playlist submenu is shown.
func (m Model) InSubmenu() bool {
	return m.sub
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if !m.active {
		return m, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch act := keymap.Menu.Resolve(keyMsg.String()); act {
	case keymap.ActionMoveUp:
		m.cursor = max(m.cursor-1, 0)
	case keymap.ActionMoveDown:
		m.cursor = min(m.cursor+1, max(len(m.entries)-1, 0))
	case keymap.ActionConfirm:
		return m, m.choose()
	case keymap.ActionBack, keymap.ActionCancel:
		if m.sub {
			m.sub = false
			m.entries, m.cursor = m.main, m.mainPos
			return m, nil
		}
		if act == keymap.ActionBack {
			return m, nil
		}
		m.active = false
		group := m.group
		return m, func() tea.Msg {
			return ActionMsg(Canceled{Group: group})
		}
	}
	return m, nil
}

func (m *Model) choose() tea.Cmd {
	if len(m.entries) == 0 {
		return nil
	}
	e := m.entries[m.cursor]
	if e.action == ActionAddToPlaylist && !m.sub {
		m.main, m.mainPos = m.entries, m.cursor
		m.sub = true
		m.setEntries(m.playlistEntries())
		return nil
	}

	m.active = false
	sel := Selected{Group: m.group, Action: e.action, PlaylistID: e.playlistID}
	return func() tea.Msg {
		return ActionMsg(sel)
	}
}

// View implements popup.Popup.
func (m *Model) View() string {
	if !m.active || m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	title := m.title
	if m.sub {
		title = ActionAddToPlaylist.Label()
	}
	width := max(popup.SizeMenu.MaxWidth-6, 10)

	lines := make([]string, len(m.entries))
	for i, e := range m.entries {
		line := "  " + render.TruncateAndPad(e.label, width-2)
		if i == m.cursor {
			lines[i] = cursorStyle().Render(line)
			continue
		}
		lines[i] = entryStyle().Render(line)
	}

	hint := "↑↓ navigate · enter select · esc close"
	if m.sub {
		hint = "↑↓ navigate · enter add · esc back"
	}

	return titleStyle().Render(render.Truncate(title, width)) + "\n\n" +
		strings.Join(lines, "\n") + "\n\n" +
		hintStyle().Render(hint)
}
