package app

import (
	"github.com/llehouerou/crates/internal/icons"
	"github.com/llehouerou/crates/internal/keymap"
	"github.com/llehouerou/crates/internal/ui/headerbar"
	"github.com/llehouerou/crates/internal/ui/jobbar"
	"github.com/llehouerou/crates/internal/ui/popup"
	"github.com/llehouerou/crates/internal/ui/render"
	"github.com/llehouerou/crates/internal/ui/styles"
)

var keyHints = "1-7 tabs · " +
	keymap.View.Hints(
		keymap.Hint{Action: keymap.ActionOpen, Label: "open"},
		keymap.Hint{Action: keymap.ActionContextMenu, Label: "menu"},
		keymap.Hint{Action: keymap.ActionRefresh, Label: "refresh"},
	) + " · " +
	keymap.Global.Hints(
		keymap.Hint{Action: keymap.ActionCycleLayout, Label: "layout"},
		keymap.Hint{Action: keymap.ActionScanLibrary, Label: "rescan"},
		keymap.Hint{Action: keymap.ActionHelp, Label: "help"},
		keymap.Hint{Action: keymap.ActionQuit, Label: "quit"},
	)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	base := m.renderTabs() + "\n" + m.Top().View() + "\n"
	if bar := jobbar.Render(m.jobs(), m.width); bar != "" {
		base += bar + "\n"
	}
	base += m.renderStatus()
	if m.overlay == nil {
		return base
	}
	box := popup.RenderBordered(m.overlay.View(), m.width, m.height, popup.SizeAuto)
	return popup.Compose(base, box, m.width, m.height)
}

func (m Model) renderTabs() string {
	tabs := make([]headerbar.Tab, 0, len(m.tabs))
	for i, tb := range m.tabs {
		tabs = append(tabs, headerbar.Tab{Key: string(rune('1' + i)), Name: tb.spec.label})
	}
	return headerbar.Render(tabs, m.active, m.nowPlaying(), m.width)
}

func (m Model) nowPlaying() string {
	if m.player == nil {
		return ""
	}
	song, ok := m.player.Current()
	if !ok {
		return ""
	}
	text := icons.Playing() + song.Title
	if song.Artist != "" {
		text += " · " + song.Artist
	}
	return styles.T().S().Playing.Render(render.Truncate(text, m.width/3)) + " "
}

func (m Model) renderStatus() string {
	s := styles.T().S()
	switch {
	case m.status == "":
		return s.Subtle.Render(render.Truncate(" "+keyHints, m.width))
	case m.statusErr:
		return s.Error.Render(render.Truncate(" "+m.status, m.width))
	default:
		return s.Success.Render(render.Truncate(" "+m.status, m.width))
	}
}
