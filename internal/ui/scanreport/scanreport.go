// Package scanreport is the popup summarizing a finished library rescan.
package scanreport

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/crates/internal/keymap"
	"github.com/llehouerou/crates/internal/library"
	"github.com/llehouerou/crates/internal/ui"
	"github.com/llehouerou/crates/internal/ui/action"
	"github.com/llehouerou/crates/internal/ui/popup"
	"github.com/llehouerou/crates/internal/ui/render"
	"github.com/llehouerou/crates/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// Close asks the host to dismiss the report.
type Close struct{}

func (Close) ActionType() string { return "scanreport.close" }

// ActionMsg creates an action.Msg for a scanreport action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "scanreport", Action: a}
}

// Model shows the stats of one scan over Sources.
type Model struct {
	ui.Base
	Sources []string
	Stats   *library.ScanStats
}

// New creates a report for a scan of sources.
func New(sources []string, stats *library.ScanStats) Model {
	return Model{Sources: sources, Stats: stats}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if keymap.Dialog.Resolve(key.String()) != "" || keymap.Global.Resolve(key.String()) == keymap.ActionQuit {
		return m, func() tea.Msg { return ActionMsg(Close{}) }
	}
	return m, nil
}

// View lists the scanned sources, what changed and the resulting library
// size. Sections with nothing to report are left out.
func (m *Model) View() string {
	if m.Stats == nil {
		return ""
	}
	t := styles.T()
	s := t.S()
	st := m.Stats

	lines := []string{s.Title.Render("Library Scan Complete"), ""}
	for _, src := range m.Sources {
		lines = append(lines, s.Title.Render(src))
	}
	if len(m.Sources) > 0 {
		lines = append(lines, "")
	}

	changes := []struct {
		label string
		n     int
		color lipgloss.Color
	}{
		{"Added", st.Added, t.Success},
		{"Removed", st.Removed, t.Error},
		{"Updated", st.Updated, t.Warning},
	}
	changed := false
	for _, c := range changes {
		if c.n > 0 {
			changed = true
			lines = append(lines, "  "+lipgloss.NewStyle().Foreground(c.color).Render(c.label+": "+render.Count(c.n, "song")))
		}
	}
	if !changed {
		lines = append(lines, "  "+s.Subtle.Render("No changes"))
	}
	if st.Skipped > 0 {
		lines = append(lines, "  "+s.Muted.Render("Unchanged: "+render.Count(st.Skipped, "file")))
	}

	total := st.Added + st.Updated + st.Skipped
	lines = append(lines, "",
		render.Separator(40),
		s.Title.Render("Library: "+render.Count(total, "song")),
		"",
		s.Subtle.Render("Press Enter or Escape to close"))
	return strings.Join(lines, "\n")
}
