// Package headerbar renders the single-line tab bar above the views.
package headerbar

import (
	"strings"

	"github.com/llehouerou/crates/internal/ui/render"
	"github.com/llehouerou/crates/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// Tab is one entry of the bar.
type Tab struct {
	Key  string // shortcut shown before the name
	Name string
}

// Render returns the header bar for the given width: tabs on the left with
// the active one highlighted, right aligned to the right edge.
func Render(tabs []Tab, active int, right string, width int) string {
	if width < 20 {
		return ""
	}
	t := styles.T()
	s := t.S()

	parts := make([]string, 0, len(tabs))
	for i, tb := range tabs {
		label := " " + tb.Key + " " + tb.Name + " "
		if i == active {
			parts = append(parts, styles.Gradient(label, t.Primary, t.Secondary))
		} else {
			parts = append(parts, s.Muted.Render(label))
		}
	}
	left := strings.Join(parts, s.Subtle.Render("│"))
	return render.Row(left, right, width)
}
