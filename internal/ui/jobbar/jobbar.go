// Package jobbar shows the progress of background jobs, such as a library
// rescan, in a bordered strip under the views.
package jobbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/crates/internal/library"
	"github.com/llehouerou/crates/internal/ui/render"
	"github.com/llehouerou/crates/internal/ui/styles"
)

const (
	border   = 2
	minLabel = 10
	minBar   = 10
)

// Height is the number of rows taken by n jobs, 0 when there are none.
func Height(n int) int {
	if n == 0 {
		return 0
	}
	return n + border
}

// Job is one running job. Total is 0 while the amount of work is unknown.
type Job struct {
	Label   string
	Current int
	Total   int
}

var phaseLabels = map[string]string{
	"scanning":   "Scanning library sources",
	"processing": "Reading tags",
	"cleaning":   "Cleaning up removed files",
	"done":       "Finishing scan",
}

// ScanJob describes a library scan at progress p.
func ScanJob(p library.ScanProgress) Job {
	label, ok := phaseLabels[p.Phase]
	if !ok {
		label = "Scanning"
	}
	return Job{Label: label, Current: p.Current, Total: p.Total}
}

// Render draws jobs in a bordered box of the given width, or returns ""
// when there are no jobs.
func Render(jobs []Job, width int) string {
	if len(jobs) == 0 {
		return ""
	}
	inner := max(width-border, 0)
	lines := make([]string, len(jobs))
	for i, j := range jobs {
		lines[i] = line(j, inner)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Border).
		Width(inner).
		Render(strings.Join(lines, "\n"))
}

// line renders "◦ Label  [━━━━────] 42/100", or the label alone while the
// total is unknown.
func line(j Job, width int) string {
	s := styles.T().S()
	accent := lipgloss.NewStyle().Foreground(styles.T().Primary)
	bullet := accent.Render("◦") + " "

	if j.Total <= 0 {
		return bullet + s.Title.Render(render.Truncate(j.Label, max(width-2, minLabel)))
	}

	count := humanize.Comma(int64(j.Current)) + "/" + humanize.Comma(int64(j.Total))
	// bullet, two spaces, brackets and one space before the count
	fixed := 2 + 2 + 2 + 1 + lipgloss.Width(count)
	labelW := max(width-fixed-minBar, minLabel)
	barW := max(width-fixed-labelW, minBar)

	filled := barW * min(j.Current, j.Total) / j.Total
	bar := accent.Render(strings.Repeat("━", filled)) + s.Subtle.Render(strings.Repeat("─", barW-filled))

	return bullet + s.Title.Render(render.TruncateAndPad(j.Label, labelW)) +
		"  [" + bar + "] " + s.Muted.Render(count)
}
