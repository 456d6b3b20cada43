package jobbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/crates/internal/library"
	"github.com/llehouerou/crates/internal/ui/testutil"
)

func TestHeight(t *testing.T) {
	assert.Equal(t, 0, Height(0))
	assert.Equal(t, 3, Height(1))
}

func TestScanJob(t *testing.T) {
	assert.Equal(t, Job{Label: "Reading tags", Current: 3, Total: 9},
		ScanJob(library.ScanProgress{Phase: "processing", Current: 3, Total: 9}))
	assert.Equal(t, "Cleaning up removed files", ScanJob(library.ScanProgress{Phase: "cleaning"}).Label)
	assert.Equal(t, "Scanning", ScanJob(library.ScanProgress{Phase: "other"}).Label)
}

func TestRender(t *testing.T) {
	assert.Empty(t, Render(nil, 80))

	out := Render([]Job{{Label: "Reading tags", Current: 1204, Total: 2408}}, 60)
	plain := testutil.StripANSI(out)
	lines := strings.Split(plain, "\n")

	assert.Len(t, lines, Height(1))
	assert.Contains(t, plain, "Reading tags")
	assert.Contains(t, plain, "1,204/2,408")
	assert.Contains(t, plain, "━")
	for _, l := range lines {
		assert.Equal(t, 60, lipgloss.Width(l))
	}
}

func TestRender_UnknownTotal(t *testing.T) {
	plain := testutil.StripANSI(Render([]Job{{Label: "Scanning library sources"}}, 40))

	assert.Contains(t, plain, "◦ Scanning library sources")
	assert.NotContains(t, plain, "[")
}
