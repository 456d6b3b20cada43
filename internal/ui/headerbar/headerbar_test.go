package headerbar

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/crates/internal/ui/testutil"
)

var tabs = []Tab{{"1", "Songs"}, {"2", "Albums"}, {"3", "Artists"}}

func TestRender_ShowsEveryTab(t *testing.T) {
	out := testutil.StripANSI(Render(tabs, 1, "", 80))

	assert.Contains(t, out, "1 Songs")
	assert.Contains(t, out, "2 Albums")
	assert.Contains(t, out, "3 Artists")
}

func TestRender_RightAligned(t *testing.T) {
	out := Render(tabs, 0, "♪ Blue Train", 80)

	assert.Equal(t, 80, lipgloss.Width(out))
	assert.Contains(t, testutil.StripANSI(out), "♪ Blue Train")
}

func TestRender_TooNarrow(t *testing.T) {
	assert.Empty(t, Render(tabs, 0, "", 10))
}
