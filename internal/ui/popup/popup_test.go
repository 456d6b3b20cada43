package popup

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestCompose_OverlaysCenteredBox(t *testing.T) {
	base := strings.Repeat(strings.Repeat(".", 20)+"\n", 5)
	base = strings.TrimSuffix(base, "\n")

	box := Center("XX", 20, 5)
	out := Compose(base, box, 20, 5)

	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	if got := ansi.Strip(lines[2]); got != strings.Repeat(".", 9)+"XX"+strings.Repeat(".", 9) {
		t.Errorf("middle line = %q", got)
	}
	if got := ansi.Strip(lines[0]); got != strings.Repeat(".", 20) {
		t.Errorf("first line changed: %q", got)
	}
}

func TestRenderBordered_FitsScreen(t *testing.T) {
	content := strings.Repeat("wide ", 40)
	out := RenderBordered(content, 60, 20, SizeMenu)

	for line := range strings.SplitSeq(out, "\n") {
		if w := ansi.StringWidth(line); w > 60 {
			t.Fatalf("line width %d exceeds screen", w)
		}
	}
}
