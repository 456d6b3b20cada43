package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/crates/internal/ui/styles"
)

// SizeConfig bounds the frame of a popup. Zero means fit the content.
type SizeConfig struct {
	MaxWidth int
}

var (
	SizeMenu = SizeConfig{MaxWidth: 48} // context menus
	SizeAuto = SizeConfig{}             // confirm, rename, help, scan report
)

// frame is the border plus horizontal and vertical padding of PopupBox.
const (
	frameW = 6
	frameH = 4
)

// RenderBordered frames content and centers it on a screenW x screenH canvas.
func RenderBordered(content string, screenW, screenH int, size SizeConfig) string {
	w := widest(content) + frameW
	if size.MaxWidth > 0 {
		w = min(w, size.MaxWidth)
	}
	w = min(w, screenW-4)
	h := min(strings.Count(content, "\n")+1+frameH, screenH-4)

	return Center(styles.PopupBox(w, h).Render(content), screenW, screenH)
}

// Center pads box so it sits in the middle of the canvas.
func Center(box string, screenW, screenH int) string {
	lines := strings.Split(box, "\n")
	top := max((screenH-len(lines))/2, 0)
	left := strings.Repeat(" ", max((screenW-widest(box))/2, 0))

	var b strings.Builder
	for range top {
		b.WriteString(strings.Repeat(" ", screenW))
		b.WriteByte('\n')
	}
	for _, line := range lines {
		b.WriteString(left)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func widest(s string) int {
	w := 0
	for line := range strings.SplitSeq(s, "\n") {
		w = max(w, lipgloss.Width(line))
	}
	return w
}

// Compose paints the visible span of each overlay line over base. Blank
// overlay lines leave the collection view underneath untouched.
func Compose(base, overlay string, width, _ int) string {
	baseLines := strings.Split(base, "\n")

	for i, line := range strings.Split(overlay, "\n") {
		if i >= len(baseLines) {
			break
		}
		plain := ansi.Strip(line)
		if strings.TrimSpace(plain) == "" {
			continue
		}
		from := len(plain) - len(strings.TrimLeft(plain, " "))
		to := ansi.StringWidth(strings.TrimRight(plain, " "))
		baseLines[i] = splice(baseLines[i], ansi.Cut(line, from, to), from, to, width)
	}
	return strings.Join(baseLines, "\n")
}

// splice replaces columns [from, to) of line with span. Wide glyphs cut in
// half at either edge become spaces so the row keeps its width.
func splice(line, span string, from, to, width int) string {
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}

	prefix := ansi.Cut(line, 0, from)
	if w := ansi.StringWidth(prefix); w < from {
		prefix += strings.Repeat(" ", from-w)
	}
	out := prefix + span
	if to >= width {
		return out
	}

	suffix := ansi.Cut(line, to, width)
	want := width - to
	switch w := ansi.StringWidth(suffix); {
	case w > want:
		suffix = " " + ansi.Cut(suffix, w-want+1, w)
	case w < want:
		suffix += strings.Repeat(" ", want-w)
	}
	return out + suffix
}
