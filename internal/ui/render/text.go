// Package render formats tag text for fixed-width terminal cells.
package render

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// sanitize drops control characters and invalid UTF-8 that broken tags
// carry, and turns non-breaking spaces into plain ones.
func sanitize(s string) string {
	clean := true
	for _, r := range s {
		if r == unicode.ReplacementChar || r == '\u00a0' || (r != '\t' && unicode.IsControl(r)) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\u00a0':
			return ' '
		case r == unicode.ReplacementChar, r != '\t' && unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.ToValidUTF8(s, ""))
}

// Truncate cuts s to maxWidth columns, ending with "..." when cut.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(sanitize(s), maxWidth, "...")
}

// TruncateAndPad returns s as exactly width columns.
func TruncateAndPad(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}

// TruncateAndPadEllipsis is TruncateAndPad with a one-column "…", used in
// grid cells where every column counts.
func TruncateAndPadEllipsis(s string, width int) string {
	s = runewidth.Truncate(sanitize(s), width, "…")
	return runewidth.FillRight(s, width)
}

// Row puts left and right at the two ends of a width-column line, with at
// least one space between them.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func Separator(width int) string {
	return strings.Repeat("─", width)
}

func EmptyLine(width int) string {
	return strings.Repeat(" ", width)
}

// Count formats n with thousands separators followed by noun, pluralized
// with a trailing "s" when n != 1: "1 song", "1,204 songs".
func Count(n int, noun string) string {
	s := humanize.Comma(int64(n)) + " " + noun
	if n != 1 {
		s += "s"
	}
	return s
}

// Center pads s on both sides to width display columns. Extra space goes
// to the right. Strings wider than width are truncated.
func Center(s string, width int) string {
	s = sanitize(s)
	w := uniseg.StringWidth(s)
	if w >= width {
		return Truncate(s, width)
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}
