// Package styles holds the palette and the shared lipgloss styles of the
// collection views.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme is the color palette. Styles built from it are cached by S.
type Theme struct {
	Primary   lipgloss.Color // accent, now playing
	Secondary lipgloss.Color // gradient end

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgCursor lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	styles *Styles
}

// Styles are the rendered forms used by list rows, grid cells and popups.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Playing lipgloss.Style
	Cursor  lipgloss.Style

	// Header is the profile header row that scrolls with the content.
	Header lipgloss.Style
	// Cell and CellSelected frame one grid cell.
	Cell         lipgloss.Style
	CellSelected lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#e8a33d"),
	Secondary: lipgloss.Color("#c2410c"),

	FgBase:   lipgloss.Color("#d4d4d4"),
	FgMuted:  lipgloss.Color("#8a8a8a"),
	FgSubtle: lipgloss.Color("#5c5c5c"),

	BgCursor: lipgloss.Color("#2e2a24"),

	Border:      lipgloss.Color("#5c5c5c"),
	BorderFocus: lipgloss.Color("#e8a33d"),

	Success: lipgloss.Color("#4ade80"),
	Error:   lipgloss.Color("#f87171"),
	Warning: lipgloss.Color("#facc15"),
}

// T returns the active theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the styles derived from t.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.build()
	}
	return t.styles
}

func (t *Theme) build() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	cursor := lipgloss.NewStyle().Background(t.BgCursor).Foreground(t.FgBase)

	return &Styles{
		Base:    base,
		Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:  lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:   base.Bold(true),
		Playing: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Cursor:  cursor,

		Header: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Underline(true),
		Cell:         lipgloss.NewStyle().Padding(0, 1),
		CellSelected: lipgloss.NewStyle().Padding(0, 1).Background(t.BgCursor),

		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
	}
}
