package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Gradient renders text in bold, blending from one color to the other
// across its grapheme clusters. Non-hex colors fall back to gray.
func Gradient(text string, from, to lipgloss.Color) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return lipgloss.NewStyle().Bold(true).Foreground(from).Render(text)
	}

	c1, c2 := hexColor(from), hexColor(to)
	last := float64(len(clusters) - 1)

	var b strings.Builder
	for i, cluster := range clusters {
		blended := c1.BlendHcl(c2, float64(i)/last).Clamped()
		b.WriteString(lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(blended.Hex())).
			Render(cluster))
	}
	return b.String()
}

func hexColor(c lipgloss.Color) colorful.Color {
	if col, err := colorful.Hex(string(c)); err == nil {
		return col
	}
	return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
}
