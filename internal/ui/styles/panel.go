package styles

import "github.com/charmbracelet/lipgloss"

// PopupBox is the rounded frame drawn around menus and dialogs. Width and
// height include the border.
func PopupBox(width, height int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(T().BorderFocus).
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Padding(1, 2)
}
