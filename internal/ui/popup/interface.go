package popup

import tea "github.com/charmbracelet/bubbletea"

// Popup is a modal drawn above a collection view. Its View is the bare
// content; the host frames it with RenderBordered and Compose.
type Popup interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Popup, tea.Cmd)
	View() string
	SetSize(width, height int)
}
