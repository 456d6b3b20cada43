package keymap

// Binding contexts.
const (
	ContextGlobal = "global"
	ContextView   = "view"
	ContextMenu   = "menu"
	ContextDialog = "dialog"
)

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// All contains all key bindings for dispatch and help generation.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit application", ContextGlobal},
	{ActionHelp, []string{"?"}, "Show help", ContextGlobal},
	{ActionNextTab, []string{"tab"}, "Next tab", ContextGlobal},
	{ActionPrevTab, []string{"shift+tab"}, "Previous tab", ContextGlobal},
	{ActionSwitchTab, []string{"1", "2", "3", "4", "5", "6", "7"}, "Go to tab", ContextGlobal},
	{ActionBack, []string{"esc", "backspace"}, "Close detail view", ContextGlobal},
	{ActionCycleLayout, []string{"v"}, "Cycle list/grid/detailed layout", ContextGlobal},
	{ActionScanLibrary, []string{"S"}, "Rescan library sources", ContextGlobal},

	// View
	{ActionOpen, []string{"enter"}, "Open or play", ContextView},
	{ActionContextMenu, []string{"m", "."}, "Context menu", ContextView},
	{ActionRefresh, []string{"r", "f5"}, "Refresh", ContextView},
	{ActionLocateAlbum, []string{"o"}, "Go to playing album", ContextView},
	{ActionLocateSong, []string{"O"}, "Go to playing song", ContextView},
	{ActionMoveUp, []string{"k", "up"}, "Move up", ContextView},
	{ActionMoveDown, []string{"j", "down"}, "Move down", ContextView},
	{ActionMoveLeft, []string{"h", "left"}, "Move left (grid)", ContextView},
	{ActionMoveRight, []string{"l", "right"}, "Move right (grid)", ContextView},
	{ActionJumpStart, []string{"g", "home"}, "First item", ContextView},
	{ActionJumpEnd, []string{"G", "end"}, "Last item", ContextView},
	{ActionHalfPageDown, []string{"ctrl+d"}, "Half page down", ContextView},
	{ActionHalfPageUp, []string{"ctrl+u"}, "Half page up", ContextView},
	{ActionPageDown, []string{"pgdown"}, "Page down", ContextView},
	{ActionPageUp, []string{"pgup"}, "Page up", ContextView},

	// Context menu
	{ActionMoveUp, []string{"k", "up"}, "Previous entry", ContextMenu},
	{ActionMoveDown, []string{"j", "down"}, "Next entry", ContextMenu},
	{ActionConfirm, []string{"enter"}, "Run action", ContextMenu},
	{ActionBack, []string{"backspace", "h", "left"}, "Leave submenu", ContextMenu},
	{ActionCancel, []string{"esc"}, "Close menu or submenu", ContextMenu},

	// Confirmation dialogs
	{ActionConfirm, []string{"enter", "y", "Y"}, "Confirm", ContextDialog},
	{ActionCancel, []string{"esc", "n", "N"}, "Cancel", ContextDialog},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// Global resolves keys handled by the application shell.
var Global = NewResolver(ByContext(ContextGlobal))

// View resolves keys handled by a library view.
var View = NewResolver(ByContext(ContextView))

// Menu resolves keys inside the context menu.
var Menu = NewResolver(ByContext(ContextMenu))

// Dialog resolves keys inside confirmation dialogs.
var Dialog = NewResolver(ByContext(ContextDialog))
