// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit        Action = "quit"
	ActionHelp        Action = "help"
	ActionNextTab     Action = "next_tab"
	ActionPrevTab     Action = "prev_tab"
	ActionSwitchTab   Action = "switch_tab" // 1-7, the key names the tab
	ActionBack        Action = "back"
	ActionCycleLayout Action = "cycle_layout"
	ActionScanLibrary Action = "scan_library"

	// View actions
	ActionOpen        Action = "open"
	ActionContextMenu Action = "context_menu"
	ActionRefresh     Action = "refresh"
	ActionLocateAlbum Action = "locate_album"
	ActionLocateSong  Action = "locate_song"

	// Navigation actions
	ActionMoveUp       Action = "move_up"
	ActionMoveDown     Action = "move_down"
	ActionMoveLeft     Action = "move_left"
	ActionMoveRight    Action = "move_right"
	ActionJumpStart    Action = "jump_start"
	ActionJumpEnd      Action = "jump_end"
	ActionPageUp       Action = "page_up"
	ActionPageDown     Action = "page_down"
	ActionHalfPageUp   Action = "half_page_up"
	ActionHalfPageDown Action = "half_page_down"

	// Popup actions
	ActionConfirm Action = "confirm"
	ActionCancel  Action = "cancel"
)
