package menu

import (
	"github.com/llehouerou/crates/internal/ui/action"
)

// Source is the action.Msg source of menu results.
const Source = "menu"

// Action is one context menu entry.
type Action int

const (
	ActionPlaySelection Action = iota
	ActionPlayNext
	ActionAddToQueue
	ActionAddToFavorites
	ActionRemoveFromFavorites
	ActionAddToPlaylist
	ActionUseAsRingtone
	ActionMoreByArtist
	ActionDelete
	ActionRemoveFromPlaylist
	ActionRemoveFromRecent

	// Entries of the add-to-playlist submenu.
	ActionNewPlaylist
	ActionPlaylistSelected
)

// Label returns the menu text of a.
func (a Action) Label() string {
	switch a {
	case ActionPlaySelection:
		return "Play"
	case ActionPlayNext:
		return "Play next"
	case ActionAddToQueue:
		return "Add to queue"
	case ActionAddToFavorites:
		return "Add to favorites"
	case ActionRemoveFromFavorites:
		return "Remove from favorites"
	case ActionAddToPlaylist:
		return "Add to playlist"
	case ActionUseAsRingtone:
		return "Use as ringtone"
	case ActionMoreByArtist:
		return "More by artist"
	case ActionDelete:
		return "Delete"
	case ActionRemoveFromPlaylist:
		return "Remove from playlist"
	case ActionRemoveFromRecent:
		return "Remove from recent"
	case ActionNewPlaylist:
		return "New playlist…"
	case ActionPlaylistSelected:
		return "Playlist"
	}
	return "Unknown"
}

// Selected is emitted when an entry is chosen. Group identifies the menu
// owner so unrelated owners can ignore it. PlaylistID is set for
// ActionPlaylistSelected only.
type Selected struct {
	Group      int
	Action     Action
	PlaylistID int64
}

// ActionType implements action.Action.
func (Selected) ActionType() string { return "menu.selected" }

// Canceled is emitted when the menu is dismissed.
type Canceled struct {
	Group int
}

// ActionType implements action.Action.
func (Canceled) ActionType() string { return "menu.canceled" }

// ActionMsg creates an action.Msg for a menu action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: Source, Action: a}
}
