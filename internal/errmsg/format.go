// Package errmsg turns failed library operations into status line text.
package errmsg

import "fmt"

// Op names the operation that failed, phrased to follow "Failed to".
type Op string

const (
	OpLibraryDelete Op = "delete from library"
	OpLibraryScan   Op = "scan library"
	OpLibraryLoad   Op = "load library"

	OpPlaylistCreate   Op = "create playlist"
	OpPlaylistAddTrack Op = "add to playlist"
	OpPlaylistRemove   Op = "remove from playlist"

	OpQueueAdd      Op = "add to queue"
	OpQueueNext     Op = "play next"
	OpPlaybackStart Op = "start playback"
	OpRingtoneSet   Op = "set ringtone"

	OpFavoriteAdd    Op = "add to favorites"
	OpFavoriteRemove Op = "remove from favorites"
	OpRecentRemove   Op = "remove from recents"

	OpLayoutSave Op = "save layout"
	OpSongList   Op = "resolve songs"
)

// Format returns "Failed to <op>: <err>", or "" for a nil error.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith names what the operation was applied to, as in
// "Failed to add to favorites '3 songs': database is locked".
func FormatWith(op Op, what string, err error) string {
	if err == nil {
		return ""
	}
	if what == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, what, err)
}
