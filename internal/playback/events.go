package playback

import "github.com/llehouerou/crates/internal/library"

// MetaReason says what changed in a MetaChanged event.
type MetaReason int

const (
	MetaQueue MetaReason = iota
	MetaTrack
	MetaPlaylist
	MetaFavorites
	MetaRecents
	MetaLibrary
)

func (r MetaReason) String() string {
	switch r {
	case MetaQueue:
		return "queue"
	case MetaTrack:
		return "track"
	case MetaPlaylist:
		return "playlist"
	case MetaFavorites:
		return "favorites"
	case MetaRecents:
		return "recents"
	case MetaLibrary:
		return "library"
	default:
		return "unknown"
	}
}

// MetaChanged is emitted whenever data shown by library views may be stale:
// queue edits, track changes, playlist and favorites edits, deletions.
type MetaChanged struct {
	Reason MetaReason
}

// TrackChange is emitted when the current song changes.
type TrackChange struct {
	Previous *library.Song
	Current  *library.Song
	Index    int
}
