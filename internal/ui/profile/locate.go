package profile

import (
	"github.com/llehouerou/crates/internal/library"
	"github.com/llehouerou/crates/internal/ui/adapter"
)

// LocateByAlbum returns the index of the first album with albumID, or 0
// when there is none or no adapter.
func LocateByAlbum(a *adapter.Adapter, albumID int64) int {
	return locate(a, library.KindAlbum, albumID)
}

// LocateBySong returns the index of the first song with songID, or 0 when
// there is none or no adapter.
func LocateBySong(a *adapter.Adapter, songID int64) int {
	return locate(a, library.KindSong, songID)
}

func locate(a *adapter.Adapter, kind library.Kind, id int64) int {
	if a == nil {
		return 0
	}
	for i, it := range a.Items() {
		if it.Kind() == kind && it.ItemID() == id {
			return i
		}
	}
	return 0
}
