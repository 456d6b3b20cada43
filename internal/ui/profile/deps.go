package profile

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/crates/internal/library"
	"github.com/llehouerou/crates/internal/playback"
	"github.com/llehouerou/crates/internal/playlists"
	"github.com/llehouerou/crates/internal/refresh"
)

// Catalogue reads the music library.
type Catalogue interface {
	Songs(ctx context.Context) ([]library.Song, error)
	Albums(ctx context.Context) ([]library.Album, error)
	Artists(ctx context.Context) ([]library.Artist, error)
	Genres(ctx context.Context) ([]library.Genre, error)
	SongsForAlbum(ctx context.Context, albumID int64) ([]library.Song, error)
	SongsForArtist(ctx context.Context, artistID int64) ([]library.Song, error)
	SongsForGenre(ctx context.Context, genreID int64) ([]library.Song, error)
	SongByID(ctx context.Context, id int64) (*library.Song, error)
	CoverPath(ctx context.Context, albumID int64) (string, error)
	ArtistCoverPath(ctx context.Context, artistID int64) (string, error)
}

// PlaylistStore lists and creates playlists.
type PlaylistStore interface {
	List() ([]library.Playlist, error)
	Create(name string) (int64, error)
	Songs(ctx context.Context, playlistID int64) ([]library.Song, error)
}

// FavoritesStore holds favorite songs.
type FavoritesStore interface {
	AddSongID(id int64, song, album, artist string) error
	RemoveItem(id int64) error
	Songs(ctx context.Context) ([]library.Song, error)
}

// RecentStore holds recently played songs.
type RecentStore interface {
	RemoveItem(id int64) error
	Songs(ctx context.Context, limit int) ([]library.Song, error)
}

// PreferenceStore selects the presentation of each view kind.
type PreferenceStore interface {
	IsSimpleLayout(kind string) bool
	IsDetailedLayout(kind string) bool
}

// Playback is the play queue facade.
type Playback interface {
	PlayAll(ctx context.Context, ids []int64, start int, shuffle bool) error
	PlayNext(ctx context.Context, ids []int64) error
	AddToQueue(ctx context.Context, ids []int64) error
	AddToPlaylist(ids []int64, playlistID int64) error
	RemoveFromPlaylist(songID, playlistID int64) error
	SetRingtone(id int64) error
	Delete(ctx context.Context, ids []int64) error
	CurrentAlbumID() int64
	CurrentAudioID() int64
	SongListForAlbum(ctx context.Context, id int64) ([]int64, error)
	SongListForArtist(ctx context.Context, id int64) ([]int64, error)
	SongListForGenre(ctx context.Context, id int64) ([]int64, error)
	SongListForPlaylist(ctx context.Context, id int64) ([]int64, error)
	NotifyMetaChanged(reason playback.MetaReason)
}

var (
	_ Catalogue      = (*library.Library)(nil)
	_ PlaylistStore  = (*playlists.Playlists)(nil)
	_ FavoritesStore = (*playlists.Favorites)(nil)
	_ RecentStore    = (*playlists.Recents)(nil)
	_ Playback       = (*playback.Service)(nil)
)

// Deps are the collaborators shared by every controller.
type Deps struct {
	Catalogue Catalogue
	Playlists PlaylistStore
	Favorites FavoritesStore
	Recents   RecentStore
	Playback  Playback
	Prefs     PreferenceStore

	// Gate is shared by all controllers so one refresh suppresses the
	// others for the cooldown window.
	Gate *refresh.Gate

	// ArtworkDir holds the disk tier of artwork caches. Empty disables it.
	ArtworkDir   string
	LoadTimeout  time.Duration
	RecentsLimit int
	Log          *logrus.Entry
}
