package profile

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/crates/internal/errmsg"
	"github.com/llehouerou/crates/internal/library"
	"github.com/llehouerou/crates/internal/ui/action"
	"github.com/llehouerou/crates/internal/ui/adapter"
	"github.com/llehouerou/crates/internal/ui/menu"
)

// Profile kinds. They double as layout preference keys.
const (
	KindSongs         = "songs"
	KindAlbums        = "albums"
	KindArtists       = "artists"
	KindGenres        = "genres"
	KindPlaylists     = "playlists"
	KindFavorites     = "favorites"
	KindRecents       = "recents"
	KindAlbumSongs    = "album"
	KindArtistSongs   = "artist"
	KindGenreSongs    = "genre"
	KindPlaylistSongs = "playlist"
)

// Thumbnail size of grid cells, in terminal cells.
const (
	thumbCols = 12
	thumbRows = 6
)

// Args are the loader arguments of a profile. Scoped profiles such as the
// songs of one album use ID and Name.
type Args struct {
	ID   int64
	Name string
}

// Definition describes one profile: what it loads and how it reacts.
type Definition struct {
	Kind string
	// Title is shown in the header and the tab bar.
	Title func(Args) string
	Load  func(ctx context.Context, d Deps, a Args) ([]library.Item, error)
	// NewAdapter creates the adapter backing the view.
	NewAdapter  func(d Deps) *adapter.Adapter
	OnItemClick func(c *Controller, item library.Item, index int) tea.Cmd
	// Extra context menu actions offered by this profile.
	Extra []menu.Action
	// PlaylistScoped profiles show the songs of playlist Args.ID.
	PlaylistScoped bool
}

func toItems[T library.Item](values []T, err error) ([]library.Item, error) {
	if err != nil {
		return nil, err
	}
	items := make([]library.Item, len(values))
	for i, v := range values {
		items[i] = v
	}
	return items, nil
}

func plainAdapter(Deps) *adapter.Adapter {
	return adapter.New()
}

func headerAdapter(Deps) *adapter.Adapter {
	return adapter.New(adapter.WithOffset(1))
}

func artworkAdapter(d Deps) *adapter.Adapter {
	cache := adapter.NewArtworkCache(d.Catalogue, d.ArtworkDir, thumbCols, thumbRows, d.Log)
	return adapter.New(adapter.WithCache(cache))
}

func title(s string) func(Args) string {
	return func(Args) string { return s }
}

func argName(a Args) string {
	return a.Name
}

// playFrom starts playback of every song in the view at the clicked one.
func playFrom(c *Controller, _ library.Item, index int) tea.Cmd {
	var ids []int64
	start := 0
	for i, it := range c.adapter.Items() {
		if it.Kind() != library.KindSong {
			continue
		}
		if i == index {
			start = len(ids)
		}
		ids = append(ids, it.ItemID())
	}
	if len(ids) == 0 {
		return nil
	}
	pb := c.deps.Playback
	return c.run(errmsg.OpPlaybackStart, func(ctx context.Context) error {
		return pb.PlayAll(ctx, ids, start, false)
	})
}

// open returns a click handler opening the item's own profile of kind.
func open(kind string) func(*Controller, library.Item, int) tea.Cmd {
	return func(_ *Controller, item library.Item, _ int) tea.Cmd {
		return action.Cmd(Source, OpenProfile{
			Kind: kind,
			Args: Args{ID: item.ItemID(), Name: item.DisplayName()},
		})
	}
}

var (
	Songs = Definition{
		Kind:  KindSongs,
		Title: title("Songs"),
		Load: func(ctx context.Context, d Deps, _ Args) ([]library.Item, error) {
			return toItems[library.Song](d.Catalogue.Songs(ctx))
		},
		NewAdapter:  plainAdapter,
		OnItemClick: playFrom,
	}

	Albums = Definition{
		Kind:  KindAlbums,
		Title: title("Albums"),
		Load: func(ctx context.Context, d Deps, _ Args) ([]library.Item, error) {
			return toItems[library.Album](d.Catalogue.Albums(ctx))
		},
		NewAdapter:  artworkAdapter,
		OnItemClick: open(KindAlbumSongs),
	}

	Artists = Definition{
		Kind:  KindArtists,
		Title: title("Artists"),
		Load: func(ctx context.Context, d Deps, _ Args) ([]library.Item, error) {
			return toItems[library.Artist](d.Catalogue.Artists(ctx))
		},
		NewAdapter:  artworkAdapter,
		OnItemClick: open(KindArtistSongs),
	}

	Genres = Definition{
		Kind:  KindGenres,
		Title: title("Genres"),
		Load: func(ctx context.Context, d Deps, _ Args) ([]library.Item, error) {
			return toItems[library.Genre](d.Catalogue.Genres(ctx))
		},
		NewAdapter:  plainAdapter,
		OnItemClick: open(KindGenreSongs),
	}

	Playlists = Definition{
		Kind:  KindPlaylists,
		Title: title("Playlists"),
		Load: func(_ context.Context, d Deps, _ Args) ([]library.Item, error) {
			return toItems[library.Playlist](d.Playlists.List())
		},
		NewAdapter:  plainAdapter,
		OnItemClick: open(KindPlaylistSongs),
	}

	Favorites = Definition{
		Kind:  KindFavorites,
		Title: title("Favorites"),
		Load: func(ctx context.Context, d Deps, _ Args) ([]library.Item, error) {
			return toItems[library.Song](d.Favorites.Songs(ctx))
		},
		NewAdapter:  plainAdapter,
		OnItemClick: playFrom,
		Extra:       []menu.Action{menu.ActionRemoveFromFavorites},
	}

	Recents = Definition{
		Kind:  KindRecents,
		Title: title("Recently played"),
		Load: func(ctx context.Context, d Deps, _ Args) ([]library.Item, error) {
			return toItems[library.Song](d.Recents.Songs(ctx, d.RecentsLimit))
		},
		NewAdapter:  plainAdapter,
		OnItemClick: playFrom,
		Extra:       []menu.Action{menu.ActionRemoveFromRecent},
	}

	AlbumSongs = Definition{
		Kind:  KindAlbumSongs,
		Title: argName,
		Load: func(ctx context.Context, d Deps, a Args) ([]library.Item, error) {
			return toItems[library.Song](d.Catalogue.SongsForAlbum(ctx, a.ID))
		},
		NewAdapter:  headerAdapter,
		OnItemClick: playFrom,
	}

	ArtistSongs = Definition{
		Kind:  KindArtistSongs,
		Title: argName,
		Load: func(ctx context.Context, d Deps, a Args) ([]library.Item, error) {
			return toItems[library.Song](d.Catalogue.SongsForArtist(ctx, a.ID))
		},
		NewAdapter:  headerAdapter,
		OnItemClick: playFrom,
	}

	GenreSongs = Definition{
		Kind:  KindGenreSongs,
		Title: argName,
		Load: func(ctx context.Context, d Deps, a Args) ([]library.Item, error) {
			return toItems[library.Song](d.Catalogue.SongsForGenre(ctx, a.ID))
		},
		NewAdapter:  headerAdapter,
		OnItemClick: playFrom,
	}

	PlaylistSongs = Definition{
		Kind:  KindPlaylistSongs,
		Title: argName,
		Load: func(ctx context.Context, d Deps, a Args) ([]library.Item, error) {
			return toItems[library.Song](d.Playlists.Songs(ctx, a.ID))
		},
		NewAdapter:     headerAdapter,
		OnItemClick:    playFrom,
		Extra:          []menu.Action{menu.ActionRemoveFromPlaylist},
		PlaylistScoped: true,
	}
)

var definitions = map[string]Definition{
	KindSongs:         Songs,
	KindAlbums:        Albums,
	KindArtists:       Artists,
	KindGenres:        Genres,
	KindPlaylists:     Playlists,
	KindFavorites:     Favorites,
	KindRecents:       Recents,
	KindAlbumSongs:    AlbumSongs,
	KindArtistSongs:   ArtistSongs,
	KindGenreSongs:    GenreSongs,
	KindPlaylistSongs: PlaylistSongs,
}

// Lookup returns the definition of kind.
func Lookup(kind string) (Definition, bool) {
	d, ok := definitions[kind]
	return d, ok
}
