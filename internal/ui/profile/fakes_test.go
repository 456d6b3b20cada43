package profile

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/crates/internal/library"
	"github.com/llehouerou/crates/internal/playback"
	"github.com/llehouerou/crates/internal/refresh"
)

var errBoom = errors.New("boom")

type fakeCatalogue struct {
	songs   []library.Song
	albums  []library.Album
	artists []library.Artist
	genres  []library.Genre
	fetches int
	err     error
	missing map[int64]bool // SongByID fails for these
}

func (f *fakeCatalogue) Songs(context.Context) ([]library.Song, error) {
	f.fetches++
	return f.songs, f.err
}

func (f *fakeCatalogue) Albums(context.Context) ([]library.Album, error) {
	f.fetches++
	return f.albums, f.err
}

func (f *fakeCatalogue) Artists(context.Context) ([]library.Artist, error) {
	f.fetches++
	return f.artists, f.err
}

func (f *fakeCatalogue) Genres(context.Context) ([]library.Genre, error) {
	f.fetches++
	return f.genres, f.err
}

func (f *fakeCatalogue) songsWhere(match func(library.Song) bool) []library.Song {
	var out []library.Song
	for _, s := range f.songs {
		if match(s) {
			out = append(out, s)
		}
	}
	return out
}

func (f *fakeCatalogue) SongsForAlbum(_ context.Context, id int64) ([]library.Song, error) {
	f.fetches++
	return f.songsWhere(func(s library.Song) bool { return s.AlbumID == id }), f.err
}

func (f *fakeCatalogue) SongsForArtist(_ context.Context, id int64) ([]library.Song, error) {
	f.fetches++
	return f.songsWhere(func(s library.Song) bool { return s.ArtistID == id }), f.err
}

func (f *fakeCatalogue) SongsForGenre(context.Context, int64) ([]library.Song, error) {
	f.fetches++
	return f.songs, f.err
}

func (f *fakeCatalogue) SongByID(_ context.Context, id int64) (*library.Song, error) {
	if f.missing[id] {
		return nil, library.ErrNotFound
	}
	for _, s := range f.songs {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, library.ErrNotFound
}

func (f *fakeCatalogue) CoverPath(context.Context, int64) (string, error) {
	return "", library.ErrNotFound
}

func (f *fakeCatalogue) ArtistCoverPath(context.Context, int64) (string, error) {
	return "", library.ErrNotFound
}

type fakePlaylists struct {
	playlists []library.Playlist
	songs     map[int64][]library.Song
	created   []string
	nextID    int64
}

func (f *fakePlaylists) List() ([]library.Playlist, error) { return f.playlists, nil }

func (f *fakePlaylists) Create(name string) (int64, error) {
	f.created = append(f.created, name)
	f.nextID++
	return f.nextID, nil
}

func (f *fakePlaylists) Songs(_ context.Context, id int64) ([]library.Song, error) {
	return f.songs[id], nil
}

type fakeFavorites struct {
	songs    []library.Song
	added    []int64
	removed  []int64
	failAdd  map[int64]bool
	onRemove func(id int64)
}

func (f *fakeFavorites) AddSongID(id int64, song, album, artist string) error {
	if f.failAdd[id] {
		return fmt.Errorf("song %d: %w", id, errBoom)
	}
	f.added = append(f.added, id)
	return nil
}

func (f *fakeFavorites) RemoveItem(id int64) error {
	if f.onRemove != nil {
		f.onRemove(id)
	}
	f.removed = append(f.removed, id)
	return errBoom // failures are swallowed
}

func (f *fakeFavorites) Songs(context.Context) ([]library.Song, error) { return f.songs, nil }

type fakeRecents struct {
	songs   []library.Song
	removed []int64
}

func (f *fakeRecents) RemoveItem(id int64) error {
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeRecents) Songs(context.Context, int) ([]library.Song, error) { return f.songs, nil }

type fakePrefs struct {
	simple, detailed map[string]bool
}

func (f *fakePrefs) IsSimpleLayout(kind string) bool   { return f.simple[kind] }
func (f *fakePrefs) IsDetailedLayout(kind string) bool { return f.detailed[kind] }

type playAllCall struct {
	ids     []int64
	start   int
	shuffle bool
}

type fakePlayback struct {
	lists map[string][]int64 // "album:1" -> ids

	playAll   []playAllCall
	next      [][]int64
	queued    [][]int64
	toList    map[int64][]int64
	removed   [][2]int64
	deleted   [][]int64
	ringtone  []int64
	meta      []playback.MetaReason
	albumID   int64
	audioID   int64
	deleteErr error

	onRemoveFromPlaylist func(songID, playlistID int64)
}

func newFakePlayback() *fakePlayback {
	return &fakePlayback{
		lists:   map[string][]int64{},
		toList:  map[int64][]int64{},
		albumID: -1,
		audioID: -1,
	}
}

func (f *fakePlayback) PlayAll(_ context.Context, ids []int64, start int, shuffle bool) error {
	f.playAll = append(f.playAll, playAllCall{ids, start, shuffle})
	return nil
}

func (f *fakePlayback) PlayNext(_ context.Context, ids []int64) error {
	f.next = append(f.next, ids)
	return nil
}

func (f *fakePlayback) AddToQueue(_ context.Context, ids []int64) error {
	f.queued = append(f.queued, ids)
	return nil
}

func (f *fakePlayback) AddToPlaylist(ids []int64, playlistID int64) error {
	f.toList[playlistID] = append(f.toList[playlistID], ids...)
	return nil
}

func (f *fakePlayback) RemoveFromPlaylist(songID, playlistID int64) error {
	if f.onRemoveFromPlaylist != nil {
		f.onRemoveFromPlaylist(songID, playlistID)
	}
	f.removed = append(f.removed, [2]int64{songID, playlistID})
	return nil
}

func (f *fakePlayback) SetRingtone(id int64) error {
	f.ringtone = append(f.ringtone, id)
	return nil
}

func (f *fakePlayback) Delete(_ context.Context, ids []int64) error {
	f.deleted = append(f.deleted, ids)
	return f.deleteErr
}

func (f *fakePlayback) CurrentAlbumID() int64 { return f.albumID }
func (f *fakePlayback) CurrentAudioID() int64 { return f.audioID }

func (f *fakePlayback) list(kind library.Kind, id int64) ([]int64, error) {
	ids, ok := f.lists[fmt.Sprintf("%s:%d", kind, id)]
	if !ok {
		return nil, fmt.Errorf("%s %d: %w", kind, id, library.ErrNotFound)
	}
	return ids, nil
}

func (f *fakePlayback) SongListForAlbum(_ context.Context, id int64) ([]int64, error) {
	return f.list(library.KindAlbum, id)
}

func (f *fakePlayback) SongListForArtist(_ context.Context, id int64) ([]int64, error) {
	return f.list(library.KindArtist, id)
}

func (f *fakePlayback) SongListForGenre(_ context.Context, id int64) ([]int64, error) {
	return f.list(library.KindGenre, id)
}

func (f *fakePlayback) SongListForPlaylist(_ context.Context, id int64) ([]int64, error) {
	return f.list(library.KindPlaylist, id)
}

func (f *fakePlayback) NotifyMetaChanged(reason playback.MetaReason) {
	f.meta = append(f.meta, reason)
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type env struct {
	cat   *fakeCatalogue
	pl    *fakePlaylists
	fav   *fakeFavorites
	rec   *fakeRecents
	pb    *fakePlayback
	prefs *fakePrefs
	clock *fakeClock
	deps  Deps
}

func newEnv() *env {
	e := &env{
		cat: &fakeCatalogue{
			songs: []library.Song{
				{ID: 11, Title: "Blue Train", AlbumID: 1, Album: "Blue Train", ArtistID: 1, Artist: "John Coltrane"},
				{ID: 12, Title: "Moment's Notice", AlbumID: 1, Album: "Blue Train", ArtistID: 1, Artist: "John Coltrane"},
				{ID: 21, Title: "So What", AlbumID: 2, Album: "Kind of Blue", ArtistID: 2, Artist: "Miles Davis"},
			},
			albums: []library.Album{
				{ID: 1, Name: "Blue Train", ArtistID: 1, Artist: "John Coltrane", SongCount: 2},
				{ID: 2, Name: "Kind of Blue", ArtistID: 2, Artist: "Miles Davis", SongCount: 1},
			},
			artists: []library.Artist{
				{ID: 1, Name: "John Coltrane", AlbumCount: 1, SongCount: 2},
			},
			genres: []library.Genre{{ID: 4, Name: "Jazz", SongCount: 3}},
		},
		pl:    &fakePlaylists{songs: map[int64][]library.Song{}, nextID: 100},
		fav:   &fakeFavorites{},
		rec:   &fakeRecents{},
		pb:    newFakePlayback(),
		prefs: &fakePrefs{simple: map[string]bool{}, detailed: map[string]bool{}},
		clock: &fakeClock{now: time.Unix(1_700_000_000, 0)},
	}
	e.deps = Deps{
		Catalogue: e.cat,
		Playlists: e.pl,
		Favorites: e.fav,
		Recents:   e.rec,
		Playback:  e.pb,
		Prefs:     e.prefs,
		Gate:      refresh.NewGate(refresh.DefaultCooldown, e.clock.Now),
	}
	return e
}

// controller creates a controller through the host lifecycle and delivers
// its first load.
func (e *env) controller(t *testing.T, def Definition, args Args) *Controller {
	t.Helper()
	if def.Kind != KindAlbums && def.Kind != KindArtists {
		e.prefs.simple[def.Kind] = true
	}
	c := New(def, args, e.deps)
	c.Attach()
	c.Create()
	c.CreateView(80, 24)
	deliver(t, c, c.ActivityCreated())
	return c
}

// deliver runs a loader command and feeds its result back.
func deliver(t *testing.T, c *Controller, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd, "expected a loader command")
	c.Update(cmd())
}

func itemIDs(c *Controller) []int64 {
	var ids []int64
	for _, it := range c.Adapter().Items() {
		ids = append(ids, it.ItemID())
	}
	return ids
}
