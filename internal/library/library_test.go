package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/crates/internal/state"
)

func setupTestLibrary(t *testing.T) *Library {
	t.Helper()
	db, err := state.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db)
}

func addTrack(t *testing.T, lib *Library, path, artist, album, title string, track int, genre string) int64 {
	t.Helper()
	id, err := lib.AddTrack(context.Background(), &TrackInfo{
		Path:        path,
		Title:       title,
		Artist:      artist,
		AlbumArtist: artist,
		Album:       album,
		Genre:       genre,
		Track:       track,
		Year:        2001,
	})
	require.NoError(t, err)
	return id
}

func TestItem_KeysAreUniqueAcrossKinds(t *testing.T) {
	items := []Item{Song{ID: 1}, Album{ID: 1}, Artist{ID: 1}, Genre{ID: 1}, Playlist{ID: 1}}
	seen := make(map[string]bool)
	for _, it := range items {
		assert.False(t, seen[it.Key()], it.Key())
		seen[it.Key()] = true
	}
	assert.Equal(t, "album:1", Album{ID: 1}.Key())
}

func TestSameItem(t *testing.T) {
	assert.True(t, SameItem(Album{ID: 2, Name: "a"}, Album{ID: 2, Name: "b"}))
	assert.False(t, SameItem(Album{ID: 2}, Artist{ID: 2}))
	assert.False(t, SameItem(nil, Song{ID: 1}))
	assert.True(t, SameItem(nil, nil))
}

type kindRecorder struct{ kinds []Kind }

func (r *kindRecorder) VisitSong(Song)         { r.kinds = append(r.kinds, KindSong) }
func (r *kindRecorder) VisitAlbum(Album)       { r.kinds = append(r.kinds, KindAlbum) }
func (r *kindRecorder) VisitArtist(Artist)     { r.kinds = append(r.kinds, KindArtist) }
func (r *kindRecorder) VisitGenre(Genre)       { r.kinds = append(r.kinds, KindGenre) }
func (r *kindRecorder) VisitPlaylist(Playlist) { r.kinds = append(r.kinds, KindPlaylist) }

func TestItem_AcceptDispatchesToVariant(t *testing.T) {
	r := &kindRecorder{}
	for _, it := range []Item{Playlist{}, Song{}, Genre{}} {
		it.Accept(r)
	}
	assert.Equal(t, []Kind{KindPlaylist, KindSong, KindGenre}, r.kinds)
}

func TestLibrary_AlbumSongsInTrackOrder(t *testing.T) {
	lib := setupTestLibrary(t)
	ctx := context.Background()

	addTrack(t, lib, "/m/a/02.mp3", "Artist", "Album", "Second", 2, "Rock")
	addTrack(t, lib, "/m/a/01.mp3", "Artist", "Album", "First", 1, "Rock")

	albums, err := lib.Albums(ctx)
	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.Equal(t, "Album", albums[0].Name)
	assert.Equal(t, "Artist", albums[0].Artist)
	assert.Equal(t, 2, albums[0].SongCount)
	assert.Equal(t, 2001, albums[0].Year)

	songs, err := lib.SongsForAlbum(ctx, albums[0].ID)
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, "First", songs[0].Title)
	assert.Equal(t, "Second", songs[1].Title)
}

func TestLibrary_ArtistsAndGenres(t *testing.T) {
	lib := setupTestLibrary(t)
	ctx := context.Background()

	addTrack(t, lib, "/m/1.mp3", "Beta", "B1", "x", 1, "Jazz")
	addTrack(t, lib, "/m/2.mp3", "Alpha", "A1", "y", 1, "Jazz")
	addTrack(t, lib, "/m/3.mp3", "Alpha", "A2", "z", 1, "")

	artists, err := lib.Artists(ctx)
	require.NoError(t, err)
	require.Len(t, artists, 2)
	assert.Equal(t, "Alpha", artists[0].Name)
	assert.Equal(t, 2, artists[0].AlbumCount)

	genres, err := lib.Genres(ctx)
	require.NoError(t, err)
	require.Len(t, genres, 1)
	assert.Equal(t, 2, genres[0].SongCount)

	ids, err := lib.SongIDsForGenre(ctx, genres[0].ID)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	alpha, err := lib.ArtistByName(ctx, "Alpha")
	require.NoError(t, err)
	ids, err = lib.SongIDsForArtist(ctx, alpha.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	_, err = lib.ArtistByName(ctx, "Nobody")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLibrary_SongsByIDsKeepsOrder(t *testing.T) {
	lib := setupTestLibrary(t)
	ctx := context.Background()

	a := addTrack(t, lib, "/m/1.mp3", "X", "Y", "a", 1, "")
	b := addTrack(t, lib, "/m/2.mp3", "X", "Y", "b", 2, "")

	songs, err := lib.SongsByIDs(ctx, []int64{b, 999, a})
	require.NoError(t, err)
	assert.Equal(t, []int64{b, a}, SongIDs(songs))

	_, err = lib.SongByID(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLibrary_DeleteSongsPrunesOrphans(t *testing.T) {
	lib := setupTestLibrary(t)
	ctx := context.Background()

	id := addTrack(t, lib, "/m/1.mp3", "Solo", "Only", "t", 1, "Ambient")
	addTrack(t, lib, "/m/2.mp3", "Other", "Kept", "t", 1, "")

	require.NoError(t, lib.DeleteSongs(ctx, []int64{id}))

	albums, err := lib.Albums(ctx)
	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.Equal(t, "Kept", albums[0].Name)

	genres, err := lib.Genres(ctx)
	require.NoError(t, err)
	assert.Empty(t, genres)

	_, err = lib.ArtistByName(ctx, "Solo")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLibrary_CoverPath(t *testing.T) {
	lib := setupTestLibrary(t)
	ctx := context.Background()

	addTrack(t, lib, "/m/02.mp3", "X", "Y", "b", 2, "")
	addTrack(t, lib, "/m/01.mp3", "X", "Y", "a", 1, "")

	albums, err := lib.Albums(ctx)
	require.NoError(t, err)
	path, err := lib.CoverPath(ctx, albums[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "/m/01.mp3", path)

	_, err = lib.CoverPath(ctx, 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestIsMusicFile(t *testing.T) {
	assert.True(t, IsMusicFile("/a/b.FLAC"))
	assert.True(t, IsMusicFile("x.mp3"))
	assert.False(t, IsMusicFile("cover.jpg"))
}

func TestLibrary_ScanRemovesMissingFiles(t *testing.T) {
	lib := setupTestLibrary(t)
	ctx := context.Background()
	dir := t.TempDir()

	addTrack(t, lib, filepath.Join(dir, "gone.mp3"), "X", "Y", "gone", 1, "")
	// Unreadable tags are skipped, not fatal.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.mp3"), []byte("not audio"), 0o600))

	stats, err := lib.Scan(ctx, []string{dir}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Removed)
	assert.Equal(t, 1, stats.Skipped)

	count, err := lib.TrackCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestLibrary_ScanLockRejectsConcurrentScan(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "scan.lock")
	lib := setupTestLibrary(t).WithScanLock(lockPath)

	other := flock.New(lockPath)
	ok, err := other.TryLock()
	require.NoError(t, err)
	require.True(t, ok)

	_, err = lib.Scan(context.Background(), []string{t.TempDir()}, nil)
	require.ErrorIs(t, err, ErrScanBusy)

	require.NoError(t, other.Unlock())
	_, err = lib.Scan(context.Background(), []string{t.TempDir()}, nil)
	require.NoError(t, err)
	assert.False(t, lib.lock.Locked(), "lock released after scan")
}
