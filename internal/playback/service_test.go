package playback

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/crates/internal/library"
	"github.com/llehouerou/crates/internal/playlists"
	"github.com/llehouerou/crates/internal/state"
)

type fixture struct {
	svc     *Service
	lib     *library.Library
	pl      *playlists.Playlists
	recents *playlists.Recents
	state   *state.Manager
	ids     []int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := state.OpenInMemory()
	require.NoError(t, err)
	mgr := state.NewManager(db)
	t.Cleanup(func() { mgr.Close() })

	lib := library.New(db)
	ids := make([]int64, 0, 3)
	for i := range 3 {
		id, err := lib.AddTrack(context.Background(), &library.TrackInfo{
			Path:        fmt.Sprintf("/m/%d.mp3", i),
			Title:       fmt.Sprintf("Song %d", i),
			Artist:      "Artist",
			AlbumArtist: "Artist",
			Album:       "Album",
			Track:       i + 1,
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	pl := playlists.New(db, lib)
	rec := playlists.NewRecents(db, lib)
	svc := New(lib, pl, rec, mgr, nil)
	t.Cleanup(func() { svc.Close() })

	return &fixture{svc: svc, lib: lib, pl: pl, recents: rec, state: mgr, ids: ids}
}

func drainMeta(sub *Subscription) []MetaReason {
	var reasons []MetaReason
	for {
		select {
		case e := <-sub.MetaChanged:
			reasons = append(reasons, e.Reason)
		default:
			return reasons
		}
	}
}

func TestService_PlayAllRecordsRecentAndNotifies(t *testing.T) {
	f := newFixture(t)
	sub := f.svc.Subscribe()
	ctx := context.Background()

	require.NoError(t, f.svc.PlayAll(ctx, f.ids, 1, false))

	assert.Equal(t, f.ids[1], f.svc.CurrentAudioID())
	song, ok := f.svc.Current()
	require.True(t, ok)
	assert.Equal(t, song.AlbumID, f.svc.CurrentAlbumID())

	recent, err := f.recents.SongIDs(0)
	require.NoError(t, err)
	assert.Equal(t, []int64{f.ids[1]}, recent)

	tc := <-sub.TrackChanged
	assert.Equal(t, f.ids[1], tc.Current.ID)
	assert.Equal(t, []MetaReason{MetaTrack, MetaQueue}, drainMeta(sub))
}

func TestService_NothingPlaying(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, int64(-1), f.svc.CurrentAudioID())
	assert.Equal(t, int64(-1), f.svc.CurrentAlbumID())
}

func TestService_PlayAllShuffleKeepsAllSongs(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.PlayAll(context.Background(), f.ids, 2, true))

	assert.ElementsMatch(t, f.ids, library.SongIDs(f.svc.QueueSongs()))
	assert.Equal(t, f.svc.QueueSongs()[0].ID, f.svc.CurrentAudioID())
}

func TestService_PlayNextAndAddToQueue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.PlayAll(ctx, f.ids[:1], 0, false))
	require.NoError(t, f.svc.AddToQueue(ctx, f.ids[1:2]))
	require.NoError(t, f.svc.PlayNext(ctx, f.ids[2:]))

	assert.Equal(t, []int64{f.ids[0], f.ids[2], f.ids[1]}, library.SongIDs(f.svc.QueueSongs()))
	assert.Equal(t, f.ids[0], f.svc.CurrentAudioID(), "queueing keeps the current song")
}

func TestService_PlaylistEditsNotify(t *testing.T) {
	f := newFixture(t)
	sub := f.svc.Subscribe()

	plID, err := f.pl.Create("P")
	require.NoError(t, err)

	require.NoError(t, f.svc.AddToPlaylist(f.ids, plID))
	require.NoError(t, f.svc.RemoveFromPlaylist(f.ids[0], plID))

	got, err := f.svc.SongListForPlaylist(context.Background(), plID)
	require.NoError(t, err)
	assert.Equal(t, f.ids[1:], got)
	assert.Equal(t, []MetaReason{MetaPlaylist, MetaPlaylist}, drainMeta(sub))
}

func TestService_SongLists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	song, err := f.lib.SongByID(ctx, f.ids[0])
	require.NoError(t, err)

	byAlbum, err := f.svc.SongListForAlbum(ctx, song.AlbumID)
	require.NoError(t, err)
	assert.Equal(t, f.ids, byAlbum)

	byArtist, err := f.svc.SongListForArtist(ctx, song.ArtistID)
	require.NoError(t, err)
	assert.Equal(t, f.ids, byArtist)
}

func TestService_SetRingtonePersists(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.SetRingtone(f.ids[2]))

	v, err := f.state.GetSetting(state.SettingRingtone)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprint(f.ids[2]), v)
}

func TestService_DeleteRemovesFromQueue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.PlayAll(ctx, f.ids, 0, false))
	sub := f.svc.Subscribe()

	require.NoError(t, f.svc.Delete(ctx, f.ids[:1]))

	assert.Equal(t, f.ids[1:], library.SongIDs(f.svc.QueueSongs()))
	_, err := f.lib.SongByID(ctx, f.ids[0])
	require.ErrorIs(t, err, library.ErrNotFound)
	assert.Equal(t, []MetaReason{MetaLibrary}, drainMeta(sub))
}

type failingRecents struct{}

func (failingRecents) AddSongID(int64, string, string, string) error {
	return errors.New("disk full")
}

func TestService_RecentFailureDoesNotStopPlayback(t *testing.T) {
	f := newFixture(t)
	f.svc.recents = failingRecents{}

	require.NoError(t, f.svc.PlayAll(context.Background(), f.ids, 0, false))
	assert.Equal(t, f.ids[0], f.svc.CurrentAudioID())
}

func TestService_SubscribeAfterClose(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.Close())
	sub := f.svc.Subscribe()
	<-sub.Done
}
