package notify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/crates/internal/library"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, nil, 0o600))
}

func TestTrackStarted(t *testing.T) {
	dir := t.TempDir()
	track := filepath.Join(dir, "01.flac")
	cover := filepath.Join(dir, "folder.png")
	touch(t, cover)

	n := TrackStarted(library.Song{Title: "Blue Train", Artist: "John Coltrane", Album: "Blue Train", Path: track}, 7)

	assert.Equal(t, "Blue Train", n.Title)
	assert.Equal(t, "John Coltrane - Blue Train", n.Body)
	assert.Equal(t, cover, n.Icon)
	assert.Equal(t, uint32(7), n.ReplacesID)
	assert.Equal(t, UrgencyLow, n.Urgency)
}

func TestTrackStarted_MissingTags(t *testing.T) {
	tests := []struct {
		song library.Song
		body string
	}{
		{library.Song{Title: "a"}, ""},
		{library.Song{Title: "a", Artist: "x"}, "x"},
		{library.Song{Title: "a", Album: "y"}, "y"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.body, TrackStarted(tt.song, 0).Body, "%+v", tt.song)
	}
}

func TestFolderCover(t *testing.T) {
	dir := t.TempDir()
	track := filepath.Join(dir, "track.mp3")

	assert.Empty(t, folderCover(track), "no cover yet")
	assert.Empty(t, folderCover(""))

	touch(t, filepath.Join(dir, "album.png"))
	touch(t, filepath.Join(dir, "cover.jpg"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "cover.png"), 0o700))

	assert.Equal(t, filepath.Join(dir, "cover.jpg"), folderCover(track), "cover.jpg wins")
}

func TestScanFinished(t *testing.T) {
	n := ScanFinished(library.ScanStats{Added: 1204, Updated: 1, Removed: 0})

	assert.Equal(t, "1,204 songs added, 1 song updated, 0 songs removed", n.Body)
	assert.Equal(t, UrgencyNormal, n.Urgency)
}

func TestDiscard(t *testing.T) {
	id, err := Discard.Notify(Notification{Title: "x"})

	require.NoError(t, err)
	assert.Zero(t, id)
}

func TestNew_SessionBus(t *testing.T) {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}
	n, err := New()
	require.NoError(t, err)

	first, err := n.Notify(Notification{Title: "Track 1", Timeout: 1000})
	require.NoError(t, err)
	second, err := n.Notify(Notification{Title: "Track 2", Timeout: 1000, ReplacesID: first})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
