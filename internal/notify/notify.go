// Package notify shows freedesktop desktop notifications for playback and
// library events.
package notify

import (
	"os"
	"path/filepath"

	"github.com/llehouerou/crates/internal/library"
	"github.com/llehouerou/crates/internal/ui/render"
)

// Urgency is the freedesktop urgency hint.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

const (
	trackTimeout = 5000
	scanTimeout  = 8000
)

// Notification is one bubble. Timeout is in milliseconds with -1 meaning the
// server default. A non-zero ReplacesID updates that bubble in place.
type Notification struct {
	Title      string
	Body       string
	Icon       string // file path or icon theme name
	Timeout    int32
	ReplacesID uint32
	Urgency    Urgency
}

// Notifier delivers notifications. Notify returns the id the server
// assigned, which callers pass back as ReplacesID.
type Notifier interface {
	Notify(n Notification) (uint32, error)
}

// Discard drops every notification. New falls back to it when no session
// bus is reachable.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Notification) (uint32, error) { return 0, nil }

// TrackStarted describes a song that started playing. replaces is the id of
// the previous track notification so only one stays on screen.
func TrackStarted(song library.Song, replaces uint32) Notification {
	body := song.Artist
	if song.Album != "" {
		if body != "" {
			body += " - "
		}
		body += song.Album
	}
	return Notification{
		Title:      song.Title,
		Body:       body,
		Icon:       folderCover(song.Path),
		Timeout:    trackTimeout,
		ReplacesID: replaces,
		Urgency:    UrgencyLow,
	}
}

// ScanFinished summarizes a library rescan.
func ScanFinished(stats library.ScanStats) Notification {
	return Notification{
		Title: "Library scan complete",
		Body: render.Count(stats.Added, "song") + " added, " +
			render.Count(stats.Updated, "song") + " updated, " +
			render.Count(stats.Removed, "song") + " removed",
		Icon:    "audio-x-generic",
		Timeout: scanTimeout,
		Urgency: UrgencyNormal,
	}
}

// coverNames are checked in order next to the audio file.
var coverNames = []string{
	"cover.jpg", "cover.png", "folder.jpg", "folder.png",
	"front.jpg", "front.png", "album.jpg", "album.png",
}

// folderCover returns the first cover image in the song's directory, or "".
// Embedded art is not extracted here; notification servers want a file.
func folderCover(songPath string) string {
	if songPath == "" {
		return ""
	}
	dir := filepath.Dir(songPath)
	for _, name := range coverNames {
		p := filepath.Join(dir, name)
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			return p
		}
	}
	return ""
}
