// Package icons selects the glyphs shown in front of library items.
package icons

import "github.com/llehouerou/crates/internal/library"

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Song     string
	Album    string
	Artist   string
	Genre    string
	Playlist string
	Playing  string
}

var (
	nerdIcons = Icons{
		Song:     "\uf001 ",     // nf-fa-music
		Album:    "\U000f0025 ", // nf-md-album
		Artist:   "\uf007 ",     // nf-fa-user
		Genre:    "\uf02b ",     // nf-fa-tag
		Playlist: "\U000f0cb8 ", // nf-md-playlist_music
		Playing:  "\U000f040a ", // nf-md-play
	}

	unicodeIcons = Icons{
		Song:     "🎵 ",
		Album:    "💿 ",
		Artist:   "👤 ",
		Genre:    "🏷 ",
		Playlist: "📋 ",
		Playing:  "▶ ",
	}

	noneIcons = Icons{
		Playing: "♪ ",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// For returns the icon of an item kind, empty for the "none" style.
func For(kind library.Kind) string {
	switch kind {
	case library.KindSong:
		return current.Song
	case library.KindAlbum:
		return current.Album
	case library.KindArtist:
		return current.Artist
	case library.KindGenre:
		return current.Genre
	case library.KindPlaylist:
		return current.Playlist
	}
	return ""
}

// Format prefixes name with the icon of kind.
func Format(kind library.Kind, name string) string {
	return For(kind) + name
}

// Playing returns the now-playing marker.
func Playing() string {
	return current.Playing
}
