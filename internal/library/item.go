package library

import (
	"strconv"
	"time"
)

// Kind identifies the variant of an Item.
type Kind int

const (
	KindSong Kind = iota
	KindAlbum
	KindArtist
	KindGenre
	KindPlaylist
)

func (k Kind) String() string {
	switch k {
	case KindSong:
		return "song"
	case KindAlbum:
		return "album"
	case KindArtist:
		return "artist"
	case KindGenre:
		return "genre"
	case KindPlaylist:
		return "playlist"
	}
	return "unknown"
}

// Item is one browsable library entry. The set of variants is closed:
// Song, Album, Artist, Genre and Playlist.
type Item interface {
	Kind() Kind
	ItemID() int64
	DisplayName() string
	// Key is unique across variants and stable across reloads.
	Key() string
	// Accept dispatches to the Visitor method of the concrete variant.
	Accept(v Visitor)

	sealed()
}

// Visitor handles every Item variant. Implementations fail to compile when a
// variant is added, which keeps per-variant logic exhaustive.
type Visitor interface {
	VisitSong(Song)
	VisitAlbum(Album)
	VisitArtist(Artist)
	VisitGenre(Genre)
	VisitPlaylist(Playlist)
}

// Song is a single track.
type Song struct {
	ID          int64
	Title       string
	AlbumID     int64
	Album       string
	ArtistID    int64
	Artist      string
	Path        string
	TrackNumber int
	Year        int
}

// Album groups the songs of one album artist release.
type Album struct {
	ID        int64
	Name      string
	ArtistID  int64
	Artist    string
	Year      int
	SongCount int
}

// Artist is an album artist.
type Artist struct {
	ID         int64
	Name       string
	AlbumCount int
	SongCount  int
}

// Genre groups songs sharing a genre tag.
type Genre struct {
	ID        int64
	Name      string
	SongCount int
}

// Playlist is a user playlist.
type Playlist struct {
	ID         int64
	Name       string
	SongCount  int
	LastUsedAt time.Time
}

func (Song) Kind() Kind     { return KindSong }
func (Album) Kind() Kind    { return KindAlbum }
func (Artist) Kind() Kind   { return KindArtist }
func (Genre) Kind() Kind    { return KindGenre }
func (Playlist) Kind() Kind { return KindPlaylist }

func (s Song) ItemID() int64     { return s.ID }
func (a Album) ItemID() int64    { return a.ID }
func (a Artist) ItemID() int64   { return a.ID }
func (g Genre) ItemID() int64    { return g.ID }
func (p Playlist) ItemID() int64 { return p.ID }

func (s Song) DisplayName() string     { return s.Title }
func (a Album) DisplayName() string    { return a.Name }
func (a Artist) DisplayName() string   { return a.Name }
func (g Genre) DisplayName() string    { return g.Name }
func (p Playlist) DisplayName() string { return p.Name }

func (s Song) Key() string     { return itemKey(KindSong, s.ID) }
func (a Album) Key() string    { return itemKey(KindAlbum, a.ID) }
func (a Artist) Key() string   { return itemKey(KindArtist, a.ID) }
func (g Genre) Key() string    { return itemKey(KindGenre, g.ID) }
func (p Playlist) Key() string { return itemKey(KindPlaylist, p.ID) }

func (s Song) Accept(v Visitor)     { v.VisitSong(s) }
func (a Album) Accept(v Visitor)    { v.VisitAlbum(a) }
func (a Artist) Accept(v Visitor)   { v.VisitArtist(a) }
func (g Genre) Accept(v Visitor)    { v.VisitGenre(g) }
func (p Playlist) Accept(v Visitor) { v.VisitPlaylist(p) }

func (Song) sealed()     {}
func (Album) sealed()    {}
func (Artist) sealed()   {}
func (Genre) sealed()    {}
func (Playlist) sealed() {}

func itemKey(k Kind, id int64) string {
	return k.String() + ":" + strconv.FormatInt(id, 10)
}

// SameItem reports whether a and b denote the same library entry.
func SameItem(a, b Item) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Kind() == b.Kind() && a.ItemID() == b.ItemID()
}

// SongIDs returns the ids of songs in order.
func SongIDs(songs []Song) []int64 {
	ids := make([]int64, len(songs))
	for i, s := range songs {
		ids[i] = s.ID
	}
	return ids
}
