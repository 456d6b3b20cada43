package playlists

import (
	"context"
	"database/sql"
	"time"

	dbutil "github.com/llehouerou/crates/internal/db"
	"github.com/llehouerou/crates/internal/library"
)

// Favorites stores favorite songs with their display names.
type Favorites struct {
	db  *sql.DB
	lib *library.Library
}

func NewFavorites(db *sql.DB, lib *library.Library) *Favorites {
	return &Favorites{db: db, lib: lib}
}

// AddSongID marks a song as favorite. Adding an existing favorite refreshes
// its names and keeps its original date.
func (f *Favorites) AddSongID(id int64, song, album, artist string) error {
	_, err := f.db.Exec(`
		INSERT INTO favorites (song_id, song_name, album_name, artist_name, added_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(song_id) DO UPDATE SET
			song_name = excluded.song_name,
			album_name = excluded.album_name,
			artist_name = excluded.artist_name
	`, id, song, album, artist, time.Now().UnixNano())
	return err
}

// RemoveItem removes a song from favorites. Removing a missing song is a no-op.
func (f *Favorites) RemoveItem(id int64) error {
	_, err := f.db.Exec(`DELETE FROM favorites WHERE song_id = ?`, id)
	return err
}

// Contains reports whether a song is a favorite.
func (f *Favorites) Contains(id int64) (bool, error) {
	var count int
	err := f.db.QueryRow(`SELECT COUNT(*) FROM favorites WHERE song_id = ?`, id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SongIDs returns favorite song ids, most recently added first.
func (f *Favorites) SongIDs() ([]int64, error) {
	rows, err := f.db.Query(`SELECT song_id FROM favorites ORDER BY added_at DESC`)
	if err != nil {
		return nil, err
	}
	return dbutil.ScanInt64s(rows)
}

// Songs returns the favorite songs still present in the library.
func (f *Favorites) Songs(ctx context.Context) ([]library.Song, error) {
	ids, err := f.SongIDs()
	if err != nil {
		return nil, err
	}
	return f.lib.SongsByIDs(ctx, ids)
}
