package playlists

import (
	"context"
	"database/sql"
	"time"

	dbutil "github.com/llehouerou/crates/internal/db"
	"github.com/llehouerou/crates/internal/library"
)

// Recents stores recently played songs.
type Recents struct {
	db  *sql.DB
	lib *library.Library
	now func() time.Time
}

func NewRecents(db *sql.DB, lib *library.Library) *Recents {
	return &Recents{db: db, lib: lib, now: time.Now}
}

// AddSongID records a play. Replaying a song moves it to the top.
func (r *Recents) AddSongID(id int64, song, album, artist string) error {
	_, err := r.db.Exec(`
		INSERT INTO recents (song_id, song_name, album_name, artist_name, played_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(song_id) DO UPDATE SET
			song_name = excluded.song_name,
			album_name = excluded.album_name,
			artist_name = excluded.artist_name,
			played_at = excluded.played_at
	`, id, song, album, artist, r.now().UnixNano())
	return err
}

// RemoveItem forgets a song. Removing a missing song is a no-op.
func (r *Recents) RemoveItem(id int64) error {
	_, err := r.db.Exec(`DELETE FROM recents WHERE song_id = ?`, id)
	return err
}

// SongIDs returns up to limit recently played song ids, newest first.
// A limit <= 0 returns all of them.
func (r *Recents) SongIDs(limit int) ([]int64, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.Query(`
		SELECT song_id FROM recents ORDER BY played_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	return dbutil.ScanInt64s(rows)
}

// Songs returns recently played songs still present in the library.
func (r *Recents) Songs(ctx context.Context, limit int) ([]library.Song, error) {
	ids, err := r.SongIDs(limit)
	if err != nil {
		return nil, err
	}
	return r.lib.SongsByIDs(ctx, ids)
}
