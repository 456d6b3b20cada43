package playback

import "github.com/llehouerou/crates/internal/library"

// Queue is the ordered play queue with a current position.
type Queue struct {
	songs        []library.Song
	currentIndex int // -1 if nothing playing
}

// NewQueue creates a new empty queue.
func NewQueue() *Queue {
	return &Queue{currentIndex: -1}
}

// Current returns the current song, or nil if none.
func (q *Queue) Current() *library.Song {
	if q.currentIndex < 0 || q.currentIndex >= len(q.songs) {
		return nil
	}
	return &q.songs[q.currentIndex]
}

// CurrentIndex returns the index of the current song (-1 if none).
func (q *Queue) CurrentIndex() int {
	return q.currentIndex
}

// Next advances to the next song and returns it, or nil at the end.
func (q *Queue) Next() *library.Song {
	if q.currentIndex >= len(q.songs)-1 {
		return nil
	}
	q.currentIndex++
	return q.Current()
}

// JumpTo sets the current index. Returns nil if index is out of range.
func (q *Queue) JumpTo(index int) *library.Song {
	if index < 0 || index >= len(q.songs) {
		return nil
	}
	q.currentIndex = index
	return q.Current()
}

// Add appends songs without changing the current position.
func (q *Queue) Add(songs ...library.Song) {
	q.songs = append(q.songs, songs...)
}

// InsertNext inserts songs right after the current one. On an idle queue
// they go first.
func (q *Queue) InsertNext(songs ...library.Song) {
	at := q.currentIndex + 1
	if at > len(q.songs) {
		at = len(q.songs)
	}
	rest := append([]library.Song(nil), q.songs[at:]...)
	q.songs = append(append(q.songs[:at], songs...), rest...)
}

// Replace clears the queue, adds songs and jumps to start.
// Returns the song to play.
func (q *Queue) Replace(start int, songs ...library.Song) *library.Song {
	q.songs = append(q.songs[:0], songs...)
	q.currentIndex = -1
	if len(songs) == 0 {
		return nil
	}
	if start < 0 || start >= len(songs) {
		start = 0
	}
	q.currentIndex = start
	return q.Current()
}

// RemoveIDs removes every queued occurrence of ids. Returns true when the
// current song was removed.
func (q *Queue) RemoveIDs(ids []int64) bool {
	drop := make(map[int64]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	removedCurrent := false
	kept := q.songs[:0]
	newIndex := -1
	for i, s := range q.songs {
		if drop[s.ID] {
			if i == q.currentIndex {
				removedCurrent = true
				// Point at whatever follows.
				newIndex = len(kept)
			}
			continue
		}
		if i == q.currentIndex {
			newIndex = len(kept)
		}
		kept = append(kept, s)
	}
	q.songs = kept

	if newIndex >= len(q.songs) {
		newIndex = len(q.songs) - 1
	}
	q.currentIndex = newIndex
	return removedCurrent
}

// Clear removes all songs and resets the position.
func (q *Queue) Clear() {
	q.songs = q.songs[:0]
	q.currentIndex = -1
}

// Songs returns a copy of the queued songs.
func (q *Queue) Songs() []library.Song {
	result := make([]library.Song, len(q.songs))
	copy(result, q.songs)
	return result
}

func (q *Queue) Len() int {
	return len(q.songs)
}

func (q *Queue) IsEmpty() bool {
	return len(q.songs) == 0
}
