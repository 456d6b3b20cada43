package playback

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/crates/internal/library"
	"github.com/llehouerou/crates/internal/state"
)

// Catalogue resolves songs and song lists.
type Catalogue interface {
	SongsByIDs(ctx context.Context, ids []int64) ([]library.Song, error)
	SongIDsForAlbum(ctx context.Context, albumID int64) ([]int64, error)
	SongIDsForArtist(ctx context.Context, artistID int64) ([]int64, error)
	SongIDsForGenre(ctx context.Context, genreID int64) ([]int64, error)
	DeleteSongs(ctx context.Context, ids []int64) error
}

// PlaylistStore edits playlist membership.
type PlaylistStore interface {
	AddSongs(playlistID int64, songIDs []int64) error
	RemoveSong(songID, playlistID int64) error
	SongIDs(playlistID int64) ([]int64, error)
}

// RecentRecorder records played songs.
type RecentRecorder interface {
	AddSongID(id int64, song, album, artist string) error
}

// SettingsStore persists key/value settings.
type SettingsStore interface {
	SetSetting(key, value string) error
}

// Service manages the play queue and the now-playing identity, and
// broadcasts MetaChanged whenever library views may need to reload.
type Service struct {
	mu    sync.Mutex
	queue *Queue

	catalogue Catalogue
	playlists PlaylistStore
	recents   RecentRecorder
	settings  SettingsStore
	log       *logrus.Entry

	subsMu sync.Mutex
	subs   []*Subscription
	closed bool
}

// New creates a playback service. log may be nil.
func New(cat Catalogue, pl PlaylistStore, rec RecentRecorder, settings SettingsStore, log *logrus.Entry) *Service {
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}
	return &Service{
		queue:     NewQueue(),
		catalogue: cat,
		playlists: pl,
		recents:   rec,
		settings:  settings,
		log:       log.WithField("component", "playback"),
	}
}

// Subscribe returns a new event subscription.
func (s *Service) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	if s.closed {
		sub.close()
		return sub
	}
	s.subs = append(s.subs, sub)
	return sub
}

// Close ends every subscription.
func (s *Service) Close() error {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	return nil
}

func (s *Service) emitMeta(reason MetaReason) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, sub := range s.subs {
		sub.sendMeta(MetaChanged{Reason: reason})
	}
}

func (s *Service) emitTrack(e TrackChange) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, sub := range s.subs {
		sub.sendTrack(e)
	}
}

// NotifyMetaChanged broadcasts a change made outside the service, such as a
// favorites edit.
func (s *Service) NotifyMetaChanged(reason MetaReason) {
	s.emitMeta(reason)
}

// PlayAll replaces the queue with ids and starts at start. With shuffle the
// order is randomized and playback starts at the first shuffled song.
func (s *Service) PlayAll(ctx context.Context, ids []int64, start int, shuffle bool) error {
	songs, err := s.catalogue.SongsByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("resolve songs: %w", err)
	}
	if len(songs) == 0 {
		return nil
	}
	if shuffle {
		rand.Shuffle(len(songs), func(i, j int) { songs[i], songs[j] = songs[j], songs[i] })
		start = 0
	}

	s.mu.Lock()
	prev := s.queue.Current()
	cur := s.queue.Replace(start, songs...)
	idx := s.queue.CurrentIndex()
	s.mu.Unlock()

	s.started(prev, cur, idx)
	s.emitMeta(MetaQueue)
	return nil
}

// PlayNext inserts ids right after the current song.
func (s *Service) PlayNext(ctx context.Context, ids []int64) error {
	songs, err := s.catalogue.SongsByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("resolve songs: %w", err)
	}
	s.mu.Lock()
	s.queue.InsertNext(songs...)
	s.mu.Unlock()
	s.emitMeta(MetaQueue)
	return nil
}

// AddToQueue appends ids to the queue.
func (s *Service) AddToQueue(ctx context.Context, ids []int64) error {
	songs, err := s.catalogue.SongsByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("resolve songs: %w", err)
	}
	s.mu.Lock()
	s.queue.Add(songs...)
	s.mu.Unlock()
	s.emitMeta(MetaQueue)
	return nil
}

// started records the new current song and notifies subscribers.
func (s *Service) started(prev, cur *library.Song, idx int) {
	if cur == nil {
		return
	}
	if s.recents != nil {
		if err := s.recents.AddSongID(cur.ID, cur.Title, cur.Album, cur.Artist); err != nil {
			s.log.WithError(err).WithField("song_id", cur.ID).Warn("record recent")
		}
	}
	s.emitTrack(TrackChange{Previous: prev, Current: cur, Index: idx})
	s.emitMeta(MetaTrack)
}

// AddToPlaylist appends ids to a playlist.
func (s *Service) AddToPlaylist(ids []int64, playlistID int64) error {
	if err := s.playlists.AddSongs(playlistID, ids); err != nil {
		return err
	}
	s.emitMeta(MetaPlaylist)
	return nil
}

// RemoveFromPlaylist removes a song from a playlist.
func (s *Service) RemoveFromPlaylist(songID, playlistID int64) error {
	if err := s.playlists.RemoveSong(songID, playlistID); err != nil {
		return err
	}
	s.emitMeta(MetaPlaylist)
	return nil
}

// SetRingtone stores id as the ringtone song.
func (s *Service) SetRingtone(id int64) error {
	return s.settings.SetSetting(state.SettingRingtone, strconv.FormatInt(id, 10))
}

// Delete removes songs from the library and the queue.
func (s *Service) Delete(ctx context.Context, ids []int64) error {
	if err := s.catalogue.DeleteSongs(ctx, ids); err != nil {
		return err
	}
	s.mu.Lock()
	s.queue.RemoveIDs(ids)
	s.mu.Unlock()
	s.emitMeta(MetaLibrary)
	return nil
}

// CurrentAudioID returns the id of the current song, or -1.
func (s *Service) CurrentAudioID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur := s.queue.Current(); cur != nil {
		return cur.ID
	}
	return -1
}

// CurrentAlbumID returns the album id of the current song, or -1.
func (s *Service) CurrentAlbumID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur := s.queue.Current(); cur != nil {
		return cur.AlbumID
	}
	return -1
}

// Current returns a copy of the current song.
func (s *Service) Current() (library.Song, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur := s.queue.Current(); cur != nil {
		return *cur, true
	}
	return library.Song{}, false
}

// QueueSongs returns a snapshot of the queue.
func (s *Service) QueueSongs() []library.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Songs()
}

func (s *Service) SongListForAlbum(ctx context.Context, id int64) ([]int64, error) {
	return s.catalogue.SongIDsForAlbum(ctx, id)
}

func (s *Service) SongListForArtist(ctx context.Context, id int64) ([]int64, error) {
	return s.catalogue.SongIDsForArtist(ctx, id)
}

func (s *Service) SongListForGenre(ctx context.Context, id int64) ([]int64, error) {
	return s.catalogue.SongIDsForGenre(ctx, id)
}

func (s *Service) SongListForPlaylist(_ context.Context, id int64) ([]int64, error) {
	return s.playlists.SongIDs(id)
}
