package profile

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/crates/internal/errmsg"
	"github.com/llehouerou/crates/internal/library"
	"github.com/llehouerou/crates/internal/playback"
	"github.com/llehouerou/crates/internal/ui/action"
	"github.com/llehouerou/crates/internal/ui/menu"
	"github.com/llehouerou/crates/internal/ui/render"
)

// Selection is captured when the context menu opens and lives until the
// next one opens.
type Selection struct {
	Item library.Item
	ID   int64
	// SongList is nil for a song; containers hold their expansion.
	SongList   []int64
	SongName   string
	AlbumName  string
	ArtistName string
}

// Targets returns the songs an action applies to.
func (s Selection) Targets() []int64 {
	if s.SongList != nil {
		return s.SongList
	}
	return []int64{s.ID}
}

// selectionBuilder fills a Selection from the item variant.
type selectionBuilder struct {
	ctx context.Context
	pb  Playback
	sel Selection
	err error
}

func (b *selectionBuilder) VisitSong(s library.Song) {
	b.sel.ID = s.ID
	b.sel.SongName = s.Title
	b.sel.AlbumName = s.Album
	b.sel.ArtistName = s.Artist
}

func (b *selectionBuilder) VisitAlbum(a library.Album) {
	b.sel.ID = a.ID
	b.sel.AlbumName = a.Name
	b.sel.ArtistName = a.Artist
	b.sel.SongList, b.err = b.pb.SongListForAlbum(b.ctx, a.ID)
}

func (b *selectionBuilder) VisitArtist(a library.Artist) {
	b.sel.ID = a.ID
	b.sel.ArtistName = a.Name
	b.sel.SongList, b.err = b.pb.SongListForArtist(b.ctx, a.ID)
}

func (b *selectionBuilder) VisitGenre(g library.Genre) {
	b.sel.ID = g.ID
	b.sel.SongList, b.err = b.pb.SongListForGenre(b.ctx, g.ID)
}

func (b *selectionBuilder) VisitPlaylist(p library.Playlist) {
	b.sel.ID = p.ID
	b.sel.SongList, b.err = b.pb.SongListForPlaylist(b.ctx, p.ID)
}

// BuildSelection resolves the selection of item.
func BuildSelection(ctx context.Context, pb Playback, item library.Item) (Selection, error) {
	b := &selectionBuilder{ctx: ctx, pb: pb, sel: Selection{Item: item}}
	item.Accept(b)
	if b.err != nil {
		return Selection{}, b.err
	}
	if item.Kind() != library.KindSong && b.sel.SongList == nil {
		b.sel.SongList = []int64{}
	}
	return b.sel, nil
}

// OpenContextMenu captures the selection of the item at view position pos
// and shows the context menu.
func (c *Controller) OpenContextMenu(pos int) tea.Cmd {
	if c.adapter == nil {
		return nil
	}
	item, ok := c.adapter.ItemAtRow(pos)
	if !ok {
		return nil
	}
	c.sel = Selection{}
	sel, err := BuildSelection(context.Background(), c.deps.Playback, item)
	if err != nil {
		c.log.WithError(err).Warn("resolve selection")
		return errorCmd(errmsg.OpSongList, err)
	}
	c.sel = sel

	var playlists []library.Playlist
	if c.deps.Playlists != nil {
		if playlists, err = c.deps.Playlists.List(); err != nil {
			c.log.WithError(err).Warn("list playlists for menu")
		}
	}
	c.menu.Show(c.id, item.DisplayName(), c.menuActions(), playlists, c.Width(), c.Height())
	c.popup = popupMenu
	return nil
}

// menuActions returns the actions offered for the current selection.
func (c *Controller) menuActions() []menu.Action {
	actions := []menu.Action{
		menu.ActionPlaySelection,
		menu.ActionPlayNext,
		menu.ActionAddToQueue,
		menu.ActionAddToFavorites,
		menu.ActionAddToPlaylist,
	}
	if c.sel.Item.Kind() == library.KindSong {
		actions = append(actions, menu.ActionUseAsRingtone)
	}
	if c.sel.ArtistName != "" {
		actions = append(actions, menu.ActionMoreByArtist)
	}
	actions = append(actions, menu.ActionDelete)
	return append(actions, c.def.Extra...)
}

type deleteRequest struct {
	group int
	item  library.Item
	ids   []int64
}

type newPlaylistRequest struct {
	group int
	ids   []int64
}

// ContextItemSelected runs a context menu action. It reports false for
// selections of another menu group.
func (c *Controller) ContextItemSelected(sel menu.Selected) (bool, tea.Cmd) {
	if sel.Group != c.id {
		return false, nil
	}
	ids := c.sel.Targets()
	pb := c.deps.Playback

	switch sel.Action {
	case menu.ActionPlaySelection:
		return true, c.run(errmsg.OpPlaybackStart, func(ctx context.Context) error {
			return pb.PlayAll(ctx, ids, 0, false)
		})
	case menu.ActionPlayNext:
		return true, c.run(errmsg.OpQueueNext, func(ctx context.Context) error {
			return pb.PlayNext(ctx, ids)
		})
	case menu.ActionAddToQueue:
		return true, c.run(errmsg.OpQueueAdd, func(ctx context.Context) error {
			return pb.AddToQueue(ctx, ids)
		})
	case menu.ActionAddToFavorites:
		return true, c.addToFavorites()
	case menu.ActionRemoveFromFavorites:
		return true, c.removeFromFavorites()
	case menu.ActionNewPlaylist:
		c.input.Start("New playlist", "", newPlaylistRequest{group: c.id, ids: ids}, c.Width(), c.Height())
		c.popup = popupInput
		return true, c.input.Init()
	case menu.ActionPlaylistSelected:
		playlistID := sel.PlaylistID
		return true, c.run(errmsg.OpPlaylistAddTrack, func(context.Context) error {
			return pb.AddToPlaylist(ids, playlistID)
		})
	case menu.ActionUseAsRingtone:
		id := c.sel.ID
		return true, c.run(errmsg.OpRingtoneSet, func(context.Context) error {
			return pb.SetRingtone(id)
		})
	case menu.ActionDelete:
		return c.requestDelete(ids)
	case menu.ActionMoreByArtist:
		if c.sel.ArtistName == "" {
			return false, nil
		}
		return true, action.Cmd(Source, OpenArtist{Name: c.sel.ArtistName})
	case menu.ActionRemoveFromPlaylist:
		return true, c.removeFromPlaylist()
	case menu.ActionRemoveFromRecent:
		return true, c.removeFromRecent()
	case menu.ActionAddToPlaylist:
		// handled by the menu's submenu
	}
	return false, nil
}

// addToFavorites adds every target song. Containers resolve each song for
// its names; a failing song is recorded and the batch continues.
func (c *Controller) addToFavorites() tea.Cmd {
	sel := c.sel
	d := c.deps
	log := c.log
	return func() tea.Msg {
		res := AddFavorites(context.Background(), d.Favorites, d.Catalogue, sel, log)
		if len(res.Added) > 0 {
			d.Playback.NotifyMetaChanged(playback.MetaFavorites)
		}
		return actionMsg(res)
	}
}

// AddFavorites adds the targets of sel to store.
func AddFavorites(ctx context.Context, store FavoritesStore, cat Catalogue, sel Selection, log *logrus.Entry) FavoriteResult {
	var res FavoriteResult
	record := func(id int64, err error) {
		if err != nil {
			log.WithError(err).WithField("song", id).Warn("add to favorites")
			res.Failed = append(res.Failed, FavoriteFailure{ID: id, Err: err})
			return
		}
		res.Added = append(res.Added, id)
	}

	if sel.SongList == nil {
		record(sel.ID, store.AddSongID(sel.ID, sel.SongName, sel.AlbumName, sel.ArtistName))
		return res
	}
	for _, id := range sel.SongList {
		song, err := cat.SongByID(ctx, id)
		if err == nil {
			err = store.AddSongID(id, song.Title, song.Album, song.Artist)
		}
		record(id, err)
	}
	return res
}

// removeOptimistically drops the selected item from the view before the
// store is touched.
func (c *Controller) removeOptimistically(item library.Item) {
	if c.adapter == nil || item == nil {
		return
	}
	c.adapter.Remove(item)
	c.adapter.NotifyChanged()
}

func (c *Controller) removeFromFavorites() tea.Cmd {
	c.removeOptimistically(c.sel.Item)
	if err := c.deps.Favorites.RemoveItem(c.sel.ID); err != nil {
		c.log.WithError(err).Warn("remove from favorites")
		return tea.Batch(c.RestartLoader(), errorCmd(errmsg.OpFavoriteRemove, err))
	}
	return c.RestartLoader()
}

// playlistID is the playlist shown by playlist-scoped profiles.
func (c *Controller) playlistID() int64 {
	if c.def.PlaylistScoped {
		return c.args.ID
	}
	return 0
}

// removeFromPlaylist removes a song from the shown playlist, or every song
// of a selected playlist from that playlist.
func (c *Controller) removeFromPlaylist() tea.Cmd {
	c.removeOptimistically(c.sel.Item)

	pb := c.deps.Playback
	var err error
	switch c.sel.Item.Kind() {
	case library.KindSong:
		err = pb.RemoveFromPlaylist(c.sel.ID, c.playlistID())
	case library.KindPlaylist:
		for _, id := range c.sel.SongList {
			if err = pb.RemoveFromPlaylist(id, c.sel.ID); err != nil {
				break
			}
		}
	case library.KindAlbum, library.KindArtist, library.KindGenre:
	}

	restart := c.RestartLoader()
	if err != nil {
		c.log.WithError(err).Warn("remove from playlist")
		return tea.Batch(errorCmd(errmsg.OpPlaylistRemove, err), restart)
	}
	return restart
}

func (c *Controller) removeFromRecent() tea.Cmd {
	if err := c.deps.Recents.RemoveItem(c.sel.ID); err != nil {
		c.log.WithError(err).Warn("remove from recents")
		return errorCmd(errmsg.OpRecentRemove, err)
	}
	c.deps.Playback.NotifyMetaChanged(playback.MetaRecents)
	return c.Refresh()
}

// deleteTitle names the item in the delete confirmation.
func deleteTitle(item library.Item) string {
	switch item.Kind() {
	case library.KindSong, library.KindAlbum, library.KindArtist:
		return item.DisplayName()
	case library.KindGenre, library.KindPlaylist:
	}
	return "Unknown"
}

func (c *Controller) requestDelete(ids []int64) (bool, tea.Cmd) {
	if len(ids) == 0 {
		return false, nil
	}
	req := deleteRequest{group: c.id, item: c.sel.Item, ids: ids}
	c.confirm.ShowDanger(
		"Delete "+deleteTitle(c.sel.Item)+"?",
		render.Count(len(ids), "song")+" will be removed from the library.",
		req, c.Width(), c.Height(),
	)
	c.popup = popupConfirm
	return true, nil
}

// deleteConfirmed is the confirmation callback: the item leaves the view,
// the songs leave the library and the loader restarts.
func (c *Controller) deleteConfirmed(req deleteRequest) tea.Cmd {
	c.removeOptimistically(req.item)
	err := c.deps.Playback.Delete(context.Background(), req.ids)
	restart := c.RestartLoader()
	if err != nil {
		c.log.WithError(err).Warn("delete songs")
		return tea.Batch(errorCmd(errmsg.OpLibraryDelete, err), restart)
	}
	return restart
}

func (c *Controller) createPlaylist(req newPlaylistRequest, name string) tea.Cmd {
	id, err := c.deps.Playlists.Create(name)
	if err != nil {
		return errorCmd(errmsg.OpPlaylistCreate, err)
	}
	if err := c.deps.Playback.AddToPlaylist(req.ids, id); err != nil {
		return tea.Batch(errorCmd(errmsg.OpPlaylistAddTrack, err), c.RestartLoader())
	}
	return tea.Batch(
		func() tea.Msg { return StatusMsg{Text: "Created playlist " + name} },
		c.RestartLoader(),
	)
}
