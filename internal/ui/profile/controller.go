// Package profile implements the list/grid controller shared by every
// library view: songs, albums, artists, genres, playlists, favorites,
// recents and the songs of one album, artist, genre or playlist.
//
// A Controller drives one loader session, keeps the adapter in sync with its
// results, throttles refreshes through a shared gate and dispatches the
// context menu actions of the selected item.
package profile

import (
	"context"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/crates/internal/errmsg"
	"github.com/llehouerou/crates/internal/keymap"
	"github.com/llehouerou/crates/internal/library"
	"github.com/llehouerou/crates/internal/loader"
	"github.com/llehouerou/crates/internal/logging"
	"github.com/llehouerou/crates/internal/refresh"
	"github.com/llehouerou/crates/internal/ui"
	"github.com/llehouerou/crates/internal/ui/action"
	"github.com/llehouerou/crates/internal/ui/adapter"
	"github.com/llehouerou/crates/internal/ui/confirm"
	"github.com/llehouerou/crates/internal/ui/cursor"
	"github.com/llehouerou/crates/internal/ui/menu"
	"github.com/llehouerou/crates/internal/ui/textinput"
)

var lastLoaderID atomic.Int64

// SavedState is what a controller needs to be recreated.
type SavedState struct {
	Kind   string
	Args   Args
	Cursor int
}

type popupKind int

const (
	popupNone popupKind = iota
	popupMenu
	popupConfirm
	popupInput
)

// Controller is the bubbletea component behind one library view.
type Controller struct {
	ui.Base
	def  Definition
	args Args
	deps Deps
	id   int // loader id and context menu group
	log  *logrus.Entry

	session *loader.Session[Args, library.Item]
	adapter *adapter.Adapter

	// presentation
	simple   bool
	detailed bool
	cols     int
	list     cursor.Cursor
	grid     cursor.Grid
	empty    bool

	scroll    ScrollState
	scrollSeq uint64

	sel     Selection
	popup   popupKind
	menu    menu.Model
	confirm confirm.Model
	input   textinput.Model
}

// New creates a controller for def loading args. A nil gate gets a private
// gate with the default cooldown.
func New(def Definition, args Args, deps Deps) *Controller {
	if deps.Log == nil {
		deps.Log = logging.Discard()
	}
	if deps.Gate == nil {
		deps.Gate = refresh.NewGate(refresh.DefaultCooldown, nil)
	}
	id := int(lastLoaderID.Add(1))
	c := &Controller{
		def:     def,
		args:    args,
		deps:    deps,
		id:      id,
		log:     deps.Log.WithFields(logrus.Fields{"component": "profile", "kind": def.Kind, "loader": id}),
		list:    cursor.New(ui.ScrollMargin),
		grid:    cursor.NewGrid(ui.GridScrollMargin),
		simple:  true,
		menu:    menu.New(),
		confirm: confirm.New(),
		input:   textinput.New(),
	}
	c.session = loader.New(id, c.fetch, loader.WithTimeout(deps.LoadTimeout))
	return c
}

func (c *Controller) fetch(ctx context.Context, a Args) ([]library.Item, error) {
	return c.def.Load(ctx, c.deps, a)
}

// ID returns the loader id, which is also the context menu group.
func (c *Controller) ID() int { return c.id }

// Kind returns the profile kind.
func (c *Controller) Kind() string { return c.def.Kind }

// Args returns the loader arguments.
func (c *Controller) Args() Args { return c.args }

// Title returns the profile title.
func (c *Controller) Title() string { return c.def.Title(c.args) }

// Adapter returns the bound adapter, or nil before Create.
func (c *Controller) Adapter() *adapter.Adapter { return c.adapter }

// Selection returns the context menu selection.
func (c *Controller) Selection() Selection { return c.sel }

// LoaderState returns the state of the loader session.
func (c *Controller) LoaderState() loader.State { return c.session.State() }

// IsEmpty reports whether the empty-state text is shown.
func (c *Controller) IsEmpty() bool { return c.empty }

// Attach binds the controller to its host.
func (c *Controller) Attach() {
	c.log.Debug("attach")
	c.session.Attach()
}

// Create builds the adapter.
func (c *Controller) Create() {
	c.log.Debug("create")
	c.bindAdapter()
}

func (c *Controller) bindAdapter() {
	c.adapter = c.def.NewAdapter(c.deps)
	c.adapter.Observe(c.dataSetChanged)
	c.applyLayout()
}

// dataSetChanged keeps the cursors inside the data after a change.
func (c *Controller) dataSetChanged() {
	if c.adapter == nil {
		return
	}
	c.list.ClampToBounds(c.adapter.Rows())
	c.grid.ClampToBounds(c.adapter.Count())
}

// CreateView selects list or grid presentation for a view of width x height
// and sizes it. It also runs on every resize.
func (c *Controller) CreateView(width, height int) {
	c.SetSize(width, height)
	if c.deps.Prefs != nil {
		c.simple = c.deps.Prefs.IsSimpleLayout(c.def.Kind)
		c.detailed = c.deps.Prefs.IsDetailedLayout(c.def.Kind)
	}
	c.cols = 1
	if !c.simple {
		c.cols = gridColumns(width, height, c.detailed)
	}
	c.applyLayout()
	c.menu.SetSize(width, height)
	c.confirm.SetSize(width, height)
	c.input.SetSize(width, height)
	c.log.WithFields(logrus.Fields{"simple": c.simple, "detailed": c.detailed, "cols": c.cols}).Debug("create view")
}

func (c *Controller) applyLayout() {
	if c.adapter != nil {
		c.adapter.SetLoadExtraData(!c.simple && c.detailed)
	}
	c.ensureVisible()
}

// gridColumns returns the grid column count. Terminals at least twice as
// wide as tall count as landscape.
func gridColumns(width, height int, detailed bool) int {
	landscape := width >= 2*height
	switch {
	case landscape && detailed:
		return 2
	case landscape:
		return 4
	case detailed:
		return 1
	default:
		return 2
	}
}

// IsGrid reports whether the grid presentation is active.
func (c *Controller) IsGrid() bool { return !c.simple }

// Columns returns the grid column count, 1 in list mode.
func (c *Controller) Columns() int { return c.cols }

// ActivityCreated starts the loader. A start before Attach is dropped.
func (c *Controller) ActivityCreated() tea.Cmd {
	c.log.Debug("activity created")
	cmd, err := c.session.Start(c.args)
	if err != nil {
		c.log.WithError(err).Debug("loader start dropped")
		return nil
	}
	return cmd
}

// SaveState returns the arguments and cursor to restore later.
func (c *Controller) SaveState() SavedState {
	return SavedState{Kind: c.def.Kind, Args: c.args, Cursor: c.position()}
}

// RestoreCursor moves the cursor to a saved position once data arrived.
func (c *Controller) RestoreCursor(pos int) {
	c.jumpTo(pos)
}

// Pause flushes pending cache entries.
func (c *Controller) Pause() {
	c.log.Debug("pause")
	if c.adapter == nil {
		return
	}
	if err := c.adapter.Flush(); err != nil {
		c.log.WithError(err).Warn("flush adapter cache")
	}
}

// Detach tears the view down: the loader is reset and the adapter unloaded.
func (c *Controller) Detach() {
	c.log.Debug("detach")
	c.session.Reset()
	c.LoaderReset()
	c.session.Detach()
}

// LoadFinished replaces the adapter content with items. An empty result
// shows the empty-state text.
func (c *Controller) LoadFinished(items []library.Item) {
	c.log.WithField("items", len(items)).Debug("load finished")
	if len(items) == 0 {
		if c.adapter != nil {
			c.adapter.Unload()
			c.adapter.NotifyChanged()
		}
		c.empty = true
		return
	}

	if c.adapter == nil {
		c.bindAdapter()
	}
	c.empty = false
	c.adapter.Unload()
	c.adapter.SetDataList(items)
	if _, ok := c.adapter.Cache(); ok {
		c.adapter.BuildCache()
	}
	c.adapter.NotifyChanged()
}

// LoaderReset clears the adapter without touching the empty state.
func (c *Controller) LoaderReset() {
	c.log.Debug("loader reset")
	if c.adapter != nil {
		c.adapter.Unload()
	}
}

// ItemClick runs the profile's click behavior on the item at view
// position pos.
func (c *Controller) ItemClick(pos int) tea.Cmd {
	if c.adapter == nil || c.def.OnItemClick == nil {
		return nil
	}
	item, ok := c.adapter.ItemAtRow(pos)
	if !ok {
		return nil
	}
	return c.def.OnItemClick(c, item, pos-c.adapter.Offset())
}

// Refresh restarts the loader unless another refresh happened within the
// gate's cooldown. The view returns to its top row and redraws right away.
func (c *Controller) Refresh() tea.Cmd {
	if !c.session.Attached() {
		return nil
	}
	if !c.deps.Gate.TryAcquire() {
		c.log.Info("too early to refresh")
		return nil
	}
	c.log.Info("refresh")
	c.scrollToTop()
	cmd := c.session.Restart(c.args)
	if c.adapter != nil {
		c.adapter.NotifyChanged()
	}
	return cmd
}

// RestartLoader reloads with the current arguments.
func (c *Controller) RestartLoader() tea.Cmd {
	c.log.Debug("restart loader")
	return c.session.Restart(c.args)
}

// OnMetaChanged reloads after the library, queue or stores changed.
func (c *Controller) OnMetaChanged() tea.Cmd {
	return c.RestartLoader()
}

// ScrollToCurrentAlbum moves to the row of the playing album, if any.
func (c *Controller) ScrollToCurrentAlbum() {
	if pos := LocateByAlbum(c.adapter, c.deps.Playback.CurrentAlbumID()); pos != 0 {
		c.jumpTo(pos + c.adapter.Offset())
	}
}

// ScrollToCurrentSong moves to the row of the playing song, if any.
func (c *Controller) ScrollToCurrentSong() {
	if pos := LocateBySong(c.adapter, c.deps.Playback.CurrentAudioID()); pos != 0 {
		c.jumpTo(pos + c.adapter.Offset())
	}
}

// run performs fn off the Update loop and reports a failure as ErrorMsg.
func (c *Controller) run(op errmsg.Op, fn func(ctx context.Context) error) tea.Cmd {
	log := c.log
	return func() tea.Msg {
		if err := fn(context.Background()); err != nil {
			log.WithError(err).WithField("op", string(op)).Warn("operation failed")
			return ErrorMsg{Op: op, Err: err}
		}
		return nil
	}
}

func errorCmd(op errmsg.Op, err error) tea.Cmd {
	return func() tea.Msg { return ErrorMsg{Op: op, Err: err} }
}

// Update handles messages routed to this controller. Messages of other
// controllers are ignored.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loader.Result[library.Item]:
		return c.deliver(msg)

	case scrollSettledMsg:
		if msg.id == c.id && msg.seq == c.scrollSeq {
			c.ScrollStateChanged(ScrollIdle)
		}
		return nil

	case action.Msg:
		return c.handleAction(msg)

	case tea.KeyMsg:
		if c.popup != popupNone {
			return c.updatePopup(msg)
		}
		return c.handleKey(msg)

	case tea.MouseMsg:
		if c.popup != popupNone {
			return nil
		}
		return c.handleMouse(msg)
	}

	if c.popup == popupInput {
		return c.updatePopup(msg)
	}
	return nil
}

func (c *Controller) deliver(r loader.Result[library.Item]) tea.Cmd {
	items, ok := c.session.Deliver(r)
	if !ok {
		return nil
	}
	if r.Err != nil {
		c.log.WithError(r.Err).Warn("load failed")
		return errorCmd(errmsg.OpLibraryLoad, r.Err)
	}
	c.LoadFinished(items)
	return nil
}

func (c *Controller) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch keymap.View.Resolve(key) { //nolint:exhaustive // movement falls through to the cursor
	case keymap.ActionOpen:
		return c.ItemClick(c.position())
	case keymap.ActionContextMenu:
		return c.OpenContextMenu(c.position())
	case keymap.ActionRefresh:
		return c.Refresh()
	case keymap.ActionLocateAlbum:
		c.ScrollToCurrentAlbum()
		return nil
	case keymap.ActionLocateSong:
		c.ScrollToCurrentSong()
		return nil
	case keymap.ActionPageDown, keymap.ActionPageUp:
		cmd := c.beginScroll(ScrollFling)
		c.moveCursor(key)
		return cmd
	}
	c.moveCursor(key)
	return nil
}

func (c *Controller) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button { //nolint:exhaustive // wheel only
	case tea.MouseButtonWheelUp:
		cmd := c.beginScroll(ScrollTouch)
		c.moveCursor("up")
		return cmd
	case tea.MouseButtonWheelDown:
		cmd := c.beginScroll(ScrollTouch)
		c.moveCursor("down")
		return cmd
	}
	return nil
}

func (c *Controller) handleAction(msg action.Msg) tea.Cmd {
	switch a := msg.Action.(type) {
	case menu.Selected:
		if a.Group != c.id {
			return nil
		}
		c.closePopup()
		_, cmd := c.ContextItemSelected(a)
		return cmd
	case menu.Canceled:
		if a.Group == c.id {
			c.closePopup()
		}
	case confirm.Result:
		req, ok := a.Context.(deleteRequest)
		if !ok || req.group != c.id {
			return nil
		}
		c.closePopup()
		if a.Confirmed {
			return c.deleteConfirmed(req)
		}
	case textinput.Result:
		req, ok := a.Context.(newPlaylistRequest)
		if !ok || req.group != c.id {
			return nil
		}
		c.closePopup()
		if !a.Canceled && a.Text != "" {
			return c.createPlaylist(req, a.Text)
		}
	}
	return nil
}

func (c *Controller) updatePopup(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch c.popup {
	case popupMenu:
		_, cmd = c.menu.Update(msg)
	case popupConfirm:
		_, cmd = c.confirm.Update(msg)
	case popupInput:
		_, cmd = c.input.Update(msg)
	case popupNone:
	}
	return cmd
}

func (c *Controller) closePopup() {
	switch c.popup {
	case popupMenu:
		c.menu.Reset()
	case popupConfirm:
		c.confirm.Reset()
	case popupInput:
		c.input.Reset()
	case popupNone:
	}
	c.popup = popupNone
}

// PopupActive reports whether a popup is capturing keys.
func (c *Controller) PopupActive() bool {
	return c.popup != popupNone
}
