// Package app is the root bubbletea model: one tab per library view, a
// navigation stack of profile controllers per tab, the status line and the
// relay of playback events to every view.
package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/crates/internal/config"
	"github.com/llehouerou/crates/internal/errmsg"
	"github.com/llehouerou/crates/internal/keymap"
	"github.com/llehouerou/crates/internal/library"
	"github.com/llehouerou/crates/internal/loader"
	"github.com/llehouerou/crates/internal/logging"
	"github.com/llehouerou/crates/internal/notify"
	"github.com/llehouerou/crates/internal/playback"
	"github.com/llehouerou/crates/internal/state"
	"github.com/llehouerou/crates/internal/ui/action"
	"github.com/llehouerou/crates/internal/ui/headerbar"
	"github.com/llehouerou/crates/internal/ui/helpbindings"
	"github.com/llehouerou/crates/internal/ui/jobbar"
	"github.com/llehouerou/crates/internal/ui/popup"
	"github.com/llehouerou/crates/internal/ui/profile"
	"github.com/llehouerou/crates/internal/ui/render"
	"github.com/llehouerou/crates/internal/ui/scanreport"
)

const statusTimeout = 4 * time.Second

// Player is the playback facade plus its event stream.
type Player interface {
	profile.Playback
	Subscribe() *playback.Subscription
	Current() (library.Song, bool)
}

// ArtistFinder resolves "more by artist" requests.
type ArtistFinder interface {
	ArtistByName(ctx context.Context, name string) (*library.Artist, error)
}

// LayoutCycler switches the presentation of a view kind.
type LayoutCycler interface {
	CycleLayout(kind string) (config.Layout, error)
}

var (
	_ LayoutCycler            = (*config.Preferences)(nil)
	_ profile.PreferenceStore = (*config.Preferences)(nil)
)

// Options wires the application.
type Options struct {
	Deps    profile.Deps
	Player  Player
	Artists ArtistFinder
	Layouts LayoutCycler
	State   state.Store
	Log     *logrus.Entry

	// Scanner and LibrarySources enable the in-app rescan.
	Scanner        Scanner
	LibrarySources []string

	// Notifier shows desktop notifications for track changes and scans.
	Notifier notify.Notifier
}

// Model is the root application model.
type Model struct {
	deps    profile.Deps
	player  Player
	artists ArtistFinder
	layouts LayoutCycler
	state   state.Store
	log     *logrus.Entry
	sub     *playback.Subscription

	scanner    Scanner
	sources    []string
	scanCh     chan library.ScanProgress
	scanResult chan scanDoneMsg
	scanCancel context.CancelFunc
	scanJob    *jobbar.Job

	overlay popup.Popup // help or scan report

	notifier  notify.Notifier
	trackNote uint32 // id of the last track notification

	tabs    []*tab
	active  int
	restore map[int]int // controller id -> cursor to restore once loaded

	status    string
	statusErr bool
	statusSeq int

	width, height int
}

// New builds the tabs and reopens the views saved by the previous run.
func New(opts Options) Model {
	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}
	deps := opts.Deps
	if opts.Player != nil {
		deps.Playback = opts.Player
	}
	if deps.Log == nil {
		deps.Log = log
	}

	m := Model{
		deps:    deps,
		player:  opts.Player,
		artists: opts.Artists,
		layouts: opts.Layouts,
		state:   opts.State,
		log:     log.WithField("component", "app"),
		restore: make(map[int]int),
		scanner: opts.Scanner,
		sources: opts.LibrarySources,

		notifier: opts.Notifier,
	}
	if opts.Player != nil {
		m.sub = opts.Player.Subscribe()
	}
	for _, spec := range tabSpecs {
		def, _ := profile.Lookup(spec.kind)
		m.tabs = append(m.tabs, &tab{spec: spec, stack: []*profile.Controller{m.newController(def, profile.Args{})}})
	}
	m.restoreTabs()
	return m
}

func (m *Model) newController(def profile.Definition, args profile.Args) *profile.Controller {
	c := profile.New(def, args, m.deps)
	c.Attach()
	c.Create()
	if m.width > 0 {
		c.CreateView(m.width, m.bodyHeight())
	}
	return c
}

// Init loads the active view and starts listening to playback events.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.activate(), listen(m.sub))
}

// ActiveTab returns the name of the shown tab.
func (m Model) ActiveTab() string {
	return m.tabs[m.active].spec.name
}

// Top returns the controller on top of the active tab.
func (m Model) Top() *profile.Controller {
	return m.tabs[m.active].top()
}

// Depth returns the navigation depth of the active tab, 1 at its root.
func (m Model) Depth() int {
	return len(m.tabs[m.active].stack)
}

// activate starts the top view of the active tab if it never loaded.
func (m *Model) activate() tea.Cmd {
	return m.Top().ActivityCreated()
}

func (m *Model) eachController(fn func(c *profile.Controller)) {
	for _, t := range m.tabs {
		for _, c := range t.stack {
			fn(c)
		}
	}
}

// bodyHeight leaves room for the header bar, the job bar and the status line.
func (m *Model) bodyHeight() int {
	return max(m.height-headerbar.Height-jobbar.Height(len(m.jobs()))-1, 1)
}

func (m *Model) jobs() []jobbar.Job {
	if m.scanJob == nil {
		return nil
	}
	return []jobbar.Job{*m.scanJob}
}

// relayout resizes every view after the chrome around them changed.
func (m *Model) relayout() {
	if m.width == 0 {
		return
	}
	m.eachController(func(c *profile.Controller) { c.CreateView(m.width, m.bodyHeight()) })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.relayout()
		if m.overlay != nil {
			m.overlay.SetSize(m.width, m.height)
		}
		return m, nil

	case scanProgressMsg:
		return m, m.handleScanProgress(msg)

	case scanDoneMsg:
		return m, m.handleScanDone(msg)

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd

	case metaChangedMsg:
		m.log.WithField("reason", msg.Reason.String()).Debug("meta changed")
		cmds := []tea.Cmd{listen(m.sub)}
		m.eachController(func(c *profile.Controller) { cmds = append(cmds, c.OnMetaChanged()) })
		return m, tea.Batch(cmds...)

	case trackChangedMsg:
		var cmd, note tea.Cmd
		if msg.Current != nil {
			cmd = m.setStatus("Playing "+msg.Current.Title, false)
			note = m.notify(notify.TrackStarted(*msg.Current, m.trackNote), true)
		}
		return m, tea.Batch(listen(m.sub), cmd, note)

	case notifiedMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Debug("desktop notification failed")
		} else if msg.track {
			m.trackNote = msg.id
		}
		return m, nil

	case subscriptionClosedMsg:
		m.log.Debug("playback subscription closed")
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case profile.ErrorMsg:
		return m, m.setStatus(msg.Text(), true)

	case profile.StatusMsg:
		return m, m.setStatus(msg.Text, false)

	case action.Msg:
		switch msg.Action.(type) {
		case helpbindings.Close, scanreport.Close:
			m.overlay = nil
			return m, nil
		}
		if msg.Source == profile.Source {
			cmd := m.handleProfileAction(msg.Action)
			return m, cmd
		}
	}

	return m, m.broadcast(msg)
}

// broadcast hands msg to every controller. Controllers ignore messages of
// other loaders and menu groups.
func (m *Model) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	m.eachController(func(c *profile.Controller) {
		cmds = append(cmds, c.Update(msg))
		m.restoreCursor(c)
	})
	return tea.Batch(cmds...)
}

func (m *Model) restoreCursor(c *profile.Controller) {
	pos, ok := m.restore[c.ID()]
	if !ok || c.LoaderState() != loader.StateDelivered {
		return
	}
	c.RestoreCursor(pos)
	delete(m.restore, c.ID())
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.overlay != nil {
		var cmd tea.Cmd
		m.overlay, cmd = m.overlay.Update(msg)
		return cmd
	}
	top := m.Top()
	if top.PopupActive() {
		return top.Update(msg)
	}

	key := msg.String()
	switch keymap.Global.Resolve(key) { //nolint:exhaustive // view actions go to the controller
	case keymap.ActionQuit:
		m.shutdown()
		return tea.Quit
	case keymap.ActionHelp:
		help := helpbindings.New()
		m.openOverlay(&help)
		return nil
	case keymap.ActionNextTab:
		return m.switchTab((m.active + 1) % len(m.tabs))
	case keymap.ActionPrevTab:
		return m.switchTab((m.active + len(m.tabs) - 1) % len(m.tabs))
	case keymap.ActionSwitchTab:
		return m.switchTab(int(key[0] - '1'))
	case keymap.ActionBack:
		if m.Depth() > 1 {
			return m.pop()
		}
	case keymap.ActionCycleLayout:
		return m.cycleLayout()
	case keymap.ActionScanLibrary:
		return m.startScan()
	}
	return top.Update(msg)
}

// notify sends n off the update loop. D-Bus calls block.
func (m *Model) notify(n notify.Notification, track bool) tea.Cmd {
	if m.notifier == nil {
		return nil
	}
	notifier := m.notifier
	return func() tea.Msg {
		id, err := notifier.Notify(n)
		return notifiedMsg{id: id, track: track, err: err}
	}
}

func (m *Model) openOverlay(p popup.Popup) {
	p.SetSize(m.width, m.height)
	m.overlay = p
}

func (m *Model) handleProfileAction(a action.Action) tea.Cmd {
	switch a := a.(type) {
	case profile.OpenProfile:
		def, ok := profile.Lookup(a.Kind)
		if !ok {
			m.log.WithField("kind", a.Kind).Warn("open unknown view")
			return nil
		}
		return m.push(def, a.Args)
	case profile.OpenArtist:
		return m.openArtist(a.Name)
	case profile.FavoriteResult:
		return m.favoritesStatus(a)
	}
	return nil
}

func (m *Model) openArtist(name string) tea.Cmd {
	if m.artists == nil {
		return nil
	}
	artists := m.artists
	return func() tea.Msg {
		a, err := artists.ArtistByName(context.Background(), name)
		if err != nil {
			return profile.ErrorMsg{Op: errmsg.OpLibraryLoad, Err: fmt.Errorf("artist %q: %w", name, err)}
		}
		return action.Msg{Source: profile.Source, Action: profile.OpenProfile{
			Kind: profile.KindArtistSongs,
			Args: profile.Args{ID: a.ID, Name: a.Name},
		}}
	}
}

func (m *Model) favoritesStatus(res profile.FavoriteResult) tea.Cmd {
	if len(res.Added) == 0 && len(res.Failed) > 0 {
		what := render.Count(len(res.Failed), "song")
		return m.setStatus(errmsg.FormatWith(errmsg.OpFavoriteAdd, what, res.Failed[0].Err), true)
	}
	text := "Added " + render.Count(len(res.Added), "song") + " to favorites"
	if len(res.Failed) > 0 {
		text += fmt.Sprintf(", %d failed", len(res.Failed))
	}
	return m.setStatus(text, len(res.Failed) > 0)
}

// push opens a detail view on top of the active tab.
func (m *Model) push(def profile.Definition, args profile.Args) tea.Cmd {
	t := m.tabs[m.active]
	t.top().Pause()
	c := m.newController(def, args)
	t.stack = append(t.stack, c)
	m.saveTabs()
	return c.ActivityCreated()
}

// pop closes the top detail view of the active tab.
func (m *Model) pop() tea.Cmd {
	t := m.tabs[m.active]
	top := t.top()
	top.Pause()
	top.Detach()
	delete(m.restore, top.ID())
	t.stack = t.stack[:len(t.stack)-1]
	m.saveTabs()
	return t.top().ActivityCreated()
}

func (m *Model) switchTab(i int) tea.Cmd {
	if i < 0 || i >= len(m.tabs) || i == m.active {
		return nil
	}
	m.Top().Pause()
	m.active = i
	m.saveTabs()
	return m.activate()
}

// cycleLayout moves the kind of the top view to its next layout and
// re-lays out every view of that kind.
func (m *Model) cycleLayout() tea.Cmd {
	if m.layouts == nil {
		return nil
	}
	kind := m.Top().Kind()
	l, err := m.layouts.CycleLayout(kind)
	if err != nil {
		return m.setStatus(errmsg.Format(errmsg.OpLayoutSave, err), true)
	}
	m.eachController(func(c *profile.Controller) {
		if c.Kind() == kind && m.width > 0 {
			c.CreateView(m.width, m.bodyHeight())
		}
	})
	return m.setStatus("Layout: "+string(l), false)
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// shutdown stops a running scan, flushes caches and saves the tabs.
func (m *Model) shutdown() {
	if m.scanCancel != nil {
		m.scanCancel()
	}
	for _, t := range m.tabs {
		t.top().Pause()
	}
	m.saveTabs()
}
