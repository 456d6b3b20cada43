package app

import (
	"github.com/llehouerou/crates/internal/state"
	"github.com/llehouerou/crates/internal/ui/profile"
)

// tabSpec is one top-level library view.
type tabSpec struct {
	name  string // persisted key
	label string
	kind  string // root profile kind
}

var tabSpecs = []tabSpec{
	{name: "songs", label: "Songs", kind: profile.KindSongs},
	{name: "albums", label: "Albums", kind: profile.KindAlbums},
	{name: "artists", label: "Artists", kind: profile.KindArtists},
	{name: "genres", label: "Genres", kind: profile.KindGenres},
	{name: "playlists", label: "Playlists", kind: profile.KindPlaylists},
	{name: "favorites", label: "Favorites", kind: profile.KindFavorites},
	{name: "recents", label: "Recent", kind: profile.KindRecents},
}

// tab holds the navigation stack of one tab. The root controller is never
// popped.
type tab struct {
	spec  tabSpec
	stack []*profile.Controller
}

func (t *tab) top() *profile.Controller {
	return t.stack[len(t.stack)-1]
}

func (t *tab) root() *profile.Controller {
	return t.stack[0]
}

func tabIndex(name string) int {
	for i, s := range tabSpecs {
		if s.name == name {
			return i
		}
	}
	return -1
}

// restoreTabs reopens the detail views and cursors saved by a previous run.
func (m *Model) restoreTabs() {
	if m.state == nil {
		return
	}
	saved, err := m.state.GetTabs()
	if err != nil {
		m.log.WithError(err).Warn("read saved tabs")
		return
	}
	for _, ts := range saved {
		i := tabIndex(ts.Tab)
		if i < 0 {
			continue
		}
		t := m.tabs[i]
		if ts.Kind != t.spec.kind {
			def, ok := profile.Lookup(ts.Kind)
			if !ok {
				m.log.WithField("kind", ts.Kind).Warn("unknown saved view")
				continue
			}
			t.stack = append(t.stack, m.newController(def, profile.Args{ID: ts.ArgID, Name: ts.ArgName}))
		}
		if ts.CursorPos > 0 {
			m.restore[t.top().ID()] = ts.CursorPos
		}
		if ts.Active {
			m.active = i
		}
	}
}

// saveTabs records the top view and cursor of every tab.
func (m *Model) saveTabs() {
	if m.state == nil {
		return
	}
	for i, t := range m.tabs {
		s := t.top().SaveState()
		m.state.SaveTab(state.TabState{
			Tab:       t.spec.name,
			Kind:      s.Kind,
			ArgID:     s.Args.ID,
			ArgName:   s.Args.Name,
			CursorPos: s.Cursor,
			Active:    i == m.active,
		})
	}
}
