package config

import (
	"fmt"
	"sync"
)

// Layout is the presentation of a view kind.
type Layout string

const (
	LayoutSimple   Layout = "simple"
	LayoutGrid     Layout = "grid"
	LayoutDetailed Layout = "detailed"
)

// ParseLayout validates a layout name.
func ParseLayout(s string) (Layout, error) {
	switch l := Layout(s); l {
	case LayoutSimple, LayoutGrid, LayoutDetailed:
		return l, nil
	}
	return "", fmt.Errorf("unknown layout %q", s)
}

// Next cycles simple -> grid -> detailed -> simple.
func (l Layout) Next() Layout {
	switch l {
	case LayoutSimple:
		return LayoutGrid
	case LayoutGrid:
		return LayoutDetailed
	default:
		return LayoutSimple
	}
}

// defaultLayouts applies to kinds missing from the config file.
var defaultLayouts = map[string]Layout{
	"albums":  LayoutGrid,
	"artists": LayoutGrid,
}

// LayoutStore persists runtime layout choices.
type LayoutStore interface {
	LayoutOverrides() (map[string]string, error)
	SaveLayout(kind, layout string) error
}

// Preferences answers which layout each view kind uses. Runtime choices
// saved in the store take precedence over the config file.
type Preferences struct {
	mu        sync.RWMutex
	layouts   map[string]Layout
	overrides map[string]Layout
	store     LayoutStore
}

// NewPreferences builds preferences from the config layouts table and the
// overrides found in store. store may be nil. Unknown layout names in the
// config are rejected.
func NewPreferences(layouts map[string]string, store LayoutStore) (*Preferences, error) {
	p := &Preferences{
		layouts:   make(map[string]Layout, len(layouts)),
		overrides: make(map[string]Layout),
		store:     store,
	}
	for kind, name := range layouts {
		l, err := ParseLayout(name)
		if err != nil {
			return nil, fmt.Errorf("layouts.%s: %w", kind, err)
		}
		p.layouts[kind] = l
	}

	if store != nil {
		saved, err := store.LayoutOverrides()
		if err != nil {
			return nil, fmt.Errorf("load layout overrides: %w", err)
		}
		for kind, name := range saved {
			if l, err := ParseLayout(name); err == nil {
				p.overrides[kind] = l
			}
		}
	}
	return p, nil
}

// Layout returns the layout of kind.
func (p *Preferences) Layout(kind string) Layout {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if l, ok := p.overrides[kind]; ok {
		return l
	}
	if l, ok := p.layouts[kind]; ok {
		return l
	}
	if l, ok := defaultLayouts[kind]; ok {
		return l
	}
	return LayoutSimple
}

func (p *Preferences) IsSimpleLayout(kind string) bool {
	return p.Layout(kind) == LayoutSimple
}

func (p *Preferences) IsDetailedLayout(kind string) bool {
	return p.Layout(kind) == LayoutDetailed
}

// SetLayout changes the layout of kind and persists it.
func (p *Preferences) SetLayout(kind string, l Layout) error {
	p.mu.Lock()
	p.overrides[kind] = l
	p.mu.Unlock()

	if p.store == nil {
		return nil
	}
	return p.store.SaveLayout(kind, string(l))
}

// CycleLayout advances kind to its next layout.
func (p *Preferences) CycleLayout(kind string) (Layout, error) {
	next := p.Layout(kind).Next()
	return next, p.SetLayout(kind, next)
}
