package keymap

import (
	"slices"
	"strings"
)

// Resolver answers key lookups for one binding context.
type Resolver struct {
	actions map[string]Action
	keys    map[Action][]string
}

// NewResolver indexes bindings both ways. A key bound twice resolves to
// the later binding.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		actions: make(map[string]Action),
		keys:    make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.actions[key] = b.Action
			if !slices.Contains(r.keys[b.Action], key) {
				r.keys[b.Action] = append(r.keys[b.Action], key)
			}
		}
	}
	return r
}

// Resolve returns the action bound to key, or "" when none is.
func (r *Resolver) Resolve(key string) Action {
	return r.actions[key]
}

// KeysFor returns the keys bound to action in binding order.
func (r *Resolver) KeysFor(action Action) []string {
	return r.keys[action]
}

// Hint is one entry of the status line hint, as "<first key> <label>".
type Hint struct {
	Action Action
	Label  string
}

// Hints renders the hints whose action is bound here, joined by " · ".
func (r *Resolver) Hints(hints ...Hint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		if keys := r.keys[h.Action]; len(keys) > 0 {
			parts = append(parts, keys[0]+" "+h.Label)
		}
	}
	return strings.Join(parts, " · ")
}
