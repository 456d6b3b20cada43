package keymap

import (
	"testing"
)

func TestByContext(t *testing.T) {
	tests := []struct {
		name      string
		context   string
		minLength int
	}{
		{"global context", ContextGlobal, 5},
		{"view context", ContextView, 10},
		{"menu context", ContextMenu, 5},
		{"dialog context", ContextDialog, 2},
		{"unknown context returns empty", "unknown", 0},
		{"empty context returns empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ByContext(tt.context)

			if tt.minLength == 0 && len(result) != 0 {
				t.Errorf("ByContext(%q) returned %d items, expected empty", tt.context, len(result))
			}
			if len(result) < tt.minLength {
				t.Errorf("ByContext(%q) returned %d items, expected at least %d", tt.context, len(result), tt.minLength)
			}
			for _, b := range result {
				if b.Context != tt.context {
					t.Errorf("binding %v has context %q, want %q", b.Keys, b.Context, tt.context)
				}
			}
		})
	}
}

func TestAll_NoDuplicateKeysWithinContext(t *testing.T) {
	seen := make(map[string]Action)
	for _, b := range All {
		if len(b.Keys) == 0 {
			t.Errorf("binding %q has no keys", b.Action)
		}
		if b.Description == "" {
			t.Errorf("binding %q has no description", b.Action)
		}
		for _, k := range b.Keys {
			id := b.Context + "/" + k
			if prev, ok := seen[id]; ok {
				t.Errorf("key %q bound to %q and %q in %s", k, prev, b.Action, b.Context)
			}
			seen[id] = b.Action
		}
	}
}

func TestGlobalAndView_DoNotOverlap(t *testing.T) {
	for _, b := range ByContext(ContextView) {
		for _, k := range b.Keys {
			if a := Global.Resolve(k); a != "" {
				t.Errorf("view key %q is shadowed by global action %q", k, a)
			}
		}
	}
}
