package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testResolver() *Resolver {
	return NewResolver([]Binding{
		{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},
		{ActionRefresh, []string{"r", "f5"}, "Refresh", ContextView},
		{ActionMoveUp, []string{"k", "up"}, "Move up", ContextView},
		{ActionMoveUp, []string{"up", "ctrl+p"}, "Move up", ContextView},
	})
}

func TestResolver_Resolve(t *testing.T) {
	r := testResolver()

	tests := []struct {
		key  string
		want Action
	}{
		{"q", ActionQuit},
		{"ctrl+c", ActionQuit},
		{"f5", ActionRefresh},
		{"up", ActionMoveUp},
		{"ctrl+p", ActionMoveUp},
		{"x", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.key))
		})
	}
}

func TestResolver_KeysForKeepsOrderWithoutDuplicates(t *testing.T) {
	r := testResolver()

	assert.Equal(t, []string{"k", "up", "ctrl+p"}, r.KeysFor(ActionMoveUp))
	assert.Equal(t, []string{"r", "f5"}, r.KeysFor(ActionRefresh))
	assert.Empty(t, r.KeysFor(ActionLocateSong))
}

func TestResolver_HintsSkipsUnboundActions(t *testing.T) {
	r := testResolver()

	got := r.Hints(
		Hint{ActionRefresh, "refresh"},
		Hint{ActionCycleLayout, "layout"},
		Hint{ActionQuit, "quit"},
	)

	assert.Equal(t, "r refresh · q quit", got)
}

func TestGlobalAndViewResolvers(t *testing.T) {
	assert.Equal(t, ActionScanLibrary, Global.Resolve("S"))
	assert.Equal(t, ActionOpen, View.Resolve("enter"))
	assert.Equal(t, Action(""), View.Resolve("q"), "global keys do not leak into views")
}
