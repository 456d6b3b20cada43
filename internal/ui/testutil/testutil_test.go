package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey_RoundTripsBindingNames(t *testing.T) {
	for _, name := range []string{
		"enter", "esc", "tab", "shift+tab", "backspace", "up", "down", "left", "right",
		"home", "end", "pgup", "pgdown", "ctrl+c", "ctrl+d", "ctrl+u", "f5",
		"q", "G", "?", ".", "1",
	} {
		assert.Equal(t, name, Key(name).String())
	}
}

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no ansi codes", "Blue Train", "Blue Train"},
		{"with color codes", "\x1b[31mred\x1b[0m text", "red text"},
		{"with multiple codes", "\x1b[1;32mbold green\x1b[0m", "bold green"},
		{"truecolor", "\x1b[38;2;167;139;250mSongs\x1b[0m", "Songs"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripANSI(tt.input))
		})
	}
}

func TestLines(t *testing.T) {
	assert.Equal(t, 0, Lines(""))
	assert.Equal(t, 1, Lines("one"))
	assert.Equal(t, 3, Lines("a\n\n   "), "padding lines count")
}

func TestMaxWidth(t *testing.T) {
	assert.Equal(t, 0, MaxWidth(""))
	assert.Equal(t, 5, MaxWidth("ab\n\x1b[1mhello\x1b[0m\nxyz"))
	assert.Equal(t, 4, MaxWidth("日本"), "wide runes count twice")
}
