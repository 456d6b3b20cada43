package render

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "Kind of Blue", 20, "Kind of Blue"},
		{"exact", "Kind of Blue", 12, "Kind of Blue"},
		{"cut", "A Love Supreme", 9, "A Love..."},
		{"only ellipsis", "Giant Steps", 3, "..."},
		{"empty", "", 10, ""},
		{"control bytes dropped", "Blue\x00 Train\x1b", 20, "Blue Train"},
		{"invalid utf-8 dropped", "Mingus\xff Ah Um", 20, "Mingus Ah Um"},
		{"nbsp becomes space", "Kind\u00a0of Blue", 20, "Kind of Blue"},
		{"tab kept", "a\tb", 20, "a\tb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.width))
		})
	}
}

func TestTruncateAndPad_ExactWidth(t *testing.T) {
	for _, in := range []string{"", "Bitches Brew", "A Very Long Album Title Indeed", "坂本龍一 - 千のナイフ"} {
		assert.Equal(t, 14, lipgloss.Width(TruncateAndPad(in, 14)), in)
		assert.Equal(t, 14, lipgloss.Width(TruncateAndPadEllipsis(in, 14)), in)
	}
	assert.Equal(t, "A Very Long A…", TruncateAndPadEllipsis("A Very Long Album", 14))
}

func TestRow(t *testing.T) {
	assert.Equal(t, "Blue Train      1957", Row("Blue Train", "1957", 20))
	assert.Equal(t, "Blue Train 1957", Row("Blue Train", "1957", 8), "keeps one space when too narrow")
}

func TestSeparatorAndEmptyLine(t *testing.T) {
	assert.Equal(t, "────", Separator(4))
	assert.Equal(t, "   ", EmptyLine(3))
}

func TestCount(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 songs"},
		{1, "1 song"},
		{2, "2 songs"},
		{1204, "1,204 songs"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Count(tt.n, "song"))
	}
}

func TestCenter(t *testing.T) {
	assert.Equal(t, "  ab  ", Center("ab", 6))
	assert.Equal(t, " abc  ", Center("abc", 6))
	assert.Equal(t, " 日本 ", Center("日本", 6))
	assert.Equal(t, "ab...", Center("abcdefgh", 5))
}
