package errmsg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		op   Op
		err  error
		want string
	}{
		{OpLibraryDelete, nil, ""},
		{OpLibraryDelete, errors.New("permission denied"), "Failed to delete from library: permission denied"},
		{OpLibraryScan, errors.New("disk gone"), "Failed to scan library: disk gone"},
		{OpPlaylistAddTrack, errors.New("no such playlist"), "Failed to add to playlist: no such playlist"},
		{OpRingtoneSet, errors.New("not supported"), "Failed to set ringtone: not supported"},
	}
	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.op, tt.err))
		})
	}
}

func TestFormatWith(t *testing.T) {
	locked := errors.New("database is locked")

	assert.Equal(t, "Failed to add to favorites '3 songs': database is locked",
		FormatWith(OpFavoriteAdd, "3 songs", locked))
	assert.Equal(t, "Failed to add to favorites: database is locked",
		FormatWith(OpFavoriteAdd, "", locked), "empty subject falls back to Format")
	assert.Empty(t, FormatWith(OpFavoriteAdd, "3 songs", nil))
}
