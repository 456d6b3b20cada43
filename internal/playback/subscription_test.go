package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscription_DeliversBufferedEvents(t *testing.T) {
	sub := newSubscription()

	sub.sendMeta(MetaChanged{Reason: MetaPlaylist})
	sub.sendTrack(TrackChange{Index: 1})

	assert.Equal(t, MetaPlaylist, (<-sub.MetaChanged).Reason)
	assert.Equal(t, 1, (<-sub.TrackChanged).Index)
}

func TestSubscription_CloseEndsDone(t *testing.T) {
	sub := newSubscription()
	sub.close()

	_, open := <-sub.Done
	assert.False(t, open)
}

func TestSubscription_DropsWhenSubscriberLags(t *testing.T) {
	sub := newSubscription()

	for i := range eventBufferSize * 2 {
		sub.sendTrack(TrackChange{Index: i})
	}

	require.Len(t, sub.TrackChanged, eventBufferSize)
	assert.Equal(t, 0, (<-sub.TrackChanged).Index, "oldest events are kept")
}
