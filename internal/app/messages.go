package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/crates/internal/playback"
)

// metaChangedMsg relays a playback MetaChanged event to the views.
type metaChangedMsg playback.MetaChanged

// trackChangedMsg relays a playback TrackChange event.
type trackChangedMsg playback.TrackChange

// subscriptionClosedMsg is sent once the playback service shut down.
type subscriptionClosedMsg struct{}

// notifiedMsg reports a sent desktop notification.
type notifiedMsg struct {
	id    uint32
	track bool
	err   error
}

// clearStatusMsg clears the status line unless a newer status replaced it.
type clearStatusMsg struct {
	seq int
}

// listen waits for the next playback event. It must be re-issued after every
// event to keep listening.
func listen(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.MetaChanged:
			return metaChangedMsg(e)
		case e := <-sub.TrackChanged:
			return trackChangedMsg(e)
		case <-sub.Done:
			return subscriptionClosedMsg{}
		}
	}
}
