package profile

import (
	"github.com/llehouerou/crates/internal/errmsg"
	"github.com/llehouerou/crates/internal/ui/action"
)

// Source is the action.Msg source of controller actions.
const Source = "profile"

// OpenProfile asks the host to open a profile.
type OpenProfile struct {
	Kind string
	Args Args
}

// ActionType implements action.Action.
func (OpenProfile) ActionType() string { return "profile.open" }

// OpenArtist asks the host to open the profile of the named artist.
type OpenArtist struct {
	Name string
}

// ActionType implements action.Action.
func (OpenArtist) ActionType() string { return "profile.open_artist" }

// ErrorMsg reports a failed operation to the host.
type ErrorMsg struct {
	Op  errmsg.Op
	Err error
}

// Text returns the user-facing message.
func (e ErrorMsg) Text() string {
	return errmsg.Format(e.Op, e.Err)
}

// StatusMsg is an informational message for the host status line.
type StatusMsg struct {
	Text string
}

// FavoriteFailure is one song that could not be added to favorites.
type FavoriteFailure struct {
	ID  int64
	Err error
}

// FavoriteResult is the outcome of an add-to-favorites batch. A failure
// never aborts the batch.
type FavoriteResult struct {
	Added  []int64
	Failed []FavoriteFailure
}

// ActionType implements action.Action.
func (FavoriteResult) ActionType() string { return "profile.favorites_added" }

func actionMsg(a action.Action) action.Msg {
	return action.Msg{Source: Source, Action: a}
}
