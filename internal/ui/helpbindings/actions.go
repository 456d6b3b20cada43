package helpbindings

import "github.com/llehouerou/crates/internal/ui/action"

// Close asks the host to dismiss the help popup.
type Close struct{}

func (Close) ActionType() string { return "helpbindings.close" }

// ActionMsg wraps a help popup action for the host.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "helpbindings", Action: a}
}
