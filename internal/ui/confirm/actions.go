package confirm

import "github.com/llehouerou/crates/internal/ui/action"

// Source is the action.Msg source of dialog answers.
const Source = "confirm"

// Result is the answer. Context is what the caller passed to Show.
type Result struct {
	Confirmed bool
	Context   any
}

func (Result) ActionType() string { return "confirm.result" }

// ActionMsg wraps a confirm action for the parent controller.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: Source, Action: a}
}
