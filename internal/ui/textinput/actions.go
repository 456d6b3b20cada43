package textinput

import "github.com/llehouerou/crates/internal/ui/action"

// Source is the action.Msg source of prompt answers.
const Source = "textinput"

// Result is the trimmed text, or Canceled when the prompt was dismissed.
type Result struct {
	Text     string
	Context  any
	Canceled bool
}

func (Result) ActionType() string { return "textinput.result" }

// ActionMsg wraps a prompt action for the parent controller.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: Source, Action: a}
}
