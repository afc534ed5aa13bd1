package core

// Action represents a semantic game action, abstracted from physical key presses.
// Scenes work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionReact          // Space, Enter, left click - the trial input
	ActionUp             // W, Up arrow, k - menu navigation
	ActionDown           // S, Down arrow, j - menu navigation
	ActionLeft           // A, Left arrow, h - cycle values / difficulties
	ActionRight          // D, Right arrow, l - cycle values / difficulties
	ActionConfirm        // Enter - confirm selection in menu
	ActionPause          // P - pause/unpause trial
	ActionStats          // S (in play) - toggle the session statistics panel
	ActionBack           // B, Escape - go back to menu
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionReact:
		return "React"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionPause:
		return "Pause"
	case ActionStats:
		return "Stats"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered between two ticks.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
