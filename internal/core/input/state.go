// Package input turns asynchronous device events into the per-tick logical
// input snapshot consumed by the simulation.
package input

// State is the logical input for one tick. Look and wheel deltas are the
// totals accumulated since the previous sample.
type State struct {
	Forward  bool `json:"forward"`
	Backward bool `json:"backward"`
	Left     bool `json:"left"`
	Right    bool `json:"right"`
	Interact bool `json:"interact"`

	LookDeltaX float64 `json:"look_dx"`
	LookDeltaY float64 `json:"look_dy"`
	WheelDelta float64 `json:"wheel"`

	// FollowToggles counts presses of the follow-camera action.
	FollowToggles int `json:"follow_toggles"`
}

// Directional reports whether any movement key is held.
func (s State) Directional() bool {
	return s.Forward || s.Backward || s.Left || s.Right
}

// Action is a logical control a key can be bound to.
type Action uint8

const (
	ActionNone Action = iota
	ActionForward
	ActionBackward
	ActionLeft
	ActionRight
	ActionInteract
	ActionToggleFollow
)

func (a Action) String() string {
	switch a {
	case ActionForward:
		return "forward"
	case ActionBackward:
		return "backward"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionInteract:
		return "interact"
	case ActionToggleFollow:
		return "toggle_follow"
	default:
		return "none"
	}
}

// ParseAction is the inverse of Action.String.
func ParseAction(name string) (Action, bool) {
	for a := ActionForward; a <= ActionToggleFollow; a++ {
		if a.String() == name {
			return a, true
		}
	}
	return ActionNone, false
}
