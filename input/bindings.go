package input

// Action is the effect a bound key has while it is held.
type Action int

const (
	ActionNone Action = iota
	ActionStrafeLeft
	ActionStrafeRight
	ActionForward
	ActionBackward
	ActionUp
	ActionDown
	ActionYawLeft
	ActionYawRight
	ActionPitchUp
	ActionPitchDown

	// Handled by the event thread instead of the camera.
	ActionExit
)

var actionNames = [...]string{
	ActionNone:        "none",
	ActionStrafeLeft:  "strafe-left",
	ActionStrafeRight: "strafe-right",
	ActionForward:     "forward",
	ActionBackward:    "backward",
	ActionUp:          "up",
	ActionDown:        "down",
	ActionYawLeft:     "yaw-left",
	ActionYawRight:    "yaw-right",
	ActionPitchUp:     "pitch-up",
	ActionPitchDown:   "pitch-down",
	ActionExit:        "exit",
}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Bindings maps keys to actions.
type Bindings map[Key]Action

// DefaultBindings returns the WASD style layout.
func DefaultBindings() Bindings {
	return Bindings{
		KeyA:         ActionStrafeLeft,
		KeyD:         ActionStrafeRight,
		KeyW:         ActionForward,
		KeyS:         ActionBackward,
		KeySpace:     ActionUp,
		KeyLeftShift: ActionDown,
		KeyQ:         ActionYawLeft,
		KeyE:         ActionYawRight,
		KeyR:         ActionPitchUp,
		KeyF:         ActionPitchDown,
		KeyEscape:    ActionExit,
	}
}

// Lookup the action bound to key.
func (b Bindings) Action(key Key) Action {
	return b[key]
}

// Actions maps held keys to their bound actions, skipping unbound keys.
func (b Bindings) Actions(keys []Key) []Action {
	actions := make([]Action, 0, len(keys))
	for _, key := range keys {
		if action := b[key]; action != ActionNone {
			actions = append(actions, action)
		}
	}
	return actions
}
