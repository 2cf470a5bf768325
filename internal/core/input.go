package core

// Input is the controller state for a single simulation tick.
// Left and Right are level-triggered; Jump and Attack are edge-triggered, so a
// held button reports true only on the tick it was pressed.
type Input struct {
	Left   bool
	Right  bool
	Jump   bool
	Attack bool
}

// Direction returns -1 for left, +1 for right and 0 when neither or both are held.
func (in Input) Direction() int {
	switch {
	case in.Left && !in.Right:
		return -1
	case in.Right && !in.Left:
		return 1
	default:
		return 0
	}
}

// Action represents a semantic host action, abstracted from physical key presses.
// Hosts map keys to actions; the engine maps actions to Input or to operational controls.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - run left
	ActionRight          // D, Right arrow - run right
	ActionJump           // Space, W, Up - jump
	ActionAttack         // X, F - throw fireball
	ActionPause          // P - pause/resume
	ActionRestart        // R - rebuild the world
	ActionPattern        // T - cycle test patterns
	ActionFaster         // + - raise target FPS
	ActionSlower         // - - lower target FPS
	ActionConnect        // C - connect/disconnect the link
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionAttack:
		return "Attack"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionPattern:
		return "Pattern"
	case ActionFaster:
		return "Faster"
	case ActionSlower:
		return "Slower"
	case ActionConnect:
		return "Connect"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsMovement reports whether the action feeds the per-tick Input snapshot
// rather than an operational control.
func (a Action) IsMovement() bool {
	switch a {
	case ActionLeft, ActionRight, ActionJump, ActionAttack:
		return true
	default:
		return false
	}
}
