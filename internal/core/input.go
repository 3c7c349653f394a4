package core

// Action represents a semantic visualizer command, abstracted from physical
// key presses.
type Action int

const (
	ActionNone         Action = iota
	ActionPause               // Space - toggle automatic stepping
	ActionStep                // Right, N - advance one step while paused
	ActionSave                // S - snapshot the search
	ActionRestore             // R - rewind to the snapshot
	ActionRestart             // X - start the search over
	ActionFaster              // + - double animation speed
	ActionSlower              // - - halve animation speed
	ActionNextStrategy        // Tab - restart with the next strategy
	ActionConfirm             // Enter - confirm selection in menu
	ActionBack                // B, Escape - go back to menu
	ActionQuit                // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPause:
		return "Pause"
	case ActionStep:
		return "Step"
	case ActionSave:
		return "Save"
	case ActionRestore:
		return "Restore"
	case ActionRestart:
		return "Restart"
	case ActionFaster:
		return "Faster"
	case ActionSlower:
		return "Slower"
	case ActionNextStrategy:
		return "NextStrategy"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
