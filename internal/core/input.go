package core

// Action represents a semantic viewer action, abstracted from physical keys.
type Action int

const (
	ActionNone     Action = iota
	ActionSpawn           // N - spawn a pet
	ActionKill            // X, Delete - kill the selected pet
	ActionNext            // Tab - select next pet
	ActionPrev            // Shift+Tab - select previous pet
	ActionTrigger         // T - trigger a random special behavior
	ActionSave            // S - save pets to storage
	ActionPause           // P, Space - pause/unpause
	ActionToggleHelp      // ? - toggle full help
	ActionQuit            // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionSpawn:
		return "Spawn"
	case ActionKill:
		return "Kill"
	case ActionNext:
		return "Next"
	case ActionPrev:
		return "Prev"
	case ActionTrigger:
		return "Trigger"
	case ActionSave:
		return "Save"
	case ActionPause:
		return "Pause"
	case ActionToggleHelp:
		return "ToggleHelp"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
