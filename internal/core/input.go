package core

import "strings"

// Action represents a player intent, abstracted from physical key presses
// or typed commands.
type Action int

const (
	ActionNone    Action = iota
	ActionRoll           // Enter, Space, r - roll for the current player
	ActionSave           // s - save the game
	ActionRestart        // n - start a new game after a win
	ActionHelp           // ?, h - toggle help
	ActionBack           // Esc - leave the board for the menu
	ActionQuit           // q, Ctrl+C - leave the game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionRoll:
		return "Roll"
	case ActionSave:
		return "Save"
	case ActionRestart:
		return "Restart"
	case ActionHelp:
		return "Help"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ParseCommand maps a typed console command to an action.
// An empty line rolls.
func ParseCommand(line string) Action {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "r", "roll":
		return ActionRoll
	case "s", "save":
		return ActionSave
	case "n", "new", "restart":
		return ActionRestart
	case "?", "h", "help":
		return ActionHelp
	case "q", "quit", "exit":
		return ActionQuit
	default:
		return ActionNone
	}
}
