// Package game implements the Snake and Ladder rules: the turn engine that
// moves a single token and the session that orchestrates turn order, win
// detection, events and save/restore.
//
// The package contains no I/O. It never blocks, sleeps or waits for input;
// rolls are supplied by a dice.Source or pushed directly via Session.Roll.
// Renderers observe the game by subscribing to events.
package game

import (
	"fmt"
	"strings"
)

// Player count limits for a session.
const (
	MinPlayers = 2
	MaxPlayers = 4
)

// NoPlayer is used where a PlayerID is required but no player applies,
// such as the winner of a game still in progress.
const NoPlayer PlayerID = -1

// PlayerID identifies a player by seat. Seat 0 plays first.
type PlayerID int

// Player is a participant and the square their token occupies.
// Position 0 means the token has not entered the board yet.
type Player struct {
	ID       PlayerID
	Name     string
	Position int
}

// State is the coarse lifecycle state of a session.
type State int

const (
	StateInProgress State = iota
	StateWon
)

// String returns the persisted name of the state.
func (s State) String() string {
	switch s {
	case StateInProgress:
		return "in_progress"
	case StateWon:
		return "won"
	default:
		return "unknown"
	}
}

// ParseState converts a persisted state name back to a State.
func ParseState(name string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "in_progress", "":
		return StateInProgress, nil
	case "won":
		return StateWon, nil
	default:
		return StateInProgress, fmt.Errorf("game: unknown state %q", name)
	}
}

// Status is the session status: either in progress or won by Winner.
type Status struct {
	State  State
	Winner PlayerID // NoPlayer unless State is StateWon
}

// InProgress returns a status for a game that has no winner yet.
func InProgress() Status {
	return Status{State: StateInProgress, Winner: NoPlayer}
}

// WonBy returns a terminal status for the given winner.
func WonBy(id PlayerID) Status {
	return Status{State: StateWon, Winner: id}
}

// Over reports whether the game has a winner.
func (s Status) Over() bool {
	return s.State == StateWon
}

func (s Status) String() string {
	if s.Over() {
		return fmt.Sprintf("won by player %d", s.Winner)
	}
	return "in progress"
}

// Rules holds the rule variants a session can be configured with.
type Rules struct {
	// DiceFaces is the highest legal roll.
	DiceFaces int `json:"dice_faces" yaml:"dice_faces" mapstructure:"dice_faces"`

	// ExtraTurnOnMax lets a player roll again after rolling DiceFaces.
	ExtraTurnOnMax bool `json:"extra_turn_on_max" yaml:"extra_turn_on_max" mapstructure:"extra_turn_on_max"`

	// StartPosition is where every token begins: 0 (off the board) or 1.
	StartPosition int `json:"start_position" yaml:"start_position" mapstructure:"start_position"`
}

// DefaultRules returns a six-sided die, no extra turns and tokens starting off the board.
func DefaultRules() Rules {
	return Rules{
		DiceFaces:      6,
		ExtraTurnOnMax: false,
		StartPosition:  0,
	}
}

// Validate checks the rule values.
func (r Rules) Validate() error {
	if r.DiceFaces < 1 {
		return fmt.Errorf("%w: dice faces must be positive, got %d", ErrInvalidRules, r.DiceFaces)
	}
	if r.StartPosition != 0 && r.StartPosition != 1 {
		return fmt.Errorf("%w: start position must be 0 or 1, got %d", ErrInvalidRules, r.StartPosition)
	}
	return nil
}
