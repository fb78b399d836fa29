package game

import (
	"fmt"

	"github.com/vovakirdan/tui-ladders/internal/board"
)

// Phase is a step of the per-turn state machine.
type Phase int

const (
	PhaseAwaitingRoll Phase = iota
	PhaseMoved
	PhaseResolved
	PhaseTurnComplete
	PhaseGameWon
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingRoll:
		return "AwaitingRoll"
	case PhaseMoved:
		return "Moved"
	case PhaseResolved:
		return "Resolved"
	case PhaseTurnComplete:
		return "TurnComplete"
	case PhaseGameWon:
		return "GameWon"
	default:
		return "Unknown"
	}
}

// OutcomeKind summarises what happened during a turn.
type OutcomeKind int

const (
	OutcomeMoved OutcomeKind = iota
	OutcomeRedirected
	OutcomeOvershoot
	OutcomeWon
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeMoved:
		return "Moved"
	case OutcomeRedirected:
		return "Redirected"
	case OutcomeOvershoot:
		return "Overshoot"
	case OutcomeWon:
		return "Won"
	default:
		return "Unknown"
	}
}

// Outcome is the complete result of applying one roll.
type Outcome struct {
	Player PlayerID
	Roll   int

	From   int // Square before the roll
	Landed int // Raw landing square (From on overshoot)
	To     int // Final square after any snake or ladder

	Transition board.Kind // KindNone unless a snake or ladder fired
	Won        bool
	Overshoot  bool
	Needed     int  // Exact roll needed to finish, set on overshoot
	ExtraTurn  bool // Same player rolls again

	Phases []Phase // State machine steps taken, in order
}

// Kind returns the headline outcome of the turn.
func (o Outcome) Kind() OutcomeKind {
	switch {
	case o.Won:
		return OutcomeWon
	case o.Overshoot:
		return OutcomeOvershoot
	case o.Transition != board.KindNone:
		return OutcomeRedirected
	default:
		return OutcomeMoved
	}
}

// Redirected reports whether a snake or ladder moved the token.
func (o Outcome) Redirected() bool {
	return o.Transition != board.KindNone
}

func (o Outcome) String() string {
	switch o.Kind() {
	case OutcomeWon:
		return fmt.Sprintf("player %d rolled %d: %d -> %d, won", o.Player, o.Roll, o.From, o.To)
	case OutcomeOvershoot:
		return fmt.Sprintf("player %d rolled %d: overshoot, needs %d", o.Player, o.Roll, o.Needed)
	case OutcomeRedirected:
		return fmt.Sprintf("player %d rolled %d: %d -> %d, %s to %d", o.Player, o.Roll, o.From, o.Landed, o.Transition, o.To)
	default:
		return fmt.Sprintf("player %d rolled %d: %d -> %d", o.Player, o.Roll, o.From, o.To)
	}
}
