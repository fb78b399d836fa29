package render

import (
	"fmt"

	"github.com/vovakirdan/tui-ladders/internal/board"
	"github.com/vovakirdan/tui-ladders/internal/game"
)

// Describe returns a one-line, human-readable account of a turn.
func Describe(name string, out game.Outcome) string {
	var line string
	switch out.Kind() {
	case game.OutcomeWon:
		line = fmt.Sprintf("%s rolled %d: %d -> %d and wins!", name, out.Roll, out.From, out.To)
	case game.OutcomeOvershoot:
		line = fmt.Sprintf("%s rolled %d: stays on %d, needs exactly %d", name, out.Roll, out.From, out.Needed)
	case game.OutcomeRedirected:
		line = fmt.Sprintf("%s rolled %d: %d -> %d, %s", name, out.Roll, out.From, out.Landed, transitionText(out))
	default:
		line = fmt.Sprintf("%s rolled %d: %d -> %d", name, out.Roll, out.From, out.To)
	}
	if out.ExtraTurn {
		line += ", rolls again"
	}
	return line
}

func transitionText(out game.Outcome) string {
	if out.Transition == board.KindSnake {
		return fmt.Sprintf("bitten by a snake, down to %d", out.To)
	}
	return fmt.Sprintf("climbed a ladder to %d", out.To)
}

// Standings lists each player's square, e.g. "Ada 38 · Bob 12".
func Standings(players []game.Player) string {
	var line string
	for i, p := range players {
		if i > 0 {
			line += " · "
		}
		line += fmt.Sprintf("%s %d", p.Name, p.Position)
	}
	return line
}
