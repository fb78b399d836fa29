package render

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-ladders/internal/board"
	"github.com/vovakirdan/tui-ladders/internal/core"
	"github.com/vovakirdan/tui-ladders/internal/game"
)

// Markers drawn between the two ends of a transition.
const (
	SnakeMarker  = 'v'
	LadderMarker = '^'
)

// Each square takes two screen lines: the label and the tokens on it.
const linesPerSquare = 2

// cellWidth is the label width of one square. It fits the widest
// "from<marker>to" label, the final square number, and a token per seat.
func cellWidth(b *board.Board) int {
	d := len(strconv.Itoa(b.Squares() - 1))
	return max(2*d+1, len(strconv.Itoa(b.Squares())), game.MaxPlayers)
}

// BoardSize returns the screen area DrawBoard needs for b.
func BoardSize(b *board.Board) (w, h int) {
	w = b.Size()*(cellWidth(b)+1) + 3
	h = b.Size()*linesPerSquare + 3
	return w, h
}

// NewBoardScreen allocates a screen sized for b and draws it.
func NewBoardScreen(b *board.Board, players []game.Player) *core.Screen {
	w, h := BoardSize(b)
	s := core.NewScreen(w, h)
	DrawBoard(s, b, players)
	return s
}

// DrawBoard draws b with the top row first, each player's seat number on
// the square they occupy, and tokens still off the board on a start line
// underneath.
func DrawBoard(s *core.Screen, b *board.Board, players []game.Player) {
	s.Clear()
	w, h := BoardSize(b)
	s.DrawBox(core.NewRect(0, 0, w, h-1), core.ColorGray)

	cw := cellWidth(b)
	occupants := make(map[int][]game.Player)
	var waiting []game.Player
	for _, p := range players {
		if p.Position < 1 || p.Position > b.Squares() {
			waiting = append(waiting, p)
			continue
		}
		occupants[p.Position] = append(occupants[p.Position], p)
	}

	for sq := 1; sq <= b.Squares(); sq++ {
		row, col, _ := b.Cell(sq)
		x := 2 + col*(cw+1)
		y := 1 + (b.Size()-1-row)*linesPerSquare

		label, color := squareLabel(b, sq)
		s.DrawTextColored(x+cw-len(label), y, label, color)

		for i, p := range occupants[sq] {
			s.SetColored(x+i, y+1, seatRune(p.ID), core.PlayerColor(int(p.ID)))
		}
	}

	if len(waiting) > 0 {
		s.DrawText(1, h-1, "Start:")
		for i, p := range waiting {
			s.SetColored(8+2*i, h-1, seatRune(p.ID), core.PlayerColor(int(p.ID)))
		}
	}
}

func squareLabel(b *board.Board, sq int) (string, core.Color) {
	switch kind, to := b.Transition(sq); kind {
	case board.KindSnake:
		return fmt.Sprintf("%d%c%d", sq, SnakeMarker, to), core.ColorSnake
	case board.KindLadder:
		return fmt.Sprintf("%d%c%d", sq, LadderMarker, to), core.ColorLadder
	}
	if sq == b.Squares() {
		return strconv.Itoa(sq), core.ColorFinish
	}
	return strconv.Itoa(sq), core.ColorSquare
}

// seatRune is the 1-based seat number shown for a token.
func seatRune(id game.PlayerID) rune {
	return rune('1' + int(id))
}
