package render

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-ladders/internal/board"
	"github.com/vovakirdan/tui-ladders/internal/core"
	"github.com/vovakirdan/tui-ladders/internal/game"
)

func TestBoardSize(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		wantW int
		wantH int
	}{
		{"tiny board uses token width", 2, 13, 7},
		{"classic board", 10, 63, 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := BoardSize(board.MustNew(tt.size, nil, nil))
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("BoardSize() = %dx%d, expected %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestDrawBoardLayout(t *testing.T) {
	b := board.MustNew(2, nil, nil)
	players := []game.Player{
		{ID: 0, Name: "Ada", Position: 0},
		{ID: 1, Name: "Bob", Position: 3},
	}

	s := NewBoardScreen(b, players)

	expected := []string{
		"┌───────────┐",
		"│    4    3 │",
		"│      2    │",
		"│    1    2 │",
		"│           │",
		"└───────────┘",
		" Start: 1",
	}
	lines := strings.Split(Plain(s), "\n")
	if len(lines) != len(expected) {
		t.Fatalf("got %d lines, expected %d:\n%s", len(lines), len(expected), Plain(s))
	}
	for i, want := range expected {
		if lines[i] != want {
			t.Errorf("line %d = %q, expected %q", i, lines[i], want)
		}
	}
}

func TestDrawBoardTransitions(t *testing.T) {
	b := board.MustNew(3, map[int]int{8: 2}, map[int]int{3: 7})
	s := NewBoardScreen(b, nil)
	out := Plain(s)

	if !strings.Contains(out, "8v2") {
		t.Errorf("expected snake label 8v2 in:\n%s", out)
	}
	if !strings.Contains(out, "3^7") {
		t.Errorf("expected ladder label 3^7 in:\n%s", out)
	}
	if strings.Contains(out, "Start:") {
		t.Error("start line should be empty with no players")
	}
}

func TestDrawBoardColors(t *testing.T) {
	b := board.MustNew(2, nil, map[int]int{1: 3})
	players := []game.Player{{ID: 2, Name: "Cy", Position: 4}}
	s := NewBoardScreen(b, players)

	// Square 4 sits at column 0 of the top row; its token line is y=2.
	if c := s.GetCell(2, 2); c.Rune != '3' || c.Color != core.PlayerColor(2) {
		t.Errorf("token cell = %+v, expected seat 3 in its color", c)
	}
	// The ladder label "1^3" ends at x=5 on the bottom row.
	if c := s.GetCell(5, 3); c.Rune != '3' || c.Color != core.ColorLadder {
		t.Errorf("ladder cell = %+v, expected ladder color", c)
	}
	if c := s.GetCell(5, 1); c.Rune != '4' || c.Color != core.ColorFinish {
		t.Errorf("final square cell = %+v, expected finish color", c)
	}
}

func TestDrawBoardSharedSquare(t *testing.T) {
	b := board.MustNew(2, nil, nil)
	players := []game.Player{
		{ID: 0, Position: 1},
		{ID: 1, Position: 1},
		{ID: 2, Position: 1},
		{ID: 3, Position: 1},
	}
	s := NewBoardScreen(b, players)

	if got := s.Row(4); got != "│ 1234      │" {
		t.Errorf("Row(4) = %q, expected all four seats on square 1", got)
	}
}

func TestStyledKeepsText(t *testing.T) {
	s := core.NewScreen(6, 1)
	s.DrawTextColored(0, 0, "ab", core.ColorSnake)
	s.DrawTextColored(2, 0, "cd", core.ColorLadder)

	out := Styled(s)
	for _, want := range []string{"ab", "cd"} {
		if !strings.Contains(out, want) {
			t.Errorf("Styled() = %q, missing %q", out, want)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		out      game.Outcome
		expected string
	}{
		{
			name:     "plain move",
			out:      game.Outcome{Roll: 4, From: 0, Landed: 4, To: 4},
			expected: "Ada rolled 4: 0 -> 4",
		},
		{
			name:     "ladder",
			out:      game.Outcome{Roll: 1, From: 0, Landed: 1, To: 38, Transition: board.KindLadder},
			expected: "Ada rolled 1: 0 -> 1, climbed a ladder to 38",
		},
		{
			name:     "snake",
			out:      game.Outcome{Roll: 2, From: 96, Landed: 98, To: 78, Transition: board.KindSnake},
			expected: "Ada rolled 2: 96 -> 98, bitten by a snake, down to 78",
		},
		{
			name:     "overshoot",
			out:      game.Outcome{Roll: 6, From: 97, Landed: 97, To: 97, Overshoot: true, Needed: 3},
			expected: "Ada rolled 6: stays on 97, needs exactly 3",
		},
		{
			name:     "win",
			out:      game.Outcome{Roll: 3, From: 97, Landed: 100, To: 100, Won: true},
			expected: "Ada rolled 3: 97 -> 100 and wins!",
		},
		{
			name:     "extra turn",
			out:      game.Outcome{Roll: 6, From: 2, Landed: 8, To: 8, ExtraTurn: true},
			expected: "Ada rolled 6: 2 -> 8, rolls again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe("Ada", tt.out); got != tt.expected {
				t.Errorf("Describe() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestStandings(t *testing.T) {
	players := []game.Player{{Name: "Ada", Position: 38}, {Name: "Bob", Position: 12}}
	if got := Standings(players); got != "Ada 38 · Bob 12" {
		t.Errorf("Standings() = %q", got)
	}
}
