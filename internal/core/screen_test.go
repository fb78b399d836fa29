package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(10, 2)

	s.SetColored(1, 0, 'v', ColorSnake)
	if got := s.GetCell(1, 0); got.Rune != 'v' || got.Color != ColorSnake {
		t.Errorf("GetCell(1, 0) = %+v, expected snake cell", got)
	}

	s.DrawTextColored(0, 1, "ab", ColorLadder)
	for x := 0; x < 2; x++ {
		if c := s.GetCell(x, 1); c.Color != ColorLadder {
			t.Errorf("GetCell(%d, 1).Color = %d, expected %d", x, c.Color, ColorLadder)
		}
	}

	s.Set(1, 0, 'x')
	if c := s.GetCell(1, 0); c.Color != ColorDefault {
		t.Errorf("Set should reset the color, got %d", c.Color)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 4)
	s.DrawTextColored(0, 0, "XXXX", ColorRed)

	s.Clear()

	for x := 0; x < 4; x++ {
		if c := s.GetCell(x, 0); c.Rune != ' ' || c.Color != ColorDefault {
			t.Errorf("After Clear, GetCell(%d, 0) = %+v", x, c)
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 2)

	s.DrawText(2, 0, "Hello")
	if got := s.Row(0); got != "  Hello   " {
		t.Errorf("Row(0) = %q, expected %q", got, "  Hello   ")
	}

	// Clipped at the right edge
	s.DrawText(7, 1, "World")
	if got := s.Row(1); got != "       Wor" {
		t.Errorf("Row(1) = %q, expected %q", got, "       Wor")
	}
}

func TestScreenDrawTextUnicode(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawText(0, 0, "▲▼a")

	if s.Get(0, 0) != '▲' || s.Get(1, 0) != '▼' || s.Get(2, 0) != 'a' {
		t.Errorf("Row(0) = %q, expected runes one per cell", s.Row(0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawBox(NewRect(0, 0, 5, 4), ColorGray)

	expected := []string{
		"┌───┐",
		"│   │",
		"│   │",
		"└───┘",
	}
	for y, want := range expected {
		if got := s.Row(y); got != want {
			t.Errorf("Row(%d) = %q, expected %q", y, got, want)
		}
	}
	if c := s.GetCell(0, 0); c.Color != ColorGray {
		t.Errorf("box color = %d, expected %d", c.Color, ColorGray)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(6, 3)
	s.DrawText(0, 0, "ab")
	s.DrawText(2, 2, "cd")

	expected := "ab\n\n  cd"
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}

func TestScreenBounds(t *testing.T) {
	s := NewScreen(4, 2)
	if got := s.Bounds(); got != NewRect(0, 0, 4, 2) {
		t.Errorf("Bounds() = %+v", got)
	}

	s.Set(4, 0, 'x')
	s.Set(0, 2, 'x')
	s.Set(-1, 0, 'x')
	if got := s.String(); got != "\n" {
		t.Errorf("out of bounds writes changed the screen: %q", got)
	}
	if got := s.GetCell(9, 9); got.Rune != ' ' || got.Color != ColorDefault {
		t.Errorf("GetCell out of bounds = %+v", got)
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(5); got != strings.Repeat(" ", 3) {
		t.Errorf("Row out of bounds = %q, expected spaces", got)
	}
}

func TestPlayerColor(t *testing.T) {
	seen := make(map[Color]bool)
	for seat := 0; seat < 4; seat++ {
		c := PlayerColor(seat)
		if c == ColorDefault {
			t.Errorf("PlayerColor(%d) is the default color", seat)
		}
		if seen[c] {
			t.Errorf("PlayerColor(%d) = %d repeats another seat", seat, c)
		}
		seen[c] = true
	}
	if PlayerColor(-1) != ColorDefault {
		t.Error("PlayerColor(-1) should be the default color")
	}
}
