package board

import (
	"errors"
	"testing"
)

func classicTables() (map[int]int, map[int]int) {
	snakes := map[int]int{17: 7, 54: 34, 62: 19, 64: 60, 87: 24, 93: 73, 96: 75, 98: 79}
	ladders := map[int]int{3: 37, 5: 14, 9: 31, 21: 42, 28: 84, 51: 67, 71: 90, 80: 99}
	return snakes, ladders
}

func TestNewValid(t *testing.T) {
	snakes, ladders := classicTables()
	b, err := New(10, snakes, ladders)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if b.Size() != 10 {
		t.Errorf("Size() = %d, want 10", b.Size())
	}
	if b.Squares() != 100 {
		t.Errorf("Squares() = %d, want 100", b.Squares())
	}
	if got := len(b.Transitions()); got != 16 {
		t.Errorf("Transitions() has %d entries, want 16", got)
	}
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		snakes  map[int]int
		ladders map[int]int
		field   string
		square  int
	}{
		{"size too small", 1, nil, nil, "size", 1},
		{"snake going up", 10, map[int]int{20: 30}, nil, "snakes", 20},
		{"ladder going down", 10, nil, map[int]int{30: 20}, "ladders", 30},
		{"snake on final square", 10, map[int]int{100: 50}, nil, "snakes", 100},
		{"ladder to final square", 10, nil, map[int]int{80: 100}, "ladders", 80},
		{"ladder from zero", 10, nil, map[int]int{0: 10}, "ladders", 0},
		{"snake below board", 10, map[int]int{5: 0}, nil, "snakes", 5},
		{"overlapping starts", 10, map[int]int{40: 10}, map[int]int{40: 60}, "ladders", 40},
		{"ladder into snake", 10, map[int]int{50: 10}, map[int]int{20: 50}, "ladders", 20},
		{"snake onto ladder", 10, map[int]int{50: 20}, map[int]int{20: 60}, "snakes", 50},
		{"lowest error wins", 10, map[int]int{30: 40, 60: 70}, nil, "snakes", 30},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.size, tc.snakes, tc.ladders)
			if err == nil {
				t.Fatal("New() should fail")
			}

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error %v is not a *ConfigError", err)
			}
			if cfgErr.Field != tc.field || cfgErr.Square != tc.square {
				t.Errorf("ConfigError = {%s %d}, want {%s %d}", cfgErr.Field, cfgErr.Square, tc.field, tc.square)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	b := MustNew(10, map[int]int{98: 78}, map[int]int{1: 38})

	tests := []struct {
		position int
		want     int
		kind     Kind
	}{
		{1, 38, KindLadder},
		{98, 78, KindSnake},
		{50, 50, KindNone},
		{100, 100, KindNone},
		{0, 0, KindNone},
	}

	for _, tc := range tests {
		if got := b.Resolve(tc.position); got != tc.want {
			t.Errorf("Resolve(%d) = %d, want %d", tc.position, got, tc.want)
		}
		if kind, _ := b.Transition(tc.position); kind != tc.kind {
			t.Errorf("Transition(%d) kind = %v, want %v", tc.position, kind, tc.kind)
		}
	}
}

func TestResolveDoesNotChain(t *testing.T) {
	snakes, ladders := classicTables()
	b := MustNew(10, snakes, ladders)

	for x := 0; x <= b.Squares(); x++ {
		once := b.Resolve(x)
		if twice := b.Resolve(once); twice != once {
			t.Errorf("Resolve(Resolve(%d)) = %d, want %d", x, twice, once)
		}
	}
}

func TestBoardIsImmutable(t *testing.T) {
	snakes := map[int]int{40: 10}
	b := MustNew(10, snakes, nil)

	// Mutating the input map must not leak into the board
	snakes[40] = 5
	snakes[60] = 1
	if b.Resolve(40) != 10 || b.Resolve(60) != 60 {
		t.Error("board changed after mutating constructor input")
	}

	// Nor may mutating the returned copy
	out := b.Snakes()
	out[40] = 1
	if b.Resolve(40) != 10 {
		t.Error("board changed after mutating Snakes() result")
	}
}

func TestTransitionsSorted(t *testing.T) {
	b := MustNew(10, map[int]int{50: 10, 20: 2}, map[int]int{30: 45, 5: 15})

	got := b.Transitions()
	want := []Transition{
		{KindLadder, 5, 15},
		{KindSnake, 20, 2},
		{KindLadder, 30, 45},
		{KindSnake, 50, 10},
	}
	if len(got) != len(want) {
		t.Fatalf("Transitions() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Transitions()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCellRoundTrip(t *testing.T) {
	b := MustNew(10, nil, nil)

	tests := []struct {
		square   int
		row, col int
	}{
		{1, 0, 0},
		{10, 0, 9},
		{11, 1, 9},
		{20, 1, 0},
		{21, 2, 0},
		{100, 9, 0},
	}

	for _, tc := range tests {
		row, col, ok := b.Cell(tc.square)
		if !ok || row != tc.row || col != tc.col {
			t.Errorf("Cell(%d) = (%d, %d, %v), want (%d, %d, true)", tc.square, row, col, ok, tc.row, tc.col)
		}
	}

	for sq := 1; sq <= b.Squares(); sq++ {
		row, col, _ := b.Cell(sq)
		if back, ok := b.Square(row, col); !ok || back != sq {
			t.Errorf("Square(Cell(%d)) = %d", sq, back)
		}
	}

	if _, _, ok := b.Cell(0); ok {
		t.Error("Cell(0) should be off the board")
	}
	if _, ok := b.Square(10, 0); ok {
		t.Error("Square(10, 0) should be off the board")
	}
}
