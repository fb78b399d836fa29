package storetest

import (
	"testing"

	"github.com/vovakirdan/tui-ladders/internal/board"
)

func boardForContract(t *testing.T) *board.Board {
	t.Helper()
	b, err := board.New(10, map[int]int{98: 78}, map[int]int{1: 38})
	if err != nil {
		t.Fatalf("board.New() failed: %v", err)
	}
	return b
}
