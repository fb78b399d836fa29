// Package board defines the immutable Snake and Ladder board: its size and
// the fixed snake and ladder transition tables.
// It has no dependencies on the game loop or any renderer.
package board

import (
	"fmt"
	"sort"
)

// Kind identifies the type of transition hosted by a square.
type Kind int

const (
	KindNone   Kind = iota // Plain square
	KindSnake              // Moves the token down to the tail
	KindLadder             // Moves the token up to the top
)

// String returns a human-readable name for the transition kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSnake:
		return "snake"
	case KindLadder:
		return "ladder"
	default:
		return "unknown"
	}
}

// Transition is a single forced reposition from one square to another.
type Transition struct {
	Kind Kind
	From int
	To   int
}

// Board is a validated, read-only board layout.
// A single Board may be shared by any number of sessions.
type Board struct {
	size    int
	snakes  map[int]int
	ladders map[int]int
}

// New validates the layout and returns an immutable Board.
// The provided maps are copied, so later changes by the caller have no effect.
// Returns a *ConfigError describing the first violated rule.
func New(size int, snakes, ladders map[int]int) (*Board, error) {
	if size < 2 {
		return nil, &ConfigError{Field: "size", Square: size, Reason: "board size must be at least 2"}
	}

	b := &Board{
		size:    size,
		snakes:  copyTable(snakes),
		ladders: copyTable(ladders),
	}

	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// MustNew is like New but panics on an invalid layout.
// Intended for built-in layouts that are known to be valid.
func MustNew(size int, snakes, ladders map[int]int) *Board {
	b, err := New(size, snakes, ladders)
	if err != nil {
		panic(fmt.Sprintf("board: %v", err))
	}
	return b
}

// validate checks bounds, direction, overlap and chaining of all transitions.
// Squares are visited in ascending order so the reported error is stable.
func (b *Board) validate() error {
	last := b.Squares()

	for _, from := range sortedKeys(b.snakes) {
		to := b.snakes[from]
		if err := checkBounds("snakes", from, to, last); err != nil {
			return err
		}
		if to >= from {
			return &ConfigError{Field: "snakes", Square: from, Reason: fmt.Sprintf("snake must go down, got %d -> %d", from, to)}
		}
	}

	for _, from := range sortedKeys(b.ladders) {
		to := b.ladders[from]
		if err := checkBounds("ladders", from, to, last); err != nil {
			return err
		}
		if to <= from {
			return &ConfigError{Field: "ladders", Square: from, Reason: fmt.Sprintf("ladder must go up, got %d -> %d", from, to)}
		}
		if _, clash := b.snakes[from]; clash {
			return &ConfigError{Field: "ladders", Square: from, Reason: "square already hosts a snake"}
		}
	}

	// No chained triggers: a transition must never end on another start.
	for _, t := range b.Transitions() {
		if kind, _ := b.Transition(t.To); kind != KindNone {
			return &ConfigError{
				Field:  t.Kind.String() + "s",
				Square: t.From,
				Reason: fmt.Sprintf("%s %d -> %d ends on the start of a %s", t.Kind, t.From, t.To, kind),
			}
		}
	}

	return nil
}

// checkBounds ensures both ends of a transition lie strictly inside the board.
// The final square can never host or receive a transition.
func checkBounds(field string, from, to, last int) error {
	if from < 1 || from >= last {
		return &ConfigError{Field: field, Square: from, Reason: fmt.Sprintf("start must be in [1, %d]", last-1)}
	}
	if to < 1 || to >= last {
		return &ConfigError{Field: field, Square: from, Reason: fmt.Sprintf("end %d must be in [1, %d]", to, last-1)}
	}
	return nil
}

// Size returns the edge length of the board.
func (b *Board) Size() int {
	return b.size
}

// Squares returns the total number of squares, which is also the winning square.
func (b *Board) Squares() int {
	return b.size * b.size
}

// Resolve returns where a token that landed on position ends up.
// Snake heads map to tails, ladder feet map to tops, anything else is unchanged.
func (b *Board) Resolve(position int) int {
	_, to := b.Transition(position)
	return to
}

// Transition reports the kind of transition starting at position and its target.
// For plain squares it returns KindNone and position itself.
func (b *Board) Transition(position int) (Kind, int) {
	if to, ok := b.snakes[position]; ok {
		return KindSnake, to
	}
	if to, ok := b.ladders[position]; ok {
		return KindLadder, to
	}
	return KindNone, position
}

// Snakes returns a copy of the snake table (head -> tail).
func (b *Board) Snakes() map[int]int {
	return copyTable(b.snakes)
}

// Ladders returns a copy of the ladder table (foot -> top).
func (b *Board) Ladders() map[int]int {
	return copyTable(b.ladders)
}

// Transitions returns every snake and ladder ordered by starting square.
func (b *Board) Transitions() []Transition {
	result := make([]Transition, 0, len(b.snakes)+len(b.ladders))
	for from, to := range b.snakes {
		result = append(result, Transition{Kind: KindSnake, From: from, To: to})
	}
	for from, to := range b.ladders {
		result = append(result, Transition{Kind: KindLadder, From: from, To: to})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].From < result[j].From
	})
	return result
}

func copyTable(src map[int]int) map[int]int {
	dst := make(map[int]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
