package game

import (
	"errors"
	"fmt"
)

var (
	// ErrGameAlreadyOver is returned when a turn is requested after a winner is set.
	ErrGameAlreadyOver = errors.New("game: game already over")

	// ErrInvalidRoll matches every *InvalidRollError via errors.Is.
	ErrInvalidRoll = errors.New("game: invalid roll")

	// ErrUnknownPlayer is returned when a roll targets a seat that does not exist.
	ErrUnknownPlayer = errors.New("game: unknown player")

	// ErrPlayerCount is returned when a session has too few or too many players.
	ErrPlayerCount = errors.New("game: a session needs 2 to 4 players")

	// ErrEmptyName is returned for a blank player name.
	ErrEmptyName = errors.New("game: player name must not be empty")

	// ErrInvalidRules is returned by Rules.Validate.
	ErrInvalidRules = errors.New("game: invalid rules")

	// ErrInvalidSnapshot is returned when restoring an inconsistent snapshot.
	ErrInvalidSnapshot = errors.New("game: invalid snapshot")
)

// InvalidRollError reports a die value outside [1, Faces].
// Rolls are never clamped; this always indicates a caller bug.
type InvalidRollError struct {
	Roll  int
	Faces int
}

func (e *InvalidRollError) Error() string {
	return fmt.Sprintf("game: invalid roll %d (expected 1..%d)", e.Roll, e.Faces)
}

// Is lets errors.Is(err, ErrInvalidRoll) match.
func (e *InvalidRollError) Is(target error) bool {
	return target == ErrInvalidRoll
}
