package dice

// Scripted replays a fixed sequence of rolls, wrapping around at the end.
// Values are returned as given, even when they fall outside [1, Faces()],
// so callers can exercise invalid-roll handling.
type Scripted struct {
	faces int
	rolls []int
	pos   int
}

// NewScripted creates a source that yields rolls in order and then repeats.
// With no rolls it always returns 1.
func NewScripted(faces int, rolls ...int) *Scripted {
	if faces < 1 {
		faces = DefaultFaces
	}
	seq := make([]int, len(rolls))
	copy(seq, rolls)
	return &Scripted{faces: faces, rolls: seq}
}

// Next returns the next scripted roll.
func (s *Scripted) Next() int {
	if len(s.rolls) == 0 {
		return 1
	}
	r := s.rolls[s.pos]
	s.pos = (s.pos + 1) % len(s.rolls)
	return r
}

// Faces returns the number of faces.
func (s *Scripted) Faces() int {
	return s.faces
}

// Remaining returns how many rolls are left before the script wraps.
func (s *Scripted) Remaining() int {
	if len(s.rolls) == 0 {
		return 0
	}
	return len(s.rolls) - s.pos
}

// Reset rewinds the script to its first roll.
func (s *Scripted) Reset() {
	s.pos = 0
}
