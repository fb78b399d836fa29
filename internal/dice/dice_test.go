package dice

import "testing"

func TestRandomRange(t *testing.T) {
	for _, faces := range []int{1, 4, 6, 20} {
		r := NewRandom(faces, 42)
		seen := make(map[int]bool)
		for i := 0; i < 2000; i++ {
			v := r.Next()
			if v < 1 || v > faces {
				t.Fatalf("d%d rolled %d", faces, v)
			}
			seen[v] = true
		}
		if len(seen) != faces {
			t.Errorf("d%d produced %d distinct values, want %d", faces, len(seen), faces)
		}
	}
}

func TestRandomDeterminism(t *testing.T) {
	a := NewRandom(6, 12345)
	b := NewRandom(6, 12345)

	for i := 0; i < 100; i++ {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("roll %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestRandomZeroSeed(t *testing.T) {
	r := NewRandom(0, 0)
	if r.Seed() == 0 {
		t.Error("zero seed should be replaced")
	}
	if r.Faces() != DefaultFaces {
		t.Errorf("Faces() = %d, want %d", r.Faces(), DefaultFaces)
	}
}

func TestScriptedCycles(t *testing.T) {
	s := NewScripted(6, 2, 5, 7)

	want := []int{2, 5, 7, 2, 5}
	for i, w := range want {
		if got := s.Next(); got != w {
			t.Errorf("Next() #%d = %d, want %d", i, got, w)
		}
	}

	if s.Remaining() != 1 {
		t.Errorf("Remaining() = %d, want 1", s.Remaining())
	}

	s.Reset()
	if got := s.Next(); got != 2 {
		t.Errorf("Next() after Reset = %d, want 2", got)
	}
}

func TestScriptedEmpty(t *testing.T) {
	s := NewScripted(6)
	if s.Next() != 1 || s.Remaining() != 0 {
		t.Error("empty script should always roll 1")
	}
}
