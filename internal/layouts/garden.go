package layouts

import "github.com/vovakirdan/tui-ladders/internal/registry"

func init() {
	registry.Register("garden", Garden)
}

// Garden is a 10x10 board with more snakes and a ladder off the start square.
func Garden() registry.Layout {
	return registry.Layout{
		ID:          "garden",
		Title:       "Garden",
		Description: "Ten by ten, ten snakes and nine ladders",
		Size:        10,
		Snakes: map[int]int{
			16: 6,
			47: 26,
			49: 11,
			56: 53,
			62: 19,
			64: 60,
			87: 24,
			93: 73,
			95: 75,
			98: 78,
		},
		Ladders: map[int]int{
			1:  38,
			4:  14,
			9:  31,
			21: 42,
			28: 84,
			36: 44,
			51: 67,
			71: 91,
			80: 99, // the final square is never a transition end
		},
	}
}
