package layouts

import "github.com/vovakirdan/tui-ladders/internal/registry"

func init() {
	registry.Register("classic", Classic)
}

// Classic is the traditional 10x10 board.
func Classic() registry.Layout {
	return registry.Layout{
		ID:          "classic",
		Title:       "Classic",
		Description: "Ten by ten, eight snakes and eight ladders",
		Size:        10,
		Snakes: map[int]int{
			17: 7,
			54: 34,
			62: 19,
			64: 60,
			87: 24,
			93: 73,
			96: 75,
			98: 79,
		},
		Ladders: map[int]int{
			3:  37,
			5:  14,
			9:  31,
			21: 42,
			28: 84,
			51: 67,
			71: 90,
			80: 99,
		},
	}
}
