package layouts

import "github.com/vovakirdan/tui-ladders/internal/registry"

func init() {
	registry.Register("quick", Quick)
}

// Quick is a 6x6 board for short games.
func Quick() registry.Layout {
	return registry.Layout{
		ID:          "quick",
		Title:       "Quick",
		Description: "Six by six for a game over coffee",
		Size:        6,
		Snakes: map[int]int{
			17: 4,
			23: 9,
			33: 15,
		},
		Ladders: map[int]int{
			3:  12,
			8:  20,
			19: 28,
		},
	}
}
