package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for board elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Board colors.
const (
	ColorSnake  = ColorBrightRed
	ColorLadder = ColorBrightGreen
	ColorSquare = ColorGray
	ColorFinish = ColorBrightYellow
)

var playerColors = [...]Color{ColorBrightCyan, ColorBrightMagenta, ColorOrange, ColorBrightBlue}

// PlayerColor returns the token color for a seat.
func PlayerColor(seat int) Color {
	if seat < 0 {
		return ColorDefault
	}
	return playerColors[seat%len(playerColors)]
}
