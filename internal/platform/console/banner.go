// Package console is the line-oriented front end: it prints turns as they
// happen and reads one command per line, so games can be played over a pipe
// or replayed from a script.
package console

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{` _              _     _               `, "#22c55e"},
	{`| |    __ _  __| | __| | ___ _ __ ___ `, "#4ade80"},
	{`| |   / _' |/ _' |/ _' |/ _ \ '__/ __|`, "#facc15"},
	{`| |__| (_| | (_| | (_| |  __/ |  \__ \`, "#fb923c"},
	{`|_____\__,_|\__,_|\__,_|\___|_|  |___/`, "#f87171"},
}

// PrintBanner writes the title banner in the terminal's color profile.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()

	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Fprintln(w)
}
