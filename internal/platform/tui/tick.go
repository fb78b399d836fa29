// Package tui provides the Bubble Tea front end: an animated board for
// hot-seat play, a layout picker and a scoreboard, plus the Wish SSH server
// that serves them.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg advances the token animation by one frame. Gen names the
// animation that scheduled it; ticks for a replaced animation are dropped.
type TickMsg struct {
	At  time.Time
	Gen int
}

// tickCmd returns a Bubble Tea command that sends a tick for animation gen
// after interval.
func tickCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Gen: gen}
	})
}
