package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-ladders/internal/board"
	"github.com/vovakirdan/tui-ladders/internal/core"
	"github.com/vovakirdan/tui-ladders/internal/game"
	"github.com/vovakirdan/tui-ladders/internal/platform/render"
)

// Mode selects how the console renders output.
type Mode int

const (
	ModePlain  Mode = iota // No escape sequences; safe for pipes and logs
	ModeStyled             // Colors via lipgloss
)

// ParseMode maps a --ui value to a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(name) {
	case "plain":
		return ModePlain, nil
	case "styled", "color":
		return ModeStyled, nil
	default:
		return ModePlain, fmt.Errorf("console: unknown mode %q", name)
	}
}

var (
	winStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Renderer is a game.Subscriber that prints each event as it is published.
type Renderer struct {
	out       io.Writer
	board     *board.Board
	mode      Mode
	showBoard bool
}

var _ game.Subscriber = (*Renderer)(nil)

// NewRenderer creates a renderer for games played on b.
// When showBoard is set the board is redrawn after every turn.
func NewRenderer(out io.Writer, b *board.Board, mode Mode, showBoard bool) *Renderer {
	return &Renderer{
		out:       out,
		board:     b,
		mode:      mode,
		showBoard: showBoard,
	}
}

// Send prints the event.
func (r *Renderer) Send(evt game.Event) {
	switch e := evt.(type) {
	case game.TurnPlayed:
		name := playerName(e.Players, e.Outcome.Player)
		fmt.Fprintf(r.out, "%3d. %s\n", e.Turn, r.paintPlayer(e.Outcome.Player, render.Describe(name, e.Outcome)))
		if r.showBoard {
			r.DrawBoard(e.Players)
		}
	case game.GameWon:
		fmt.Fprintln(r.out, r.paint(winStyle, fmt.Sprintf("%s wins after %d turns!", e.Winner.Name, e.Turns)))
	case game.GameReset:
		fmt.Fprintln(r.out, r.paint(noticeStyle, "New game: "+joinPlayers(e.Players)))
	case game.GameRestored:
		fmt.Fprintln(r.out, r.paint(noticeStyle, fmt.Sprintf("Resumed at turn %d: %s", e.Snapshot.Turn, snapshotStandings(e.Snapshot))))
	}
}

// DrawBoard prints the board with the given token positions.
func (r *Renderer) DrawBoard(players []game.Player) {
	s := render.NewBoardScreen(r.board, players)
	if r.mode == ModeStyled {
		fmt.Fprintln(r.out, render.Styled(s))
		return
	}
	fmt.Fprintln(r.out, render.Plain(s))
}

func (r *Renderer) paint(style lipgloss.Style, text string) string {
	if r.mode != ModeStyled {
		return text
	}
	return style.Render(text)
}

func (r *Renderer) paintPlayer(id game.PlayerID, text string) string {
	return r.paint(render.Style(core.PlayerColor(int(id))), text)
}

func playerName(players []game.Player, id game.PlayerID) string {
	for _, p := range players {
		if p.ID == id {
			return p.Name
		}
	}
	return fmt.Sprintf("player %d", id+1)
}

func joinPlayers(players []game.Player) string {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

func snapshotStandings(snap game.Snapshot) string {
	players := make([]game.Player, len(snap.Players))
	for i, p := range snap.Players {
		players[i] = game.Player{ID: game.PlayerID(p.ID), Name: p.Name, Position: p.Position}
	}
	return render.Standings(players)
}
