package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-ladders/internal/core"
	"github.com/vovakirdan/tui-ladders/internal/dice"
	"github.com/vovakirdan/tui-ladders/internal/game"
	"github.com/vovakirdan/tui-ladders/internal/platform/render"
	"github.com/vovakirdan/tui-ladders/internal/storage"
)

// historySize is how many recent turns are listed under the board.
const historySize = 6

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	historyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	noticeStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("214"))
	winnerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// GameOptions configures a GameModel.
type GameOptions struct {
	Layout string             // Shown in the title
	Config core.RuntimeConfig // Animation speed
	OnSave storage.SaveFunc   // Nil disables saving
	Logger *log.Logger
	Nested bool // Back returns to the caller instead of quitting the program
}

// animation walks one token square by square from where it was to where the
// turn left it. It only changes what is drawn; the session already holds the
// final positions.
type animation struct {
	gen    int
	player game.PlayerID
	path   []int
}

// GameModel is the Bubble Tea model for the board screen.
type GameModel struct {
	session *game.Session
	src     dice.Source
	opts    GameOptions
	keys    KeyMap
	help    help.Model
	screen  *core.Screen
	logger  *log.Logger

	display []game.Player // Positions as currently drawn
	anim    *animation
	animGen int // Generation of the latest animation
	history []string
	notice  string

	width      int
	height     int
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a board screen for s, rolling with src.
func NewGameModel(s *game.Session, src dice.Source, opts GameOptions) GameModel {
	if opts.Config.TickRate == 0 {
		opts.Config = core.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return GameModel{
		session: s,
		src:     src,
		opts:    opts,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		screen:  render.NewBoardScreen(s.Board(), s.Players()),
		logger:  logger,
		display: s.Players(),
		width:   opts.Config.ScreenW,
		height:  opts.Config.ScreenH,
	}
}

// Init initializes the model.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleAction(m.keys.Action(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

func (m GameModel) handleAction(action core.Action) (tea.Model, tea.Cmd) {
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		m.backToMenu = true
		if !m.opts.Nested {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll

	case core.ActionRoll:
		return m.roll()

	case core.ActionRestart:
		if !m.session.Status().Over() {
			m.notice = "A game is still in progress."
			return m, nil
		}
		m.session.Reset()
		m.anim = nil
		m.display = m.session.Players()
		m.history = nil
		m.notice = "New game."

	case core.ActionSave:
		m.notice = m.save()
	}

	return m, nil
}

func (m GameModel) roll() (tea.Model, tea.Cmd) {
	// A roll during an animation first lands the moving token.
	m.anim = nil
	m.display = m.session.Players()

	if m.session.Status().Over() {
		m.notice = "The game is over. Press n for a new game."
		return m, nil
	}

	player := m.session.Current()
	out, err := m.session.PlayTurn(m.src)
	if err != nil {
		m.logger.Error("turn failed", "session", m.session.ID(), "error", err)
		m.notice = err.Error()
		return m, nil
	}
	m.notice = ""

	m.history = append(m.history, render.Describe(player.Name, out))
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}

	path := walkPath(out)
	if len(path) == 0 {
		return m, nil
	}
	m.animGen++
	m.display = m.withPosition(out.Player, out.From)
	m.anim = &animation{gen: m.animGen, player: out.Player, path: path}
	return m, tickCmd(m.opts.Config.FrameInterval(), m.animGen)
}

func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	// Ticks still in flight from a cut-off animation end their chain here.
	if m.anim == nil || msg.Gen != m.anim.gen {
		return m, nil
	}

	next := m.anim.path[0]
	m.display = m.withPosition(m.anim.player, next)
	m.anim = &animation{gen: m.anim.gen, player: m.anim.player, path: m.anim.path[1:]}

	if len(m.anim.path) == 0 {
		m.anim = nil
		m.display = m.session.Players()
		return m, nil
	}
	return m, tickCmd(m.opts.Config.FrameInterval(), m.anim.gen)
}

// walkPath lists the squares a token passes through during a turn: each
// square up to where the roll landed, then the far end of any snake or ladder.
func walkPath(out game.Outcome) []int {
	if out.Overshoot {
		return nil
	}
	var path []int
	for sq := out.From + 1; sq <= out.Landed; sq++ {
		path = append(path, sq)
	}
	if out.To != out.Landed {
		path = append(path, out.To)
	}
	return path
}

func (m GameModel) withPosition(id game.PlayerID, pos int) []game.Player {
	players := make([]game.Player, len(m.display))
	copy(players, m.display)
	for i := range players {
		if players[i].ID == id {
			players[i].Position = pos
		}
	}
	return players
}

func (m GameModel) save() string {
	if m.opts.OnSave == nil {
		return "Saving is not available."
	}
	name, err := m.opts.OnSave(context.Background(), m.session)
	if err != nil {
		m.logger.Error("save failed", "session", m.session.ID(), "error", err)
		return "Could not save: " + err.Error()
	}
	return fmt.Sprintf("Saved as %q.", name)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("LADDERS · %s · turn %d", m.opts.Layout, m.session.Turn())
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	render.DrawBoard(m.screen, m.session.Board(), m.display)
	b.WriteString(render.Styled(m.screen))
	b.WriteString("\n")

	b.WriteString(m.playersLine())
	b.WriteString("\n\n")

	for _, line := range m.history {
		b.WriteString(historyStyle.Render(line))
		b.WriteString("\n")
	}

	if status := m.session.Status(); status.Over() && m.anim == nil {
		winner, _ := playerByID(m.session.Players(), status.Winner)
		b.WriteString(winnerStyle.Render(fmt.Sprintf("%s wins after %d turns! Press n for a new game.", winner.Name, m.session.Turn())))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m GameModel) playersLine() string {
	current := m.session.Current().ID
	parts := make([]string, len(m.display))
	for i, p := range m.display {
		marker := "  "
		if p.ID == current && !m.session.Status().Over() {
			marker = "▶ "
		}
		text := fmt.Sprintf("%s%d %s %d", marker, int(p.ID)+1, p.Name, p.Position)
		parts[i] = render.Style(core.PlayerColor(int(p.ID))).Render(text)
	}
	return strings.Join(parts, "   ")
}

func playerByID(players []game.Player, id game.PlayerID) (game.Player, bool) {
	for _, p := range players {
		if p.ID == id {
			return p, true
		}
	}
	return game.Player{}, false
}

// Session returns the session being played.
func (m GameModel) Session() *game.Session {
	return m.session
}

// Animating reports whether a token is still moving.
func (m GameModel) Animating() bool {
	return m.anim != nil
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for s.
func Run(s *game.Session, src dice.Source, opts GameOptions) error {
	p := tea.NewProgram(
		NewGameModel(s, src, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
