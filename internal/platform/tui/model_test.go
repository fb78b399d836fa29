package tui

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-ladders/internal/board"
	"github.com/vovakirdan/tui-ladders/internal/core"
	"github.com/vovakirdan/tui-ladders/internal/dice"
	"github.com/vovakirdan/tui-ladders/internal/game"
)

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
	downKey  = tea.KeyMsg{Type: tea.KeyDown}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestGame(t *testing.T, b *board.Board, opts GameOptions, rolls ...int) GameModel {
	t.Helper()
	s, err := game.New(b, []string{"Ada", "Bob"}, game.WithID("tui-test"))
	if err != nil {
		t.Fatalf("game.New() failed: %v", err)
	}
	return NewGameModel(s, dice.NewScripted(6, rolls...), opts)
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T, expected GameModel", next)
	}
	return gm, cmd
}

// nextTick returns the tick the running animation is waiting for.
func nextTick(m GameModel) TickMsg {
	if m.anim == nil {
		return TickMsg{}
	}
	return TickMsg{Gen: m.anim.gen}
}

// settle runs the animation to completion.
func settle(t *testing.T, m GameModel) GameModel {
	t.Helper()
	for i := 0; m.Animating(); i++ {
		if i > 200 {
			t.Fatal("animation did not finish")
		}
		m, _ = update(t, m, nextTick(m))
	}
	return m
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"enter", enterKey, core.ActionRoll},
		{"r", runeKey('r'), core.ActionRoll},
		{"s", runeKey('s'), core.ActionSave},
		{"n", runeKey('n'), core.ActionRestart},
		{"?", runeKey('?'), core.ActionHelp},
		{"esc", escKey, core.ActionBack},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey('x'), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.Action(tt.msg); got != tt.expected {
				t.Errorf("Action(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
			}
		})
	}
}

func TestGameModelRollAnimates(t *testing.T) {
	b := board.MustNew(3, nil, map[int]int{2: 7})
	m := newTestGame(t, b, GameOptions{Layout: "tiny"}, 2)

	m, cmd := update(t, m, enterKey)
	if cmd == nil {
		t.Fatal("a move should start the animation")
	}
	if got := m.Session().Players()[0].Position; got != 7 {
		t.Fatalf("session position = %d, expected 7 immediately", got)
	}
	if got := m.display[0].Position; got != 0 {
		t.Errorf("drawn position = %d, expected the token to start at 0", got)
	}

	var drawn []int
	for m.Animating() {
		m, cmd = update(t, m, nextTick(m))
		drawn = append(drawn, m.display[0].Position)
	}
	if !reflect.DeepEqual(drawn, []int{1, 2, 7}) {
		t.Errorf("animation frames = %v, expected [1 2 7]", drawn)
	}
	if cmd != nil {
		t.Error("ticking should stop once the token lands")
	}
	if !reflect.DeepEqual(m.display, m.Session().Players()) {
		t.Errorf("drawn players = %+v, expected session players", m.display)
	}
}

func TestGameModelOvershootDoesNotAnimate(t *testing.T) {
	m := newTestGame(t, board.MustNew(2, nil, nil), GameOptions{}, 6)

	m, cmd := update(t, m, enterKey)
	if cmd != nil || m.Animating() {
		t.Error("an overshoot moves nothing and should not animate")
	}
	if len(m.history) != 1 || !strings.Contains(m.history[0], "needs exactly 4") {
		t.Errorf("history = %v, expected the overshoot line", m.history)
	}
}

func TestGameModelRollDuringAnimation(t *testing.T) {
	m := newTestGame(t, board.MustNew(3, nil, nil), GameOptions{}, 3, 2)

	m, _ = update(t, m, enterKey)
	m, _ = update(t, m, enterKey)

	if m.Session().Turn() != 2 {
		t.Fatalf("Turn() = %d, expected 2", m.Session().Turn())
	}
	if m.display[0].Position != 3 {
		t.Errorf("first token drawn at %d, expected it to land on 3", m.display[0].Position)
	}
	m = settle(t, m)
	if m.display[1].Position != 2 {
		t.Errorf("second token drawn at %d, expected 2", m.display[1].Position)
	}
}

func TestGameModelDropsStaleTicks(t *testing.T) {
	m := newTestGame(t, board.MustNew(3, nil, nil), GameOptions{}, 3, 2)

	m, _ = update(t, m, enterKey)
	stale := nextTick(m)
	m, _ = update(t, m, enterKey)
	current := nextTick(m)
	if stale.Gen == current.Gen {
		t.Fatalf("both animations use generation %d", current.Gen)
	}

	// The first animation's tick arrives after it was cut off.
	m, cmd := update(t, m, stale)
	if cmd != nil {
		t.Error("a stale tick should not schedule another frame")
	}
	if m.display[1].Position != 0 {
		t.Errorf("second token drawn at %d, expected a stale tick to leave it at 0", m.display[1].Position)
	}

	// Only the live chain advances the walk, one square per tick.
	m, cmd = update(t, m, current)
	if cmd == nil || m.display[1].Position != 1 {
		t.Errorf("second token drawn at %d, expected 1 with another frame pending", m.display[1].Position)
	}
}

func TestGameModelWinAndRestart(t *testing.T) {
	m := newTestGame(t, board.MustNew(2, nil, nil), GameOptions{Layout: "tiny"}, 1, 2, 3)

	for i := 0; i < 3; i++ {
		m, _ = update(t, m, enterKey)
	}
	m = settle(t, m)

	if !m.Session().Status().Over() {
		t.Fatal("Ada should have won")
	}
	if view := m.View(); !strings.Contains(view, "Ada wins after 3 turns!") {
		t.Errorf("view missing win banner:\n%s", view)
	}

	m, _ = update(t, m, enterKey)
	if !strings.Contains(m.notice, "The game is over") {
		t.Errorf("notice = %q, expected the game-over hint", m.notice)
	}

	m, _ = update(t, m, runeKey('n'))
	if m.Session().Status().Over() || m.Session().Turn() != 0 {
		t.Error("n should reset the session")
	}
	if len(m.history) != 0 {
		t.Errorf("history = %v, expected it cleared", m.history)
	}
}

func TestGameModelRestartInProgress(t *testing.T) {
	m := newTestGame(t, board.MustNew(2, nil, nil), GameOptions{}, 1)
	m, _ = update(t, m, runeKey('n'))
	if m.notice != "A game is still in progress." {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestGameModelSave(t *testing.T) {
	tests := []struct {
		name   string
		onSave func(context.Context, *game.Session) (string, error)
		want   string
	}{
		{
			name: "saved",
			onSave: func(_ context.Context, s *game.Session) (string, error) {
				return "slot-" + s.ID(), nil
			},
			want: `Saved as "slot-tui-test".`,
		},
		{
			name: "failed",
			onSave: func(context.Context, *game.Session) (string, error) {
				return "", errors.New("redis down")
			},
			want: "Could not save: redis down",
		},
		{
			name: "unavailable",
			want: "Saving is not available.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestGame(t, board.MustNew(2, nil, nil), GameOptions{OnSave: tt.onSave}, 1)
			m, _ = update(t, m, runeKey('s'))
			if m.notice != tt.want {
				t.Errorf("notice = %q, expected %q", m.notice, tt.want)
			}
		})
	}
}

func TestGameModelBack(t *testing.T) {
	standalone := newTestGame(t, board.MustNew(2, nil, nil), GameOptions{}, 1)
	standalone, cmd := update(t, standalone, escKey)
	if cmd == nil || !standalone.IsQuitting() {
		t.Error("esc should quit a standalone game")
	}
	if standalone.View() != "" {
		t.Error("a quitting model renders nothing")
	}

	nested := newTestGame(t, board.MustNew(2, nil, nil), GameOptions{Nested: true}, 1)
	nested, cmd = update(t, nested, escKey)
	if cmd != nil || nested.IsQuitting() || !nested.BackToMenu() {
		t.Error("esc should return a nested game to the menu")
	}
}

func TestGameModelHelpToggle(t *testing.T) {
	m := newTestGame(t, board.MustNew(2, nil, nil), GameOptions{}, 1)
	m, _ = update(t, m, runeKey('?'))
	if !m.help.ShowAll {
		t.Error("? should expand the help")
	}
}

func TestGameModelView(t *testing.T) {
	m := newTestGame(t, board.MustNew(2, nil, nil), GameOptions{Layout: "tiny"}, 1)
	view := m.View()

	for _, want := range []string{"LADDERS · tiny · turn 0", "Ada 0", "Bob 0", "roll"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestWalkPath(t *testing.T) {
	tests := []struct {
		name string
		out  game.Outcome
		want []int
	}{
		{"plain move", game.Outcome{From: 3, Landed: 6, To: 6}, []int{4, 5, 6}},
		{"ladder", game.Outcome{From: 0, Landed: 2, To: 7, Transition: board.KindLadder}, []int{1, 2, 7}},
		{"snake", game.Outcome{From: 5, Landed: 8, To: 2, Transition: board.KindSnake}, []int{6, 7, 8, 2}},
		{"overshoot", game.Outcome{From: 97, Landed: 97, To: 97, Overshoot: true}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := walkPath(tt.out); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("walkPath() = %v, expected %v", got, tt.want)
			}
		})
	}
}
