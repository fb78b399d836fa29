package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	_ "github.com/vovakirdan/tui-ladders/internal/layouts"
	"github.com/vovakirdan/tui-ladders/internal/storage"
)

func updateMenu(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T, expected MenuModel", next)
	}
	return mm
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(80, 24)

	m = updateMenu(t, m, downKey)
	m = updateMenu(t, m, enterKey)

	if m.Selected() == nil {
		t.Fatal("enter should select a layout")
	}
	if got := m.Selected().ID; got != "garden" {
		t.Errorf("Selected().ID = %q, expected garden", got)
	}
}

func TestMenuCursorBounds(t *testing.T) {
	m := NewMenuModel(80, 24)
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d, expected to stay at 0", m.cursor)
	}
	for i := 0; i < 10; i++ {
		m = updateMenu(t, m, downKey)
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d, expected to stop at %d", m.cursor, len(m.items)-1)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := updateMenu(t, NewMenuModel(80, 24), tabKey)
	if !m.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}

	m = updateMenu(t, NewMenuModel(80, 24), runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestMenuView(t *testing.T) {
	view := NewMenuModel(80, 24).View()
	for _, want := range []string{"Classic", "Garden", "Quick", "10x10", "6x6"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q:\n%s", want, view)
		}
	}
}

// fakeResults is an in-memory ResultStore.
type fakeResults struct {
	recorded []storage.GameResult
	err      error
}

func (f *fakeResults) RecordResult(_ context.Context, r storage.GameResult) (int64, error) {
	f.recorded = append(f.recorded, r)
	return int64(len(f.recorded)), nil
}

func (f *fakeResults) Leaderboard(context.Context, int) ([]storage.LeaderboardEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []storage.LeaderboardEntry{
		{Name: "Ada", Wins: 3, FewestTurns: 21, LastWon: time.Now()},
		{Name: "Bob", Wins: 1, FewestTurns: 40, LastWon: time.Now()},
	}, nil
}

func (f *fakeResults) RecentResults(context.Context, int) ([]storage.GameResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []storage.GameResult{
		{Layout: "classic", Winner: "Ada", Players: []string{"Ada", "Bob"}, Turns: 21, CreatedAt: time.Now()},
	}, nil
}

func updateScoreboard(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update returned %T, expected ScoreboardModel", next)
	}
	return sm
}

func TestScoreboardViews(t *testing.T) {
	m := NewScoreboardModel(&fakeResults{}, 100, 30)

	if m.Rows() != 2 {
		t.Errorf("leaderboard rows = %d, expected 2", m.Rows())
	}
	if view := m.View(); !strings.Contains(view, "LEADERBOARD") || !strings.Contains(view, "Ada") {
		t.Errorf("leaderboard view:\n%s", view)
	}

	m = updateScoreboard(t, m, tabKey)
	if m.Rows() != 1 {
		t.Errorf("recent rows = %d, expected 1", m.Rows())
	}
	if view := m.View(); !strings.Contains(view, "RECENT GAMES") {
		t.Errorf("recent view:\n%s", view)
	}

	m = updateScoreboard(t, m, escKey)
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back without quitting")
	}
}

func TestScoreboardTableHeight(t *testing.T) {
	tests := []struct {
		height int
		want   int
	}{
		{30, 22},
		{5, 3},
		{200, maxRows},
	}

	for _, tt := range tests {
		m := NewScoreboardModel(&fakeResults{}, 100, 24)
		m = updateScoreboard(t, m, tea.WindowSizeMsg{Width: 100, Height: tt.height})
		if got := m.TableHeight(); got != tt.want {
			t.Errorf("height %d: TableHeight() = %d, expected %d", tt.height, got, tt.want)
		}
	}
}

func TestScoreboardEmptyStates(t *testing.T) {
	if view := NewScoreboardModel(nil, 80, 24).View(); !strings.Contains(view, "not being recorded") {
		t.Errorf("nil source view:\n%s", view)
	}

	failing := NewScoreboardModel(&fakeResults{err: errors.New("db locked")}, 80, 24)
	if view := failing.View(); !strings.Contains(view, "db locked") {
		t.Errorf("error view:\n%s", view)
	}
}
