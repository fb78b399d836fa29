package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vovakirdan/tui-ladders/internal/core"
	"github.com/vovakirdan/tui-ladders/internal/telemetry"
)

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, expected SessionModel", next)
	}
	return sm
}

func newTestSession(t *testing.T, services Services) SessionModel {
	t.Helper()
	cfg := DefaultSSHServerConfig()
	cfg.Players = []string{"Ada", "Bob"}

	runtime := core.DefaultConfig()
	runtime.Seed = 42
	return NewSessionModel(cfg, services, runtime, "ada")
}

func TestSessionModelFlow(t *testing.T) {
	m := newTestSession(t, Services{})

	m = updateSession(t, m, enterKey)
	if m.screen != screenGame {
		t.Fatalf("screen = %v, expected the board after choosing a layout", m.screen)
	}
	players := m.gameModel.Session().Players()
	if len(players) != 2 || players[0].Name != "Ada" {
		t.Errorf("players = %+v, expected the configured names", players)
	}

	m = updateSession(t, m, escKey)
	if m.screen != screenMenu {
		t.Errorf("screen = %v, expected esc to return to the menu", m.screen)
	}
	if m.quitting {
		t.Error("esc in a game should not end the SSH session")
	}

	m = updateSession(t, m, tabKey)
	if m.screen != screenScores {
		t.Fatalf("screen = %v, expected the scoreboard", m.screen)
	}
	if view := m.View(); !strings.Contains(view, "not being recorded") {
		t.Errorf("scoreboard without a store:\n%s", view)
	}

	m = updateSession(t, m, escKey)
	if m.screen != screenMenu {
		t.Errorf("screen = %v, expected the menu", m.screen)
	}

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil || !next.(SessionModel).quitting {
		t.Error("q in the menu should end the session")
	}
}

func TestSessionModelRecordsFinishedGames(t *testing.T) {
	results := &fakeResults{}
	reg := prometheus.NewRegistry()
	collector, err := telemetry.NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector() failed: %v", err)
	}

	m := newTestSession(t, Services{Results: results, Collector: collector})
	m = updateSession(t, m, enterKey)

	for i := 0; !m.gameModel.Session().Status().Over(); i++ {
		if i > 10000 {
			t.Fatal("game did not finish")
		}
		m = updateSession(t, m, enterKey)
	}

	if len(results.recorded) != 1 {
		t.Fatalf("recorded %d results, expected 1", len(results.recorded))
	}
	got := results.recorded[0]
	if got.Layout != "classic" || got.Turns != m.gameModel.Session().Turn() {
		t.Errorf("result = %+v, expected classic after %d turns", got, m.gameModel.Session().Turn())
	}
	n, err := testutil.GatherAndCount(reg, "ladders_games_won_total")
	if err != nil {
		t.Fatalf("GatherAndCount() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("games won series = %d, expected 1", n)
	}
}

func TestNewSSHServer(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "keys", "host_ed25519")

	srv, err := NewSSHServer(cfg, Services{})
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q", srv.Addr())
	}
}
