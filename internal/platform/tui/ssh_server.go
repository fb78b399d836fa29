package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-ladders/internal/core"
	"github.com/vovakirdan/tui-ladders/internal/dice"
	"github.com/vovakirdan/tui-ladders/internal/game"
	"github.com/vovakirdan/tui-ladders/internal/registry"
	"github.com/vovakirdan/tui-ladders/internal/storage"
	"github.com/vovakirdan/tui-ladders/internal/telemetry"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":2323").
	Address string

	// HostKeyPath is the path to the host key file.
	// It is generated on first start if it does not exist.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Players are the hot-seat names for every game.
	Players []string

	// Rules apply to every game.
	Rules game.Rules

	// Seed fixes the dice for every game; 0 picks a fresh seed per game.
	Seed int64
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":2323",
		HostKeyPath: "~/.ladders/ssh_host_ed25519",
		IdleTimeout: 30 * time.Minute,
		Players:     []string{"Player 1", "Player 2"},
		Rules:       game.DefaultRules(),
	}
}

// ResultStore records and reports finished games.
type ResultStore interface {
	storage.ResultWriter
	ScoreSource
}

// Services are the shared back ends every SSH session uses. Any may be nil.
type Services struct {
	Results   ResultStore
	Saves     storage.SnapshotStore
	Collector *telemetry.Collector
	Logger    *log.Logger
}

// SSHServer wraps a Wish SSH server that gives every connection its own
// hot-seat game.
type SSHServer struct {
	config   SSHServerConfig
	services Services
	server   *ssh.Server
	logger   *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, services Services) (*SSHServer, error) {
	logger := services.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	srv := &SSHServer{
		config:   cfg,
		services: services,
		logger:   logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath != "" && hostKeyPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, hostKeyPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.DefaultConfig()
	cfg.ScreenW = pty.Window.Width
	cfg.ScreenH = pty.Window.Height
	cfg.Seed = s.config.Seed

	model := NewSessionModel(s.config, s.services, cfg, sshSession.User())
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events and tracks active sessions.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		if s.services.Collector != nil {
			s.services.Collector.SessionStarted()
			defer s.services.Collector.SessionEnded()
		}
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("tui: ssh server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// screen is the part of the SSH flow currently shown.
type screen int

const (
	screenMenu screen = iota
	screenScores
	screenGame
)

// SessionModel manages one connection's flow: menu -> game -> menu, with the
// scoreboard reachable from the menu.
type SessionModel struct {
	config   SSHServerConfig
	services Services
	runtime  core.RuntimeConfig
	username string
	logger   *log.Logger

	screen     screen
	menu       MenuModel
	scoreboard ScoreboardModel
	gameModel  GameModel
	notice     string
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg SSHServerConfig, services Services, runtime core.RuntimeConfig, username string) SessionModel {
	logger := services.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		config:   cfg,
		services: services,
		runtime:  runtime,
		username: username,
		logger:   logger.With("user", username),
		menu:     NewMenuModel(runtime.ScreenW, runtime.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.runtime.ScreenW = wsm.Width
		m.runtime.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.menu = NewMenuModel(m.runtime.ScreenW, m.runtime.ScreenH)
		m.scoreboard = NewScoreboardModel(m.scoreSource(), m.runtime.ScreenW, m.runtime.ScreenH)
		m.screen = screenScores
		return m, m.scoreboard.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		gameModel, err := m.newGame(selected.ID)
		m.menu = NewMenuModel(m.runtime.ScreenW, m.runtime.ScreenH)
		if err != nil {
			m.logger.Error("cannot start game", "layout", selected.ID, "error", err)
			m.notice = err.Error()
			return m, nil
		}
		m.notice = ""
		m.gameModel = gameModel
		m.screen = screenGame
		return m, m.gameModel.Init()
	}

	return m, cmd
}

// newGame seats the configured players on layout with every service wired in.
func (m SessionModel) newGame(layout string) (GameModel, error) {
	b, err := registry.Board(layout)
	if err != nil {
		return GameModel{}, err
	}

	seed := m.runtime.Seed
	if seed == 0 {
		if seed, err = dice.NewSeed(); err != nil {
			return GameModel{}, err
		}
	}

	subs := make([]game.Subscriber, 0, 2)
	if m.services.Results != nil {
		subs = append(subs, storage.NewResultRecorder(context.Background(), m.services.Results, layout, m.logger))
	}
	if m.services.Collector != nil {
		subs = append(subs, m.services.Collector.Track(layout))
	}

	session, err := game.New(b, m.config.Players,
		game.WithRules(m.config.Rules),
		game.WithLogger(m.logger),
		game.WithSubscriber(subs...),
	)
	if err != nil {
		return GameModel{}, err
	}
	m.logger.Info("game started", "session", session.ID(), "layout", layout, "seed", seed)

	var onSave storage.SaveFunc
	if m.services.Saves != nil {
		onSave = storage.Saver(m.services.Saves, "", layout)
	}

	model := NewGameModel(session, dice.NewRandom(m.config.Rules.DiceFaces, seed), GameOptions{
		Layout: layout,
		Config: m.runtime,
		OnSave: onSave,
		Logger: m.logger,
		Nested: true,
	})
	return model, nil
}

func (m SessionModel) scoreSource() ScoreSource {
	if m.services.Results == nil {
		return nil
	}
	return m.services.Results
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.screen = screenMenu
		return m, nil
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.screen = screenMenu
		m.gameModel = GameModel{}
		m.menu = NewMenuModel(m.runtime.ScreenW, m.runtime.ScreenH)
		return m, nil
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenScores:
		return m.scoreboard.View()
	}

	view := m.menu.View()
	if m.notice != "" {
		view += "\n" + noticeStyle.Render(centerText(m.notice, m.runtime.ScreenW))
	}
	return view
}
