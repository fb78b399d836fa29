package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-ladders/internal/board"
	"github.com/vovakirdan/tui-ladders/internal/config"
	"github.com/vovakirdan/tui-ladders/internal/core"
	"github.com/vovakirdan/tui-ladders/internal/dice"
	"github.com/vovakirdan/tui-ladders/internal/game"
	"github.com/vovakirdan/tui-ladders/internal/logging"
	"github.com/vovakirdan/tui-ladders/internal/platform/console"
	"github.com/vovakirdan/tui-ladders/internal/platform/tui"
	"github.com/vovakirdan/tui-ladders/internal/registry"
	"github.com/vovakirdan/tui-ladders/internal/storage"
)

// autoTurnLimit stops an automatic game that cannot finish, such as one
// driven by a die that only ever overshoots.
const autoTurnLimit = 10000

var (
	flagUI        string
	flagPlayers   []string
	flagLayout    string
	flagExtraTurn bool
	flagStart     int
	flagFaces     int
	flagResume    string
	flagSaveName  string
	flagAuto      bool
	flagDelay     time.Duration
	flagShowBoard bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a hot-seat game. Players take turns at the same keyboard.

Controls (TUI):
  Enter/R    - Roll for the current player
  S          - Save the game
  N          - New game (after a win)
  ?          - More keys
  Q/Ctrl+C   - Quit

The console modes read one command per line: an empty line rolls,
s saves, n starts a new game, ? shows help and q quits.

Examples:
  ladders play
  ladders play --players Ada,Bob,Cy --layout garden
  ladders play --ui styled --extra-turn
  ladders play --ui plain --auto --seed 7
  ladders play --resume friday`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagUI, "ui", "tui", "Front end: tui, styled or plain")
	playCmd.Flags().StringSliceVar(&flagPlayers, "players", nil, "Player names in turn order (2-4)")
	playCmd.Flags().StringVar(&flagLayout, "layout", "", "Board layout (see 'ladders layouts')")
	playCmd.Flags().BoolVar(&flagExtraTurn, "extra-turn", false, "Roll again after the highest face")
	playCmd.Flags().IntVar(&flagStart, "start", 0, "Start position: 0 (off the board) or 1")
	playCmd.Flags().IntVar(&flagFaces, "faces", 6, "Number of faces on the die")
	playCmd.Flags().StringVar(&flagResume, "resume", "", "Resume a saved game by name, with the rules it was saved with")
	playCmd.Flags().StringVar(&flagSaveName, "save", "", "Name to save under (default: the resumed name, or generated)")
	playCmd.Flags().BoolVar(&flagAuto, "auto", false, "Roll for everyone until someone wins (console only)")
	playCmd.Flags().DurationVar(&flagDelay, "delay", 0, "Pause between automatic turns")
	playCmd.Flags().BoolVar(&flagShowBoard, "board", true, "Draw the board after every turn (console only)")
}

// applyPlayFlags overrides config values with the flags that were set.
func applyPlayFlags(cmd *cobra.Command, cfg *config.GameConfig) {
	flags := cmd.Flags()
	if flags.Changed("players") {
		cfg.Players = flagPlayers
	}
	if flags.Changed("layout") {
		cfg.Layout = flagLayout
		cfg.Board = nil
	}
	if flags.Changed("extra-turn") {
		cfg.Rules.ExtraTurnOnMax = flagExtraTurn
	}
	if flags.Changed("start") {
		cfg.Rules.StartPosition = flagStart
	}
	if flags.Changed("faces") {
		cfg.Rules.DiceFaces = flagFaces
	}
}

func runPlay(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyPlayFlags(cmd, &cfg)

	ui := strings.ToLower(flagUI)
	if ui == "tui" && !isTerminal() {
		ui = "plain"
	}

	logger, err := newLogger(cfg, "ladders")
	if err != nil {
		return err
	}
	if ui == "tui" {
		// Log lines would tear the alternate screen.
		logger = logging.NewNop()
	}

	rules, err := cfg.GameRules()
	if err != nil {
		return err
	}

	// Storage is optional for play; the game works without it.
	backs, err := openBackends(ctx, cfg)
	if err != nil {
		logger.Warn("could not open storage, games will not be saved", "error", err)
		backs = nil
	} else {
		defer backs.Close()
	}

	session, layout, err := startSession(ctx, cfg, rules, backs, logger)
	if err != nil {
		return err
	}

	// A resumed game keeps its saved rules, so size the die from the session.
	seed, err := diceSeed()
	if err != nil {
		return err
	}
	faces := session.Rules().DiceFaces
	src := dice.NewRandom(faces, seed)
	logger.Debug("dice ready", "faces", faces, "seed", seed)

	var onSave storage.SaveFunc
	if backs != nil {
		name := flagSaveName
		if name == "" {
			name = flagResume
		}
		onSave = storage.Saver(backs.saves, name, layout)
	}

	if ui == "tui" {
		rc := core.DefaultConfig()
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			rc.ScreenW = w
			rc.ScreenH = h
		}
		rc.Seed = seed
		return tui.Run(session, src, tui.GameOptions{
			Layout: layout,
			Config: rc,
			OnSave: onSave,
			Logger: logger,
		})
	}

	mode, err := console.ParseMode(ui)
	if err != nil {
		return err
	}
	if mode == console.ModeStyled {
		console.PrintBanner(os.Stdout)
	}

	opts := console.Options{
		Mode:      mode,
		ShowBoard: flagShowBoard,
		Auto:      flagAuto,
		Delay:     flagDelay,
		OnSave:    onSave,
		Logger:    logger,
	}
	if flagAuto {
		opts.MaxTurns = autoTurnLimit
	}
	return console.Run(ctx, os.Stdin, os.Stdout, session, src, opts)
}

// startSession creates a new session, or restores the one named by --resume.
// It returns the session and the name of the board it is played on.
func startSession(ctx context.Context, cfg config.GameConfig, rules game.Rules, backs *backends, logger *log.Logger) (*game.Session, string, error) {
	opts := []game.Option{game.WithLogger(logger)}

	if flagResume == "" {
		opts = append(opts, game.WithRules(rules))
		b, err := cfg.BuildBoard()
		if err != nil {
			return nil, "", err
		}
		layout := cfg.BoardName()
		if backs != nil {
			opts = append(opts, game.WithSubscriber(storage.NewResultRecorder(ctx, backs.store, layout, logger)))
		}
		s, err := game.New(b, cfg.PlayerNames(), opts...)
		if err != nil {
			return nil, "", err
		}
		logger.Info("game started", "session", s.ID(), "layout", layout, "players", len(s.Players()))
		return s, layout, nil
	}

	if backs == nil {
		return nil, "", fmt.Errorf("cannot resume %q: no storage available", flagResume)
	}
	saved, err := backs.saves.LoadGame(ctx, flagResume)
	if err != nil {
		return nil, "", err
	}

	b, err := savedBoard(cfg, saved.Layout)
	if err != nil {
		return nil, "", err
	}
	opts = append(opts,
		game.WithRules(saved.RulesOr(rules)),
		game.WithSubscriber(storage.NewResultRecorder(ctx, backs.store, saved.Layout, logger)),
	)

	s, err := game.NewFromSnapshot(b, saved.Snapshot, opts...)
	if err != nil {
		return nil, "", fmt.Errorf("cannot resume %q: %w", flagResume, err)
	}
	logger.Info("game resumed", "save", flagResume, "session", s.ID(), "turn", s.Turn())
	return s, saved.Layout, nil
}

// savedBoard finds the board a save was played on: a registered layout, or
// the configured custom board.
func savedBoard(cfg config.GameConfig, layout string) (*board.Board, error) {
	if registry.Exists(layout) {
		return registry.Board(layout)
	}
	if cfg.Board != nil && cfg.BoardName() == layout {
		return cfg.BuildBoard()
	}
	return nil, fmt.Errorf("saved game was played on %q, which is neither a layout nor the configured board", layout)
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
