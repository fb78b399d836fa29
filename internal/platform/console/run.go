package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-ladders/internal/core"
	"github.com/vovakirdan/tui-ladders/internal/dice"
	"github.com/vovakirdan/tui-ladders/internal/game"
	"github.com/vovakirdan/tui-ladders/internal/storage"
)

// ErrTurnLimit is returned when an automatic game exceeds Options.MaxTurns.
var ErrTurnLimit = errors.New("console: turn limit reached")

// Options configures a console game.
type Options struct {
	Mode      Mode
	ShowBoard bool             // Redraw the board after every turn
	Auto      bool             // Roll for every player without waiting for input
	Delay     time.Duration    // Pause between automatic turns
	MaxTurns  int              // Stop an automatic game after this many turns; 0 means no limit
	OnSave    storage.SaveFunc // Nil disables the save command
	Logger    *log.Logger
}

const helpText = `Commands:
  Enter, r   roll for the current player
  s          save the game
  n          start a new game (after a win)
  ?          show this help
  q          quit`

// Run plays s on the console until the game is won (automatic mode), the
// input ends, the player quits, or ctx is cancelled. The renderer it
// subscribes to s is removed again when Run returns.
func Run(ctx context.Context, in io.Reader, out io.Writer, s *game.Session, src dice.Source, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	r := NewRenderer(out, s.Board(), opts.Mode, opts.ShowBoard)
	defer s.Subscribe(r)()

	if opts.ShowBoard {
		r.DrawBoard(s.Players())
	}

	if opts.Auto {
		return runAuto(ctx, s, src, opts)
	}

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		prompt(out, s)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("console: read input: %w", err)
			}
			return nil
		}

		line := scanner.Text()
		switch core.ParseCommand(line) {
		case core.ActionQuit:
			return nil
		case core.ActionHelp:
			fmt.Fprintln(out, helpText)
		case core.ActionRoll:
			if s.Status().Over() {
				fmt.Fprintln(out, "The game is over. Type n for a new game or q to quit.")
				continue
			}
			if _, err := s.PlayTurn(src); err != nil {
				return fmt.Errorf("console: play turn: %w", err)
			}
		case core.ActionRestart:
			if !s.Status().Over() {
				fmt.Fprintln(out, "A game is still in progress.")
				continue
			}
			s.Reset()
			if opts.ShowBoard {
				r.DrawBoard(s.Players())
			}
		case core.ActionSave:
			if opts.OnSave == nil {
				fmt.Fprintln(out, "Saving is not available.")
				continue
			}
			name, err := opts.OnSave(ctx, s)
			if err != nil {
				logger.Error("save failed", "session", s.ID(), "error", err)
				fmt.Fprintf(out, "Could not save: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "Saved as %q.\n", name)
		default:
			fmt.Fprintf(out, "Unknown command %q. Type ? for help.\n", line)
		}
	}
}

func runAuto(ctx context.Context, s *game.Session, src dice.Source, opts Options) error {
	for !s.Status().Over() {
		if opts.MaxTurns > 0 && s.Turn() >= opts.MaxTurns {
			return fmt.Errorf("%w after %d turns", ErrTurnLimit, s.Turn())
		}
		if _, err := s.PlayTurn(src); err != nil {
			return fmt.Errorf("console: play turn: %w", err)
		}
		if opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(opts.Delay):
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

func prompt(out io.Writer, s *game.Session) {
	if s.Status().Over() {
		fmt.Fprint(out, "[n] new game, [q] quit > ")
		return
	}
	fmt.Fprintf(out, "%s on %d, [Enter] to roll > ", s.Current().Name, s.Current().Position)
}
