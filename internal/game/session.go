package game

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-ladders/internal/board"
	"github.com/vovakirdan/tui-ladders/internal/dice"
)

// Session is one play-through from the starting positions to a winner.
// It decides whose turn it is, records the status and publishes events.
//
// Session is single-threaded: PlayTurn and Roll must not be called again
// before the previous call returns.
type Session struct {
	id     string
	board  *board.Board
	rules  Rules
	engine *Engine

	current  int
	lastRoll int // 0 when no roll has been made since the last reset
	turn     int

	logger      *log.Logger
	subscribers []subscription
	nextSub     int
}

type subscription struct {
	id  int
	sub Subscriber
}

// Option configures a Session.
type Option func(*Session)

// WithRules sets the rule variants. Defaults to DefaultRules().
func WithRules(r Rules) Option {
	return func(s *Session) {
		s.rules = r
	}
}

// WithLogger sets the logger used for turn-level debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSubscriber registers subscribers that receive every event.
func WithSubscriber(subs ...Subscriber) Option {
	return func(s *Session) {
		for _, sub := range subs {
			s.Subscribe(sub)
		}
	}
}

// WithID overrides the generated session identifier.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// New creates a session for the named players on the given board.
// Turn order follows the order of names.
func New(b *board.Board, names []string, opts ...Option) (*Session, error) {
	if b == nil {
		return nil, fmt.Errorf("game: board is required")
	}

	s := &Session{
		id:     uuid.NewString(),
		board:  b,
		rules:  DefaultRules(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.rules.Validate(); err != nil {
		return nil, err
	}

	players, err := seatPlayers(names, s.rules.StartPosition)
	if err != nil {
		return nil, err
	}
	s.engine = NewEngine(b, s.rules.DiceFaces, players)

	return s, nil
}

// NewFromSnapshot creates a session and immediately restores snap into it.
func NewFromSnapshot(b *board.Board, snap Snapshot, opts ...Option) (*Session, error) {
	names := make([]string, len(snap.Players))
	for i, p := range snap.Players {
		names[i] = p.Name
	}

	s, err := New(b, names, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Restore(snap); err != nil {
		return nil, err
	}
	return s, nil
}

func seatPlayers(names []string, start int) ([]Player, error) {
	if len(names) < MinPlayers || len(names) > MaxPlayers {
		return nil, fmt.Errorf("%w: got %d", ErrPlayerCount, len(names))
	}

	players := make([]Player, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: seat %d", ErrEmptyName, i)
		}
		players[i] = Player{ID: PlayerID(i), Name: name, Position: start}
	}
	return players, nil
}

// PlayTurn rolls src for the current player and applies the roll.
// The source is not consulted once the game is over.
func (s *Session) PlayTurn(src dice.Source) (Outcome, error) {
	if s.Status().Over() {
		return Outcome{}, ErrGameAlreadyOver
	}
	return s.Roll(src.Next())
}

// Roll applies an already-rolled value for the current player.
//
// After a win the current player stays on the winner and the session becomes
// terminal. Otherwise play passes to the next seat, unless ExtraTurnOnMax is
// set and the roll was the highest face. A rejected roll changes nothing.
func (s *Session) Roll(roll int) (Outcome, error) {
	if s.Status().Over() {
		return Outcome{}, ErrGameAlreadyOver
	}

	player := s.engine.players[s.current]
	out, err := s.engine.ApplyRoll(player.ID, roll)
	if err != nil {
		return Outcome{}, err
	}

	s.lastRoll = roll
	s.turn++

	switch {
	case out.Won:
		// Current stays on the winner.
	case s.rules.ExtraTurnOnMax && roll == s.rules.DiceFaces:
		out.ExtraTurn = true
	default:
		s.current = (s.current + 1) % len(s.engine.players)
	}

	s.logger.Debug("turn played",
		"session", s.id,
		"turn", s.turn,
		"player", player.Name,
		"roll", roll,
		"from", out.From,
		"to", out.To,
		"outcome", out.Kind(),
	)

	status := s.Status()
	s.publish(TurnPlayed{
		SessionID: s.id,
		Turn:      s.turn,
		Outcome:   out,
		Status:    status,
		Next:      PlayerID(s.current),
		Players:   s.engine.Players(),
	})

	if out.Won {
		winner, _ := s.engine.Player(player.ID)
		s.logger.Info("game won", "session", s.id, "winner", winner.Name, "turns", s.turn)
		s.publish(GameWon{SessionID: s.id, Winner: winner, Turns: s.turn})
	}

	return out, nil
}

// Reset puts every token back on the start square and restarts play with seat 0.
// The board is shared and never modified.
func (s *Session) Reset() {
	s.engine.reset(s.rules.StartPosition)
	s.current = 0
	s.lastRoll = 0
	s.turn = 0

	s.logger.Debug("session reset", "session", s.id)
	s.publish(GameReset{SessionID: s.id, Players: s.engine.Players()})
}

// Subscribe adds a subscriber for future events. The returned function
// removes it again; calling it more than once is harmless.
func (s *Session) Subscribe(sub Subscriber) (unsubscribe func()) {
	s.nextSub++
	id := s.nextSub
	s.subscribers = append(s.subscribers, subscription{id: id, sub: sub})
	return func() {
		for i, e := range s.subscribers {
			if e.id == id {
				// Copy so a publish in progress keeps iterating the old slice.
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (s *Session) publish(evt Event) {
	for _, e := range s.subscribers {
		e.sub.Send(evt)
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Board returns the shared board.
func (s *Session) Board() *board.Board {
	return s.board
}

// Rules returns the rule variants in effect.
func (s *Session) Rules() Rules {
	return s.rules
}

// Players returns a copy of the players in turn order.
func (s *Session) Players() []Player {
	return s.engine.Players()
}

// Current returns the player whose turn it is (the winner once the game is over).
func (s *Session) Current() Player {
	return s.engine.players[s.current]
}

// Status returns whether the game is in progress or won.
func (s *Session) Status() Status {
	if id, ok := s.engine.Winner(); ok {
		return WonBy(id)
	}
	return InProgress()
}

// LastRoll returns the most recent roll, if any, for display.
func (s *Session) LastRoll() (int, bool) {
	return s.lastRoll, s.lastRoll > 0
}

// Turn returns how many turns have been played since the last reset.
func (s *Session) Turn() int {
	return s.turn
}
