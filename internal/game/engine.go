package game

import "github.com/vovakirdan/tui-ladders/internal/board"

// Engine applies rolls to players on a board.
// It owns the player records and is the only code that changes a position.
// Engine is not safe for concurrent use.
type Engine struct {
	board   *board.Board
	faces   int
	players []Player
	winner  PlayerID
}

// NewEngine creates an engine for the given players.
// The slice is copied; seats are identified by Player.ID.
func NewEngine(b *board.Board, faces int, players []Player) *Engine {
	ps := make([]Player, len(players))
	copy(ps, players)
	return &Engine{
		board:   b,
		faces:   faces,
		players: ps,
		winner:  NoPlayer,
	}
}

// ApplyRoll moves the player by roll squares and resolves the landing square.
//
// An overshoot is a normal outcome, not an error: the token stays put and the
// outcome reports how much was needed. Landing exactly on the final square
// wins the game without any transition lookup.
//
// Returns ErrGameAlreadyOver once a winner exists, an *InvalidRollError for
// a roll outside [1, faces] and ErrUnknownPlayer for a bad seat.
func (e *Engine) ApplyRoll(id PlayerID, roll int) (Outcome, error) {
	if e.winner != NoPlayer {
		return Outcome{}, ErrGameAlreadyOver
	}
	if roll < 1 || roll > e.faces {
		return Outcome{}, &InvalidRollError{Roll: roll, Faces: e.faces}
	}
	p := e.player(id)
	if p == nil {
		return Outcome{}, ErrUnknownPlayer
	}

	last := e.board.Squares()
	out := Outcome{
		Player: id,
		Roll:   roll,
		From:   p.Position,
		Phases: []Phase{PhaseAwaitingRoll},
	}

	tentative := p.Position + roll
	if tentative > last {
		out.Landed = p.Position
		out.To = p.Position
		out.Overshoot = true
		out.Needed = last - p.Position
		out.Phases = append(out.Phases, PhaseTurnComplete)
		return out, nil
	}

	p.Position = tentative
	out.Landed = tentative
	out.To = tentative
	out.Phases = append(out.Phases, PhaseMoved)

	if tentative == last {
		e.winner = id
		out.Won = true
		out.Phases = append(out.Phases, PhaseGameWon)
		return out, nil
	}

	kind, resolved := e.board.Transition(tentative)
	if kind != board.KindNone {
		p.Position = resolved
		out.Transition = kind
		out.To = resolved
	}
	out.Phases = append(out.Phases, PhaseResolved, PhaseTurnComplete)

	return out, nil
}

// Winner returns the winning seat, if any.
func (e *Engine) Winner() (PlayerID, bool) {
	return e.winner, e.winner != NoPlayer
}

// Player returns a copy of the player in the given seat.
func (e *Engine) Player(id PlayerID) (Player, bool) {
	p := e.player(id)
	if p == nil {
		return Player{}, false
	}
	return *p, true
}

// Players returns a copy of all players in seat order.
func (e *Engine) Players() []Player {
	ps := make([]Player, len(e.players))
	copy(ps, e.players)
	return ps
}

func (e *Engine) player(id PlayerID) *Player {
	if id < 0 || int(id) >= len(e.players) {
		return nil
	}
	return &e.players[id]
}

// reset puts every token back on the start square and clears the winner.
func (e *Engine) reset(start int) {
	for i := range e.players {
		e.players[i].Position = start
	}
	e.winner = NoPlayer
}

// load replaces the engine state wholesale, used when restoring a snapshot.
func (e *Engine) load(players []Player, winner PlayerID) {
	e.players = make([]Player, len(players))
	copy(e.players, players)
	e.winner = winner
}
