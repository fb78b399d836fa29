package game

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/vovakirdan/tui-ladders/internal/board"
)

// PlayerSnapshot is the persisted form of a Player.
type PlayerSnapshot struct {
	ID       int    `json:"id" yaml:"id" mapstructure:"id"`
	Name     string `json:"name" yaml:"name" mapstructure:"name"`
	Position int    `json:"position" yaml:"position" mapstructure:"position"`
}

// Snapshot captures everything needed to resume a session.
// The board and rules are not included; they come from configuration.
type Snapshot struct {
	ID       string           `json:"id" yaml:"id" mapstructure:"id"`
	Players  []PlayerSnapshot `json:"players" yaml:"players" mapstructure:"players"`
	Current  int              `json:"current" yaml:"current" mapstructure:"current"`
	Status   string           `json:"status" yaml:"status" mapstructure:"status"`
	Winner   int              `json:"winner" yaml:"winner" mapstructure:"winner"`          // -1 while in progress
	LastRoll int              `json:"last_roll" yaml:"last_roll" mapstructure:"last_roll"` // 0 when none
	Turn     int              `json:"turn" yaml:"turn" mapstructure:"turn"`
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	status := s.Status()
	players := s.engine.Players()

	snap := Snapshot{
		ID:       s.id,
		Players:  make([]PlayerSnapshot, len(players)),
		Current:  s.current,
		Status:   status.State.String(),
		Winner:   int(status.Winner),
		LastRoll: s.lastRoll,
		Turn:     s.turn,
	}
	for i, p := range players {
		snap.Players[i] = PlayerSnapshot{ID: int(p.ID), Name: p.Name, Position: p.Position}
	}
	return snap
}

// Restore replaces the session state with snap.
// The snapshot is fully validated first; on error the session is unchanged.
func (s *Session) Restore(snap Snapshot) error {
	players, status, err := s.validateSnapshot(snap)
	if err != nil {
		return err
	}

	if snap.ID != "" {
		s.id = snap.ID
	}
	s.engine.load(players, status.Winner)
	s.current = snap.Current
	s.lastRoll = snap.LastRoll
	s.turn = snap.Turn

	s.logger.Debug("session restored", "session", s.id, "turn", s.turn)
	s.publish(GameRestored{SessionID: s.id, Snapshot: s.Snapshot()})
	return nil
}

func (s *Session) validateSnapshot(snap Snapshot) ([]Player, Status, error) {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidSnapshot, fmt.Sprintf(format, args...))
	}

	n := len(snap.Players)
	if n < MinPlayers || n > MaxPlayers {
		return nil, Status{}, invalid("%d players", n)
	}

	last := s.board.Squares()
	players := make([]Player, n)
	for i, p := range snap.Players {
		if p.ID != i {
			return nil, Status{}, invalid("player %d has id %d", i, p.ID)
		}
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, Status{}, invalid("player %d has no name", i)
		}
		if p.Position < 0 || p.Position > last {
			return nil, Status{}, invalid("player %d position %d outside [0, %d]", i, p.Position, last)
		}
		// Play never leaves a token on a snake head or ladder foot, except
		// the start square when tokens begin on 1.
		if kind, _ := s.board.Transition(p.Position); kind != board.KindNone && p.Position != s.rules.StartPosition {
			return nil, Status{}, invalid("player %d is on the %s start at %d", i, kind, p.Position)
		}
		players[i] = Player{ID: PlayerID(i), Name: name, Position: p.Position}
	}

	if snap.Current < 0 || snap.Current >= n {
		return nil, Status{}, invalid("current seat %d", snap.Current)
	}
	if snap.LastRoll < 0 || snap.LastRoll > s.rules.DiceFaces {
		return nil, Status{}, invalid("last roll %d", snap.LastRoll)
	}
	if snap.Turn < 0 {
		return nil, Status{}, invalid("turn %d", snap.Turn)
	}

	state, err := ParseState(snap.Status)
	if err != nil {
		return nil, Status{}, invalid("%v", err)
	}

	switch state {
	case StateWon:
		if snap.Winner < 0 || snap.Winner >= n {
			return nil, Status{}, invalid("winner seat %d", snap.Winner)
		}
		if players[snap.Winner].Position != last {
			return nil, Status{}, invalid("winner is not on square %d", last)
		}
		if snap.Current != snap.Winner {
			return nil, Status{}, invalid("current seat %d is not the winner", snap.Current)
		}
		return players, WonBy(PlayerID(snap.Winner)), nil
	default:
		if snap.Winner != int(NoPlayer) {
			return nil, Status{}, invalid("winner %d set while in progress", snap.Winner)
		}
		for _, p := range players {
			if p.Position == last {
				return nil, Status{}, invalid("%s is on the final square but there is no winner", p.Name)
			}
		}
		return players, InProgress(), nil
	}
}

// Serialize returns the session as a flat map of plain values, suitable for
// JSON or YAML encoding.
func (s *Session) Serialize() map[string]any {
	snap := s.Snapshot()

	players := make([]map[string]any, len(snap.Players))
	for i, p := range snap.Players {
		players[i] = map[string]any{
			"id":       p.ID,
			"name":     p.Name,
			"position": p.Position,
		}
	}

	return map[string]any{
		"id":        snap.ID,
		"players":   players,
		"current":   snap.Current,
		"status":    snap.Status,
		"winner":    snap.Winner,
		"last_roll": snap.LastRoll,
		"turn":      snap.Turn,
	}
}

// Deserialize restores the session from a map produced by Serialize.
// Numbers decoded from JSON (float64) are accepted.
func (s *Session) Deserialize(data map[string]any) error {
	snap, err := DecodeSnapshot(data)
	if err != nil {
		return err
	}
	return s.Restore(snap)
}

// DecodeSnapshot converts a serialized map into a Snapshot without applying it.
func DecodeSnapshot(data map[string]any) (Snapshot, error) {
	snap := Snapshot{Winner: int(NoPlayer)}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(rejectFractions),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &snap,
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("game: snapshot decoder: %w", err)
	}
	if err := dec.Decode(data); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return snap, nil
}

// rejectFractions stops weak typing from truncating 3.7 to 3 when a JSON
// number is decoded into an int field.
func rejectFractions(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Int {
		return data, nil
	}
	var f float64
	switch from.Kind() {
	case reflect.Float64:
		f = data.(float64)
	case reflect.Float32:
		f = float64(data.(float32))
	default:
		return data, nil
	}
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("%v is not a whole number", f)
	}
	return data, nil
}
