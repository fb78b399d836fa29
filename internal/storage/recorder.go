package storage

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-ladders/internal/game"
)

// ResultWriter records finished games.
type ResultWriter interface {
	RecordResult(ctx context.Context, r GameResult) (int64, error)
}

// ResultRecorder is a game.Subscriber that writes a GameResult whenever a
// session publishes GameWon. Write failures are logged, never returned to
// the session.
type ResultRecorder struct {
	ctx     context.Context
	w       ResultWriter
	layout  string
	logger  *log.Logger
	players []string
}

var _ game.Subscriber = (*ResultRecorder)(nil)

// NewResultRecorder creates a recorder for games played on layout.
func NewResultRecorder(ctx context.Context, w ResultWriter, layout string, logger *log.Logger) *ResultRecorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ResultRecorder{
		ctx:    ctx,
		w:      w,
		layout: layout,
		logger: logger,
	}
}

// Send tracks the seated players and records wins.
func (r *ResultRecorder) Send(evt game.Event) {
	switch e := evt.(type) {
	case game.TurnPlayed:
		r.players = playerNames(e.Players)
	case game.GameReset:
		r.players = playerNames(e.Players)
	case game.GameRestored:
		r.players = snapshotNames(e.Snapshot)
	case game.GameWon:
		res := GameResult{
			SessionID: e.SessionID,
			Layout:    r.layout,
			Winner:    e.Winner.Name,
			Players:   r.players,
			Turns:     e.Turns,
		}
		if _, err := r.w.RecordResult(r.ctx, res); err != nil {
			r.logger.Error("could not record result", "session", e.SessionID, "error", err)
			return
		}
		r.logger.Debug("result recorded", "session", e.SessionID, "winner", e.Winner.Name)
	}
}

func playerNames(players []game.Player) []string {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	return names
}
