package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vovakirdan/tui-ladders/internal/game"
)

var (
	// ErrSaveNotFound is returned when a named save does not exist.
	ErrSaveNotFound = errors.New("storage: save not found")

	// ErrEmptySaveName is returned when saving without a name.
	ErrEmptySaveName = errors.New("storage: save name is required")
)

// SnapshotStore persists named game snapshots.
// Implemented by the SQLite Store and the redis store.
type SnapshotStore interface {
	SaveGame(ctx context.Context, g SavedGame) error
	LoadGame(ctx context.Context, name string) (SavedGame, error)
	ListSaves(ctx context.Context) ([]SaveInfo, error)
	DeleteSave(ctx context.Context, name string) error
}

// SavedGame is a snapshot together with the layout and rules it was played
// with. UpdatedAt is set by the store.
type SavedGame struct {
	Name      string        `json:"name"`
	Layout    string        `json:"layout"`
	Rules     game.Rules    `json:"rules"`
	Snapshot  game.Snapshot `json:"snapshot"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// RulesOr returns the rules the game was saved with, or fallback for saves
// written before rules were stored.
func (g SavedGame) RulesOr(fallback game.Rules) game.Rules {
	if g.Rules == (game.Rules{}) {
		return fallback
	}
	return g.Rules
}

// SaveInfo summarises a save for listings.
type SaveInfo struct {
	Name      string
	Layout    string
	Players   []string
	Status    string
	Turn      int
	UpdatedAt time.Time
}

// Info returns the listing summary for a saved game.
func (g SavedGame) Info() SaveInfo {
	return SaveInfo{
		Name:      g.Name,
		Layout:    g.Layout,
		Players:   snapshotNames(g.Snapshot),
		Status:    g.Snapshot.Status,
		Turn:      g.Snapshot.Turn,
		UpdatedAt: g.UpdatedAt,
	}
}

// GameResult is a finished game.
type GameResult struct {
	ID        int64
	SessionID string
	Layout    string
	Winner    string
	Players   []string
	Turns     int
	CreatedAt time.Time
}

// LeaderboardEntry aggregates wins for one player name.
type LeaderboardEntry struct {
	Name        string
	Wins        int
	FewestTurns int
	LastWon     time.Time
}

func snapshotNames(snap game.Snapshot) []string {
	names := make([]string, len(snap.Players))
	for i, p := range snap.Players {
		names[i] = p.Name
	}
	return names
}

// nameSep is the ASCII unit separator used to store name lists in one column.
const nameSep = "\x1f"

func joinNames(names []string) string {
	return strings.Join(names, nameSep)
}

func splitNames(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, nameSep)
}
