package storage

import (
	"context"
	"fmt"

	"github.com/vovakirdan/tui-ladders/internal/game"
)

// SaveFunc persists a session and returns the name it was saved under.
type SaveFunc func(ctx context.Context, s *game.Session) (string, error)

// Saver returns a SaveFunc that stores sessions played on layout under name.
// With an empty name each session gets its own slot, named after the layout
// and the start of the session id, so repeated saves overwrite that slot.
func Saver(store SnapshotStore, name, layout string) SaveFunc {
	return func(ctx context.Context, s *game.Session) (string, error) {
		slot := name
		if slot == "" {
			slot = AutoSaveName(layout, s.ID())
		}
		save := SavedGame{
			Name:     slot,
			Layout:   layout,
			Rules:    s.Rules(),
			Snapshot: s.Snapshot(),
		}
		if err := store.SaveGame(ctx, save); err != nil {
			return "", err
		}
		return slot, nil
	}
}

// AutoSaveName is the slot name used for a session saved without a name.
func AutoSaveName(layout, sessionID string) string {
	id := sessionID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s-%s", layout, id)
}
