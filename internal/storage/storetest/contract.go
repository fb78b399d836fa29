// Package storetest holds the behaviour every SnapshotStore must share.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-ladders/internal/game"
	"github.com/vovakirdan/tui-ladders/internal/storage"
)

// Snapshot returns a valid in-progress snapshot for three players.
func Snapshot(id string) game.Snapshot {
	return game.Snapshot{
		ID: id,
		Players: []game.PlayerSnapshot{
			{ID: 0, Name: "Ada", Position: 38},
			{ID: 1, Name: "Bob", Position: 4},
			{ID: 2, Name: "Cy", Position: 0},
		},
		Current:  2,
		Status:   game.StateInProgress.String(),
		Winner:   int(game.NoPlayer),
		LastRoll: 4,
		Turn:     2,
	}
}

// Save returns a SavedGame of Snapshot(id) on layout, with house rules that
// differ from the defaults so stores must keep them.
func Save(name, layout, id string) storage.SavedGame {
	return storage.SavedGame{
		Name:     name,
		Layout:   layout,
		Rules:    game.Rules{DiceFaces: 8, ExtraTurnOnMax: true, StartPosition: 0},
		Snapshot: Snapshot(id),
	}
}

// RunSnapshotStoreContract runs a suite of tests to verify that a SnapshotStore
// implementation adheres to the interface contract.
func RunSnapshotStoreContract(t *testing.T, store storage.SnapshotStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		save := Save(name, "classic", "session-1")

		err := store.SaveGame(ctx, save)
		require.NoError(t, err, "SaveGame should not return error")

		loaded, err := store.LoadGame(ctx, name)
		require.NoError(t, err, "LoadGame should not return error")
		assert.Equal(t, name, loaded.Name)
		assert.Equal(t, "classic", loaded.Layout)
		assert.Equal(t, save.Rules, loaded.Rules)
		assert.Equal(t, save.Snapshot, loaded.Snapshot)
	})

	t.Run("Save overwrites", func(t *testing.T) {
		save := Save(name, "garden", "session-1")
		save.Rules = game.DefaultRules()
		save.Snapshot.Turn = 3
		save.Snapshot.Current = 0
		save.Snapshot.Players[2].Position = 6

		require.NoError(t, store.SaveGame(ctx, save))

		loaded, err := store.LoadGame(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "garden", loaded.Layout)
		assert.Equal(t, 3, loaded.Snapshot.Turn)
		assert.Equal(t, 6, loaded.Snapshot.Players[2].Position)
		assert.Equal(t, game.DefaultRules(), loaded.Rules)
	})

	t.Run("Empty name", func(t *testing.T) {
		err := store.SaveGame(ctx, Save("  ", "classic", "x"))
		assert.ErrorIs(t, err, storage.ErrEmptySaveName)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.LoadGame(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, storage.ErrSaveNotFound)
	})

	t.Run("List", func(t *testing.T) {
		name1 := name + "-1"
		name2 := name + "-2"
		require.NoError(t, store.SaveGame(ctx, Save(name1, "classic", "a")))
		require.NoError(t, store.SaveGame(ctx, Save(name2, "quick", "b")))

		defer func() {
			_ = store.DeleteSave(ctx, name1)
			_ = store.DeleteSave(ctx, name2)
		}()

		saves, err := store.ListSaves(ctx)
		require.NoError(t, err)

		byName := make(map[string]storage.SaveInfo, len(saves))
		for _, s := range saves {
			byName[s.Name] = s
		}
		require.Contains(t, byName, name1)
		require.Contains(t, byName, name2)
		assert.Equal(t, "quick", byName[name2].Layout)
		assert.Equal(t, []string{"Ada", "Bob", "Cy"}, byName[name1].Players)
		assert.Equal(t, "in_progress", byName[name1].Status)
		assert.Equal(t, 2, byName[name1].Turn)
	})

	t.Run("Names that look like internal keys", func(t *testing.T) {
		other := name + "-other"
		require.NoError(t, store.SaveGame(ctx, Save(other, "classic", "e")))
		for _, n := range []string{"index", "saves:index"} {
			require.NoError(t, store.SaveGame(ctx, Save(n, "quick", n)))
		}
		defer func() {
			_ = store.DeleteSave(ctx, other)
			_ = store.DeleteSave(ctx, "index")
			_ = store.DeleteSave(ctx, "saves:index")
		}()

		saves, err := store.ListSaves(ctx)
		require.NoError(t, err)

		names := make([]string, len(saves))
		for i, s := range saves {
			names[i] = s.Name
		}
		assert.Contains(t, names, other)
		assert.Contains(t, names, "index")
		assert.Contains(t, names, "saves:index")

		loaded, err := store.LoadGame(ctx, "index")
		require.NoError(t, err)
		assert.Equal(t, "quick", loaded.Layout)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.SaveGame(ctx, Save(name, "classic", "c")))

		err := store.DeleteSave(ctx, name)
		require.NoError(t, err, "DeleteSave should not return error")

		_, err = store.LoadGame(ctx, name)
		assert.ErrorIs(t, err, storage.ErrSaveNotFound, "LoadGame after DeleteSave should return ErrSaveNotFound")

		err = store.DeleteSave(ctx, name)
		assert.ErrorIs(t, err, storage.ErrSaveNotFound, "second DeleteSave should return ErrSaveNotFound")
	})

	t.Run("Restores into a session", func(t *testing.T) {
		require.NoError(t, store.SaveGame(ctx, Save(name, "classic", "d")))
		defer func() { _ = store.DeleteSave(ctx, name) }()

		loaded, err := store.LoadGame(ctx, name)
		require.NoError(t, err)

		// Any valid 10x10 board accepts the snapshot.
		s, err := game.NewFromSnapshot(boardForContract(t), loaded.Snapshot, game.WithRules(loaded.Rules))
		require.NoError(t, err)
		assert.Equal(t, "Cy", s.Current().Name)
		assert.Equal(t, 2, s.Turn())
		assert.Equal(t, 8, s.Rules().DiceFaces)
	})
}
