package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-ladders/internal/board"
	"github.com/vovakirdan/tui-ladders/internal/game"
	"github.com/vovakirdan/tui-ladders/internal/registry"
)

// BuildBoard returns the custom board when one is configured, otherwise the
// registered layout. Layouts must already be registered by the caller.
func (c GameConfig) BuildBoard() (*board.Board, error) {
	if c.Board != nil {
		b, err := board.New(c.Board.Size, c.Board.Snakes, c.Board.Ladders)
		if err != nil {
			return nil, fmt.Errorf("config: custom board: %w", err)
		}
		return b, nil
	}

	if c.Layout == "" {
		return nil, fmt.Errorf("config: no layout or board configured")
	}
	return registry.Board(c.Layout)
}

// GameRules converts the rules section into validated game rules.
func (c GameConfig) GameRules() (game.Rules, error) {
	r := game.Rules{
		DiceFaces:      c.Rules.DiceFaces,
		ExtraTurnOnMax: c.Rules.ExtraTurnOnMax,
		StartPosition:  c.Rules.StartPosition,
	}
	if err := r.Validate(); err != nil {
		return game.Rules{}, fmt.Errorf("config: %w", err)
	}
	return r, nil
}

// PlayerNames returns the configured names with surrounding space removed.
func (c GameConfig) PlayerNames() []string {
	names := make([]string, 0, len(c.Players))
	for _, n := range c.Players {
		names = append(names, strings.TrimSpace(n))
	}
	return names
}

// BoardName describes the configured board for logs and listings.
func (c GameConfig) BoardName() string {
	if c.Board != nil {
		return fmt.Sprintf("custom %dx%d", c.Board.Size, c.Board.Size)
	}
	return c.Layout
}
