// Package registry provides a global registry of board layouts.
// Layouts register themselves in init() functions, allowing the CLI and
// servers to discover boards by name without hardcoded tables.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-ladders/internal/board"
)

// Layout is a named, fixed snake and ladder table.
type Layout struct {
	ID          string
	Title       string
	Description string
	Size        int
	Snakes      map[int]int
	Ladders     map[int]int
}

// Board builds the validated board for this layout.
func (l Layout) Board() (*board.Board, error) {
	b, err := board.New(l.Size, l.Snakes, l.Ladders)
	if err != nil {
		return nil, fmt.Errorf("registry: layout %q: %w", l.ID, err)
	}
	return b, nil
}

// LayoutInfo contains metadata about a registered layout.
type LayoutInfo struct {
	ID      string
	Title   string
	Size    int
	Snakes  int
	Ladders int
}

// Factory is a function that returns a layout definition.
type Factory func() Layout

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]LayoutInfo)
	mu        sync.RWMutex
)

// Register adds a layout factory to the registry.
// Typically called from a layout's init() function.
// Panics if a layout with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: layout %q already registered", id))
	}

	factories[id] = f

	l := f()
	infos[id] = LayoutInfo{
		ID:      id,
		Title:   l.Title,
		Size:    l.Size,
		Snakes:  len(l.Snakes),
		Ladders: len(l.Ladders),
	}
}

// List returns information about all registered layouts, sorted by ID.
func List() []LayoutInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]LayoutInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create returns the layout registered under id.
// Returns an error if the layout ID is not registered.
func Create(id string) (Layout, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return Layout{}, fmt.Errorf("registry: unknown layout %q", id)
	}

	l := f()
	l.ID = id
	return l, nil
}

// Board builds the board for a registered layout.
func Board(id string) (*board.Board, error) {
	l, err := Create(id)
	if err != nil {
		return nil, err
	}
	return l.Board()
}

// Exists checks if a layout with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
