package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ladders/internal/platform/render"
	"github.com/vovakirdan/tui-ladders/internal/registry"
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts [id]",
	Short: "List the available boards, or draw one",
	Long: `Shows every registered board layout. With an id, draws that board
with its snakes (v) and ladders (^).

Examples:
  ladders layouts
  ladders layouts quick`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLayouts,
}

func runLayouts(_ *cobra.Command, args []string) error {
	if len(args) == 1 {
		return drawLayout(args[0])
	}

	layouts := registry.List()
	if len(layouts) == 0 {
		fmt.Println("No layouts available.")
		return nil
	}

	fmt.Println("Available layouts:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range layouts {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Printf("  %-*s  %-8s  %-6s  %-6s  %s\n", maxIDLen, "ID", "Title", "Size", "Snakes", "Ladders")
	fmt.Printf("  %-*s  %-8s  %-6s  %-6s  %s\n", maxIDLen, "--", "-----", "----", "------", "-------")

	for _, l := range layouts {
		size := fmt.Sprintf("%dx%d", l.Size, l.Size)
		fmt.Printf("  %-*s  %-8s  %-6s  %-6d  %d\n", maxIDLen, l.ID, l.Title, size, l.Snakes, l.Ladders)
	}

	fmt.Println()
	fmt.Println("Run 'ladders play --layout <id>' to play on a board.")
	return nil
}

func drawLayout(id string) error {
	layout, err := registry.Create(id)
	if err != nil {
		return fmt.Errorf("%w (run 'ladders layouts' to see available boards)", err)
	}
	b, err := layout.Board()
	if err != nil {
		return err
	}

	fmt.Printf("%s - %s\n\n", layout.Title, layout.Description)
	fmt.Println(render.Styled(render.NewBoardScreen(b, nil)))
	return nil
}
