// ladders is a Snakes and Ladders game for two to four players in the terminal.
//
// Usage:
//
//	ladders play             - Play a hot-seat game
//	ladders layouts [id]     - List boards, or draw one
//	ladders scores           - Show the leaderboard and recent games
//	ladders saves            - List, delete, export or import saved games
//	ladders rules            - Show the rules
//	ladders serve            - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Game config YAML (default: search ~/.ladders/configs, ./configs)
//	--db <path>         - Database path (default: ~/.ladders/ladders.db)
//	--seed <value>      - Dice seed for reproducible games
//	--log-level <level> - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	// Import layouts to register them
	_ "github.com/vovakirdan/tui-ladders/internal/layouts"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ladders",
	Short: "Snakes and Ladders in your terminal",
	Long: `Ladders is a hot-seat Snakes and Ladders game for two to four players.

Available commands:
  play     - Play a game (animated TUI, styled or plain console)
  layouts  - Show the available boards
  scores   - View the leaderboard
  saves    - Manage saved games
  rules    - Read the rules
  serve    - Start SSH server for remote play

Examples:
  ladders play --players Ada,Bob,Cy
  ladders play --ui plain --layout quick --auto
  ladders layouts classic
  ladders serve --ssh :2323 --metrics :9090`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Dice seed (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(layoutsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(serveCmd)
}
