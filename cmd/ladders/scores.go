package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ladders/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard and recent games",
	Long: `Display wins per player and the most recently finished games.

Examples:
  ladders scores
  ladders scores --limit 25`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows to show")
}

func runScores(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	leaders, err := store.Leaderboard(ctx, flagLimit)
	if err != nil {
		return err
	}
	results, err := store.RecentResults(ctx, flagLimit)
	if err != nil {
		return err
	}

	fmt.Println("Leaderboard")
	fmt.Println()

	if len(leaders) == 0 {
		fmt.Println("No games finished yet.")
		fmt.Println()
		fmt.Println("Play 'ladders play' to get on the board!")
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-4s  %-5s  %s\n", "Rank", "Player", "Wins", "Best", "Last win")
	fmt.Printf("  %-4s  %-16s  %-4s  %-5s  %s\n", "----", "------", "----", "----", "--------")
	for i, e := range leaders {
		fmt.Printf("  %-4d  %-16s  %-4d  %-5d  %s\n", i+1, e.Name, e.Wins, e.FewestTurns, e.LastWon.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("Recent games")
	fmt.Println()
	fmt.Printf("  %-16s  %-10s  %-16s  %-5s  %s\n", "Date", "Board", "Winner", "Turns", "Players")
	fmt.Printf("  %-16s  %-10s  %-16s  %-5s  %s\n", "----", "-----", "------", "-----", "-------")
	for _, r := range results {
		fmt.Printf("  %-16s  %-10s  %-16s  %-5d  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Layout, r.Winner, r.Turns, strings.Join(r.Players, ", "))
	}
	return nil
}
