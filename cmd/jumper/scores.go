package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-jumper/internal/platform/tui"
	"github.com/vovakirdan/tui-jumper/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best recorded runs",
	Long: `Display the best runs from the history table.

Examples:
  jumper scores
  jumper scores --limit 25
  jumper scores --interactive`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the scoreboard table")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	ctx := context.Background()
	runs, err := store.TopRuns(ctx, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Jumper")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'jumper play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-6s  %-10s  %-10s  %-16s  %s\n", "Rank", "Score", "Coins", "Character", "Player", "Date", "Run")
	fmt.Printf("  %-4s  %-8s  %-6s  %-10s  %-10s  %-16s  %s\n", "----", "-----", "-----", "---------", "------", "----", "---")

	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "local"
		}
		fmt.Printf("  %-4d  %-8d  %-6d  %-10s  %-10s  %-16s  %s\n",
			i+1, r.Score, r.Coins, r.Character, player, r.CreatedAt.Format("2006-01-02 15:04"), r.ID)
	}

	fmt.Println()
	if stats, err := store.Stats(ctx); err == nil {
		fmt.Printf("Best: %d  Runs: %d  Average: %.0f  Coins collected: %d\n",
			stats.HighScore, stats.RunsCount, stats.AvgScore, stats.TotalCoins)
	}
}
