package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jumper/internal/games/jumper"
	"github.com/vovakirdan/tui-jumper/internal/storage"
)

var charactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "List the character catalog",
	Long: `Shows every character with its price and ability.
When the progress database is readable, owned and selected
characters are marked and the coin balance is shown.`,
	Args: cobra.NoArgs,
	Run:  runCharacters,
}

func runCharacters(_ *cobra.Command, _ []string) {
	catalog := jumper.DefaultCatalog()

	var progress jumper.Progress
	haveProgress := false
	if store, err := storage.Open(flagDBPath); err == nil {
		progress = jumper.LoadProgress(context.Background(), store, nil)
		haveProgress = true
		store.Close()
	}

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, c := range catalog {
		if len(c.Name) > maxNameLen {
			maxNameLen = len(c.Name)
		}
	}

	fmt.Println("Characters:")
	fmt.Println()
	fmt.Printf("  %-5s  %-*s  %-6s  %-12s  %s\n", "Glyph", maxNameLen, "Name", "Price", "Ability", "Status")
	fmt.Printf("  %-5s  %-*s  %-6s  %-12s  %s\n", "-----", maxNameLen, "----", "-----", "-------", "------")

	for i, c := range catalog {
		status := ""
		if haveProgress {
			switch {
			case i == progress.Selected:
				status = "selected"
			case i == 0 || c.Price == 0 || progress.Owned&(1<<uint(i)) != 0:
				status = "owned"
			}
		}
		fmt.Printf("  %-5c  %-*s  %-6d  %-12s  %s\n", c.Glyph, maxNameLen, c.Name, c.Price, c.Ability, status)
	}

	fmt.Println()
	if haveProgress {
		fmt.Printf("Coins: %d\n", progress.Coins)
	}
	fmt.Println("Buy and select characters from the Characters screen in 'jumper play'.")
}
