package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-jumper/internal/platform/tui"
	"github.com/vovakirdan/tui-jumper/internal/replay"
	"github.com/vovakirdan/tui-jumper/internal/storage"
)

var flagPlay bool

var replayCmd = &cobra.Command{
	Use:   "replay <run-id>",
	Short: "Verify or watch a recorded run",
	Long: `Load a run's replay from the history table and re-simulate it.
The recorded score and tick count are compared with the result.

Run IDs are listed by 'jumper scores'.

Examples:
  jumper replay 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  jumper replay 1b4e28ba-2fa1-11d2-883f-0016d3cca427 --play`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagPlay, "play", false, "Watch the run instead of printing the result")
}

func runReplay(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress database: %v\n", err)
		os.Exit(1)
	}
	run, err := store.RunByID(context.Background(), args[0])
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if run == nil {
		fmt.Fprintf(os.Stderr, "Error: no run with id %q\n", args[0])
		os.Exit(1)
	}
	if len(run.Replay) == 0 {
		fmt.Fprintf(os.Stderr, "Error: run %s has no replay\n", run.ID)
		os.Exit(1)
	}

	rec, err := replay.Decode(run.Replay)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding replay: %v\n", err)
		os.Exit(1)
	}

	if flagPlay {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunReplay(rec, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	res := replay.Verify(rec)
	fmt.Printf("Run:        %s\n", run.ID)
	fmt.Printf("Character:  %s\n", run.Character)
	fmt.Printf("Seed:       %d\n", rec.Seed)
	fmt.Printf("Tick rate:  %d\n", rec.TickRate)
	fmt.Printf("Intents:    %d\n", len(rec.Intents))
	fmt.Printf("Recorded:   score %.0f in %d ticks\n", rec.Score, rec.Ticks)
	fmt.Printf("Replayed:   score %.0f in %d ticks\n", res.Score, res.Ticks)
	if !res.Match {
		fmt.Println("Result:     MISMATCH")
		os.Exit(2)
	}
	fmt.Println("Result:     OK")
}
