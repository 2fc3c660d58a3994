// jumper is an endless vertical platform jumper for the terminal.
//
// Usage:
//
//	jumper play              - Open the menu and play
//	jumper serve             - Start SSH server for remote play
//	jumper scores            - Show the best recorded runs
//	jumper characters        - List the character catalog
//	jumper replay <run-id>   - Verify or watch a recorded run
//	jumper config            - Print the default game config
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.jumper/jumper.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jumper",
	Short: "Jumper - bounce your way up in the terminal",
	Long: `Jumper is an endless vertical platform game for the terminal.
Bounce from platform to platform, collect coins, dodge enemies
and climb as high as you can.

Available commands:
  play        - Open the menu and play
  serve       - Start SSH server for remote play
  scores      - View the best runs
  characters  - List characters and prices
  replay      - Verify or watch a recorded run
  config      - Print the default game config

Examples:
  jumper play
  jumper play --difficulty hard
  jumper serve --ssh :2222
  jumper scores
  jumper replay 1b4e28ba --play`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.jumper/jumper.db", "Path to progress database")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(charactersCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}
