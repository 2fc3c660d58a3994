package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/platform/tui"
	"github.com/vovakirdan/tui-jumper/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagWatch      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the jumper",
	Long: `Open the main menu and play.

Controls:
  A/Left         - Steer left
  D/Right        - Steer right
  S/Down/Space   - Stop steering
  P              - Pause
  R              - Restart (after game over)
  B/Esc          - Back to menu (paused or game over)
  Ctrl+S         - Save a screenshot
  Q/Ctrl+C       - Quit

Difficulty presets:
  easy   - Fewer enemies and breakable platforms, more boosts
  normal - Config values as-is
  hard   - More enemies, breakable and moving platforms

Config files are searched in order: --config, ~/.jumper/configs/jumper.yaml,
./configs/jumper.yaml, then the built-in defaults. With --watch the file is
reloaded on change and applied from the next run.

Examples:
  jumper play
  jumper play --difficulty hard
  jumper play --config ./my-jumper.yaml --watch
  jumper play --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes")
}

func runPlay(_ *cobra.Command, _ []string) {
	preset, err := config.ParseDifficultyPreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gameCfg, err := config.Load(flagConfig, preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := openLogger()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open progress database, progress will not be saved", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		Store:  store,
		Config: gameCfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Logger: logger,
	}

	if flagWatch {
		path, pathErr := config.ResolvePath(flagConfig)
		if pathErr != nil {
			fmt.Fprintf(os.Stderr, "Error: --watch needs a config file: %v\n", pathErr)
			os.Exit(1)
		}
		watcher, watchErr := config.Watch(path, preset)
		if watchErr != nil {
			fmt.Fprintf(os.Stderr, "Error watching config: %v\n", watchErr)
			os.Exit(1)
		}
		defer watcher.Close()
		opts.Watcher = watcher
		logger.Info("watching config", "path", path)
	}

	if err := tui.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openLogger logs to ~/.jumper/jumper.log, since the terminal belongs to the game.
func openLogger() (*log.Logger, func()) {
	level := log.InfoLevel
	if flagDebug {
		level = log.DebugLevel
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".jumper")
		if err := os.MkdirAll(dir, 0o755); err == nil {
			f, err := os.OpenFile(filepath.Join(dir, "jumper.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err == nil {
				w = f
				closeFn = func() { f.Close() }
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "jumper",
		Level:           level,
	})
	return logger, closeFn
}
