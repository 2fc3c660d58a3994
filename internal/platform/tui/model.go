package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/games/jumper"
	"github.com/vovakirdan/tui-jumper/internal/replay"
	"github.com/vovakirdan/tui-jumper/internal/storage"
)

// saveTimeout bounds one game-over save.
const saveTimeout = 5 * time.Second

// RunSavedMsg reports the outcome of a game-over save.
type RunSavedMsg struct {
	RunID string // Empty if the run was not recorded
	Err   error
}

// GameModel drives one jumper session at a fixed tick rate.
type GameModel struct {
	session    *jumper.Session
	screen     *core.Screen
	store      *storage.Store
	prefs      jumper.Prefs
	player     string
	config     core.RuntimeConfig
	fixedSeed  bool
	logger     *log.Logger
	keyMapper  *KeyMapper
	inputFrame core.InputFrame

	saving      bool // A game-over save is in flight
	pendingBack bool // Return to the menu once the save finishes
	lastRunID   string
	quitting    bool
	backToMenu  bool
}

// NewGameModel creates a game model. The run starts in Init.
func NewGameModel(session *jumper.Session, opts Options) GameModel {
	cfg := opts.Runtime
	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		session:    session,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		prefs:      opts.prefs(),
		player:     opts.Player,
		config:     cfg,
		fixedSeed:  fixed,
		logger:     opts.logger(),
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the run and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.session.Start(m.config.Seed)
	m.logger.Debug("run started", "seed", m.config.Seed, "character", m.session.Snapshot().SelectedCharacter)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case RunSavedMsg:
		m.saving = false
		if msg.Err != nil {
			m.logger.Warn("could not record run", "error", msg.Err)
		} else if msg.RunID != "" {
			m.lastRunID = msg.RunID
			m.logger.Info("run recorded", "id", msg.RunID)
		}
		if m.pendingBack {
			m.backToMenu = true
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	snap := m.session.Snapshot()

	switch {
	case isQuit:
		// Save synchronously; the program exits right after.
		m.session.QuitToMenu()
		if cmd := m.finishRun(); cmd != nil {
			cmd()
		}
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionRestart:
		if snap.GameOver && !m.saving {
			m.session.Restart(m.nextSeed())
		}
		return m, nil

	case action == core.ActionBack:
		if !snap.GameOver && !snap.Paused {
			return m, nil
		}
		m.session.QuitToMenu()
		cmd := m.finishRun()
		if m.saving {
			m.pendingBack = true
			return m, cmd
		}
		m.backToMenu = true
		return m, nil

	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.session.Step(m.inputFrame, m.config.TickSeconds())
	m.inputFrame.Clear()

	if result.Ended {
		return m, tea.Batch(tickCmd(m.config.TickRate), m.finishRun())
	}
	return m, tickCmd(m.config.TickRate)
}

// finishRun takes the queued game-over save and returns a command that
// writes it, or nil if nothing is queued.
func (m *GameModel) finishRun() tea.Cmd {
	req, ok := m.session.TakePendingSave()
	if !ok {
		return nil
	}
	m.saving = true

	run := m.session.LastRun()
	rec := replay.FromSession(m.session, m.config.TickRate)
	character := m.session.Catalog()[run.Character].Name
	prefs, store, player, logger := m.prefs, m.store, m.player, m.logger

	logger.Info("run ended", "score", int(run.Score), "coins", run.Coins, "ticks", run.Ticks, "new_best", req.NewHighScore)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		jumper.SaveProgress(ctx, prefs, req, logger)
		if store == nil || int(run.Score) <= 0 {
			return RunSavedMsg{}
		}

		blob, err := replay.Encode(rec)
		if err != nil {
			logger.Warn("could not encode replay", "error", err)
		}
		id, err := store.SaveRun(ctx, storage.Run{
			Player:    player,
			Character: character,
			Score:     int(run.Score),
			Coins:     run.Coins,
			Seed:      run.Seed,
			Ticks:     run.Ticks,
			Replay:    blob,
		})
		return RunSavedMsg{RunID: id, Err: err}
	}
}

func (m GameModel) nextSeed() int64 {
	if m.fixedSeed {
		return m.config.Seed
	}
	return time.Now().UnixNano()
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.session.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".jumper", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("jumper_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.session.Render(m.screen)
	return RenderGame(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// LastRunID returns the ID of the most recently recorded run.
func (m GameModel) LastRunID() string {
	return m.lastRunID
}
