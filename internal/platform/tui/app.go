package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/games/jumper"
	"github.com/vovakirdan/tui-jumper/internal/storage"
)

// loadTimeout bounds the startup progress load.
const loadTimeout = 5 * time.Second

// Options configure an AppModel.
type Options struct {
	Store   *storage.Store // Optional; nil disables persistence
	Player  string         // Namespaces saved progress; empty for local play
	Config  config.JumperConfig
	Runtime core.RuntimeConfig
	Logger  *log.Logger
	Watcher *config.Watcher // Optional config hot reload
}

func (o Options) prefs() jumper.Prefs {
	if o.Store == nil {
		return nil
	}
	return o.Store.ForPlayer(o.Player)
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

// ConfigReloadedMsg carries a config re-read from disk.
type ConfigReloadedMsg struct {
	Config config.JumperConfig
}

// ConfigErrorMsg reports a failed reload. The previous config stays active.
type ConfigErrorMsg struct {
	Err error
}

// waitForConfig blocks on the watcher until the next reload or error.
func waitForConfig(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case cfg, ok := <-w.Updates:
			if !ok {
				return nil
			}
			return ConfigReloadedMsg{Config: cfg}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return ConfigErrorMsg{Err: err}
		}
	}
}

type appScreen int

const (
	screenMenu appScreen = iota
	screenGame
	screenShop
	screenScores
)

// AppModel manages the full session flow: menu -> game / shop / scores -> menu.
// It is the top-level model for both local play and SSH sessions.
type AppModel struct {
	opts     Options
	session  *jumper.Session
	current  appScreen
	menu     MenuModel
	game     *GameModel
	shop     ShopModel
	scores   ScoreboardModel
	quitting bool
}

// NewAppModel creates the session and loads saved progress.
func NewAppModel(opts Options) AppModel {
	session := jumper.NewSession(opts.Config, nil, opts.prefs(), opts.logger())

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	session.Load(ctx)

	return AppModel{
		opts:    opts,
		session: session,
		menu:    NewMenuModel(session, opts.Runtime),
	}
}

// Init initializes the session.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.menu.Init(), waitForConfig(m.opts.Watcher))
}

// Update handles messages for the session.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height

	case ConfigReloadedMsg:
		m.session.SetConfig(msg.Config)
		m.opts.Config = msg.Config
		m.opts.logger().Info("config reloaded, applies from the next run")
		return m, waitForConfig(m.opts.Watcher)

	case ConfigErrorMsg:
		m.opts.logger().Warn("config reload failed, keeping previous", "error", msg.Err)
		return m, waitForConfig(m.opts.Watcher)
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenShop:
		return m.updateShop(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}

	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.menu.Choice() {
	case MenuPlay:
		gameModel := NewGameModel(m.session, m.opts)
		m.game = &gameModel
		m.current = screenGame
		return m, m.game.Init()
	case MenuShop:
		m.shop = NewShopModel(m.session, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		m.current = screenShop
		return m, m.shop.Init()
	case MenuScores:
		m.scores = NewScoreboardModel(m.opts.Store, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		m.current = screenScores
		return m, m.scores.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		return m.toMenu()
	}

	return m, cmd
}

func (m AppModel) updateShop(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}
	newModel, cmd := m.shop.Update(msg)
	if shopModel, ok := newModel.(ShopModel); ok {
		m.shop = shopModel
	}
	if m.shop.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.shop.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}
	newModel, cmd := m.scores.Update(msg)
	if scoresModel, ok := newModel.(ScoreboardModel); ok {
		m.scores = scoresModel
	}
	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

func (m AppModel) toMenu() (tea.Model, tea.Cmd) {
	m.current = screenMenu
	m.menu = NewMenuModel(m.session, m.opts.Runtime)
	return m, m.menu.Init()
}

// View renders the current view.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.game.View()
	case screenShop:
		return m.shop.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Session returns the underlying jumper session.
func (m AppModel) Session() *jumper.Session {
	return m.session
}

// Run starts the Bubble Tea program for local play.
func Run(opts Options) error {
	model := NewAppModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if m, ok := final.(AppModel); ok {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		m.session.Flush(ctx)
	}
	return err
}
