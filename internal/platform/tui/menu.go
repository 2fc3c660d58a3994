package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/games/jumper"
)

// MenuChoice is the destination picked in the main menu.
type MenuChoice int

const (
	MenuNone MenuChoice = iota
	MenuPlay
	MenuShop
	MenuScores
	MenuQuit
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Title  string
	Choice MenuChoice
}

var menuItems = []MenuItem{
	{Title: "Play", Choice: MenuPlay},
	{Title: "Characters", Choice: MenuShop},
	{Title: "High Scores", Choice: MenuScores},
	{Title: "Quit", Choice: MenuQuit},
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	session   *jumper.Session
	items     []MenuItem
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	quitting  bool
	choice    MenuChoice
}

// NewMenuModel creates a new menu model.
func NewMenuModel(session *jumper.Session, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		session:   session,
		items:     menuItems,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		m.choice = m.items[m.cursor].Choice
		if m.choice == MenuQuit {
			m.quitting = true
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.choice = MenuScores

	case MenuActionShop:
		m.choice = MenuShop
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	title := "  J U M P E R  "
	b.WriteString(strings.TrimSuffix(centerText(title, m.width), title))
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	snap := m.session.Snapshot()
	ch := m.session.Catalog()[snap.SelectedCharacter]
	glyph := colorStyle(ch.Color).Render(string(ch.Glyph))
	stats := fmt.Sprintf("Best: %d   Coins: %d   Playing as %s ", int(snap.HighScore), snap.Coins, ch.Name)
	b.WriteString(centerText(stats, m.width))
	b.WriteString(glyph)
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  $: Shop  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns the selected destination, or MenuNone.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
