package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-jumper/internal/games/jumper"
)

// ShopKeyMap defines the key bindings for the character shop.
type ShopKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ShopKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ShopKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Back, k.Quit},
	}
}

// DefaultShopKeyMap returns default key bindings.
func DefaultShopKeyMap() ShopKeyMap {
	return ShopKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "next"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "buy/select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShopModel lists the character catalog and lets the player buy and pick.
type ShopModel struct {
	session   *jumper.Session
	cursor    int
	message   string
	keys      ShopKeyMap
	help      help.Model
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewShopModel creates a new shop model with the cursor on the selected character.
func NewShopModel(session *jumper.Session, width, height int) ShopModel {
	h := help.New()
	h.Width = width
	return ShopModel{
		session: session,
		cursor:  session.Snapshot().SelectedCharacter,
		keys:    DefaultShopKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}
}

// Init initializes the shop model.
func (m ShopModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the shop.
func (m ShopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		catalog := m.session.Catalog()
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			m.message = ""
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(catalog)-1 {
				m.cursor++
			}
			m.message = ""
		case key.Matches(msg, m.keys.Select):
			m.message = m.buyOrSelect()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

// buyOrSelect purchases the highlighted character if needed, then selects it.
func (m ShopModel) buyOrSelect() string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ch := m.session.Catalog()[m.cursor]
	bought := false
	if !m.session.Owns(m.cursor) {
		if err := m.session.Purchase(ctx, m.cursor); err != nil {
			return shopError(err, ch)
		}
		bought = true
	}
	if err := m.session.SelectCharacter(ctx, m.cursor); err != nil {
		return shopError(err, ch)
	}
	if bought {
		return fmt.Sprintf("Bought %s for %d coins!", ch.Name, ch.Price)
	}
	return fmt.Sprintf("Playing as %s.", ch.Name)
}

func shopError(err error, ch jumper.Character) string {
	switch {
	case errors.Is(err, jumper.ErrInsufficientCoins):
		return fmt.Sprintf("Not enough coins for %s (%d).", ch.Name, ch.Price)
	case errors.Is(err, jumper.ErrLocked):
		return fmt.Sprintf("%s is locked.", ch.Name)
	default:
		return err.Error()
	}
}

// View renders the shop.
func (m ShopModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	snap := m.session.Snapshot()
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("CHARACTERS", m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Coins: %d", snap.Coins), m.width))
	b.WriteString("\n\n")

	var list strings.Builder
	for i, ch := range m.session.Catalog() {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		var status string
		switch {
		case i == snap.SelectedCharacter:
			status = "selected"
		case m.session.Owns(i):
			status = "owned"
		default:
			status = fmt.Sprintf("%d coins", ch.Price)
		}

		line := fmt.Sprintf("%s%s %-8s %-12s %s", cursor, colorStyle(ch.Color).Render(string(ch.Glyph)), ch.Name, ch.Ability, status)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		list.WriteString(line)
		list.WriteString("\n")
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boxStyle.Render(strings.TrimRight(list.String(), "\n"))))
	b.WriteString("\n\n")

	if m.message != "" {
		b.WriteString(centerText(m.message, m.width))
		b.WriteString("\n\n")
	}

	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ShopModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ShopModel) IsQuitting() bool {
	return m.quitting
}
