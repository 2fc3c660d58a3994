package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/games/jumper"
	"github.com/vovakirdan/tui-jumper/internal/replay"
)

// ReplayModel plays a recorded run back at its original tick rate.
type ReplayModel struct {
	playback *replay.Playback
	screen   *core.Screen
	tickRate int
	speed    int // Ticks simulated per frame
	paused   bool
	quitting bool
}

// NewReplayModel creates a replay viewer for rec.
func NewReplayModel(rec replay.Record, width, height int) ReplayModel {
	return ReplayModel{
		playback: replay.NewPlayback(rec),
		screen:   core.NewScreen(width, height),
		tickRate: rec.TickRate,
		speed:    1,
	}
}

// Init starts the tick loop.
func (m ReplayModel) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages.
func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "p", " ":
			m.paused = !m.paused
		case "f", "+":
			if m.speed < 8 {
				m.speed *= 2
			}
		case "-":
			if m.speed > 1 {
				m.speed /= 2
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if !m.paused {
			for i := 0; i < m.speed; i++ {
				if !m.playback.Step() {
					break
				}
			}
		}
		return m, tickCmd(m.tickRate)
	}

	return m, nil
}

// View renders the replayed session with a status line.
func (m ReplayModel) View() string {
	if m.quitting {
		return ""
	}

	m.playback.Session().Render(m.screen)
	status := fmt.Sprintf(" REPLAY x%d  P pause  +/- speed  Q quit ", m.speed)
	if m.playback.Done() {
		status = " REPLAY finished  Q quit "
	}
	m.screen.DrawTextColored(0, m.screen.Height()-1, status, core.ColorBrightCyan)
	return RenderFrame(m.screen, jumper.HUDRows, 1)
}

// RunReplay plays rec back in the terminal.
func RunReplay(rec replay.Record, width, height int) error {
	p := tea.NewProgram(
		NewReplayModel(rec, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
