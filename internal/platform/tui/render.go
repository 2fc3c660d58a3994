package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/games/jumper"
)

// palette is the jumper's 256-color theme for a dark terminal. Platforms are
// green, coins gold, enemies a hot red; characters pick from the rest.
var palette = map[core.Color]lipgloss.Color{
	core.ColorRed:           "196",
	core.ColorGreen:         "34",
	core.ColorYellow:        "220",
	core.ColorBlue:          "33",
	core.ColorMagenta:       "170",
	core.ColorCyan:          "44",
	core.ColorWhite:         "252",
	core.ColorBrightRed:     "203",
	core.ColorBrightGreen:   "118",
	core.ColorBrightYellow:  "228",
	core.ColorBrightBlue:    "75",
	core.ColorBrightMagenta: "213",
	core.ColorBrightCyan:    "87",
	core.ColorBrightWhite:   "231",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// barStyle is the background of the score bar and status lines.
var barStyle = lipgloss.NewStyle().Background(lipgloss.Color("236")).Bold(true)

var (
	fieldStyles = buildStyles(lipgloss.NewStyle())
	barStyles   = buildStyles(barStyle)
)

func buildStyles(base lipgloss.Style) map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style, len(palette)+1)
	styles[core.ColorDefault] = base
	for c, code := range palette {
		styles[c] = base.Foreground(code)
	}
	return styles
}

// RenderFrame converts a Screen buffer to a styled string. The first top and
// last bottom rows are drawn as bars on a dark background.
func RenderFrame(s *core.Screen, top, bottom int) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, n := 0, s.Height(); y < n; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		styles := fieldStyles
		if y < top || y >= s.Height()-bottom {
			styles = barStyles
		}
		renderRow(&sb, s, y, styles)
	}
	return sb.String()
}

// RenderGame renders a jumper frame with its HUD row as a bar.
func RenderGame(s *core.Screen) string {
	return RenderFrame(s, jumper.HUDRows, 0)
}

// renderRow writes row y, one styled run per stretch of same-colored cells.
func renderRow(sb *strings.Builder, s *core.Screen, y int, styles map[core.Color]lipgloss.Style) {
	var run strings.Builder
	x := 0
	for x < s.Width() {
		color := s.GetCell(x, y).Color
		run.Reset()
		for ; x < s.Width(); x++ {
			cell := s.GetCell(x, y)
			if cell.Color != color {
				break
			}
			run.WriteRune(cell.Rune)
		}
		style, ok := styles[color]
		if !ok {
			style = styles[core.ColorDefault]
		}
		sb.WriteString(style.Render(run.String()))
	}
}

// colorStyle returns the foreground style for a core color.
func colorStyle(c core.Color) lipgloss.Style {
	if style, ok := fieldStyles[c]; ok {
		return style
	}
	return fieldStyles[core.ColorDefault]
}
