package jumper

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-jumper/internal/core"
)

// Glyphs used by Render.
const (
	GlyphNormal    = '='
	GlyphMoving    = '~'
	GlyphBreakable = '-'
	GlyphBoost     = '^'
	GlyphCoin      = 'o'
	GlyphEnemy     = 'M'
)

// HUDRows is the number of screen rows reserved above the play field.
const HUDRows = 1

const hudRows = HUDRows

// viewport maps world coordinates onto the play field rows of a screen.
type viewport struct {
	cols, rows int
	left, top  float64 // World coordinates of the field's top-left corner
	sx, sy     float64 // Cells per world unit
}

func (s *Session) viewport(dst *core.Screen) viewport {
	w := s.cfg.World
	rows := dst.Height() - hudRows
	if rows < 1 {
		rows = 1
	}
	return viewport{
		cols: dst.Width(),
		rows: rows,
		left: -w.PlayWidth / 2,
		top:  s.cameraY - w.ViewHeight/2,
		sx:   float64(dst.Width()) / w.PlayWidth,
		sy:   float64(rows) / w.ViewHeight,
	}
}

// cell converts a world point to a screen cell.
func (v viewport) cell(p core.Vec2) (int, int) {
	x := int(math.Floor((p.X - v.left) * v.sx))
	y := int(math.Floor((p.Y-v.top)*v.sy)) + hudRows
	return x, y
}

// span returns the leftmost cell and cell width covered by a box.
func (v viewport) span(b core.Box) (int, int) {
	x0 := int(math.Floor((b.Left() - v.left) * v.sx))
	x1 := int(math.Ceil((b.Right() - v.left) * v.sx))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	return x0, x1 - x0
}

// Render draws the current session state to the screen.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()

	switch s.state {
	case StateMainMenu:
		s.drawCenteredMessage(dst, "JUMPER", "Press Enter to start")
		s.drawHUD(dst)
		return
	default:
	}

	vp := s.viewport(dst)
	s.arena.Each(func(_ Handle, e *Entity) {
		s.drawEntity(dst, vp, e)
	})

	ch := s.catalog[s.player.Character]
	px, py := vp.cell(s.player.Pos)
	if py >= hudRows {
		dst.SetColored(px, py, ch.Glyph, ch.Color)
	}

	s.drawHUD(dst)

	if s.paused {
		s.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if s.state == StateGameOver {
		s.drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  Coins: +%d  |  R restart, B menu, Q quit", int(s.score), s.lastRun.Coins))
	}
}

func (s *Session) drawEntity(dst *core.Screen, vp viewport, e *Entity) {
	_, y := vp.cell(e.Pos)
	if y < hudRows {
		return
	}

	switch e.Kind {
	case KindPlatform:
		x, w := vp.span(e.Box())
		r, c := platformGlyph(e.Platform.Type)
		dst.DrawHLine(x, y, w, r, c)
	case KindCoin:
		x, _ := vp.cell(e.Pos)
		dst.SetColored(x, y, GlyphCoin, core.ColorYellow)
	case KindEnemy:
		x, _ := vp.cell(e.Pos)
		dst.SetColored(x, y, GlyphEnemy, core.ColorRed)
	default:
	}
}

func platformGlyph(t PlatformType) (rune, core.Color) {
	switch t {
	case PlatformMoving:
		return GlyphMoving, core.ColorCyan
	case PlatformBreakable:
		return GlyphBreakable, core.ColorGray
	case PlatformBoost:
		return GlyphBoost, core.ColorMagenta
	default:
		return GlyphNormal, core.ColorGreen
	}
}

func (s *Session) drawHUD(dst *core.Screen) {
	ch := s.catalog[s.selected]
	hud := fmt.Sprintf(" Score: %d  Coins: %d  Best: %d  %s ", int(s.score), s.coins, int(s.highScore), ch.Name)
	dst.DrawText(1, 0, hud)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (s *Session) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
