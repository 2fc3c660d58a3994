package jumper

import (
	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
)

// MoveIntent is the player's horizontal steering input.
type MoveIntent int8

const (
	MoveLeft  MoveIntent = -1
	MoveNone  MoveIntent = 0
	MoveRight MoveIntent = 1
)

// String returns the name of the intent.
func (m MoveIntent) String() string {
	switch m {
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	default:
		return "none"
	}
}

// Player is the single player-controlled body of a run.
type Player struct {
	Pos       core.Vec2 // Center
	Vel       core.Vec2
	Size      core.Vec2
	Intent    MoveIntent
	Character int // Catalog index
}

// Box returns the player's bounding box.
func (p *Player) Box() core.Box {
	return core.NewBox(p.Pos, p.Size)
}

// Integrate advances the player by dt seconds: instantaneous horizontal
// steering, gravity on the vertical axis, then horizontal wraparound.
func (p *Player) Integrate(dt float64, phys config.JumperPhysics, halfWidth float64) {
	p.Vel.X = float64(p.Intent) * phys.MoveSpeed
	p.Vel.Y += phys.Gravity * dt
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))

	// Toroidal horizontal topology
	if p.Pos.X > halfWidth {
		p.Pos.X = -halfWidth
	} else if p.Pos.X < -halfWidth {
		p.Pos.X = halfWidth
	}
}

// CollisionHooks are the session commands collision outcomes may trigger.
type CollisionHooks struct {
	CollectCoin func()
	HitEnemy    func()
}

// ResolveCollisions applies collision outcomes for every live entity the
// player overlaps, in spawn order. prevBottom is the player's bottom edge
// before this tick's integration.
//
// A platform bounces the player only while falling and only if the feet are
// above the platform's center, or were above its top edge last tick (the
// latter catches fast falls that cross the center within one step). Every
// overlapped coin is collected; HitEnemy fires at most once, after the pass.
func ResolveCollisions(p *Player, prevBottom float64, arena *Arena, phys config.JumperPhysics, hooks CollisionHooks) {
	hit := false
	arena.Each(func(h Handle, e *Entity) {
		pb := p.Box()
		eb := e.Box()
		if !pb.Overlaps(eb) {
			return
		}

		switch e.Kind {
		case KindPlatform:
			if p.Vel.Y <= 0 {
				return
			}
			if pb.Bottom() >= e.Pos.Y && prevBottom > eb.Top() {
				return
			}
			p.Vel.Y = phys.JumpForce * e.Platform.jumpMultiplier(phys.BoostMultiplier)
			if e.Platform.Type == PlatformBreakable {
				arena.Kill(h)
			}
		case KindEnemy:
			hit = true
		case KindCoin:
			hooks.CollectCoin()
			arena.Kill(h)
		default:
		}
	})
	if hit {
		hooks.HitEnemy()
	}
}

// advancePlatforms moves every moving platform by dt.
func advancePlatforms(arena *Arena, dt, halfWidth float64) {
	arena.Each(func(_ Handle, e *Entity) {
		e.advance(dt, halfWidth)
	})
}
