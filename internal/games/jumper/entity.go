package jumper

import (
	"github.com/vovakirdan/tui-jumper/internal/core"
)

// Kind is the closed set of spawnable entity kinds.
type Kind uint8

const (
	KindPlatform Kind = iota
	KindCoin
	KindEnemy
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPlatform:
		return "platform"
	case KindCoin:
		return "coin"
	case KindEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// PlatformType is the platform subtype.
type PlatformType uint8

const (
	PlatformNormal PlatformType = iota
	PlatformMoving
	PlatformBreakable
	PlatformBoost
)

// String returns the name of the platform subtype.
func (t PlatformType) String() string {
	switch t {
	case PlatformNormal:
		return "normal"
	case PlatformMoving:
		return "moving"
	case PlatformBreakable:
		return "breakable"
	case PlatformBoost:
		return "boost"
	default:
		return "unknown"
	}
}

// PlatformState is the platform-specific payload of an entity.
type PlatformState struct {
	Type  PlatformType
	Speed float64 // Moving platforms only (units/s)
	Dir   float64 // Moving platforms only: +1 right, -1 left
}

// Entity is a tagged variant over Kind. Platform is meaningful only when
// Kind == KindPlatform. Pos is the center of the bounding box.
type Entity struct {
	Kind     Kind
	Pos      core.Vec2
	Size     core.Vec2
	Platform PlatformState
}

// NewPlatform creates a platform entity.
func NewPlatform(pos, size core.Vec2, state PlatformState) Entity {
	return Entity{Kind: KindPlatform, Pos: pos, Size: size, Platform: state}
}

// NewCoin creates a coin entity.
func NewCoin(pos, size core.Vec2) Entity {
	return Entity{Kind: KindCoin, Pos: pos, Size: size}
}

// NewEnemy creates an enemy entity.
func NewEnemy(pos, size core.Vec2) Entity {
	return Entity{Kind: KindEnemy, Pos: pos, Size: size}
}

// Box returns the entity's bounding box.
func (e *Entity) Box() core.Box {
	return core.NewBox(e.Pos, e.Size)
}

// jumpMultiplier returns the impulse factor for landing on this platform.
func (p PlatformState) jumpMultiplier(boost float64) float64 {
	if p.Type == PlatformBoost {
		return boost
	}
	return 1.0
}

// advance moves a moving platform and reflects it at the play-field edges,
// keeping half of its own width as margin.
func (e *Entity) advance(dt, halfWidth float64) {
	if e.Kind != KindPlatform || e.Platform.Type != PlatformMoving {
		return
	}
	bound := halfWidth - e.Size.X/2
	e.Pos.X += e.Platform.Speed * e.Platform.Dir * dt
	if e.Pos.X >= bound {
		e.Pos.X = bound
		e.Platform.Dir = -1
	} else if e.Pos.X <= -bound {
		e.Pos.X = -bound
		e.Platform.Dir = 1
	}
}
