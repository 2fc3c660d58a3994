package jumper

import (
	"math/rand"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
)

// Spawner keeps the play field populated ahead of the rising camera and
// retires entities that scrolled out below it.
type Spawner struct {
	cfg        config.JumperConfig
	rng        *rand.Rand
	nextSpawnY float64 // Y of the next layer; only ever decreases within a run
}

// NewSpawner creates a spawner seeded for deterministic generation.
func NewSpawner(cfg config.JumperConfig, seed int64) *Spawner {
	s := &Spawner{cfg: cfg}
	s.Reset(seed, cfg.World.GroundY-cfg.World.LayerSpacing)
	return s
}

// Reset reseeds the RNG and sets the first layer height.
func (s *Spawner) Reset(seed int64, startY float64) {
	s.rng = rand.New(rand.NewSource(seed))
	s.nextSpawnY = startY
}

// NextSpawnY returns the height of the next layer.
func (s *Spawner) NextSpawnY() float64 {
	return s.nextSpawnY
}

// lookaheadLine is the highest Y that must be populated for a camera at cameraY.
func (s *Spawner) lookaheadLine(cameraY float64) float64 {
	return cameraY - s.cfg.World.ViewHeight/2 - s.cfg.World.LookaheadMargin
}

// Fill generates layers until the lookahead region above the camera is
// populated. Returns the number of layers generated.
func (s *Spawner) Fill(arena *Arena, cameraY, score float64) int {
	line := s.lookaheadLine(cameraY)
	n := 0
	for s.nextSpawnY > line {
		s.spawnLayer(arena, s.nextSpawnY, score)
		s.nextSpawnY -= s.cfg.World.LayerSpacing
		n++
	}
	return n
}

// spawnLayer creates a platform at height y plus an optional coin and enemy.
func (s *Spawner) spawnLayer(arena *Arena, y, score float64) {
	sizes := s.cfg.Sizes
	spawn := s.cfg.Spawn

	half := s.cfg.World.PlayWidth/2 - sizes.Platform.W/2
	x := -half + s.rng.Float64()*2*half

	state := PlatformState{Type: s.rollPlatformType()}
	if state.Type == PlatformMoving {
		state.Speed = spawn.MovingSpeed
		state.Dir = 1
		if s.rng.Intn(2) == 0 {
			state.Dir = -1
		}
	}
	arena.Spawn(NewPlatform(core.Vec2{X: x, Y: y}, vec(sizes.Platform), state))

	if s.rng.Float64() < spawn.PCoin {
		arena.Spawn(NewCoin(core.Vec2{X: x, Y: y - spawn.CoinOffsetY}, vec(sizes.Coin)))
	}

	if score > spawn.EnemyScoreThreshold && s.rng.Float64() < spawn.PEnemy {
		offset := spawn.EnemyOffsetX
		if s.rng.Intn(2) == 0 {
			offset = -offset
		}
		arena.Spawn(NewEnemy(core.Vec2{X: x + offset, Y: y - spawn.EnemyOffsetY}, vec(sizes.Enemy)))
	}
}

// rollPlatformType draws a fresh number per case, in priority order, so the
// subtype odds are independent biased coin flips rather than one weighted choice.
func (s *Spawner) rollPlatformType() PlatformType {
	spawn := s.cfg.Spawn
	switch {
	case s.rng.Float64() < spawn.PMoving:
		return PlatformMoving
	case s.rng.Float64() < spawn.PBreakable:
		return PlatformBreakable
	case s.rng.Float64() < spawn.PBoost:
		return PlatformBoost
	default:
		return PlatformNormal
	}
}

// Retire kills entities that scrolled below cameraY + view height.
// Coins and enemies are included only when spawn.retire_all_kinds is set.
// Returns the number of entities killed.
func (s *Spawner) Retire(arena *Arena, cameraY float64) int {
	limit := cameraY + s.cfg.World.ViewHeight
	n := 0
	arena.Each(func(h Handle, e *Entity) {
		if e.Pos.Y <= limit {
			return
		}
		if e.Kind != KindPlatform && !s.cfg.Spawn.RetireAllKinds {
			return
		}
		arena.Kill(h)
		n++
	})
	return n
}

func vec(sz config.Size) core.Vec2 {
	return core.Vec2{X: sz.W, Y: sz.H}
}
