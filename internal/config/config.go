// Package config provides YAML-based game configuration loading and
// difficulty presets for the jumper.
package config

import (
	"errors"
	"fmt"
)

// JumperConfig contains all tunables of the jumper simulation.
type JumperConfig struct {
	Physics JumperPhysics `yaml:"physics"`
	World   JumperWorld   `yaml:"world"`
	Spawn   JumperSpawn   `yaml:"spawn"`
	Sizes   JumperSizes   `yaml:"sizes"`
}

// JumperPhysics defines the player integration parameters.
// Units are world units and seconds; positive Y points down.
type JumperPhysics struct {
	Gravity         float64 `yaml:"gravity"`          // Downward acceleration (units/s²)
	JumpForce       float64 `yaml:"jump_force"`       // Vertical velocity after a bounce (negative = up)
	MoveSpeed       float64 `yaml:"move_speed"`       // Horizontal speed while steering
	BoostMultiplier float64 `yaml:"boost_multiplier"` // Jump multiplier on boost platforms
	MaxDT           float64 `yaml:"max_dt"`           // Upper bound for a single step
}

// JumperWorld defines the play field and camera behavior.
type JumperWorld struct {
	PlayWidth       float64 `yaml:"play_width"`       // Horizontal extent, centered at 0
	ViewHeight      float64 `yaml:"view_height"`      // Visible vertical extent
	FollowMargin    float64 `yaml:"follow_margin"`    // Camera keeps the player this far below its center
	LookaheadMargin float64 `yaml:"lookahead_margin"` // Region above the view kept populated
	LayerSpacing    float64 `yaml:"layer_spacing"`    // Vertical distance between layers
	GroundY         float64 `yaml:"ground_y"`         // Y of the initial ground platform
}

// JumperSpawn defines the procedural generation odds.
type JumperSpawn struct {
	PMoving             float64 `yaml:"p_moving"`
	PBreakable          float64 `yaml:"p_breakable"`
	PBoost              float64 `yaml:"p_boost"`
	PCoin               float64 `yaml:"p_coin"`
	PEnemy              float64 `yaml:"p_enemy"`
	EnemyScoreThreshold float64 `yaml:"enemy_score_threshold"` // Enemies spawn only above this score
	EnemyOffsetX        float64 `yaml:"enemy_offset_x"`        // Horizontal offset from the platform
	EnemyOffsetY        float64 `yaml:"enemy_offset_y"`        // Height above the platform
	CoinOffsetY         float64 `yaml:"coin_offset_y"`         // Height above the platform
	MovingSpeed         float64 `yaml:"moving_speed"`          // Moving platform speed (units/s)
	RetireAllKinds      bool    `yaml:"retire_all_kinds"`      // Retire coins and enemies like platforms
}

// Size is a width/height pair in world units.
type Size struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// JumperSizes defines fixed bounding sizes per entity kind.
type JumperSizes struct {
	Player   Size `yaml:"player"`
	Platform Size `yaml:"platform"`
	Coin     Size `yaml:"coin"`
	Enemy    Size `yaml:"enemy"`
}

// Validate reports the first invalid tunable.
func (c JumperConfig) Validate() error {
	if c.Physics.MaxDT <= 0 {
		return errors.New("config: physics.max_dt must be positive")
	}
	if c.World.PlayWidth <= 0 || c.World.ViewHeight <= 0 {
		return errors.New("config: world.play_width and world.view_height must be positive")
	}
	if c.World.LayerSpacing <= 0 {
		return errors.New("config: world.layer_spacing must be positive")
	}
	probs := map[string]float64{
		"p_moving":    c.Spawn.PMoving,
		"p_breakable": c.Spawn.PBreakable,
		"p_boost":     c.Spawn.PBoost,
		"p_coin":      c.Spawn.PCoin,
		"p_enemy":     c.Spawn.PEnemy,
	}
	for name, p := range probs {
		if p < 0 || p > 1 {
			return fmt.Errorf("config: spawn.%s = %v is outside [0, 1]", name, p)
		}
	}
	sizes := map[string]Size{
		"player":   c.Sizes.Player,
		"platform": c.Sizes.Platform,
		"coin":     c.Sizes.Coin,
		"enemy":    c.Sizes.Enemy,
	}
	for name, s := range sizes {
		if s.W <= 0 || s.H <= 0 {
			return fmt.Errorf("config: sizes.%s must be positive, got %vx%v", name, s.W, s.H)
		}
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficultyPreset maps a CLI string to a preset. Empty means "use config as is".
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}
