package config

import (
	_ "embed"
)

//go:embed defaults/jumper.yaml
var defaultJumperYAML []byte

// DefaultJumperConfig returns the hardcoded default configuration.
// It mirrors defaults/jumper.yaml and is used when the embedded file cannot be parsed.
func DefaultJumperConfig() JumperConfig {
	return JumperConfig{
		Physics: JumperPhysics{
			Gravity:         1200,
			JumpForce:       -750,
			MoveSpeed:       400,
			BoostMultiplier: 1.5,
			MaxDT:           1.0 / 30.0,
		},
		World: JumperWorld{
			PlayWidth:       400,
			ViewHeight:      800,
			FollowMargin:    100,
			LookaheadMargin: 100,
			LayerSpacing:    120,
			GroundY:         100,
		},
		Spawn: JumperSpawn{
			PMoving:             0.2,
			PBreakable:          0.1,
			PBoost:              0.05,
			PCoin:               0.3,
			PEnemy:              0.05,
			EnemyScoreThreshold: 1000,
			EnemyOffsetX:        100,
			EnemyOffsetY:        60,
			CoinOffsetY:         40,
			MovingSpeed:         100,
			RetireAllKinds:      true,
		},
		Sizes: JumperSizes{
			Player:   Size{W: 40, H: 40},
			Platform: Size{W: 80, H: 15},
			Coin:     Size{W: 20, H: 20},
			Enemy:    Size{W: 40, H: 40},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultJumperYAML
}
