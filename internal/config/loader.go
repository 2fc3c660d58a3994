package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the search directories.
const FileName = "jumper.yaml"

// LoadJumper loads the jumper configuration.
// Search order: customPath -> ~/.jumper/configs/jumper.yaml -> ./configs/jumper.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a partial file only overrides
// the keys it names.
func LoadJumper(customPath string) (JumperConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		if cfg, err := loadFile(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	return embeddedDefault(), nil
}

// Load loads the configuration and applies a difficulty preset on top.
func Load(customPath string, preset DifficultyPreset) (JumperConfig, error) {
	cfg, err := LoadJumper(customPath)
	if err != nil {
		return cfg, err
	}
	ApplyPreset(&cfg, preset)
	return cfg, nil
}

// ResolvePath returns the config file LoadJumper would read, following the
// same search order. It fails when only the embedded default is available.
func ResolvePath(customPath string) (string, error) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err != nil {
			return "", err
		}
		return customPath, nil
	}
	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no %s found in search path", FileName)
}

func loadFile(path string) (JumperConfig, error) {
	cfg := embeddedDefault()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func embeddedDefault() JumperConfig {
	var cfg JumperConfig
	if err := yaml.Unmarshal(defaultJumperYAML, &cfg); err != nil {
		return DefaultJumperConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".jumper", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal and the empty preset leave the config untouched.
func ApplyPreset(cfg *JumperConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Spawn.PEnemy /= 2
		cfg.Spawn.EnemyScoreThreshold *= 2
		cfg.Spawn.PBreakable /= 2
		cfg.Spawn.PBoost *= 2
	case DifficultyHard:
		cfg.Spawn.PEnemy = min(cfg.Spawn.PEnemy*2, 1)
		cfg.Spawn.EnemyScoreThreshold /= 2
		cfg.Spawn.PBreakable = min(cfg.Spawn.PBreakable*2, 1)
		cfg.Spawn.PMoving = min(cfg.Spawn.PMoving*1.5, 1)
	}
}
