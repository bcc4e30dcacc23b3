package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in each search directory.
const FileName = "fighter.yaml"

// Load loads the fighter configuration.
// Search order: customPath -> ~/.tui-fighter/configs/fighter.yaml ->
// ./configs/fighter.yaml -> embedded default -> DefaultFighterConfig.
// Files are layered over the defaults, so a file may set only some keys.
// An unreadable or invalid custom file is an error; other candidates are
// skipped when they fail to parse or validate.
func Load(customPath string) (FighterConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FighterConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return FighterConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if cfg, err := parse(defaultFighterYAML); err == nil {
		return cfg, nil
	}
	return DefaultFighterConfig(), nil // Fallback to hardcoded if embed fails
}

// parse layers YAML over the hard-coded defaults and validates the result.
func parse(data []byte) (FighterConfig, error) {
	cfg := DefaultFighterConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FighterConfig{}, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return FighterConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tui-fighter", "configs", filename)
}

// ApplyPreset tunes the CPU and difficulty progression for a preset.
func ApplyPreset(cfg *FighterConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Adjust the opponent based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.CPU.MinInterval = 45
		cfg.CPU.MaxInterval = 120
		cfg.CPU.BlockChance = 0.4
		cfg.CPU.SpecialChance = 0.15
	case DifficultyHard:
		cfg.CPU.MinInterval = 20
		cfg.CPU.MaxInterval = 60
		cfg.CPU.BlockChance = 0.85
		cfg.CPU.SpecialChance = 0.5
	}
}
