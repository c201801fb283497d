package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDigger loads Digger configuration.
// Search order: customPath -> ~/.arcade/configs/digger.yaml -> ./configs/digger.yaml -> embedded default
func LoadDigger(customPath string) (DiggerConfig, error) {
	cfg := DefaultDiggerConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return normalizeDigger(cfg), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("digger.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return normalizeDigger(cfg), nil
			}
			cfg = DefaultDiggerConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "digger.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return normalizeDigger(cfg), nil
		}
		cfg = DefaultDiggerConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultDiggerYAML, &cfg); err != nil {
		return DefaultDiggerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return normalizeDigger(cfg), nil
}

// normalizeDigger repairs values that would stall the game loop.
func normalizeDigger(cfg DiggerConfig) DiggerConfig {
	if cfg.Pacing.StepEveryTicks < 1 {
		cfg.Pacing.StepEveryTicks = 1
	}
	if cfg.Pacing.MinStepEveryTicks < 1 || cfg.Pacing.MinStepEveryTicks > cfg.Pacing.StepEveryTicks {
		cfg.Pacing.MinStepEveryTicks = cfg.Pacing.StepEveryTicks
	}
	if cfg.Campaign.BannerTicks < 0 {
		cfg.Campaign.BannerTicks = 0
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyDiggerPreset modifies the config based on a difficulty preset.
func ApplyDiggerPreset(cfg *DiggerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust pacing based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Pacing.StepEveryTicks = 8
		cfg.Pacing.MinStepEveryTicks = 5
	case DifficultyHard:
		cfg.Pacing.StepEveryTicks = 5
		cfg.Pacing.MinStepEveryTicks = 2
	}
}
