// Package config provides YAML-based game configuration loading and
// difficulty management for the digger platform.
package config

// DiggerConfig contains all configuration for the Digger game.
type DiggerConfig struct {
	Pacing     DiggerPacing     `yaml:"pacing"`
	Display    DiggerDisplay    `yaml:"display"`
	Campaign   DiggerCampaign   `yaml:"campaign"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// DiggerPacing defines how often the simulation advances relative to frames.
type DiggerPacing struct {
	StepEveryTicks    int `yaml:"step_every_ticks"`     // Frames per simulation step at difficulty 0
	MinStepEveryTicks int `yaml:"min_step_every_ticks"` // Floor reached at max difficulty
}

// DiggerDisplay defines HUD and drawing options.
type DiggerDisplay struct {
	ShowHUD bool `yaml:"show_hud"`
}

// DiggerCampaign defines level progression parameters.
type DiggerCampaign struct {
	BannerTicks int `yaml:"banner_ticks"` // Frames the "level cleared" banner stays up
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	StepReduction int `yaml:"step_reduction"` // Frames removed from the step interval at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI name to a preset. Unknown names return "".
func ParsePreset(name string) DifficultyPreset {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
