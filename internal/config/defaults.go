package config

import (
	_ "embed"
)

//go:embed defaults/digger.yaml
var defaultDiggerYAML []byte

// DefaultDiggerConfig returns the default Digger configuration.
func DefaultDiggerConfig() DiggerConfig {
	return DiggerConfig{
		Pacing: DiggerPacing{
			StepEveryTicks:    6, // 10 steps per second at 60 FPS
			MinStepEveryTicks: 3,
		},
		Display: DiggerDisplay{
			ShowHUD: true,
		},
		Campaign: DiggerCampaign{
			BannerTicks: 90, // ~1.5 seconds at 60 FPS
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 300,
			},
			Scaling: ScalingConfig{
				StepReduction: 3,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "digger":
		return defaultDiggerYAML
	default:
		return nil
	}
}
