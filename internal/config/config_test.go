package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDiggerDefaults(t *testing.T) {
	cfg, err := LoadDigger("")
	if err != nil {
		t.Fatalf("LoadDigger failed: %v", err)
	}
	def := DefaultDiggerConfig()

	// A user or local config may exist on the test machine; only the
	// embedded file is compared here.
	if len(GetDefaultYAML("digger")) == 0 {
		t.Fatal("embedded digger.yaml is empty")
	}
	if cfg.Pacing.StepEveryTicks < 1 {
		t.Errorf("StepEveryTicks = %d, expected >= 1", cfg.Pacing.StepEveryTicks)
	}
	if def.Pacing.StepEveryTicks != 6 || def.Pacing.MinStepEveryTicks != 3 {
		t.Errorf("unexpected hardcoded pacing: %+v", def.Pacing)
	}
}

func TestLoadDiggerCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "digger.yaml")
	data := []byte("pacing:\n  step_every_ticks: 10\n  min_step_every_ticks: 4\ndisplay:\n  show_hud: false\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadDigger(path)
	if err != nil {
		t.Fatalf("LoadDigger failed: %v", err)
	}
	if cfg.Pacing.StepEveryTicks != 10 || cfg.Pacing.MinStepEveryTicks != 4 {
		t.Errorf("pacing = %+v, expected 10/4", cfg.Pacing)
	}
	if cfg.Display.ShowHUD {
		t.Error("show_hud should be false")
	}
	// Fields absent from the file keep their defaults.
	if cfg.Campaign.BannerTicks != DefaultDiggerConfig().Campaign.BannerTicks {
		t.Errorf("BannerTicks = %d, expected default", cfg.Campaign.BannerTicks)
	}
}

func TestLoadDiggerErrors(t *testing.T) {
	if _, err := LoadDigger(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("pacing: [not, a, map"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadDigger(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestNormalizeDigger(t *testing.T) {
	cfg := DefaultDiggerConfig()
	cfg.Pacing.StepEveryTicks = 0
	cfg.Pacing.MinStepEveryTicks = 9

	cfg = normalizeDigger(cfg)
	if cfg.Pacing.StepEveryTicks != 1 || cfg.Pacing.MinStepEveryTicks != 1 {
		t.Errorf("normalized pacing = %+v, expected 1/1", cfg.Pacing)
	}
}

func TestApplyDiggerPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		enabled     bool
		initial     float64
		stepEvery   int
		minInterval int
	}{
		{DifficultyEasy, true, 0.0, 8, 5},
		{DifficultyNormal, true, 0.3, 6, 3},
		{DifficultyHard, true, 0.7, 5, 2},
		{DifficultyFixed, false, 0.0, 6, 3},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultDiggerConfig()
			ApplyDiggerPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.initial {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.initial)
			}
			if cfg.Pacing.StepEveryTicks != tc.stepEvery || cfg.Pacing.MinStepEveryTicks != tc.minInterval {
				t.Errorf("pacing = %+v", cfg.Pacing)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("ParsePreset(hard) failed")
	}
	if ParsePreset("insane") != "" {
		t.Error("unknown preset should map to empty")
	}
}
