package sim

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig invalid: %v", err)
	}
	if got := cfg.MeteorGroundY(); got != 217 {
		t.Fatalf("MeteorGroundY = %v, want 217", got)
	}
	if got := cfg.FrameDuration(); got != time.Second/60 {
		t.Fatalf("FrameDuration = %v", got)
	}
}

func TestValidateRejectsBadRanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"screen", func(c *Config) { c.ScreenWidth = 0 }},
		{"meteor size", func(c *Config) { c.MeteorMaxSize = c.MeteorMinSize - 1 }},
		{"meteor speed", func(c *Config) { c.MeteorMaxSpeed = 1 }},
		{"meteor x", func(c *Config) { c.MeteorMinX = c.ScreenWidth }},
		{"lanes", func(c *Config) { c.BirdLanes = nil }},
		{"quadtree", func(c *Config) { c.QuadtreeMaxObjects = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("Validate accepted an invalid config")
			}
		})
	}
}

func TestLoadConfigMissingFileIsFine(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ScreenWidth != 900 {
		t.Fatalf("ScreenWidth = %d, want 900", cfg.ScreenWidth)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv(EnvShowHulls, "false")
	t.Setenv(EnvMilestoneStep, "1.5")
	t.Setenv(EnvWindowScale, "2")
	t.Setenv(EnvProfile, "1")
	t.Setenv(EnvSpriteDebug, "/tmp/sprites")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ShowHulls {
		t.Error("ShowHulls not overridden")
	}
	if cfg.MilestoneSpeedStep != 1.5 {
		t.Errorf("MilestoneSpeedStep = %v, want 1.5", cfg.MilestoneSpeedStep)
	}
	if cfg.WindowScale != 2 {
		t.Errorf("WindowScale = %v, want 2", cfg.WindowScale)
	}
	if !cfg.Profile {
		t.Error("Profile not overridden")
	}
	if cfg.SpriteDebugDir != "/tmp/sprites" {
		t.Errorf("SpriteDebugDir = %q", cfg.SpriteDebugDir)
	}
}

func TestLoadConfigReadsEnvFile(t *testing.T) {
	if _, ok := os.LookupEnv(EnvSeed); ok {
		t.Skipf("%s already set", EnvSeed)
	}
	// godotenv sets process variables that t.Setenv does not track.
	t.Cleanup(func() { os.Unsetenv(EnvSeed) })

	path := filepath.Join(t.TempDir(), "game.env")
	if err := os.WriteFile(path, []byte(EnvSeed+"=42\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Seed != 42 {
		t.Fatalf("Seed = %d, want 42", cfg.Seed)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	for _, env := range []string{EnvSeed, EnvShowHulls, EnvMilestoneStep, EnvWindowScale, EnvProfile} {
		t.Run(env, func(t *testing.T) {
			t.Setenv(env, "not-a-value")
			if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env")); err == nil {
				t.Fatalf("LoadConfig accepted %s=not-a-value", env)
			}
		})
	}
}
