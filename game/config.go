package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"dinorun/sim"
)

// Config holds the windowed game's configuration
type Config struct {
	sim.Config

	// Title is the window title
	Title string

	// Keys maps keyboard keys to game actions
	Keys KeyBindings

	// FPSDropThreshold is the frame rate below which a profile is captured
	FPSDropThreshold float64

	// ProfileCooldown is the minimum time between two captures
	ProfileCooldown time.Duration

	// ProfileDuration is how long each capture records
	ProfileDuration time.Duration

	// StartupGrace ignores frame rate drops right after launch
	StartupGrace time.Duration
}

// KeyBindings lists the keys bound to each action
type KeyBindings struct {
	Jump   []ebiten.Key
	Crouch []ebiten.Key
	Quit   []ebiten.Key

	// ToggleHulls shows or hides the convex hull overlay
	ToggleHulls ebiten.Key

	// ToggleStats shows or hides the debug stats line
	ToggleStats ebiten.Key
}

// DefaultKeyBindings returns arrow/WASD bindings with Escape to quit
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Jump:        []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeySpace},
		Crouch:      []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS},
		Quit:        []ebiten.Key{ebiten.KeyEscape},
		ToggleHulls: ebiten.KeyF1,
		ToggleStats: ebiten.KeyF2,
	}
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return NewConfig(sim.DefaultConfig())
}

// NewConfig wraps a simulation config with the window defaults
func NewConfig(cfg sim.Config) Config {
	return Config{
		Config:           cfg,
		Title:            "Dino Run",
		Keys:             DefaultKeyBindings(),
		FPSDropThreshold: 45,
		ProfileCooldown:  10 * time.Second,
		ProfileDuration:  5 * time.Second,
		StartupGrace:     3 * time.Second,
	}
}

// WindowSize returns the window size in device-independent pixels
func (c Config) WindowSize() (int, int) {
	scale := c.WindowScale
	if scale <= 0 {
		scale = 1
	}
	return int(float64(c.ScreenWidth) * scale), int(float64(c.ScreenHeight) * scale)
}
