package sim

import (
	"fmt"
	"image"
	"io"
	"log"
	"testing"
	"time"

	"dinorun/geom"
)

// stubSprites serves solid rectangles so overlaps are easy to reason about.
type stubSprites struct {
	sizes map[string]image.Point
}

func newStubSprites() *stubSprites {
	return &stubSprites{sizes: map[string]image.Point{
		SpriteRun1:       {60, 75},
		SpriteRun2:       {60, 75},
		SpriteJump:       {60, 75},
		SpriteCrouch1:    {80, 38},
		SpriteCrouch2:    {80, 38},
		SpriteCactus1:    {30, 60},
		SpriteCactus2:    {50, 70},
		SpriteCactus3:    {70, 50},
		SpriteBroken1:    {30, 35},
		SpriteBroken2:    {50, 45},
		SpriteBroken3:    {70, 25},
		SpriteBird1:      {60, 45},
		SpriteBird2:      {60, 40},
		SpriteBrokenBird: {50, 30},
		SpriteMeteor:     {64, 64},
		SpriteCrater:     {64, 64},
		SpriteBackground: {600, 400},
	}}
}

func (s *stubSprites) Sprite(name string) (geom.Sprite, error) {
	size, ok := s.sizes[name]
	if !ok {
		return geom.Sprite{}, fmt.Errorf("no stub for %q", name)
	}
	return geom.Sprite{Key: name, Mask: geom.FilledMask(size.X, size.Y)}, nil
}

func (s *stubSprites) Scaled(name string, w, h int) (geom.Sprite, error) {
	if _, ok := s.sizes[name]; !ok {
		return geom.Sprite{}, fmt.Errorf("no stub for %q", name)
	}
	return geom.Sprite{Key: fmt.Sprintf("%s@%dx%d", name, w, h), Mask: geom.FilledMask(w, h)}, nil
}

var frameDT = time.Second / 60

// quietConfig disables timed spawns and keeps the world speed constant so a
// test controls the whole population.
func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.SpeedPerFrame = 0
	cfg.ObstacleInterval = time.Hour
	cfg.MeteorInterval = time.Hour
	return cfg
}

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, newStubSprites(), WithLogger(log.New(io.Discard, "", 0)))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func advance(e *Engine, n int) Frame {
	var f Frame
	for i := 0; i < n; i++ {
		f = e.Advance(nil, frameDT)
	}
	return f
}

var nextBoxID EntityID

// box creates a free-standing solid entity for index and collision tests.
func box(x, y, w, h int) *Entity {
	nextBoxID++
	return newEntity(nextBoxID, KindCactus, float64(x), float64(y),
		geom.Sprite{Key: "box", Mask: geom.FilledMask(w, h)})
}

func contains(list []*Entity, e *Entity) int {
	n := 0
	for _, x := range list {
		if x == e {
			n++
		}
	}
	return n
}
