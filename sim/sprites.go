package sim

import (
	"errors"
	"fmt"

	"dinorun/geom"
)

// Logical sprite names the engine asks its SpriteSource for.
const (
	SpriteRun1       = "run_1"
	SpriteRun2       = "run_2"
	SpriteJump       = "jump_1"
	SpriteCrouch1    = "crouch_1"
	SpriteCrouch2    = "crouch_2"
	SpriteCactus1    = "cactus1"
	SpriteCactus2    = "cactus2"
	SpriteCactus3    = "cactus3"
	SpriteBroken1    = "broken_cacti_1"
	SpriteBroken2    = "broken_cacti_2"
	SpriteBroken3    = "broken_cacti_3"
	SpriteBird1      = "bird1"
	SpriteBird2      = "bird2"
	SpriteBrokenBird = "broken_bird"
	SpriteMeteor     = "meteor"
	SpriteCrater     = "krater"
	SpriteBackground = "bg_1"
)

var (
	runFrames    = []string{SpriteRun1, SpriteRun2}
	crouchFrames = []string{SpriteCrouch1, SpriteCrouch2}
	birdFrames   = []string{SpriteBird1, SpriteBird2}
	cactusNames  = []string{SpriteCactus1, SpriteCactus2, SpriteCactus3}
	brokenNames  = []string{SpriteBroken1, SpriteBroken2, SpriteBroken3}
)

// RequiredSprites lists every base sprite the engine resolves at startup
func RequiredSprites() []string {
	names := []string{SpriteJump, SpriteBrokenBird, SpriteMeteor, SpriteCrater, SpriteBackground}
	names = append(names, runFrames...)
	names = append(names, crouchFrames...)
	names = append(names, birdFrames...)
	names = append(names, cactusNames...)
	names = append(names, brokenNames...)
	return names
}

// ErrMissingSprite is returned when the sprite source cannot resolve a name
var ErrMissingSprite = errors.New("missing sprite")

// SpriteSource supplies opaque-pixel masks and sizes by logical sprite name
type SpriteSource interface {
	// Sprite returns the named sprite at its native size
	Sprite(name string) (geom.Sprite, error)

	// Scaled returns the named sprite resized to w x h
	Scaled(name string, w, h int) (geom.Sprite, error)
}

// spriteSet caches the resolved base sprites for one engine
type spriteSet struct {
	src    SpriteSource
	byName map[string]geom.Sprite
}

func loadSprites(src SpriteSource) (*spriteSet, error) {
	set := &spriteSet{src: src, byName: make(map[string]geom.Sprite)}
	for _, name := range RequiredSprites() {
		s, err := src.Sprite(name)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrMissingSprite, name, err)
		}
		if s.Mask == nil {
			return nil, fmt.Errorf("%w %q: no mask", ErrMissingSprite, name)
		}
		set.byName[name] = s
	}
	return set, nil
}

func (s *spriteSet) get(name string) geom.Sprite {
	return s.byName[name]
}

func (s *spriteSet) frames(names []string) []geom.Sprite {
	out := make([]geom.Sprite, len(names))
	for i, n := range names {
		out[i] = s.byName[n]
	}
	return out
}

func (s *spriteSet) scaled(name string, w, h int) (geom.Sprite, error) {
	return s.src.Scaled(name, w, h)
}
