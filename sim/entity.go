package sim

import (
	"image"
	"math"
	"time"

	"dinorun/geom"
)

// EntityID is a unique identifier for any entity in a world.
type EntityID uint64

// InvalidEntityID represents an unset entity reference.
const InvalidEntityID EntityID = 0

// EntityKind identifies the type of entity
type EntityKind int

const (
	KindPlayer EntityKind = iota
	KindCactus
	KindBird
	KindMeteor
	KindCrater
	KindBrokenCactus
	KindBrokenBird
)

func (k EntityKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindCactus:
		return "cactus"
	case KindBird:
		return "bird"
	case KindMeteor:
		return "meteor"
	case KindCrater:
		return "crater"
	case KindBrokenCactus:
		return "broken-cactus"
	case KindBrokenBird:
		return "broken-bird"
	default:
		return "unknown"
	}
}

// Collidable reports whether entities of this kind take part in collision
// tests. Debris is purely cosmetic.
func (k EntityKind) Collidable() bool {
	return k != KindBrokenCactus && k != KindBrokenBird
}

// Entity represents any object that moves, animates or collides
type Entity struct {
	ID   EntityID
	Kind EntityKind

	// Position of the top-left corner in world pixels
	X, Y float64

	// Vertical speed in px/frame (meteors and broken birds)
	VY float64

	// Square size for meteors and craters
	Size int

	// Variant index for cacti, selecting the matching broken sprite
	Variant int

	// Active is false once the entity has been consumed or culled
	Active bool

	sprite geom.Sprite
	hull   []image.Point

	frames   []geom.Sprite
	frame    int
	lastAnim time.Duration
}

func newEntity(id EntityID, kind EntityKind, x, y float64, sprite geom.Sprite) *Entity {
	e := &Entity{
		ID:     id,
		Kind:   kind,
		X:      x,
		Y:      y,
		Active: true,
	}
	e.setSprite(sprite)
	return e
}

// setSprite swaps the displayed image. The mask travels with the sprite and the
// hull is recomputed so bounds, mask and hull always agree.
func (e *Entity) setSprite(s geom.Sprite) {
	if e.sprite.Key == s.Key && e.sprite.Mask == s.Mask && e.sprite.Mask != nil {
		return
	}
	e.sprite = s
	e.hull = geom.ConvexHull(s.Mask)
}

// TopLeft returns the integer pixel position of the entity
func (e *Entity) TopLeft() image.Point {
	return image.Pt(int(math.Floor(e.X)), int(math.Floor(e.Y)))
}

// Bounds returns the axis-aligned bounding rectangle in world pixels
func (e *Entity) Bounds() image.Rectangle {
	return e.sprite.Mask.Bounds().Add(e.TopLeft())
}

// Mask returns the opaque-pixel mask of the displayed image
func (e *Entity) Mask() *geom.Mask {
	return e.sprite.Mask
}

// SpriteKey returns the key of the displayed image
func (e *Entity) SpriteKey() string {
	return e.sprite.Key
}

// Hull returns the convex hull of the displayed image, relative to TopLeft
func (e *Entity) Hull() []image.Point {
	return e.hull
}

// Frame returns the current animation frame index
func (e *Entity) Frame() int {
	return e.frame
}

// animate advances the frame index once the interval has elapsed since the
// last advance.
func (e *Entity) animate(now, interval time.Duration) bool {
	if len(e.frames) == 0 || now-e.lastAnim <= interval {
		return false
	}
	e.lastAnim = now
	e.frame = (e.frame + 1) % len(e.frames)
	e.setSprite(e.frames[e.frame])
	return true
}

// Update applies one frame of motion. It reports true when a meteor reaches
// the ground this frame; the caller converts it after the pass.
func (e *Entity) Update(w *WorldState) bool {
	switch e.Kind {
	case KindCactus, KindCrater, KindBrokenCactus:
		e.X -= w.Speed
	case KindBird:
		e.animate(w.Clock, w.Config.AnimationInterval)
		e.X -= w.Speed
	case KindBrokenBird:
		e.X -= w.Speed
		e.Y += e.VY
	case KindMeteor:
		e.Y += e.VY
		if ground := w.Config.MeteorGroundY(); e.Y >= ground {
			e.Y = ground
			return true
		}
	}
	return false
}

// IsOffScreen reports whether the entity has left the visible area along its
// motion axis.
func (e *Entity) IsOffScreen(cfg Config) bool {
	switch e.Kind {
	case KindPlayer:
		return false
	case KindMeteor:
		return e.Bounds().Min.Y > cfg.ScreenHeight
	default:
		return e.Bounds().Max.X < 0
	}
}
