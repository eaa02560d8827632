package sim

import "image"

// Collide reports whether the opaque pixels of a and b overlap at their current
// positions. Nil, identical or inactive entities never collide, so testing a
// candidate that was already consumed is a safe no-op.
func Collide(a, b *Entity) bool {
	if a == nil || b == nil || a == b || !a.Active || !b.Active {
		return false
	}
	if !a.Bounds().Overlaps(b.Bounds()) {
		return false
	}
	offset := b.TopLeft().Sub(a.TopLeft())
	return a.Mask().Overlap(b.Mask(), offset)
}

// CollisionSystem rebuilds the spatial index every frame and answers the
// player-versus-hazard query from it.
type CollisionSystem struct {
	world *WorldState
	tree  *Quadtree

	candidates []*Entity
	checked    map[*Entity]struct{}
}

// NewCollisionSystem creates a collision system over the world's playfield
func NewCollisionSystem(world *WorldState) *CollisionSystem {
	cfg := world.Config
	bounds := image.Rect(0, 0, cfg.ScreenWidth, cfg.ScreenHeight)
	return &CollisionSystem{
		world:   world,
		tree:    NewQuadtree(bounds, cfg.QuadtreeMaxObjects, cfg.QuadtreeMaxLevels),
		checked: make(map[*Entity]struct{}),
	}
}

// Tree exposes the spatial index built by the last Rebuild
func (c *CollisionSystem) Tree() *Quadtree {
	return c.tree
}

// Rebuild clears the index and inserts every live colliding entity
func (c *CollisionSystem) Rebuild() {
	w := c.world
	c.tree.Clear()
	if w.Player != nil {
		c.tree.Insert(w.Player.Entity)
	}
	for _, list := range [][]*Entity{w.Cacti, w.Birds, w.Meteors, w.Craters} {
		for _, e := range list {
			if e.Active {
				c.tree.Insert(e)
			}
		}
	}
}

// PlayerHit returns the first hazard whose mask overlaps the player's, or nil.
// Candidates come from the index; duplicates are tested once.
func (c *CollisionSystem) PlayerHit() *Entity {
	p := c.world.Player
	if p == nil {
		return nil
	}
	c.candidates = c.tree.RetrieveRect(p.Bounds(), c.candidates[:0])
	clear(c.checked)
	for _, e := range c.candidates {
		if !isHazard(e.Kind) {
			continue
		}
		if _, done := c.checked[e]; done {
			continue
		}
		c.checked[e] = struct{}{}
		if Collide(p.Entity, e) {
			return e
		}
	}
	return nil
}

func isHazard(k EntityKind) bool {
	switch k {
	case KindCactus, KindBird, KindMeteor, KindCrater:
		return true
	}
	return false
}
