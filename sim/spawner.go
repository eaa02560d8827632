package sim

import (
	"log"
	"math/rand"
)

// Spawner owns the spawn timers' random decisions
type Spawner struct {
	rng     *rand.Rand
	sprites *spriteSet
	logger  *log.Logger
}

func newSpawner(rng *rand.Rand, sprites *spriteSet, logger *log.Logger) *Spawner {
	return &Spawner{rng: rng, sprites: sprites, logger: logger}
}

// Update fires whichever spawn timers have elapsed on the world clock
func (s *Spawner) Update(w *WorldState) {
	cfg := w.Config
	if w.Clock-w.obstacleTimer > cfg.ObstacleInterval {
		w.obstacleTimer = w.Clock
		// Three cacti for every bird.
		if s.rng.Intn(4) < 3 {
			s.SpawnCactus(w, s.rng.Intn(len(cactusNames)))
		} else {
			s.SpawnBird(w, cfg.BirdLanes[s.rng.Intn(len(cfg.BirdLanes))])
		}
	}
	if w.Clock-w.meteorTimer > cfg.MeteorInterval {
		w.meteorTimer = w.Clock
		x := randRange(s.rng, cfg.MeteorMinX, cfg.ScreenWidth-cfg.MeteorMaxXMargin)
		size := randRange(s.rng, cfg.MeteorMinSize, cfg.MeteorMaxSize)
		speed := randRange(s.rng, cfg.MeteorMinSpeed, cfg.MeteorMaxSpeed)
		s.SpawnMeteor(w, float64(x), size, float64(speed))
	}
}

// SpawnCactus places a cactus of the given variant at the right screen edge,
// standing on the obstacle baseline.
func (s *Spawner) SpawnCactus(w *WorldState, variant int) *Entity {
	variant = clampIndex(variant, len(cactusNames))
	sprite := s.sprites.get(cactusNames[variant])
	y := w.Config.ScreenHeight - sprite.Size().Y - w.Config.ObstacleBaseline
	e := newEntity(w.newID(), KindCactus, float64(w.Config.ScreenWidth), float64(y), sprite)
	e.Variant = variant
	w.Cacti = append(w.Cacti, e)
	return e
}

// SpawnBird places a bird at the right screen edge in the given lane, where
// lane is the distance of its top edge from the screen bottom.
func (s *Spawner) SpawnBird(w *WorldState, lane int) *Entity {
	frames := s.sprites.frames(birdFrames)
	y := w.Config.ScreenHeight - lane
	e := newEntity(w.newID(), KindBird, float64(w.Config.ScreenWidth), float64(y), frames[0])
	e.frames = frames
	e.lastAnim = w.Clock
	w.Birds = append(w.Birds, e)
	return e
}

// SpawnMeteor drops a square meteor of the given size at x
func (s *Spawner) SpawnMeteor(w *WorldState, x float64, size int, speed float64) *Entity {
	sprite, err := s.sprites.scaled(SpriteMeteor, size, size)
	if err != nil {
		s.logger.Printf("meteor spawn skipped: %v", err)
		return nil
	}
	e := newEntity(w.newID(), KindMeteor, x, w.Config.MeteorSpawnY, sprite)
	e.Size = size
	e.VY = speed
	w.Meteors = append(w.Meteors, e)
	return e
}

// landCrater turns a landed meteor into a crater at its landing x
func (s *Spawner) landCrater(w *WorldState, m *Entity) *Entity {
	m.Active = false
	sprite, err := s.sprites.scaled(SpriteCrater, m.Size, m.Size)
	if err != nil {
		s.logger.Printf("crater skipped: %v", err)
		return nil
	}
	y := w.Config.ScreenHeight - w.Config.CraterOffset - m.Size/2
	e := newEntity(w.newID(), KindCrater, float64(m.TopLeft().X), float64(y), sprite)
	e.Size = m.Size
	w.Craters = append(w.Craters, e)
	return e
}

// breakCactus replaces a cactus hit by a meteor with its broken variant
func (s *Spawner) breakCactus(w *WorldState, c *Entity) *Entity {
	c.Active = false
	sprite := s.sprites.get(brokenNames[clampIndex(c.Variant, len(brokenNames))])
	at := c.TopLeft()
	e := newEntity(w.newID(), KindBrokenCactus, float64(at.X), float64(at.Y+w.Config.DebrisDrop), sprite)
	w.BrokenCacti = append(w.BrokenCacti, e)
	return e
}

// breakBird replaces a bird hit by a meteor with a falling broken bird
func (s *Spawner) breakBird(w *WorldState, b *Entity) *Entity {
	b.Active = false
	at := b.TopLeft()
	e := newEntity(w.newID(), KindBrokenBird, float64(at.X), float64(at.Y), s.sprites.get(SpriteBrokenBird))
	e.VY = w.Config.BirdDebrisFall
	w.BrokenBirds = append(w.BrokenBirds, e)
	return e
}

// randRange returns a uniform integer in [lo, hi]
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
