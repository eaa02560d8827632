package sim

import (
	"fmt"
	"log"
	"math/rand"
	"time"
)

// GameOverReason says why a session ended
type GameOverReason int

const (
	NotOver GameOverReason = iota
	// CollidedWithHazard means the player's mask overlapped a hazard's
	CollidedWithHazard
)

func (r GameOverReason) String() string {
	switch r {
	case NotOver:
		return "not-over"
	case CollidedWithHazard:
		return "collided"
	default:
		return "unknown"
	}
}

// Frame is the result of one Advance call
type Frame struct {
	// Commands draws the frame, back to front. The slice is reused by the
	// next Advance.
	Commands []DrawCommand

	Score int
	Speed float64
	Level int

	// Active is false while the session is over and waiting for Restart
	Active bool

	// Over is set only on the frame where the session ended
	Over   bool
	Reason GameOverReason

	// HitBy is the kind of hazard that ended the session
	HitBy EntityKind

	// Quit is set when a Quit event was received
	Quit bool
}

// Engine drives the per-frame sequence: input, spawning, motion, culling,
// spatial index rebuild, collision, and scoring. It is not safe for concurrent use.
type Engine struct {
	config     Config
	sprites    *spriteSet
	world      *WorldState
	collisions *CollisionSystem
	spawner    *Spawner
	rng        *rand.Rand
	logger     *log.Logger
	showHulls  bool

	landed   []*Entity
	commands []DrawCommand
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger routes engine diagnostics to l
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRand replaces the seeded random source
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// NewEngine validates the config, resolves every base sprite, and creates the
// first session. A missing sprite is fatal and reported as ErrMissingSprite.
func NewEngine(config Config, src SpriteSource, opts ...Option) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: no sprite source", ErrMissingSprite)
	}
	sprites, err := loadSprites(src)
	if err != nil {
		return nil, err
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e := &Engine{
		config:    config,
		sprites:   sprites,
		rng:       rand.New(rand.NewSource(seed)),
		logger:    log.Default(),
		showHulls: config.ShowHulls,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.world = newWorldState(config)
	e.collisions = NewCollisionSystem(e.world)
	e.spawner = newSpawner(e.rng, sprites, e.logger)
	e.world.Player = newPlayer(e.world.newID(), config, sprites)
	return e, nil
}

// World exposes the simulation state, mainly for HUDs and tests
func (e *Engine) World() *WorldState {
	return e.world
}

// Spawner exposes the spawner so callers can script spawns
func (e *Engine) Spawner() *Spawner {
	return e.spawner
}

// Collisions exposes the collision system and its spatial index
func (e *Engine) Collisions() *CollisionSystem {
	return e.collisions
}

// SetShowHulls toggles the hull overlay
func (e *Engine) SetShowHulls(show bool) {
	e.showHulls = show
}

// ShowHulls reports whether the hull overlay is drawn
func (e *Engine) ShowHulls() bool {
	return e.showHulls
}

// Restart discards the session and rebuilds the player at the spawn point
func (e *Engine) Restart() {
	w := e.world
	w.reset()
	w.Player = newPlayer(w.newID(), e.config, e.sprites)
	e.logger.Printf("session restarted (speed %.2f, level %d)", w.Speed, w.Level)
}

// Advance runs one tick. Events are applied in order; a Quit event stops the
// tick immediately. While the session is over only Quit is honoured and the
// last frame is redrawn.
func (e *Engine) Advance(events []InputEvent, dt time.Duration) Frame {
	w := e.world
	for _, ev := range events {
		if ev == Quit {
			return e.frame(Frame{Quit: true})
		}
		if !w.Active {
			continue
		}
		switch ev {
		case MoveUpPressed:
			w.Player.Jump()
		case MoveDownPressed:
			w.Player.Crouch(true)
		case MoveDownReleased:
			w.Player.Crouch(false)
		}
	}
	if !w.Active {
		return e.frame(Frame{})
	}

	w.Clock += dt
	w.Speed += e.config.SpeedPerFrame
	w.scrollBackground(e.sprites.get(SpriteBackground).Size().X)

	w.Player.Update(w.Clock)
	e.spawner.Update(w)
	e.updateEntities()
	w.cull()

	e.collisions.Rebuild()
	hit := e.collisions.PlayerHit()

	w.progress()

	out := Frame{}
	if hit != nil {
		w.Active = false
		out.Over = true
		out.Reason = CollidedWithHazard
		out.HitBy = hit.Kind
		e.logger.Printf("game over: player hit %s #%d (score %d, speed %.2f)", hit.Kind, hit.ID, w.Score, w.Speed)
	}
	return e.frame(out)
}

// updateEntities runs every non-player update in the fixed order: cacti,
// meteors (with their destructive collisions), craters, birds, debris.
func (e *Engine) updateEntities() {
	w := e.world
	for _, c := range w.Cacti {
		c.Update(w)
	}

	e.landed = e.landed[:0]
	for _, m := range w.Meteors {
		if !m.Active {
			continue
		}
		landed := m.Update(w)
		e.smash(m)
		if landed && m.Active {
			e.landed = append(e.landed, m)
		}
	}
	// Converted after the pass so the meteor list is never mutated mid-iteration.
	for _, m := range e.landed {
		e.spawner.landCrater(w, m)
	}

	for _, list := range [][]*Entity{w.Craters, w.Birds, w.BrokenCacti, w.BrokenBirds} {
		for _, ent := range list {
			ent.Update(w)
		}
	}
}

// smash checks a meteor against cacti, then birds. The first hit destroys
// both; the obstacle leaves debris behind and the meteor leaves no crater.
func (e *Engine) smash(m *Entity) {
	w := e.world
	for _, c := range w.Cacti {
		if Collide(m, c) {
			e.spawner.breakCactus(w, c)
			m.Active = false
			return
		}
	}
	for _, b := range w.Birds {
		if Collide(m, b) {
			e.spawner.breakBird(w, b)
			m.Active = false
			return
		}
	}
}

// Snapshot draws the current state without advancing the simulation
func (e *Engine) Snapshot() Frame {
	return e.frame(Frame{})
}

func (e *Engine) frame(out Frame) Frame {
	w := e.world
	e.commands = drawWorld(w, e.sprites.get(SpriteBackground), e.showHulls, e.commands[:0])
	out.Commands = e.commands
	out.Score = w.Score
	out.Speed = w.Speed
	out.Level = w.Level
	out.Active = w.Active
	return out
}
