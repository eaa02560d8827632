package sim

import (
	"math"
	"time"
)

// WorldState is the whole mutable simulation state. The Engine owns it and
// hands it to each subsystem; nothing else keeps a reference across frames.
type WorldState struct {
	Config Config

	// Speed is the shared world scroll speed in px/frame
	Speed float64

	// Level is the difficulty level, raised at every score milestone
	Level int

	// Score counts frames survived
	Score int

	// Scroll is the background offset, wrapping at the background width
	Scroll float64

	// Clock is the simulation time accumulated from Advance
	Clock time.Duration

	// Active is false once the player has collided
	Active bool

	Player      *Player
	Cacti       []*Entity
	Birds       []*Entity
	Meteors     []*Entity
	Craters     []*Entity
	BrokenCacti []*Entity
	BrokenBirds []*Entity

	obstacleTimer time.Duration
	meteorTimer   time.Duration
	nextID        EntityID
}

func newWorldState(cfg Config) *WorldState {
	return &WorldState{
		Config: cfg,
		Speed:  cfg.BaseSpeed,
		Level:  cfg.BaseLevel,
		Active: true,
	}
}

func (w *WorldState) newID() EntityID {
	w.nextID++
	return w.nextID
}

// reset returns the world to a fresh session. The clock keeps running so the
// spawn timers restart one full interval from now.
func (w *WorldState) reset() {
	w.Speed = w.Config.BaseSpeed
	w.Level = w.Config.BaseLevel
	w.Score = 0
	w.Scroll = 0
	w.Active = true
	w.Player = nil
	w.Cacti = nil
	w.Birds = nil
	w.Meteors = nil
	w.Craters = nil
	w.BrokenCacti = nil
	w.BrokenBirds = nil
	w.obstacleTimer = w.Clock
	w.meteorTimer = w.Clock
}

// LiveCount returns the number of non-player entities in the world
func (w *WorldState) LiveCount() int {
	return len(w.Cacti) + len(w.Birds) + len(w.Meteors) + len(w.Craters) +
		len(w.BrokenCacti) + len(w.BrokenBirds)
}

// scrollBackground moves the background by the world speed and wraps it
func (w *WorldState) scrollBackground(tileWidth int) {
	w.Scroll -= w.Speed
	if tileWidth > 0 && math.Abs(w.Scroll) > float64(tileWidth) {
		w.Scroll = 0
	}
}

// progress awards the per-frame point and applies milestone steps
func (w *WorldState) progress() {
	w.Score++
	if w.Config.MilestonePoints > 0 && w.Score%w.Config.MilestonePoints == 0 {
		w.Level++
		w.Speed += w.Config.MilestoneSpeedStep
	}
}

// cull removes consumed and off-screen entities in one pass after updates
func (w *WorldState) cull() {
	w.Cacti = w.keepLive(w.Cacti)
	w.Birds = w.keepLive(w.Birds)
	w.Meteors = w.keepLive(w.Meteors)
	w.Craters = w.keepLive(w.Craters)
	w.BrokenCacti = w.keepLive(w.BrokenCacti)
	w.BrokenBirds = w.keepLive(w.BrokenBirds)
}

func (w *WorldState) keepLive(list []*Entity) []*Entity {
	kept := list[:0]
	for _, e := range list {
		if !e.Active {
			continue
		}
		if e.IsOffScreen(w.Config) {
			e.Active = false
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(list); i++ {
		list[i] = nil
	}
	return kept
}
