// Package autopilot plays the game by turning observations of the world into
// input events. Pilots are either built-in rules or JavaScript scripts.
package autopilot

import (
	"sort"

	"dinorun/sim"
)

// Observation is what a pilot sees each tick. It is serialized to JSON for
// scripts, so field names are part of the script API.
type Observation struct {
	Score   int          `json:"score"`
	Speed   float64      `json:"speed"`
	Level   int          `json:"level"`
	Active  bool         `json:"active"`
	Player  PlayerInfo   `json:"player"`
	Hazards []HazardInfo `json:"hazards"`
}

// PlayerInfo describes the runner
type PlayerInfo struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	W         int     `json:"w"`
	H         int     `json:"h"`
	State     string  `json:"state"`
	Airborne  bool    `json:"airborne"`
	VelocityY float64 `json:"velocityY"`
}

// HazardInfo describes one colliding entity that has not yet passed the player
type HazardInfo struct {
	Kind string `json:"kind"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	W    int    `json:"w"`
	H    int    `json:"h"`

	// Distance is the horizontal gap between the player's front edge and the
	// hazard's left edge; negative once they overlap horizontally.
	Distance int `json:"distance"`

	// VY is the fall speed of meteors
	VY float64 `json:"vy"`
}

// Observe snapshots the engine's world. Hazards are sorted nearest first.
func Observe(e *sim.Engine) Observation {
	w := e.World()
	p := w.Player
	pb := p.Bounds()
	obs := Observation{
		Score:  w.Score,
		Speed:  w.Speed,
		Level:  w.Level,
		Active: w.Active,
		Player: PlayerInfo{
			X:         pb.Min.X,
			Y:         pb.Min.Y,
			W:         pb.Dx(),
			H:         pb.Dy(),
			State:     p.State().String(),
			Airborne:  p.State() == sim.Jumping,
			VelocityY: p.VelocityY(),
		},
	}
	// Never nil, so scripts always see an array
	obs.Hazards = []HazardInfo{}

	for _, list := range [][]*sim.Entity{w.Cacti, w.Birds, w.Meteors, w.Craters} {
		for _, ent := range list {
			b := ent.Bounds()
			if !ent.Active || b.Max.X <= pb.Min.X {
				continue
			}
			obs.Hazards = append(obs.Hazards, HazardInfo{
				Kind:     ent.Kind.String(),
				X:        b.Min.X,
				Y:        b.Min.Y,
				W:        b.Dx(),
				H:        b.Dy(),
				Distance: b.Min.X - pb.Max.X,
				VY:       ent.VY,
			})
		}
	}
	sort.SliceStable(obs.Hazards, func(i, j int) bool {
		return obs.Hazards[i].Distance < obs.Hazards[j].Distance
	})
	return obs
}
