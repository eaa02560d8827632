package autopilot

import "dinorun/sim"

// Decision is a pilot's wish for the next tick
type Decision struct {
	Jump   bool `json:"jump"`
	Crouch bool `json:"crouch"`
}

// Pilot decides what to do from an observation
type Pilot interface {
	Decide(obs Observation) (Decision, error)
}

// RulePilot jumps over ground hazards and ducks under low birds
type RulePilot struct {
	// Lookahead is how many frames of travel ahead a hazard starts to matter
	Lookahead float64

	// BirdReach is how far above the player's feet a bird's top edge may be
	// and still force a crouch; birds higher than that pass overhead.
	BirdReach int
}

// NewRulePilot returns a rule pilot with tuned defaults
func NewRulePilot() *RulePilot {
	return &RulePilot{Lookahead: 12, BirdReach: 130}
}

// Decide implements Pilot
func (r *RulePilot) Decide(obs Observation) (Decision, error) {
	reach := int(obs.Speed * r.Lookahead)
	p := obs.Player
	for _, h := range obs.Hazards {
		if h.Distance > reach {
			break
		}
		switch h.Kind {
		case sim.KindMeteor.String():
			// Nothing to do against a meteor already overhead.
			continue
		case sim.KindBird.String():
			if h.Y < p.Y+p.H-r.BirdReach {
				continue
			}
			return Decision{Crouch: true}, nil
		default:
			return Decision{Jump: true}, nil
		}
	}
	return Decision{}, nil
}

// Driver turns a pilot's decisions into engine input events, pressing and
// releasing crouch only on changes.
type Driver struct {
	pilot     Pilot
	crouching bool
	events    []sim.InputEvent
}

// NewDriver creates a driver for pilot
func NewDriver(pilot Pilot) *Driver {
	return &Driver{pilot: pilot, events: make([]sim.InputEvent, 0, 3)}
}

// Step observes the engine and returns the events for its next Advance. The
// slice is reused by the next Step.
func (d *Driver) Step(e *sim.Engine) ([]sim.InputEvent, error) {
	dec, err := d.pilot.Decide(Observe(e))
	if err != nil {
		return nil, err
	}
	return d.translate(dec), nil
}

func (d *Driver) translate(dec Decision) []sim.InputEvent {
	out := d.events[:0]
	if dec.Crouch != d.crouching {
		d.crouching = dec.Crouch
		if dec.Crouch {
			out = append(out, sim.MoveDownPressed)
		} else {
			out = append(out, sim.MoveDownReleased)
		}
	}
	if dec.Jump && !dec.Crouch {
		out = append(out, sim.MoveUpPressed)
	}
	d.events = out
	return out
}

// Reset forgets the held crouch, for use after the engine restarts
func (d *Driver) Reset() {
	d.crouching = false
}
