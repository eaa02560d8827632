package autopilot

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"dinorun/assets"
	"dinorun/sim"
)

// standing is the default runner on the ground
var standing = PlayerInfo{X: 100, Y: 190, W: 60, H: 75, State: "running"}

var decisionTests = []struct {
	name    string
	hazards []HazardInfo
	want    Decision
}{
	{"empty road", nil, Decision{}},
	{"cactus far away", []HazardInfo{{Kind: "cactus", X: 500, Y: 205, W: 30, H: 60, Distance: 340}}, Decision{}},
	{"cactus close", []HazardInfo{{Kind: "cactus", X: 220, Y: 205, W: 30, H: 60, Distance: 60}}, Decision{Jump: true}},
	{"crater close", []HazardInfo{{Kind: "crater", X: 200, Y: 230, W: 60, H: 60, Distance: 40}}, Decision{Jump: true}},
	{"low bird", []HazardInfo{{Kind: "bird", X: 210, Y: 170, W: 60, H: 45, Distance: 50}}, Decision{Crouch: true}},
	{"mid bird", []HazardInfo{{Kind: "bird", X: 210, Y: 150, W: 60, H: 45, Distance: 50}}, Decision{Crouch: true}},
	{"high bird", []HazardInfo{{Kind: "bird", X: 210, Y: 110, W: 60, H: 45, Distance: 50}}, Decision{}},
	{"meteor then cactus", []HazardInfo{
		{Kind: "meteor", X: 120, Y: 40, W: 60, H: 60, Distance: -40, VY: 8},
		{Kind: "cactus", X: 200, Y: 205, W: 30, H: 60, Distance: 40},
	}, Decision{Jump: true}},
	{"high bird then cactus", []HazardInfo{
		{Kind: "bird", X: 170, Y: 110, W: 60, H: 45, Distance: 10},
		{Kind: "cactus", X: 220, Y: 205, W: 30, H: 60, Distance: 60},
	}, Decision{Jump: true}},
}

func observation(hazards []HazardInfo) Observation {
	if hazards == nil {
		hazards = []HazardInfo{}
	}
	return Observation{Speed: 6, Level: 5, Active: true, Player: standing, Hazards: hazards}
}

func TestRulePilotDecisions(t *testing.T) {
	pilot := NewRulePilot()
	for _, tt := range decisionTests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pilot.Decide(observation(tt.hazards))
			if err != nil {
				t.Fatalf("Decide: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decide = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDriverTranslatesDecisions(t *testing.T) {
	d := NewDriver(nil)
	steps := []struct {
		dec  Decision
		want []sim.InputEvent
	}{
		{Decision{}, nil},
		{Decision{Jump: true}, []sim.InputEvent{sim.MoveUpPressed}},
		{Decision{Crouch: true}, []sim.InputEvent{sim.MoveDownPressed}},
		{Decision{Crouch: true}, nil},
		{Decision{Jump: true, Crouch: true}, nil},
		{Decision{Jump: true}, []sim.InputEvent{sim.MoveDownReleased, sim.MoveUpPressed}},
		{Decision{}, nil},
	}
	for i, s := range steps {
		got := d.translate(s.dec)
		if len(got) != len(s.want) || (len(got) > 0 && !slices.Equal(got, s.want)) {
			t.Errorf("step %d: events = %v, want %v", i, got, s.want)
		}
	}

	d.translate(Decision{Crouch: true})
	d.Reset()
	if got := d.translate(Decision{}); len(got) != 0 {
		t.Errorf("after Reset: events = %v, want none", got)
	}
}

func TestLoad(t *testing.T) {
	if p, err := Load(""); err != nil || p != nil {
		t.Errorf("Load(\"\") = %v, %v; want nil, nil", p, err)
	}
	if p, err := Load("rules"); err != nil {
		t.Errorf("Load(rules): %v", err)
	} else if _, ok := p.(*RulePilot); !ok {
		t.Errorf("Load(rules) = %T, want *RulePilot", p)
	}

	path := filepath.Join(t.TempDir(), "pilot.js")
	if err := os.WriteFile(path, []byte(ExampleScript), 0o644); err != nil {
		t.Fatal(err)
	}
	if p, err := Load(path); err != nil {
		t.Errorf("Load(script): %v", err)
	} else if _, ok := p.(*ScriptPilot); !ok {
		t.Errorf("Load(script) = %T, want *ScriptPilot", p)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.js")); err == nil {
		t.Error("Load of a missing script succeeded")
	}
}

func newQuietEngine(t *testing.T) *sim.Engine {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	lib, err := assets.NewLibrary(assets.WithLogger(logger))
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}
	cfg := sim.DefaultConfig()
	cfg.Seed = 1
	cfg.SpeedPerFrame = 0
	cfg.ObstacleInterval = time.Hour
	cfg.MeteorInterval = time.Hour
	e, err := sim.NewEngine(cfg, lib, sim.WithLogger(logger))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

// fly lets pilot drive e for n frames and records the player states seen
func fly(t *testing.T, e *sim.Engine, pilot Pilot, n int) (sim.Frame, map[sim.PlayerState]bool) {
	t.Helper()
	d := NewDriver(pilot)
	seen := make(map[sim.PlayerState]bool)
	var f sim.Frame
	for i := 0; i < n; i++ {
		events, err := d.Step(e)
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		f = e.Advance(events, time.Second/60)
		seen[e.World().Player.State()] = true
		if f.Over {
			t.Fatalf("frame %d: session over, hit %s", i, f.HitBy)
		}
	}
	return f, seen
}

func TestObserveSortsHazards(t *testing.T) {
	e := newQuietEngine(t)
	w := e.World()
	e.Spawner().SpawnCactus(w, 0)
	advance := func(n int) {
		for i := 0; i < n; i++ {
			e.Advance(nil, time.Second/60)
		}
	}
	advance(20)
	e.Spawner().SpawnBird(w, 290)

	obs := Observe(e)
	if len(obs.Hazards) != 2 {
		t.Fatalf("hazards = %d, want 2", len(obs.Hazards))
	}
	if obs.Hazards[0].Kind != "cactus" || obs.Hazards[1].Kind != "bird" {
		t.Errorf("order = %s, %s; want cactus, bird", obs.Hazards[0].Kind, obs.Hazards[1].Kind)
	}
	if want := 900 - 20*6 - 160; obs.Hazards[0].Distance != want {
		t.Errorf("cactus distance = %d, want %d", obs.Hazards[0].Distance, want)
	}
	if obs.Player.State != "running" || obs.Player.Airborne {
		t.Errorf("player = %+v, want running on the ground", obs.Player)
	}
	if obs.Score != 20 || !obs.Active {
		t.Errorf("score = %d active = %v, want 20 true", obs.Score, obs.Active)
	}
}

func TestObservePassedHazardsDropped(t *testing.T) {
	e := newQuietEngine(t)
	w := e.World()
	c := e.Spawner().SpawnCactus(w, 0)
	c.X = 40 // right edge at 70, behind the player at x=100

	if obs := Observe(e); len(obs.Hazards) != 0 {
		t.Errorf("hazards = %+v, want none", obs.Hazards)
	}
}

func TestRulePilotClearsCactus(t *testing.T) {
	e := newQuietEngine(t)
	e.Spawner().SpawnCactus(e.World(), 0)

	f, seen := fly(t, e, NewRulePilot(), 200)
	if !seen[sim.Jumping] {
		t.Error("pilot never jumped")
	}
	if f.Score != 200 || !f.Active {
		t.Errorf("score = %d active = %v, want 200 true", f.Score, f.Active)
	}
}

func TestRulePilotDucksBird(t *testing.T) {
	e := newQuietEngine(t)
	e.Spawner().SpawnBird(e.World(), 250)

	f, seen := fly(t, e, NewRulePilot(), 200)
	if !seen[sim.Crouching] {
		t.Error("pilot never crouched")
	}
	if seen[sim.Jumping] {
		t.Error("pilot jumped at a bird")
	}
	if !f.Active {
		t.Error("session ended")
	}
	if got := e.World().Player.State(); got != sim.Running {
		t.Errorf("final state = %s, want running after the bird passed", got)
	}
}
