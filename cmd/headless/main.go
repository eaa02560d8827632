// Command headless runs the simulation without a window, driven by an
// autopilot or a recorded replay, and reports every session's score.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"dinorun/assets"
	"dinorun/autopilot"
	"dinorun/replay"
	"dinorun/sim"
)

func main() {
	frames := flag.Int("frames", 3600, "Number of ticks to simulate")
	seed := flag.Int64("seed", 0, "Random seed (0 keeps the configured seed, or picks one)")
	pilotFlag := flag.String("pilot", "", `Autopilot: "rules" or a JavaScript file (default from DINORUN_AUTOPILOT, else rules)`)
	envFile := flag.String("env", ".env", "Environment file to load")
	restart := flag.Bool("restart", false, "Start a new session after each game over")
	record := flag.String("record", "", "Write the run's input to this replay file")
	replayFile := flag.String("replay", "", "Play back a replay file instead of running a pilot")
	example := flag.Bool("example-script", false, "Print an example pilot script and exit")
	flag.Parse()

	if *example {
		fmt.Print(autopilot.ExampleScript)
		return
	}

	config, err := sim.LoadConfig(*envFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *seed != 0 {
		config.Seed = *seed
	}
	if config.Seed == 0 {
		// Pinned here so the run can be logged and recorded
		config.Seed = time.Now().UnixNano()
	}

	library, err := assets.NewLibrary(
		assets.WithOverrideDir(config.SpriteDir),
		assets.WithDebugDir(config.SpriteDebugDir),
	)
	if err != nil {
		log.Fatalf("Failed to load sprites: %v", err)
	}

	if *replayFile != "" {
		playBack(config, library, *replayFile)
		return
	}

	engine, err := sim.NewEngine(config, library)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	setting := *pilotFlag
	if setting == "" {
		setting = config.Autopilot
	}
	if setting == "" {
		setting = "rules"
	}
	pilot, err := autopilot.Load(setting)
	if err != nil {
		log.Fatalf("Failed to load pilot: %v", err)
	}
	driver := autopilot.NewDriver(pilot)

	dt := config.FrameDuration()
	recorder := replay.NewRecorder(config.Seed, dt)
	log.Printf("Simulating %d ticks with pilot %q, seed %d", *frames, setting, config.Seed)
	start := time.Now()
	sessions, best := 1, 0
	over := false
	var f sim.Frame
	for i := 0; i < *frames; i++ {
		restarted := false
		if over {
			if !*restart {
				break
			}
			engine.Restart()
			driver.Reset()
			sessions++
			over = false
			restarted = true
		}
		events, err := driver.Step(engine)
		if err != nil {
			log.Fatalf("Pilot failed at tick %d: %v", i, err)
		}
		recorder.Record(restarted, events)
		f = engine.Advance(events, dt)
		if f.Score > best {
			best = f.Score
		}
		if f.Over {
			over = true
			log.Printf("Session %d over at tick %d: hit %s, score %d, level %d, speed %.2f",
				sessions, i, f.HitBy, f.Score, f.Level, f.Speed)
		}
	}

	log.Printf("Done in %v: %d session(s), best score %d, final speed %.2f, %d live entities",
		time.Since(start).Round(time.Millisecond), sessions, best, f.Speed, engine.World().LiveCount())

	if *record != "" {
		if err := replay.Save(*record, recorder.Finish(f.Score)); err != nil {
			log.Fatalf("Failed to save replay: %v", err)
		}
		log.Printf("Replay saved to %s", *record)
	}
}

// playBack reruns a recording and checks that it ends on the recorded score
func playBack(config sim.Config, library *assets.Library, path string) {
	rec, err := replay.Load(path)
	if err != nil {
		log.Fatalf("Failed to load replay: %v", err)
	}
	config.Seed = rec.Seed
	engine, err := sim.NewEngine(config, library)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	log.Printf("Replaying %d ticks from %s, seed %d", rec.Frames, path, rec.Seed)
	f := replay.Play(engine, rec)
	if f.Score != rec.FinalScore {
		log.Fatalf("Replay diverged: score %d, recorded %d", f.Score, rec.FinalScore)
	}
	log.Printf("Replay matched: score %d, level %d, speed %.2f", f.Score, f.Level, f.Speed)
}
