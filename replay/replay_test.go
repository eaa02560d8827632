package replay

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"dinorun/assets"
	"dinorun/autopilot"
	"dinorun/sim"
)

var quiet = log.New(io.Discard, "", 0)

func newEngine(t *testing.T, seed int64) *sim.Engine {
	t.Helper()
	lib, err := assets.NewLibrary(assets.WithLogger(quiet))
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}
	cfg := sim.DefaultConfig()
	cfg.Seed = seed
	e, err := sim.NewEngine(cfg, lib, sim.WithLogger(quiet))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestRecorderIsSparse(t *testing.T) {
	r := NewRecorder(7, time.Second/60)
	r.Record(false, nil)
	r.Record(false, []sim.InputEvent{sim.MoveUpPressed})
	r.Record(false, nil)
	r.Record(true, nil)
	rec := r.Finish(3)

	if rec.Frames != 4 || rec.FinalScore != 3 || rec.Seed != 7 {
		t.Fatalf("recording = %+v", rec)
	}
	if len(rec.Ticks) != 2 {
		t.Fatalf("ticks = %+v, want 2", rec.Ticks)
	}
	if rec.Ticks[0].Frame != 1 || rec.Ticks[0].Events[0] != sim.MoveUpPressed {
		t.Errorf("first tick = %+v", rec.Ticks[0])
	}
	if rec.Ticks[1].Frame != 3 || !rec.Ticks[1].Restart {
		t.Errorf("second tick = %+v", rec.Ticks[1])
	}
}

func TestRecorderCopiesEvents(t *testing.T) {
	r := NewRecorder(1, time.Second/60)
	buf := []sim.InputEvent{sim.MoveDownPressed}
	r.Record(false, buf)
	buf[0] = sim.Quit
	if got := r.Finish(0).Ticks[0].Events[0]; got != sim.MoveDownPressed {
		t.Errorf("recorded event = %s, want move-down-pressed", got)
	}
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.replay")
	data, err := msgpack.Marshal(&Recording{Version: Version + 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrVersion) {
		t.Errorf("Load: err = %v, want ErrVersion", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}

func TestPlaybackReproducesRun(t *testing.T) {
	const seed, frames = 42, 900
	dt := time.Second / 60

	e := newEngine(t, seed)
	driver := autopilot.NewDriver(autopilot.NewRulePilot())
	r := NewRecorder(seed, dt)
	restart := false
	var f sim.Frame
	for i := 0; i < frames; i++ {
		if restart {
			e.Restart()
			driver.Reset()
		}
		events, err := driver.Step(e)
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		r.Record(restart, events)
		f = e.Advance(events, dt)
		restart = f.Over
	}
	want := e.World()

	path := filepath.Join(t.TempDir(), "run.replay")
	if err := Save(path, r.Finish(f.Score)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	rec, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.Frames != frames || rec.TickTime != dt {
		t.Fatalf("loaded %d frames at %v, want %d at %v", rec.Frames, rec.TickTime, frames, dt)
	}

	replayed := newEngine(t, rec.Seed)
	got := Play(replayed, rec)
	if got.Score != rec.FinalScore {
		t.Errorf("replayed score = %d, want %d", got.Score, rec.FinalScore)
	}
	w := replayed.World()
	if w.Speed != want.Speed || w.Level != want.Level || w.LiveCount() != want.LiveCount() {
		t.Errorf("replayed world speed=%v level=%d live=%d, want %v %d %d",
			w.Speed, w.Level, w.LiveCount(), want.Speed, want.Level, want.LiveCount())
	}
	if w.Player.Y != want.Player.Y || w.Player.State() != want.Player.State() {
		t.Errorf("replayed player y=%v %s, want %v %s", w.Player.Y, w.Player.State(), want.Player.Y, want.Player.State())
	}
}
