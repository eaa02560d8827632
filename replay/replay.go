// Package replay records the input fed to an engine so a run can be
// reproduced exactly from its seed.
package replay

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"dinorun/sim"
)

// Version is the current recording format
const Version = 1

// ErrVersion is returned for recordings written by an unknown format version
var ErrVersion = errors.New("unsupported replay version")

// Tick holds what happened before one Advance call. Ticks without events or a
// restart are not stored.
type Tick struct {
	Frame   int             `msgpack:"f"`
	Restart bool            `msgpack:"r,omitempty"`
	Events  []sim.InputEvent `msgpack:"e,omitempty"`
}

// Recording is a whole run: the seed, the tick length and the sparse input log
type Recording struct {
	Version  int           `msgpack:"v"`
	Seed     int64         `msgpack:"seed"`
	TickTime time.Duration `msgpack:"dt"`
	Frames   int           `msgpack:"n"`
	Ticks    []Tick        `msgpack:"t"`

	// FinalScore is the score after the last frame, used to verify playback
	FinalScore int `msgpack:"score"`
}

// Recorder builds a Recording while the engine runs
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording for an engine seeded with seed
func NewRecorder(seed int64, dt time.Duration) *Recorder {
	return &Recorder{rec: Recording{Version: Version, Seed: seed, TickTime: dt}}
}

// Record logs the input of the next Advance. restart marks an engine Restart
// made just before it.
func (r *Recorder) Record(restart bool, events []sim.InputEvent) {
	frame := r.rec.Frames
	r.rec.Frames++
	if !restart && len(events) == 0 {
		return
	}
	r.rec.Ticks = append(r.rec.Ticks, Tick{
		Frame:   frame,
		Restart: restart,
		Events:  append([]sim.InputEvent(nil), events...),
	})
}

// Finish stamps the final score and returns the recording
func (r *Recorder) Finish(score int) Recording {
	r.rec.FinalScore = score
	return r.rec
}

// Save writes rec to path in msgpack
func Save(path string, rec Recording) error {
	data, err := msgpack.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write replay: %w", err)
	}
	return nil
}

// Load reads a recording written by Save
func Load(path string) (Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Recording{}, fmt.Errorf("failed to read replay: %w", err)
	}
	var rec Recording
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return Recording{}, fmt.Errorf("failed to decode replay: %w", err)
	}
	if rec.Version != Version {
		return Recording{}, fmt.Errorf("%w: %d", ErrVersion, rec.Version)
	}
	return rec, nil
}

// Play feeds rec into e, which must be a fresh engine created with rec.Seed,
// and returns the last frame.
func Play(e *sim.Engine, rec Recording) sim.Frame {
	var f sim.Frame
	next := 0
	for frame := 0; frame < rec.Frames; frame++ {
		var events []sim.InputEvent
		if next < len(rec.Ticks) && rec.Ticks[next].Frame == frame {
			t := rec.Ticks[next]
			next++
			if t.Restart {
				e.Restart()
			}
			events = t.Events
		}
		f = e.Advance(events, rec.TickTime)
	}
	return f
}
