package game

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"dinorun/sim"
)

// KeyboardInput turns key transitions into engine input events
type KeyboardInput struct {
	keys KeyBindings

	pressed  []ebiten.Key
	released []ebiten.Key
	events   []sim.InputEvent
}

// NewKeyboardInput creates a keyboard input provider
func NewKeyboardInput(keys KeyBindings) *KeyboardInput {
	return &KeyboardInput{
		keys:     keys,
		pressed:  make([]ebiten.Key, 0, 8),
		released: make([]ebiten.Key, 0, 8),
		events:   make([]sim.InputEvent, 0, 8),
	}
}

// Poll returns the events for keys that changed state this tick. The slice is
// reused by the next Poll.
func (k *KeyboardInput) Poll() []sim.InputEvent {
	k.pressed = inpututil.AppendJustPressedKeys(k.pressed[:0])
	k.released = inpututil.AppendJustReleasedKeys(k.released[:0])
	k.events = k.keys.events(k.pressed, k.released, k.events[:0])
	return k.events
}

// Pressed reports whether key went down this tick
func (k *KeyboardInput) Pressed(key ebiten.Key) bool {
	return slices.Contains(k.pressed, key)
}

// events maps key transitions to input events: presses first in key order,
// then crouch releases.
func (b KeyBindings) events(pressed, released []ebiten.Key, dst []sim.InputEvent) []sim.InputEvent {
	for _, key := range pressed {
		switch {
		case slices.Contains(b.Quit, key):
			dst = append(dst, sim.Quit)
		case slices.Contains(b.Jump, key):
			dst = append(dst, sim.MoveUpPressed)
		case slices.Contains(b.Crouch, key):
			dst = append(dst, sim.MoveDownPressed)
		}
	}
	for _, key := range released {
		if slices.Contains(b.Crouch, key) {
			dst = append(dst, sim.MoveDownReleased)
		}
	}
	return dst
}
