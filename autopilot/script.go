package autopilot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dop251/goja"
)

// ErrNoDecide is returned for scripts that do not define a decide function
var ErrNoDecide = errors.New("script must define a 'decide' function")

// DefaultScriptTimeout bounds a single decide call
const DefaultScriptTimeout = 50 * time.Millisecond

// ExampleScript is a script pilot equivalent to the built-in rules
const ExampleScript = `// decide is called once per tick with the current observation and
// returns {jump: bool, crouch: bool}. Missing fields mean false.
function decide(obs) {
  var reach = obs.speed * 12;
  for (var i = 0; i < obs.hazards.length; i++) {
    var h = obs.hazards[i];
    if (h.distance > reach) break;
    if (h.kind === "meteor") continue;
    if (h.kind === "bird") {
      if (h.y < obs.player.y + obs.player.h - 130) continue;
      return { crouch: true };
    }
    return { jump: true };
  }
  return {};
}
`

// ScriptPilot runs a JavaScript decide(obs) function with goja. The script is
// evaluated once, so globals persist between ticks.
type ScriptPilot struct {
	mu      sync.Mutex
	vm      *goja.Runtime
	decide  goja.Callable
	timeout time.Duration
}

// NewScriptPilot evaluates code and looks up its decide function
func NewScriptPilot(name, code string) (*ScriptPilot, error) {
	vm := goja.New()
	if _, err := vm.RunScript(name, code); err != nil {
		return nil, fmt.Errorf("script parse error: %w", err)
	}
	decide, ok := goja.AssertFunction(vm.Get("decide"))
	if !ok {
		return nil, ErrNoDecide
	}
	return &ScriptPilot{vm: vm, decide: decide, timeout: DefaultScriptTimeout}, nil
}

// SetTimeout changes how long a decide call may run before it is interrupted
func (p *ScriptPilot) SetTimeout(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.timeout = d
}

// Decide implements Pilot
func (p *ScriptPilot) Decide(obs Observation) (Decision, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Serialize observation to JSON and parse it into a plain JS object
	obsJSON, err := json.Marshal(obs)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to serialize observation: %w", err)
	}
	obsObj, err := p.vm.RunString(fmt.Sprintf("(%s)", obsJSON))
	if err != nil {
		return Decision{}, fmt.Errorf("failed to parse observation: %w", err)
	}

	if p.timeout > 0 {
		timer := time.AfterFunc(p.timeout, func() {
			p.vm.Interrupt("decide timed out")
		})
		defer func() {
			timer.Stop()
			p.vm.ClearInterrupt()
		}()
	}

	result, err := p.decide(goja.Undefined(), obsObj)
	if err != nil {
		return Decision{}, fmt.Errorf("decide function failed: %w", err)
	}
	if goja.IsUndefined(result) || goja.IsNull(result) {
		return Decision{}, nil
	}

	resultJSON, err := json.Marshal(result.Export())
	if err != nil {
		return Decision{}, fmt.Errorf("failed to serialize result: %w", err)
	}
	var decision Decision
	if err := json.Unmarshal(resultJSON, &decision); err != nil {
		return Decision{}, fmt.Errorf("failed to parse script result: %w (result: %s)", err, resultJSON)
	}
	return decision, nil
}

// Load resolves a pilot setting: "" means no pilot, "rules" the built-in
// rules, and anything else the path of a script file.
func Load(setting string) (Pilot, error) {
	switch setting {
	case "":
		return nil, nil
	case "rules":
		return NewRulePilot(), nil
	}
	code, err := os.ReadFile(setting)
	if err != nil {
		return nil, fmt.Errorf("failed to read pilot script: %w", err)
	}
	pilot, err := NewScriptPilot(setting, string(code))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", setting, err)
	}
	return pilot, nil
}
