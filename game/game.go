package game

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"dinorun/autopilot"
	"dinorun/sim"
)

// Assets supplies both the engine's masks and the renderer's images
type Assets interface {
	sim.SpriteSource
	ImageSource
}

// Game adapts the simulation engine to ebiten's game loop
type Game struct {
	config   Config
	engine   *sim.Engine
	renderer *Renderer
	input    *KeyboardInput
	pilot    *autopilot.Driver // nil when the keyboard plays
	debug    DebugState
	logger   *log.Logger

	// Last frame produced by the engine
	frame sim.Frame

	// over is true from the collision frame until the player restarts
	over bool

	// FPS tracking
	fps              float64
	fpsUpdateCounter int
	fpsUpdateTimer   float64

	// Performance profiling (nil unless enabled)
	profiler *Profiler

	// Game start time to ignore FPS drops during startup
	gameStartTime time.Time

	// Last update time for delta time calculation
	lastUpdateTime time.Time
}

// NewGame creates a new game instance
func NewGame(config Config, assets Assets, logger *log.Logger) (*Game, error) {
	if logger == nil {
		logger = log.Default()
	}
	engine, err := sim.NewEngine(config.Config, assets, sim.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	g := &Game{
		config:         config,
		engine:         engine,
		renderer:       NewRenderer(assets, config.ScreenWidth, config.ScreenHeight, logger),
		input:          NewKeyboardInput(config.Keys),
		logger:         logger,
		fps:            float64(config.TPS),
		gameStartTime:  time.Now(),
		lastUpdateTime: time.Now(),
	}
	if config.Profile {
		g.profiler, err = NewProfiler(config.ProfileDir, config.ProfileDuration, config.ProfileCooldown, logger)
		if err != nil {
			return nil, err
		}
	}
	pilot, err := autopilot.Load(config.Autopilot)
	if err != nil {
		return nil, err
	}
	if pilot != nil {
		g.pilot = autopilot.NewDriver(pilot)
		logger.Printf("autopilot %q enabled", config.Autopilot)
	}
	g.frame = engine.Snapshot()
	return g, nil
}

// Update updates the game state
func (g *Game) Update() error {
	now := time.Now()
	deltaTime := now.Sub(g.lastUpdateTime).Seconds()
	g.lastUpdateTime = now
	if deltaTime > 0.1 {
		deltaTime = 0.1
	}
	g.trackFPS(deltaTime)

	events := g.input.Poll()
	g.handleDebugKeys()

	if g.over {
		if slices.Contains(events, sim.Quit) {
			return ebiten.Termination
		}
		if g.restartRequested() {
			g.engine.Restart()
			if g.pilot != nil {
				g.pilot.Reset()
			}
			g.over = false
			g.frame = g.engine.Snapshot()
		}
		return nil
	}

	if g.pilot != nil {
		pilotEvents, err := g.pilot.Step(g.engine)
		if err != nil {
			g.logger.Printf("autopilot disabled: %v", err)
			g.pilot = nil
		}
		events = append(events, pilotEvents...)
	}

	// The simulation clock advances by a fixed tick so runs are reproducible.
	g.frame = g.engine.Advance(events, g.config.FrameDuration())
	if g.frame.Quit {
		return ebiten.Termination
	}
	if g.frame.Over {
		g.over = true
	}
	return nil
}

// restartRequested reports whether a non-debug key went down this tick
func (g *Game) restartRequested() bool {
	for _, key := range g.input.pressed {
		if key != g.config.Keys.ToggleHulls && key != g.config.Keys.ToggleStats {
			return true
		}
	}
	return false
}

// trackFPS refreshes the FPS estimate twice a second and triggers a profile
// capture on a sustained drop.
func (g *Game) trackFPS(deltaTime float64) {
	g.fpsUpdateTimer += deltaTime
	g.fpsUpdateCounter++
	if g.fpsUpdateTimer < 0.5 {
		return
	}
	g.fps = float64(g.fpsUpdateCounter) / g.fpsUpdateTimer
	g.fpsUpdateCounter = 0
	g.fpsUpdateTimer = 0

	if g.profiler == nil || g.fps >= g.config.FPSDropThreshold || time.Since(g.gameStartTime) < g.config.StartupGrace {
		return
	}
	reason := fmt.Sprintf("fps%.0f-entities%d", g.fps, g.engine.World().LiveCount())
	err := g.profiler.CaptureProfile(reason)
	switch {
	case errors.Is(err, ErrProfilerBusy):
	case err != nil:
		g.logger.Printf("failed to capture profile: %v", err)
	default:
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		g.logger.Printf("FPS drop detected (%.0f FPS), capturing profile; NumGC=%d HeapAlloc=%d KB",
			g.fps, m.NumGC, m.HeapAlloc/1024)
	}
}

// Draw renders the game
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Render(screen, g.frame.Commands)
	g.renderer.DrawHUD(screen, g.frame)
	if g.over {
		g.renderer.DrawGameOver(screen, g.frame.Score)
	}
	g.drawStats(screen)
}

// Layout returns the game's logical screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.ScreenWidth, g.config.ScreenHeight
}

// Close waits for any profile capture still being written
func (g *Game) Close() {
	if g.profiler != nil {
		g.profiler.Wait()
	}
}
