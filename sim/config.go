package sim

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds game configuration constants
type Config struct {
	// ScreenWidth is the logical playfield width in pixels
	ScreenWidth int

	// ScreenHeight is the logical playfield height in pixels
	ScreenHeight int

	// WindowScale multiplies the window size (the playfield stays logical)
	WindowScale float64

	// TPS is the fixed simulation rate
	TPS int

	// BaseSpeed is the world speed at the start of every session
	BaseSpeed float64

	// SpeedPerFrame is added to the world speed every frame
	SpeedPerFrame float64

	// MilestonePoints is how many points make one difficulty milestone
	MilestonePoints int

	// MilestoneSpeedStep is added to the world speed at each milestone
	MilestoneSpeedStep float64

	// BaseLevel is the difficulty level at the start of every session
	BaseLevel int

	// PlayerX, PlayerGroundY is the player's spawn point; the y is also the ground reference
	PlayerX, PlayerGroundY float64

	// JumpVelocity is the initial vertical velocity of a jump (negative is up)
	JumpVelocity float64

	// Gravity is added to the vertical velocity every airborne frame
	Gravity float64

	// AnimationInterval is the wall-clock time between animation frames
	AnimationInterval time.Duration

	// ObstacleInterval is the time between cactus/bird spawn decisions
	ObstacleInterval time.Duration

	// MeteorInterval is the time between meteor spawns
	MeteorInterval time.Duration

	// ObstacleBaseline is the gap between a cactus's bottom edge and the screen bottom
	ObstacleBaseline int

	// BirdLanes are the candidate top y values for birds, relative to the screen bottom
	BirdLanes []int

	// MeteorMinX, MeteorMaxXMargin bound the meteor's spawn x to [MeteorMinX, ScreenWidth-MeteorMaxXMargin]
	MeteorMinX, MeteorMaxXMargin int

	// MeteorSpawnY is the top y of a freshly spawned meteor
	MeteorSpawnY float64

	// MeteorMinSize, MeteorMaxSize bound the meteor's square size
	MeteorMinSize, MeteorMaxSize int

	// MeteorMinSpeed, MeteorMaxSpeed bound the meteor's fall speed in px/frame
	MeteorMinSpeed, MeteorMaxSpeed int

	// MeteorGroundOffset places the landing y at ScreenHeight-MeteorGroundOffset
	MeteorGroundOffset int

	// CraterOffset places the crater centre line at ScreenHeight-CraterOffset
	CraterOffset int

	// DebrisDrop is how far a broken cactus sits below the cactus it replaces
	DebrisDrop int

	// BirdDebrisFall is the vertical fall speed of a broken bird in px/frame
	BirdDebrisFall float64

	// QuadtreeMaxObjects is the per-node object count that triggers a split
	QuadtreeMaxObjects int

	// QuadtreeMaxLevels is the maximum quadtree depth
	QuadtreeMaxLevels int

	// ShowHulls draws the convex hull overlay
	ShowHulls bool

	// SpriteDir optionally overrides built-in sprites with PNG files
	SpriteDir string

	// SpriteDebugDir, when set, receives a PNG of every rasterized sprite
	SpriteDebugDir string

	// Seed drives every random spawn decision; 0 picks a time-based seed
	Seed int64

	// Profile captures a CPU profile and trace when the frame rate drops
	Profile bool

	// ProfileDir is where captured profiles are written
	ProfileDir string

	// Autopilot plays the game instead of the keyboard: "rules" for the
	// built-in pilot or the path of a JavaScript file defining decide(obs).
	Autopilot string
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:        900,
		ScreenHeight:       400,
		WindowScale:        1.0,
		TPS:                60,
		BaseSpeed:          6.0,
		SpeedPerFrame:      0.0025,
		MilestonePoints:    100,
		MilestoneSpeedStep: 0,
		BaseLevel:          5,
		PlayerX:            100,
		PlayerGroundY:      400 - 210,
		JumpVelocity:       -19,
		Gravity:            1,
		AnimationInterval:  100 * time.Millisecond,
		ObstacleInterval:   1350 * time.Millisecond,
		MeteorInterval:     3000 * time.Millisecond,
		ObstacleBaseline:   135,
		BirdLanes:          []int{230, 250, 290},
		MeteorMinX:         200,
		MeteorMaxXMargin:   50,
		MeteorSpawnY:       -20,
		MeteorMinSize:      50,
		MeteorMaxSize:      100,
		MeteorMinSpeed:     5,
		MeteorMaxSpeed:     15,
		MeteorGroundOffset: 183,
		CraterOffset:       133,
		DebrisDrop:         25,
		BirdDebrisFall:     5,
		QuadtreeMaxObjects: 10,
		QuadtreeMaxLevels:  5,
		ShowHulls:          true,
		ProfileDir:         "profiles",
	}
}

// FrameDuration returns the duration of one tick at the configured TPS
func (c Config) FrameDuration() time.Duration {
	if c.TPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TPS)
}

// MeteorGroundY returns the top y at which a meteor counts as landed
func (c Config) MeteorGroundY() float64 {
	return float64(c.ScreenHeight - c.MeteorGroundOffset)
}

// Validate reports configuration values the engine cannot run with
func (c Config) Validate() error {
	switch {
	case c.ScreenWidth <= 0 || c.ScreenHeight <= 0:
		return fmt.Errorf("invalid screen size %dx%d", c.ScreenWidth, c.ScreenHeight)
	case c.MeteorMinSize <= 0 || c.MeteorMaxSize < c.MeteorMinSize:
		return fmt.Errorf("invalid meteor size range [%d, %d]", c.MeteorMinSize, c.MeteorMaxSize)
	case c.MeteorMaxSpeed < c.MeteorMinSpeed:
		return fmt.Errorf("invalid meteor speed range [%d, %d]", c.MeteorMinSpeed, c.MeteorMaxSpeed)
	case c.ScreenWidth-c.MeteorMaxXMargin < c.MeteorMinX:
		return fmt.Errorf("meteor spawn range is empty for screen width %d", c.ScreenWidth)
	case len(c.BirdLanes) == 0:
		return errors.New("no bird lanes configured")
	case c.QuadtreeMaxObjects <= 0 || c.QuadtreeMaxLevels < 0:
		return fmt.Errorf("invalid quadtree limits (%d objects, %d levels)", c.QuadtreeMaxObjects, c.QuadtreeMaxLevels)
	}
	return nil
}

// Environment variables read by LoadConfig.
const (
	EnvSeed          = "DINORUN_SEED"
	EnvShowHulls     = "DINORUN_SHOW_HULLS"
	EnvSpriteDir     = "DINORUN_SPRITE_DIR"
	EnvMilestoneStep = "DINORUN_MILESTONE_SPEED_STEP"
	EnvWindowScale   = "DINORUN_WINDOW_SCALE"
	EnvProfile       = "DINORUN_PROFILE"
	EnvSpriteDebug   = "DINORUN_DEBUG_SPRITES"
	EnvAutopilot     = "DINORUN_AUTOPILOT"
)

// LoadConfig returns DefaultConfig with overrides from the environment. Any
// files given (".env" when none are) are loaded first; missing files are fine.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := DefaultConfig()
	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}
	if v, ok := os.LookupEnv(EnvShowHulls); ok {
		show, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvShowHulls, err)
		}
		cfg.ShowHulls = show
	}
	if v, ok := os.LookupEnv(EnvSpriteDir); ok {
		cfg.SpriteDir = v
	}
	if v, ok := os.LookupEnv(EnvSpriteDebug); ok {
		cfg.SpriteDebugDir = v
	}
	if v, ok := os.LookupEnv(EnvAutopilot); ok {
		cfg.Autopilot = v
	}
	if v, ok := os.LookupEnv(EnvProfile); ok {
		profile, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvProfile, err)
		}
		cfg.Profile = profile
	}
	if v, ok := os.LookupEnv(EnvMilestoneStep); ok {
		step, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvMilestoneStep, err)
		}
		cfg.MilestoneSpeedStep = step
	}
	if v, ok := os.LookupEnv(EnvWindowScale); ok {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			return Config{}, fmt.Errorf("invalid %s %q", EnvWindowScale, v)
		}
		cfg.WindowScale = scale
	}
	return cfg, cfg.Validate()
}
