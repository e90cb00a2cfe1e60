package movement

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/travel/ecs/system"
	"github.com/milk9111/travel/prefabs"
)

var ErrInvalidConfig = errors.New("movement: invalid config")

// Config is the runtime configuration shared by every movement system.
type Config struct {
	SpatialMode    string
	PhysicsEnabled bool
	Gravity        mgl64.Vec3
	TickRate       int
	LogLevel       string
}

func DefaultConfig() Config {
	return Config{
		SpatialMode: "3d",
		Gravity:     mgl64.Vec3{0, -9.81, 0},
		TickRate:    60,
		LogLevel:    "info",
	}
}

// LoadConfig reads prefabs/settings.yaml on top of DefaultConfig.
func LoadConfig() (Config, error) {
	spec, err := prefabs.LoadSettingsSpec()
	if err != nil {
		return Config{}, fmt.Errorf("movement: load config: %w", err)
	}
	cfg := DefaultConfig().Apply(spec)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Apply returns c with every field spec sets overridden.
func (c Config) Apply(spec prefabs.SettingsSpec) Config {
	if s := strings.TrimSpace(spec.SpatialMode); s != "" {
		c.SpatialMode = strings.ToLower(s)
	}
	if spec.PhysicsEnabled != nil {
		c.PhysicsEnabled = *spec.PhysicsEnabled
	}
	if spec.Gravity != nil {
		g := *spec.Gravity
		c.Gravity = mgl64.Vec3{g[0], g[1], g[2]}
	}
	if spec.TickRate > 0 {
		c.TickRate = spec.TickRate
	}
	if s := strings.TrimSpace(spec.LogLevel); s != "" {
		c.LogLevel = s
	}
	return c
}

func (c Config) Validate() error {
	switch c.SpatialMode {
	case "2d", "3d":
	default:
		return fmt.Errorf("%w: spatial mode %q, want 2d or 3d", ErrInvalidConfig, c.SpatialMode)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick rate must be positive, got %d", ErrInvalidConfig, c.TickRate)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q: %v", ErrInvalidConfig, c.LogLevel, err)
	}
	return nil
}

func (c Config) Mode() system.SpatialMode {
	if c.SpatialMode == "2d" {
		return system.Spatial2D
	}
	return system.Spatial3D
}

// Level falls back to info for an unparsable level.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// TickDelta is the fixed simulation step for TickRate.
func (c Config) TickDelta() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}
