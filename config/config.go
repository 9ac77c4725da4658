// Package config loads the simulation configuration from YAML over built-in
// defaults and validates it before anything starts.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/crossroads/constants"
)

// DefaultPath is used when neither -config nor CROSSROADS_CONFIG is set
const DefaultPath = "crossroads.yaml"

// EnvPath names the environment variable that overrides DefaultPath
const EnvPath = "CROSSROADS_CONFIG"

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid configuration")

// Config holds everything the simulation and its collaborators need
type Config struct {
	// Tick is the fixed simulation step
	Tick     time.Duration `yaml:"tick"`
	LogLevel string        `yaml:"log_level"`

	Area    Area    `yaml:"area"`
	Road    Road    `yaml:"road"`
	Vehicle Vehicle `yaml:"vehicle"`
	Signal  Signal  `yaml:"signal"`
	Spawn   Spawn   `yaml:"spawn"`
}

// Area is the simulated region in world units
type Area struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"`
}

// Road is the lane layout
type Road struct {
	LaneWidth float64 `yaml:"lane_width"`
}

// Vehicle holds footprint, cruising speed and spacing
type Vehicle struct {
	Size             float64 `yaml:"size"`
	Speed            float64 `yaml:"speed"` // world units per second
	MinFollow        float64 `yaml:"min_follow"`
	LateralTolerance float64 `yaml:"lateral_tolerance"`
}

// Signal holds controller timing
type Signal struct {
	Cycle          time.Duration `yaml:"cycle"`
	CheckInterval  time.Duration `yaml:"check_interval"`
	OverrideMargin int           `yaml:"override_margin"`
	MinGreen       time.Duration `yaml:"min_green"`
}

// Spawn holds entry gating
type Spawn struct {
	Debounce  time.Duration `yaml:"debounce"`
	Clearance float64       `yaml:"clearance"`
	// AutoInterval issues a random spawn request at this cadence; zero disables it
	AutoInterval time.Duration `yaml:"auto_interval"`
}

// Default returns Config with the tuning the intersection was designed around
func Default() Config {
	return Config{
		Tick:     constants.TickInterval,
		LogLevel: "info",
		Area: Area{
			Width:  constants.AreaWidth,
			Height: constants.AreaHeight,
			Margin: constants.EvictionMargin,
		},
		Road: Road{
			LaneWidth: constants.LaneWidth,
		},
		Vehicle: Vehicle{
			Size:             constants.VehicleSize,
			Speed:            constants.VehicleSpeed,
			MinFollow:        constants.MinFollowDistance,
			LateralTolerance: constants.LateralTolerance,
		},
		Signal: Signal{
			Cycle:          constants.SignalCycle,
			CheckInterval:  constants.SignalCheckInterval,
			OverrideMargin: constants.SignalOverrideMargin,
			MinGreen:       constants.SignalMinGreen,
		},
		Spawn: Spawn{
			Debounce:  constants.SpawnDebounce,
			Clearance: constants.SpawnClearance,
		},
	}
}

// Load reads path and overlays it on the defaults.
// A missing file yields the defaults; the result is not validated
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// ResolvePath picks the flag value, then the environment, then DefaultPath
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// Validate returns every violated precondition joined into one error
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Tick > 0, "tick must be positive, got %v", c.Tick)
	_, levelErr := ParseLevel(c.LogLevel)
	check(levelErr == nil, "log_level %q not one of debug, info, warn, error", c.LogLevel)

	check(c.Area.Width > 0 && c.Area.Height > 0, "area must be positive, got %gx%g", c.Area.Width, c.Area.Height)
	check(c.Area.Margin >= 0, "area.margin must not be negative, got %g", c.Area.Margin)

	check(c.Road.LaneWidth > 0, "road.lane_width must be positive, got %g", c.Road.LaneWidth)
	check(4*c.Road.LaneWidth < min(c.Area.Width, c.Area.Height),
		"roads of lane width %g do not fit a %gx%g area", c.Road.LaneWidth, c.Area.Width, c.Area.Height)

	check(c.Vehicle.Size > 0, "vehicle.size must be positive, got %g", c.Vehicle.Size)
	check(c.Vehicle.Size <= c.Road.LaneWidth, "vehicle.size %g wider than lane %g", c.Vehicle.Size, c.Road.LaneWidth)
	check(c.Vehicle.Speed > 0, "vehicle.speed must be positive, got %g", c.Vehicle.Speed)
	check(c.Vehicle.MinFollow >= c.Vehicle.Size,
		"vehicle.min_follow %g shorter than vehicle %g", c.Vehicle.MinFollow, c.Vehicle.Size)
	check(c.Vehicle.LateralTolerance > 0 && c.Vehicle.LateralTolerance <= c.Road.LaneWidth,
		"vehicle.lateral_tolerance %g outside (0, %g]", c.Vehicle.LateralTolerance, c.Road.LaneWidth)

	check(c.Signal.Cycle > 0, "signal.cycle must be positive, got %v", c.Signal.Cycle)
	check(c.Signal.CheckInterval > 0, "signal.check_interval must be positive, got %v", c.Signal.CheckInterval)
	check(c.Signal.OverrideMargin >= 0, "signal.override_margin must not be negative, got %d", c.Signal.OverrideMargin)
	check(c.Signal.MinGreen >= 0, "signal.min_green must not be negative, got %v", c.Signal.MinGreen)

	check(c.Spawn.Debounce >= 0, "spawn.debounce must not be negative, got %v", c.Spawn.Debounce)
	check(c.Spawn.Clearance >= c.Vehicle.Size,
		"spawn.clearance %g shorter than vehicle %g", c.Spawn.Clearance, c.Vehicle.Size)
	check(c.Spawn.AutoInterval >= 0, "spawn.auto_interval must not be negative, got %v", c.Spawn.AutoInterval)

	return errors.Join(errs...)
}

// ParseLevel maps a log_level string to a slog level
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
