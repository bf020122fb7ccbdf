// Package config provides configuration loading and access for the
// grid simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Grid       GridConfig       `yaml:"grid"`
	Camera     CameraConfig     `yaml:"camera"`
	Field      FieldConfig      `yaml:"field"`
	Population PopulationConfig `yaml:"population"`
	Trails     TrailsConfig     `yaml:"trails"`
	Buildings  BuildingsConfig  `yaml:"buildings"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds the floor grid dimensions.
type GridConfig struct {
	Extent  float64 `yaml:"extent"`  // half-width of the playable square
	Spacing float64 `yaml:"spacing"` // distance between grid lines
}

// CameraConfig holds the initial camera pose and lens parameters.
type CameraConfig struct {
	Mode       string  `yaml:"mode"` // "orbit" or "first_person"
	Distance   float64 `yaml:"distance"`
	Yaw        float64 `yaml:"yaw"`
	Pitch      float64 `yaml:"pitch"`
	FOV        float64 `yaml:"fov"`
	Zoom       float64 `yaml:"zoom"`
	NearClip   float64 `yaml:"near_clip"`
	TurnSpeed  float64 `yaml:"turn_speed"`  // degrees per tick while a turn key is held
	PitchLimit float64 `yaml:"pitch_limit"` // max absolute pitch, degrees
}

// FieldConfig holds activation field parameters.
type FieldConfig struct {
	Nodes         int     `yaml:"nodes"`
	LocalRadius   int     `yaml:"local_radius"`
	LocalProb     float64 `yaml:"local_prob"`
	LongProb      float64 `yaml:"long_prob"`
	Threshold     float64 `yaml:"threshold"`
	SelfWeight    float64 `yaml:"self_weight"`
	BroadcastTop  int     `yaml:"broadcast_top"`
	BroadcastGain float64 `yaml:"broadcast_gain"`
	Decay         float64 `yaml:"decay"`
	TickDelta     float64 `yaml:"tick_delta"`
	StimulusGain  float64 `yaml:"stimulus_gain"` // resonance-to-stimulus scaling
}

// PopulationConfig holds program counts and movement parameters.
type PopulationConfig struct {
	Basic        int     `yaml:"basic"`
	Security     int     `yaml:"security"`
	ISO          int     `yaml:"iso"`
	MoveSpeed    float64 `yaml:"move_speed"`    // world units per tick
	WanderJitter float64 `yaml:"wander_jitter"` // heading change probability per tick
}

// TrailsConfig holds light-cycle trail parameters.
type TrailsConfig struct {
	MaxPoints    int     `yaml:"max_points"`
	EmitEvery    int     `yaml:"emit_every"`    // ticks between trail points
	HitRadius    float64 `yaml:"hit_radius"`    // derez distance from a trail segment
	IgnoreRecent int     `yaml:"ignore_recent"` // own trail points exempt from collision
}

// BuildingsConfig holds building placement parameters.
type BuildingsConfig struct {
	Width     float64 `yaml:"width"`
	MinHeight float64 `yaml:"min_height"`
	MaxHeight float64 `yaml:"max_height"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32
	ScreenH32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded
// defaults if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects parameter values the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("config: screen dimensions must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if !(c.Camera.FOV > 0 && c.Camera.FOV < 180) {
		return fmt.Errorf("config: camera fov must be in (0, 180), got %g", c.Camera.FOV)
	}
	if c.Camera.NearClip <= 0 {
		return fmt.Errorf("config: camera near_clip must be positive, got %g", c.Camera.NearClip)
	}
	if c.Camera.Mode != "orbit" && c.Camera.Mode != "first_person" {
		return fmt.Errorf("config: camera mode must be \"orbit\" or \"first_person\", got %q", c.Camera.Mode)
	}
	if c.Field.Nodes <= 0 {
		return fmt.Errorf("config: field nodes must be positive, got %d", c.Field.Nodes)
	}
	if c.Field.Decay <= 0 || c.Field.Decay > 1 {
		return fmt.Errorf("config: field decay must be in (0, 1], got %g", c.Field.Decay)
	}
	if c.Grid.Spacing <= 0 || c.Grid.Extent <= 0 {
		return fmt.Errorf("config: grid extent and spacing must be positive")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
