package impulse

import (
	"fmt"
	"os"

	"github.com/akmonengine/impulse/actor"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLinearDamping  = 0.99
	DefaultAngularDamping = 0.8
	DefaultSleepEpsilon   = 0.3
	DefaultMaxContacts    = 256
)

// Config is the yaml-loadable tuning of a simulation world. Zero
// Iterations lets the resolver derive its budget from the per-frame
// contact count.
type Config struct {
	Gravity        [3]float64 `yaml:"gravity"`
	LinearDamping  float64    `yaml:"linear_damping"`
	AngularDamping float64    `yaml:"angular_damping"`
	SleepEpsilon   float64    `yaml:"sleep_epsilon"`
	Iterations     int        `yaml:"iterations"`
	MaxContacts    int        `yaml:"max_contacts"`
	Workers        int        `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Gravity:        [3]float64{0, -9.81, 0},
		LinearDamping:  DefaultLinearDamping,
		AngularDamping: DefaultAngularDamping,
		SleepEpsilon:   DefaultSleepEpsilon,
		MaxContacts:    DefaultMaxContacts,
		Workers:        1,
	}
}

// Presets are named starting points for common scene tunings.
var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"space": {
		Gravity:        [3]float64{0, 0, 0},
		LinearDamping:  1.0,
		AngularDamping: 1.0,
		SleepEpsilon:   0.05,
		MaxContacts:    DefaultMaxContacts,
		Workers:        1,
	},
	"underwater": {
		Gravity:        [3]float64{0, -9.81, 0},
		LinearDamping:  0.8,
		AngularDamping: 0.6,
		SleepEpsilon:   0.5,
		MaxContacts:    DefaultMaxContacts,
		Workers:        1,
	},
}

// Preset returns a copy of a named preset.
func Preset(name string) (*Config, error) {
	preset, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("impulse: unknown preset %q", name)
	}

	cfg := *preset
	return &cfg, nil
}

// LoadConfig reads a yaml file over the defaults and validates the
// result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig writes the configuration as yaml.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.LinearDamping < 0 || c.LinearDamping > 1 {
		return fmt.Errorf("impulse: linear_damping %v out of [0,1]", c.LinearDamping)
	}
	if c.AngularDamping < 0 || c.AngularDamping > 1 {
		return fmt.Errorf("impulse: angular_damping %v out of [0,1]", c.AngularDamping)
	}
	if c.SleepEpsilon <= 0 {
		return fmt.Errorf("impulse: sleep_epsilon must be positive, got %v", c.SleepEpsilon)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("impulse: iterations must not be negative, got %v", c.Iterations)
	}
	if c.MaxContacts <= 0 {
		return fmt.Errorf("impulse: max_contacts must be positive, got %v", c.MaxContacts)
	}
	if c.Workers < 0 {
		return fmt.Errorf("impulse: workers must not be negative, got %v", c.Workers)
	}

	return nil
}

// GravityVec returns the configured gravity as a vector.
func (c *Config) GravityVec() mgl64.Vec3 {
	return mgl64.Vec3{c.Gravity[0], c.Gravity[1], c.Gravity[2]}
}

// NewParticleWorld builds a particle world with the
// configured contact budget, iterations and workers, and applies the
// global sleep epsilon.
func (c *Config) NewParticleWorld() *ParticleWorld {
	actor.SetSleepEpsilon(c.SleepEpsilon)

	w := NewParticleWorld(c.MaxContacts, c.Iterations)
	w.Workers = c.Workers

	return w
}

// NewWorld builds a rigid-body world with the configured workers and
// applies the global sleep epsilon.
func (c *Config) NewWorld() *World {
	actor.SetSleepEpsilon(c.SleepEpsilon)

	w := NewWorld()
	w.Workers = c.Workers

	return w
}

// ApplyBody stamps the configured damping and gravity onto a body.
func (c *Config) ApplyBody(body *actor.RigidBody) {
	body.LinearDamping = c.LinearDamping
	body.AngularDamping = c.AngularDamping
	body.Acceleration = c.GravityVec()
}
