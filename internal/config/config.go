package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt         = 1.0 / 60
	DefaultDuration   = 10.0
	DefaultGravityY   = -9.8
	DefaultIterations = 8
)

// Config describes a scene: world settings plus the bodies and rods to
// build. It round-trips through yaml for scene files.
type Config struct {
	Name       string       `yaml:"name"`
	GravityX   float64      `yaml:"gravity_x"`
	GravityY   float64      `yaml:"gravity_y"`
	Iterations int          `yaml:"iterations"`
	Dt         float64      `yaml:"dt"`
	Duration   float64      `yaml:"duration"`
	Bodies     []BodyConfig `yaml:"bodies"`
	Rods       []RodConfig  `yaml:"rods"`
}

// BodyConfig is one body in a scene. Shape is "circle" or "box"; circles
// use radius, boxes the half extents.
type BodyConfig struct {
	Shape       string  `yaml:"shape"`
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Radius      float64 `yaml:"radius"`
	HalfW       float64 `yaml:"half_w"`
	HalfH       float64 `yaml:"half_h"`
	Mass        float64 `yaml:"mass"`
	Pinned      bool    `yaml:"pinned"`
	Restitution float64 `yaml:"restitution"`
	Friction    float64 `yaml:"friction"`
	VX          float64 `yaml:"vx"`
	VY          float64 `yaml:"vy"`
}

// RodConfig links bodies by their indices in the scene's body list.
// B == -1 anchors A to the fixed world point (PX, PY) instead. Length 0
// means "use the distance between the anchors at build time".
type RodConfig struct {
	A        int     `yaml:"a"`
	B        int     `yaml:"b"`
	AnchorAX float64 `yaml:"anchor_a_x"`
	AnchorAY float64 `yaml:"anchor_a_y"`
	AnchorBX float64 `yaml:"anchor_b_x"`
	AnchorBY float64 `yaml:"anchor_b_y"`
	PX       float64 `yaml:"px"`
	PY       float64 `yaml:"py"`
	Length   float64 `yaml:"length"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:       "empty",
		GravityY:   DefaultGravityY,
		Iterations: DefaultIterations,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
