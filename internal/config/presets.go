package config

import "sort"

// Presets are ready-made scenes, keyed by name.
var Presets = map[string]*Config{
	"pendulum": {
		Name: "pendulum", GravityY: -9.8, Iterations: 8, Dt: DefaultDt, Duration: 20,
		Bodies: []BodyConfig{
			{Shape: "circle", X: 0, Y: 5, Radius: 0.3, Pinned: true},
			{Shape: "circle", X: 3, Y: 5, Radius: 0.3, Mass: 1, Restitution: 0.2, Friction: 0.3},
		},
		Rods: []RodConfig{
			{A: 0, B: 1},
		},
	},
	"chain": {
		Name: "chain", GravityY: -9.8, Iterations: 12, Dt: DefaultDt, Duration: 20,
		Bodies: []BodyConfig{
			{Shape: "circle", X: 0, Y: 8, Radius: 0.2, Pinned: true},
			{Shape: "circle", X: 1, Y: 8, Radius: 0.2, Mass: 1},
			{Shape: "circle", X: 2, Y: 8, Radius: 0.2, Mass: 1},
			{Shape: "circle", X: 3, Y: 8, Radius: 0.2, Mass: 1},
			{Shape: "circle", X: 4, Y: 8, Radius: 0.2, Mass: 1},
		},
		Rods: []RodConfig{
			{A: 0, B: 1},
			{A: 1, B: 2},
			{A: 2, B: 3},
			{A: 3, B: 4},
		},
	},
	"stack": {
		Name: "stack", GravityY: -9.8, Iterations: 8, Dt: DefaultDt, Duration: 15,
		Bodies: []BodyConfig{
			{Shape: "box", X: 0, Y: -1, HalfW: 8, HalfH: 1, Pinned: true, Friction: 0.8},
			{Shape: "box", X: 0, Y: 0.5, HalfW: 0.5, HalfH: 0.5, Mass: 1, Friction: 0.6},
			{Shape: "box", X: 0.1, Y: 1.6, HalfW: 0.5, HalfH: 0.5, Mass: 1, Friction: 0.6},
			{Shape: "box", X: -0.1, Y: 2.7, HalfW: 0.5, HalfH: 0.5, Mass: 1, Friction: 0.6},
		},
	},
	"cradle": {
		Name: "cradle", GravityY: 0, Iterations: 8, Dt: DefaultDt, Duration: 20,
		Bodies: []BodyConfig{
			{Shape: "circle", X: 0, Y: 0, Radius: 0.5, Mass: 1, Restitution: 1},
			{Shape: "circle", X: 1.01, Y: 0, Radius: 0.5, Mass: 1, Restitution: 1},
			{Shape: "circle", X: 2.02, Y: 0, Radius: 0.5, Mass: 1, Restitution: 1},
			{Shape: "circle", X: -3, Y: 0, Radius: 0.5, Mass: 1, Restitution: 1, VX: 4},
		},
	},
	"drop": {
		Name: "drop", GravityY: -9.8, Iterations: 8, Dt: DefaultDt, Duration: 10,
		Bodies: []BodyConfig{
			{Shape: "box", X: 0, Y: -2, HalfW: 10, HalfH: 1, Pinned: true, Restitution: 0.4, Friction: 0.5},
			{Shape: "circle", X: -2, Y: 4, Radius: 0.5, Mass: 1, Restitution: 0.7, Friction: 0.2},
			{Shape: "circle", X: 0, Y: 6, Radius: 0.7, Mass: 2, Restitution: 0.5, Friction: 0.2},
			{Shape: "box", X: 2, Y: 5, HalfW: 0.5, HalfH: 0.5, Mass: 1, Restitution: 0.3, Friction: 0.6},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	cp.Bodies = append([]BodyConfig(nil), p.Bodies...)
	cp.Rods = append([]RodConfig(nil), p.Rods...)
	return &cp
}

// ListPresets returns the preset names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
