// Package metrics provides observers over world snapshots for run
// summaries.
package metrics

import (
	"math"

	"github.com/san-kum/planar/internal/vec"
	"github.com/san-kum/planar/internal/world"
)

// Metric accumulates a scalar over the frames of a run.
type Metric interface {
	Name() string
	Observe(states []world.BodyState, t float64)
	Value() float64
	Reset()
}

// KineticEnergyOf sums translational and rotational kinetic energy over
// the snapshot. Pinned bodies contribute nothing.
func KineticEnergyOf(states []world.BodyState) float64 {
	total := 0.0
	for _, s := range states {
		if s.Pinned {
			continue
		}
		total += 0.5 * s.Mass * s.Velocity.LenSq()
		total += 0.5 * s.Inertia() * s.AngularVel * s.AngularVel
	}
	return total
}

// MomentumOf sums linear momentum over the snapshot.
func MomentumOf(states []world.BodyState) vec.Vec2 {
	var p vec.Vec2
	for _, s := range states {
		if s.Pinned {
			continue
		}
		p = p.Add(s.Velocity.Scale(s.Mass))
	}
	return p
}

// KineticEnergy reports the time-averaged kinetic energy of a run.
type KineticEnergy struct {
	sum     float64
	samples int
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(states []world.BodyState, t float64) {
	k.sum += KineticEnergyOf(states)
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.sum / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.sum = 0
	k.samples = 0
}

// Momentum reports the time-averaged magnitude of total linear momentum.
type Momentum struct {
	sum     float64
	samples int
}

func NewMomentum() *Momentum { return &Momentum{} }

func (m *Momentum) Name() string { return "momentum" }

func (m *Momentum) Observe(states []world.BodyState, t float64) {
	m.sum += MomentumOf(states).Len()
	m.samples++
}

func (m *Momentum) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Momentum) Reset() {
	m.sum = 0
	m.samples = 0
}

// MaxSpeed reports the fastest body speed seen during the run, a cheap
// divergence alarm for unstable scenes.
type MaxSpeed struct {
	max float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{} }

func (m *MaxSpeed) Name() string { return "max_speed" }

func (m *MaxSpeed) Observe(states []world.BodyState, t float64) {
	for _, s := range states {
		m.max = math.Max(m.max, s.Velocity.Len())
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }
