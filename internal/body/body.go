package body

import (
	"fmt"

	"github.com/san-kum/planar/internal/vec"
)

// Body is the positional and rotational state of a single rigid body.
// Position, Rotation and the velocities are plain fields mutated by the
// solver; mass, restitution and friction go through setters so the derived
// inverse mass and inverse inertia stay consistent.
type Body struct {
	Shape      Shape
	Position   vec.Vec2
	Rotation   float64 // radians, not wrapped
	Velocity   vec.Vec2
	AngularVel float64

	mass        float64
	invMass     float64
	inertia     float64
	invInertia  float64
	pinned      bool
	restitution float64
	friction    float64

	force  vec.Vec2
	torque float64
}

// New validates the parameters and derives inverse mass and inertia.
// A pinned body may carry zero mass; a free body must have mass > 0.
func New(shape Shape, pos vec.Vec2, mass float64, pinned bool, restitution, friction float64) (*Body, error) {
	if err := shape.validate(); err != nil {
		return nil, err
	}
	if !pinned && mass <= 0 {
		return nil, fmt.Errorf("mass must be positive for a free body, got %g", mass)
	}
	if restitution < 0 || restitution > 1 {
		return nil, fmt.Errorf("restitution must be in [0,1], got %g", restitution)
	}
	if friction < 0 {
		return nil, fmt.Errorf("friction must be non-negative, got %g", friction)
	}

	b := &Body{
		Shape:       shape,
		Position:    pos,
		mass:        mass,
		pinned:      pinned,
		restitution: restitution,
		friction:    friction,
	}
	b.derive()
	return b, nil
}

// derive recomputes invMass/inertia/invInertia from mass, shape and the
// pinned flag. Pinned implies both inverses are zero (infinite mass).
func (b *Body) derive() {
	if b.pinned {
		b.invMass = 0
		b.invInertia = 0
		b.inertia = b.Shape.Inertia(b.mass)
		return
	}
	b.invMass = 1 / b.mass
	b.inertia = b.Shape.Inertia(b.mass)
	if b.inertia > 0 {
		b.invInertia = 1 / b.inertia
	} else {
		b.invInertia = 0
	}
}

func (b *Body) Mass() float64        { return b.mass }
func (b *Body) InvMass() float64     { return b.invMass }
func (b *Body) Inertia() float64     { return b.inertia }
func (b *Body) InvInertia() float64  { return b.invInertia }
func (b *Body) Pinned() bool         { return b.pinned }
func (b *Body) Restitution() float64 { return b.restitution }
func (b *Body) Friction() float64    { return b.friction }
func (b *Body) Force() vec.Vec2      { return b.force }
func (b *Body) Torque() float64      { return b.torque }

// ApplyForce accumulates a force acting at a world-space point, adding the
// resulting torque about the center of mass. Pinned bodies silently ignore
// forces; their velocities are clamped every step anyway.
func (b *Body) ApplyForce(force, worldPoint vec.Vec2) {
	if b.pinned {
		return
	}
	b.force = b.force.Add(force)
	b.torque += worldPoint.Sub(b.Position).Cross(force)
}

// ApplyTorque accumulates a pure torque about the center of mass.
func (b *Body) ApplyTorque(torque float64) {
	if b.pinned {
		return
	}
	b.torque += torque
}

// Pin freezes the body in place: inverse mass and inertia become zero and
// current velocities are discarded.
func (b *Body) Pin() {
	b.pinned = true
	b.Velocity = vec.Vec2{}
	b.AngularVel = 0
	b.derive()
}

// Unpin restores the body to dynamic. A body pinned since creation with
// zero mass gets unit mass.
func (b *Body) Unpin() {
	if b.mass <= 0 {
		b.mass = 1
	}
	b.pinned = false
	b.derive()
}

func (b *Body) SetMass(mass float64) error {
	if mass <= 0 {
		return fmt.Errorf("mass must be positive, got %g", mass)
	}
	b.mass = mass
	b.derive()
	return nil
}

func (b *Body) SetRestitution(r float64) error {
	if r < 0 || r > 1 {
		return fmt.Errorf("restitution must be in [0,1], got %g", r)
	}
	b.restitution = r
	return nil
}

func (b *Body) SetFriction(f float64) error {
	if f < 0 {
		return fmt.Errorf("friction must be non-negative, got %g", f)
	}
	b.friction = f
	return nil
}

// Integrate advances the body by dt using semi-implicit Euler: velocities
// first, then positions with the updated velocities. Accumulated force and
// torque are consumed and cleared. dt <= 0 is a no-op. Pinned bodies only
// have their velocities and accumulators cleared.
func (b *Body) Integrate(dt float64, gravity vec.Vec2) {
	if dt <= 0 {
		return
	}
	if b.pinned {
		b.Velocity = vec.Vec2{}
		b.AngularVel = 0
		b.clearAccumulators()
		return
	}

	accel := gravity.Add(b.force.Scale(b.invMass))
	b.Velocity = b.Velocity.Add(accel.Scale(dt))
	b.Position = b.Position.Add(b.Velocity.Scale(dt))

	b.AngularVel += b.invInertia * b.torque * dt
	b.Rotation += b.AngularVel * dt

	b.clearAccumulators()
}

func (b *Body) clearAccumulators() {
	b.force = vec.Vec2{}
	b.torque = 0
}

// VelocityAt returns the velocity of the world-space point as carried by
// this body, including the rotational contribution.
func (b *Body) VelocityAt(worldPoint vec.Vec2) vec.Vec2 {
	r := worldPoint.Sub(b.Position)
	return b.Velocity.Add(r.Perp().Scale(b.AngularVel))
}
