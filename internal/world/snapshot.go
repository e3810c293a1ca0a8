package world

import (
	"fmt"

	"github.com/san-kum/planar/internal/body"
	"github.com/san-kum/planar/internal/vec"
)

// BodyState is a read-only snapshot of a single body, sufficient for
// rendering and inspection.
type BodyState struct {
	ID          BodyID
	Shape       Shape
	Position    vec.Vec2
	Rotation    float64
	Velocity    vec.Vec2
	AngularVel  float64
	Mass        float64
	Pinned      bool
	Restitution float64
	Friction    float64
}

// Shape mirrors the body shape variant for snapshot consumers.
type Shape struct {
	Kind   string // "circle" or "box"
	Radius float64
	HalfW  float64
	HalfH  float64
}

// RodState is a read-only snapshot of one rod constraint.
type RodState struct {
	ID     ConstraintID
	BodyA  BodyID
	BodyB  BodyID // 0 when anchored to a fixed world point
	A, B   vec.Vec2
	Length float64
	Rest   float64
}

// Bodies returns body snapshots in insertion order.
func (w *World) Bodies() []BodyState {
	out := make([]BodyState, len(w.bodies))
	for i, e := range w.bodies {
		out[i] = snapshotBody(e.id, e.body)
	}
	return out
}

// Body returns the snapshot of one body.
func (w *World) Body(id BodyID) (BodyState, error) {
	b, err := w.lookup(id)
	if err != nil {
		return BodyState{}, err
	}
	return snapshotBody(id, b), nil
}

// Rods returns rod snapshots, with current world endpoints, in insertion
// order.
func (w *World) Rods() []RodState {
	out := make([]RodState, len(w.rods))
	for i, r := range w.rods {
		pa, pb := r.rod.WorldAnchors()
		out[i] = RodState{
			ID:     r.id,
			BodyA:  r.a,
			BodyB:  r.b,
			A:      pa,
			B:      pb,
			Length: vec.Dist(pa, pb),
			Rest:   r.rod.Rest,
		}
	}
	return out
}

func snapshotBody(id BodyID, b *body.Body) BodyState {
	return BodyState{
		ID: id,
		Shape: Shape{
			Kind:   b.Shape.Kind.String(),
			Radius: b.Shape.Radius,
			HalfW:  b.Shape.HalfW,
			HalfH:  b.Shape.HalfH,
		},
		Position:    b.Position,
		Rotation:    b.Rotation,
		Velocity:    b.Velocity,
		AngularVel:  b.AngularVel,
		Mass:        b.Mass(),
		Pinned:      b.Pinned(),
		Restitution: b.Restitution(),
		Friction:    b.Friction(),
	}
}

func (s BodyState) String() string {
	return fmt.Sprintf("body %d %s at (%.3f, %.3f)", s.ID, s.Shape.Kind, s.Position.X, s.Position.Y)
}

// Inertia returns the moment of inertia implied by the snapshot's shape
// and mass, for observers computing rotational energy.
func (s BodyState) Inertia() float64 {
	switch s.Shape.Kind {
	case "circle":
		return body.NewCircle(s.Shape.Radius).Inertia(s.Mass)
	case "box":
		return body.NewBox(s.Shape.HalfW, s.Shape.HalfH).Inertia(s.Mass)
	}
	return 0
}
