package world

import (
	"fmt"

	"github.com/san-kum/planar/internal/body"
	"github.com/san-kum/planar/internal/collision"
	"github.com/san-kum/planar/internal/constraint"
	"github.com/san-kum/planar/internal/vec"
)

type BodyID int64

type ConstraintID int64

// DefaultIterations is the constraint solver sweep count for new worlds.
const DefaultIterations = constraint.DefaultIterations

type bodyEntry struct {
	id   BodyID
	body *body.Body
}

type rodEntry struct {
	id  ConstraintID
	rod *constraint.Rod
	a   BodyID
	b   BodyID // 0 when anchored to a fixed world point
}

// World owns an insertion-ordered set of bodies and rod constraints and
// drives the per-step pipeline: integrate, solve constraints, then detect
// and resolve collisions. Bodies and constraints are addressed by stable
// ids so editor-style deletion can never leave dangling references.
//
// A World is not safe for concurrent use; callers mutate and query between
// Step invocations only.
type World struct {
	gravity    vec.Vec2
	iterations int
	running    bool

	bodies  []bodyEntry
	rods    []rodEntry
	byID    map[BodyID]*body.Body
	nextBID BodyID
	nextCID ConstraintID
}

func New(gravity vec.Vec2) *World {
	return &World{
		gravity:    gravity,
		iterations: DefaultIterations,
		running:    true,
		byID:       make(map[BodyID]*body.Body),
	}
}

func (w *World) Gravity() vec.Vec2 { return w.gravity }
func (w *World) Iterations() int   { return w.iterations }
func (w *World) Running() bool     { return w.running }
func (w *World) NumBodies() int    { return len(w.bodies) }
func (w *World) NumRods() int      { return len(w.rods) }

func (w *World) SetGravity(g vec.Vec2) { w.gravity = g }

func (w *World) SetRunning(running bool) { w.running = running }

func (w *World) SetIterations(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidParameter, n)
	}
	w.iterations = n
	return nil
}

func (w *World) addBody(b *body.Body) BodyID {
	w.nextBID++
	id := w.nextBID
	w.bodies = append(w.bodies, bodyEntry{id: id, body: b})
	w.byID[id] = b
	return id
}

// CreateCircle adds a circular body and returns its id.
func (w *World) CreateCircle(pos vec.Vec2, radius, mass float64, pinned bool, restitution, friction float64) (BodyID, error) {
	b, err := body.New(body.NewCircle(radius), pos, mass, pinned, restitution, friction)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	return w.addBody(b), nil
}

// CreateBox adds an oriented rectangular body and returns its id.
func (w *World) CreateBox(pos vec.Vec2, halfW, halfH, mass float64, pinned bool, restitution, friction float64) (BodyID, error) {
	b, err := body.New(body.NewBox(halfW, halfH), pos, mass, pinned, restitution, friction)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	return w.addBody(b), nil
}

func (w *World) lookup(id BodyID) (*body.Body, error) {
	b, ok := w.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: body %d", ErrNotFound, id)
	}
	return b, nil
}

// CreateRod links two bodies with a fixed-distance constraint. Anchors are
// local offsets from each body's center.
func (w *World) CreateRod(a BodyID, anchorA vec.Vec2, b BodyID, anchorB vec.Vec2, rest float64) (ConstraintID, error) {
	ba, err := w.lookup(a)
	if err != nil {
		return 0, err
	}
	bb, err := w.lookup(b)
	if err != nil {
		return 0, err
	}
	rod, err := constraint.NewRod(ba, bb, anchorA, anchorB, rest)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	w.nextCID++
	w.rods = append(w.rods, rodEntry{id: w.nextCID, rod: rod, a: a, b: b})
	return w.nextCID, nil
}

// CreateRodToPoint links a body to a fixed world point.
func (w *World) CreateRodToPoint(a BodyID, anchor, point vec.Vec2, rest float64) (ConstraintID, error) {
	ba, err := w.lookup(a)
	if err != nil {
		return 0, err
	}
	rod, err := constraint.NewRodToPoint(ba, anchor, point, rest)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	w.nextCID++
	w.rods = append(w.rods, rodEntry{id: w.nextCID, rod: rod, a: a})
	return w.nextCID, nil
}

func (w *World) Pin(id BodyID) error {
	b, err := w.lookup(id)
	if err != nil {
		return err
	}
	b.Pin()
	return nil
}

func (w *World) Unpin(id BodyID) error {
	b, err := w.lookup(id)
	if err != nil {
		return err
	}
	b.Unpin()
	return nil
}

// ApplyForce accumulates a force at a world point for the next step.
func (w *World) ApplyForce(id BodyID, force, worldPoint vec.Vec2) error {
	b, err := w.lookup(id)
	if err != nil {
		return err
	}
	b.ApplyForce(force, worldPoint)
	return nil
}

func (w *World) ApplyTorque(id BodyID, torque float64) error {
	b, err := w.lookup(id)
	if err != nil {
		return err
	}
	b.ApplyTorque(torque)
	return nil
}

// RemoveBody destroys a body and cascades to every rod referencing it.
func (w *World) RemoveBody(id BodyID) error {
	if _, ok := w.byID[id]; !ok {
		return fmt.Errorf("%w: body %d", ErrNotFound, id)
	}
	delete(w.byID, id)

	for i, e := range w.bodies {
		if e.id == id {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}

	kept := w.rods[:0]
	for _, r := range w.rods {
		if r.a == id || r.b == id {
			continue
		}
		kept = append(kept, r)
	}
	w.rods = kept
	return nil
}

func (w *World) RemoveConstraint(id ConstraintID) error {
	for i, r := range w.rods {
		if r.id == id {
			w.rods = append(w.rods[:i], w.rods[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: constraint %d", ErrNotFound, id)
}

// Property setters for the debug inspector. Each re-derives inverse
// mass/inertia through the body so the invariants hold.

func (w *World) SetMass(id BodyID, mass float64) error {
	b, err := w.lookup(id)
	if err != nil {
		return err
	}
	if err := b.SetMass(mass); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	return nil
}

func (w *World) SetRestitution(id BodyID, r float64) error {
	b, err := w.lookup(id)
	if err != nil {
		return err
	}
	if err := b.SetRestitution(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	return nil
}

func (w *World) SetFriction(id BodyID, f float64) error {
	b, err := w.lookup(id)
	if err != nil {
		return err
	}
	if err := b.SetFriction(f); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	return nil
}

func (w *World) SetPosition(id BodyID, pos vec.Vec2) error {
	b, err := w.lookup(id)
	if err != nil {
		return err
	}
	b.Position = pos
	return nil
}

func (w *World) SetVelocity(id BodyID, v vec.Vec2) error {
	b, err := w.lookup(id)
	if err != nil {
		return err
	}
	b.Velocity = v
	return nil
}

// Step advances the simulation by dt: integrate all bodies under gravity
// and accumulated forces, run the constraint solver, then detect and
// resolve collisions. A paused world and dt <= 0 are no-ops. The call is
// synchronous and runs to completion.
func (w *World) Step(dt float64) {
	if !w.running || dt <= 0 {
		return
	}

	for _, e := range w.bodies {
		e.body.Integrate(dt, w.gravity)
	}

	if len(w.rods) > 0 {
		rods := make([]*constraint.Rod, len(w.rods))
		for i, r := range w.rods {
			rods[i] = r.rod
		}
		constraint.Solve(rods, w.iterations)
	}

	if len(w.bodies) > 1 {
		bodies := make([]*body.Body, len(w.bodies))
		for i, e := range w.bodies {
			bodies[i] = e.body
		}
		collision.Resolve(collision.Detect(bodies))
	}
}
