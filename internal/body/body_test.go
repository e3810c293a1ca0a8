package body

import (
	"math"
	"testing"

	"github.com/san-kum/planar/internal/vec"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name        string
		shape       Shape
		mass        float64
		pinned      bool
		restitution float64
		friction    float64
		wantErr     bool
	}{
		{"circle ok", NewCircle(1), 1, false, 0.5, 0.3, false},
		{"box ok", NewBox(1, 2), 2, false, 0, 0, false},
		{"pinned zero mass", NewCircle(1), 0, true, 0, 0, false},
		{"zero mass free", NewCircle(1), 0, false, 0, 0, true},
		{"negative mass free", NewCircle(1), -1, false, 0, 0, true},
		{"zero radius", NewCircle(0), 1, false, 0, 0, true},
		{"negative half width", NewBox(-1, 1), 1, false, 0, 0, true},
		{"zero half height", NewBox(1, 0), 1, false, 0, 0, true},
		{"restitution above one", NewCircle(1), 1, false, 1.5, 0, true},
		{"negative restitution", NewCircle(1), 1, false, -0.1, 0, true},
		{"negative friction", NewCircle(1), 1, false, 0, -0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.shape, vec.Vec2{}, tt.mass, tt.pinned, tt.restitution, tt.friction)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInertiaDerivation(t *testing.T) {
	circle, err := New(NewCircle(2), vec.Vec2{}, 3, false, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	// I = 1/2 m r^2 = 6
	if math.Abs(circle.Inertia()-6) > 1e-12 {
		t.Errorf("circle inertia = %v, want 6", circle.Inertia())
	}
	if math.Abs(circle.InvInertia()-1.0/6) > 1e-12 {
		t.Errorf("circle inv inertia = %v", circle.InvInertia())
	}

	box, err := New(NewBox(1, 2), vec.Vec2{}, 6, false, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	// I = m (w^2 + h^2) / 12 = 6 * (4 + 16) / 12 = 10
	if math.Abs(box.Inertia()-10) > 1e-12 {
		t.Errorf("box inertia = %v, want 10", box.Inertia())
	}
}

func TestPinnedInverses(t *testing.T) {
	b, err := New(NewCircle(1), vec.Vec2{}, 5, true, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if b.InvMass() != 0 || b.InvInertia() != 0 {
		t.Errorf("pinned body has nonzero inverses: %v, %v", b.InvMass(), b.InvInertia())
	}
}

func TestApplyForceTorque(t *testing.T) {
	b, _ := New(NewCircle(1), vec.Vec2{X: 1, Y: 1}, 1, false, 0, 0)

	// Force at the center: no torque.
	b.ApplyForce(vec.Vec2{X: 0, Y: 10}, vec.Vec2{X: 1, Y: 1})
	if b.Torque() != 0 {
		t.Errorf("central force produced torque %v", b.Torque())
	}

	// Force offset +1 in x, pointing +y: torque = r x f = +10.
	b.ApplyForce(vec.Vec2{X: 0, Y: 10}, vec.Vec2{X: 2, Y: 1})
	if math.Abs(b.Torque()-10) > 1e-12 {
		t.Errorf("torque = %v, want 10", b.Torque())
	}
	if b.Force() != (vec.Vec2{X: 0, Y: 20}) {
		t.Errorf("force = %v", b.Force())
	}
}

func TestApplyForcePinnedNoop(t *testing.T) {
	b, _ := New(NewCircle(1), vec.Vec2{}, 0, true, 0, 0)
	b.ApplyForce(vec.Vec2{X: 1e6, Y: 1e6}, vec.Vec2{X: 5, Y: 5})
	b.ApplyTorque(1e6)
	if b.Force() != (vec.Vec2{}) || b.Torque() != 0 {
		t.Error("pinned body accumulated force or torque")
	}
}

func TestIntegrateFreeFall(t *testing.T) {
	// Semi-implicit Euler recurrence: v_{k+1} = v_k + g dt,
	// y_{k+1} = y_k + v_{k+1} dt.
	b, _ := New(NewCircle(1), vec.Vec2{}, 1, false, 0, 0)
	gravity := vec.Vec2{Y: -9.8}
	dt := 0.1

	wantV, wantY := 0.0, 0.0
	for i := 0; i < 10; i++ {
		b.Integrate(dt, gravity)
		wantV += gravity.Y * dt
		wantY += wantV * dt
	}

	if math.Abs(b.Velocity.Y-(-9.8)) > 1e-6 {
		t.Errorf("velocity.y = %v, want -9.8", b.Velocity.Y)
	}
	if math.Abs(b.Velocity.Y-wantV) > 1e-6 {
		t.Errorf("velocity.y = %v, want %v", b.Velocity.Y, wantV)
	}
	if math.Abs(b.Position.Y-wantY) > 1e-6 {
		t.Errorf("position.y = %v, want %v", b.Position.Y, wantY)
	}
}

func TestIntegrateZeroDt(t *testing.T) {
	b, _ := New(NewCircle(1), vec.Vec2{X: 1, Y: 2}, 1, false, 0, 0)
	b.Velocity = vec.Vec2{X: 3, Y: 4}
	before := *b

	b.Integrate(0, vec.Vec2{Y: -9.8})
	b.Integrate(-0.1, vec.Vec2{Y: -9.8})

	if b.Position != before.Position || b.Velocity != before.Velocity {
		t.Error("dt <= 0 changed body state")
	}
}

func TestIntegrateAngular(t *testing.T) {
	b, _ := New(NewCircle(1), vec.Vec2{}, 2, false, 0, 0)
	b.ApplyTorque(1) // inertia = 1, so alpha = 1

	b.Integrate(0.5, vec.Vec2{})
	if math.Abs(b.AngularVel-0.5) > 1e-12 {
		t.Errorf("angular velocity = %v, want 0.5", b.AngularVel)
	}
	if math.Abs(b.Rotation-0.25) > 1e-12 {
		t.Errorf("rotation = %v, want 0.25", b.Rotation)
	}
	if b.Torque() != 0 {
		t.Error("torque accumulator not cleared")
	}
}

func TestPinUnpin(t *testing.T) {
	b, _ := New(NewCircle(1), vec.Vec2{}, 2, false, 0, 0)
	b.Velocity = vec.Vec2{X: 5}
	b.AngularVel = 3

	b.Pin()
	if b.Velocity != (vec.Vec2{}) || b.AngularVel != 0 {
		t.Error("Pin did not zero velocities")
	}
	if b.InvMass() != 0 || b.InvInertia() != 0 {
		t.Error("Pin did not zero inverses")
	}

	b.Unpin()
	if b.InvMass() != 0.5 {
		t.Errorf("Unpin inv mass = %v, want 0.5", b.InvMass())
	}
}

func TestUnpinZeroMassGetsUnitMass(t *testing.T) {
	b, _ := New(NewCircle(1), vec.Vec2{}, 0, true, 0, 0)
	b.Unpin()
	if b.Mass() != 1 || b.InvMass() != 1 {
		t.Errorf("mass = %v, inv = %v, want 1, 1", b.Mass(), b.InvMass())
	}
}

func TestPinnedUnmovedByIntegration(t *testing.T) {
	b, _ := New(NewCircle(1), vec.Vec2{X: 2, Y: 3}, 0, true, 0, 0)
	for i := 0; i < 100; i++ {
		b.ApplyForce(vec.Vec2{X: 1000, Y: -1000}, b.Position)
		b.Integrate(0.1, vec.Vec2{Y: -9.8})
	}
	if b.Position != (vec.Vec2{X: 2, Y: 3}) || b.Rotation != 0 {
		t.Errorf("pinned body moved to %v rot %v", b.Position, b.Rotation)
	}
}

func TestSettersRederive(t *testing.T) {
	b, _ := New(NewCircle(1), vec.Vec2{}, 1, false, 0.5, 0.5)

	if err := b.SetMass(4); err != nil {
		t.Fatal(err)
	}
	if b.InvMass() != 0.25 {
		t.Errorf("inv mass after SetMass = %v", b.InvMass())
	}
	if math.Abs(b.Inertia()-2) > 1e-12 { // 1/2 * 4 * 1
		t.Errorf("inertia after SetMass = %v", b.Inertia())
	}

	if err := b.SetMass(0); err == nil {
		t.Error("SetMass(0) should fail")
	}
	if err := b.SetRestitution(2); err == nil {
		t.Error("SetRestitution(2) should fail")
	}
	if err := b.SetFriction(-1); err == nil {
		t.Error("SetFriction(-1) should fail")
	}
}

func TestVelocityAt(t *testing.T) {
	b, _ := New(NewCircle(1), vec.Vec2{}, 1, false, 0, 0)
	b.AngularVel = 2

	// Point at (1,0) on a body spinning CCW at 2 rad/s moves at (0,2).
	v := b.VelocityAt(vec.Vec2{X: 1})
	if math.Abs(v.X) > 1e-12 || math.Abs(v.Y-2) > 1e-12 {
		t.Errorf("VelocityAt = %v, want (0,2)", v)
	}
}
