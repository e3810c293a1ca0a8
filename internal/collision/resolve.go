package collision

import (
	"math"

	"github.com/san-kum/planar/internal/body"
	"github.com/san-kum/planar/internal/vec"
)

const (
	// Slop is the interpenetration tolerated before positional
	// correction kicks in; it keeps resting contacts from jittering.
	Slop = 0.01
	// Bias is the fraction of the remaining penetration corrected per
	// step. Under 1 so deep overlaps separate over several steps instead
	// of exploding.
	Bias = 0.8
)

// Resolve applies positional correction, the restitution impulse and
// Coulomb friction to every contact, once per pair, in detection order.
func Resolve(contacts []Contact) {
	for i := range contacts {
		resolveContact(&contacts[i])
	}
}

func resolveContact(c *Contact) {
	a, b := c.A, c.B
	invMassSum := a.InvMass() + b.InvMass()
	if invMassSum == 0 {
		return
	}

	correctPosition(c, invMassSum)
	j := normalImpulse(c, invMassSum)
	frictionImpulse(c, invMassSum, j)
}

func correctPosition(c *Contact, invMassSum float64) {
	depth := c.Penetration - Slop
	if depth <= 0 {
		return
	}
	corr := c.Normal.Scale(depth / invMassSum * Bias)
	c.A.Position = c.A.Position.Sub(corr.Scale(c.A.InvMass()))
	c.B.Position = c.B.Position.Add(corr.Scale(c.B.InvMass()))
}

// normalImpulse applies the restitution response and returns the impulse
// magnitude for the friction bound. Separating contacts are skipped.
func normalImpulse(c *Contact, invMassSum float64) float64 {
	a, b := c.A, c.B
	rv := b.VelocityAt(c.Point).Sub(a.VelocityAt(c.Point))
	vn := rv.Dot(c.Normal)
	if vn > 0 {
		return 0
	}

	ra := c.Point.Sub(a.Position)
	rb := c.Point.Sub(b.Position)
	raCn := ra.Cross(c.Normal)
	rbCn := rb.Cross(c.Normal)
	k := invMassSum + a.InvInertia()*raCn*raCn + b.InvInertia()*rbCn*rbCn
	if k == 0 {
		return 0
	}

	e := math.Min(a.Restitution(), b.Restitution())
	j := -(1 + e) * vn / k
	applyImpulse(a, b, c.Normal.Scale(j), ra, rb)
	return j
}

func frictionImpulse(c *Contact, invMassSum, j float64) {
	a, b := c.A, c.B
	mu := math.Sqrt(a.Friction() * b.Friction())
	if mu == 0 || j == 0 {
		return
	}

	// Recompute relative velocity after the normal impulse.
	rv := b.VelocityAt(c.Point).Sub(a.VelocityAt(c.Point))
	tangent := rv.Sub(c.Normal.Scale(rv.Dot(c.Normal))).Normalize()
	if tangent == (vec.Vec2{}) {
		return
	}

	ra := c.Point.Sub(a.Position)
	rb := c.Point.Sub(b.Position)
	raCt := ra.Cross(tangent)
	rbCt := rb.Cross(tangent)
	k := invMassSum + a.InvInertia()*raCt*raCt + b.InvInertia()*rbCt*rbCt
	if k == 0 {
		return
	}

	jt := -rv.Dot(tangent) / k

	// Coulomb cone: tangential impulse bounded by mu * normal impulse.
	limit := mu * math.Abs(j)
	jt = math.Max(-limit, math.Min(jt, limit))

	applyImpulse(a, b, tangent.Scale(jt), ra, rb)
}

func applyImpulse(a, b *body.Body, impulse, ra, rb vec.Vec2) {
	a.Velocity = a.Velocity.Sub(impulse.Scale(a.InvMass()))
	a.AngularVel -= a.InvInertia() * ra.Cross(impulse)
	b.Velocity = b.Velocity.Add(impulse.Scale(b.InvMass()))
	b.AngularVel += b.InvInertia() * rb.Cross(impulse)
}
