// Package constraint implements fixed-distance (rod) constraints and the
// iterative positional solver that enforces them.
package constraint

import (
	"fmt"

	"github.com/san-kum/planar/internal/body"
	"github.com/san-kum/planar/internal/vec"
)

// DefaultIterations is the Gauss-Seidel sweep count used when a caller
// does not configure one.
const DefaultIterations = 8

// Rod keeps two anchor points at a fixed rest length. Anchors are local
// offsets from each body's center, rotated with the body. When B is nil
// the rod connects A to the fixed world point Point instead.
type Rod struct {
	A, B    *body.Body
	AnchorA vec.Vec2
	AnchorB vec.Vec2
	Point   vec.Vec2
	Rest    float64
}

func NewRod(a, b *body.Body, anchorA, anchorB vec.Vec2, rest float64) (*Rod, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("rod requires two bodies")
	}
	if a == b {
		return nil, fmt.Errorf("rod cannot connect a body to itself")
	}
	if rest < 0 {
		return nil, fmt.Errorf("rest length must be non-negative, got %g", rest)
	}
	return &Rod{A: a, B: b, AnchorA: anchorA, AnchorB: anchorB, Rest: rest}, nil
}

// NewRodToPoint anchors a body to a fixed world point.
func NewRodToPoint(a *body.Body, anchor, point vec.Vec2, rest float64) (*Rod, error) {
	if a == nil {
		return nil, fmt.Errorf("rod requires a body")
	}
	if rest < 0 {
		return nil, fmt.Errorf("rest length must be non-negative, got %g", rest)
	}
	return &Rod{A: a, AnchorA: anchor, Point: point, Rest: rest}, nil
}

// WorldAnchors returns the current world-space endpoints of the rod.
func (r *Rod) WorldAnchors() (vec.Vec2, vec.Vec2) {
	pa := r.A.Position.Add(r.AnchorA.Rotate(r.A.Rotation))
	if r.B == nil {
		return pa, r.Point
	}
	pb := r.B.Position.Add(r.AnchorB.Rotate(r.B.Rotation))
	return pa, pb
}

// Length returns the current anchor-to-anchor distance.
func (r *Rod) Length() float64 {
	pa, pb := r.WorldAnchors()
	return vec.Dist(pa, pb)
}

// solve applies one positional correction. The error along the anchor
// separation is distributed through each body's generalized inverse mass
// (inverse mass plus the anchor lever-arm term through inverse inertia),
// so a pinned end receives no correction and off-center anchors rotate the
// body consistently with the translation.
func (r *Rod) solve() {
	pa, pb := r.WorldAnchors()
	delta := pb.Sub(pa)
	dist := delta.Len()
	if dist == 0 {
		// Coincident anchors leave no defined direction; skip this sweep.
		return
	}

	n := delta.Scale(1 / dist)
	ra := pa.Sub(r.A.Position)
	raCn := ra.Cross(n)
	wa := r.A.InvMass() + r.A.InvInertia()*raCn*raCn

	var rb vec.Vec2
	var rbCn, wb float64
	if r.B != nil {
		rb = pb.Sub(r.B.Position)
		rbCn = rb.Cross(n)
		wb = r.B.InvMass() + r.B.InvInertia()*rbCn*rbCn
	}

	if wa+wb == 0 {
		// Both ends immovable: fully rigid, nothing to correct.
		return
	}

	lambda := (dist - r.Rest) / (wa + wb)
	corr := n.Scale(lambda)

	r.A.Position = r.A.Position.Add(corr.Scale(r.A.InvMass()))
	r.A.Rotation += r.A.InvInertia() * raCn * lambda
	if r.B != nil {
		r.B.Position = r.B.Position.Sub(corr.Scale(r.B.InvMass()))
		r.B.Rotation -= r.B.InvInertia() * rbCn * lambda
	}
}

// Solve runs the given number of Gauss-Seidel sweeps over the rods in
// slice order. Order is stable so multi-constraint systems converge
// deterministically given identical inputs.
func Solve(rods []*Rod, iterations int) {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	for i := 0; i < iterations; i++ {
		for _, r := range rods {
			r.solve()
		}
	}
}
