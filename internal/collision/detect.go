package collision

import (
	"math"

	"github.com/san-kum/planar/internal/body"
	"github.com/san-kum/planar/internal/vec"
)

// Contact describes one overlapping pair. Normal points from A to B;
// resolution pushes A along -Normal and B along +Normal.
type Contact struct {
	A, B        *body.Body
	Normal      vec.Vec2
	Penetration float64
	Point       vec.Vec2
}

// Detect scans all ordered body pairs and returns contacts in insertion
// order. The broad phase is the exhaustive O(n^2) scan; fine at sandbox
// scale.
func Detect(bodies []*body.Body) []Contact {
	var contacts []Contact
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if a.Pinned() && b.Pinned() {
				continue
			}
			if c, ok := collide(a, b); ok {
				contacts = append(contacts, c)
			}
		}
	}
	return contacts
}

func collide(a, b *body.Body) (Contact, bool) {
	switch {
	case a.Shape.Kind == body.Circle && b.Shape.Kind == body.Circle:
		return circleCircle(a, b)
	case a.Shape.Kind == body.Circle && b.Shape.Kind == body.Box:
		c, ok := boxCircle(b, a)
		if !ok {
			return Contact{}, false
		}
		// boxCircle reports box->circle; flip to keep A=a.
		return Contact{A: a, B: b, Normal: c.Normal.Neg(), Penetration: c.Penetration, Point: c.Point}, true
	case a.Shape.Kind == body.Box && b.Shape.Kind == body.Circle:
		return boxCircle(a, b)
	default:
		return boxBox(a, b)
	}
}

func circleCircle(a, b *body.Body) (Contact, bool) {
	delta := b.Position.Sub(a.Position)
	rsum := a.Shape.Radius + b.Shape.Radius
	distSq := delta.LenSq()
	if distSq >= rsum*rsum {
		return Contact{}, false
	}

	dist := math.Sqrt(distSq)
	normal := vec.Vec2{X: 1} // arbitrary direction for coincident centers
	if dist > 0 {
		normal = delta.Scale(1 / dist)
	}
	return Contact{
		A:           a,
		B:           b,
		Normal:      normal,
		Penetration: rsum - dist,
		Point:       a.Position.Add(normal.Scale(a.Shape.Radius)),
	}, true
}

// boxCircle reports the contact with A=box, B=circle, normal box->circle.
func boxCircle(bx, c *body.Body) (Contact, bool) {
	// Circle center in the box's local frame.
	local := c.Position.Sub(bx.Position).Rotate(-bx.Rotation)

	clamped := vec.Vec2{
		X: math.Max(-bx.Shape.HalfW, math.Min(local.X, bx.Shape.HalfW)),
		Y: math.Max(-bx.Shape.HalfH, math.Min(local.Y, bx.Shape.HalfH)),
	}

	inside := clamped == local
	if inside {
		// Center inside the box: push out through the nearest face.
		dx := bx.Shape.HalfW - math.Abs(local.X)
		dy := bx.Shape.HalfH - math.Abs(local.Y)
		if dx < dy {
			clamped.X = math.Copysign(bx.Shape.HalfW, local.X)
		} else {
			clamped.Y = math.Copysign(bx.Shape.HalfH, local.Y)
		}
	}

	diff := local.Sub(clamped)
	dist := diff.Len()
	radius := c.Shape.Radius
	if !inside && dist >= radius {
		return Contact{}, false
	}

	var nLocal vec.Vec2
	var pen float64
	if inside {
		// diff points inward from the face; the face normal is its
		// opposite. Depth past the face adds to the overlap.
		nLocal = diff.Neg().Normalize()
		if nLocal == (vec.Vec2{}) {
			nLocal = vec.Vec2{X: 1} // center exactly on the face
		}
		pen = radius + dist
	} else {
		nLocal = diff.Scale(1 / dist)
		pen = radius - dist
	}

	return Contact{
		A:           bx,
		B:           c,
		Normal:      nLocal.Rotate(bx.Rotation),
		Penetration: pen,
		Point:       bx.Position.Add(clamped.Rotate(bx.Rotation)),
	}, true
}

func boxCorners(b *body.Body) [4]vec.Vec2 {
	hw, hh := b.Shape.HalfW, b.Shape.HalfH
	locals := [4]vec.Vec2{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}
	var out [4]vec.Vec2
	for i, l := range locals {
		out[i] = b.Position.Add(l.Rotate(b.Rotation))
	}
	return out
}

func boxAxes(b *body.Body) [2]vec.Vec2 {
	return [2]vec.Vec2{
		vec.Vec2{X: 1}.Rotate(b.Rotation),
		vec.Vec2{Y: 1}.Rotate(b.Rotation),
	}
}

func project(corners [4]vec.Vec2, axis vec.Vec2) (float64, float64) {
	min := corners[0].Dot(axis)
	max := min
	for _, c := range corners[1:] {
		d := c.Dot(axis)
		if d < min {
			min = d
		} else if d > max {
			max = d
		}
	}
	return min, max
}

// boxBox runs SAT over both boxes' face normals (4 candidate axes). The
// separating axis of minimum overlap gives the contact normal, oriented
// from A to B.
func boxBox(a, b *body.Body) (Contact, bool) {
	cornersA := boxCorners(a)
	cornersB := boxCorners(b)
	axesA := boxAxes(a)
	axesB := boxAxes(b)

	minOverlap := math.Inf(1)
	var minAxis vec.Vec2

	for _, axis := range [4]vec.Vec2{axesA[0], axesA[1], axesB[0], axesB[1]} {
		minA, maxA := project(cornersA, axis)
		minB, maxB := project(cornersB, axis)
		overlap := math.Min(maxA, maxB) - math.Max(minA, minB)
		if overlap <= 0 {
			return Contact{}, false
		}
		if overlap < minOverlap {
			minOverlap = overlap
			minAxis = axis
		}
	}

	// Orient the normal from A toward B.
	if minAxis.Dot(b.Position.Sub(a.Position)) < 0 {
		minAxis = minAxis.Neg()
	}

	// Single-point manifold: the corner of B deepest against the normal.
	point := cornersB[0]
	depth := point.Dot(minAxis)
	for _, c := range cornersB[1:] {
		if d := c.Dot(minAxis); d < depth {
			depth = d
			point = c
		}
	}

	return Contact{
		A:           a,
		B:           b,
		Normal:      minAxis,
		Penetration: minOverlap,
		Point:       point,
	}, true
}
