package body

import "fmt"

type ShapeKind int

const (
	Circle ShapeKind = iota
	Box
)

func (k ShapeKind) String() string {
	switch k {
	case Circle:
		return "circle"
	case Box:
		return "box"
	}
	return fmt.Sprintf("ShapeKind(%d)", int(k))
}

// Shape is a closed variant over the two supported shape kinds. Circles use
// Radius, boxes use the half extents; the unused fields stay zero. The set
// is fixed, so dispatch is an exhaustive switch on Kind.
type Shape struct {
	Kind   ShapeKind
	Radius float64
	HalfW  float64
	HalfH  float64
}

func NewCircle(radius float64) Shape {
	return Shape{Kind: Circle, Radius: radius}
}

func NewBox(halfW, halfH float64) Shape {
	return Shape{Kind: Box, HalfW: halfW, HalfH: halfH}
}

func (s Shape) validate() error {
	switch s.Kind {
	case Circle:
		if s.Radius <= 0 {
			return fmt.Errorf("circle radius must be positive, got %g", s.Radius)
		}
	case Box:
		if s.HalfW <= 0 || s.HalfH <= 0 {
			return fmt.Errorf("box half extents must be positive, got %g x %g", s.HalfW, s.HalfH)
		}
	default:
		return fmt.Errorf("unknown shape kind %d", int(s.Kind))
	}
	return nil
}

// Inertia returns the moment of inertia about the shape's center for the
// given mass. Circle: 1/2 m r^2. Box: m (w^2 + h^2) / 12 over the full
// extents.
func (s Shape) Inertia(mass float64) float64 {
	switch s.Kind {
	case Circle:
		return 0.5 * mass * s.Radius * s.Radius
	case Box:
		w := 2 * s.HalfW
		h := 2 * s.HalfH
		return mass * (w*w + h*h) / 12
	}
	return 0
}
