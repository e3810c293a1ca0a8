// Package viz renders world snapshots onto a Braille pixel canvas for
// terminal display.
package viz

import (
	"math"

	"github.com/san-kum/planar/internal/vec"
	"github.com/san-kum/planar/internal/world"
)

// View maps a rectangle of world space onto the canvas. Y grows upward
// in world space and downward on the canvas.
type View struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// DefaultView frames the origin with a 4:3-ish aspect that reads well in
// an 80-column terminal.
func DefaultView() View {
	return View{MinX: -10, MinY: -6, MaxX: 10, MaxY: 9}
}

// Renderer draws bodies and rods into a fixed-size canvas.
type Renderer struct {
	canvas *Canvas
	view   View
}

func NewRenderer(width, height int, view View) *Renderer {
	return &Renderer{canvas: NewCanvas(width, height), view: view}
}

func (r *Renderer) SetView(view View) { r.view = view }

// Render clears the canvas, draws every rod and body, and returns the
// frame as a string.
func (r *Renderer) Render(bodies []world.BodyState, rods []world.RodState) string {
	r.canvas.Clear()

	for _, rod := range rods {
		x0, y0 := r.project(rod.A)
		x1, y1 := r.project(rod.B)
		r.canvas.DrawLine(x0, y0, x1, y1)
	}
	for _, b := range bodies {
		switch b.Shape.Kind {
		case "circle":
			r.drawCircle(b.Position, b.Shape.Radius)
		case "box":
			r.drawBox(b.Position, b.Rotation, b.Shape.HalfW, b.Shape.HalfH)
		}
	}

	return r.canvas.String()
}

func (r *Renderer) project(p vec.Vec2) (int, int) {
	subW := float64(r.canvas.Width * 2)
	subH := float64(r.canvas.Height * 4)
	x := (p.X - r.view.MinX) / (r.view.MaxX - r.view.MinX) * subW
	y := (r.view.MaxY - p.Y) / (r.view.MaxY - r.view.MinY) * subH
	return int(math.Round(x)), int(math.Round(y))
}

func (r *Renderer) drawCircle(center vec.Vec2, radius float64) {
	// Enough segments that a radius-5 circle still looks round at
	// sub-pixel resolution.
	const segments = 32
	prev := center.Add(vec.Vec2{X: radius})
	for i := 1; i <= segments; i++ {
		angle := 2 * math.Pi * float64(i) / segments
		next := center.Add(vec.Vec2{X: radius}.Rotate(angle))
		x0, y0 := r.project(prev)
		x1, y1 := r.project(next)
		r.canvas.DrawLine(x0, y0, x1, y1)
		prev = next
	}
}

func (r *Renderer) drawBox(center vec.Vec2, rotation, halfW, halfH float64) {
	corners := [4]vec.Vec2{
		{X: -halfW, Y: -halfH},
		{X: halfW, Y: -halfH},
		{X: halfW, Y: halfH},
		{X: -halfW, Y: halfH},
	}
	for i := range corners {
		corners[i] = center.Add(corners[i].Rotate(rotation))
	}
	for i := 0; i < 4; i++ {
		x0, y0 := r.project(corners[i])
		x1, y1 := r.project(corners[(i+1)%4])
		r.canvas.DrawLine(x0, y0, x1, y1)
	}
}
