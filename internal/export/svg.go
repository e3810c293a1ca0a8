// Package export renders snapshots and trajectories to standalone files.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/planar/internal/world"
)

// SnapshotToSVG renders one frame as SVG: circles as circles, boxes as
// rotated rects, rods as lines. World Y is flipped so up stays up.
func SnapshotToSVG(bodies []world.BodyState, rods []world.RodState, width, height int) string {
	minX, minY, maxX, maxY := bounds(bodies, rods)

	rangeX := maxX - minX
	rangeY := maxY - minY
	scale := math.Min(float64(width)/rangeX, float64(height)/rangeY)

	px := func(x float64) float64 { return (x - minX) * scale }
	py := func(y float64) float64 { return float64(height) - (y-minY)*scale }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, rod := range rods {
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#888888" stroke-width="1.5"/>
`, px(rod.A.X), py(rod.A.Y), px(rod.B.X), py(rod.B.Y)))
	}

	for _, b := range bodies {
		fill := "#00ccff"
		if b.Pinned {
			fill = "#666688"
		}
		switch b.Shape.Kind {
		case "circle":
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, px(b.Position.X), py(b.Position.Y), b.Shape.Radius*scale, fill))
		case "box":
			w := 2 * b.Shape.HalfW * scale
			h := 2 * b.Shape.HalfH * scale
			cx := px(b.Position.X)
			cy := py(b.Position.Y)
			// Screen Y is flipped, so the rotation flips sign too.
			deg := -b.Rotation * 180 / math.Pi
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" transform="rotate(%.2f %.1f %.1f)"/>
`, cx-w/2, cy-h/2, w, h, fill, deg, cx, cy))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectoryToSVG draws one body's path through a run as a polyline.
func TrajectoryToSVG(xs, ys []float64, width, height int, strokeColor string) string {
	if len(xs) < 2 || len(xs) != len(ys) {
		return ""
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := range xs {
		minX = math.Min(minX, xs[i])
		maxX = math.Max(maxX, xs[i])
		minY = math.Min(minY, ys[i])
		maxY = math.Max(maxY, ys[i])
	}
	minX, maxX = pad(minX, maxX)
	minY, maxY = pad(minY, maxY)
	rangeX := maxX - minX
	rangeY := maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := range xs {
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (ys[i]-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func pad(min, max float64) (float64, float64) {
	r := max - min
	if r == 0 {
		r = 1
	}
	return min - r*0.1, max + r*0.1
}

func bounds(bodies []world.BodyState, rods []world.RodState) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)

	extend := func(x, y, margin float64) {
		minX = math.Min(minX, x-margin)
		maxX = math.Max(maxX, x+margin)
		minY = math.Min(minY, y-margin)
		maxY = math.Max(maxY, y+margin)
	}

	for _, b := range bodies {
		margin := b.Shape.Radius
		if b.Shape.Kind == "box" {
			margin = math.Hypot(b.Shape.HalfW, b.Shape.HalfH)
		}
		extend(b.Position.X, b.Position.Y, margin)
	}
	for _, rod := range rods {
		extend(rod.A.X, rod.A.Y, 0)
		extend(rod.B.X, rod.B.Y, 0)
	}

	if math.IsInf(minX, 1) {
		return -1, -1, 1, 1
	}
	minX, maxX = pad(minX, maxX)
	minY, maxY = pad(minY, maxY)
	return minX, minY, maxX, maxY
}
