// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"
	"math"
)

// Scene is a retained list of fill and stroke commands.
//
// The render index builds one Scene per scene object during discovery and
// stages it on the Delegate. Once staged a Scene should not be mutated;
// the software renderer caches rasterized masks keyed by the scene's
// generation, which every mutation bumps.
//
// Example:
//
//	scene := render.NewScene()
//	scene.SetFillColor(color.RGBA{255, 0, 0, 255})
//	scene.MoveTo(100, 50)
//	scene.LineTo(150, 150)
//	scene.LineTo(50, 150)
//	scene.ClosePath()
//	scene.Fill()
type Scene struct {
	commands []drawCommand

	current pathData

	fillColor   color.Color
	strokeColor color.Color
	strokeWidth float64

	// gen increases on every mutation.
	gen uint64
}

// drawCommand is a single fill of a path with a color. Strokes are
// expanded into fill paths when they are recorded.
type drawCommand struct {
	path   *pathData
	color  color.Color
	bounds image.Rectangle
}

type verb uint8

const (
	verbMoveTo verb = iota
	verbLineTo
	verbQuadTo
	verbCubicTo
	verbClose
)

// pathData accumulates path construction commands.
type pathData struct {
	verbs  []verb
	points []float32
}

// NewScene creates a new empty Scene.
func NewScene() *Scene {
	return &Scene{
		commands:    make([]drawCommand, 0, 4),
		fillColor:   color.Black,
		strokeColor: color.Black,
		strokeWidth: 1.0,
	}
}

// Reset clears the scene for reuse.
func (s *Scene) Reset() {
	s.commands = s.commands[:0]
	s.current = pathData{}
	s.fillColor = color.Black
	s.strokeColor = color.Black
	s.strokeWidth = 1.0
	s.gen++
}

// SetFillColor sets the color for subsequent fill operations.
func (s *Scene) SetFillColor(c color.Color) {
	s.fillColor = c
}

// SetStrokeColor sets the color for subsequent stroke operations.
func (s *Scene) SetStrokeColor(c color.Color) {
	s.strokeColor = c
}

// SetStrokeWidth sets the width for subsequent stroke operations.
func (s *Scene) SetStrokeWidth(width float64) {
	s.strokeWidth = width
}

// MoveTo starts a new subpath at the given point.
func (s *Scene) MoveTo(x, y float64) {
	s.current.verbs = append(s.current.verbs, verbMoveTo)
	s.current.points = append(s.current.points, float32(x), float32(y))
}

// LineTo draws a line from the current point to the given point.
func (s *Scene) LineTo(x, y float64) {
	s.current.verbs = append(s.current.verbs, verbLineTo)
	s.current.points = append(s.current.points, float32(x), float32(y))
}

// QuadTo draws a quadratic Bezier curve.
func (s *Scene) QuadTo(cx, cy, x, y float64) {
	s.current.verbs = append(s.current.verbs, verbQuadTo)
	s.current.points = append(s.current.points,
		float32(cx), float32(cy),
		float32(x), float32(y))
}

// CubicTo draws a cubic Bezier curve.
func (s *Scene) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	s.current.verbs = append(s.current.verbs, verbCubicTo)
	s.current.points = append(s.current.points,
		float32(c1x), float32(c1y),
		float32(c2x), float32(c2y),
		float32(x), float32(y))
}

// ClosePath closes the current subpath.
func (s *Scene) ClosePath() {
	s.current.verbs = append(s.current.verbs, verbClose)
}

// Rectangle adds a rectangle to the current path.
func (s *Scene) Rectangle(x, y, width, height float64) {
	s.MoveTo(x, y)
	s.LineTo(x+width, y)
	s.LineTo(x+width, y+height)
	s.LineTo(x, y+height)
	s.ClosePath()
}

// Circle adds a circle to the current path using cubic Bezier approximation.
func (s *Scene) Circle(cx, cy, r float64) {
	// kappa = 4 * (sqrt(2) - 1) / 3
	const kappa = 0.5522847498307936
	k := r * kappa

	s.MoveTo(cx+r, cy)
	s.CubicTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	s.CubicTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	s.CubicTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	s.CubicTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	s.ClosePath()
}

// Polygon adds a closed polygon through the (x, y) pairs in xy.
// Fewer than two points add nothing.
func (s *Scene) Polygon(xy [][2]float64) {
	if len(xy) < 2 {
		return
	}
	s.MoveTo(xy[0][0], xy[0][1])
	for _, p := range xy[1:] {
		s.LineTo(p[0], p[1])
	}
	s.ClosePath()
}

// Fill records a fill of the current path and clears it.
func (s *Scene) Fill() {
	if len(s.current.verbs) == 0 {
		return
	}
	p := s.current.clone()
	s.commands = append(s.commands, drawCommand{
		path:   p,
		color:  s.fillColor,
		bounds: p.bounds(0),
	})
	s.current = pathData{}
	s.gen++
}

// Stroke records a stroke of the current path and clears it.
// Strokes use butt caps and no joins; a non-positive width records nothing.
func (s *Scene) Stroke() {
	if len(s.current.verbs) == 0 {
		return
	}
	if s.strokeWidth > 0 {
		expanded := expandStroke(&s.current, float32(s.strokeWidth/2))
		if len(expanded.verbs) > 0 {
			s.commands = append(s.commands, drawCommand{
				path:   expanded,
				color:  s.strokeColor,
				bounds: expanded.bounds(0),
			})
		}
	}
	s.current = pathData{}
	s.gen++
}

// IsEmpty returns true if the scene has no commands.
func (s *Scene) IsEmpty() bool {
	return len(s.commands) == 0
}

// CommandCount returns the number of recorded commands.
func (s *Scene) CommandCount() int {
	return len(s.commands)
}

// Bounds returns the pixel rectangle covered by all commands.
func (s *Scene) Bounds() image.Rectangle {
	var r image.Rectangle
	for _, cmd := range s.commands {
		r = r.Union(cmd.bounds)
	}
	return r
}

func (p *pathData) clone() *pathData {
	return &pathData{
		verbs:  append([]verb(nil), p.verbs...),
		points: append([]float32(nil), p.points...),
	}
}

// bounds returns the integer rectangle containing every point of p,
// grown by pad. Control points are included, so curves are covered.
func (p *pathData) bounds(pad float32) image.Rectangle {
	if len(p.points) < 2 {
		return image.Rectangle{}
	}
	minX, minY := p.points[0], p.points[1]
	maxX, maxY := minX, minY
	for i := 2; i+1 < len(p.points); i += 2 {
		x, y := p.points[i], p.points[i+1]
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	return image.Rect(
		int(math.Floor(float64(minX-pad))),
		int(math.Floor(float64(minY-pad))),
		int(math.Ceil(float64(maxX+pad)))+1,
		int(math.Ceil(float64(maxY+pad)))+1,
	)
}

// curveSteps is the number of line segments a curve is split into when a
// stroke is expanded.
const curveSteps = 16

// expandStroke turns every segment of p into a filled quad of the given
// half width. Curves are flattened first.
func expandStroke(p *pathData, halfWidth float32) *pathData {
	out := &pathData{
		verbs:  make([]verb, 0, len(p.verbs)*5),
		points: make([]float32, 0, len(p.points)*8),
	}

	var curX, curY, startX, startY float32
	i := 0
	for _, v := range p.verbs {
		switch v {
		case verbMoveTo:
			curX, curY = p.points[i], p.points[i+1]
			startX, startY = curX, curY
			i += 2
		case verbLineTo:
			x, y := p.points[i], p.points[i+1]
			addSegmentQuad(out, curX, curY, x, y, halfWidth)
			curX, curY = x, y
			i += 2
		case verbQuadTo:
			cx, cy, x, y := p.points[i], p.points[i+1], p.points[i+2], p.points[i+3]
			px, py := curX, curY
			for step := 1; step <= curveSteps; step++ {
				t := float32(step) / curveSteps
				u := 1 - t
				nx := u*u*curX + 2*u*t*cx + t*t*x
				ny := u*u*curY + 2*u*t*cy + t*t*y
				addSegmentQuad(out, px, py, nx, ny, halfWidth)
				px, py = nx, ny
			}
			curX, curY = x, y
			i += 4
		case verbCubicTo:
			c1x, c1y := p.points[i], p.points[i+1]
			c2x, c2y := p.points[i+2], p.points[i+3]
			x, y := p.points[i+4], p.points[i+5]
			px, py := curX, curY
			for step := 1; step <= curveSteps; step++ {
				t := float32(step) / curveSteps
				u := 1 - t
				nx := u*u*u*curX + 3*u*u*t*c1x + 3*u*t*t*c2x + t*t*t*x
				ny := u*u*u*curY + 3*u*u*t*c1y + 3*u*t*t*c2y + t*t*t*y
				addSegmentQuad(out, px, py, nx, ny, halfWidth)
				px, py = nx, ny
			}
			curX, curY = x, y
			i += 6
		case verbClose:
			if curX != startX || curY != startY {
				addSegmentQuad(out, curX, curY, startX, startY, halfWidth)
			}
			curX, curY = startX, startY
		}
	}
	return out
}

// addSegmentQuad appends the rectangle around the segment (x0,y0)-(x1,y1).
// All quads share one winding direction so overlaps stay filled.
func addSegmentQuad(p *pathData, x0, y0, x1, y1, halfWidth float32) {
	dx, dy := x1-x0, y1-y0
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 1e-6 {
		return
	}
	nx := -dy / length * halfWidth
	ny := dx / length * halfWidth

	p.verbs = append(p.verbs, verbMoveTo, verbLineTo, verbLineTo, verbLineTo, verbClose)
	p.points = append(p.points,
		x0+nx, y0+ny,
		x1+nx, y1+ny,
		x1-nx, y1-ny,
		x0-nx, y0-ny,
	)
}
