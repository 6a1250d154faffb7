// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package index

import (
	"errors"
	"fmt"
	"image/color"
	"slices"

	"github.com/gogpu/frame"
	"github.com/gogpu/frame/render"
)

// ErrInvalidShape is returned when a shape cannot be turned into a scene.
var ErrInvalidShape = errors.New("index: invalid shape")

// Kind selects the geometry of a Shape.
type Kind string

// Shape kinds.
const (
	KindRect    Kind = "rect"
	KindCircle  Kind = "circle"
	KindPolygon Kind = "polygon"
	KindLine    Kind = "line"
)

// Shape is a scene object of the index.
//
// Which geometry fields are read depends on Kind:
//
//	rect     X, Y, W, H
//	circle   X, Y (center), R
//	polygon  Points, at least three
//	line     Points, at least two, drawn as an open polyline
type Shape struct {
	Kind Kind

	X, Y float64
	W, H float64
	R    float64

	Points [][2]float64

	// Fill is the fill color. Nil disables filling.
	Fill color.Color

	// Stroke is the outline color. Nil disables stroking.
	Stroke      color.Color
	StrokeWidth float64

	// Z orders drawables; lower values are drawn first.
	Z int

	// Hidden shapes are tracked but not drawn.
	Hidden bool
}

// clone returns a copy of s that shares no slices with it.
func (s Shape) clone() Shape {
	s.Points = slices.Clone(s.Points)
	return s
}

// Validate reports why s cannot be drawn, or nil.
func (s Shape) Validate() error {
	switch s.Kind {
	case KindRect:
		if s.W <= 0 || s.H <= 0 {
			return fmt.Errorf("%w: rect size %gx%g", ErrInvalidShape, s.W, s.H)
		}
	case KindCircle:
		if s.R <= 0 {
			return fmt.Errorf("%w: circle radius %g", ErrInvalidShape, s.R)
		}
	case KindPolygon:
		if len(s.Points) < 3 {
			return fmt.Errorf("%w: polygon needs 3 points, has %d", ErrInvalidShape, len(s.Points))
		}
	case KindLine:
		if len(s.Points) < 2 {
			return fmt.Errorf("%w: line needs 2 points, has %d", ErrInvalidShape, len(s.Points))
		}
		if s.Stroke == nil {
			return fmt.Errorf("%w: line without stroke color", ErrInvalidShape)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidShape, s.Kind)
	}
	if s.Fill == nil && s.Stroke == nil {
		return fmt.Errorf("%w: neither fill nor stroke", ErrInvalidShape)
	}
	if s.Stroke != nil && s.StrokeWidth <= 0 {
		return fmt.Errorf("%w: stroke width %g", ErrInvalidShape, s.StrokeWidth)
	}
	return nil
}

// BuildScene turns s into a render scene.
func BuildScene(s Shape) (*render.Scene, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	scene := render.NewScene()
	if s.Fill != nil && s.Kind != KindLine {
		scene.SetFillColor(s.Fill)
		addGeometry(scene, s)
		scene.Fill()
	}
	if s.Stroke != nil {
		scene.SetStrokeColor(s.Stroke)
		scene.SetStrokeWidth(s.StrokeWidth)
		addGeometry(scene, s)
		scene.Stroke()
	}
	return scene, nil
}

func addGeometry(scene *render.Scene, s Shape) {
	switch s.Kind {
	case KindRect:
		scene.Rectangle(s.X, s.Y, s.W, s.H)
	case KindCircle:
		scene.Circle(s.X, s.Y, s.R)
	case KindPolygon:
		scene.Polygon(s.Points)
	case KindLine:
		scene.MoveTo(s.Points[0][0], s.Points[0][1])
		for _, p := range s.Points[1:] {
			scene.LineTo(p[0], p[1])
		}
	}
}

// diff returns the dirty bits that turn a into b.
func diff(a, b Shape) frame.DirtyBits {
	bits := frame.Clean
	if a.Kind != b.Kind || a.X != b.X || a.Y != b.Y || a.W != b.W || a.H != b.H ||
		a.R != b.R || !slices.Equal(a.Points, b.Points) {
		bits |= frame.DirtyGeometry
	}
	if !sameColor(a.Fill, b.Fill) || !sameColor(a.Stroke, b.Stroke) || a.StrokeWidth != b.StrokeWidth {
		bits |= frame.DirtyStyle
	}
	if a.Z != b.Z || a.Hidden != b.Hidden {
		bits |= frame.DirtyVisibility
	}
	return bits
}

func sameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}
