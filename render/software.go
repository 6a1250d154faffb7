// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image"
	"image/draw"

	"golang.org/x/image/vector"
)

// Errors returned by SoftwareRenderer.Render.
var (
	// ErrNilTarget is returned when Render is called without a target.
	ErrNilTarget = errors.New("render: nil target")

	// ErrNoCPUAccess is returned for targets without a CPU pixel buffer.
	ErrNoCPUAccess = errors.New("render: target does not support CPU rendering")
)

// SoftwareRenderer is a CPU renderer built on golang.org/x/image/vector.
//
// Each scene command is rasterized into an anti-aliased coverage mask and
// composited onto the target with draw.Over. Masks are cached per scene
// generation, so drawables that did not change since the last frame are
// composited without being rasterized again.
//
// Example:
//
//	renderer := render.NewSoftwareRenderer()
//	target := render.NewPixmapTarget(800, 600)
//	if err := renderer.Render(target, delegate.Drawables()); err != nil {
//		return err
//	}
//	img := target.Image()
type SoftwareRenderer struct {
	// z is reused between commands.
	z *vector.Rasterizer

	masks *maskCache
}

// NewSoftwareRenderer creates a new CPU-based software renderer.
func NewSoftwareRenderer() *SoftwareRenderer {
	return NewSoftwareRendererWithCache(defaultMaskCacheLimit)
}

// NewSoftwareRendererWithCache creates a software renderer whose mask cache
// holds about limit masks. A limit of zero or less disables eviction.
func NewSoftwareRendererWithCache(limit int) *SoftwareRenderer {
	return &SoftwareRenderer{
		z:     vector.NewRasterizer(0, 0),
		masks: newMaskCache(limit),
	}
}

// Render draws drawables onto target in slice order.
//
// Drawables with a nil or empty scene are skipped.
func (r *SoftwareRenderer) Render(target RenderTarget, drawables []Drawable) error {
	if target == nil {
		return ErrNilTarget
	}
	img := target.Image()
	if img == nil {
		return ErrNoCPUAccess
	}

	for _, d := range drawables {
		if d.Scene == nil || d.Scene.IsEmpty() {
			continue
		}
		r.renderScene(img, d.Scene)
	}
	return nil
}

func (r *SoftwareRenderer) renderScene(dst *image.RGBA, s *Scene) {
	for i, cmd := range s.commands {
		area := cmd.bounds.Intersect(dst.Bounds())
		if area.Empty() {
			continue
		}

		key := maskKey{scene: s, gen: s.gen, cmd: i, area: area}
		mask, ok := r.masks.get(key)
		if !ok {
			mask = r.rasterize(cmd.path, area)
			r.masks.put(key, mask)
		}

		draw.DrawMask(dst, area, image.NewUniform(cmd.color), image.Point{}, mask, image.Point{}, draw.Over)
	}
}

// rasterize returns the coverage of p inside area. The mask's origin is
// area.Min.
func (r *SoftwareRenderer) rasterize(p *pathData, area image.Rectangle) *image.Alpha {
	w, h := area.Dx(), area.Dy()
	ox, oy := float32(area.Min.X), float32(area.Min.Y)

	z := r.z
	z.Reset(w, h)

	open := false
	i := 0
	for _, v := range p.verbs {
		switch v {
		case verbMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(p.points[i]-ox, p.points[i+1]-oy)
			open = true
			i += 2
		case verbLineTo:
			z.LineTo(p.points[i]-ox, p.points[i+1]-oy)
			i += 2
		case verbQuadTo:
			z.QuadTo(
				p.points[i]-ox, p.points[i+1]-oy,
				p.points[i+2]-ox, p.points[i+3]-oy)
			i += 4
		case verbCubicTo:
			z.CubeTo(
				p.points[i]-ox, p.points[i+1]-oy,
				p.points[i+2]-ox, p.points[i+3]-oy,
				p.points[i+4]-ox, p.points[i+5]-oy)
			i += 6
		case verbClose:
			z.ClosePath()
			open = false
		}
	}
	if open {
		z.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// Flush ensures all rendering is complete.
// For the software renderer, this is a no-op as operations are synchronous.
func (r *SoftwareRenderer) Flush() error {
	return nil
}

// Capabilities returns the renderer's capabilities.
func (r *SoftwareRenderer) Capabilities() RendererCapabilities {
	return RendererCapabilities{
		IsGPU:                false,
		SupportsAntialiasing: true,
		CachesMasks:          true,
	}
}

// MaskCacheStats returns the state of the renderer's mask cache.
func (r *SoftwareRenderer) MaskCacheStats() MaskCacheStats {
	return r.masks.stats()
}

// ResetCache drops every cached mask.
func (r *SoftwareRenderer) ResetCache() {
	r.masks.clear()
}

// Ensure SoftwareRenderer implements Renderer and CapableRenderer.
var (
	_ Renderer        = (*SoftwareRenderer)(nil)
	_ CapableRenderer = (*SoftwareRenderer)(nil)
)
