// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/frame"
)

// Renderer draws committed drawables into a render target.
//
// Renderers are NOT thread-safe. The engine runs tasks one at a time, so a
// renderer shared through the task context needs no locking.
type Renderer interface {
	// Render draws drawables onto target in slice order.
	Render(target RenderTarget, drawables []Drawable) error

	// Flush ensures all pending rendering operations are complete.
	Flush() error
}

// RendererCapabilities describes the features supported by a renderer.
type RendererCapabilities struct {
	// IsGPU indicates if this is a GPU-accelerated renderer.
	IsGPU bool

	// SupportsAntialiasing indicates if anti-aliased rendering is supported.
	SupportsAntialiasing bool

	// CachesMasks indicates if rasterized coverage is reused across frames.
	CachesMasks bool
}

// CapableRenderer is an optional interface for renderers that can
// report their capabilities.
type CapableRenderer interface {
	Renderer

	// Capabilities returns the renderer's capabilities.
	Capabilities() RendererCapabilities
}

// SelectRenderer picks a renderer for the given drivers.
//
// There is no GPU pipeline yet: when a driver carries a GPU device the
// choice is logged and the software renderer is returned.
func SelectRenderer(drivers frame.Drivers) Renderer {
	if gpu := FirstGPU(drivers); gpu != nil {
		frame.Logger().Warn("render: GPU driver present but no GPU pipeline, using software renderer",
			"driver", gpu.Name.String())
	}
	return NewSoftwareRenderer()
}
