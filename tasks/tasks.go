// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package tasks provides the stock tasks of a frame.
//
// A typical frame runs them in this order:
//
//	setup    publishes the render target and renderer
//	clear    fills the target with a background color
//	draw     renders the committed drawables
//	present  encodes the target to PNG
//
// Tasks talk to each other only through the task context. SetupTask
// publishes under TokenRenderTarget and TokenRenderer in Prepare, so every
// later task can bind to them in its own Prepare and use them in Execute.
package tasks

import (
	"image/color"

	"github.com/gogpu/frame"
	"github.com/gogpu/frame/render"
)

// Context tokens published by the stock tasks.
var (
	// TokenRenderTarget holds the frame's *render.PixmapTarget.
	TokenRenderTarget = frame.NewToken("renderTarget")

	// TokenRenderer holds the frame's render.Renderer.
	TokenRenderer = frame.NewToken("renderer")

	// TokenFrameCount holds the number of frames SetupTask has executed.
	TokenFrameCount = frame.NewToken("frameCount")
)

// SetupTask owns the render target and renderer of a frame.
//
// The renderer is picked from the drivers the engine seeds under
// frame.TokenDrivers unless Renderer is set.
type SetupTask struct {
	Width, Height int

	// Renderer overrides renderer selection.
	Renderer render.Renderer

	target   *render.PixmapTarget
	selected render.Renderer
	frames   int
}

// NewSetupTask creates a setup task for a width x height target.
func NewSetupTask(width, height int) *SetupTask {
	return &SetupTask{Width: width, Height: height}
}

// Sync drops the selected renderer when parameters change so the next
// Prepare selects again.
func (t *SetupTask) Sync(_ *frame.TaskContext, dirty frame.DirtyBits) {
	if dirty&frame.DirtyParams != 0 {
		t.selected = nil
	}
}

// Prepare publishes the target and renderer.
func (t *SetupTask) Prepare(ctx *frame.TaskContext, _ frame.RenderIndex) {
	if t.target == nil {
		t.target = render.NewPixmapTarget(t.Width, t.Height)
	} else {
		t.target.Resize(t.Width, t.Height)
	}
	r := t.Renderer
	if r == nil {
		if t.selected == nil {
			drivers, _ := frame.Lookup[frame.Drivers](ctx, frame.TokenDrivers)
			t.selected = render.SelectRenderer(drivers)
		}
		r = t.selected
	}
	ctx.Set(TokenRenderTarget, frame.NewValue(t.target))
	ctx.Set(TokenRenderer, frame.NewValue(r))
}

// Execute counts the frame.
func (t *SetupTask) Execute(ctx *frame.TaskContext) {
	t.frames++
	ctx.Set(TokenFrameCount, frame.NewValue(t.frames))
}

// Target returns the target, or nil before the first Prepare.
func (t *SetupTask) Target() *render.PixmapTarget { return t.target }

// Frames returns the number of executed frames.
func (t *SetupTask) Frames() int { return t.frames }

// ClearTask fills the render target with Color.
type ClearTask struct {
	Color color.Color

	target *render.PixmapTarget
}

// NewClearTask creates a clear task.
func NewClearTask(c color.Color) *ClearTask {
	return &ClearTask{Color: c}
}

// Prepare binds the render target.
func (t *ClearTask) Prepare(ctx *frame.TaskContext, _ frame.RenderIndex) {
	t.target, _ = frame.Lookup[*render.PixmapTarget](ctx, TokenRenderTarget)
}

// Execute clears the target. Without a target it does nothing.
func (t *ClearTask) Execute(*frame.TaskContext) {
	if t.target == nil {
		frame.Logger().Warn("tasks: clear without render target")
		return
	}
	c := t.Color
	if c == nil {
		c = color.Transparent
	}
	t.target.Clear(c)
}

// FuncTask adapts two functions to frame.Task. Nil functions are skipped.
type FuncTask struct {
	PrepareFunc func(ctx *frame.TaskContext, index frame.RenderIndex)
	ExecuteFunc func(ctx *frame.TaskContext)
}

// Prepare calls PrepareFunc.
func (t *FuncTask) Prepare(ctx *frame.TaskContext, index frame.RenderIndex) {
	if t.PrepareFunc != nil {
		t.PrepareFunc(ctx, index)
	}
}

// Execute calls ExecuteFunc.
func (t *FuncTask) Execute(ctx *frame.TaskContext) {
	if t.ExecuteFunc != nil {
		t.ExecuteFunc(ctx)
	}
}

var (
	_ frame.Task       = (*SetupTask)(nil)
	_ frame.TaskSyncer = (*SetupTask)(nil)
	_ frame.Task       = (*ClearTask)(nil)
	_ frame.Task       = (*FuncTask)(nil)
)
