// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tasks

import (
	"errors"

	"github.com/gogpu/frame"
	"github.com/gogpu/frame/render"
)

// Errors reported by Err.
var (
	ErrNoTarget   = errors.New("tasks: no render target bound")
	ErrNoRenderer = errors.New("tasks: no renderer bound")
	ErrNoSource   = errors.New("tasks: render index has no drawable source")
	ErrNoOutput   = errors.New("tasks: present has no output")
)

// DrawTask renders the committed drawables of the render delegate.
//
// Prepare binds the target, the renderer and the delegate. Drawables are
// read in Execute, after the commit phase, so a frame always draws the
// scene it synced.
type DrawTask struct {
	// Source overrides the delegate of the render index.
	Source render.DrawableSource

	target   render.RenderTarget
	renderer render.Renderer
	source   render.DrawableSource

	drawn int
	err   error
}

// NewDrawTask creates a draw task.
func NewDrawTask() *DrawTask {
	return &DrawTask{}
}

// Prepare binds the task's inputs.
func (t *DrawTask) Prepare(ctx *frame.TaskContext, index frame.RenderIndex) {
	t.target, _ = frame.Lookup[render.RenderTarget](ctx, TokenRenderTarget)
	t.renderer, _ = frame.Lookup[render.Renderer](ctx, TokenRenderer)

	t.source = t.Source
	if t.source == nil && index != nil {
		t.source, _ = index.RenderDelegate().(render.DrawableSource)
	}
}

// Execute renders. Failures are logged and kept for Err.
func (t *DrawTask) Execute(*frame.TaskContext) {
	t.drawn = 0
	t.err = t.draw()
	if t.err != nil {
		frame.Logger().Warn("tasks: draw failed", "err", t.err)
	}
}

func (t *DrawTask) draw() error {
	switch {
	case t.target == nil:
		return ErrNoTarget
	case t.renderer == nil:
		return ErrNoRenderer
	case t.source == nil:
		return ErrNoSource
	}

	drawables := t.source.Drawables()
	if err := t.renderer.Render(t.target, drawables); err != nil {
		return err
	}
	t.drawn = len(drawables)
	return t.renderer.Flush()
}

// Drawn returns the number of drawables rendered by the last Execute.
func (t *DrawTask) Drawn() int { return t.drawn }

// Err returns the error of the last Execute.
func (t *DrawTask) Err() error { return t.err }

var _ frame.Task = (*DrawTask)(nil)
