// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"image/color"
	"maps"
	"slices"
	"sync"

	"github.com/gogpu/frame"
	"github.com/gogpu/frame/tasks"
)

// Env is what a task factory knows about the frame being built.
type Env struct {
	Width, Height int
}

// Factory creates a task from its block parameters.
type Factory func(env Env, params Params) (frame.Task, error)

// Registry maps task types to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register registers a factory for typ.
// If typ is already registered, it will be replaced.
func (r *Registry) Register(typ string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[typ] = f
}

// Unregister removes typ from the registry.
func (r *Registry) Unregister(typ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.factories, typ)
}

// Lookup returns the factory for typ.
func (r *Registry) Lookup(typ string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[typ]
	return f, ok
}

// Types returns the registered task types, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.factories))
}

// DefaultRegistry holds the stock task types:
//
//	setup    width, height (default: the target size)
//	clear    color (default "#000000")
//	draw
//	present  output, width, height (scaled size)
var DefaultRegistry = NewStockRegistry()

// NewStockRegistry returns a registry with the stock task types.
func NewStockRegistry() *Registry {
	r := NewRegistry()
	r.Register("setup", newSetupTask)
	r.Register("clear", newClearTask)
	r.Register("draw", newDrawTask)
	r.Register("present", newPresentTask)
	return r
}

func newSetupTask(env Env, p Params) (frame.Task, error) {
	if err := p.Check("width", "height"); err != nil {
		return nil, err
	}
	w, err := p.Int("width", env.Width)
	if err != nil {
		return nil, err
	}
	h, err := p.Int("height", env.Height)
	if err != nil {
		return nil, err
	}
	return tasks.NewSetupTask(w, h), nil
}

func newClearTask(_ Env, p Params) (frame.Task, error) {
	if err := p.Check("color"); err != nil {
		return nil, err
	}
	c, err := p.Color("color", color.NRGBA{A: 255})
	if err != nil {
		return nil, err
	}
	return tasks.NewClearTask(c), nil
}

func newDrawTask(_ Env, p Params) (frame.Task, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}
	return tasks.NewDrawTask(), nil
}

func newPresentTask(_ Env, p Params) (frame.Task, error) {
	if err := p.Check("output", "width", "height"); err != nil {
		return nil, err
	}
	out, err := p.String("output", "")
	if err != nil {
		return nil, err
	}
	t := tasks.NewPresentTask(out)
	if t.Width, err = p.Int("width", 0); err != nil {
		return nil, err
	}
	if t.Height, err = p.Int("height", 0); err != nil {
		return nil, err
	}
	return t, nil
}
