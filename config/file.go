// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads frame descriptions written in HCL.
//
// A frame description declares the render target, the drivers, the shapes
// of the scene, the tasks and the order the tasks execute in:
//
//	target {
//	  width  = 320
//	  height = 240
//	}
//
//	driver "cpu" {}
//
//	shape "/world/sun" {
//	  kind   = "circle"
//	  x      = 80
//	  y      = 60
//	  radius = 30
//	  fill   = "#ffcc00"
//	  z      = 1
//	}
//
//	task "/tasks/setup" { type = "setup" }
//	task "/tasks/draw" { type = "draw" }
//
//	task "/tasks/clear" {
//	  type  = "clear"
//	  color = "#101830"
//	}
//
//	task "/tasks/present" {
//	  type   = "present"
//	  output = "frame.png"
//	}
//
//	execute = ["/tasks/setup", "/tasks/clear", "/tasks/draw", "/tasks/present"]
//
// Every attribute of a task block other than type is handed to the task
// type's Factory as Params. Without an execute list all tasks run in
// declaration order.
package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/gogpu/frame"
	"github.com/gogpu/frame/index"
	"github.com/gogpu/frame/render"
)

// Default target size when a file has no target block.
const (
	DefaultWidth  = 256
	DefaultHeight = 256
)

// File is a decoded frame description.
type File struct {
	Target  *TargetBlock   `hcl:"target,block"`
	Drivers []*DriverBlock `hcl:"driver,block"`
	Shapes  []*ShapeBlock  `hcl:"shape,block"`
	Tasks   []*TaskBlock   `hcl:"task,block"`
	Execute []string       `hcl:"execute,optional"`

	// Filename is the name the file was parsed under.
	Filename string
}

// TargetBlock is the `target` block.
type TargetBlock struct {
	Width  int `hcl:"width"`
	Height int `hcl:"height"`
}

// DriverBlock is a `driver "name" {}` block. Drivers declared in files are
// CPU drivers; GPU devices are handed to the index by the host.
type DriverBlock struct {
	Name string `hcl:"name,label"`
}

// ShapeBlock is a `shape "path" {...}` block.
type ShapeBlock struct {
	Path string `hcl:"path,label"`
	Kind string `hcl:"kind"`

	X      float64     `hcl:"x,optional"`
	Y      float64     `hcl:"y,optional"`
	Width  float64     `hcl:"width,optional"`
	Height float64     `hcl:"height,optional"`
	Radius float64     `hcl:"radius,optional"`
	Points [][]float64 `hcl:"points,optional"`

	Fill        *string `hcl:"fill,optional"`
	Stroke      *string `hcl:"stroke,optional"`
	StrokeWidth float64 `hcl:"stroke_width,optional"`

	Z      int  `hcl:"z,optional"`
	Hidden bool `hcl:"hidden,optional"`
}

// TaskBlock is a `task "path" {...}` block.
type TaskBlock struct {
	Path   string   `hcl:"path,label"`
	Type   string   `hcl:"type"`
	Remain hcl.Body `hcl:",remain"`
}

// Parse decodes a frame description from src.
// filename is used in diagnostics.
func Parse(src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parse %s: %w", filename, diags)
	}
	return decode(f, filename)
}

// Load reads and decodes the frame description at path.
func Load(path string) (*File, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parse %s: %w", path, diags)
	}
	return decode(f, path)
}

func decode(f *hcl.File, filename string) (*File, error) {
	var file File
	if diags := gohcl.DecodeBody(f.Body, nil, &file); diags.HasErrors() {
		return nil, fmt.Errorf("config: decode %s: %w", filename, diags)
	}
	file.Filename = filename

	frame.Logger().Debug("config: decoded frame description",
		"file", filename,
		"drivers", len(file.Drivers),
		"shapes", len(file.Shapes),
		"tasks", len(file.Tasks))
	return &file, nil
}

// Env returns the environment task factories see.
func (f *File) Env() Env {
	if f.Target == nil {
		return Env{Width: DefaultWidth, Height: DefaultHeight}
	}
	return Env{Width: f.Target.Width, Height: f.Target.Height}
}

// ExecutePaths returns the execute list, or every task path in declaration
// order when the list is empty.
func (f *File) ExecutePaths() []frame.Path {
	paths := make([]frame.Path, 0, max(len(f.Execute), len(f.Tasks)))
	if len(f.Execute) > 0 {
		for _, p := range f.Execute {
			paths = append(paths, frame.Path(p))
		}
		return paths
	}
	for _, t := range f.Tasks {
		paths = append(paths, frame.Path(t.Path))
	}
	return paths
}

// Build creates the render index the file describes, staging on delegate,
// and returns it with the execute paths.
//
// Paths in the execute list are not checked against the tasks; the engine
// skips and logs the ones that do not resolve.
func (f *File) Build(reg *Registry, delegate index.Stager) (*index.Index, []frame.Path, error) {
	if reg == nil {
		reg = DefaultRegistry
	}
	env := f.Env()
	if env.Width <= 0 || env.Height <= 0 {
		return nil, nil, fmt.Errorf("%w: %dx%d", ErrInvalidTarget, env.Width, env.Height)
	}

	drivers := make([]*frame.Driver, 0, len(f.Drivers))
	for _, d := range f.Drivers {
		drivers = append(drivers, render.CPUDriver(d.Name))
	}
	ix := index.New(delegate, drivers...)

	for _, sb := range f.Shapes {
		s, err := sb.shape()
		if err != nil {
			return nil, nil, fmt.Errorf("config: %s: shape %q: %w", f.Filename, sb.Path, err)
		}
		if err := ix.InsertShape(frame.Path(sb.Path), s); err != nil {
			return nil, nil, fmt.Errorf("config: %s: shape %q: %w", f.Filename, sb.Path, err)
		}
	}

	for _, tb := range f.Tasks {
		task, err := tb.build(reg, env)
		if err != nil {
			return nil, nil, fmt.Errorf("config: %s: task %q: %w", f.Filename, tb.Path, err)
		}
		if err := ix.InsertTask(frame.Path(tb.Path), task); err != nil {
			return nil, nil, fmt.Errorf("config: %s: task %q: %w", f.Filename, tb.Path, err)
		}
	}

	return ix, f.ExecutePaths(), nil
}

func (sb *ShapeBlock) shape() (index.Shape, error) {
	s := index.Shape{
		Kind:        index.Kind(sb.Kind),
		X:           sb.X,
		Y:           sb.Y,
		W:           sb.Width,
		H:           sb.Height,
		R:           sb.Radius,
		StrokeWidth: sb.StrokeWidth,
		Z:           sb.Z,
		Hidden:      sb.Hidden,
	}
	for i, p := range sb.Points {
		if len(p) != 2 {
			return s, fmt.Errorf("%w: point %d has %d coordinates", index.ErrInvalidShape, i, len(p))
		}
		s.Points = append(s.Points, [2]float64{p[0], p[1]})
	}
	if sb.Fill != nil {
		c, err := ParseColor(*sb.Fill)
		if err != nil {
			return s, err
		}
		s.Fill = c
	}
	if sb.Stroke != nil {
		c, err := ParseColor(*sb.Stroke)
		if err != nil {
			return s, err
		}
		s.Stroke = c
		if s.StrokeWidth == 0 {
			s.StrokeWidth = 1
		}
	}
	return s, s.Validate()
}

func (tb *TaskBlock) build(reg *Registry, env Env) (frame.Task, error) {
	factory, ok := reg.Lookup(tb.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTaskType, tb.Type)
	}
	params, err := tb.params()
	if err != nil {
		return nil, err
	}
	return factory(env, params)
}

// params evaluates the remaining attributes of the block. Expressions are
// evaluated without variables or functions.
func (tb *TaskBlock) params() (Params, error) {
	params := make(Params)
	if tb.Remain == nil {
		return params, nil
	}
	attrs, diags := tb.Remain.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	for name, attr := range attrs {
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		params[name] = v
	}
	return params, nil
}
