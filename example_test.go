// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package frame_test

import (
	"fmt"
	"image/color"

	"github.com/gogpu/frame"
	"github.com/gogpu/frame/index"
	"github.com/gogpu/frame/render"
	"github.com/gogpu/frame/tasks"
)

// ExampleEngine_Execute renders one frame of a single red square.
func ExampleEngine_Execute() {
	ix := index.New(render.NewDelegate(), render.CPUDriver("cpu"))
	_ = ix.InsertShape("/square", index.Shape{
		Kind: index.KindRect,
		X:    2,
		Y:    2,
		W:    4,
		H:    4,
		Fill: color.RGBA{R: 255, A: 255},
	})

	setup := tasks.NewSetupTask(8, 8)
	list := []frame.Task{setup, tasks.NewClearTask(color.White), tasks.NewDrawTask()}

	e := frame.NewEngine()
	if err := e.Execute(ix, list); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(setup.Target().At(4, 4))
	fmt.Println(setup.Target().At(0, 0))
	// Output:
	// {255 0 0 255}
	// {255 255 255 255}
}

// ExampleEngine_ExecutePaths shows unresolvable paths being skipped.
func ExampleEngine_ExecutePaths() {
	ix := index.New(render.NewDelegate())
	_ = ix.InsertTask("/hello", &tasks.FuncTask{
		ExecuteFunc: func(*frame.TaskContext) { fmt.Println("hello") },
	})

	e := frame.NewEngine()
	_ = e.ExecutePaths(ix, []frame.Path{"/hello", "/missing", "", "/hello"})
	fmt.Println("tasks:", e.LastFrame().Tasks)
	// Output:
	// hello
	// hello
	// tasks: 2
}

// ExampleLookup reads a typed value from the task context.
func ExampleLookup() {
	ctx := frame.NewTaskContext()
	answer := frame.NewToken("answer")
	ctx.Set(answer, frame.NewValue(42))

	n, ok := frame.Lookup[int](ctx, answer)
	fmt.Println(n, ok)

	_, ok = frame.Lookup[string](ctx, answer)
	fmt.Println(ok)
	// Output:
	// 42 true
	// false
}
