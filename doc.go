// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package frame runs render frames as a fixed sequence of task phases.
//
// # Overview
//
// A frame is one call to Engine.Execute with a render index and an ordered
// list of tasks. The engine does not draw anything itself; it decides when
// the index syncs the scene, when tasks run and when the render delegate
// commits resources:
//
//	Discovery  index.SyncAll(tasks, ctx)
//	Prepare    task.Prepare(ctx, index) for every task, in order
//	Commit     index.RenderDelegate().CommitResources(tracker), once
//	Execute    task.Execute(ctx) for every task, in order
//
// Before discovery the engine stores the index's drivers in the task
// context under TokenDrivers, so tasks can reach the backend the render
// delegate uses.
//
// # Task Context
//
// TaskContext is a Token to Value map shared by all tasks of an engine and
// kept across frames. Tasks publish data for later tasks in Prepare and
// read it in Prepare or Execute. Values are typed on the way out:
//
//	frame.Lookup[*render.PixmapTarget](ctx, tasks.TokenRenderTarget)
//
// The host can seed the context with Engine.SetContextValue before a frame
// and clear it with Engine.ClearContext between frames.
//
// # Resolving Tasks
//
// Engine.ExecutePaths looks tasks up in the index by Path. Paths that are
// empty or do not resolve are logged and skipped; the frame runs with the
// tasks that did resolve, even none.
//
// # Errors
//
// A nil index, a nil task list or a nil task is a coding error: Execute
// logs it, returns it and runs no phase. Tasks report their own failures.
//
// # Logging
//
// The package logs through log/slog. By default nothing is logged; call
// SetLogger to route messages to a handler, or pass WithLogger to a single
// engine.
//
// # Packages
//
//   - render: device handles, render targets, scenes, the software
//     renderer and the render delegate
//   - index: a render index of shapes and tasks
//   - tasks: stock setup, clear, draw and present tasks
//   - config: HCL frame descriptions
//   - cmd/hdframe: renders frame descriptions to PNG
package frame
