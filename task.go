// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package frame

import "github.com/gogpu/gpucontext"

// Path addresses a task or scene object inside a RenderIndex.
// The engine treats paths as opaque; only emptiness is checked.
type Path string

// IsEmpty reports whether p is the empty path.
func (p Path) IsEmpty() bool { return p == "" }

// String returns the path text.
func (p Path) String() string { return string(p) }

// Task is one unit of rendering work.
//
// The engine calls Prepare on every task, then commits resources, then
// calls Execute on every task, always in the order of the task list.
// Prepare is the first point where a task may look at what other tasks
// published in the context; Execute may rely on committed resources.
type Task interface {
	// Prepare resolves bindings and requests the resources the task will
	// need during Execute. It runs on every frame.
	Prepare(ctx *TaskContext, index RenderIndex)

	// Execute performs the task's rendering work.
	Execute(ctx *TaskContext)
}

// TaskSyncer is implemented by tasks that want to be synced by the render
// index during discovery. Sync is change-tracked: an index calls it only
// when the task's dirty bits are set.
type TaskSyncer interface {
	Sync(ctx *TaskContext, dirty DirtyBits)
}

// RenderIndex is the scene-side collaborator of the engine.
type RenderIndex interface {
	// SyncAll brings all scene state the tasks depend on up to date and
	// stages whatever the render delegate will need to commit.
	SyncAll(tasks []Task, ctx *TaskContext)

	// Drivers returns the backend handles owned by the index.
	Drivers() Drivers

	// Task returns the task registered at path, or nil.
	Task(path Path) Task

	// RenderDelegate returns the delegate that commits resources.
	RenderDelegate() RenderDelegate

	// ChangeTracker returns the index's change tracker.
	ChangeTracker() *ChangeTracker
}

// RenderDelegate commits prepared data into backend-resident resources.
type RenderDelegate interface {
	CommitResources(tracker *ChangeTracker)
}

// Driver is a named backend handle, for example the GPU device the host
// application renders with. Tasks reach drivers through TokenDrivers.
type Driver struct {
	Name   Token
	Device gpucontext.DeviceProvider
}

// Drivers is the driver set of a render index.
type Drivers []*Driver

// Find returns the driver named name, or nil.
func (d Drivers) Find(name Token) *Driver {
	for _, drv := range d {
		if drv != nil && drv.Name == name {
			return drv
		}
	}
	return nil
}
