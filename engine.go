// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package frame

import (
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Engine drives tasks through the four phases of a frame:
//
//  1. Discovery: RenderIndex.SyncAll reads the scene state the tasks depend
//     on and stages backend work, without committing it.
//  2. Prepare: Task.Prepare on every task, in list order.
//  3. Commit: RenderDelegate.CommitResources, once.
//  4. Execute: Task.Execute on every task, in list order.
//
// Every phase finishes for all tasks before the next one starts. Before
// discovery the engine stores the index's drivers in the task context
// under TokenDrivers.
//
// The task context belongs to the engine and persists across Execute
// calls until ClearContext is called.
//
// Engine is not safe for concurrent use. Run one Execute at a time.
type Engine struct {
	ctx      *TaskContext
	logger   *slog.Logger
	observer PhaseObserver
	resolver *TaskResolver

	frames uint64
	last   FrameStats
}

// NewEngine creates an engine with an empty task context.
func NewEngine(opts ...Option) *Engine {
	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.context == nil {
		o.context = NewTaskContext()
	}

	return &Engine{
		ctx:      o.context,
		logger:   o.logger,
		observer: o.observer,
		resolver: NewTaskResolver(o.logger),
	}
}

// SetContextValue inserts or overwrites the context entry for id.
func (e *Engine) SetContextValue(id Token, v Value) {
	e.ctx.Set(id, v)
}

// ContextValue returns the context entry for id and whether it exists.
func (e *Engine) ContextValue(id Token) (Value, bool) {
	return e.ctx.Get(id)
}

// RemoveContextValue deletes the context entry for id, if any.
func (e *Engine) RemoveContextValue(id Token) {
	e.ctx.Remove(id)
}

// ClearContext removes every context entry.
func (e *Engine) ClearContext() {
	e.ctx.Clear()
}

// TaskContext returns the engine's task context.
func (e *Engine) TaskContext() *TaskContext {
	return e.ctx
}

// Frames returns the number of completed Execute calls.
func (e *Engine) Frames() uint64 {
	return e.frames
}

// LastFrame returns the statistics of the most recent completed frame.
func (e *Engine) LastFrame() FrameStats {
	return e.last
}

// Execute runs one frame over tasks.
//
// A nil index, a nil task list or a nil task inside the list is a coding
// error: it is logged, returned, and no phase runs. An empty, non-nil task
// list is valid and still syncs and commits.
//
// Failures inside the index, the tasks or the delegate are theirs to
// report; Execute does not recover panics.
func (e *Engine) Execute(index RenderIndex, tasks []Task) error {
	if err := checkExecuteArgs(index, tasks); err != nil {
		e.log().Error("frame: coding error in Engine.Execute", "err", err)
		return err
	}

	id := uuid.New()
	log := e.log().With("frame", id.String())
	stats := FrameStats{ID: id, Tasks: len(tasks)}

	// Tasks may need the same backend the render delegate uses.
	e.ctx.Set(TokenDrivers, NewValue(index.Drivers()))

	e.runPhase(log, &stats, PhaseDiscovery, func() {
		index.SyncAll(tasks, e.ctx)
	})

	// Sync is change-tracked; Prepare runs every frame so tasks can resolve
	// bindings to each other and request resources for Execute.
	e.runPhase(log, &stats, PhasePrepare, func() {
		for _, task := range tasks {
			task.Prepare(e.ctx, index)
		}
	})

	e.runPhase(log, &stats, PhaseCommit, func() {
		delegate := index.RenderDelegate()
		if isNil(delegate) {
			log.Warn("frame: render index has no render delegate, skipping commit")
			return
		}
		delegate.CommitResources(index.ChangeTracker())
	})

	e.runPhase(log, &stats, PhaseExecute, func() {
		for _, task := range tasks {
			task.Execute(e.ctx)
		}
	})

	e.frames++
	e.last = stats
	log.Debug("frame: frame complete", "tasks", stats.Tasks, "elapsed", stats.Total())
	return nil
}

// ExecutePaths resolves paths through index and runs one frame over the
// resolved tasks. Unresolvable paths are logged and skipped.
func (e *Engine) ExecutePaths(index RenderIndex, paths []Path) error {
	if isNil(index) {
		e.log().Error("frame: coding error in Engine.ExecutePaths", "err", ErrNilIndex)
		return ErrNilIndex
	}
	return e.Execute(index, e.resolver.Resolve(index, paths))
}

func (e *Engine) runPhase(log *slog.Logger, stats *FrameStats, p Phase, fn func()) {
	log.Debug("frame: phase begin", "phase", p.String())
	if e.observer != nil {
		e.observer.BeginPhase(stats.ID, p)
	}

	start := time.Now()
	fn()
	elapsed := time.Since(start)
	stats.Durations[p] = elapsed

	if e.observer != nil {
		e.observer.EndPhase(stats.ID, p, elapsed)
	}
	log.Debug("frame: phase end", "phase", p.String(), "elapsed", elapsed)
}

// log returns the engine logger, falling back to the package logger so
// SetLogger applies to engines created before it was called.
func (e *Engine) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return Logger()
}

func checkExecuteArgs(index RenderIndex, tasks []Task) error {
	if isNil(index) {
		return ErrNilIndex
	}
	if tasks == nil {
		return ErrNilTasks
	}
	for i, task := range tasks {
		if isNil(task) {
			return fmt.Errorf("%w: position %d", ErrNilTask, i)
		}
	}
	return nil
}

// isNil reports whether v is nil or an interface holding a nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
