// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package index provides a render index: the scene-side store of shapes,
// registered tasks and backend drivers that the frame engine syncs once
// per frame.
//
// Every shape and task lives at a frame.Path and is tracked by one
// frame.ChangeTracker. Inserting or changing an object marks it dirty;
// SyncAll rebuilds the scenes of dirty shapes, stages them on the render
// delegate and syncs the dirty tasks of the frame.
package index

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"runtime"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/frame"
	"github.com/gogpu/frame/render"
)

// Errors returned by Index mutators.
var (
	// ErrPathInUse is returned when a path is taken by an object of
	// another kind.
	ErrPathInUse = errors.New("index: path in use")

	// ErrNotFound is returned when no object lives at a path.
	ErrNotFound = errors.New("index: not found")
)

// Stager is the delegate side the index writes scenes to.
// *render.Delegate implements it.
type Stager interface {
	frame.RenderDelegate
	Stage(path frame.Path, scene *render.Scene, z int)
	Discard(path frame.Path)
}

// Index is a frame.RenderIndex over shapes and tasks.
//
// Index is safe for concurrent use. SyncAll must not run concurrently with
// itself, which the engine guarantees.
type Index struct {
	mu sync.RWMutex

	delegate Stager
	drivers  frame.Drivers
	tracker  *frame.ChangeTracker

	shapes  map[frame.Path]Shape
	tasks   map[frame.Path]frame.Task
	removed map[frame.Path]struct{}

	parallelism int
	syncs       int
}

// New creates an index that stages scenes on delegate and owns drivers.
// A nil delegate, including a nil pointer, is allowed; the engine then
// skips the commit phase.
func New(delegate Stager, drivers ...*frame.Driver) *Index {
	if delegate != nil {
		if v := reflect.ValueOf(delegate); v.Kind() == reflect.Pointer && v.IsNil() {
			delegate = nil
		}
	}
	return &Index{
		delegate:    delegate,
		drivers:     slices.Clone(frame.Drivers(drivers)),
		tracker:     frame.NewChangeTracker(),
		shapes:      make(map[frame.Path]Shape),
		tasks:       make(map[frame.Path]frame.Task),
		removed:     make(map[frame.Path]struct{}),
		parallelism: runtime.GOMAXPROCS(0),
	}
}

// SetParallelism bounds the number of scenes built at once during SyncAll.
// Values below one mean one.
func (ix *Index) SetParallelism(n int) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.parallelism = max(n, 1)
}

// SetDrivers replaces the driver set and marks every task DirtyParams so
// tasks that derive state from the drivers resync.
func (ix *Index) SetDrivers(drivers ...*frame.Driver) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.drivers = slices.Clone(frame.Drivers(drivers))
	for path := range ix.tasks {
		ix.tracker.MarkDirty(path, frame.DirtyParams)
	}
}

// InsertShape adds or replaces the shape at path and marks it fully dirty.
func (ix *Index) InsertShape(path frame.Path, s Shape) error {
	if path.IsEmpty() {
		return frame.ErrEmptyPath
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if _, ok := ix.tasks[path]; ok {
		return fmt.Errorf("%w: %s is a task", ErrPathInUse, path)
	}
	ix.shapes[path] = s.clone()
	delete(ix.removed, path)
	ix.tracker.Track(path)
	return nil
}

// UpdateShape applies fn to a copy of the shape at path, stores the result
// and marks the changed aspects dirty.
func (ix *Index) UpdateShape(path frame.Path, fn func(*Shape)) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	old, ok := ix.shapes[path]
	if !ok {
		return fmt.Errorf("%w: shape %s", ErrNotFound, path)
	}
	s := old.clone()
	fn(&s)
	ix.shapes[path] = s
	ix.tracker.MarkDirty(path, diff(old, s))
	return nil
}

// RemoveShape removes the shape at path. Its drawable is discarded at the
// next SyncAll.
func (ix *Index) RemoveShape(path frame.Path) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if _, ok := ix.shapes[path]; !ok {
		return fmt.Errorf("%w: shape %s", ErrNotFound, path)
	}
	delete(ix.shapes, path)
	ix.removed[path] = struct{}{}
	ix.tracker.Untrack(path)
	return nil
}

// Shape returns a copy of the shape at path.
func (ix *Index) Shape(path frame.Path) (Shape, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	s, ok := ix.shapes[path]
	if !ok {
		return Shape{}, false
	}
	return s.clone(), true
}

// ShapePaths returns the paths of all shapes, sorted.
func (ix *Index) ShapePaths() []frame.Path {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return slices.Sorted(maps.Keys(ix.shapes))
}

// InsertTask registers task at path and marks it fully dirty.
func (ix *Index) InsertTask(path frame.Path, task frame.Task) error {
	if path.IsEmpty() {
		return frame.ErrEmptyPath
	}
	if task == nil {
		return frame.ErrNilTask
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if _, ok := ix.shapes[path]; ok {
		return fmt.Errorf("%w: %s is a shape", ErrPathInUse, path)
	}
	ix.tasks[path] = task
	ix.tracker.Track(path)
	return nil
}

// RemoveTask unregisters the task at path.
func (ix *Index) RemoveTask(path frame.Path) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if _, ok := ix.tasks[path]; !ok {
		return fmt.Errorf("%w: task %s", ErrNotFound, path)
	}
	delete(ix.tasks, path)
	ix.tracker.Untrack(path)
	return nil
}

// MarkTaskDirty marks bits dirty on the task at path so it is synced again.
func (ix *Index) MarkTaskDirty(path frame.Path, bits frame.DirtyBits) error {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if _, ok := ix.tasks[path]; !ok {
		return fmt.Errorf("%w: task %s", ErrNotFound, path)
	}
	ix.tracker.MarkDirty(path, bits)
	return nil
}

// TaskPaths returns the paths of all registered tasks, sorted.
func (ix *Index) TaskPaths() []frame.Path {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return slices.Sorted(maps.Keys(ix.tasks))
}

// Task returns the task registered at path, or nil.
func (ix *Index) Task(path frame.Path) frame.Task {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.tasks[path]
}

// Drivers returns the index's drivers.
func (ix *Index) Drivers() frame.Drivers {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return slices.Clone(ix.drivers)
}

// RenderDelegate returns the delegate, or nil if the index has none.
func (ix *Index) RenderDelegate() frame.RenderDelegate {
	if ix.delegate == nil {
		return nil
	}
	return ix.delegate
}

// ChangeTracker returns the index's change tracker.
func (ix *Index) ChangeTracker() *frame.ChangeTracker {
	return ix.tracker
}

// Syncs returns the number of SyncAll calls.
func (ix *Index) Syncs() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.syncs
}

type dirtyShape struct {
	path  frame.Path
	shape Shape
}

type dirtyTask struct {
	path frame.Path
	task frame.TaskSyncer
	bits frame.DirtyBits
}

type built struct {
	scene *render.Scene
	err   error
}

// SyncAll rebuilds the scenes of dirty shapes and stages them, then syncs
// the dirty tasks that are part of tasks.
//
// Scenes are built concurrently, at most SetParallelism at a time; all
// builds finish before SyncAll stages anything. Hidden or invalid shapes
// are discarded. A dirty registered task that is not in tasks stays dirty
// until a frame that includes it.
func (ix *Index) SyncAll(tasks []frame.Task, ctx *frame.TaskContext) {
	shapes, syncers, removed, limit := ix.collectDirty(tasks)
	log := frame.Logger()

	results := make([]built, len(shapes))
	var g errgroup.Group
	g.SetLimit(limit)
	for i, ds := range shapes {
		g.Go(func() error {
			scene, err := BuildScene(ds.shape)
			results[i] = built{scene: scene, err: err}
			return nil
		})
	}
	_ = g.Wait()

	if ix.delegate != nil {
		for _, path := range removed {
			ix.delegate.Discard(path)
		}
		for i, ds := range shapes {
			switch r := results[i]; {
			case r.err != nil:
				log.Warn("index: discarding invalid shape", "path", ds.path.String(), "err", r.err)
				ix.delegate.Discard(ds.path)
			case ds.shape.Hidden:
				ix.delegate.Discard(ds.path)
			default:
				ix.delegate.Stage(ds.path, r.scene, ds.shape.Z)
			}
		}
	}

	for _, dt := range syncers {
		dt.task.Sync(ctx, dt.bits)
	}

	log.Debug("index: synced",
		slog.Int("shapes", len(shapes)),
		slog.Int("tasks", len(syncers)),
		slog.Int("removed", len(removed)))
}

// collectDirty snapshots the work of one SyncAll and clears the dirty bits
// it takes. Changes made after the snapshot mark objects dirty again.
func (ix *Index) collectDirty(tasks []frame.Task) ([]dirtyShape, []dirtyTask, []frame.Path, int) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.syncs++

	var shapes []dirtyShape
	var syncers []dirtyTask
	for _, path := range ix.tracker.DirtyPaths() {
		if s, ok := ix.shapes[path]; ok {
			shapes = append(shapes, dirtyShape{path: path, shape: s.clone()})
			ix.tracker.MarkClean(path)
			continue
		}
		t, ok := ix.tasks[path]
		if !ok || !containsTask(tasks, t) {
			continue
		}
		if ts, ok := t.(frame.TaskSyncer); ok {
			syncers = append(syncers, dirtyTask{path: path, task: ts, bits: ix.tracker.DirtyBits(path)})
		}
		ix.tracker.MarkClean(path)
	}

	removed := slices.Sorted(maps.Keys(ix.removed))
	clear(ix.removed)
	return shapes, syncers, removed, ix.parallelism
}

// containsTask reports whether t is an element of tasks. Tasks of
// non-comparable dynamic types never match.
func containsTask(tasks []frame.Task, t frame.Task) bool {
	if !reflect.TypeOf(t).Comparable() {
		return false
	}
	for _, x := range tasks {
		if x != nil && reflect.TypeOf(x) == reflect.TypeOf(t) && x == t {
			return true
		}
	}
	return false
}

var _ frame.RenderIndex = (*Index)(nil)
