// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"cmp"
	"maps"
	"slices"
	"sync"

	"github.com/gogpu/frame"
)

// Drawable is a committed scene ready to be rendered.
type Drawable struct {
	// Path identifies the scene object the drawable was built from.
	Path frame.Path

	// Scene holds the draw commands.
	Scene *Scene

	// Z orders drawables. Lower values are drawn first.
	Z int

	// Version is the change tracker version at the commit that made the
	// drawable resident.
	Version uint64
}

// DrawableSource provides the drawables committed for the current frame.
type DrawableSource interface {
	Drawables() []Drawable
}

// Delegate is the render delegate of a frame.
//
// During discovery the render index stages scenes with Stage and drops
// them with Discard. Nothing staged is visible to Drawables until the
// engine calls CommitResources, which happens once per frame between the
// prepare and execute phases.
//
// Delegate is safe for concurrent use.
type Delegate struct {
	mu sync.Mutex

	pending  map[frame.Path]Drawable
	discards map[frame.Path]struct{}
	resident map[frame.Path]Drawable

	committedVersion uint64
	commits          int
}

// NewDelegate creates an empty delegate.
func NewDelegate() *Delegate {
	return &Delegate{
		pending:  make(map[frame.Path]Drawable),
		discards: make(map[frame.Path]struct{}),
		resident: make(map[frame.Path]Drawable),
	}
}

// Stage queues scene for path. A later Stage of the same path replaces it.
func (d *Delegate) Stage(path frame.Path, scene *Scene, z int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.discards, path)
	d.pending[path] = Drawable{Path: path, Scene: scene, Z: z}
}

// Discard queues removal of path's drawable and drops anything staged for it.
func (d *Delegate) Discard(path frame.Path) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.pending, path)
	d.discards[path] = struct{}{}
}

// CommitResources applies staged changes.
//
// Discards are applied first, then staged scenes of tracked paths become
// resident. Resident drawables whose path is no longer tracked are evicted.
// A nil tracker commits everything staged.
func (d *Delegate) CommitResources(tracker *frame.ChangeTracker) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var version uint64
	if tracker != nil {
		version = tracker.Version()
	}

	discarded := len(d.discards)
	for path := range d.discards {
		delete(d.resident, path)
	}
	clear(d.discards)

	promoted := 0
	for path, dr := range d.pending {
		if tracker != nil && !tracker.IsTracked(path) {
			continue
		}
		dr.Version = version
		d.resident[path] = dr
		promoted++
	}
	clear(d.pending)

	evicted := 0
	if tracker != nil {
		for path := range d.resident {
			if !tracker.IsTracked(path) {
				delete(d.resident, path)
				evicted++
			}
		}
	}

	d.committedVersion = version
	d.commits++

	frame.Logger().Debug("render: committed resources",
		"promoted", promoted,
		"discarded", discarded,
		"evicted", evicted,
		"resident", len(d.resident),
		"version", version)
}

// Drawables returns the resident drawables sorted by Z, then by path.
func (d *Delegate) Drawables() []Drawable {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := slices.Collect(maps.Values(d.resident))
	slices.SortFunc(out, func(a, b Drawable) int {
		if c := cmp.Compare(a.Z, b.Z); c != 0 {
			return c
		}
		return cmp.Compare(a.Path, b.Path)
	})
	return out
}

// Resident reports whether path has a committed drawable.
func (d *Delegate) Resident(path frame.Path) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.resident[path]
	return ok
}

// Pending returns the number of staged, uncommitted scenes.
func (d *Delegate) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// CommittedVersion returns the tracker version seen by the last commit.
func (d *Delegate) CommittedVersion() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.committedVersion
}

// Commits returns the number of CommitResources calls.
func (d *Delegate) Commits() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.commits
}

var (
	_ frame.RenderDelegate = (*Delegate)(nil)
	_ DrawableSource       = (*Delegate)(nil)
)
