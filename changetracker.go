// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package frame

import (
	"maps"
	"slices"
	"sync"
)

// DirtyBits flags which aspects of a tracked object changed since it was
// last synced.
type DirtyBits uint32

const (
	// Clean means nothing needs syncing.
	Clean DirtyBits = 0

	// DirtyGeometry marks changed shape or path data.
	DirtyGeometry DirtyBits = 1 << iota

	// DirtyStyle marks changed colors or stroke parameters.
	DirtyStyle

	// DirtyVisibility marks a visibility or draw-order change.
	DirtyVisibility

	// DirtyParams marks changed task parameters.
	DirtyParams

	// AllDirty marks everything.
	AllDirty DirtyBits = ^DirtyBits(0)
)

// ChangeTracker records which objects of a render index need syncing and
// versions the scene as a whole.
//
// The index marks objects dirty when they change and clean once SyncAll
// has processed them. The render delegate reads Version during commit to
// know which scene state its resources reflect.
//
// ChangeTracker is safe for concurrent use.
type ChangeTracker struct {
	mu      sync.Mutex
	dirty   map[Path]DirtyBits
	version uint64
}

// NewChangeTracker creates an empty tracker.
func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{dirty: make(map[Path]DirtyBits)}
}

// Track starts tracking path with all bits dirty.
// Tracking an already tracked path marks it fully dirty.
func (t *ChangeTracker) Track(path Path) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dirty[path] = AllDirty
	t.version++
}

// Untrack stops tracking path.
func (t *ChangeTracker) Untrack(path Path) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.dirty[path]; !ok {
		return
	}
	delete(t.dirty, path)
	t.version++
}

// IsTracked reports whether path is tracked.
func (t *ChangeTracker) IsTracked(path Path) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.dirty[path]
	return ok
}

// MarkDirty ors bits into the dirty bits of path.
// It returns false if path is not tracked.
func (t *ChangeTracker) MarkDirty(path Path, bits DirtyBits) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur, ok := t.dirty[path]
	if !ok {
		return false
	}
	if bits != Clean {
		t.dirty[path] = cur | bits
		t.version++
	}
	return true
}

// DirtyBits returns the dirty bits of path. Untracked paths are Clean.
func (t *ChangeTracker) DirtyBits(path Path) DirtyBits {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dirty[path]
}

// IsDirty reports whether path has any dirty bit set.
func (t *ChangeTracker) IsDirty(path Path) bool {
	return t.DirtyBits(path) != Clean
}

// MarkClean clears all dirty bits of path.
func (t *ChangeTracker) MarkClean(path Path) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.dirty[path]; ok {
		t.dirty[path] = Clean
	}
}

// DirtyPaths returns the sorted tracked paths with dirty bits set.
func (t *ChangeTracker) DirtyPaths() []Path {
	t.mu.Lock()
	defer t.mu.Unlock()
	paths := make([]Path, 0, len(t.dirty))
	for p, bits := range t.dirty {
		if bits != Clean {
			paths = append(paths, p)
		}
	}
	slices.Sort(paths)
	return paths
}

// Paths returns all tracked paths, sorted.
func (t *ChangeTracker) Paths() []Path {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Sorted(maps.Keys(t.dirty))
}

// Version returns the scene version. It increases on every Track,
// Untrack and effective MarkDirty.
func (t *ChangeTracker) Version() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.version
}
