// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package frame

import (
	"slices"
	"sync"
	"testing"
)

func TestChangeTrackerTrack(t *testing.T) {
	tr := NewChangeTracker()
	tr.Track("/a")

	if !tr.IsTracked("/a") {
		t.Fatal("IsTracked() = false after Track")
	}
	if tr.DirtyBits("/a") != AllDirty {
		t.Errorf("DirtyBits() = %b, want AllDirty", tr.DirtyBits("/a"))
	}
	if tr.Version() != 1 {
		t.Errorf("Version() = %d, want 1", tr.Version())
	}
}

func TestChangeTrackerMarkDirtyAndClean(t *testing.T) {
	tr := NewChangeTracker()
	tr.Track("/a")
	tr.MarkClean("/a")

	if tr.IsDirty("/a") {
		t.Fatal("IsDirty() = true after MarkClean")
	}

	v := tr.Version()
	if !tr.MarkDirty("/a", DirtyStyle) {
		t.Fatal("MarkDirty() on tracked path = false")
	}
	tr.MarkDirty("/a", DirtyGeometry)

	if got := tr.DirtyBits("/a"); got != DirtyStyle|DirtyGeometry {
		t.Errorf("DirtyBits() = %b, want %b", got, DirtyStyle|DirtyGeometry)
	}
	if tr.Version() != v+2 {
		t.Errorf("Version() = %d, want %d", tr.Version(), v+2)
	}

	if tr.MarkDirty("/a", Clean) != true || tr.Version() != v+2 {
		t.Error("MarkDirty(Clean) should succeed without bumping the version")
	}
}

func TestChangeTrackerUntracked(t *testing.T) {
	tr := NewChangeTracker()

	if tr.MarkDirty("/missing", DirtyParams) {
		t.Error("MarkDirty() on untracked path should return false")
	}
	if tr.DirtyBits("/missing") != Clean {
		t.Error("untracked paths should be Clean")
	}
	tr.MarkClean("/missing")
	if tr.IsTracked("/missing") {
		t.Error("MarkClean() must not start tracking")
	}
	tr.Untrack("/missing")
	if tr.Version() != 0 {
		t.Errorf("Version() = %d, want 0", tr.Version())
	}
}

func TestChangeTrackerUntrack(t *testing.T) {
	tr := NewChangeTracker()
	tr.Track("/a")
	tr.Track("/b")
	tr.Untrack("/a")

	if tr.IsTracked("/a") {
		t.Error("IsTracked() = true after Untrack")
	}
	if got := tr.Paths(); !slices.Equal(got, []Path{"/b"}) {
		t.Errorf("Paths() = %v, want [/b]", got)
	}
	if tr.Version() != 3 {
		t.Errorf("Version() = %d, want 3", tr.Version())
	}
}

func TestChangeTrackerDirtyPathsSorted(t *testing.T) {
	tr := NewChangeTracker()
	for _, p := range []Path{"/c", "/a", "/b", "/d"} {
		tr.Track(p)
	}
	tr.MarkClean("/b")

	want := []Path{"/a", "/c", "/d"}
	if got := tr.DirtyPaths(); !slices.Equal(got, want) {
		t.Errorf("DirtyPaths() = %v, want %v", got, want)
	}
}

func TestChangeTrackerConcurrent(t *testing.T) {
	tr := NewChangeTracker()
	paths := []Path{"/a", "/b", "/c", "/d"}
	for _, p := range paths {
		tr.Track(p)
	}

	var wg sync.WaitGroup
	for _, p := range paths {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				tr.MarkDirty(p, DirtyStyle)
				_ = tr.DirtyBits(p)
				tr.MarkClean(p)
			}
		}()
	}
	wg.Wait()

	if got := len(tr.DirtyPaths()); got != 0 {
		t.Errorf("DirtyPaths() len = %d, want 0", got)
	}
}
