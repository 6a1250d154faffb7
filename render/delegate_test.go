// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/gogpu/frame"
)

func TestDelegateStageIsInvisibleUntilCommit(t *testing.T) {
	d := NewDelegate()
	d.Stage("/a", NewScene(), 0)

	if got := len(d.Drawables()); got != 0 {
		t.Fatalf("Drawables() before commit = %d, want 0", got)
	}
	if d.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", d.Pending())
	}

	d.CommitResources(nil)

	if !d.Resident("/a") {
		t.Error("/a should be resident after commit")
	}
	if d.Pending() != 0 {
		t.Errorf("Pending() after commit = %d, want 0", d.Pending())
	}
	if d.Commits() != 1 {
		t.Errorf("Commits() = %d, want 1", d.Commits())
	}
}

func TestDelegateDrawablesOrder(t *testing.T) {
	d := NewDelegate()
	d.Stage("/c", NewScene(), 1)
	d.Stage("/b", NewScene(), 0)
	d.Stage("/a", NewScene(), 1)
	d.CommitResources(nil)

	var got []frame.Path
	for _, dr := range d.Drawables() {
		got = append(got, dr.Path)
	}
	want := []frame.Path{"/b", "/a", "/c"}
	if len(got) != len(want) {
		t.Fatalf("Drawables() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Drawables()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDelegateDiscard(t *testing.T) {
	d := NewDelegate()
	d.Stage("/a", NewScene(), 0)
	d.CommitResources(nil)

	d.Discard("/a")
	if !d.Resident("/a") {
		t.Error("discard should not apply before commit")
	}
	d.CommitResources(nil)
	if d.Resident("/a") {
		t.Error("/a should be gone after commit")
	}

	// Discard drops a pending stage; a later stage wins over a discard.
	d.Stage("/b", NewScene(), 0)
	d.Discard("/b")
	d.Stage("/c", NewScene(), 0)
	d.Discard("/c")
	d.Stage("/c", NewScene(), 0)
	d.CommitResources(nil)

	if d.Resident("/b") {
		t.Error("/b was discarded after staging")
	}
	if !d.Resident("/c") {
		t.Error("/c was staged after its discard")
	}
}

func TestDelegateCommitWithTracker(t *testing.T) {
	tracker := frame.NewChangeTracker()
	tracker.Track("/kept")
	tracker.Track("/removed")

	d := NewDelegate()
	d.Stage("/kept", NewScene(), 0)
	d.Stage("/removed", NewScene(), 0)
	d.Stage("/untracked", NewScene(), 0)
	d.CommitResources(tracker)

	if !d.Resident("/kept") || !d.Resident("/removed") {
		t.Fatal("tracked paths should be resident")
	}
	if d.Resident("/untracked") {
		t.Error("untracked stage should not become resident")
	}
	if d.CommittedVersion() != tracker.Version() {
		t.Errorf("CommittedVersion() = %d, want %d", d.CommittedVersion(), tracker.Version())
	}
	for _, dr := range d.Drawables() {
		if dr.Version != tracker.Version() {
			t.Errorf("%s Version = %d, want %d", dr.Path, dr.Version, tracker.Version())
		}
	}

	tracker.Untrack("/removed")
	d.CommitResources(tracker)

	if d.Resident("/removed") {
		t.Error("untracked resident should be evicted")
	}
	if !d.Resident("/kept") {
		t.Error("tracked resident should survive a commit")
	}
	if d.Commits() != 2 {
		t.Errorf("Commits() = %d, want 2", d.Commits())
	}
}
