// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package frame

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// captureHandler records every log record it receives.
type captureHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func newCaptureLogger() (*slog.Logger, *captureHandler) {
	h := &captureHandler{}
	return slog.New(h), h
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

// count returns the number of records at level.
func (h *captureHandler) count(level slog.Level) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, r := range h.records {
		if r.Level == level {
			n++
		}
	}
	return n
}

// attr returns the value of key in the i-th record at level.
func (h *captureHandler) attr(level slog.Level, i int, key string) (slog.Value, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, r := range h.records {
		if r.Level != level {
			continue
		}
		if n == i {
			var found slog.Value
			ok := false
			r.Attrs(func(a slog.Attr) bool {
				if a.Key == key {
					found, ok = a.Value, true
					return false
				}
				return true
			})
			return found, ok
		}
		n++
	}
	return slog.Value{}, false
}

// recorder collects collaborator calls in order.
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

type mockDelegate struct {
	rec     *recorder
	tracker *ChangeTracker
}

func (d *mockDelegate) CommitResources(tracker *ChangeTracker) {
	d.tracker = tracker
	d.rec.add("commit")
}

type mockIndex struct {
	rec      *recorder
	drivers  Drivers
	tasks    map[Path]Task
	delegate RenderDelegate
	tracker  *ChangeTracker
	onSync   func(ctx *TaskContext)
	synced   []Task
}

func newMockIndex(rec *recorder) *mockIndex {
	return &mockIndex{
		rec:      rec,
		tasks:    make(map[Path]Task),
		delegate: &mockDelegate{rec: rec},
		tracker:  NewChangeTracker(),
	}
}

func (x *mockIndex) SyncAll(tasks []Task, ctx *TaskContext) {
	x.synced = tasks
	x.rec.add("sync")
	if x.onSync != nil {
		x.onSync(ctx)
	}
}

func (x *mockIndex) Drivers() Drivers               { return x.drivers }
func (x *mockIndex) Task(path Path) Task            { return x.tasks[path] }
func (x *mockIndex) RenderDelegate() RenderDelegate { return x.delegate }
func (x *mockIndex) ChangeTracker() *ChangeTracker  { return x.tracker }

type mockTask struct {
	name      string
	rec       *recorder
	onPrepare func(ctx *TaskContext, index RenderIndex)
	onExecute func(ctx *TaskContext)
}

func (t *mockTask) Prepare(ctx *TaskContext, index RenderIndex) {
	t.rec.add("prepare:%s", t.name)
	if t.onPrepare != nil {
		t.onPrepare(ctx, index)
	}
}

func (t *mockTask) Execute(ctx *TaskContext) {
	t.rec.add("execute:%s", t.name)
	if t.onExecute != nil {
		t.onExecute(ctx)
	}
}
