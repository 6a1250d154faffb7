// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package frame

import "log/slog"

// TaskResolver turns task paths into tasks through a RenderIndex.
//
// Bad entries never fail the whole resolution: an empty path or a path the
// index does not know is logged as a *ResolveError and skipped.
type TaskResolver struct {
	logger *slog.Logger
}

// NewTaskResolver creates a resolver that reports skipped entries to
// logger. A nil logger uses the package logger.
func NewTaskResolver(logger *slog.Logger) *TaskResolver {
	return &TaskResolver{logger: logger}
}

// Resolve returns the tasks at paths, in input order, without the entries
// that could not be resolved. The result is never nil.
func (r *TaskResolver) Resolve(index RenderIndex, paths []Path) []Task {
	tasks := make([]Task, 0, len(paths))
	for i, p := range paths {
		if p.IsEmpty() {
			r.report(&ResolveError{Position: i, Path: p, Err: ErrEmptyPath})
			continue
		}
		task := index.Task(p)
		if task == nil {
			r.report(&ResolveError{Position: i, Path: p, Err: ErrTaskNotFound})
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks
}

func (r *TaskResolver) report(err *ResolveError) {
	l := r.logger
	if l == nil {
		l = Logger()
	}
	l.Error("frame: skipping unresolvable task",
		"path", err.Path.String(),
		"position", err.Position,
		"err", err)
}
