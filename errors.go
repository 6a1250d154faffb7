// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package frame

import (
	"errors"
	"fmt"
)

// Sentinel errors for the frame package.
var (
	// ErrNilIndex is returned by Execute when the render index is nil.
	ErrNilIndex = errors.New("frame: nil render index")

	// ErrNilTasks is returned by Execute when the task list is nil.
	ErrNilTasks = errors.New("frame: nil task list")

	// ErrNilTask is returned by Execute when the task list holds a nil task.
	ErrNilTask = errors.New("frame: nil task in task list")

	// ErrEmptyPath is reported when an empty task path is resolved.
	ErrEmptyPath = errors.New("frame: empty task path")

	// ErrTaskNotFound is reported when the index has no task at a path.
	ErrTaskNotFound = errors.New("frame: no task at path")
)

// ResolveError describes a task path that could not be resolved.
type ResolveError struct {
	// Position is the index of the path in the input list.
	Position int
	Path     Path
	Err      error
}

func (e *ResolveError) Error() string {
	if e.Path.IsEmpty() {
		return fmt.Sprintf("%v (position %d)", e.Err, e.Position)
	}
	return fmt.Sprintf("%v %s (position %d)", e.Err, e.Path, e.Position)
}

func (e *ResolveError) Unwrap() error { return e.Err }
