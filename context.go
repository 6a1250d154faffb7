// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package frame

import (
	"maps"
	"slices"
	"strings"
)

// TaskContext is the key/value scratch space shared by the engine, the
// render index and every task of a frame.
//
// Entries survive across Execute calls until they are removed or the
// context is cleared, so tasks can deliberately keep state from one frame
// to the next.
//
// TaskContext is not safe for concurrent use. Within a phase the engine
// calls tasks one at a time; collaborators that fan out internally must
// serialize their own context access.
//
// The zero value is an empty context ready to use.
type TaskContext struct {
	data map[Token]Value
}

// NewTaskContext creates an empty context.
func NewTaskContext() *TaskContext {
	return &TaskContext{data: make(map[Token]Value)}
}

// Set inserts or overwrites the value for id.
func (c *TaskContext) Set(id Token, v Value) {
	if c.data == nil {
		c.data = make(map[Token]Value)
	}
	c.data[id] = v
}

// Get returns the value stored for id and whether it was present.
// A missing id is not an error.
func (c *TaskContext) Get(id Token) (Value, bool) {
	v, ok := c.data[id]
	return v, ok
}

// Has reports whether id is present.
func (c *TaskContext) Has(id Token) bool {
	_, ok := c.data[id]
	return ok
}

// Remove deletes id. Removing a missing id is a no-op.
func (c *TaskContext) Remove(id Token) {
	delete(c.data, id)
}

// Clear removes every entry.
func (c *TaskContext) Clear() {
	clear(c.data)
}

// Len returns the number of entries.
func (c *TaskContext) Len() int {
	return len(c.data)
}

// Tokens returns the keys sorted by name.
func (c *TaskContext) Tokens() []Token {
	return slices.SortedFunc(maps.Keys(c.data), func(a, b Token) int {
		return strings.Compare(a.String(), b.String())
	})
}
