// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package frame

import "fmt"

// Value is a type-erased holder for a TaskContext entry.
//
// A Value can carry any payload (driver handles, render targets, counters,
// buffers) without the context knowing its concrete type. Typed extraction
// goes through ValueAs, which reports a mismatch instead of panicking.
//
// The zero Value is empty.
type Value struct {
	v any
}

// NewValue wraps v. NewValue(nil) returns the empty Value.
func NewValue(v any) Value {
	return Value{v: v}
}

// IsEmpty reports whether the value holds nothing.
func (v Value) IsEmpty() bool {
	return v.v == nil
}

// Any returns the held payload, or nil for the empty Value.
func (v Value) Any() any {
	return v.v
}

// TypeName returns the Go type of the payload, or "<empty>".
func (v Value) TypeName() string {
	if v.v == nil {
		return "<empty>"
	}
	return fmt.Sprintf("%T", v.v)
}

// String formats the payload for diagnostics.
func (v Value) String() string {
	if v.v == nil {
		return "<empty>"
	}
	return fmt.Sprintf("%v", v.v)
}

// ValueAs extracts the payload of v as T.
// It returns the zero T and false if v is empty or holds another type.
// T may be an interface type, in which case any payload implementing it
// is accepted.
func ValueAs[T any](v Value) (T, bool) {
	t, ok := v.v.(T)
	return t, ok
}

// Lookup fetches id from c and extracts it as T.
// Absent keys and type mismatches both return the zero T and false.
func Lookup[T any](c *TaskContext, id Token) (T, bool) {
	v, ok := c.Get(id)
	if !ok {
		var zero T
		return zero, false
	}
	return ValueAs[T](v)
}
