// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package frame

import "unique"

// Token is an interned identifier used as a TaskContext key.
//
// Two tokens created from the same string compare equal with ==, and the
// comparison is a pointer comparison regardless of string length. The zero
// Token is the empty token.
type Token struct {
	h unique.Handle[string]
}

// NewToken returns the interned token for s.
// NewToken("") returns the empty token.
func NewToken(s string) Token {
	if s == "" {
		return Token{}
	}
	return Token{h: unique.Make(s)}
}

// String returns the text of the token.
func (t Token) String() string {
	if t.IsEmpty() {
		return ""
	}
	return t.h.Value()
}

// IsEmpty reports whether t is the empty token.
func (t Token) IsEmpty() bool {
	return t == Token{}
}

// Well-known context tokens.
var (
	// TokenDrivers holds the index's Drivers. The engine overwrites it at the
	// start of every Execute call.
	TokenDrivers = NewToken("drivers")
)
