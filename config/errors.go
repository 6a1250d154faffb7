// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import "errors"

// Errors returned while building a frame description.
var (
	ErrInvalidColor    = errors.New("config: invalid color")
	ErrInvalidParam    = errors.New("config: invalid parameter")
	ErrUnknownParam    = errors.New("config: unknown parameter")
	ErrUnknownTaskType = errors.New("config: unknown task type")
	ErrInvalidTarget   = errors.New("config: invalid target size")
)
