// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package frame

import "log/slog"

// Option configures an Engine during creation.
//
// Example:
//
//	ctx := frame.NewTaskContext()
//	engine := frame.NewEngine(
//	    frame.WithTaskContext(ctx),
//	    frame.WithLogger(slog.Default()),
//	)
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	logger   *slog.Logger
	context  *TaskContext
	observer PhaseObserver
}

// WithLogger gives the engine its own logger instead of the package
// logger returned by Logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) {
		o.logger = l
	}
}

// WithTaskContext makes the engine use ctx instead of creating a fresh
// context. Existing entries are kept.
func WithTaskContext(ctx *TaskContext) Option {
	return func(o *engineOptions) {
		o.context = ctx
	}
}

// WithPhaseObserver installs an observer notified around every phase.
func WithPhaseObserver(obs PhaseObserver) Option {
	return func(o *engineOptions) {
		o.observer = obs
	}
}
