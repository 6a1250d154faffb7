// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package frame

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active package logger.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for frame and all its sub-packages.
// By default frame produces no log output. Pass nil to restore the
// silent default.
//
// Engines created without WithLogger read the package logger at the start
// of every Execute call, so SetLogger takes effect on the next frame.
//
// Log levels used by frame:
//   - [slog.LevelDebug]: phase boundaries, sync and commit statistics
//   - [slog.LevelInfo]: lifecycle events (frames written by the CLI)
//   - [slog.LevelWarn]: fallbacks (software rendering, missing delegate)
//   - [slog.LevelError]: coding errors (nil arguments, unresolvable task paths)
//
// Example:
//
//	frame.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current package logger. Sub-packages (render, index,
// tasks, config) call this to share one logger configuration.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
