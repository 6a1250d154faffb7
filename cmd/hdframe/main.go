// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command hdframe renders frames described by an HCL frame description.
//
// Usage:
//
//	hdframe -config scene.hcl [-frames 3] [-output frame-%03d.png]
//	        [-log-level debug] [-log-format json]
//
// -output replaces the output of every present task. A "%d" style verb in
// it is formatted with the frame number.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/frame"
	"github.com/gogpu/frame/config"
	"github.com/gogpu/frame/index"
	"github.com/gogpu/frame/render"
	"github.com/gogpu/frame/tasks"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("hdframe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "frame description file (HCL)")
		frames     = fs.Int("frames", 1, "number of frames to render")
		output     = fs.String("output", "", "override the output file of present tasks")
		logLevel   = fs.String("log-level", "info", "log level: debug, info, warn, error")
		logFormat  = fs.String("log-format", "text", "log format: text, json")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *configPath == "" {
		fmt.Fprintln(stderr, "hdframe: -config is required")
		fs.Usage()
		return 2
	}
	if *frames < 1 {
		fmt.Fprintln(stderr, "hdframe: -frames must be at least 1")
		return 2
	}

	logger := newLogger(*logLevel, *logFormat, stderr)
	frame.SetLogger(logger)
	defer frame.SetLogger(nil)

	if err := renderFrames(logger, *configPath, *output, *frames); err != nil {
		logger.Error("hdframe: failed", "err", err)
		return 1
	}
	return 0
}

func renderFrames(logger *slog.Logger, configPath, output string, frames int) error {
	f, err := config.Load(configPath)
	if err != nil {
		return err
	}
	ix, paths, err := f.Build(config.DefaultRegistry, render.NewDelegate())
	if err != nil {
		return err
	}
	if output != "" {
		overrideOutput(ix, output)
	}

	e := frame.NewEngine(frame.WithLogger(logger))
	for range frames {
		if err := e.ExecutePaths(ix, paths); err != nil {
			return err
		}
		if err := taskErrors(ix); err != nil {
			return fmt.Errorf("frame %d: %w", e.Frames(), err)
		}
	}

	last := e.LastFrame()
	logger.Info("hdframe: done",
		"frames", e.Frames(),
		"tasks", last.Tasks,
		"last_frame", last.Total())
	return nil
}

// overrideOutput points every present task at output. Present tasks read
// Output on every Execute, so no resync is needed.
func overrideOutput(ix *index.Index, output string) {
	for _, p := range ix.TaskPaths() {
		if pt, ok := ix.Task(p).(*tasks.PresentTask); ok {
			pt.Output = output
		}
	}
}

// taskErrors joins the errors the index's tasks kept from their last
// Execute.
func taskErrors(ix *index.Index) error {
	var errs []error
	for _, p := range ix.TaskPaths() {
		if t, ok := ix.Task(p).(interface{ Err() error }); ok {
			if err := t.Err(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", p, err))
			}
		}
	}
	return errors.Join(errs...)
}

// newLogger creates a logger for the given level and format names.
// Unknown levels fall back to info, unknown formats to text.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
