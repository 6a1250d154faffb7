// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"encoding/json"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/frame/index"
	"github.com/gogpu/frame/render"
	"github.com/gogpu/frame/tasks"
)

func TestRunRendersFrames(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame-%d.png")
	var stderr bytes.Buffer

	code := run([]string{"-config", "testdata/scene.hcl", "-frames", "2", "-output", out}, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr:\n%s", code, stderr.String())
	}

	for _, n := range []string{"1", "2"} {
		name := strings.Replace(out, "%d", n, 1)
		f, err := os.Open(name)
		if err != nil {
			t.Fatalf("frame %s not written: %v", n, err)
		}
		img, err := png.Decode(f)
		_ = f.Close()
		if err != nil {
			t.Fatalf("decode frame %s: %v", n, err)
		}
		if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
			t.Errorf("frame %s size = %v, want 64x48", n, b)
		}
	}
	if !strings.Contains(stderr.String(), "hdframe: done") {
		t.Errorf("missing completion log:\n%s", stderr.String())
	}
}

func TestRunUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no config", nil},
		{"bad flag", []string{"-nope"}},
		{"zero frames", []string{"-config", "testdata/scene.hcl", "-frames", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			if code := run(tt.args, &stderr); code != 2 {
				t.Errorf("run() = %d, want 2", code)
			}
		})
	}
}

func TestRunMissingConfig(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"-config", filepath.Join(t.TempDir(), "missing.hcl")}, &stderr)
	if code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "hdframe: failed") {
		t.Errorf("missing failure log:\n%s", stderr.String())
	}
}

func TestRunReportsTaskErrors(t *testing.T) {
	// Present into a directory that does not exist.
	out := filepath.Join(t.TempDir(), "missing", "frame.png")
	var stderr bytes.Buffer

	code := run([]string{"-config", "testdata/scene.hcl", "-output", out}, &stderr)
	if code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "/tasks/present") {
		t.Errorf("error should name the failing task:\n%s", stderr.String())
	}
}

func TestOverrideOutput(t *testing.T) {
	ix := index.New(render.NewDelegate())
	present := tasks.NewPresentTask("a.png")
	setup := tasks.NewSetupTask(4, 4)
	_ = ix.InsertTask("/present", present)
	_ = ix.InsertTask("/setup", setup)

	overrideOutput(ix, "b-%d.png")

	if present.Output != "b-%d.png" {
		t.Errorf("Output = %q, want %q", present.Output, "b-%d.png")
	}
	if setup.Width != 4 || setup.Height != 4 {
		t.Error("non-present tasks should be left alone")
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level, format string
		wantLevel     slog.Level
		wantJSON      bool
	}{
		{"debug", "text", slog.LevelDebug, false},
		{"info", "json", slog.LevelInfo, true},
		{"warn", "text", slog.LevelWarn, false},
		{"error", "json", slog.LevelError, true},
		{"loud", "yaml", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(tt.level, tt.format, &buf)

			if logger.Enabled(t.Context(), tt.wantLevel-1) {
				t.Errorf("level below %v should be disabled", tt.wantLevel)
			}
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("level %v should be enabled", tt.wantLevel)
			}

			logger.Log(t.Context(), slog.LevelError, "hello")
			isJSON := json.Valid(bytes.TrimSpace(buf.Bytes()))
			if isJSON != tt.wantJSON {
				t.Errorf("JSON output = %v, want %v: %s", isJSON, tt.wantJSON, buf.String())
			}
		})
	}
}
