// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tasks

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"regexp"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/frame"
	"github.com/gogpu/frame/render"
)

// PresentTask encodes the render target as PNG.
//
// The image goes to Writer when it is set, otherwise to the file named by
// Output. An Output containing a verb such as "%03d" is formatted with the
// frame count, so consecutive frames land in separate files.
type PresentTask struct {
	Output string
	Writer io.Writer

	// Width and Height scale the image before encoding. Zero keeps the
	// target size.
	Width, Height int

	target render.RenderTarget
	frame  int

	written string
	err     error
}

// NewPresentTask creates a task that writes PNG files to output.
func NewPresentTask(output string) *PresentTask {
	return &PresentTask{Output: output}
}

// Prepare binds the render target.
func (t *PresentTask) Prepare(ctx *frame.TaskContext, _ frame.RenderIndex) {
	t.target, _ = frame.Lookup[render.RenderTarget](ctx, TokenRenderTarget)
}

// Execute encodes the target. Failures are logged and kept for Err.
func (t *PresentTask) Execute(ctx *frame.TaskContext) {
	t.frame, _ = frame.Lookup[int](ctx, TokenFrameCount)
	t.written = ""
	t.err = t.present()
	if t.err != nil {
		frame.Logger().Warn("tasks: present failed", "err", t.err)
		return
	}
	if t.written != "" {
		frame.Logger().Info("tasks: frame written", "file", t.written, "frame", t.frame)
	}
}

func (t *PresentTask) present() error {
	if t.target == nil {
		return ErrNoTarget
	}
	img := t.target.Image()
	if img == nil {
		return fmt.Errorf("tasks: present: %w", render.ErrNoCPUAccess)
	}
	out := t.scale(img)

	if t.Writer != nil {
		return encode(t.Writer, out)
	}
	if t.Output == "" {
		return ErrNoOutput
	}

	name := outputName(t.Output, t.frame)
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("tasks: present: %w", err)
	}
	if err := encode(f, out); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("tasks: present: %w", err)
	}
	t.written = name
	return nil
}

// scale resizes img with Catmull-Rom when a size is configured.
func (t *PresentTask) scale(img *image.RGBA) image.Image {
	w, h := t.Width, t.Height
	b := img.Bounds()
	if w <= 0 && h <= 0 || w == b.Dx() && h == b.Dy() {
		return img
	}
	// Keep the aspect ratio when only one side is given.
	if w <= 0 {
		w = max(b.Dx()*h/max(b.Dy(), 1), 1)
	}
	if h <= 0 {
		h = max(b.Dy()*w/max(b.Dx(), 1), 1)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

var frameVerb = regexp.MustCompile(`%0?[0-9]*d`)

// outputName replaces each integer verb in pattern with n.
func outputName(pattern string, n int) string {
	return frameVerb.ReplaceAllStringFunc(pattern, func(verb string) string {
		return fmt.Sprintf(verb, n)
	})
}

func encode(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("tasks: encode png: %w", err)
	}
	return nil
}

// Written returns the file written by the last Execute, or "".
func (t *PresentTask) Written() string { return t.written }

// Err returns the error of the last Execute.
func (t *PresentTask) Err() error { return t.err }

var _ frame.Task = (*PresentTask)(nil)
