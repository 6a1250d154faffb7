// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNewPixmapTarget(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"small", 100, 100},
		{"medium", 800, 600},
		{"wide", 1000, 100},
		{"tall", 100, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := NewPixmapTarget(tt.width, tt.height)

			if target.Width() != tt.width {
				t.Errorf("Width() = %d, want %d", target.Width(), tt.width)
			}
			if target.Height() != tt.height {
				t.Errorf("Height() = %d, want %d", target.Height(), tt.height)
			}
			if target.Format() != gputypes.TextureFormatRGBA8Unorm {
				t.Errorf("Format() = %v, want RGBA8Unorm", target.Format())
			}
			if target.Image() == nil {
				t.Error("Image() should not be nil for CPU target")
			}
		})
	}
}

func TestPixmapTargetFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 150))
	img.SetRGBA(50, 50, color.RGBA{255, 0, 0, 255})

	target := NewPixmapTargetFromImage(img)

	if target.Width() != 200 || target.Height() != 150 {
		t.Errorf("size = %dx%d, want 200x150", target.Width(), target.Height())
	}
	if target.Image() != img {
		t.Error("Image() should return the wrapped image")
	}
	if got := target.At(50, 50); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("At(50, 50) = %v, want red", got)
	}
}

func TestPixmapTargetClear(t *testing.T) {
	target := NewPixmapTarget(4, 4)
	target.Clear(color.RGBA{0, 0, 255, 255})

	for y := range 4 {
		for x := range 4 {
			if got := target.At(x, y); got != (color.RGBA{0, 0, 255, 255}) {
				t.Fatalf("At(%d, %d) = %v, want blue", x, y, got)
			}
		}
	}

	// Clear replaces rather than blends.
	target.Clear(color.RGBA{})
	if got := target.At(0, 0); got != (color.RGBA{}) {
		t.Errorf("At(0, 0) = %v, want transparent", got)
	}
}

func TestPixmapTargetResize(t *testing.T) {
	target := NewPixmapTarget(10, 10)
	before := target.Image()

	target.Resize(10, 10)
	if target.Image() != before {
		t.Error("Resize to the same size should keep the buffer")
	}

	target.Resize(20, 5)
	if target.Width() != 20 || target.Height() != 5 {
		t.Errorf("size = %dx%d, want 20x5", target.Width(), target.Height())
	}
}

// gpuOnlyTarget is a RenderTarget without CPU pixels.
type gpuOnlyTarget struct{}

func (gpuOnlyTarget) Width() int                     { return 16 }
func (gpuOnlyTarget) Height() int                    { return 16 }
func (gpuOnlyTarget) Format() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }
func (gpuOnlyTarget) Image() *image.RGBA             { return nil }
