// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"fmt"
	"image/color"
)

// ParseColor parses a hex color string.
// Supported formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", each with an
// optional "#" prefix.
func ParseColor(s string) (color.NRGBA, error) {
	hex := s
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255
	var ok bool
	switch len(hex) {
	case 3, 4:
		var v [4]uint8
		for i := range len(hex) {
			if v[i], ok = hexNibble(hex[i]); !ok {
				return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
			}
			v[i] *= 17
		}
		r, g, b = v[0], v[1], v[2]
		if len(hex) == 4 {
			a = v[3]
		}
	case 6, 8:
		var v [4]uint8
		for i := range len(hex) / 2 {
			hi, ok1 := hexNibble(hex[2*i])
			lo, ok2 := hexNibble(hex[2*i+1])
			if !ok1 || !ok2 {
				return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
			}
			v[i] = hi<<4 | lo
		}
		r, g, b = v[0], v[1], v[2]
		if len(hex) == 8 {
			a = v[3]
		}
	default:
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
