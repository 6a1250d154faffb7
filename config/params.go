// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"fmt"
	"image/color"
	"maps"
	"slices"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Params holds the attributes of a task block other than its type.
type Params map[string]cty.Value

// Names returns the parameter names, sorted.
func (p Params) Names() []string {
	return slices.Sorted(maps.Keys(p))
}

// Check returns an error naming every parameter not in allowed.
func (p Params) Check(allowed ...string) error {
	var unknown []string
	for _, name := range p.Names() {
		if !slices.Contains(allowed, name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownParam, strings.Join(unknown, ", "))
	}
	return nil
}

// String returns parameter name as a string, or def if it is absent or null.
func (p Params) String(name, def string) (string, error) {
	var s string
	ok, err := p.decode(name, cty.String, &s)
	if !ok || err != nil {
		return def, err
	}
	return s, nil
}

// Int returns parameter name as an int, or def if it is absent or null.
func (p Params) Int(name string, def int) (int, error) {
	var n int
	ok, err := p.decode(name, cty.Number, &n)
	if !ok || err != nil {
		return def, err
	}
	return n, nil
}

// Float returns parameter name as a float64, or def if it is absent or null.
func (p Params) Float(name string, def float64) (float64, error) {
	var f float64
	ok, err := p.decode(name, cty.Number, &f)
	if !ok || err != nil {
		return def, err
	}
	return f, nil
}

// Color returns parameter name parsed with ParseColor, or def if it is
// absent or null.
func (p Params) Color(name string, def color.Color) (color.Color, error) {
	s, err := p.String(name, "")
	if err != nil || s == "" {
		return def, err
	}
	c, err := ParseColor(s)
	if err != nil {
		return def, fmt.Errorf("%w: %s: %w", ErrInvalidParam, name, err)
	}
	return c, nil
}

// decode converts parameter name to ty and stores it in dst.
// It reports false without error when the parameter is absent or null.
func (p Params) decode(name string, ty cty.Type, dst any) (bool, error) {
	v, ok := p[name]
	if !ok || v.IsNull() {
		return false, nil
	}
	if !v.IsWhollyKnown() {
		return false, fmt.Errorf("%w: %s is not known", ErrInvalidParam, name)
	}
	cv, err := convert.Convert(v, ty)
	if err != nil {
		return false, fmt.Errorf("%w: %s: cannot convert %s to %s: %w",
			ErrInvalidParam, name, v.Type().FriendlyName(), ty.FriendlyName(), err)
	}
	if err := gocty.FromCtyValue(cv, dst); err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrInvalidParam, name, err)
	}
	return true, nil
}
