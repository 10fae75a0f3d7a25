// seehuhn.de/go/raster - a 2D rendering library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package testcases holds rendering scenarios shared by the tests and
// benchmarks of the raster package.
package testcases

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// TestCase is one rendering scenario.  Path is mapped to device space by
// CTM and then filled or stroked onto a Width×Height canvas whose origin
// is the top-left pixel corner.
type TestCase struct {
	Name          string
	Path          *path.Data
	Width, Height int
	Op            Operation
	CTM           matrix.Matrix // the zero matrix means no transform

	// Reference is set if the result can be checked against
	// golang.org/x/image/vector, which only implements the nonzero rule.
	Reference bool
}

// Check returns an error if tc cannot be rendered.  Names become part of
// file names and may only use a-z, 0-9 and _.  The path itself is not
// checked, since some cases deliberately contain invalid coordinates.
func (tc *TestCase) Check() error {
	if tc.Name == "" {
		return errors.New("missing name")
	}
	for _, r := range tc.Name {
		if !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r == '_') {
			return fmt.Errorf("%s: invalid character %q in name", tc.Name, r)
		}
	}
	if tc.Width <= 0 || tc.Height <= 0 {
		return fmt.Errorf("%s: empty canvas %dx%d", tc.Name, tc.Width, tc.Height)
	}
	if tc.Path == nil {
		return fmt.Errorf("%s: missing path", tc.Name)
	}
	switch op := tc.Op.(type) {
	case Fill:
		if op.Rule != NonZero && op.Rule != EvenOdd {
			return fmt.Errorf("%s: unknown fill rule %d", tc.Name, op.Rule)
		}
		if op.Rule == EvenOdd && tc.Reference {
			return fmt.Errorf("%s: no reference for the even-odd rule", tc.Name)
		}
	case Stroke:
		if !(op.Width >= 0) || !(op.MiterLimit >= 1) {
			return fmt.Errorf("%s: invalid stroke width %g or miter limit %g",
				tc.Name, op.Width, op.MiterLimit)
		}
		for _, d := range op.Dash {
			if !(d >= 0) || math.IsInf(d, 0) {
				return fmt.Errorf("%s: invalid dash pattern %v", tc.Name, op.Dash)
			}
		}
	default:
		return fmt.Errorf("%s: missing operation", tc.Name)
	}
	return nil
}

// Operation is either a [Fill] or a [Stroke].
type Operation interface {
	// Kind returns "fill" or "stroke".
	Kind() string
	isOperation()
}

// FillRule selects the pixels inside a filled path.
type FillRule uint8

// These are the supported fill rules.
const (
	NonZero FillRule = iota
	EvenOdd
)

func (r FillRule) String() string {
	if r == EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// Fill fills the path.
type Fill struct {
	Rule FillRule
}

// Kind implements the [Operation] interface.
func (Fill) Kind() string { return "fill" }
func (Fill) isOperation() {}

// Stroke strokes the path with the given line parameters.  The dash
// pattern is nil for solid lines.
type Stroke struct {
	Width      float64
	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64
	Dash       []float64
	DashPhase  float64
}

// Kind implements the [Operation] interface.
func (Stroke) Kind() string { return "stroke" }
func (Stroke) isOperation() {}

func solid(width float64, lineCap graphics.LineCapStyle, join graphics.LineJoinStyle) Stroke {
	return Stroke{Width: width, Cap: lineCap, Join: join, MiterLimit: 10}
}

// dashed uses butt caps and miter joins.
func dashed(width float64, phase float64, dash ...float64) Stroke {
	return Stroke{
		Width:      width,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: 10,
		Dash:       dash,
		DashPhase:  phase,
	}
}

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
