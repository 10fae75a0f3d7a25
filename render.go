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

// Package raster builds rendering pipelines for the PDF/PostScript imaging
// model.
//
// A [Context] turns a path, optionally stroked and dashed, into a chain
// of [Consumer] stages which ends in a [Rasteriser].  The chain is built
// from stage objects owned by the Context, so that rendering a steady
// stream of paths does not allocate.
package raster

//go:generate go run ./testcases/export -o testdata

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/raster/testcases"
)

// RenderExample renders a test case into a grayscale buffer.
// The buffer is pre-initialized with zeros, in row-major order.
// Each byte represents coverage from 0 (transparent) to 255 (opaque).
func RenderExample(tc testcases.TestCase, buf []byte, width, height, stride int) error {
	return renderExample(NewContext(nil), tc, buf, width, height, stride)
}

func renderExample(c *Context, tc testcases.TestCase, buf []byte, width, height, stride int) error {
	shape, stroke := exampleShape(tc)
	clip := rect.Rect{URx: float64(width), URy: float64(height)}
	r, err := c.SetupRenderer(shape, stroke, tc.CTM, clip, true)
	if err != nil {
		return err
	}
	r.Coverage(func(y, xMin int, coverage []float32) {
		row := buf[y*stride:]
		for i, v := range coverage {
			row[xMin+i] = byte(max(0, min(255, int(v*256))))
		}
	})
	return nil
}

// exampleShape converts the operation of a test case into the arguments
// of [Context.SetupRenderer].
func exampleShape(tc testcases.TestCase) (Shape, *StrokeStyle) {
	shape := &FlatShape{Data: tc.Path}
	switch op := tc.Op.(type) {
	case testcases.Fill:
		if op.Rule == testcases.EvenOdd {
			shape.Rule = EvenOdd
		}
		return shape, nil
	case testcases.Stroke:
		return shape, &StrokeStyle{
			Width:      op.Width,
			Cap:        op.Cap,
			Join:       op.Join,
			MiterLimit: op.MiterLimit,
			Dash:       op.Dash,
			DashPhase:  op.DashPhase,
		}
	}
	return shape, nil
}
