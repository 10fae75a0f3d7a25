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

package raster

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
)

// Shape is a path together with its fill rule.
// The implementations are [*FlatShape] and [*IterShape].
type Shape interface {
	FillRule() FillRule
	isShape()
}

// FlatShape is a path stored as parallel command and coordinate slices.
// This is the preferred form, since transformations can be applied
// while reading the path.
type FlatShape struct {
	Data *path.Data
	Rule FillRule
}

// FillRule implements the [Shape] interface.
func (s *FlatShape) FillRule() FillRule { return s.Rule }

func (*FlatShape) isShape() {}

// IterShape is a path given as an iterator.
// The Context does not allocate to transform the iterator, but the
// iterator itself may allocate when the path is read.
type IterShape struct {
	Seq  path.Path
	Rule FillRule
}

// FillRule implements the [Shape] interface.
func (s *IterShape) FillRule() FillRule { return s.Rule }

func (*IterShape) isShape() {}

// SetupRenderer fills or strokes shape into one of the rasterisers of c
// and returns that rasteriser.  Use [Rasteriser.Coverage] to read the
// result.  The rasteriser is owned by c and is overwritten by the next
// call.
//
// If stroke is nil the shape is filled using its own fill rule, otherwise
// it is stroked using the nonzero rule.  The transformation tx maps the
// shape to device space, and clip is the device-space output region.  It
// must have integer-aligned coordinates.
//
// If antialias is false, or if the context was created with ForceNoAA,
// coverage values are either 0 or 1.
func (c *Context) SetupRenderer(shape Shape, stroke *StrokeStyle, tx matrix.Matrix, clip rect.Rect, antialias bool) (*Rasteriser, error) {
	if isIdentity(tx) {
		tx = matrix.Identity
	}

	r := c.renderer
	if c.opts.ForceNoAA || !antialias {
		r = c.getRendererNoAA()
	}

	rule := NonZero
	if stroke == nil && shape != nil && shape.FillRule() == EvenOdd {
		rule = EvenOdd
	}

	x := int(math.Floor(clip.LLx))
	y := int(math.Floor(clip.LLy))
	r.Init(x, y, int(math.Ceil(clip.URx))-x, int(math.Ceil(clip.URy))-y, rule)

	lineWidth := 0.0
	if stroke != nil {
		lineWidth = stroke.Width
	}

	pc, err := c.Pipeline(stroke, lineWidth, tx, r)
	if err != nil {
		return nil, err
	}

	switch s := shape.(type) {
	case *FlatShape:
		c.FeedData(s.Data, tx, pc)
	case *IterShape:
		c.FeedPath(c.transformed(s.Seq, tx), pc)
		c.pathTx.src = nil
	default:
		c.FeedData(nil, tx, pc)
	}
	return r, nil
}

// StrokeTo strokes shape with the given line width and sends the outline
// to out.  No transformation is applied and stroke.Width is ignored.
func (c *Context) StrokeTo(shape Shape, stroke *StrokeStyle, lineWidth float64, out Consumer) error {
	if stroke == nil {
		return fmt.Errorf("%w: missing stroke style", ErrInvalidStroke)
	}
	pc, err := c.Pipeline(stroke, lineWidth, matrix.Identity, out)
	if err != nil {
		return err
	}

	switch s := shape.(type) {
	case *FlatShape:
		c.FeedData(s.Data, matrix.Identity, pc)
	case *IterShape:
		c.FeedPath(s.Seq, pc)
	default:
		c.FeedData(nil, matrix.Identity, pc)
	}
	return nil
}
