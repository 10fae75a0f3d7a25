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
	"log/slog"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf/graphics"
)

// StrokeStyle describes how a path is stroked.
type StrokeStyle struct {
	// Width is the line width.  Must be >= 0.
	Width float64

	// Cap is the line cap style for stroke endpoints.
	Cap graphics.LineCapStyle

	// Join is the line join style for stroke corners.
	Join graphics.LineJoinStyle

	// MiterLimit is the miter limit for miter joins.  Must be >= 1.
	MiterLimit float64

	// Dash is the dash pattern.  All elements must be non-negative.
	// Nil means solid line (no dashing).
	Dash []float64

	// DashPhase is the offset into the dash pattern.
	DashPhase float64
}

// DefaultStrokeStyle returns the PDF default stroke parameters: a solid
// line of width 1 with butt caps and miter joins.
func DefaultStrokeStyle() *StrokeStyle {
	return &StrokeStyle{
		Width:      1,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: defaultMiterLimit,
	}
}

// isIdentity reports whether tx leaves all points unchanged.  The zero
// matrix is treated as "no transform".
func isIdentity(tx matrix.Matrix) bool {
	return tx == matrix.Identity || tx == matrix.Matrix{}
}

// nearZero reports whether x is zero up to rounding errors of the
// computation which produced it.
func nearZero(x float64) bool {
	return math.Abs(x) < 2*ulp(x)
}

// ulp returns the distance from |x| to the next larger float64.
// For the largest finite value, the spacing below x is used.
func ulp(x float64) float64 {
	x = math.Abs(x)
	if math.IsInf(x, 0) {
		return math.Inf(1)
	}
	if math.IsNaN(x) {
		return x
	}
	next := math.Nextafter(x, math.Inf(1))
	if math.IsInf(next, 1) {
		return x - math.Nextafter(x, 0)
	}
	return next - x
}

// uniformScale checks whether the linear part of tx is a multiple of an
// orthogonal matrix.  If so, it returns the scale factor.
//
// For such a transform every length is multiplied by the same factor, so
// stroking can be done in device space with a scaled line width.  The
// condition is a·b + c·d = 0 and a²+c² = b²+d² for the matrix
//
//	| a b |
//	| c d |
//
// where a, b, c, d are tx[0], tx[2], tx[1], tx[3].
func uniformScale(tx matrix.Matrix) (float64, bool) {
	a, b, c, d := tx[0], tx[2], tx[1], tx[3]
	if nearZero(a*b+c*d) && nearZero(a*a+c*c-(b*b+d*d)) {
		return math.Sqrt(a*a + c*c), true
	}
	return 0, false
}

// Pipeline builds the chain of stages for one path and returns the stage
// the path must be fed into.  The last stage of the chain is out.
//
// If stroke is nil, the path is filled and out is returned directly
// (behind a [Simplifier], if enabled in the options).  Otherwise the path
// is stroked with the given line width; stroke.Width is not used.
//
// The transform tx is the transformation which the feeder applies to the
// path before it enters the pipeline.  If tx scales uniformly, the line
// width and dash pattern are scaled to match.  Otherwise stroking is done
// in untransformed space: the linear part of tx is undone in front of the
// stroker and reapplied after it.
//
// Pipeline only reports errors from validating the stroke parameters.
func (c *Context) Pipeline(stroke *StrokeStyle, lineWidth float64, tx matrix.Matrix, out Consumer) (Consumer, error) {
	var strokerTx matrix.Matrix
	general := false

	width := 0.0
	dashPhase := 0.0
	var dashes []float64

	if stroke != nil {
		width = lineWidth
		dashPhase = stroke.DashPhase

		if stroke.Dash != nil {
			// never alias the caller's slice, it is scaled below
			dashes = c.dasher.copyDashArray(stroke.Dash)
		}

		if !isIdentity(tx) {
			if scale, ok := uniformScale(tx); ok {
				for i := range dashes {
					dashes[i] *= scale
				}
				dashPhase *= scale
				width *= scale
				if debugEnabled() {
					Logger().Debug("stroke transform is a uniform scale",
						slog.Float64("scale", scale))
				}
			} else {
				strokerTx = tx
				general = true
				if debugEnabled() {
					Logger().Debug("stroke transform is a general affine map",
						slog.Any("matrix", tx))
				}
			}
		}
	}

	pc := out

	if c.opts.UseSimplifier {
		// remove collinear segments (notably from square caps)
		pc = c.simplifier.init(pc)
	}

	if stroke == nil {
		return pc, nil
	}

	if general && isSingular(strokerTx) {
		// The transform maps the plane onto a line or a point, so the
		// stroke has no area in device space.
		if err := validateStroke(width, stroke, dashes); err != nil {
			return nil, err
		}
		c.discard.out = pc
		return &c.discard, nil
	}

	pc = c.deltaTx.init(pc, strokerTx)

	linear := linearPart(strokerTx)
	pc, err := c.stroker.init(pc, width, stroke.Cap, stroke.Join, stroke.MiterLimit)
	if err != nil {
		return nil, err
	}
	c.stroker.linear = linear

	if dashes != nil {
		pc, err = c.dasher.init(pc, dashes, dashPhase, true)
		if err != nil {
			return nil, err
		}
		c.dasher.linear = linear
	}

	pc = c.invDeltaTx.initInverse(pc, strokerTx)

	// Data flows:
	//
	//	feeder (tx applied)
	//	-> (inverse delta transform)
	//	-> (dasher)
	//	-> stroker
	//	-> (delta transform)
	//	-> (simplifier)
	//	-> out
	return pc, nil
}

// validateStroke checks the stroke parameters without building a
// pipeline.
func validateStroke(width float64, stroke *StrokeStyle, dashes []float64) error {
	if err := checkStroke(width, stroke.Cap, stroke.Join, stroke.MiterLimit); err != nil {
		return err
	}
	if dashes != nil {
		return checkDashes(dashes)
	}
	return nil
}
