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

package testcases

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf/graphics"
)

var transformCases = []TestCase{
	{
		Name:      "scale_2x",
		Path:      rectangle(0, 0, 20, 20),
		Width:     128,
		Height:    128,
		Op:        Fill{Rule: NonZero},
		CTM:       matrix.Scale(2, 2).Translate(24, 24),
		Reference: true,
	},
	{
		Name:      "rotate_45deg",
		Path:      rectangle(-10, -10, 10, 10),
		Width:     64,
		Height:    64,
		Op:        Fill{Rule: NonZero},
		CTM:       matrix.RotateDeg(45).Translate(32, 32),
		Reference: true,
	},
	{
		Name:      "shear",
		Path:      rectangle(-15, -15, 15, 15),
		Width:     64,
		Height:    64,
		Op:        Fill{Rule: NonZero},
		CTM:       matrix.Matrix{1, 0, 0.5, 1, 0, 0}.Translate(32, 32),
		Reference: true,
	},
	{
		Name:      "circle_to_ellipse",
		Path:      circle(0, 0, 15),
		Width:     128,
		Height:    64,
		Op:        Fill{Rule: NonZero},
		CTM:       matrix.Scale(2, 1).Translate(64, 32),
		Reference: true,
	},
	{
		// uniform scale: the stroke is done in device space with width 12
		Name:      "stroke_uniform",
		Path:      polyline(-10, 0, 10, 0),
		Width:     64,
		Height:    64,
		Op:        solid(4, graphics.LineCapRound, graphics.LineJoinRound),
		CTM:       matrix.Scale(3, 3).RotateDeg(30).Translate(32, 32),
		Reference: true,
	},
	{
		// non-uniform scale: round caps become elliptical
		Name:      "stroke_nonuniform",
		Path:      polyline(-20, 0, 20, 0),
		Width:     128,
		Height:    64,
		Op:        solid(8, graphics.LineCapRound, graphics.LineJoinRound),
		CTM:       matrix.Scale(2, 1).Translate(64, 32),
		Reference: true,
	},
	{
		Name:      "stroke_shear",
		Path:      rectangle(-12, -12, 12, 12),
		Width:     64,
		Height:    64,
		Op:        solid(3, graphics.LineCapButt, graphics.LineJoinMiter),
		CTM:       matrix.Matrix{1, 0, 0.3, 1, 0, 0}.RotateDeg(30).Translate(32, 32),
		Reference: true,
	},
	{
		Name:      "dash_scaled",
		Path:      polyline(-25, 0, 25, 0),
		Width:     128,
		Height:    64,
		Op:        dashed(4, 0, 5, 3),
		CTM:       matrix.Scale(2, 2).Translate(64, 32),
		Reference: true,
	},
	{
		Name:      "dash_nonuniform",
		Path:      polyline(-25, 0, 25, 0),
		Width:     128,
		Height:    64,
		Op:        dashed(4, 0, 5, 3),
		CTM:       matrix.Scale(2, 1).Translate(64, 32),
		Reference: true,
	},
	{
		// the plane collapses onto a line: a stroke covers nothing
		Name:   "stroke_singular",
		Path:   polyline(-20, 0, 20, 0),
		Width:  64,
		Height: 64,
		Op:     solid(8, graphics.LineCapRound, graphics.LineJoinRound),
		CTM:    matrix.Matrix{1, 0, 1, 0, 32, 32},
	},
}
