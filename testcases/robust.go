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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf/graphics"
)

// robustCases contain invalid or extreme coordinates.  The feeder must
// drop or repair the bad parts, and the rest of the path must render as
// if the bad parts were not there.
var robustCases = []TestCase{
	{
		// the NaN vertex is dropped, leaving a triangle
		Name:      "nan_vertex",
		Path:      polygon(10, 10, 54, 10, math.NaN(), 30, 54, 54),
		Width:     64,
		Height:    64,
		Op:        Fill{Rule: NonZero},
		Reference: true,
	},
	{
		Name:      "inf_vertex",
		Path:      polygon(10, 10, 54, 10, math.Inf(1), 30, 54, 54),
		Width:     64,
		Height:    64,
		Op:        Fill{Rule: NonZero},
		Reference: true,
	},
	{
		// the curve with a bad control point becomes a straight line
		Name:      "nan_control_point",
		Path:      (&path.Data{}).MoveTo(pt(10, 50)).QuadTo(pt(math.NaN(), 10), pt(54, 50)).LineTo(pt(32, 10)).Close(),
		Width:     64,
		Height:    64,
		Op:        Fill{Rule: NonZero},
		Reference: true,
	},
	{
		// huge coordinates are valid and must not overflow the rasteriser
		Name:   "huge_triangle",
		Path:   polygon(-1e30, -1e30, 1e30, 32, -1e30, 1e30),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "far_outside",
		Path:   rectangle(1000, 1000, 1100, 1100),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		// the invalid MoveTo is dropped and the line continues the
		// first subpath
		Name:      "stroke_bad_moveto",
		Path:      polyline(10, 20, 54, 20).MoveTo(pt(math.NaN(), 0)).LineTo(pt(54, 44)),
		Width:     64,
		Height:    64,
		Op:        solid(4, graphics.LineCapButt, graphics.LineJoinMiter),
		Reference: true,
	},
}
