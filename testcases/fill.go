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

import "seehuhn.de/go/geom/path"

var fillCases = []TestCase{
	{
		Name:      "triangle_nonzero",
		Path:      polygon(10, 50, 32, 10, 54, 50),
		Width:     64,
		Height:    64,
		Op:        Fill{Rule: NonZero},
		Reference: true,
	},
	{
		Name:   "triangle_evenodd",
		Path:   polygon(10, 50, 32, 10, 54, 50),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: EvenOdd},
	},
	{
		Name:      "star_nonzero",
		Path:      fivePointStar(32, 32, 25),
		Width:     64,
		Height:    64,
		Op:        Fill{Rule: NonZero},
		Reference: true,
	},
	{
		Name:   "star_evenodd",
		Path:   fivePointStar(32, 32, 25),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: EvenOdd},
	},
	{
		Name:      "rectangle",
		Path:      rectangle(10, 10, 44, 44),
		Width:     64,
		Height:    64,
		Op:        Fill{Rule: NonZero},
		Reference: true,
	},
	{
		Name:      "subpixel_offset",
		Path:      rectangle(20.25, 20.25, 44.25, 44.25),
		Width:     64,
		Height:    64,
		Op:        Fill{Rule: NonZero},
		Reference: true,
	},
	{
		Name:   "ring_evenodd",
		Path:   ring(32, 32, 25, 12),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: EvenOdd},
	},
	{
		Name:      "overlapping_nonzero",
		Path:      appendRectangle(rectangle(10, 10, 40, 40), 24, 24, 54, 54, false),
		Width:     64,
		Height:    64,
		Op:        Fill{Rule: NonZero},
		Reference: true,
	},
	{
		// the feeder starts an implicit subpath at the first LineTo
		Name:      "no_initial_moveto",
		Path:      &path.Data{Cmds: []path.Command{path.CmdLineTo, path.CmdLineTo, path.CmdLineTo, path.CmdClose}, Coords: polygon(12, 12, 52, 12, 52, 52).Coords[:3]},
		Width:     64,
		Height:    64,
		Op:        Fill{Rule: NonZero},
		Reference: true,
	},
	{
		// open subpaths are closed implicitly
		Name:      "open_triangle",
		Path:      polyline(10, 50, 32, 10, 54, 50),
		Width:     64,
		Height:    64,
		Op:        Fill{Rule: NonZero},
		Reference: true,
	},
}
