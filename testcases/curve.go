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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf/graphics"
)

var curveCases = []TestCase{
	{
		Name:      "quadratic",
		Path:      (&path.Data{}).MoveTo(pt(10, 50)).QuadTo(pt(32, 10), pt(54, 50)).Close(),
		Width:     64,
		Height:    64,
		Op:        Fill{Rule: NonZero},
		Reference: true,
	},
	{
		Name:      "cubic",
		Path:      (&path.Data{}).MoveTo(pt(10, 50)).CubeTo(pt(20, 10), pt(44, 10), pt(54, 50)).Close(),
		Width:     64,
		Height:    64,
		Op:        Fill{Rule: NonZero},
		Reference: true,
	},
	{
		Name:      "circle",
		Path:      circle(32, 32, 25),
		Width:     64,
		Height:    64,
		Op:        Fill{Rule: NonZero},
		Reference: true,
	},
	{
		Name:      "cubic_loop",
		Path:      (&path.Data{}).MoveTo(pt(10, 40)).CubeTo(pt(60, 0), pt(60, 60), pt(10, 20)).Close(),
		Width:     64,
		Height:    64,
		Op:        Fill{Rule: NonZero},
		Reference: true,
	},
	{
		Name:   "cubic_loop_evenodd",
		Path:   (&path.Data{}).MoveTo(pt(10, 40)).CubeTo(pt(60, 0), pt(60, 60), pt(10, 20)).Close(),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: EvenOdd},
	},
	{
		Name:      "quadratic_stroke",
		Path:      (&path.Data{}).MoveTo(pt(10, 50)).QuadTo(pt(32, 10), pt(54, 50)),
		Width:     64,
		Height:    64,
		Op:        solid(4, graphics.LineCapRound, graphics.LineJoinRound),
		Reference: true,
	},
	{
		Name:      "circle_stroke",
		Path:      circle(32, 32, 20),
		Width:     64,
		Height:    64,
		Op:        solid(3, graphics.LineCapButt, graphics.LineJoinMiter),
		Reference: true,
	},
}
