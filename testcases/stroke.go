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

var strokeCases = []TestCase{
	{
		Name:      "line_butt",
		Path:      polyline(10, 32, 54, 32),
		Width:     64,
		Height:    64,
		Op:        solid(8, graphics.LineCapButt, graphics.LineJoinMiter),
		Reference: true,
	},
	{
		Name:      "line_round",
		Path:      polyline(10, 32, 54, 32),
		Width:     64,
		Height:    64,
		Op:        solid(8, graphics.LineCapRound, graphics.LineJoinMiter),
		Reference: true,
	},
	{
		Name:      "line_square",
		Path:      polyline(10, 32, 54, 32),
		Width:     64,
		Height:    64,
		Op:        solid(8, graphics.LineCapSquare, graphics.LineJoinMiter),
		Reference: true,
	},
	{
		Name:      "corner_miter",
		Path:      polyline(10, 50, 32, 14, 54, 50),
		Width:     64,
		Height:    64,
		Op:        solid(6, graphics.LineCapButt, graphics.LineJoinMiter),
		Reference: true,
	},
	{
		Name:      "corner_round",
		Path:      polyline(10, 50, 32, 14, 54, 50),
		Width:     64,
		Height:    64,
		Op:        solid(6, graphics.LineCapButt, graphics.LineJoinRound),
		Reference: true,
	},
	{
		Name:      "corner_bevel",
		Path:      polyline(10, 50, 32, 14, 54, 50),
		Width:     64,
		Height:    64,
		Op:        solid(6, graphics.LineCapButt, graphics.LineJoinBevel),
		Reference: true,
	},
	{
		// a sharp corner exceeds the miter limit and is beveled
		Name:      "miter_limit",
		Path:      polyline(10, 54, 32, 10, 36, 54),
		Width:     64,
		Height:    64,
		Op:        Stroke{Width: 4, Cap: graphics.LineCapButt, Join: graphics.LineJoinMiter, MiterLimit: 2},
		Reference: true,
	},
	{
		Name:      "closed_square",
		Path:      rectangle(16, 16, 48, 48),
		Width:     64,
		Height:    64,
		Op:        solid(6, graphics.LineCapButt, graphics.LineJoinMiter),
		Reference: true,
	},
	{
		// the path doubles back on itself
		Name:      "cusp",
		Path:      polyline(10, 32, 50, 32, 20, 32),
		Width:     64,
		Height:    64,
		Op:        solid(6, graphics.LineCapRound, graphics.LineJoinRound),
		Reference: true,
	},
	{
		// zero-length subpath with round caps gives a dot
		Name:      "dot_round",
		Path:      (&path.Data{}).MoveTo(pt(32, 32)).LineTo(pt(32, 32)),
		Width:     64,
		Height:    64,
		Op:        solid(10, graphics.LineCapRound, graphics.LineJoinRound),
		Reference: true,
	},
	{
		Name:      "dot_square",
		Path:      (&path.Data{}).MoveTo(pt(32, 32)).LineTo(pt(32, 32)),
		Width:     64,
		Height:    64,
		Op:        solid(10, graphics.LineCapSquare, graphics.LineJoinMiter),
		Reference: true,
	},
	{
		Name:      "thin_line",
		Path:      polyline(5, 10.5, 59, 10.5),
		Width:     64,
		Height:    64,
		Op:        solid(1, graphics.LineCapButt, graphics.LineJoinMiter),
		Reference: true,
	},
	{
		// LineTo after ClosePath continues from the start of the closed subpath
		Name:      "close_then_line",
		Path:      polygon(16, 16, 48, 16, 48, 48).LineTo(pt(16, 48)),
		Width:     64,
		Height:    64,
		Op:        solid(4, graphics.LineCapButt, graphics.LineJoinMiter),
		Reference: true,
	},
}
