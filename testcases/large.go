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

import "seehuhn.de/go/pdf/graphics"

// largeCases have bounding boxes above 65536 pixels, so that the
// rasteriser uses the active edge list.
var largeCases = []TestCase{
	{
		Name:      "rectangle",
		Path:      rectangle(50, 50, 462, 462),
		Width:     512,
		Height:    512,
		Op:        Fill{Rule: NonZero},
		Reference: true,
	},
	{
		Name:      "circle",
		Path:      circle(256, 256, 200),
		Width:     512,
		Height:    512,
		Op:        Fill{Rule: NonZero},
		Reference: true,
	},
	{
		Name:      "grid",
		Path:      grid(8, 8, 512, 512, 4),
		Width:     512,
		Height:    512,
		Op:        Fill{Rule: NonZero},
		Reference: true,
	},
	{
		Name:   "clipped",
		Path:   rectangle(-100, 100, 612, 400),
		Width:  512,
		Height: 512,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "ring_evenodd",
		Path:   ring(256, 256, 220, 100),
		Width:  512,
		Height: 512,
		Op:     Fill{Rule: EvenOdd},
	},
	{
		Name:      "circle_stroke",
		Path:      circle(256, 256, 200),
		Width:     512,
		Height:    512,
		Op:        solid(10, graphics.LineCapButt, graphics.LineJoinRound),
		Reference: true,
	},
}
