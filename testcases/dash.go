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

var dashCases = []TestCase{
	{
		Name:      "simple",
		Path:      polyline(5, 32, 59, 32),
		Width:     64,
		Height:    64,
		Op:        dashed(4, 0, 8, 4),
		Reference: true,
	},
	{
		// [10] is the same as [10, 10]
		Name:      "single_element",
		Path:      polyline(5, 32, 59, 32),
		Width:     64,
		Height:    64,
		Op:        dashed(4, 0, 10),
		Reference: true,
	},
	{
		// [5, 3, 8] repeats as [5, 3, 8, 5, 3, 8]
		Name:      "three_element",
		Path:      polyline(5, 32, 59, 32),
		Width:     64,
		Height:    64,
		Op:        dashed(4, 0, 5, 3, 8),
		Reference: true,
	},
	{
		Name:      "phase",
		Path:      polyline(5, 32, 59, 32),
		Width:     64,
		Height:    64,
		Op:        dashed(4, 6, 8, 4),
		Reference: true,
	},
	{
		Name:      "negative_phase",
		Path:      polyline(5, 32, 59, 32),
		Width:     64,
		Height:    64,
		Op:        dashed(4, -3, 8, 4),
		Reference: true,
	},
	{
		// a dash which runs around a corner keeps its join
		Name:      "around_corner",
		Path:      polyline(10, 50, 32, 14, 54, 50),
		Width:     64,
		Height:    64,
		Op:        dashed(4, 30, 20, 6),
		Reference: true,
	},
	{
		// start and end of the closed path lie in the same dash
		Name:      "closed_same_dash",
		Path:      rectangle(16, 16, 48, 48),
		Width:     64,
		Height:    64,
		Op:        dashed(4, 32, 64, 10),
		Reference: true,
	},
	{
		Name:      "closed_gap_at_end",
		Path:      rectangle(16, 16, 48, 48),
		Width:     64,
		Height:    64,
		Op:        dashed(4, 10, 20, 20),
		Reference: true,
	},
	{
		// zero-length dashes with round caps give dots
		Name:   "dots",
		Path:   polyline(8, 32, 56, 32),
		Width:  64,
		Height: 64,
		Op: Stroke{
			Width:      6,
			Cap:        graphics.LineCapRound,
			Join:       graphics.LineJoinRound,
			MiterLimit: 10,
			Dash:       []float64{0, 10},
		},
		Reference: true,
	},
	{
		// a pattern of total length zero draws a solid line
		Name:      "all_zero",
		Path:      polyline(5, 32, 59, 32),
		Width:     64,
		Height:    64,
		Op:        dashed(4, 0, 0, 0),
		Reference: true,
	},
}
