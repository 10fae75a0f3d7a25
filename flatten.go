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
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// maxCurveSegments bounds the number of line segments per curve, so that
// curves with huge coordinates cannot stall the pipeline.
const maxCurveSegments = 4096

// flattener approximates curves by line segments.
//
// Points are given in the coordinate space of the calling stage.  The
// linear map takes this space to device space, so that the flatness
// tolerance is always measured in device pixels.
type flattener struct {
	linear   matrix.Matrix
	flatness float64
}

// toDevice applies only the 2×2 linear part of the map to a vector.
func (f *flattener) toDevice(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: f.linear[0]*v.X + f.linear[2]*v.Y,
		Y: f.linear[1]*v.X + f.linear[3]*v.Y,
	}
}

// quadratic flattens a quadratic Bézier and calls emit for each line segment.
// p0 is the current point, p1 is the control point, p2 is the end point.
func (f *flattener) quadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	// e = (P0 - 2*P1 + P2) / 4 bounds the distance between curve and chord
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)
	errDev := f.toDevice(e).Length()

	n := 1
	if errDev > f.flatness {
		n = int(min(math.Ceil(math.Sqrt(errDev/f.flatness)), maxCurveSegments))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		// B(t) = (1-t)²P0 + 2(1-t)tP1 + t²P2
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		if i == n {
			pt = p2
		}
		emit(prev, pt)
		prev = pt
	}
}

// cubic flattens a cubic Bézier and calls emit for each line segment.
// p0 is the current point, p1/p2 are the control points, p3 is the end point.
func (f *flattener) cubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	d1 := f.toDevice(p0.Sub(p1.Mul(2)).Add(p2)) // P0 - 2*P1 + P2
	d2 := f.toDevice(p1.Sub(p2.Mul(2)).Add(p3)) // P1 - 2*P2 + P3

	// Wang's formula: n = ceil(sqrt(3 * m / (4 * ε)))
	m := max(d1.Length(), d2.Length())
	n := 1
	if m > 0 {
		nFloat := math.Sqrt(3 * m / (4 * f.flatness))
		if nFloat > 1 {
			n = int(min(math.Ceil(nFloat), maxCurveSegments))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		pt := p0.Mul(omt2 * omt).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t2 * t))
		if i == n {
			pt = p3
		}
		emit(prev, pt)
		prev = pt
	}
}
