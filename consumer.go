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

import "seehuhn.de/go/geom/vec"

// Consumer receives a path one segment at a time.
//
// Every stage of a rendering pipeline implements Consumer and forwards a
// (possibly transformed or expanded) version of each call to the stage
// below it. The last stage is normally a [Rasteriser].
//
// PathDone is called exactly once per path, after all other calls.
type Consumer interface {
	MoveTo(p vec.Vec2)
	LineTo(p vec.Vec2)
	QuadTo(c, p vec.Vec2)
	CubeTo(c1, c2, p vec.Vec2)
	ClosePath()
	PathDone()
}

// FillRule identifies which fill rule to apply.
type FillRule int

const (
	// NonZero marks a point as inside if the winding number is non-zero.
	NonZero FillRule = iota

	// EvenOdd marks a point as inside if the winding number is odd.
	EvenOdd
)

func (r FillRule) String() string {
	switch r {
	case NonZero:
		return "nonzero"
	case EvenOdd:
		return "evenodd"
	default:
		return "unknown"
	}
}

// discard drops all geometry and only forwards PathDone.
// It replaces a stroking pipeline whose transform collapses the plane.
type discard struct {
	out Consumer
}

func (d *discard) MoveTo(vec.Vec2)           {}
func (d *discard) LineTo(vec.Vec2)           {}
func (d *discard) QuadTo(vec.Vec2, vec.Vec2) {}
func (d *discard) CubeTo(_, _, _ vec.Vec2)   {}
func (d *discard) ClosePath()                {}
func (d *discard) PathDone()                 { d.out.PathDone() }
