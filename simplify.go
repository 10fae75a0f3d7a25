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

	"seehuhn.de/go/geom/vec"
)

type simplifierState uint8

const (
	simplifierEmpty   simplifierState = iota // no current point
	simplifierPoint                          // current point known, no line pending
	simplifierPending                        // line from p1 to p2 not yet sent
)

// Simplifier is a pipeline stage which merges runs of collinear line
// segments into a single segment.  The filled area is not changed.
// Curves are passed through unchanged.
type Simplifier struct {
	out    Consumer
	state  simplifierState
	p1, p2 vec.Vec2
}

// init prepares s for a new path and returns s.
func (s *Simplifier) init(out Consumer) Consumer {
	s.out = out
	s.state = simplifierEmpty
	return s
}

func (s *Simplifier) reset() {
	s.out = nil
	s.state = simplifierEmpty
}

// flush sends the pending line, if any.
func (s *Simplifier) flush() {
	if s.state == simplifierPending {
		s.out.LineTo(s.p2)
		s.p1 = s.p2
		s.state = simplifierPoint
	}
}

// MoveTo implements the [Consumer] interface.
func (s *Simplifier) MoveTo(p vec.Vec2) {
	s.flush()
	s.out.MoveTo(p)
	s.p1 = p
	s.state = simplifierPoint
}

// LineTo implements the [Consumer] interface.
func (s *Simplifier) LineTo(p vec.Vec2) {
	switch s.state {
	case simplifierEmpty:
		s.out.LineTo(p)
		s.p1 = p
		s.state = simplifierPoint
	case simplifierPoint:
		s.p2 = p
		s.state = simplifierPending
	case simplifierPending:
		if collinear(s.p1, s.p2, p) {
			s.p2 = p
			return
		}
		s.out.LineTo(s.p2)
		s.p1, s.p2 = s.p2, p
	}
}

// QuadTo implements the [Consumer] interface.
func (s *Simplifier) QuadTo(c, p vec.Vec2) {
	s.flush()
	s.out.QuadTo(c, p)
	s.p1 = p
	s.state = simplifierPoint
}

// CubeTo implements the [Consumer] interface.
func (s *Simplifier) CubeTo(c1, c2, p vec.Vec2) {
	s.flush()
	s.out.CubeTo(c1, c2, p)
	s.p1 = p
	s.state = simplifierPoint
}

// ClosePath implements the [Consumer] interface.
func (s *Simplifier) ClosePath() {
	s.flush()
	s.out.ClosePath()
	s.state = simplifierEmpty
}

// PathDone implements the [Consumer] interface.
func (s *Simplifier) PathDone() {
	s.flush()
	s.state = simplifierEmpty
	s.out.PathDone()
}

// collinear reports whether c lies on the line through a and b.
func collinear(a, b, c vec.Vec2) bool {
	u := b.Sub(a)
	v := c.Sub(b)
	cross := u.X*v.Y - u.Y*v.X
	return math.Abs(cross) <= collinearityThreshold*u.Length()*v.Length()
}
