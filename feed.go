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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Coordinates must lie strictly between lowerBound and upperBound.  The
// comparison also rejects NaN and ±Inf, and leaves enough headroom that
// offsetting and transforming valid points cannot overflow.
const (
	upperBound = math.MaxFloat32 / 2
	lowerBound = -upperBound
)

// valid reports whether p can safely be passed down the pipeline.
func valid(p vec.Vec2) bool {
	return p.X < upperBound && p.X > lowerBound &&
		p.Y < upperBound && p.Y > lowerBound
}

// feeder issues sanitized path commands into a pipeline.
//
// Points which fail [valid] are never forwarded.  A segment with an
// invalid end point is dropped.  A curve with a valid end point but an
// invalid control point is replaced by a straight line.  Drawing commands
// before the first valid point start a new subpath at their end point.
type feeder struct {
	out            Consumer
	subpathStarted bool
}

func (f *feeder) moveTo(p vec.Vec2) {
	if valid(p) {
		f.out.MoveTo(p)
		f.subpathStarted = true
	}
	// An invalid MoveTo leaves subpathStarted alone: the following
	// segments either start an implicit subpath or continue the
	// previous one.
}

func (f *feeder) lineTo(p vec.Vec2) {
	if !valid(p) {
		return
	}
	if f.subpathStarted {
		f.out.LineTo(p)
	} else {
		f.out.MoveTo(p)
		f.subpathStarted = true
	}
}

func (f *feeder) quadTo(c, p vec.Vec2) {
	if !valid(p) {
		return
	}
	switch {
	case !f.subpathStarted:
		f.out.MoveTo(p)
		f.subpathStarted = true
	case valid(c):
		f.out.QuadTo(c, p)
	default:
		f.out.LineTo(p)
	}
}

func (f *feeder) cubeTo(c1, c2, p vec.Vec2) {
	if !valid(p) {
		return
	}
	switch {
	case !f.subpathStarted:
		f.out.MoveTo(p)
		f.subpathStarted = true
	case valid(c1) && valid(c2):
		f.out.CubeTo(c1, c2, p)
	default:
		f.out.LineTo(p)
	}
}

func (f *feeder) closePath() {
	if f.subpathStarted {
		// subpathStarted stays set: a drawing command without a
		// preceding MoveTo continues from the start of the closed
		// subpath.
		f.out.ClosePath()
	}
}

// FeedData walks the path p and issues its commands into out, followed by
// a single PathDone.  If tx is not the identity, it is applied to the
// coordinates on the fly.
//
// Invalid coordinates (NaN, ±Inf or huge values) are dropped as described
// for [feeder].  Unknown commands are ignored.  If the coordinate slice of
// p is too short for the commands, the walk stops at the first command
// whose coordinates are missing.
func (c *Context) FeedData(p *path.Data, tx matrix.Matrix, out Consumer) {
	c.dirty = true

	f := feeder{out: out}
	identity := isIdentity(tx)
	pts := c.scratch[:]

	if p != nil {
		coordIdx := 0
	walk:
		for _, cmd := range p.Cmds {
			n := 0
			switch cmd {
			case path.CmdMoveTo, path.CmdLineTo:
				n = 1
			case path.CmdQuadTo:
				n = 2
			case path.CmdCubeTo:
				n = 3
			case path.CmdClose:
				f.closePath()
				continue
			default:
				continue
			}
			if coordIdx+n > len(p.Coords) {
				break walk
			}
			if identity {
				copy(pts[:n], p.Coords[coordIdx:coordIdx+n])
			} else {
				for i := range n {
					pts[i] = transformPoint(&tx, p.Coords[coordIdx+i])
				}
			}
			coordIdx += n

			switch cmd {
			case path.CmdMoveTo:
				f.moveTo(pts[0])
			case path.CmdLineTo:
				f.lineTo(pts[0])
			case path.CmdQuadTo:
				f.quadTo(pts[0], pts[1])
			case path.CmdCubeTo:
				f.cubeTo(pts[0], pts[1], pts[2])
			}
		}
	}
	out.PathDone()

	c.dirty = false
}

// FeedPath walks the path p and issues its commands into out, followed by
// a single PathDone.  The coordinates are sanitized in the same way as
// for [Context.FeedData], but no transformation is applied.
func (c *Context) FeedPath(p path.Path, out Consumer) {
	c.dirty = true

	f := feeder{out: out}
	if p != nil {
		for cmd, pts := range p {
			switch cmd {
			case path.CmdMoveTo:
				if len(pts) >= 1 {
					f.moveTo(pts[0])
				}
			case path.CmdLineTo:
				if len(pts) >= 1 {
					f.lineTo(pts[0])
				}
			case path.CmdQuadTo:
				if len(pts) >= 2 {
					f.quadTo(pts[0], pts[1])
				}
			case path.CmdCubeTo:
				if len(pts) >= 3 {
					f.cubeTo(pts[0], pts[1], pts[2])
				}
			case path.CmdClose:
				f.closePath()
			}
		}
	}
	out.PathDone()

	c.dirty = false
}

// pathTransformer is an iterator adaptor which applies a matrix to all
// points of a path.  Each Context keeps one, together with the bound
// method value, so that transforming an iterator does not allocate.
type pathTransformer struct {
	src path.Path
	tx  matrix.Matrix
	buf *[3]vec.Vec2
	seq path.Path // the all method, bound once
}

func (t *pathTransformer) all(yield func(path.Command, []vec.Vec2) bool) {
	for cmd, pts := range t.src {
		n := min(len(pts), len(t.buf))
		for i := range n {
			t.buf[i] = transformPoint(&t.tx, pts[i])
		}
		if !yield(cmd, t.buf[:n]) {
			return
		}
	}
}

// transformed returns an iterator which applies tx to all points of p.
// The slices passed to the loop body are only valid for one iteration.
// The result is valid until the next call of transformed or Reset.
func (c *Context) transformed(p path.Path, tx matrix.Matrix) path.Path {
	if isIdentity(tx) {
		return p
	}
	t := &c.pathTx
	if t.seq == nil {
		t.buf = &c.scratch
		t.seq = t.all
	}
	t.src = p
	t.tx = tx
	return t.seq
}
