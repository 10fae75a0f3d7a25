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
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// ErrInvalidStroke is returned when a stroke cannot be set up because of
// an invalid line width, cap, join, miter limit or dash pattern.
var ErrInvalidStroke = errors.New("invalid stroke parameters")

const (
	zeroLengthThreshold   = 1e-10
	collinearityThreshold = 1e-6
	cuspCosineThreshold   = -0.9999 // cos(θ) below this is a cusp
	miterEpsilon          = 1e-10
)

// strokeSegment is one flattened segment of the path being stroked.
type strokeSegment struct {
	A, B vec.Vec2 // endpoints
	T    vec.Vec2 // unit tangent (A→B direction)
	N    vec.Vec2 // unit normal (90° CCW from T)
}

// reversed returns the same segment traversed from B to A.
func (s strokeSegment) reversed() strokeSegment {
	return strokeSegment{A: s.B, B: s.A, T: s.T.Mul(-1), N: s.N.Mul(-1)}
}

// Stroker is a pipeline stage which replaces every subpath by the outline
// of its stroke.  Each outline is emitted as one or two closed polygons,
// made only of MoveTo, LineTo and ClosePath commands.  The polygons must
// be filled using the nonzero winding rule.
type Stroker struct {
	out Consumer

	width      float64
	cap        graphics.LineCapStyle
	join       graphics.LineJoinStyle
	miterLimit float64

	// flatness and linear control curve flattening, see [flattener].
	flatness float64
	linear   matrix.Matrix
	flat     flattener

	segs          []strokeSegment
	outline       []vec.Vec2
	start         vec.Vec2
	current       vec.Vec2
	hasStart      bool
	inSubpath     bool
	sawDrawingCmd bool
}

// checkStroke validates the stroke parameters.
func checkStroke(width float64, lineCap graphics.LineCapStyle, join graphics.LineJoinStyle, miterLimit float64) error {
	if !(width >= 0) || math.IsInf(width, 0) {
		return fmt.Errorf("%w: line width %g", ErrInvalidStroke, width)
	}
	switch lineCap {
	case graphics.LineCapButt, graphics.LineCapRound, graphics.LineCapSquare:
	default:
		return fmt.Errorf("%w: line cap %d", ErrInvalidStroke, lineCap)
	}
	switch join {
	case graphics.LineJoinMiter, graphics.LineJoinRound, graphics.LineJoinBevel:
	default:
		return fmt.Errorf("%w: line join %d", ErrInvalidStroke, join)
	}
	if !(miterLimit >= 1) {
		return fmt.Errorf("%w: miter limit %g", ErrInvalidStroke, miterLimit)
	}
	return nil
}

// init prepares s for a new path and returns s.
// The flattening transform is reset to the identity.
func (s *Stroker) init(out Consumer, width float64, lineCap graphics.LineCapStyle, join graphics.LineJoinStyle, miterLimit float64) (Consumer, error) {
	if err := checkStroke(width, lineCap, join, miterLimit); err != nil {
		return nil, err
	}
	s.out = out
	s.width = width
	s.cap = lineCap
	s.join = join
	s.miterLimit = miterLimit
	s.linear = matrix.Identity
	if !(s.flatness > 0) {
		s.flatness = defaultFlatness
	}

	s.segs = s.segs[:0]
	s.outline = s.outline[:0]
	s.hasStart = false
	s.inSubpath = false
	s.sawDrawingCmd = false
	return s, nil
}

// reset drops all references to the downstream stage.  Buffers are kept.
func (s *Stroker) reset() {
	s.out = nil
	s.segs = s.segs[:0]
	s.outline = s.outline[:0]
	s.hasStart = false
	s.inSubpath = false
	s.sawDrawingCmd = false
}

// MoveTo implements the [Consumer] interface.
func (s *Stroker) MoveTo(p vec.Vec2) {
	s.finishSubpath(false)
	s.begin(p)
}

func (s *Stroker) begin(p vec.Vec2) {
	s.segs = s.segs[:0]
	s.start = p
	s.current = p
	s.hasStart = true
	s.inSubpath = true
	s.sawDrawingCmd = false
}

// ensureSubpath starts a new subpath at the start of the previous one,
// if a drawing command follows ClosePath.
func (s *Stroker) ensureSubpath() bool {
	if !s.inSubpath {
		if !s.hasStart {
			return false
		}
		s.begin(s.start)
	}
	s.sawDrawingCmd = true
	return true
}

// LineTo implements the [Consumer] interface.
func (s *Stroker) LineTo(p vec.Vec2) {
	if !s.ensureSubpath() {
		return
	}
	s.addSegment(s.current, p)
	s.current = p
}

// QuadTo implements the [Consumer] interface.
func (s *Stroker) QuadTo(c, p vec.Vec2) {
	if !s.ensureSubpath() {
		return
	}
	s.syncFlattener()
	s.flat.quadratic(s.current, c, p, s.addSegment)
	s.current = p
}

// CubeTo implements the [Consumer] interface.
func (s *Stroker) CubeTo(c1, c2, p vec.Vec2) {
	if !s.ensureSubpath() {
		return
	}
	s.syncFlattener()
	s.flat.cubic(s.current, c1, c2, p, s.addSegment)
	s.current = p
}

// ClosePath implements the [Consumer] interface.
func (s *Stroker) ClosePath() {
	if !s.inSubpath {
		return
	}
	if s.current != s.start {
		s.addSegment(s.current, s.start)
	}
	s.sawDrawingCmd = true
	s.finishSubpath(true)
	s.current = s.start
	s.inSubpath = false
}

// PathDone implements the [Consumer] interface.
func (s *Stroker) PathDone() {
	s.finishSubpath(false)
	s.inSubpath = false
	s.hasStart = false
	s.out.PathDone()
}

func (s *Stroker) syncFlattener() {
	s.flat.linear = s.linear
	s.flat.flatness = s.flatness
}

func (s *Stroker) addSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	length := d.Length()
	if length < zeroLengthThreshold {
		return
	}
	t := d.Mul(1 / length)
	n := vec.Vec2{X: -t.Y, Y: t.X}
	s.segs = append(s.segs, strokeSegment{A: a, B: b, T: t, N: n})
}

// finishSubpath emits the outline of the current subpath.
func (s *Stroker) finishSubpath(closed bool) {
	if !s.inSubpath {
		return
	}
	segs := s.segs
	d := s.width / 2

	switch {
	case len(segs) == 0:
		if !s.sawDrawingCmd {
			break
		}
		// A subpath of length zero has no direction.  Round caps give a
		// disc and square caps an axis-aligned square.
		s.syncFlattener()
		switch s.cap {
		case graphics.LineCapRound:
			s.outline = s.outline[:0]
			s.addArc(s.start, d, vec.Vec2{X: 1, Y: 0}, 2*math.Pi, true)
			s.emitOutline()
		case graphics.LineCapSquare:
			s.outline = append(s.outline[:0],
				s.start.Add(vec.Vec2{X: d, Y: d}),
				s.start.Add(vec.Vec2{X: -d, Y: d}),
				s.start.Add(vec.Vec2{X: -d, Y: -d}),
				s.start.Add(vec.Vec2{X: d, Y: -d}),
			)
			s.emitOutline()
		}

	case closed:
		// no caps; the two sides form separate rings of opposite orientation
		s.syncFlattener()
		s.outline = s.outline[:0]
		s.offsetSide(segs, false, true, d)
		s.emitOutline()
		s.outline = s.outline[:0]
		s.offsetSide(segs, true, true, d)
		s.emitOutline()

	default:
		s.syncFlattener()
		first := segs[0]
		last := segs[len(segs)-1]
		s.outline = s.outline[:0]
		s.addCap(first.A, first.T.Mul(-1), d)
		s.offsetSide(segs, false, false, d)
		s.addCap(last.B, last.T, d)
		s.offsetSide(segs, true, false, d)
		s.emitOutline()
	}

	s.segs = s.segs[:0]
}

// emitOutline sends the polygon in s.outline downstream.
func (s *Stroker) emitOutline() {
	if len(s.outline) < 3 {
		return
	}
	s.out.MoveTo(s.outline[0])
	for _, p := range s.outline[1:] {
		s.out.LineTo(p)
	}
	s.out.ClosePath()
}

// offsetSide appends the +N offset of the path to s.outline.  If rev is
// set, the path is traversed backwards, which gives the -N side of the
// original path.  For closed paths the corner between the last and the
// first segment is included, and the result is a complete ring.
func (s *Stroker) offsetSide(segs []strokeSegment, rev, closed bool, d float64) {
	n := len(segs)
	at := func(i int) strokeSegment {
		if rev {
			return segs[n-1-i].reversed()
		}
		return segs[i]
	}

	if !closed {
		first := at(0)
		s.outline = append(s.outline, first.A.Add(first.N.Mul(d)))
	}
	for i := range n - 1 {
		s.addCorner(at(i), at(i+1), d)
	}
	if closed {
		s.addCorner(at(n-1), at(0), d)
	} else {
		last := at(n - 1)
		s.outline = append(s.outline, last.B.Add(last.N.Mul(d)))
	}
}

// addCorner appends the +N side geometry where segment a meets segment b.
// The offset point of b.A is included, the offset point of a.A is not.
func (s *Stroker) addCorner(a, b strokeSegment, d float64) {
	P := a.B
	sinTheta := a.T.X*b.T.Y - a.T.Y*b.T.X
	cosTheta := a.T.Dot(b.T)

	switch {
	case math.Abs(sinTheta) < collinearityThreshold && cosTheta > 0:
		s.outline = append(s.outline, a.B.Add(a.N.Mul(d)), b.A.Add(b.N.Mul(d)))

	case sinTheta > 0 && cosTheta >= cuspCosineThreshold:
		// right turn: +N is the inner side
		if ip, ok := innerIntersection(P, a.T, b.T, d); ok {
			s.outline = append(s.outline, ip)
		} else {
			s.outline = append(s.outline, P.Add(a.N.Mul(d)), P.Add(b.N.Mul(d)))
		}

	default:
		// left turn or cusp: +N is the outer side
		s.outline = append(s.outline, a.B.Add(a.N.Mul(d)))
		s.addJoin(P, a.T, b.T, d)
		s.outline = append(s.outline, b.A.Add(b.N.Mul(d)))
	}
}

// innerIntersection returns the intersection point of the two +N offset
// lines at a corner where the +N side is the inner side.
func innerIntersection(P, T1, T2 vec.Vec2, d float64) (vec.Vec2, bool) {
	cosTheta := T1.Dot(T2)
	if cosTheta > 1-1e-9 {
		return vec.Vec2{}, false
	}

	// cos(θ/2) = sqrt((1 + cos θ) / 2)
	halfAngle := math.Sqrt((1 + cosTheta) / 2)
	if halfAngle < 1e-9 {
		return vec.Vec2{}, false
	}

	N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
	N2 := vec.Vec2{X: -T2.Y, Y: T2.X}
	dir := N1.Add(N2)
	dirLen := dir.Length()
	if dirLen < 1e-9 {
		return vec.Vec2{}, false
	}
	return P.Add(dir.Mul(d / (dirLen * halfAngle))), true
}

// addCap appends a line cap at P.  T is the outward tangent direction.
// The cap runs from P+d·N to P-d·N, where N is T rotated by 90° CCW.
func (s *Stroker) addCap(P, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}

	switch s.cap {
	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		s.outline = append(s.outline, ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)))

	case graphics.LineCapRound:
		s.addArc(P, d, N, -math.Pi, true)
	}
}

// addJoin appends the join geometry on the outer (+N) side of a corner
// where the tangent turns from T1 to T2.  The offset points of the two
// segments are added by the caller.
func (s *Stroker) addJoin(P, T1, T2 vec.Vec2, d float64) {
	cosTheta := T1.Dot(T2)
	sinTheta := T1.X*T2.Y - T1.Y*T2.X

	if cosTheta < cuspCosineThreshold {
		// The path doubles back on itself.  A single cap connects
		// the two sides.
		s.addCap(P, T1, d)
		return
	}

	switch s.join {
	case graphics.LineJoinMiter:
		// The miter length ratio is 1/sin(φ/2) for the interior angle φ,
		// and sin(φ/2) = cos(θ/2) for the turning angle θ.
		sinHalf := math.Sqrt((1 + cosTheta) / 2)
		if sinHalf > 0 && 1/sinHalf <= s.miterLimit+miterEpsilon {
			N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
			N2 := vec.Vec2{X: -T2.Y, Y: T2.X}
			bisector := N1.Add(N2)
			if l := bisector.Length(); l > zeroLengthThreshold {
				s.outline = append(s.outline, P.Add(bisector.Mul(d/(l*sinHalf))))
			}
		}
		// beyond the miter limit this is a bevel

	case graphics.LineJoinRound:
		sweep := math.Acos(max(-1, min(1, cosTheta)))
		if sinTheta <= 0 {
			sweep = -sweep
		}
		s.addArc(P, d, vec.Vec2{X: -T1.Y, Y: T1.X}, sweep, false)
	}
}

// addArc appends the vertices of a circular arc to s.outline.
// startDir is the unit vector from center to the start of the arc and
// sweep is the angle in radians (positive = CCW).
func (s *Stroker) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, includeStart bool) {
	devRadius := max(
		s.flat.toDevice(vec.Vec2{X: radius}).Length(),
		s.flat.toDevice(vec.Vec2{Y: radius}).Length())

	n := 1
	if devRadius >= s.flatness {
		// A chord spanning angle θ deviates from the circle by
		// r·(1 - cos(θ/2)).
		angleStep := 2 * math.Acos(1-s.flatness/devRadius)
		if angleStep <= 0 || math.IsNaN(angleStep) {
			angleStep = math.Pi / 4
		}
		n = int(max(min(math.Ceil(math.Abs(sweep)/angleStep), maxCurveSegments), 1))
	}

	dt := sweep / float64(n)
	first := 1
	if includeStart {
		first = 0
	}
	for i := first; i <= n; i++ {
		sin, cos := math.Sincos(float64(i) * dt)
		dir := vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
		s.outline = append(s.outline, center.Add(dir.Mul(radius)))
	}
}
