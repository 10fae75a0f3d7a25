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

// deltaTransformer applies the 2×2 linear part of a matrix to all points
// before forwarding them.  Translation is never applied: undoing the
// linear part of T·A leaves A⁻¹·T·A, which is again a translation, so the
// stroker only ever sees a shifted copy of the untransformed path.
type deltaTransformer struct {
	out        Consumer
	a, b, c, d float64 // x' = a·x + c·y, y' = b·x + d·y
}

// init sets up t to apply the linear part of m.  If m is the identity or
// the zero matrix, no stage is needed and out is returned unchanged.
func (t *deltaTransformer) init(out Consumer, m matrix.Matrix) Consumer {
	t.out = nil
	if isIdentity(m) || m[0] == 1 && m[1] == 0 && m[2] == 0 && m[3] == 1 {
		return out
	}
	t.out = out
	t.a, t.b, t.c, t.d = m[0], m[1], m[2], m[3]
	return t
}

// initInverse sets up t to apply the inverse of the linear part of m.
// The caller must make sure that m is invertible.
func (t *deltaTransformer) initInverse(out Consumer, m matrix.Matrix) Consumer {
	if isIdentity(m) {
		t.out = nil
		return out
	}
	det := m[0]*m[3] - m[1]*m[2]
	inv := matrix.Matrix{m[3] / det, -m[1] / det, -m[2] / det, m[0] / det, 0, 0}
	return t.init(out, inv)
}

func (t *deltaTransformer) apply(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: t.a*p.X + t.c*p.Y,
		Y: t.b*p.X + t.d*p.Y,
	}
}

func (t *deltaTransformer) MoveTo(p vec.Vec2) {
	t.out.MoveTo(t.apply(p))
}

func (t *deltaTransformer) LineTo(p vec.Vec2) {
	t.out.LineTo(t.apply(p))
}

func (t *deltaTransformer) QuadTo(c, p vec.Vec2) {
	t.out.QuadTo(t.apply(c), t.apply(p))
}

func (t *deltaTransformer) CubeTo(c1, c2, p vec.Vec2) {
	t.out.CubeTo(t.apply(c1), t.apply(c2), t.apply(p))
}

func (t *deltaTransformer) ClosePath() {
	t.out.ClosePath()
}

func (t *deltaTransformer) PathDone() {
	t.out.PathDone()
}

// isSingular reports whether the linear part of m cannot be inverted.
func isSingular(m matrix.Matrix) bool {
	det := m[0]*m[3] - m[1]*m[2]
	return det == 0 || math.IsNaN(det) || math.IsInf(det, 0)
}

// linearPart returns m without its translation.  The identity is returned
// if m is the zero matrix.
func linearPart(m matrix.Matrix) matrix.Matrix {
	if isIdentity(m) {
		return matrix.Identity
	}
	m[4], m[5] = 0, 0
	return m
}

// transformPoint applies the full affine map m to p.
func transformPoint(m *matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}
