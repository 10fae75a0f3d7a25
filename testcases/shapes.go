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
	"math"

	"seehuhn.de/go/geom/path"
)

// kappa is the control point distance for approximating a quarter circle
// with a cubic Bézier curve.
const kappa = 0.5522847498

// polyline builds an open path through the given points, which are given
// as x, y pairs.
func polyline(xy ...float64) *path.Data {
	p := (&path.Data{}).MoveTo(pt(xy[0], xy[1]))
	for i := 2; i+1 < len(xy); i += 2 {
		p = p.LineTo(pt(xy[i], xy[i+1]))
	}
	return p
}

// polygon builds a closed path through the given points.
func polygon(xy ...float64) *path.Data {
	return polyline(xy...).Close()
}

// rectangle builds an axis-aligned rectangle from two corners.
func rectangle(x1, y1, x2, y2 float64) *path.Data {
	return polygon(x1, y1, x2, y1, x2, y2, x1, y2)
}

// appendRectangle adds a rectangle as a new subpath of p.  If ccw is set,
// the orientation is reversed.
func appendRectangle(p *path.Data, x1, y1, x2, y2 float64, ccw bool) *path.Data {
	if ccw {
		return p.MoveTo(pt(x1, y1)).LineTo(pt(x1, y2)).LineTo(pt(x2, y2)).LineTo(pt(x2, y1)).Close()
	}
	return p.MoveTo(pt(x1, y1)).LineTo(pt(x2, y1)).LineTo(pt(x2, y2)).LineTo(pt(x1, y2)).Close()
}

// fivePointStar builds a self-intersecting five-pointed star.
func fivePointStar(cx, cy, r float64) *path.Data {
	var xy []float64
	for _, i := range []int{0, 2, 4, 1, 3} {
		angle := float64(i)*2*math.Pi/5 - math.Pi/2
		xy = append(xy, cx+r*math.Cos(angle), cy+r*math.Sin(angle))
	}
	return polygon(xy...)
}

// circle builds an approximate circle using four cubic Bézier curves.
func circle(cx, cy, r float64) *path.Data {
	k := r * kappa
	return (&path.Data{}).
		MoveTo(pt(cx+r, cy)).
		CubeTo(pt(cx+r, cy-k), pt(cx+k, cy-r), pt(cx, cy-r)).
		CubeTo(pt(cx-k, cy-r), pt(cx-r, cy-k), pt(cx-r, cy)).
		CubeTo(pt(cx-r, cy+k), pt(cx-k, cy+r), pt(cx, cy+r)).
		CubeTo(pt(cx+k, cy+r), pt(cx+r, cy+k), pt(cx+r, cy)).
		Close()
}

// ring builds a square annulus.  Both squares have the same orientation,
// so the hole only appears with the even-odd rule.
func ring(cx, cy, outer, inner float64) *path.Data {
	p := appendRectangle(&path.Data{}, cx-outer, cy-outer, cx+outer, cy+outer, false)
	return appendRectangle(p, cx-inner, cy-inner, cx+inner, cy+inner, false)
}

// grid builds rows×cols separate rectangles filling a w×h canvas.
func grid(rows, cols int, w, h, gap float64) *path.Data {
	cellW := w / float64(cols)
	cellH := h / float64(rows)
	p := &path.Data{}
	for row := range rows {
		for col := range cols {
			x1 := float64(col)*cellW + gap
			y1 := float64(row)*cellH + gap
			p = appendRectangle(p, x1, y1, x1+cellW-2*gap, y1+cellH-2*gap, false)
		}
	}
	return p
}
