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
	"cmp"
	"image"
	"math"
	"slices"

	"github.com/chewxy/math32"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Default values for rasteriser and stroke parameters.
const (
	// defaultFlatness is the default curve flattening tolerance in device
	// pixels.  0.25 is below the threshold of visual perception.
	defaultFlatness = 0.25

	// defaultMiterLimit matches PDF and PostScript.  Joins become bevels
	// when the interior angle is less than about 11.5 degrees.
	defaultMiterLimit = 10.0
)

const (
	// horizontalEdgeThreshold is the minimum vertical extent for an edge
	// to contribute to coverage.
	horizontalEdgeThreshold = 1e-10

	// smallPathThreshold is the maximum bounding box area (in pixels) for
	// rasterising with full 2D buffers.  Larger paths use an active edge
	// list and one scanline of buffer.
	smallPathThreshold = 65536
)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasteriser is the terminal stage of a pipeline.  It collects the edges
// of a path in device space and computes per-pixel coverage.
//
// Usage: call Init, feed one path through the [Consumer] methods (which
// ends with PathDone) and read the result with Coverage.  Open subpaths
// are closed implicitly.  Internal buffers grow as needed but never
// shrink, so a Rasteriser which is reused does not allocate in steady
// state.
type Rasteriser struct {
	// Flatness is the curve flattening tolerance in device pixels.
	// Must be > 0.
	Flatness float64

	antialias bool
	rule      FillRule

	// output region
	x0, y0 int
	x1, y1 int

	smallPathThreshold int

	flat flattener

	start, current vec.Vec2
	hasCurrent     bool

	cover     []float32 // cover change per pixel; reused as output
	area      []float32 // area within pixel
	edges     []edge
	activeIdx []int
	rowXMin   []int
	rowXMax   []int
	crossings []float64 // y values where an edge crosses pixel boundaries

	bboxEmpty bool
	bboxXMin  float64
	bboxXMax  float64
	bboxYMin  float64
	bboxYMax  float64
}

// NewRasteriser creates a new Rasteriser.  If antialias is false, all
// coverage values are either 0 or 1.
func NewRasteriser(antialias bool) *Rasteriser {
	return &Rasteriser{
		Flatness:           defaultFlatness,
		antialias:          antialias,
		smallPathThreshold: smallPathThreshold,
		bboxEmpty:          true,
	}
}

// Antialias reports whether r computes fractional coverage values.
func (r *Rasteriser) Antialias() bool {
	return r.antialias
}

// Init prepares r for a new path.  The output region is the rectangle
// [x, x+w) × [y, y+h) in device pixels.
func (r *Rasteriser) Init(x, y, w, h int, rule FillRule) {
	r.Reset()
	r.x0, r.y0 = x, y
	r.x1, r.y1 = x+max(w, 0), y+max(h, 0)
	r.rule = rule
}

// Bounds returns the output region set by Init.
func (r *Rasteriser) Bounds() (x, y, w, h int) {
	return r.x0, r.y0, r.x1 - r.x0, r.y1 - r.y0
}

// Rule returns the fill rule set by Init.
func (r *Rasteriser) Rule() FillRule {
	return r.rule
}

// Reset discards the current path and the output region.  Buffer capacity
// is kept.
func (r *Rasteriser) Reset() {
	r.x0, r.y0, r.x1, r.y1 = 0, 0, 0, 0
	r.rule = NonZero
	r.hasCurrent = false
	r.bboxEmpty = true

	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.edges = r.edges[:0]
	r.activeIdx = r.activeIdx[:0]
	r.rowXMin = r.rowXMin[:0]
	r.rowXMax = r.rowXMax[:0]
	r.crossings = r.crossings[:0]
}

// MoveTo implements the [Consumer] interface.
func (r *Rasteriser) MoveTo(p vec.Vec2) {
	r.closeSubpath()
	r.start = p
	r.current = p
	r.hasCurrent = true
}

// LineTo implements the [Consumer] interface.
func (r *Rasteriser) LineTo(p vec.Vec2) {
	if !r.hasCurrent {
		r.MoveTo(p)
		return
	}
	r.addEdge(r.current, p)
	r.current = p
}

// QuadTo implements the [Consumer] interface.
func (r *Rasteriser) QuadTo(c, p vec.Vec2) {
	if !r.hasCurrent {
		r.MoveTo(p)
		return
	}
	r.syncFlattener()
	r.flat.quadratic(r.current, c, p, r.addEdge)
	r.current = p
}

// CubeTo implements the [Consumer] interface.
func (r *Rasteriser) CubeTo(c1, c2, p vec.Vec2) {
	if !r.hasCurrent {
		r.MoveTo(p)
		return
	}
	r.syncFlattener()
	r.flat.cubic(r.current, c1, c2, p, r.addEdge)
	r.current = p
}

// ClosePath implements the [Consumer] interface.
func (r *Rasteriser) ClosePath() {
	r.closeSubpath()
}

// PathDone implements the [Consumer] interface.
func (r *Rasteriser) PathDone() {
	r.closeSubpath()
	r.hasCurrent = false
}

func (r *Rasteriser) closeSubpath() {
	if r.hasCurrent && r.current != r.start {
		r.addEdge(r.current, r.start)
	}
	r.current = r.start
}

func (r *Rasteriser) syncFlattener() {
	r.flat.linear = matrix.Identity
	r.flat.flatness = r.Flatness
	if !(r.flat.flatness > 0) {
		r.flat.flatness = defaultFlatness
	}
}

// addEdge adds an edge in device coordinates.  Horizontal edges are
// skipped.
func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	dy := p1.Y - p0.Y
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}

	r.edges = append(r.edges, edge{
		x0: p0.X, y0: p0.Y,
		x1: p1.X, y1: p1.Y,
		dxdy: (p1.X - p0.X) / dy,
	})

	xMin, xMax := min(p0.X, p1.X), max(p0.X, p1.X)
	yMin, yMax := min(p0.Y, p1.Y), max(p0.Y, p1.Y)
	if r.bboxEmpty {
		r.bboxXMin, r.bboxXMax = xMin, xMax
		r.bboxYMin, r.bboxYMax = yMin, yMax
		r.bboxEmpty = false
	} else {
		r.bboxXMin = min(r.bboxXMin, xMin)
		r.bboxXMax = max(r.bboxXMax, xMax)
		r.bboxYMin = min(r.bboxYMin, yMin)
		r.bboxYMax = max(r.bboxYMax, yMax)
	}
}

// Coverage computes the coverage of the path fed into r since the last
// Init and delivers it row by row.  Only rows inside the output region
// with at least one non-zero value are emitted, in order of increasing y.
// The coverage slice starts at pixel xMin and is only valid for the
// duration of the callback.
func (r *Rasteriser) Coverage(emit func(y, xMin int, coverage []float32)) {
	if len(r.edges) == 0 {
		return
	}

	xMin := floorIn(r.bboxXMin, r.x0, r.x1)
	xMax := floorIn(r.bboxXMax, r.x0-1, r.x1-1) + 1
	yMin := floorIn(r.bboxYMin, r.y0, r.y1)
	yMax := floorIn(r.bboxYMax, r.y0-1, r.y1-1) + 1
	if xMin >= xMax || yMin >= yMax {
		return
	}

	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.fillSmallPath(xMin, xMax, yMin, yMax, emit)
	} else {
		r.fillLargePath(xMin, xMax, yMin, yMax, emit)
	}
}

// Alpha renders the coverage into a new alpha mask covering the output
// region.
func (r *Rasteriser) Alpha() *image.Alpha {
	dst := image.NewAlpha(image.Rect(r.x0, r.y0, r.x1, r.y1))
	r.Coverage(func(y, xMin int, coverage []float32) {
		off := dst.PixOffset(xMin, y)
		for i, c := range coverage {
			dst.Pix[off+i] = uint8(c*255 + 0.5)
		}
	})
	return dst
}

// Coverage accumulation model:
//
// For each pixel, we track two values:
//   cover: signed vertical extent of edges crossing this pixel column
//   area:  horizontal position weighting (how far right the crossing is)
//
// An edge crossing a pixel contributes:
//   cover = sign * dy   (where sign is +1 for downward, -1 for upward)
//   area  = cover * (1 - xFrac)   (xFrac is the position within the pixel)
//
// The scanline is then integrated from left to right:
//   pixel_coverage = accumulated_cover + area[i]
//   accumulated_cover += cover[i]
//
// This gives the signed area of the path within each pixel, which is
// clamped to [0,1] (nonzero) or folded (even-odd).

// accumulateEdge adds the contribution of e within scanline y to the cover
// and area buffers, which are indexed by x - bboxXMin.  Edges which span
// several pixels are split at the pixel boundaries.
func (r *Rasteriser) accumulateEdge(e *edge, y int, cover, area []float32, bboxXMin, bboxXMax int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xLeft := e.x0 + e.dxdy*(yTop-e.y0)
	xRight := e.x0 + e.dxdy*(yBot-e.y0)
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}
	pixLeft := floorIn(xLeft, bboxXMin-1, bboxXMax)
	pixRight := floorIn(xRight, bboxXMin-1, bboxXMax)

	if pixRight < bboxXMin {
		// left of the region: the full cover carries into the first pixel
		coverVal := sign * float32(yBot-yTop)
		cover[0] += coverVal
		area[0] += coverVal
		return
	}
	if pixLeft >= bboxXMax {
		return
	}

	if pixLeft == pixRight {
		r.accumulatePiece(e, yTop, yBot, sign, cover, area, bboxXMin, bboxXMax)
		return
	}

	// y values where the edge crosses integer x boundaries
	dydx := 1 / e.dxdy
	r.crossings = append(r.crossings[:0], yTop, yBot)
	for x := pixLeft + 1; x <= pixRight; x++ {
		yAtX := e.y0 + dydx*(float64(x)-e.x0)
		if yAtX > yTop && yAtX < yBot {
			r.crossings = append(r.crossings, yAtX)
		}
	}
	slices.Sort(r.crossings)

	for i := range len(r.crossings) - 1 {
		if r.crossings[i+1] > r.crossings[i] {
			r.accumulatePiece(e, r.crossings[i], r.crossings[i+1], sign, cover, area, bboxXMin, bboxXMax)
		}
	}
}

// accumulatePiece handles the part of e between yTop and yBot, which must
// fall within a single pixel column.
func (r *Rasteriser) accumulatePiece(e *edge, yTop, yBot float64, sign float32, cover, area []float32, bboxXMin, bboxXMax int) {
	coverVal := sign * float32(yBot-yTop)

	xMid := e.x0 + e.dxdy*((yTop+yBot)/2-e.y0)
	pix := floorIn(xMid, bboxXMin-1, bboxXMax)

	switch {
	case pix < bboxXMin:
		cover[0] += coverVal
		area[0] += coverVal
	case pix < bboxXMax:
		xFrac := xMid - float64(pix)
		idx := pix - bboxXMin
		cover[idx] += coverVal
		area[idx] += coverVal * float32(1-xFrac)
	}
}

// integrate converts accumulated cover/area values into coverage, in
// place in cover.
func (r *Rasteriser) integrate(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := math32.Abs(accum + area[i])
		accum += cover[i]

		var cov float32
		if r.rule == EvenOdd {
			// 1 - |1 - (raw mod 2)|
			cov = 1 - math32.Abs(1-math32.Mod(raw, 2))
		} else {
			cov = min(raw, 1)
		}

		if !r.antialias {
			if cov >= 0.5 {
				cov = 1
			} else {
				cov = 0
			}
		}
		cover[i] = cov
	}
}

// floorIn returns floor(v), clamped to [lo, hi].  The clamping is done
// before the conversion to int, so that huge coordinates cannot overflow.
func floorIn(v float64, lo, hi int) int {
	switch {
	case !(v >= float64(lo)): // also catches NaN
		return lo
	case v >= float64(hi):
		return hi
	default:
		return int(math.Floor(v))
	}
}

// trimZeros returns the non-zero portion of coverage and its starting
// offset, or nil if coverage is entirely zero.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	n := len(coverage)
	lo := 0
	for lo < n && coverage[lo] == 0 {
		lo++
	}
	if lo == n {
		return nil, 0
	}
	hi := n - 1
	for hi > lo && coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}

// rowColumn returns the pixel column index (relative to xMin) of the
// midpoint of e within scanline y, clamped to the region.
func rowColumn(e *edge, y, xMin, xMax int) (int, bool) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return 0, false
	}
	x := floorIn(e.x0+e.dxdy*((yTop+yBot)/2-e.y0), xMin, xMax-1)
	return x - xMin, true
}

// fillSmallPath rasterises using 2D buffers covering the whole bounding
// box.
func (r *Rasteriser) fillSmallPath(xMin, xMax, yMin, yMax int, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)

	r.rowXMin = slices.Grow(r.rowXMin[:0], height)[:height]
	r.rowXMax = slices.Grow(r.rowXMax[:0], height)[:height]
	for i := range r.rowXMin {
		r.rowXMin[i] = width
		r.rowXMax[i] = -1
	}

	for i := range r.edges {
		e := &r.edges[i]

		eyMin := floorIn(min(e.y0, e.y1), yMin, yMax)
		eyMax := floorIn(max(e.y0, e.y1), yMin-1, yMax-1) + 1
		for y := eyMin; y < eyMax; y++ {
			row := y - yMin
			off := row * width
			r.accumulateEdge(e, y, r.cover[off:off+width], r.area[off:off+width], xMin, xMax)

			if x, ok := rowColumn(e, y, xMin, xMax); ok {
				r.rowXMin[row] = min(r.rowXMin[row], x)
				r.rowXMax[row] = max(r.rowXMax[row], x)
			}
		}
	}

	for row := range height {
		if r.rowXMax[row] < 0 {
			continue
		}
		off := row * width
		coverage := r.cover[off : off+width]
		r.integrate(coverage, r.area[off:off+width])
		if trimmed, offset := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+offset, trimmed)
		}
	}
}

// fillLargePath rasterises one scanline at a time using an active edge
// list.
func (r *Rasteriser) fillLargePath(xMin, xMax, yMin, yMax int, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.activeIdx = r.activeIdx[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < yf+1 {
			r.activeIdx = append(r.activeIdx, next)
			next++
		}
		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)

		touched := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]
			if max(e.y0, e.y1) <= yf {
				// swap-remove finished edges
				r.activeIdx[i] = r.activeIdx[len(r.activeIdx)-1]
				r.activeIdx = r.activeIdx[:len(r.activeIdx)-1]
				continue
			}
			r.accumulateEdge(e, y, r.cover, r.area, xMin, xMax)
			if _, ok := rowColumn(e, y, xMin, xMax); ok {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		r.integrate(r.cover, r.area)
		if trimmed, offset := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}
