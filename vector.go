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
	"image"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/vec"
)

// VectorConsumer is a terminal stage which draws into a
// [vector.Rasterizer].  The x/image rasterizer only supports the nonzero
// winding rule, so VectorConsumer is suitable for strokes and for nonzero
// fills.
type VectorConsumer struct {
	// Rasterizer receives the path.  Device pixel Bounds.Min is at
	// position (0, 0) of the rasterizer.
	Rasterizer *vector.Rasterizer

	// Bounds is the device space region covered by Rasterizer.
	Bounds image.Rectangle

	done bool
}

// NewVectorConsumer returns a VectorConsumer for the device space region
// bounds.
func NewVectorConsumer(bounds image.Rectangle) *VectorConsumer {
	return &VectorConsumer{
		Rasterizer: vector.NewRasterizer(bounds.Dx(), bounds.Dy()),
		Bounds:     bounds,
	}
}

// Reset clears the rasterizer and sets a new region.
func (v *VectorConsumer) Reset(bounds image.Rectangle) {
	v.Rasterizer.Reset(bounds.Dx(), bounds.Dy())
	v.Bounds = bounds
	v.done = false
}

func (v *VectorConsumer) local(p vec.Vec2) (float32, float32) {
	return float32(p.X - float64(v.Bounds.Min.X)), float32(p.Y - float64(v.Bounds.Min.Y))
}

// MoveTo implements the [Consumer] interface.
// An open subpath is closed first, as in [Rasteriser].
func (v *VectorConsumer) MoveTo(p vec.Vec2) {
	v.Rasterizer.ClosePath()
	x, y := v.local(p)
	v.Rasterizer.MoveTo(x, y)
}

// LineTo implements the [Consumer] interface.
func (v *VectorConsumer) LineTo(p vec.Vec2) {
	x, y := v.local(p)
	v.Rasterizer.LineTo(x, y)
}

// QuadTo implements the [Consumer] interface.
func (v *VectorConsumer) QuadTo(c, p vec.Vec2) {
	cx, cy := v.local(c)
	x, y := v.local(p)
	v.Rasterizer.QuadTo(cx, cy, x, y)
}

// CubeTo implements the [Consumer] interface.
func (v *VectorConsumer) CubeTo(c1, c2, p vec.Vec2) {
	c1x, c1y := v.local(c1)
	c2x, c2y := v.local(c2)
	x, y := v.local(p)
	v.Rasterizer.CubeTo(c1x, c1y, c2x, c2y, x, y)
}

// ClosePath implements the [Consumer] interface.
func (v *VectorConsumer) ClosePath() {
	v.Rasterizer.ClosePath()
}

// PathDone implements the [Consumer] interface.
func (v *VectorConsumer) PathDone() {
	v.Rasterizer.ClosePath()
	v.done = true
}

// Done reports whether a complete path has been received since the last
// Reset.
func (v *VectorConsumer) Done() bool {
	return v.done
}

// Alpha renders the coverage into a new alpha mask covering Bounds.
func (v *VectorConsumer) Alpha() *image.Alpha {
	dst := image.NewAlpha(v.Bounds)
	v.Rasterizer.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}
