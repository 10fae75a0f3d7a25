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
	"maps"
	"math"
	"slices"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/raster/testcases"
)

// fill feeds p into r, using the coordinates unchanged.
func fill(r *Rasteriser, p *path.Data) {
	NewContext(nil).FeedData(p, matrix.Identity, r)
}

// TestTriangleCoverage verifies exact coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10.
// Each pixel X should have coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	trianglePath := (&path.Data{}).
		MoveTo(v(0, 0)).
		LineTo(v(10, 0)).
		LineTo(v(10, 1)).
		Close()

	for _, threshold := range []int{1 << 30, 0} {
		r := NewRasteriser(true)
		r.smallPathThreshold = threshold
		r.Init(0, 0, 10, 1, NonZero)
		fill(r, trianglePath)

		coverage := make([]float32, 10)
		r.Coverage(func(y, xMin int, cov []float32) {
			if y == 0 {
				copy(coverage[xMin:], cov)
			}
		})

		const epsilon = 1e-6
		for x := range 10 {
			expected := float32(2*x+1) / 20.0
			actual := coverage[x]
			if math.Abs(float64(actual-expected)) > epsilon {
				t.Errorf("threshold %d, pixel %d: expected coverage %.4f, got %.4f",
					threshold, x, expected, actual)
			}
		}
	}
}

func TestRasteriserWinding(t *testing.T) {
	square := rectanglePath(2, 2, 6, 6)
	reversed := (&path.Data{}).MoveTo(v(2, 2)).LineTo(v(2, 6)).LineTo(v(6, 6)).LineTo(v(6, 2)).Close()

	double := rectanglePath(2, 2, 6, 6)
	double.Cmds = append(double.Cmds, square.Cmds...)
	double.Coords = append(double.Coords, square.Coords...)

	cancel := rectanglePath(2, 2, 6, 6)
	cancel.Cmds = append(cancel.Cmds, reversed.Cmds...)
	cancel.Coords = append(cancel.Coords, reversed.Coords...)

	cases := []struct {
		name string
		p    *path.Data
		rule FillRule
		area float64
	}{
		{"ccw", square, NonZero, 16},
		{"cw", reversed, NonZero, 16},
		{"ccw_evenodd", square, EvenOdd, 16},
		{"cw_evenodd", reversed, EvenOdd, 16},
		{"double", double, NonZero, 16},
		{"double_evenodd", double, EvenOdd, 0},
		{"cancel", cancel, NonZero, 0},
		{"cancel_evenodd", cancel, EvenOdd, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewRasteriser(true)
			r.Init(0, 0, 8, 8, c.rule)
			fill(r, c.p)
			if got := totalCoverage(r); math.Abs(got-c.area) > 1e-4 {
				t.Errorf("area %g, want %g", got, c.area)
			}
		})
	}
}

// TestRasteriserImplicitClose checks that open subpaths are filled as if
// they were closed.
func TestRasteriserImplicitClose(t *testing.T) {
	open := (&path.Data{}).
		MoveTo(v(1, 1)).LineTo(v(7, 1)).LineTo(v(4, 7)).
		MoveTo(v(9, 1)).LineTo(v(15, 1)).LineTo(v(12, 7))
	closed := (&path.Data{}).
		MoveTo(v(1, 1)).LineTo(v(7, 1)).LineTo(v(4, 7)).Close().
		MoveTo(v(9, 1)).LineTo(v(15, 1)).LineTo(v(12, 7)).Close()

	r := NewRasteriser(true)
	r.Init(0, 0, 16, 8, NonZero)
	fill(r, closed)
	want := r.Alpha()

	r.Init(0, 0, 16, 8, NonZero)
	fill(r, open)
	got := r.Alpha()

	if !slices.Equal(want.Pix, got.Pix) {
		t.Error("open subpaths are not closed")
	}
	if a := totalCoverage(r); math.Abs(a-36) > 1e-4 {
		t.Errorf("area %g, want 36", a)
	}
}

func TestRasteriserNoAA(t *testing.T) {
	cases := []struct {
		x1   float64
		want float64
	}{
		{0.49, 0},
		{0.5, 4},
		{1.25, 4},
		{1.75, 8},
	}
	for _, c := range cases {
		r := NewRasteriser(false)
		r.Init(0, 0, 4, 4, NonZero)
		fill(r, rectanglePath(0, 0, c.x1, 4))
		if got := totalCoverage(r); got != c.want {
			t.Errorf("x1=%g: %g pixels set, want %g", c.x1, got, c.want)
		}
	}
}

func TestRasteriserCurves(t *testing.T) {
	const radius = 20.0
	circle := (&path.Data{}).MoveTo(v(50, 50-radius))
	const k = 0.5522847498 * radius
	circle.CubeTo(v(50+k, 50-radius), v(50+radius, 50-k), v(50+radius, 50))
	circle.CubeTo(v(50+radius, 50+k), v(50+k, 50+radius), v(50, 50+radius))
	circle.QuadTo(v(50-radius, 50+radius), v(50-radius, 50))
	circle.QuadTo(v(50-radius, 50-radius), v(50, 50-radius))
	circle.Close()

	r := NewRasteriser(true)
	r.Init(0, 0, 100, 100, NonZero)
	fill(r, circle)

	// Two quarters are circular arcs.  The other two are parabolic arcs,
	// each enclosing 5/6 of the square r×r.  Flattening loses about 1%.
	want := math.Pi*radius*radius/2 + 2*(radius*radius*5/6)
	if got := totalCoverage(r); got > want || got < 0.98*want {
		t.Errorf("area %g, want %g", got, want)
	}
}

func TestRasteriserHugeCoordinates(t *testing.T) {
	const huge = 1e30
	p := rectanglePath(-huge, -huge, 5, 5)

	for _, threshold := range []int{1 << 30, 0} {
		r := NewRasteriser(true)
		r.smallPathThreshold = threshold
		r.Init(0, 0, 10, 10, NonZero)
		fill(r, p)
		if got := totalCoverage(r); math.Abs(got-25) > 1e-4 {
			t.Errorf("threshold %d: area %g, want 25", threshold, got)
		}
	}
}

func TestRasteriserLineFirst(t *testing.T) {
	r := NewRasteriser(true)
	r.Init(0, 0, 8, 8, NonZero)
	r.LineTo(v(1, 1))
	r.LineTo(v(5, 1))
	r.LineTo(v(5, 5))
	r.LineTo(v(1, 5))
	r.PathDone()
	if got := totalCoverage(r); math.Abs(got-16) > 1e-4 {
		t.Errorf("area %g, want 16", got)
	}
}

func TestRasteriserInit(t *testing.T) {
	r := NewRasteriser(true)
	r.Init(0, 0, 8, 8, EvenOdd)
	fill(r, rectanglePath(0, 0, 8, 8))

	r.Init(2, 3, 4, 5, NonZero)
	if x, y, w, h := r.Bounds(); x != 2 || y != 3 || w != 4 || h != 5 {
		t.Errorf("bounds (%d, %d, %d, %d)", x, y, w, h)
	}
	if r.Rule() != NonZero {
		t.Error("wrong fill rule")
	}
	if got := totalCoverage(r); got != 0 {
		t.Errorf("previous path not discarded: area %g", got)
	}

	r.Init(0, 0, -5, 3, NonZero)
	if _, _, w, _ := r.Bounds(); w != 0 {
		t.Errorf("negative width not clamped: %d", w)
	}
	fill(r, rectanglePath(0, 0, 2, 2))
	if got := totalCoverage(r); got != 0 {
		t.Errorf("output in an empty region: area %g", got)
	}
}

func TestRasteriserAlpha(t *testing.T) {
	r := NewRasteriser(true)
	r.Init(10, 20, 6, 4, NonZero)
	fill(r, rectanglePath(11, 21, 13.5, 23))

	img := r.Alpha()
	if img.Bounds() != image.Rect(10, 20, 16, 24) {
		t.Fatalf("bounds %v", img.Bounds())
	}
	cases := []struct {
		x, y int
		want uint8
	}{
		{10, 20, 0},
		{11, 21, 255},
		{12, 22, 255},
		{13, 21, 128},
		{14, 21, 0},
		{11, 23, 0},
	}
	for _, c := range cases {
		if got := img.AlphaAt(c.x, c.y).A; got != c.want {
			t.Errorf("pixel (%d, %d): got %d, want %d", c.x, c.y, got, c.want)
		}
	}
}

// TestRasteriserAllocs checks that a reused rasteriser does not allocate.
func TestRasteriserAllocs(t *testing.T) {
	c := NewContext(nil)
	r := NewRasteriser(true)
	p := rectanglePath(1.5, 2.5, 60.25, 40.75)
	emit := func(y, xMin int, coverage []float32) {}

	run := func() {
		r.Init(0, 0, 64, 64, NonZero)
		c.FeedData(p, matrix.Identity, r)
		r.Coverage(emit)
	}
	run()

	if n := testing.AllocsPerRun(10, run); n != 0 {
		t.Errorf("%g allocations per run", n)
	}
}

// BenchmarkRasteriseAll measures steady-state performance by reusing a
// single Context across all test cases.  This tests buffer reuse with
// varying clip sizes.
func BenchmarkRasteriseAll(b *testing.B) {
	var cases []testcases.TestCase
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		cases = append(cases, testcases.All[category]...)
	}
	type job struct {
		shape  Shape
		stroke *StrokeStyle
		tc     testcases.TestCase
	}
	jobs := make([]job, len(cases))
	for i, tc := range cases {
		shape, stroke := exampleShape(tc)
		jobs[i] = job{shape, stroke, tc}
	}

	c := NewContext(nil)
	emit := func(y, xMin int, coverage []float32) {}

	b.ReportAllocs()
	for b.Loop() {
		for _, j := range jobs {
			clip := rect.Rect{URx: float64(j.tc.Width), URy: float64(j.tc.Height)}
			r, err := c.SetupRenderer(j.shape, j.stroke, j.tc.CTM, clip, true)
			if err != nil {
				b.Fatal(err)
			}
			r.Coverage(emit)
		}
	}
}
