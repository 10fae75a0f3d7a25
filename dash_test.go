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
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

func TestDasher(t *testing.T) {
	line := (&path.Data{}).MoveTo(v(0, 0)).LineTo(v(10, 0))
	square := rectanglePath(0, 0, 10, 10)

	cases := []struct {
		name   string
		path   *path.Data
		dashes []float64
		phase  float64
		want   []call
	}{
		{
			name:   "simple",
			path:   line,
			dashes: []float64{4, 2},
			want: []call{
				moveTo(6, 0), lineTo(10, 0),
				moveTo(0, 0), lineTo(4, 0),
				pathDone,
			},
		},
		{
			name:   "phase",
			path:   line,
			dashes: []float64{4, 2},
			phase:  5,
			want: []call{
				moveTo(1, 0), lineTo(5, 0),
				moveTo(7, 0), lineTo(10, 0),
				pathDone,
			},
		},
		{
			name:   "negative_phase",
			path:   line,
			dashes: []float64{4, 2},
			phase:  -1,
			want: []call{
				moveTo(1, 0), lineTo(5, 0),
				moveTo(7, 0), lineTo(10, 0),
				pathDone,
			},
		},
		{
			name:   "nan_phase",
			path:   line,
			dashes: []float64{4, 2},
			phase:  math.NaN(),
			want: []call{
				moveTo(6, 0), lineTo(10, 0),
				moveTo(0, 0), lineTo(4, 0),
				pathDone,
			},
		},
		{
			name:   "odd_length",
			path:   line,
			dashes: []float64{3},
			want: []call{
				moveTo(6, 0), lineTo(9, 0),
				moveTo(0, 0), lineTo(3, 0),
				pathDone,
			},
		},
		{
			name:   "dots",
			path:   (&path.Data{}).MoveTo(v(0, 0)).LineTo(v(25, 0)),
			dashes: []float64{0, 10},
			want: []call{
				moveTo(10, 0), lineTo(10, 0),
				moveTo(20, 0), lineTo(20, 0),
				moveTo(0, 0), lineTo(0, 0),
				pathDone,
			},
		},
		{
			name:   "closed_joined",
			path:   square,
			dashes: []float64{6, 3},
			want: []call{
				moveTo(9, 0), lineTo(10, 0), lineTo(10, 5),
				moveTo(10, 8), lineTo(10, 10), lineTo(6, 10),
				moveTo(3, 10), lineTo(0, 10), lineTo(0, 7),
				// the last dash continues into the first one
				moveTo(0, 4), lineTo(0, 0), lineTo(6, 0),
				pathDone,
			},
		},
		{
			name:   "closed_gap_at_end",
			path:   square,
			dashes: []float64{5, 5},
			want: []call{
				moveTo(10, 0), lineTo(10, 5),
				moveTo(10, 10), lineTo(5, 10),
				moveTo(0, 10), lineTo(0, 5),
				moveTo(0, 0), lineTo(5, 0),
				pathDone,
			},
		},
		{
			name:   "closed_single_dash",
			path:   rectanglePath(0, 0, 1, 1),
			dashes: []float64{100, 1},
			want: []call{
				moveTo(0, 0), lineTo(1, 0), lineTo(1, 1), lineTo(0, 1), lineTo(0, 0),
				closePath,
				pathDone,
			},
		},
		{
			name:   "two_subpaths",
			path:   (&path.Data{}).MoveTo(v(0, 0)).LineTo(v(3, 0)).MoveTo(v(0, 5)).LineTo(v(3, 5)),
			dashes: []float64{2, 2},
			want: []call{
				moveTo(0, 0), lineTo(2, 0),
				moveTo(0, 5), lineTo(2, 5),
				pathDone,
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := NewContext(nil)
			rec := &recorder{}
			d := &Dasher{}
			pc, err := d.init(rec, c.dashes, c.phase, false)
			if err != nil {
				t.Fatal(err)
			}
			ctx.FeedData(c.path, matrix.Identity, pc)
			if diff := cmp.Diff(c.want, rec.calls, approx); diff != "" {
				t.Errorf("unexpected dashes (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDasherCurves(t *testing.T) {
	p := (&path.Data{}).MoveTo(v(0, 0)).CubeTo(v(0, 10), v(10, 10), v(10, 0))
	rec := &recorder{}
	d := &Dasher{}
	pc, err := d.init(rec, []float64{1, 1}, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	NewContext(nil).FeedData(p, matrix.Identity, pc)

	if rec.count("QuadTo") != 0 || rec.count("CubeTo") != 0 {
		t.Error("curves in the dashed path")
	}
	// The curve has length 20.
	if n := rec.count("MoveTo"); n < 9 || n > 11 {
		t.Errorf("%d dashes", n)
	}
}

func TestDasherSolid(t *testing.T) {
	for _, dashes := range [][]float64{{}, {0}, {0, 0, 0}} {
		rec := &recorder{}
		d := &Dasher{}
		pc, err := d.init(rec, dashes, 0, false)
		if err != nil {
			t.Fatal(err)
		}
		if pc != Consumer(rec) {
			t.Errorf("%v: dasher used for a pattern of length zero", dashes)
		}
	}
}

func TestDasherInvalid(t *testing.T) {
	for _, dashes := range [][]float64{{-1, 2}, {1, math.NaN()}, {math.Inf(1)}} {
		d := &Dasher{}
		_, err := d.init(&recorder{}, dashes, 0, false)
		if !errors.Is(err, ErrInvalidStroke) {
			t.Errorf("%v: got %v", dashes, err)
		}
	}
}

func TestDasherRecycle(t *testing.T) {
	d := &Dasher{}
	dashes := d.copyDashArray([]float64{2, 1})
	rec := &recorder{}
	pc, err := d.init(rec, dashes, 0, true)
	if err != nil {
		t.Fatal(err)
	}
	NewContext(nil).FeedData((&path.Data{}).MoveTo(v(0, 0)).LineTo(v(5, 0)), matrix.Identity, pc)

	if d.dashes != nil || len(d.dashBuf) != 0 {
		t.Error("dash array not released after PathDone")
	}
	if d.out != nil {
		t.Error("downstream stage still referenced after PathDone")
	}
	if cap(d.dashBuf) < 2 {
		t.Error("dash storage not kept for reuse")
	}
}

// counter is a terminal Consumer which only counts subpaths.
type counter struct {
	moves, done int
}

func (c *counter) MoveTo(vec.Vec2)           { c.moves++ }
func (c *counter) LineTo(vec.Vec2)           {}
func (c *counter) QuadTo(vec.Vec2, vec.Vec2) {}
func (c *counter) CubeTo(_, _, _ vec.Vec2)   {}
func (c *counter) ClosePath()                {}
func (c *counter) PathDone()                 { c.done++ }

// TestDasherLongSegment strokes a line which is much longer than the dash
// pattern.  The number of dashes is bounded and the path is finished.
func TestDasherLongSegment(t *testing.T) {
	out := &counter{}
	stroke := &StrokeStyle{
		Width:      1,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: 10,
		Dash:       []float64{1, 1},
	}
	pc, err := NewContext(nil).Pipeline(stroke, 1, matrix.Identity, out)
	if err != nil {
		t.Fatal(err)
	}

	finished := make(chan struct{})
	go func() {
		pc.MoveTo(v(0, 0))
		pc.LineTo(v(1e17, 0))
		pc.PathDone()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(10 * time.Second):
		t.Fatal("dashed line not finished after 10s")
	}

	if out.done != 1 {
		t.Errorf("PathDone called %d times", out.done)
	}
	if out.moves < maxSegmentDashes || out.moves > maxSegmentDashes+2 {
		t.Errorf("%d dashes, want about %d", out.moves, maxSegmentDashes)
	}
}

// TestDasherSkipPeriods checks that the dashes at the end of a long
// segment are in phase with the pattern.
func TestDasherSkipPeriods(t *testing.T) {
	const m = maxSegmentDashes
	const length = 2*m + 1000.5

	rec := &recorder{}
	d := &Dasher{}
	pc, err := d.init(rec, []float64{1, 1}, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	pc.MoveTo(v(0, 0))
	pc.LineTo(v(length, 0))
	pc.PathDone()

	// m dashes before the skipped periods, one dash at the end
	if n := rec.count("MoveTo"); n != m+1 {
		t.Errorf("%d dashes, want %d", n, m+1)
	}

	last := -1.0
	for i, c := range rec.calls {
		if c.Op != "MoveTo" {
			continue
		}
		x := c.Pts[0].X
		if x > 2*m && x < 2*m+1000-1e-6 {
			t.Errorf("dash at x=%g inside the skipped range", x)
		}
		if x > last {
			last = x
			if i+1 >= len(rec.calls) || rec.calls[i+1].Op != "LineTo" {
				t.Fatalf("dash at x=%g has no LineTo", x)
			}
			if end := rec.calls[i+1].Pts[0].X; math.Abs(end-length) > 1e-6 && x > 2*m {
				t.Errorf("last dash ends at %g, want %g", end, length)
			}
		}
	}
	if math.Abs(last-(2*m+1000)) > 1e-6 {
		t.Errorf("last dash starts at %g, want %d", last, 2*m+1000)
	}
}
