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
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/vec"
)

// call is one method call received by a recorder.
type call struct {
	Op  string
	Pts []vec.Vec2
}

// recorder is a terminal Consumer which records all calls.
type recorder struct {
	calls []call
}

func (r *recorder) add(op string, pts ...vec.Vec2) {
	r.calls = append(r.calls, call{Op: op, Pts: pts})
}

func (r *recorder) MoveTo(p vec.Vec2)         { r.add("MoveTo", p) }
func (r *recorder) LineTo(p vec.Vec2)         { r.add("LineTo", p) }
func (r *recorder) QuadTo(c, p vec.Vec2)      { r.add("QuadTo", c, p) }
func (r *recorder) CubeTo(c1, c2, p vec.Vec2) { r.add("CubeTo", c1, c2, p) }
func (r *recorder) ClosePath()                { r.add("ClosePath") }
func (r *recorder) PathDone()                 { r.add("PathDone") }

// count returns the number of recorded calls of the given kind.
func (r *recorder) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

func v(x, y float64) vec.Vec2 { return vec.Vec2{X: x, Y: y} }

func moveTo(x, y float64) call { return call{Op: "MoveTo", Pts: []vec.Vec2{v(x, y)}} }
func lineTo(x, y float64) call { return call{Op: "LineTo", Pts: []vec.Vec2{v(x, y)}} }

var (
	closePath = call{Op: "ClosePath"}
	pathDone  = call{Op: "PathDone"}
)

func TestFillRuleString(t *testing.T) {
	cases := []struct {
		rule FillRule
		want string
	}{
		{NonZero, "nonzero"},
		{EvenOdd, "evenodd"},
		{FillRule(7), "unknown"},
	}
	for _, c := range cases {
		if got := c.rule.String(); got != c.want {
			t.Errorf("%d: got %q, want %q", int(c.rule), got, c.want)
		}
	}
}

func TestDiscard(t *testing.T) {
	rec := &recorder{}
	d := &discard{out: rec}
	d.MoveTo(v(1, 2))
	d.LineTo(v(3, 4))
	d.QuadTo(v(1, 1), v(2, 2))
	d.CubeTo(v(1, 1), v(2, 2), v(3, 3))
	d.ClosePath()
	d.PathDone()

	if diff := cmp.Diff([]call{pathDone}, rec.calls); diff != "" {
		t.Errorf("unexpected calls (-want +got):\n%s", diff)
	}
}
