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
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// maxFirstDashPoints bounds the capacity of the first-dash buffer which
// is kept between paths.
const maxFirstDashPoints = 4096

// maxSegmentDashes bounds the number of dashes drawn along one line
// segment.
const maxSegmentDashes = 1 << 16

// Dasher is a pipeline stage which splits every subpath into dashes.
// Each dash is forwarded as an open subpath.  Curves are flattened.
//
// The dash pattern restarts at the beginning of every subpath.  If a closed
// subpath both starts and ends inside a dash, the two pieces are joined
// into one dash.  A closed subpath which lies completely inside one dash
// is forwarded as a closed subpath.
type Dasher struct {
	out Consumer

	dashBuf []float64 // storage for copyDashArray
	dashes  []float64
	recycle bool
	period  int     // number of entries in one period of the on/off pattern
	length  float64 // total length of one period

	startIdx       int
	startRemaining float64

	// flatness and linear control curve flattening, see [flattener].
	flatness float64
	linear   matrix.Matrix
	flat     flattener

	// state of the current subpath
	idx       int
	remaining float64
	on        bool
	start     vec.Vec2
	current   vec.Vec2
	hasStart  bool
	inSubpath bool
	drawn     bool // a drawing command was seen in this subpath
	startedOn bool
	dashOpen  bool // a MoveTo for the current dash has been sent downstream

	// The first dash of a subpath is held back until the end of the
	// subpath, so that it can be joined with the last dash.
	collecting bool
	firstDash  []vec.Vec2
}

// checkDashes validates a dash array.
func checkDashes(dashes []float64) error {
	for i, d := range dashes {
		if !(d >= 0) || math.IsInf(d, 0) {
			return fmt.Errorf("%w: dash[%d] = %g", ErrInvalidStroke, i, d)
		}
	}
	return nil
}

// copyDashArray copies src into storage owned by d.  The result is valid
// until the next call.
func (d *Dasher) copyDashArray(src []float64) []float64 {
	d.dashBuf = append(d.dashBuf[:0], src...)
	return d.dashBuf
}

// init prepares d for a new path.  If the dash pattern has total length
// zero, the path is drawn solid: no dasher is needed and out is returned.
//
// If recycle is set, dashes was obtained from [Dasher.copyDashArray] and
// the storage is reused after the path is done.
func (d *Dasher) init(out Consumer, dashes []float64, phase float64, recycle bool) (Consumer, error) {
	if err := checkDashes(dashes); err != nil {
		return nil, err
	}

	total := 0.0
	for _, x := range dashes {
		total += x
	}
	if !(total > 0) || math.IsInf(total, 0) {
		d.release()
		return out, nil
	}

	n := len(dashes)
	d.period = n
	if n%2 == 1 {
		// on/off alternate, so odd patterns only repeat after two rounds
		d.period = 2 * n
		total *= 2
	}

	if math.IsNaN(phase) || math.IsInf(phase, 0) {
		phase = 0
	}
	phase = math.Mod(phase, total)
	if phase < 0 {
		phase += total
	}

	idx := 0
	for {
		l := dashes[idx%n]
		if phase < l || l == 0 && phase == 0 {
			break
		}
		phase -= l
		idx = (idx + 1) % d.period
	}

	d.out = out
	d.dashes = dashes
	d.length = total
	d.recycle = recycle
	d.startIdx = idx
	d.startRemaining = dashes[idx%n] - phase
	d.linear = matrix.Identity
	if !(d.flatness > 0) {
		d.flatness = defaultFlatness
	}

	d.hasStart = false
	d.inSubpath = false
	d.collecting = false
	d.dashOpen = false
	d.firstDash = d.firstDash[:0]
	return d, nil
}

// reset drops all references to the downstream stage and to the dash
// array.  Buffers are kept.
func (d *Dasher) reset() {
	d.out = nil
	d.release()
	d.hasStart = false
	d.inSubpath = false
	d.collecting = false
	d.dashOpen = false
	d.firstDash = d.firstDash[:0]
}

func (d *Dasher) release() {
	if d.recycle {
		d.dashBuf = d.dashBuf[:0]
	}
	d.dashes = nil
	d.recycle = false
}

// MoveTo implements the [Consumer] interface.
func (d *Dasher) MoveTo(p vec.Vec2) {
	d.finishSubpath(false)
	d.begin(p)
}

func (d *Dasher) begin(p vec.Vec2) {
	d.start = p
	d.current = p
	d.hasStart = true
	d.inSubpath = true
	d.drawn = false

	d.idx = d.startIdx
	d.remaining = d.startRemaining
	d.on = d.idx%2 == 0
	d.startedOn = d.on
	d.dashOpen = false
	d.firstDash = d.firstDash[:0]
	d.collecting = d.on
	if d.on {
		d.dashTo(p)
	}
}

func (d *Dasher) ensureSubpath() bool {
	if !d.inSubpath {
		if !d.hasStart {
			return false
		}
		d.begin(d.start)
	}
	d.drawn = true
	return true
}

// LineTo implements the [Consumer] interface.
func (d *Dasher) LineTo(p vec.Vec2) {
	if !d.ensureSubpath() {
		return
	}
	d.walk(d.current, p)
	d.current = p
}

// QuadTo implements the [Consumer] interface.
func (d *Dasher) QuadTo(c, p vec.Vec2) {
	if !d.ensureSubpath() {
		return
	}
	d.flat.linear, d.flat.flatness = d.linear, d.flatness
	d.flat.quadratic(d.current, c, p, d.walk)
	d.current = p
}

// CubeTo implements the [Consumer] interface.
func (d *Dasher) CubeTo(c1, c2, p vec.Vec2) {
	if !d.ensureSubpath() {
		return
	}
	d.flat.linear, d.flat.flatness = d.linear, d.flatness
	d.flat.cubic(d.current, c1, c2, p, d.walk)
	d.current = p
}

// ClosePath implements the [Consumer] interface.
func (d *Dasher) ClosePath() {
	if !d.inSubpath {
		return
	}
	d.drawn = true
	d.walk(d.current, d.start)
	d.finishSubpath(true)
	d.current = d.start
	d.inSubpath = false
}

// PathDone implements the [Consumer] interface.
func (d *Dasher) PathDone() {
	d.finishSubpath(false)
	d.inSubpath = false
	d.hasStart = false
	if cap(d.firstDash) > maxFirstDashPoints {
		d.firstDash = nil
	}
	out := d.out
	d.reset()
	out.PathDone()
}

// walk advances the dash pattern along the line segment from a to b.
//
// At most maxSegmentDashes dashes are drawn per segment.  After that,
// whole periods of the pattern are skipped, so that the last period of
// the segment is drawn in the correct phase.
func (d *Dasher) walk(a, b vec.Vec2) {
	delta := b.Sub(a)
	l := delta.Length()
	if l == 0 {
		return
	}

	n := len(d.dashes)
	pos := 0.0
	dashes := 0
	for l-pos > d.remaining {
		if dashes >= maxSegmentDashes && !d.on {
			if k := math.Floor((l - pos - d.remaining) / d.length); k > 0 {
				pos += k * d.length
			}
		}
		next := pos + d.remaining
		if next == pos && d.remaining > 0 {
			// pos is too large to resolve the pattern
			break
		}
		pos = next
		p := a.Add(delta.Mul(pos / l))
		if d.on {
			d.dashTo(p)
			d.endDash()
			dashes++
		}
		d.idx = (d.idx + 1) % d.period
		d.remaining = d.dashes[d.idx%n]
		d.on = !d.on
		if d.on {
			d.dashTo(p)
		}
	}
	d.remaining = max(d.remaining-(l-pos), 0)
	if d.on {
		d.dashTo(b)
	}
}

// dashTo extends the current dash to p.
func (d *Dasher) dashTo(p vec.Vec2) {
	switch {
	case d.collecting:
		d.firstDash = append(d.firstDash, p)
	case d.dashOpen:
		d.out.LineTo(p)
	default:
		d.out.MoveTo(p)
		d.dashOpen = true
	}
}

func (d *Dasher) endDash() {
	if d.collecting {
		d.collecting = false
	} else {
		d.dashOpen = false
	}
}

// finishSubpath emits the first dash of the subpath, which was held back.
func (d *Dasher) finishSubpath(closed bool) {
	if !d.inSubpath {
		return
	}
	first := d.firstDash

	switch {
	case len(first) == 0:
		// the subpath started in a gap

	case d.collecting && closed:
		// the whole subpath is one dash
		d.out.MoveTo(first[0])
		for _, p := range first[1:] {
			d.out.LineTo(p)
		}
		d.out.ClosePath()

	case closed && d.on && d.startedOn:
		// join the last dash with the first one
		if !d.dashOpen {
			d.out.MoveTo(first[0])
		}
		for _, p := range first[1:] {
			d.out.LineTo(p)
		}

	default:
		d.out.MoveTo(first[0])
		if len(first) == 1 {
			if d.drawn {
				d.out.LineTo(first[0])
			}
		} else {
			for _, p := range first[1:] {
				d.out.LineTo(p)
			}
		}
	}

	d.firstDash = d.firstDash[:0]
	d.collecting = false
	d.dashOpen = false
}
