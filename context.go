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
	"sync"

	"seehuhn.de/go/geom/vec"
)

// Options holds the implementation-wide policy switches of a [Context].
type Options struct {
	// UseSimplifier inserts a [Simplifier] directly in front of the
	// terminal consumer, to remove collinear segments introduced by caps
	// and joins.
	UseSimplifier bool

	// ForceNoAA makes SetupRenderer always select the non-antialiased
	// rasteriser.
	ForceNoAA bool

	// Flatness is the curve flattening tolerance in device pixels.
	// Must be > 0.
	Flatness float64
}

// DefaultOptions returns the options used by NewContext(nil).
func DefaultOptions() *Options {
	return &Options{
		UseSimplifier: true,
		ForceNoAA:     false,
		Flatness:      defaultFlatness,
	}
}

// Context holds the reusable scratch state for rendering paths: one
// instance of each pipeline stage and a small coordinate buffer.
// Stages are re-initialized at the start of every path, so that a steady
// stream of paths through one Context does not allocate.
//
// A Context is not safe for concurrent use.  It may serve only one path at
// a time; use a [Pool] to share contexts between goroutines.
type Context struct {
	opts Options

	stroker    Stroker
	dasher     Dasher
	simplifier Simplifier
	deltaTx    deltaTransformer // forward, applied after the stroker
	invDeltaTx deltaTransformer // inverse, applied before the dasher
	discard    discard

	renderer     *Rasteriser // antialiased
	rendererNoAA *Rasteriser // created on first use

	// scratch receives the (transformed) points of one path command.
	scratch [3]vec.Vec2
	pathTx  pathTransformer

	// dirty is set while a path is being fed.  A context which is still
	// dirty after a call returned was abandoned mid-path and must be
	// Reset before reuse.
	dirty bool
}

// NewContext allocates a new Context.  If opts is nil, [DefaultOptions]
// are used.
func NewContext(opts *Options) *Context {
	if opts == nil {
		opts = DefaultOptions()
	}
	c := &Context{
		opts: *opts,
	}
	if !(c.opts.Flatness > 0) {
		c.opts.Flatness = defaultFlatness
	}
	c.renderer = NewRasteriser(true)
	c.renderer.Flatness = c.opts.Flatness
	c.stroker.flatness = c.opts.Flatness
	c.dasher.flatness = c.opts.Flatness
	return c
}

// Options returns a copy of the policy switches of c.
func (c *Context) Options() Options {
	return c.opts
}

// Dirty reports whether the last path fed through c did not complete.
func (c *Context) Dirty() bool {
	return c.dirty
}

// Reset returns c to a clean state, dropping all references the pipeline
// stages hold from the previous path.  Buffer capacity is kept.
func (c *Context) Reset() {
	if c.dirty && debugEnabled() {
		Logger().Debug("resetting dirty context")
	}
	c.stroker.reset()
	c.dasher.reset()
	c.simplifier.reset()
	c.deltaTx.out = nil
	c.invDeltaTx.out = nil
	c.discard.out = nil
	c.renderer.Reset()
	if c.rendererNoAA != nil {
		c.rendererNoAA.Reset()
	}
	c.scratch = [3]vec.Vec2{}
	c.pathTx.src = nil
	c.dirty = false
}

// getRendererNoAA returns the non-antialiased rasteriser, creating it on
// first use.
func (c *Context) getRendererNoAA() *Rasteriser {
	if c.rendererNoAA == nil {
		c.rendererNoAA = NewRasteriser(false)
		c.rendererNoAA.Flatness = c.opts.Flatness
	}
	return c.rendererNoAA
}

// Pool is a set of contexts which can be shared between goroutines.
// Each context is handed to at most one goroutine at a time.
type Pool struct {
	opts Options
	pool sync.Pool
}

// NewPool returns a pool which creates contexts with the given options.
// If opts is nil, [DefaultOptions] are used.
func NewPool(opts *Options) *Pool {
	if opts == nil {
		opts = DefaultOptions()
	}
	p := &Pool{opts: *opts}
	p.pool.New = func() any {
		return NewContext(&p.opts)
	}
	return p
}

// Get checks out a context.  The caller owns it until it is given back
// with Put.
func (p *Pool) Get() *Context {
	return p.pool.Get().(*Context)
}

// Put checks a context back in.  A context which was abandoned mid-path
// is reset before it is made available again.
func (p *Pool) Put(c *Context) {
	if c == nil {
		return
	}
	if c.dirty {
		Logger().Warn("context returned to pool while dirty; resetting")
		c.Reset()
	}
	p.pool.Put(c)
}
