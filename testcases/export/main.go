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

// Command export writes the test case definitions to JSON and renders
// every test case to a grayscale PNG image, for visual inspection and for
// use with external reference renderers.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/raster"
	"seehuhn.de/go/raster/testcases"
)

func main() {
	outDir := flag.String("o", "testdata", "output directory")
	noImages := flag.Bool("json-only", false, "do not render PNG images")
	verbose := flag.Bool("v", false, "log progress")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	raster.SetLogger(logger)

	if err := run(*outDir, !*noImages, logger); err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		os.Exit(1)
	}
}

func run(outDir string, images bool, logger *slog.Logger) error {
	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	imgDir := filepath.Join(outDir, "images")
	if err := os.MkdirAll(imgDir, 0o755); err != nil {
		return err
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			if err := tc.Check(); err != nil {
				return err
			}
			jtc := toJSON(category, tc)
			out.TestCases = append(out.TestCases, jtc)

			if !images {
				continue
			}
			fname := filepath.Join(imgDir, jtc.Name+".png")
			if err := writeImage(fname, tc); err != nil {
				return fmt.Errorf("%s: %w", jtc.Name, err)
			}
			logger.Debug("rendered", "case", jtc.Name, "file", fname)
		}
	}

	return writeJSON(filepath.Join(outDir, "testcases.json"), out)
}

func writeJSON(fname string, v any) (err error) {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeImage(fname string, tc testcases.TestCase) (err error) {
	img := image.NewGray(image.Rect(0, 0, tc.Width, tc.Height))
	err = raster.RenderExample(tc, img.Pix, tc.Width, tc.Height, img.Stride)
	if err != nil {
		return err
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}

type jsonTestCase struct {
	Name       string        `json:"name"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Path       []jsonSegment `json:"path"`
	CTM        []float64     `json:"ctm,omitempty"`
	Op         string        `json:"op"`
	FillRule   string        `json:"fill_rule,omitempty"`
	LineWidth  float64       `json:"line_width,omitempty"`
	LineCap    string        `json:"line_cap,omitempty"`
	LineJoin   string        `json:"line_join,omitempty"`
	MiterLimit float64       `json:"miter_limit,omitempty"`
	Dash       []float64     `json:"dash,omitempty"`
	DashPhase  float64       `json:"dash_phase,omitempty"`
	Reference  bool          `json:"reference,omitempty"`
}

type jsonSegment struct {
	Cmd string        `json:"cmd"`
	Pts [][]jsonFloat `json:"pts"`
}

// jsonFloat writes non-finite values as the strings "NaN", "+Inf" and
// "-Inf", since JSON numbers cannot represent them.
type jsonFloat float64

func (x jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(x)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func toJSON(category string, tc testcases.TestCase) jsonTestCase {
	jtc := jsonTestCase{
		Name:      category + "_" + tc.Name,
		Width:     tc.Width,
		Height:    tc.Height,
		Path:      pathToJSON(tc.Path.Iter()),
		Reference: tc.Reference,
	}
	if tc.CTM != [6]float64{} {
		jtc.CTM = tc.CTM[:]
	}

	jtc.Op = tc.Op.Kind()
	switch op := tc.Op.(type) {
	case testcases.Fill:
		jtc.FillRule = op.Rule.String()
	case testcases.Stroke:
		jtc.LineWidth = op.Width
		jtc.LineCap = op.Cap.String()
		jtc.LineJoin = op.Join.String()
		jtc.MiterLimit = op.MiterLimit
		jtc.Dash = op.Dash
		jtc.DashPhase = op.DashPhase
	}
	return jtc
}

func pathToJSON(p path.Path) []jsonSegment {
	var segs []jsonSegment
	for cmd, pts := range p {
		seg := jsonSegment{Pts: make([][]jsonFloat, len(pts))}
		switch cmd {
		case path.CmdMoveTo:
			seg.Cmd = "M"
		case path.CmdLineTo:
			seg.Cmd = "L"
		case path.CmdQuadTo:
			seg.Cmd = "Q"
		case path.CmdCubeTo:
			seg.Cmd = "C"
		case path.CmdClose:
			seg.Cmd = "Z"
		}
		for i, pt := range pts {
			seg.Pts[i] = []jsonFloat{jsonFloat(pt.X), jsonFloat(pt.Y)}
		}
		segs = append(segs, seg)
	}
	return segs
}
