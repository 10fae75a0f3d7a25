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
	"image"
	"image/color"
	"image/png"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"testing"

	"seehuhn.de/go/raster/testcases"
)

// TestAgainstVector compares the output of the rasteriser with
// golang.org/x/image/vector, which receives the same pipeline output.
func TestAgainstVector(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			if !tc.Reference {
				continue
			}
			name := category + "_" + tc.Name
			t.Run(name, func(t *testing.T) {
				w, h := tc.Width, tc.Height

				ref, err := renderVector(NewContext(nil), tc, w, h)
				if err != nil {
					t.Fatal(err)
				}

				actual := make([]byte, w*h)
				if err := RenderExample(tc, actual, w, h, w); err != nil {
					t.Fatal(err)
				}

				if err := compareImages(name, ref, actual, w, h); err != nil {
					t.Error(err)
				}
			})
		}
	}
}

// TestStrategies checks that the small-path and the large-path code of
// the rasteriser give the same result.
func TestStrategies(t *testing.T) {
	thresholds := []struct {
		name      string
		threshold int
	}{
		{"small", 1 << 30}, // always use 2D buffers
		{"large", 0},       // always use the active edge list
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			t.Run(name, func(t *testing.T) {
				w, h := tc.Width, tc.Height
				var images [2][]byte
				for i, th := range thresholds {
					c := NewContext(nil)
					c.renderer.smallPathThreshold = th.threshold
					images[i] = make([]byte, w*h)
					if err := renderExample(c, tc, images[i], w, h, w); err != nil {
						t.Fatalf("%s: %v", th.name, err)
					}
				}
				if err := compareImages(name+"_strategies", images[0], images[1], w, h); err != nil {
					t.Error(err)
				}
			})
		}
	}
}

// TestRenderExampleStride renders into a buffer with padding at the end
// of each row.
func TestRenderExampleStride(t *testing.T) {
	tc := testcases.All["fill"][0]
	w, h := tc.Width, tc.Height
	stride := w + 7

	plain := make([]byte, w*h)
	if err := RenderExample(tc, plain, w, h, w); err != nil {
		t.Fatal(err)
	}
	padded := make([]byte, stride*h)
	if err := RenderExample(tc, padded, w, h, stride); err != nil {
		t.Fatal(err)
	}

	for y := range h {
		for x := range stride {
			got := padded[y*stride+x]
			var want byte
			if x < w {
				want = plain[y*w+x]
			}
			if got != want {
				t.Fatalf("pixel (%d, %d): got %d, want %d", x, y, got, want)
			}
		}
	}
}

// renderVector renders a test case using golang.org/x/image/vector as the
// terminal stage.
func renderVector(c *Context, tc testcases.TestCase, w, h int) ([]byte, error) {
	shape, stroke := exampleShape(tc)
	lineWidth := 0.0
	if stroke != nil {
		lineWidth = stroke.Width
	}

	out := NewVectorConsumer(image.Rect(0, 0, w, h))
	pc, err := c.Pipeline(stroke, lineWidth, tc.CTM, out)
	if err != nil {
		return nil, err
	}
	c.FeedData(shape.(*FlatShape).Data, tc.CTM, pc)
	if !out.Done() {
		return nil, fmt.Errorf("%s: path not completed", tc.Name)
	}
	return out.Alpha().Pix, nil
}

func compareImages(name string, expected, actual []byte, w, h int) error {
	total := w * h

	diffs := make([]int, total)
	for i := range total {
		e, a := int(expected[i]), int(actual[i])
		diff := e - a
		if diff < 0 {
			diff = -diff
		}
		diffs[i] = diff
	}
	sort.Ints(diffs)

	p80 := diffs[int(math.Round(0.80*float64(total-1)))]
	p95 := diffs[int(math.Round(0.95*float64(total-1)))]
	p99 := diffs[int(math.Round(0.99*float64(total-1)))]

	// The two implementations round differently, so small differences
	// are allowed everywhere.
	var failures []string
	if p80 > 2 {
		failures = append(failures, fmt.Sprintf("80th percentile diff is %d (want <=2)", p80))
	}
	if p95 >= 64 {
		failures = append(failures, fmt.Sprintf("95th percentile diff is %d (want <64)", p95))
	}
	if p99 >= 128 {
		failures = append(failures, fmt.Sprintf("99th percentile diff is %d (want <128)", p99))
	}

	if len(failures) > 0 {
		_ = writeDiffImage(name, expected, actual, w, h)
		return fmt.Errorf("%s", strings.Join(failures, "; "))
	}
	return nil
}

// writeDiffImage writes a 3-panel image to the debug directory: actual
// (left), difference (middle), expected (right).
func writeDiffImage(name string, expected, actual []byte, w, h int) (err error) {
	if err := os.MkdirAll("debug", 0o755); err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, w*3, h))
	for y := range h {
		for x := range w {
			i := y*w + x

			a := actual[i]
			img.Set(x, y, color.RGBA{R: a, G: a, B: a, A: 255})

			// green: too little coverage, red: too much
			diff := int(expected[i]) - int(actual[i])
			diffColor := color.RGBA{A: 255}
			if diff > 0 {
				diffColor.G = uint8(diff)
			} else if diff < 0 {
				diffColor.R = uint8(-diff)
			}
			img.Set(x+w, y, diffColor)

			e := expected[i]
			img.Set(x+w*2, y, color.RGBA{R: e, G: e, B: e, A: 255})
		}
	}

	f, err := os.Create(filepath.Join("debug", name+".png"))
	if err != nil {
		return err
	}
	err = png.Encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
