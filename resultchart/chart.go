// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resultchart renders summaries of index benchmark results as
// grouped bar charts.
//
// Each group of a Summary (a workload) becomes a cluster on the X
// axis, and each identifier (an index structure) contributes one bar
// to every cluster. Missing values are drawn as empty bars in static
// images and as gaps in HTML charts.
package resultchart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/ArushiG11/COS568-LI-SP25/internal/units"
	"github.com/ArushiG11/COS568-LI-SP25/resultagg"
)

// A Chart describes how to draw one summary.
type Chart struct {
	// Name is the base file name of rendered output.
	Name string

	Title  string
	YLabel string

	// Class selects the prefixes used for Y axis tick labels.
	Class units.Class

	// Colors are the bar colors per identifier, as "#rrggbb"
	// strings. Identifiers beyond len(Colors) take colors from
	// the ColorBrewer "Paired" palette.
	Colors []string
}

// Options control the size of rendered images.
type Options struct {
	Width, Height vg.Length
	DPI           int // for raster formats
}

// DefaultOptions renders 8×6 inch images at 300 dpi.
var DefaultOptions = Options{Width: 8 * vg.Inch, Height: 6 * vg.Inch, DPI: 300}

// ErrEmpty is returned when a summary has no groups or no
// identifiers to draw.
var ErrEmpty = errors.New("nothing to chart")

const (
	barWidth   = 14 // points
	barSpacing = 2  // points
)

// Plot builds a grouped bar chart of s.
func Plot(s *resultagg.Summary, c Chart) (*plot.Plot, error) {
	ids, groups := s.Identifiers(), s.Groups()
	if len(ids) == 0 || len(groups) == 0 {
		return nil, ErrEmpty
	}
	colors, err := barColors(c.Colors, len(ids))
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.Y.Label.Text = c.YLabel
	p.Y.Min = 0
	p.Y.Tick.Marker = prefixTicks{c.Class}

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = color.NRGBA{0, 0, 0, 0x80}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(grid)

	bars, err := barCharts(s, colors)
	if err != nil {
		return nil, err
	}
	for i, b := range bars {
		p.Add(b)
		p.Legend.Add(ids[i], b)
	}
	p.Legend.Top = true

	p.NominalX(groups...)
	p.X.Tick.Label.Rotation = 15 * math.Pi / 180
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YTop
	return p, nil
}

// barCharts returns one bar series per identifier of s, offset so
// that each cluster is centered on its group's tick. Missing values
// are zero-height bars.
func barCharts(s *resultagg.Summary, colors []color.Color) ([]*plotter.BarChart, error) {
	ids := s.Identifiers()
	w := vg.Points(barWidth)
	step := w + vg.Points(barSpacing)
	// Center-to-center width of a cluster.
	span := step * vg.Length(len(ids)-1)

	var out []*plotter.BarChart
	for i, row := range s.Dense(0) {
		b, err := plotter.NewBarChart(plotter.Values(row), w)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ids[i], err)
		}
		b.Offset = step*vg.Length(i) - span/2
		b.Color = colors[i]
		b.LineStyle.Width = 0
		out = append(out, b)
	}
	return out, nil
}

// barColors returns n colors, starting with the parsed hex colors in
// hex and continuing with the Paired palette.
func barColors(hex []string, n int) ([]color.Color, error) {
	out := make([]color.Color, 0, n)
	for _, h := range hex {
		if len(out) == n {
			break
		}
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("bad color %q: %w", h, err)
		}
		out = append(out, c)
	}
	if len(out) == n {
		return out, nil
	}

	// Paired offers between 3 and 12 colors.
	size := n
	if size < 3 {
		size = 3
	} else if size > 12 {
		size = 12
	}
	pal, err := brewer.GetPalette(brewer.TypeQualitative, "Paired", size)
	if err != nil {
		return nil, err
	}
	extra := pal.Colors()
	for i := 0; len(out) < n; i++ {
		out = append(out, extra[i%len(extra)])
	}
	return out, nil
}

// prefixTicks labels the default ticks using SI or IEC prefixes
// common to all labeled ticks.
type prefixTicks struct {
	cls units.Class
}

func (t prefixTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	var vals []float64
	for _, tk := range ticks {
		if tk.Label != "" {
			vals = append(vals, tk.Value)
		}
	}
	sc := units.CommonScale(vals, t.cls)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = sc.Format(ticks[i].Value)
		}
	}
	return ticks
}

// Formats lists the output formats Write understands.
var Formats = []string{"png", "svg", "pdf", "html"}

// Write renders s in each of formats into dir, naming files after
// c.Name. It returns the paths written.
func Write(dir string, s *resultagg.Summary, c Chart, formats []string, opts Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, err
	}
	var p *plot.Plot
	var paths []string
	for _, format := range formats {
		format = strings.ToLower(strings.TrimSpace(format))
		path := filepath.Join(dir, c.Name+"."+format)
		var err error
		switch format {
		case "html":
			err = writeFile(path, func(f *os.File) error { return WriteHTML(f, s, c) })
		case "png", "svg", "pdf":
			if p == nil {
				if p, err = Plot(s, c); err != nil {
					return paths, err
				}
			}
			err = writeFile(path, func(f *os.File) error { return writeImage(f, p, format, opts) })
		default:
			err = fmt.Errorf("unknown chart format %q (want one of %s)", format, strings.Join(Formats, ", "))
		}
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeImage(f *os.File, p *plot.Plot, format string, opts Options) error {
	if format == "png" {
		c := vgimg.NewWith(vgimg.UseWH(opts.Width, opts.Height), vgimg.UseDPI(opts.DPI), vgimg.UseBackgroundColor(color.White))
		p.Draw(draw.New(c))
		_, err := vgimg.PngCanvas{Canvas: c}.WriteTo(f)
		return err
	}
	wt, err := p.WriterTo(opts.Width, opts.Height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(f)
	return err
}

func writeFile(path string, write func(*os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
