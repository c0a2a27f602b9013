// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultchart

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ArushiG11/COS568-LI-SP25/resultagg"
)

// missing is the ECharts placeholder for a value that does not exist.
const missing = "-"

// WriteHTML writes s to w as an interactive HTML bar chart. Unlike the
// static formats, absent values are left as gaps rather than drawn as
// zero.
func WriteHTML(w io.Writer, s *resultagg.Summary, c Chart) error {
	bar, err := htmlBar(s, c)
	if err != nil {
		return err
	}
	return bar.Render(w)
}

// htmlBar builds the ECharts bar chart of s with one series per
// identifier.
func htmlBar(s *resultagg.Summary, c Chart) (*charts.Bar, error) {
	ids, groups := s.Identifiers(), s.Groups()
	if len(ids) == 0 || len(groups) == 0 {
		return nil, ErrEmpty
	}
	colors, err := barColors(c.Colors, len(ids))
	if err != nil {
		return nil, err
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: c.Title}),
		charts.WithTitleOpts(opts.Title{Title: c.Title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: c.YLabel}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 15}}),
	)
	bar.SetXAxis(groups)
	for i, id := range ids {
		data := make([]opts.BarData, len(groups))
		for j, g := range groups {
			if v, ok := s.Get(id, g); ok {
				data[j] = opts.BarData{Value: v}
			} else {
				data[j] = opts.BarData{Value: missing}
			}
		}
		hex, _ := colorful.MakeColor(colors[i])
		bar.AddSeries(id, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: hex.Hex()}))
	}
	return bar, nil
}
