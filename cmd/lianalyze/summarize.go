// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/aclements/go-gg/table"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ArushiG11/COS568-LI-SP25/internal/config"
	"github.com/ArushiG11/COS568-LI-SP25/internal/units"
	"github.com/ArushiG11/COS568-LI-SP25/resultagg"
	"github.com/ArushiG11/COS568-LI-SP25/resultfmt"
)

// A job is one chart and the files it reads.
type job struct {
	chart  *config.Chart
	inputs []resultfmt.Input
}

// adhoc describes a chart given entirely on the command line.
type adhoc struct {
	files     []string
	metrics   []string
	reduction string
	name      string
	title     string
	yLabel    string
}

func (ad *adhoc) register(fs *pflag.FlagSet) {
	fs.StringArrayVar(&ad.files, "file", nil, "summarize `label=path` instead of the plan's workloads (repeatable)")
	fs.StringSliceVar(&ad.metrics, "metric", nil, "metric `columns` for --file")
	fs.StringVar(&ad.reduction, "reduction", "", "`reduction` for --file: max or mean-then-max (default max for one metric)")
	fs.StringVar(&ad.name, "name", "adhoc", "base `name` of output files for --file")
	fs.StringVar(&ad.title, "title", "", "chart `title` for --file")
	fs.StringVar(&ad.yLabel, "ylabel", "", "Y axis `label` for --file")
}

// jobs returns the charts selected by args, or the ad-hoc chart.
func (a *app) jobs(args []string, ad *adhoc) ([]job, error) {
	if len(ad.files) == 0 {
		if len(ad.metrics) > 0 {
			return nil, errors.New("--metric requires --file")
		}
		cs, err := a.charts(args)
		if err != nil {
			return nil, err
		}
		jobs := make([]job, len(cs))
		for i, c := range cs {
			jobs[i] = job{c, a.plan.Inputs(c)}
		}
		return jobs, nil
	}

	if len(args) > 0 {
		return nil, errors.New("chart names cannot be combined with --file")
	}
	if len(ad.metrics) == 0 {
		return nil, errors.New("--file requires --metric")
	}
	red := ad.reduction
	if red == "" {
		red = resultagg.Max.String()
		if len(ad.metrics) > 1 {
			red = resultagg.MeanThenMax.String()
		}
	}
	c := &config.Chart{
		Name:      ad.name,
		Title:     ad.title,
		YLabel:    ad.yLabel,
		Metrics:   ad.metrics,
		Reduction: red,
	}
	if _, err := c.Query(a.plan.IDColumn); err != nil {
		return nil, err
	}
	return []job{{c, resultfmt.ParseInputs(ad.files)}}, nil
}

func newSummarizeCmd(a *app) *cobra.Command {
	var (
		ad     adhoc
		orient string
		text   bool
	)
	cmd := &cobra.Command{
		Use:   "summarize [chart...]",
		Short: "Write a summary CSV for each chart",
		Long: `Summarize reduces the result tables of each named chart, or of every
chart in the plan, and writes <out>/<chart>_summary.csv.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := parseOrientation(orient)
			if err != nil {
				return err
			}
			jobs, err := a.jobs(args, &ad)
			if err != nil {
				return err
			}
			for _, j := range jobs {
				s, err := a.summarize(j.chart, j.inputs)
				if err != nil {
					return err
				}
				if _, err := a.writeSummary(j.chart, s, o); err != nil {
					return err
				}
				if text {
					if err := a.printSummary(cmd.OutOrStdout(), j.chart, s, o); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	ad.register(cmd.Flags())
	cmd.Flags().StringVar(&orient, "orient", "index", "summary layout: one row per `index` or per workload")
	cmd.Flags().BoolVar(&text, "text", false, "also print each summary as a text table")
	return cmd
}

// printSummary prints s as an aligned text table, with values scaled
// to SI or binary prefixes.
func (a *app) printSummary(w io.Writer, c *config.Chart, s *resultagg.Summary, o resultagg.Orientation) error {
	title := c.Title
	if title == "" {
		title = c.Name
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", title); err != nil {
		return err
	}
	corner := "workload"
	if o == resultagg.ByIdentifier {
		corner = a.plan.IDColumn
	}
	cls := c.Class()
	cells := s.CellsFunc(o, corner, func(v float64) string { return units.Scale(v, cls) })
	if err := table.Fprint(w, table.TableFromStrings(cells[0], cells[1:], false)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
