// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ArushiG11/COS568-LI-SP25/resultagg"
	"github.com/ArushiG11/COS568-LI-SP25/resultchart"
)

// addChartFlags adds the flags controlling chart output.
func addChartFlags(fs *pflag.FlagSet) {
	fs.StringSlice("format", nil, "chart `formats`: "+strings.Join(resultchart.Formats, ", ")+" (default from plan)")
	fs.Int("dpi", 0, "resolution of png charts (default from plan)")
}

func newChartCmd(a *app) *cobra.Command {
	var ad adhoc
	cmd := &cobra.Command{
		Use:   "chart [chart...]",
		Short: "Write summary CSVs and draw charts",
		Long: `Chart does everything summarize does and also draws each summary as a
grouped bar chart, with one cluster per workload and one bar per index.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := a.jobs(args, &ad)
			if err != nil {
				return err
			}
			for _, j := range jobs {
				s, err := a.summarize(j.chart, j.inputs)
				if err != nil {
					return err
				}
				if _, err := a.writeSummary(j.chart, s, resultagg.ByIdentifier); err != nil {
					return err
				}
				if _, err := a.writeCharts(j.chart, s); err != nil {
					return err
				}
			}
			return nil
		},
	}
	ad.register(cmd.Flags())
	addChartFlags(cmd.Flags())
	return cmd
}
