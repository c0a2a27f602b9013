// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ArushiG11/COS568-LI-SP25/internal/config"
	"github.com/ArushiG11/COS568-LI-SP25/resultagg"
	"github.com/ArushiG11/COS568-LI-SP25/resultchart"
	"github.com/ArushiG11/COS568-LI-SP25/resultfmt"
)

// app is the state shared by all subcommands.
type app struct {
	v       *viper.Viper
	log     *logrus.Logger
	cfgFile string
	verbose bool

	plan *config.Plan
}

// flagKeys maps command line flags to plan keys.
var flagKeys = map[string]string{
	"results": "results",
	"out":     "output.dir",
	"comma":   "output.comma",
	"format":  "output.formats",
	"dpi":     "output.dpi",
	"index":   "identifiers",
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: logrus.New()}

	root := &cobra.Command{
		Use:   "lianalyze",
		Short: "Summarize and chart learned index benchmark results",
		Long: `Lianalyze reads the result tables of the learned index benchmark
harness, summarizes each index per workload, and writes summary CSVs
and grouped bar charts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.log.SetOutput(cmd.ErrOrStderr())
			a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
			if a.verbose {
				a.log.SetLevel(logrus.DebugLevel)
			}
			return a.load(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "analysis plan `file` (YAML)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log debug messages")
	pf.String("results", "", "`directory` holding the result tables")
	pf.String("out", "", "output `directory`")
	pf.String("comma", "", "field delimiter of input and output tables")
	pf.StringSlice("index", nil, "index `names` to summarize, in order (default from plan)")

	root.AddCommand(
		newSummarizeCmd(a),
		newChartCmd(a),
		newReportCmd(a),
		newPlanCmd(a),
		newHistoryCmd(a),
	)
	return root
}

// load binds the flags of cmd and loads the plan.
func (a *app) load(cmd *cobra.Command) error {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	}
	p, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.plan = p
	if a.cfgFile != "" {
		a.log.Debugf("using plan %s", a.cfgFile)
	}
	return nil
}

// charts returns the named charts of the plan, or all of them.
func (a *app) charts(names []string) ([]*config.Chart, error) {
	if len(names) == 0 {
		cs := make([]*config.Chart, len(a.plan.Charts))
		for i := range a.plan.Charts {
			cs[i] = &a.plan.Charts[i]
		}
		return cs, nil
	}
	var cs []*config.Chart
	for _, name := range names {
		c, ok := a.plan.Chart(name)
		if !ok {
			return nil, fmt.Errorf("unknown chart %q", name)
		}
		cs = append(cs, c)
	}
	return cs, nil
}

// summarize loads the inputs of c and summarizes them. Missing
// inputs are logged and skipped.
func (a *app) summarize(c *config.Chart, inputs []resultfmt.Input) (*resultagg.Summary, error) {
	q, err := c.Query(a.plan.IDColumn)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", c.Name, err)
	}
	for _, in := range inputs {
		a.log.Debugf("%s: reading %s from %s", c.Name, in.Label, in.Path)
	}
	loaded, err := resultfmt.LoadGroups(inputs, a.plan.Schema(c), a.log.Warnf)
	if err != nil {
		return nil, err
	}
	s, err := resultagg.BuildSummary(resultfmt.Groups(loaded), a.plan.Identifiers, q)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", c.Name, err)
	}
	if len(s.Groups()) == 0 {
		a.log.Warnf("%s: no result files found", c.Name)
	}
	a.log.Debugf("%s: %d values in %d workloads", c.Name, s.Len(), len(s.Groups()))
	return s, nil
}

// writeSummary writes s to <out>/<chart>_summary.csv.
func (a *app) writeSummary(c *config.Chart, s *resultagg.Summary, o resultagg.Orientation) (string, error) {
	if err := os.MkdirAll(a.plan.Output.Dir, 0777); err != nil {
		return "", err
	}
	path := filepath.Join(a.plan.Output.Dir, c.Name+"_summary.csv")
	opts := resultfmt.WriteOptions{Orientation: o, Comma: a.plan.Comma()}
	if o == resultagg.ByIdentifier {
		opts.Corner = a.plan.IDColumn
	}
	if err := resultfmt.WriteSummaryFile(path, s, opts); err != nil {
		return "", err
	}
	a.log.Infof("wrote %s", path)
	return path, nil
}

// writeCharts draws s in each configured format. A summary with
// nothing to draw is skipped with a warning.
func (a *app) writeCharts(c *config.Chart, s *resultagg.Summary) ([]string, error) {
	rc := resultchart.Chart{
		Name:   c.Name,
		Title:  c.Title,
		YLabel: c.YLabel,
		Class:  c.Class(),
		Colors: c.Colors,
	}
	opts := resultchart.Options{
		Width:  resultchart.DefaultOptions.Width,
		Height: resultchart.DefaultOptions.Height,
		DPI:    a.plan.Output.DPI,
	}
	paths, err := resultchart.Write(a.plan.Output.Dir, s, rc, a.plan.Output.Formats, opts)
	if errors.Is(err, resultchart.ErrEmpty) {
		a.log.Warnf("%s: nothing to chart", c.Name)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", c.Name, err)
	}
	for _, p := range paths {
		a.log.Infof("wrote %s", p)
	}
	return paths, nil
}

func parseOrientation(s string) (resultagg.Orientation, error) {
	switch strings.ToLower(s) {
	case "", "index", "identifier":
		return resultagg.ByIdentifier, nil
	case "workload", "group":
		return resultagg.ByGroup, nil
	}
	return 0, fmt.Errorf("unknown orientation %q (want index or workload)", s)
}
