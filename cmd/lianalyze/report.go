// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/spf13/cobra"

	"github.com/ArushiG11/COS568-LI-SP25/internal/config"
	"github.com/ArushiG11/COS568-LI-SP25/resultagg"
	"github.com/ArushiG11/COS568-LI-SP25/resultdb"
)

func newReportCmd(a *app) *cobra.Command {
	var dbFile string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize and chart every chart in the plan",
		Long: `Report runs chart for every chart in the plan. With --db, each summary
is also archived in a SQLite database for later comparison.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			var db *resultdb.DB
			if dbFile != "" {
				if db, err = resultdb.Open(dbFile); err != nil {
					return err
				}
				defer func() {
					if cerr := db.Close(); err == nil {
						err = cerr
					}
				}()
			}
			jobs, err := a.jobs(nil, &adhoc{})
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
				if db == nil {
					continue
				}
				q, err := j.chart.Query(a.plan.IDColumn)
				if err != nil {
					return fmt.Errorf("chart %s: %w", j.chart.Name, err)
				}
				id, err := db.SaveSummary(cmd.Context(), resultdb.Run{
					Chart:     j.chart.Name,
					Reduction: q.Reduction,
					Metrics:   q.Metrics,
				}, s)
				if err != nil {
					return fmt.Errorf("archiving %s: %w", j.chart.Name, err)
				}
				a.log.Infof("archived %s as run %d", j.chart.Name, id)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbFile, "db", "", "archive summaries in SQLite database `file`")
	addChartFlags(cmd.Flags())
	return cmd
}

func newHistoryCmd(a *app) *cobra.Command {
	var (
		dbFile string
		chart  string
		del    bool
	)
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List archived runs, or print or delete one archived summary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if del && len(args) == 0 {
				return errors.New("--delete requires a run id")
			}
			// Opening creates the database; don't do that here.
			if _, err := os.Stat(dbFile); err != nil {
				return err
			}
			db, err := resultdb.Open(dbFile)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := db.Close(); err == nil {
					err = cerr
				}
			}()
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("bad run id %q", args[0])
				}
				if del {
					if err := db.DeleteRun(cmd.Context(), id); err != nil {
						return err
					}
					a.log.Infof("deleted run %d", id)
					return nil
				}
				r, s, err := db.LoadSummary(cmd.Context(), id)
				if err != nil {
					return err
				}
				c, ok := a.plan.Chart(r.Chart)
				if !ok {
					c = &config.Chart{Name: r.Chart, Metrics: r.Metrics}
				}
				return a.printSummary(out, c, s, resultagg.ByIdentifier)
			}

			runs, err := db.ListRuns(cmd.Context(), chart)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				_, err := fmt.Fprintln(out, "no runs")
				return err
			}
			var (
				ids                            []int64
				charts, created, reds, metrics []string
			)
			for _, r := range runs {
				ids = append(ids, r.ID)
				charts = append(charts, r.Chart)
				created = append(created, r.Created.Format("2006-01-02 15:04:05"))
				reds = append(reds, r.Reduction.String())
				metrics = append(metrics, strings.Join(r.Metrics, ","))
			}
			tab := new(table.Builder).
				Add("run", ids).
				Add("chart", charts).
				Add("created", created).
				Add("reduction", reds).
				Add("metrics", metrics).
				Done()
			return table.Fprint(out, tab)
		},
	}
	cmd.Flags().StringVar(&dbFile, "db", "results.db", "SQLite database `file`")
	cmd.Flags().StringVar(&chart, "chart", "", "list only runs of `chart`")
	cmd.Flags().BoolVar(&del, "delete", false, "delete the given run instead of printing it")
	return cmd
}
