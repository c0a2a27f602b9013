// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Lianalyze summarizes and charts learned index benchmark results.
//
// Usage:
//
//	lianalyze [flags] summarize [chart...]
//	lianalyze [flags] chart [chart...]
//	lianalyze [flags] report [--db file]
//	lianalyze [flags] plan
//
// The harness writes one results table per workload. Lianalyze reads
// the tables named by the analysis plan, reduces the measurements of
// each index to a single value per workload, and writes the result as
// <chart>_summary.csv, with one row per index and one column per
// workload. An index with no rows in a workload has an empty cell, and
// a workload whose file is missing has no column.
//
// The chart and report commands also draw grouped bar charts in the
// formats selected by --format (png, svg, pdf and html). In image
// formats a missing value is drawn as an empty bar.
//
// The default plan compares DynamicPGM, LIPP, HybridPGMLIPP and
// HybridDoubleBuffer by index size and mixed workload throughput. Run
// "lianalyze plan" to print it, and pass a modified copy with
// --config.
//
// An ad-hoc summary can be built without a plan:
//
//	lianalyze summarize --file "Lookup Only=lookup.csv" --file insert.csv \
//		--metric index_size_bytes --reduction max
//
// As with benchstat, each --file may be given a label with label=path.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
