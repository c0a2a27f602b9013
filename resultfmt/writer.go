// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultfmt

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/ArushiG11/COS568-LI-SP25/resultagg"
)

// WriteOptions control the layout of a written summary.
type WriteOptions struct {
	// Orientation selects identifiers as rows (the default) or
	// groups as rows.
	Orientation resultagg.Orientation

	// Corner is the first header cell. If empty, it defaults to
	// "index_name" for ByIdentifier and "workload" for ByGroup.
	Corner string

	// Comma is the field delimiter. Zero means ','.
	Comma rune
}

// WriteSummary writes s to w as delimited text with a header row.
// Missing values are written as empty fields, never as zero.
func WriteSummary(w io.Writer, s *resultagg.Summary, opts WriteOptions) error {
	corner := opts.Corner
	if corner == "" {
		corner = "index_name"
		if opts.Orientation == resultagg.ByGroup {
			corner = "workload"
		}
	}
	cw := csv.NewWriter(w)
	if opts.Comma != 0 {
		cw.Comma = opts.Comma
	}
	if err := cw.WriteAll(s.Cells(opts.Orientation, corner)); err != nil {
		return err
	}
	return cw.Error()
}

// WriteSummaryFile writes s to the named file, creating or truncating
// it.
func WriteSummaryFile(name string, s *resultagg.Summary, opts WriteOptions) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteSummary(f, s, opts)
}
