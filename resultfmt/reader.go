// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resultfmt reads index benchmark result tables and writes
// summary tables.
//
// Result tables are delimited text files with a header row, as
// written by the benchmark harness: one row per (index, search
// method, variant) run, with columns such as index_name,
// index_size_bytes and lookup_throughput_mops1..3.
package resultfmt

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/aclements/go-gg/table"
)

// A SyntaxError reports a malformed row or value in a result file.
type SyntaxError struct {
	FileName string
	Line     int
	Column   string // empty if the error is not specific to a column
	Msg      string
}

func (e *SyntaxError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s:%d: column %q: %s", e.FileName, e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// A Schema describes the columns of a result table that need
// particular types.
type Schema struct {
	// IDColumn is loaded as []string regardless of its contents.
	// If non-empty, it must be present in the header.
	IDColumn string

	// Metrics are loaded as []float64. Every value must parse as
	// a finite number; a value that does not, including NaN and
	// Inf, is a *SyntaxError. Each must be present in the header.
	Metrics []string

	// Comma is the field delimiter. Zero means ','.
	Comma rune
}

// Read reads a result table from r. fileName is used in error
// messages.
//
// Columns named in s are typed as described on Schema. Every other
// column is coerced to []int if all its values parse as integers,
// otherwise to []float64 if they all parse as floats, and is kept as
// []string otherwise.
//
// A row with the wrong number of fields, or a non-numeric or
// non-finite value in a metric column, fails the whole read.
func Read(r io.Reader, fileName string, s Schema) (*table.Table, error) {
	if fileName == "" {
		fileName = "<unknown>"
	}
	cr := csv.NewReader(r)
	if s.Comma != 0 {
		cr.Comma = s.Comma
	}
	// Trimming would swallow empty fields of whitespace-delimited
	// tables.
	cr.TrimLeadingSpace = !unicode.IsSpace(cr.Comma)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &SyntaxError{fileName, 1, "", "missing header row"}
	} else if err != nil {
		return nil, csvError(fileName, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := colIndex[name]; dup {
			return nil, &SyntaxError{fileName, 1, name, "duplicate column"}
		}
		colIndex[name] = i
	}
	required := append([]string(nil), s.Metrics...)
	if s.IDColumn != "" {
		required = append(required, s.IDColumn)
	}
	for _, name := range required {
		if _, ok := colIndex[name]; !ok {
			return nil, &SyntaxError{fileName, 1, name, "missing column"}
		}
	}

	var rows [][]string
	var lines []int
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, csvError(fileName, err)
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, rec)
		lines = append(lines, line)
	}

	isMetric := make(map[string]bool, len(s.Metrics))
	for _, m := range s.Metrics {
		isMetric[m] = true
	}

	var b table.Builder
	for i, name := range header {
		vals := make([]string, len(rows))
		for j, row := range rows {
			vals[j] = strings.TrimSpace(row[i])
		}
		switch {
		case name == s.IDColumn:
			b.Add(name, vals)
		case isMetric[name]:
			xs := make([]float64, len(vals))
			for j, v := range vals {
				x, err := strconv.ParseFloat(v, 64)
				if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
					return nil, &SyntaxError{fileName, lines[j], name, fmt.Sprintf("invalid metric value %q", v)}
				}
				xs[j] = x
			}
			b.Add(name, xs)
		default:
			b.Add(name, coerce(vals))
		}
	}
	return b.Done(), nil
}

// coerce converts vals to the narrowest of []int, []float64 and
// []string that represents every value.
func coerce(vals []string) table.Slice {
	if len(vals) == 0 {
		return vals
	}
	ints := make([]int, len(vals))
	for i, v := range vals {
		n, err := strconv.Atoi(v)
		if err != nil {
			ints = nil
			break
		}
		ints[i] = n
	}
	if ints != nil {
		return ints
	}
	floats := make([]float64, len(vals))
	for i, v := range vals {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return vals
		}
		floats[i] = x
	}
	return floats
}

func csvError(fileName string, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &SyntaxError{fileName, perr.Line, "", perr.Err.Error()}
	}
	return fmt.Errorf("%s: %w", fileName, err)
}

// ReadFile reads the result table in the named file. The file is
// closed before ReadFile returns. If the file does not exist, the
// returned error satisfies errors.Is(err, fs.ErrNotExist).
func ReadFile(name string, s Schema) (*table.Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, name, s)
}
