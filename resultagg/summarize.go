// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resultagg reduces index benchmark result tables to summary
// statistics.
//
// A result table holds one row per benchmark run of an index
// structure. The identifier column names the structure, and a set of
// metric columns hold repeated trial measurements. Summarize collapses
// the rows for one identifier into a single value under a Reduction.
// BuildSummary does this for every identifier across a set of named
// groups, typically one group per workload file.
//
// Missing data is a first-class outcome in this package: an
// identifier with no rows yields no value, and a group whose table
// could not be loaded yields no column. Neither is ever rendered as
// zero here; callers that need a dense matrix for display ask for one
// explicitly with Summary.Dense.
package resultagg

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
)

// A Reduction is a policy for collapsing the trial measurements of an
// identifier into one scalar.
type Reduction int

const (
	// MeanThenMax computes the mean of the metric columns within
	// each row and then takes the maximum of those means across
	// rows.
	MeanThenMax Reduction = iota

	// Max takes the maximum of a single metric column across rows.
	Max
)

var reductionNames = map[string]Reduction{
	"mean-then-max": MeanThenMax,
	"mean_then_max": MeanThenMax,
	"max":           Max,
}

// ParseReduction parses the name of a Reduction. It accepts
// "mean-then-max" (or "mean_then_max") and "max".
func ParseReduction(s string) (Reduction, error) {
	if r, ok := reductionNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("unknown reduction %q (want mean-then-max or max)", s)
}

func (r Reduction) String() string {
	switch r {
	case MeanThenMax:
		return "mean-then-max"
	case Max:
		return "max"
	}
	return fmt.Sprintf("Reduction(%d)", int(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r Reduction) MarshalText() ([]byte, error) {
	switch r {
	case MeanThenMax, Max:
		return []byte(r.String()), nil
	}
	return nil, fmt.Errorf("invalid reduction %d", int(r))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Reduction) UnmarshalText(text []byte) error {
	v, err := ParseReduction(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// ErrUnknownColumn is returned (wrapped) when a table lacks a column
// named by a query.
var ErrUnknownColumn = errors.New("unknown column")

// ErrNaN is returned (wrapped) when a matching row has a NaN metric.
var ErrNaN = errors.New("NaN metric value")

// Summarize reduces the rows of t whose idColumn equals idValue to a
// single value.
//
// If no row matches, Summarize returns ok == false and a nil error:
// the identifier simply has no data in t. Errors are reserved for
// queries that cannot be answered for any identifier, such as a
// missing or non-numeric column or a malformed metric list, and for
// NaN metric values, which have no maximum.
//
// For MeanThenMax, each matching row contributes the arithmetic mean
// of its metrics values and the result is the largest such mean. For
// Max, metrics must name exactly one column and the result is its
// largest value among the matching rows.
func Summarize(t *table.Table, idColumn, idValue string, metrics []string, r Reduction) (v float64, ok bool, err error) {
	if err := checkQuery(t, idColumn, metrics, r); err != nil {
		return 0, false, err
	}

	rows := selectRows(t, idColumn, idValue)
	if rows == nil || rows.Len() == 0 {
		return 0, false, nil
	}

	var vals []float64
	switch r {
	case MeanThenMax:
		means := make([]float64, rows.Len())
		cols := make([][]float64, len(metrics))
		for i, m := range metrics {
			cols[i] = floats(rows, m)
		}
		row := make([]float64, len(metrics))
		for i := range means {
			for j := range cols {
				row[j] = cols[j][i]
			}
			means[i] = stats.Mean(row)
		}
		vals = means
	case Max:
		vals = floats(rows, metrics[0])
	}
	// Bounds skips a NaN unless it comes first.
	for _, x := range vals {
		if math.IsNaN(x) {
			return 0, false, fmt.Errorf("%s %q: %w", idColumn, idValue, ErrNaN)
		}
	}
	_, v = stats.Bounds(vals)
	return v, true, nil
}

// checkQuery validates that a query can be evaluated against t.
func checkQuery(t *table.Table, idColumn string, metrics []string, r Reduction) error {
	if t == nil {
		return errors.New("nil result table")
	}
	switch r {
	case MeanThenMax:
		if len(metrics) == 0 {
			return fmt.Errorf("%s needs at least one metric column", r)
		}
	case Max:
		if len(metrics) != 1 {
			return fmt.Errorf("%s needs exactly one metric column, got %d", r, len(metrics))
		}
	default:
		return fmt.Errorf("invalid reduction %d", int(r))
	}

	col := t.Column(idColumn)
	if col == nil {
		return fmt.Errorf("identifier column %q: %w", idColumn, ErrUnknownColumn)
	}
	if _, isString := col.([]string); !isString {
		return fmt.Errorf("identifier column %q has type %T, want []string", idColumn, col)
	}
	for _, m := range metrics {
		col := t.Column(m)
		if col == nil {
			return fmt.Errorf("metric column %q: %w", m, ErrUnknownColumn)
		}
		if !isNumeric(col) {
			return fmt.Errorf("metric column %q has non-numeric type %T", m, col)
		}
	}
	return nil
}

// selectRows returns the rows of t whose idColumn equals idValue.
func selectRows(t *table.Table, idColumn, idValue string) *table.Table {
	return table.FilterEq(t, idColumn, idValue).Table(table.RootGroupID)
}

// floats returns column col of t as a []float64.
func floats(t *table.Table, col string) []float64 {
	var xs []float64
	slice.Convert(&xs, t.MustColumn(col))
	return xs
}

func isNumeric(col table.Slice) bool {
	switch reflect.TypeOf(col).Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
