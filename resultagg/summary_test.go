// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultagg

import (
	"strconv"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sizeQuery = Query{IDColumn: "id", Metrics: []string{"m1"}, Reduction: Max}

func TestBuildSummary(t *testing.T) {
	lookup := results([]string{"PGM", "LIPP", "PGM"}, []float64{10, 20, 30}, []float64{0, 0, 0})
	insert := results([]string{"LIPP"}, []float64{25}, []float64{0})

	s, err := BuildSummary([]Group{
		{"lookup", lookup},
		{"missing", nil},
		{"insert", insert},
	}, []string{"PGM", "LIPP", "Hybrid"}, sizeQuery)
	require.NoError(t, err)

	assert.Equal(t, []string{"lookup", "insert"}, s.Groups())
	assert.Equal(t, []string{"PGM", "LIPP", "Hybrid"}, s.Identifiers())

	// 3 ids × 2 loaded groups, minus PGM absent from insert and
	// Hybrid absent from both.
	assert.Equal(t, 3, s.Len())

	check := func(id, group string, want float64, wantOK bool) {
		t.Helper()
		v, ok := s.Get(id, group)
		assert.Equal(t, wantOK, ok, "Get(%s, %s) ok", id, group)
		if wantOK {
			assert.Equal(t, want, v, "Get(%s, %s)", id, group)
		}
	}
	check("PGM", "lookup", 30, true)
	check("PGM", "insert", 0, false)
	check("LIPP", "lookup", 20, true)
	check("LIPP", "insert", 25, true)
	check("Hybrid", "lookup", 0, false)
	check("PGM", "missing", 0, false)

	assert.Empty(t, s.Row("Hybrid"))
	assert.Equal(t, []Entry{
		{"PGM", "lookup", 30},
		{"LIPP", "lookup", 20},
		{"LIPP", "insert", 25},
	}, s.Entries())
}

// TestBuildSummaryMissingGroup is the two-group scenario where one
// input is missing: only the present group gets a column, and an
// identifier present nowhere has an empty row.
func TestBuildSummaryMissingGroup(t *testing.T) {
	present := results([]string{"A", "A"}, []float64{2, 10}, []float64{4, 0})
	s, err := BuildSummaryMap(map[string]*table.Table{
		"present": present,
		"absent":  nil,
	}, []string{"A", "Z"}, Query{"id", []string{"m1", "m2"}, MeanThenMax})
	require.NoError(t, err)

	assert.Equal(t, []string{"present"}, s.Groups())
	assert.Equal(t, 1, s.Len())
	v, ok := s.Get("A", "present")
	require.True(t, ok)
	assert.Equal(t, 5.0, v)

	assert.Equal(t, [][]string{
		{"index", "present"},
		{"A", "5"},
		{"Z", ""},
	}, s.Cells(ByIdentifier, "index"))
}

func TestBuildSummaryError(t *testing.T) {
	tab := results([]string{"A"}, []float64{1}, []float64{1})
	_, err := BuildSummary([]Group{{"g", tab}}, []string{"A"}, Query{"id", []string{"nope"}, Max})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `group "g"`)
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestSummaryLayouts(t *testing.T) {
	s := FromEntries([]string{"A", "B"}, []string{"g1", "g2"}, []Entry{
		{"A", "g1", 1.5},
		{"B", "g2", 1e9},
	})
	assert.Equal(t, 2, s.Len())

	assert.Equal(t, [][]string{
		{"index", "g1", "g2"},
		{"A", "1.5", ""},
		{"B", "", "1e+09"},
	}, s.Cells(ByIdentifier, "index"))

	assert.Equal(t, [][]string{
		{"workload", "A", "B"},
		{"g1", "1.5", ""},
		{"g2", "", "1e+09"},
	}, s.Cells(ByGroup, "workload"))

	assert.Equal(t, [][]float64{{1.5, 0}, {0, 1e9}}, s.Dense(0))

	half := func(v float64) string { return strconv.FormatFloat(v/2, 'f', 2, 64) }
	assert.Equal(t, [][]string{
		{"workload", "A", "B"},
		{"g1", "0.75", ""},
		{"g2", "", "500000000.00"},
	}, s.CellsFunc(ByGroup, "workload", half))

	tab := s.Table(ByIdentifier, "index")
	assert.Equal(t, []string{"index", "g1", "g2"}, tab.Columns())
	assert.Equal(t, []string{"1.5", ""}, tab.MustColumn("g1"))
}

func TestFromEntriesExtends(t *testing.T) {
	s := FromEntries(nil, nil, []Entry{
		{"B", "g2", 2},
		{"A", "g1", 1},
		{"B", "g2", 3},
	})
	assert.Equal(t, []string{"B", "A"}, s.Identifiers())
	assert.Equal(t, []string{"g2", "g1"}, s.Groups())
	assert.Equal(t, 2, s.Len())
	v, _ := s.Get("B", "g2")
	assert.Equal(t, 3.0, v)
}

func TestTranspose(t *testing.T) {
	s := FromEntries([]string{"A", "Z"}, []string{"g1", "g2"}, []Entry{
		{"A", "g2", 7},
	})
	tr := s.Transpose()
	assert.Equal(t, []string{"g1", "g2"}, tr.Identifiers())
	assert.Equal(t, []string{"A", "Z"}, tr.Groups())
	v, ok := tr.Get("g2", "A")
	assert.True(t, ok)
	assert.Equal(t, 7.0, v)
	_, ok = tr.Get("g1", "A")
	assert.False(t, ok)
	assert.Equal(t, s.Cells(ByGroup, "x"), tr.Cells(ByIdentifier, "x"))
}

func TestSummaryImmutable(t *testing.T) {
	s := FromEntries([]string{"A", "B"}, []string{"g1"}, []Entry{{"A", "g1", 1}})
	ids, groups := s.Identifiers(), s.Groups()
	ids[0], groups[0] = "changed", "changed"
	assert.Equal(t, []string{"A", "B"}, s.Identifiers())
	assert.Equal(t, []string{"g1"}, s.Groups())
	v, ok := s.Get("A", "g1")
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)
}
