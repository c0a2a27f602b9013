// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultagg

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/aclements/go-gg/table"
)

// A Group is a named result table, such as the results of one
// workload.
type Group struct {
	// Name labels the group in summaries, for example
	// "10% Insert Mix".
	Name string

	// Table holds the group's results. A nil Table means the
	// group's input could not be located; such groups contribute
	// nothing to a Summary.
	Table *table.Table
}

// A Query describes how to reduce each identifier's rows.
type Query struct {
	// IDColumn is the column naming the index structure that
	// produced each row, typically "index_name".
	IDColumn string

	// Metrics are the columns combined by Reduction.
	Metrics []string

	Reduction Reduction
}

// An Entry is a single summarized value.
type Entry struct {
	Identifier string
	Group      string
	Value      float64
}

// A Summary maps (identifier, group) pairs to summarized values.
// Pairs with no data have no entry. A Summary is immutable once
// built.
type Summary struct {
	ids    []string
	groups []string
	vals   map[string]map[string]float64
	n      int
}

// BuildSummary summarizes every identifier in ids against every group
// in groups.
//
// Groups with a nil Table are skipped entirely: they produce no
// column and no entries. Within a loaded group, an identifier with no
// rows produces no entry. The resulting Summary lists all of ids, in
// order, even those with no entries in any group, and the loaded
// groups in the order given.
//
// An error from Summarize aborts the build; it indicates a query that
// does not fit the table schema, not missing data.
func BuildSummary(groups []Group, ids []string, q Query) (*Summary, error) {
	s := &Summary{
		ids:  append([]string(nil), ids...),
		vals: make(map[string]map[string]float64),
	}
	for _, g := range groups {
		if g.Table == nil {
			continue
		}
		s.groups = append(s.groups, g.Name)
	}

	for _, id := range ids {
		for _, g := range groups {
			if g.Table == nil {
				continue
			}
			v, ok, err := Summarize(g.Table, q.IDColumn, id, q.Metrics, q.Reduction)
			if err != nil {
				return nil, fmt.Errorf("group %q, %s %q: %w", g.Name, q.IDColumn, id, err)
			}
			if !ok {
				continue
			}
			s.set(id, g.Name, v)
		}
	}
	return s, nil
}

// BuildSummaryMap is like BuildSummary, but takes groups as a map
// from group name to table. Groups are ordered by name. A nil table
// marks a group whose input is missing.
func BuildSummaryMap(tables map[string]*table.Table, ids []string, q Query) (*Summary, error) {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)
	groups := make([]Group, len(names))
	for i, name := range names {
		groups[i] = Group{name, tables[name]}
	}
	return BuildSummary(groups, ids, q)
}

// FromEntries reconstructs a Summary from its identifiers, groups and
// entries, as previously obtained from Identifiers, Groups and
// Entries. Entries for unknown identifiers or groups are added to the
// end of the respective lists.
func FromEntries(ids, groups []string, entries []Entry) *Summary {
	s := &Summary{
		ids:    append([]string(nil), ids...),
		groups: append([]string(nil), groups...),
		vals:   make(map[string]map[string]float64),
	}
	knownID := make(map[string]bool)
	for _, id := range ids {
		knownID[id] = true
	}
	knownGroup := make(map[string]bool)
	for _, g := range groups {
		knownGroup[g] = true
	}
	for _, e := range entries {
		if !knownID[e.Identifier] {
			knownID[e.Identifier] = true
			s.ids = append(s.ids, e.Identifier)
		}
		if !knownGroup[e.Group] {
			knownGroup[e.Group] = true
			s.groups = append(s.groups, e.Group)
		}
		s.set(e.Identifier, e.Group, e.Value)
	}
	return s
}

func (s *Summary) set(id, group string, v float64) {
	row := s.vals[id]
	if row == nil {
		row = make(map[string]float64)
		s.vals[id] = row
	}
	if _, dup := row[group]; !dup {
		s.n++
	}
	row[group] = v
}

// Transpose returns a Summary with the roles of identifiers and
// groups swapped.
func (s *Summary) Transpose() *Summary {
	entries := s.Entries()
	for i, e := range entries {
		entries[i] = Entry{Identifier: e.Group, Group: e.Identifier, Value: e.Value}
	}
	return FromEntries(s.groups, s.ids, entries)
}

// Get returns the value for identifier id in group, and whether there
// is one.
func (s *Summary) Get(id, group string) (float64, bool) {
	v, ok := s.vals[id][group]
	return v, ok
}

// Len returns the number of entries in s.
func (s *Summary) Len() int {
	return s.n
}

// Identifiers returns a copy of the identifiers of s in order. This
// includes identifiers with no entries.
func (s *Summary) Identifiers() []string {
	return append([]string(nil), s.ids...)
}

// Groups returns a copy of the names of the groups that contributed
// to s, in order.
func (s *Summary) Groups() []string {
	return append([]string(nil), s.groups...)
}

// Row returns the entries for identifier id keyed by group. The
// returned map must not be modified.
func (s *Summary) Row(id string) map[string]float64 {
	return s.vals[id]
}

// Entries returns all entries of s, ordered by identifier and then by
// group.
func (s *Summary) Entries() []Entry {
	out := make([]Entry, 0, s.n)
	for _, id := range s.ids {
		for _, g := range s.groups {
			if v, ok := s.Get(id, g); ok {
				out = append(out, Entry{id, g, v})
			}
		}
	}
	return out
}

// Dense returns s as a matrix indexed by [identifier][group], with
// fill in place of missing values. It is meant for charting, where a
// gap is drawn as an empty bar; it should not be used for output that
// must preserve absence.
func (s *Summary) Dense(fill float64) [][]float64 {
	m := make([][]float64, len(s.ids))
	for i, id := range s.ids {
		row := s.Row(id)
		m[i] = make([]float64, len(s.groups))
		for j, g := range s.groups {
			if v, ok := row[g]; ok {
				m[i][j] = v
			} else {
				m[i][j] = fill
			}
		}
	}
	return m
}

// An Orientation selects how a Summary is laid out as a table.
type Orientation int

const (
	// ByIdentifier lays out one row per identifier and one
	// column per group.
	ByIdentifier Orientation = iota

	// ByGroup lays out one row per group and one column per
	// identifier.
	ByGroup
)

// Cells returns s laid out according to o as a header row followed by
// data rows. The first header cell is corner. Missing values are
// empty strings. Values are formatted with the shortest
// representation that round-trips through strconv.ParseFloat.
func (s *Summary) Cells(o Orientation, corner string) [][]string {
	return s.CellsFunc(o, corner, func(v float64) string {
		return strconv.FormatFloat(v, 'g', -1, 64)
	})
}

// CellsFunc is like Cells, but formats values with format.
func (s *Summary) CellsFunc(o Orientation, corner string, format func(float64) string) [][]string {
	if o == ByGroup {
		return s.Transpose().CellsFunc(ByIdentifier, corner, format)
	}
	out := make([][]string, 0, len(s.ids)+1)
	out = append(out, append([]string{corner}, s.groups...))
	for _, id := range s.ids {
		row := s.Row(id)
		line := make([]string, 0, len(s.groups)+1)
		line = append(line, id)
		for _, g := range s.groups {
			if v, ok := row[g]; ok {
				line = append(line, format(v))
			} else {
				line = append(line, "")
			}
		}
		out = append(out, line)
	}
	return out
}

// Table returns s as a table of formatted cells laid out according to
// o. The first column is named corner. Missing values are empty
// strings.
func (s *Summary) Table(o Orientation, corner string) *table.Table {
	cells := s.Cells(o, corner)
	return table.TableFromStrings(cells[0], cells[1:], false)
}
