// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultfmt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ArushiG11/COS568-LI-SP25/resultagg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInputs(t *testing.T) {
	got := ParseInputs([]string{"a.csv", "Lookup Only=b.csv", "c.csv", "a.csv", "x=a.csv"})
	assert.Equal(t, []Input{
		{"a.csv#0", "a.csv"},
		{"Lookup Only", "b.csv"},
		{"c.csv", "c.csv"},
		{"a.csv#1", "a.csv"},
		{"x", "a.csv"},
	}, got)
}

func TestLoadGroups(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "mix10.csv")
	require.NoError(t, os.WriteFile(present, []byte("index_name,mixed_throughput_mops1\nLIPP,3\n"), 0666))

	var warnings []string
	warn := func(format string, args ...interface{}) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	loaded, err := LoadGroups([]Input{
		{"10% Insert Mix", present},
		{"90% Insert Mix", filepath.Join(dir, "mix90.csv")},
	}, Schema{IDColumn: "index_name", Metrics: []string{"mixed_throughput_mops1"}}, warn)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.NoError(t, loaded[0].Err)
	assert.NotNil(t, loaded[0].Table)
	assert.Equal(t, "10% Insert Mix", loaded[0].Name)

	assert.Nil(t, loaded[1].Table)
	assert.True(t, errors.Is(loaded[1].Err, fs.ErrNotExist))
	require.Len(t, warnings, 1)
	assert.True(t, strings.HasPrefix(warnings[0], "skipping 90% Insert Mix: "), warnings[0])

	s, err := resultagg.BuildSummary(Groups(loaded), []string{"LIPP", "DynamicPGM"}, resultagg.Query{
		IDColumn:  "index_name",
		Metrics:   []string{"mixed_throughput_mops1"},
		Reduction: resultagg.Max,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"10% Insert Mix"}, s.Groups())
	assert.Equal(t, 1, s.Len())
}

func TestLoadGroupsMalformed(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("index_name,index_size_bytes\nLIPP,big\n"), 0666))

	_, err := LoadGroups([]Input{
		{"missing", filepath.Join(dir, "none.csv")},
		{"bad", bad},
	}, Schema{IDColumn: "index_name", Metrics: []string{"index_size_bytes"}}, nil)
	require.Error(t, err)
	var serr *SyntaxError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 2, serr.Line)
	assert.False(t, errors.Is(err, fs.ErrNotExist))
}
