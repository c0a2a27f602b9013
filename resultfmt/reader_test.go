// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultfmt

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const harnessCSV = `index_name,build_time_ns1,index_size_bytes,mixed_throughput_mops1,mixed_throughput_mops2,mixed_throughput_mops3,search_method,value
DynamicPGM,1200,4096,1.5,2.5,3.5,BinarySearch,16
LIPP,900,65536,4,5,6,,0
DynamicPGM,1100,8192,2,2,2,LinearSearch,32
`

var throughput = []string{"mixed_throughput_mops1", "mixed_throughput_mops2", "mixed_throughput_mops3"}

func TestRead(t *testing.T) {
	tab, err := Read(strings.NewReader(harnessCSV), "mix.csv", Schema{
		IDColumn: "index_name",
		Metrics:  append([]string{"index_size_bytes"}, throughput...),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, tab.Len())
	assert.Equal(t, []string{
		"index_name", "build_time_ns1", "index_size_bytes",
		"mixed_throughput_mops1", "mixed_throughput_mops2", "mixed_throughput_mops3",
		"search_method", "value",
	}, tab.Columns())

	assert.Equal(t, []string{"DynamicPGM", "LIPP", "DynamicPGM"}, tab.MustColumn("index_name"))
	// Declared metrics are float64 even when integral.
	assert.Equal(t, []float64{4096, 65536, 8192}, tab.MustColumn("index_size_bytes"))
	assert.Equal(t, []float64{1.5, 4, 2}, tab.MustColumn("mixed_throughput_mops1"))
	// Other columns are coerced.
	assert.Equal(t, []int{1200, 900, 1100}, tab.MustColumn("build_time_ns1"))
	assert.Equal(t, []string{"BinarySearch", "", "LinearSearch"}, tab.MustColumn("search_method"))
	assert.Equal(t, []int{16, 0, 32}, tab.MustColumn("value"))
}

func TestReadHeaderOnly(t *testing.T) {
	tab, err := Read(strings.NewReader("index_name,index_size_bytes\n"), "empty.csv", Schema{
		IDColumn: "index_name",
		Metrics:  []string{"index_size_bytes"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, tab.Len())
	assert.Equal(t, []string{"index_name", "index_size_bytes"}, tab.Columns())
}

func TestReadTabs(t *testing.T) {
	tab, err := Read(strings.NewReader("index_name\tsize\nLIPP\t12.5\n"), "t.tsv", Schema{
		IDColumn: "index_name",
		Metrics:  []string{"size"},
		Comma:    '\t',
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{12.5}, tab.MustColumn("size"))
}

func TestReadErrors(t *testing.T) {
	schema := Schema{IDColumn: "index_name", Metrics: []string{"index_size_bytes"}}
	for _, test := range []struct {
		name   string
		input  string
		line   int
		column string
	}{
		{"empty", "", 1, ""},
		{"missing metric column", "index_name,other\nA,1\n", 1, "index_size_bytes"},
		{"missing id column", "name,index_size_bytes\nA,1\n", 1, "index_name"},
		{"duplicate column", "index_name,index_size_bytes,index_size_bytes\nA,1,2\n", 1, "index_size_bytes"},
		{"non-numeric metric", "index_name,index_size_bytes\nA,1\nB,lots\n", 3, "index_size_bytes"},
		{"empty metric", "index_name,index_size_bytes\nA,\n", 2, "index_size_bytes"},
		{"NaN metric", "index_name,index_size_bytes\nA,NaN\nA,5\n", 2, "index_size_bytes"},
		{"NaN after value", "index_name,index_size_bytes\nA,5\nA,nan\n", 3, "index_size_bytes"},
		{"inf metric", "index_name,index_size_bytes\nA,inf\n", 2, "index_size_bytes"},
		{"negative infinity", "index_name,index_size_bytes\nA,1\nA,-Infinity\n", 3, "index_size_bytes"},
		{"short row", "index_name,index_size_bytes\nA,1\nB\n", 3, ""},
		{"bare quote", "index_name,index_size_bytes\nA\"B,1\n", 2, ""},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(test.input), "bad.csv", schema)
			require.Error(t, err)
			var serr *SyntaxError
			require.True(t, errors.As(err, &serr), "got %T: %v", err, err)
			assert.Equal(t, "bad.csv", serr.FileName)
			assert.Equal(t, test.line, serr.Line)
			assert.Equal(t, test.column, serr.Column)
		})
	}
}

func TestSyntaxErrorString(t *testing.T) {
	assert.Equal(t, `f.csv:3: column "m": invalid metric value "x"`,
		(&SyntaxError{"f.csv", 3, "m", `invalid metric value "x"`}).Error())
	assert.Equal(t, "f.csv:1: missing header row",
		(&SyntaxError{"f.csv", 1, "", "missing header row"}).Error())
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"), Schema{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.csv")
	require.NoError(t, os.WriteFile(path, []byte(harnessCSV), 0666))
	tab, err := ReadFile(path, Schema{IDColumn: "index_name", Metrics: throughput})
	require.NoError(t, err)
	assert.Equal(t, 3, tab.Len())
}
