// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultfmt

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/ArushiG11/COS568-LI-SP25/resultagg"
)

// An Input names one group's result file.
type Input struct {
	Label string
	Path  string
}

// ParseInputs parses command-line group arguments. Each argument is
// either label=path or a bare path, in which case the path is also the
// label. Repeated bare paths are disambiguated by appending "#N" to
// their labels.
func ParseInputs(args []string) []Input {
	pathCount := make(map[string]int)
	inputs := make([]Input, 0, len(args))
	labeled := make([]bool, 0, len(args))
	for _, arg := range args {
		if i := strings.Index(arg, "="); i >= 0 {
			inputs = append(inputs, Input{arg[:i], arg[i+1:]})
			labeled = append(labeled, true)
			continue
		}
		pathCount[arg]++
		inputs = append(inputs, Input{arg, arg})
		labeled = append(labeled, false)
	}

	pathI := make(map[string]int)
	for i := range inputs {
		in := &inputs[i]
		if labeled[i] || pathCount[in.Path] == 1 {
			continue
		}
		in.Label = fmt.Sprintf("%s#%d", in.Path, pathI[in.Path])
		pathI[in.Path]++
	}
	return inputs
}

// A Loaded is the result of loading one Input.
type Loaded struct {
	Input
	resultagg.Group

	// Err is non-nil if the input was not loaded. Missing files
	// are reported here with an error satisfying
	// errors.Is(err, fs.ErrNotExist).
	Err error
}

// LoadGroups reads each input using schema s.
//
// A missing file is not an error: its Loaded has a nil Table and a
// non-nil Err, and warn, if non-nil, is called to report it. Any other
// failure, including a malformed row, stops loading and is returned.
func LoadGroups(inputs []Input, s Schema, warn func(format string, args ...interface{})) ([]Loaded, error) {
	out := make([]Loaded, 0, len(inputs))
	for _, in := range inputs {
		l := Loaded{Input: in, Group: resultagg.Group{Name: in.Label}}
		t, err := ReadFile(in.Path, s)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			l.Err = err
			if warn != nil {
				warn("skipping %s: %v", in.Label, err)
			}
		case err != nil:
			return nil, fmt.Errorf("loading %s: %w", in.Label, err)
		default:
			l.Table = t
		}
		out = append(out, l)
	}
	return out, nil
}

// Groups returns the groups of ls, including those that failed to
// load.
func Groups(ls []Loaded) []resultagg.Group {
	gs := make([]resultagg.Group, len(ls))
	for i, l := range ls {
		gs[i] = l.Group
	}
	return gs
}
