// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config defines the analysis plan: which result files to
// read, which indexes to compare, and which charts to produce.
package config

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ArushiG11/COS568-LI-SP25/internal/units"
	"github.com/ArushiG11/COS568-LI-SP25/resultagg"
	"github.com/ArushiG11/COS568-LI-SP25/resultfmt"
)

// A Plan describes a complete analysis run.
type Plan struct {
	// Results is the directory holding the harness result tables.
	Results string `mapstructure:"results" yaml:"results"`
	// A workload's file is Results/Prefix+Workload.Suffix+Suffix.
	Prefix string `mapstructure:"prefix" yaml:"prefix"`
	Suffix string `mapstructure:"suffix" yaml:"suffix"`

	IDColumn    string     `mapstructure:"id_column" yaml:"id_column"`
	Identifiers []string   `mapstructure:"identifiers" yaml:"identifiers"`
	Workloads   []Workload `mapstructure:"workloads" yaml:"workloads"`
	Charts      []Chart    `mapstructure:"charts" yaml:"charts"`
	Output      Output     `mapstructure:"output" yaml:"output"`
}

// A Workload is one group of results, stored in one file.
type Workload struct {
	Label  string `mapstructure:"label" yaml:"label"`
	Suffix string `mapstructure:"suffix" yaml:"suffix"`
}

// A Chart names a metric to summarize and how to draw it.
type Chart struct {
	Name      string   `mapstructure:"name" yaml:"name"`
	Title     string   `mapstructure:"title" yaml:"title"`
	YLabel    string   `mapstructure:"y_label" yaml:"y_label"`
	Metrics   []string `mapstructure:"metrics" yaml:"metrics"`
	Reduction string   `mapstructure:"reduction" yaml:"reduction"`
	// Workloads lists workload labels. Empty means all workloads.
	Workloads []string `mapstructure:"workloads" yaml:"workloads,omitempty"`
	// Units is "decimal" or "binary". Empty guesses from the first
	// metric's name.
	Units  string   `mapstructure:"units" yaml:"units,omitempty"`
	Colors []string `mapstructure:"colors" yaml:"colors,omitempty"`
}

// Output controls where and how results are written.
type Output struct {
	Dir     string   `mapstructure:"dir" yaml:"dir"`
	Formats []string `mapstructure:"formats" yaml:"formats"`
	DPI     int      `mapstructure:"dpi" yaml:"dpi"`
	Comma   string   `mapstructure:"comma" yaml:"comma"`
}

var pastels = []string{"#a6cee3", "#b2df8a", "#fb9a99", "#fdbf6f"}

// Default returns the plan for the standard learned index experiments:
// four index structures over four Facebook 100M key workloads.
func Default() *Plan {
	return &Plan{
		Results:     "results",
		Prefix:      "fb_100M_public_uint64_ops_2M_0.000000rq_0.500000nl_",
		Suffix:      "_results_table.csv",
		IDColumn:    "index_name",
		Identifiers: []string{"DynamicPGM", "LIPP", "HybridPGMLIPP", "HybridDoubleBuffer"},
		Workloads: []Workload{
			{"Lookup Only", "0.000000i"},
			{"50% Insert", "0.500000i_0m"},
			{"10% Insert Mix", "0.100000i_0m_mix"},
			{"90% Insert Mix", "0.900000i_0m_mix"},
		},
		Charts: []Chart{
			{
				Name:      "index_size_comparison",
				Title:     "Index Size Comparison Across Workloads",
				YLabel:    "Index Size (Bytes)",
				Metrics:   []string{"index_size_bytes"},
				Reduction: resultagg.Max.String(),
				Units:     units.Binary.String(),
				Colors:    pastels,
			},
			{
				Name:      "mixed_throughput_comparison",
				Title:     "Mixed Workload Throughput",
				YLabel:    "Throughput (Mops/s)",
				Metrics:   []string{"mixed_throughput_mops1", "mixed_throughput_mops2", "mixed_throughput_mops3"},
				Reduction: resultagg.MeanThenMax.String(),
				Workloads: []string{"10% Insert Mix", "90% Insert Mix"},
				Units:     units.Decimal.String(),
				Colors:    pastels,
			},
		},
		Output: Output{
			Dir:     ".",
			Formats: []string{"png"},
			DPI:     300,
			Comma:   ",",
		},
	}
}

// Load returns the default plan overridden by the settings in v.
//
// If v has a config file, it is read first and must not contain keys
// unknown to Plan. Only keys that are set, in the file or through
// bound flags that were changed, replace defaults. Lists replace the
// default list as a whole.
func Load(v *viper.Viper) (*Plan, error) {
	if file := v.ConfigFileUsed(); file != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	var set Plan
	if err := v.UnmarshalExact(&set); err != nil {
		return nil, fmt.Errorf("config %s: %w", v.ConfigFileUsed(), err)
	}

	p := Default()
	override := func(key string, apply func()) {
		if v.IsSet(key) {
			apply()
		}
	}
	override("results", func() { p.Results = set.Results })
	override("prefix", func() { p.Prefix = set.Prefix })
	override("suffix", func() { p.Suffix = set.Suffix })
	override("id_column", func() { p.IDColumn = set.IDColumn })
	override("identifiers", func() { p.Identifiers = set.Identifiers })
	override("workloads", func() { p.Workloads = set.Workloads })
	override("charts", func() { p.Charts = set.Charts })
	override("output.dir", func() { p.Output.Dir = set.Output.Dir })
	override("output.formats", func() { p.Output.Formats = set.Output.Formats })
	override("output.dpi", func() { p.Output.DPI = set.Output.DPI })
	override("output.comma", func() { p.Output.Comma = set.Output.Comma })

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate reports the first inconsistency in p.
func (p *Plan) Validate() error {
	if p.IDColumn == "" {
		return errors.New("id_column is empty")
	}
	if len(p.Identifiers) == 0 {
		return errors.New("no identifiers")
	}
	workloads := make(map[string]bool)
	for _, w := range p.Workloads {
		if w.Label == "" {
			return errors.New("workload with empty label")
		}
		if workloads[w.Label] {
			return fmt.Errorf("duplicate workload %q", w.Label)
		}
		workloads[w.Label] = true
	}
	charts := make(map[string]bool)
	for i := range p.Charts {
		c := &p.Charts[i]
		if c.Name == "" {
			return fmt.Errorf("chart %d has no name", i)
		}
		if charts[c.Name] {
			return fmt.Errorf("duplicate chart %q", c.Name)
		}
		charts[c.Name] = true
		if _, err := c.Query(p.IDColumn); err != nil {
			return fmt.Errorf("chart %q: %w", c.Name, err)
		}
		if c.Units != "" {
			if _, err := units.ParseClass(c.Units); err != nil {
				return fmt.Errorf("chart %q: %w", c.Name, err)
			}
		}
		for _, w := range c.Workloads {
			if !workloads[w] {
				return fmt.Errorf("chart %q: unknown workload %q", c.Name, w)
			}
		}
	}
	if utf8.RuneCountInString(p.Output.Comma) != 1 {
		return fmt.Errorf("output.comma must be a single character, not %q", p.Output.Comma)
	}
	if p.Output.DPI <= 0 {
		return fmt.Errorf("output.dpi must be positive, not %d", p.Output.DPI)
	}
	return nil
}

// Chart returns the chart with the given name.
func (p *Plan) Chart(name string) (*Chart, bool) {
	for i := range p.Charts {
		if p.Charts[i].Name == name {
			return &p.Charts[i], true
		}
	}
	return nil, false
}

// Comma returns the field delimiter for input and output tables.
func (p *Plan) Comma() rune {
	r, _ := utf8.DecodeRuneInString(p.Output.Comma)
	return r
}

// Path returns the result file of workload w.
func (p *Plan) Path(w Workload) string {
	return filepath.Join(p.Results, p.Prefix+w.Suffix+p.Suffix)
}

// Inputs returns the labeled result files that chart c reads, in
// plan order.
func (p *Plan) Inputs(c *Chart) []resultfmt.Input {
	want := make(map[string]bool)
	for _, w := range c.Workloads {
		want[w] = true
	}
	var inputs []resultfmt.Input
	for _, w := range p.Workloads {
		if len(want) > 0 && !want[w.Label] {
			continue
		}
		inputs = append(inputs, resultfmt.Input{Label: w.Label, Path: p.Path(w)})
	}
	return inputs
}

// Schema returns the input schema for chart c.
func (p *Plan) Schema(c *Chart) resultfmt.Schema {
	return resultfmt.Schema{IDColumn: p.IDColumn, Metrics: c.Metrics, Comma: p.Comma()}
}

// Query returns the aggregation query of c.
func (c *Chart) Query(idColumn string) (resultagg.Query, error) {
	if len(c.Metrics) == 0 {
		return resultagg.Query{}, errors.New("no metrics")
	}
	r, err := resultagg.ParseReduction(c.Reduction)
	if err != nil {
		return resultagg.Query{}, err
	}
	if r == resultagg.Max && len(c.Metrics) != 1 {
		return resultagg.Query{}, fmt.Errorf("reduction max needs exactly one metric, have %d", len(c.Metrics))
	}
	return resultagg.Query{IDColumn: idColumn, Metrics: c.Metrics, Reduction: r}, nil
}

// Class returns the unit class of c's values.
func (c *Chart) Class() units.Class {
	if cls, err := units.ParseClass(c.Units); err == nil {
		return cls
	}
	if len(c.Metrics) > 0 {
		return units.ClassOf(c.Metrics[0])
	}
	return units.Decimal
}

// WriteYAML writes p to w in the config file format.
func (p *Plan) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return err
	}
	return enc.Close()
}
