// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package units formats summary values with SI or binary prefixes.
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A Class selects the family of prefixes used to scale a value.
type Class int

const (
	// Decimal scales by powers of 1000 with SI prefixes ("k",
	// "M", ...). Throughputs use Decimal.
	Decimal Class = iota

	// Binary scales by powers of 1024 with IEC prefixes ("Ki",
	// "Mi", ...). Sizes in bytes use Binary.
	Binary
)

func (c Class) String() string {
	switch c {
	case Decimal:
		return "decimal"
	case Binary:
		return "binary"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// ParseClass parses "decimal" or "binary".
func ParseClass(s string) (Class, error) {
	switch strings.ToLower(s) {
	case "decimal", "si":
		return Decimal, nil
	case "binary", "iec":
		return Binary, nil
	}
	return 0, fmt.Errorf("unknown unit class %q", s)
}

// ClassOf guesses the Class of a metric from its column name. Columns
// measuring bytes are Binary; everything else is Decimal.
func ClassOf(column string) Class {
	for _, part := range strings.FieldsFunc(strings.ToLower(column), func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '/'
	}) {
		if part == "bytes" || part == "b" || part == "size" {
			return Binary
		}
	}
	return Decimal
}

// A Scaler formats numbers with a fixed scale factor.
type Scaler struct {
	Prec   int     // digits after the decimal point, or -1 for the shortest exact form
	Factor float64 // value of one Prefix, e.g. 1024 for "Ki"
	Prefix string
}

// Format formats val scaled by s, followed by s.Prefix.
func (s Scaler) Format(val float64) string {
	buf := make([]byte, 0, 16)
	buf = strconv.AppendFloat(buf, val/s.Factor, 'f', s.Prec, 64)
	return string(append(buf, s.Prefix...))
}

type prefix struct {
	factor float64
	name   string
}

var (
	siPrefixes  = []prefix{{1e12, "T"}, {1e9, "G"}, {1e6, "M"}, {1e3, "k"}, {1, ""}, {1e-3, "m"}, {1e-6, "µ"}, {1e-9, "n"}}
	iecPrefixes = []prefix{{1 << 40, "Ti"}, {1 << 30, "Gi"}, {1 << 20, "Mi"}, {1 << 10, "Ki"}, {1, ""}}
)

// CommonScale returns a Scaler that shows every value in vals with at
// least three significant digits. The scale is chosen by the non-zero
// value closest to zero, so the smallest bar in a chart is still
// readable.
func CommonScale(vals []float64, cls Class) Scaler {
	var min float64
	for _, v := range vals {
		v = math.Abs(v)
		if v != 0 && !math.IsInf(v, 0) && !math.IsNaN(v) && (min == 0 || v < min) {
			min = v
		}
	}
	if min == 0 {
		return Scaler{0, 1, ""}
	}

	prefixes := siPrefixes
	if cls == Binary {
		prefixes = iecPrefixes
	}
	p := prefixes[len(prefixes)-1]
	for _, cand := range prefixes {
		if min >= cand.factor {
			p = cand
			break
		}
	}

	prec := 3 - intDigits(min/p.factor)
	if prec < 0 {
		prec = 0
	}
	if p.factor == 1 && cls == Binary && math.Trunc(min) == min {
		// Whole bytes need no fractional digits.
		prec = 0
	}
	return Scaler{prec, p.factor, p.name}
}

// intDigits returns the number of digits before the decimal point of
// x > 0, or minus the number of leading fractional zeros if x < 0.1.
func intDigits(x float64) int {
	d := 1
	for ; x >= 10; x /= 10 {
		d++
	}
	if x < 1 {
		d = 0
		for ; x < 0.1; x *= 10 {
			d--
		}
	}
	return d
}

// Scale formats val with at least three significant digits and an
// appropriate prefix.
func Scale(val float64, cls Class) string {
	return CommonScale([]float64{val}, cls).Format(val)
}
