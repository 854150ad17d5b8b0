// Package money provides amount coercion and tolerance helpers.
//
// Amounts flow in from two independently writable databases and from
// partially populated domain objects, so any amount may be missing or
// malformed. Every summation in the tool goes through Value or Num so that
// a missing amount contributes zero instead of poisoning a total with NaN.
package money

import (
	"math"
	"strconv"
	"strings"
)

// Tolerance is the absolute slack allowed when comparing monetary values.
// It absorbs rounding differences between numeric(…,2) columns and float64.
const Tolerance = 0.01

// Value returns the amount pointed to by v, or zero when v is nil or does
// not hold a finite number.
func Value(v *float64) float64 {
	if v == nil {
		return 0
	}
	return Num(*v)
}

// Num returns v, or zero when v is NaN or infinite.
func Num(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Within reports whether a and b are equal within Tolerance.
func Within(a, b float64) bool {
	return math.Abs(Num(a)-Num(b)) <= Tolerance
}

// Parse converts a decimal string to a float64 amount. Malformed input
// contributes zero, matching the zero-coercion rule applied to every total.
func Parse(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return Num(v)
}

// Ptr returns a pointer to v. Convenience for building nullable records.
func Ptr(v float64) *float64 {
	return &v
}
