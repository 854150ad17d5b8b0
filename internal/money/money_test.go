package money

import (
	"math"
	"testing"
)

func TestValue(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)
	amount := 12.5

	cases := []struct {
		name string
		in   *float64
		out  float64
	}{
		{"nil", nil, 0},
		{"value", &amount, 12.5},
		{"nan", &nan, 0},
		{"inf", &inf, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Value(tc.in); got != tc.out {
				t.Fatalf("Value(%v) = %v, want %v", tc.in, got, tc.out)
			}
		})
	}
}

func TestWithin(t *testing.T) {
	cases := []struct {
		a, b float64
		want bool
	}{
		{100, 100, true},
		{100, 100.009, true},
		{100, 100.02, false},
		{0, 0.01, true},
		{math.NaN(), 0, true}, // NaN coerces to zero before comparing
	}
	for _, tc := range cases {
		if got := Within(tc.a, tc.b); got != tc.want {
			t.Fatalf("Within(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		in  string
		out float64
	}{
		{"12.34", 12.34},
		{" 2.50 ", 2.5},
		{"0", 0},
		{"", 0},
		{"abc", 0},
		{"1.2.3", 0},
		{"NaN", 0},
	}
	for _, tc := range cases {
		if got := Parse(tc.in); got != tc.out {
			t.Fatalf("Parse(%q) = %v, want %v", tc.in, got, tc.out)
		}
	}
}
