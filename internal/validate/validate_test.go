package validate

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestFieldRequired(t *testing.T) {
	var nilStr *string
	var nilAmount *float64
	name := "RC-1234"

	cases := []struct {
		name    string
		value   any
		c       Constraint
		wantErr bool
	}{
		{"nil interface", nil, NotNull(), true},
		{"nil string pointer", nilStr, NotNull(), true},
		{"nil float pointer", nilAmount, NotNull(), true},
		{"empty string", "", NotNull(), true},
		{"zero time", time.Time{}, NotNull(), true},
		{"present string", name, NotNull(), false},
		{"present pointer", &name, NotNull(), false},
		{"zero number is present", float64(0), NotNull(), false},
		{"absent nullable", nilStr, Nullable(), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := Field("reference", tc.value, tc.c)
			if tc.wantErr && len(errs) == 0 {
				t.Fatalf("expected a violation, got none")
			}
			if !tc.wantErr && len(errs) != 0 {
				t.Fatalf("expected no violations, got %v", errs)
			}
		})
	}
}

func TestFieldRequiredShortCircuits(t *testing.T) {
	// A missing required field must report only the absence, not the
	// downstream length/enum violations.
	errs := Field("status", nil, NotNull().Enum("success", "failed").MaxLength(10))
	if len(errs) != 1 {
		t.Fatalf("expected exactly one violation, got %v", errs)
	}
	if !strings.Contains(errs[0], "required") {
		t.Fatalf("expected required violation, got %q", errs[0])
	}
}

func TestFieldChecks(t *testing.T) {
	cases := []struct {
		name  string
		value any
		c     Constraint
		want  string // substring of the single expected violation, "" for none
	}{
		{"enum ok", "success", Nullable().Enum("success", "failed"), ""},
		{"enum violation", "bogus", Nullable().Enum("success", "failed"), "must be one of"},
		{"max length ok", "abc", Nullable().MaxLength(3), ""},
		{"max length violation", "abcd", Nullable().MaxLength(3), "at most 3 characters"},
		{"min length ok", "abc", Nullable().MinLength(3), ""},
		{"min length violation", "ab", Nullable().MinLength(3), "at least 3 characters"},
		{"max value ok", 150.0, Nullable().MaxValue(200), ""},
		{"max value violation", 250.0, Nullable().MaxValue(200), "at most 200"},
		{"positive ok", 12.5, Nullable().PositiveNumber(), ""},
		{"positive violation", -0.5, Nullable().PositiveNumber(), "at least 0"},
		{"int64 positive violation", int64(-2), Nullable().PositiveNumber(), "at least 0"},
		{"pattern ok", "2024-0001", Nullable().Matches(regexp.MustCompile(`^\d{4}-\d{4}$`)), ""},
		{"pattern violation", "nope", Nullable().Matches(regexp.MustCompile(`^\d{4}-\d{4}$`)), "pattern"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := Field("f", tc.value, tc.c)
			if tc.want == "" {
				if len(errs) != 0 {
					t.Fatalf("expected no violations, got %v", errs)
				}
				return
			}
			if len(errs) != 1 || !strings.Contains(errs[0], tc.want) {
				t.Fatalf("expected violation containing %q, got %v", tc.want, errs)
			}
		})
	}
}

func TestConstraintImmutability(t *testing.T) {
	base := NotNull()
	derived := base.MaxLength(5).Enum("a", "b")

	if base.MaxLen != 0 || base.Allowed != nil {
		t.Fatalf("base constraint mutated by derivation: %+v", base)
	}
	if !derived.Required || derived.MaxLen != 5 {
		t.Fatalf("derived constraint lost settings: %+v", derived)
	}
}

func TestResultBuckets(t *testing.T) {
	r := NewResult()
	if !r.IsValid() || r.HasWarnings() {
		t.Fatal("empty result should be valid with no warnings")
	}

	r.AddWarning("amount", "looks off")
	if !r.IsValid() {
		t.Fatal("warnings must not affect validity")
	}
	if !r.HasWarnings() {
		t.Fatal("expected warnings")
	}

	r.AddError("amount", "too large")
	if r.IsValid() {
		t.Fatal("errors must invalidate the result")
	}
	if r.Errors[0].Field != "amount" {
		t.Fatalf("error field = %q, want amount", r.Errors[0].Field)
	}
}

func TestResultMerge(t *testing.T) {
	r := NewResult()
	other := NewResult()
	other.AddError("amount", "too large")
	other.AddWarning("volume", "looks off")

	r.Merge(other)
	r.Merge(nil)

	if len(r.Errors) != 1 || len(r.Warnings) != 1 {
		t.Fatalf("merged counts = %d/%d, want 1/1", len(r.Errors), len(r.Warnings))
	}
	if r.IsValid() {
		t.Fatal("merged errors must invalidate the result")
	}
}
