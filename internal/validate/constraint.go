// Package validate implements declarative per-field validation for database
// records. A Constraint is an immutable value: the builder methods use value
// receivers and return modified copies, so shared constraint tables cannot be
// mutated by callers.
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
)

// Constraint describes the rules a single field must satisfy.
type Constraint struct {
	Required bool
	Allowed  []string
	MinLen   int
	MaxLen   int
	Min      *float64
	Max      *float64
	Pattern  *regexp.Regexp
}

// NotNull returns a constraint requiring the field to be present.
func NotNull() Constraint {
	return Constraint{Required: true}
}

// Nullable returns a constraint that accepts an absent field.
func Nullable() Constraint {
	return Constraint{}
}

// Enum restricts the field to one of the given values.
func (c Constraint) Enum(values ...string) Constraint {
	c.Allowed = values
	return c
}

// PositiveNumber restricts a numeric field to values >= 0.
func (c Constraint) PositiveNumber() Constraint {
	zero := 0.0
	c.Min = &zero
	return c
}

// MaxValue restricts a numeric field to values <= n.
func (c Constraint) MaxValue(n float64) Constraint {
	c.Max = &n
	return c
}

// MinLength requires a string field to have at least n characters.
func (c Constraint) MinLength(n int) Constraint {
	c.MinLen = n
	return c
}

// MaxLength restricts a string field to at most n characters.
func (c Constraint) MaxLength(n int) Constraint {
	c.MaxLen = n
	return c
}

// Matches requires a string field to match the given pattern.
func (c Constraint) Matches(re *regexp.Regexp) Constraint {
	c.Pattern = re
	return c
}

// Field validates a single value against a constraint and returns the list
// of violation messages. An empty result means the field passes. A missing
// required field short-circuits the remaining checks.
func Field(name string, value any, c Constraint) []string {
	var errs []string

	v, present := concrete(value)
	if !present {
		if c.Required {
			errs = append(errs, fmt.Sprintf("%s is required", name))
		}
		return errs
	}

	if len(c.Allowed) > 0 {
		if s, ok := v.(string); ok && !contains(c.Allowed, s) {
			errs = append(errs, fmt.Sprintf("%s must be one of: %s", name, strings.Join(c.Allowed, ", ")))
		}
	}

	if s, ok := v.(string); ok {
		if c.MinLen > 0 && len(s) < c.MinLen {
			errs = append(errs, fmt.Sprintf("%s must be at least %d characters", name, c.MinLen))
		}
		if c.MaxLen > 0 && len(s) > c.MaxLen {
			errs = append(errs, fmt.Sprintf("%s must be at most %d characters", name, c.MaxLen))
		}
		if c.Pattern != nil && !c.Pattern.MatchString(s) {
			errs = append(errs, fmt.Sprintf("%s does not match required pattern", name))
		}
	}

	if n, ok := numeric(v); ok {
		if c.Min != nil && n < *c.Min {
			errs = append(errs, fmt.Sprintf("%s must be at least %v", name, *c.Min))
		}
		if c.Max != nil && n > *c.Max {
			errs = append(errs, fmt.Sprintf("%s must be at most %v", name, *c.Max))
		}
	}

	return errs
}

// concrete dereferences pointer values and reports whether the field is
// present. Nil pointers, empty strings and zero timestamps count as absent;
// numeric zero counts as present.
func concrete(value any) (any, bool) {
	if value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	v := rv.Interface()
	switch x := v.(type) {
	case string:
		return x, x != ""
	case time.Time:
		return x, !x.IsZero()
	}
	return v, true
}

func numeric(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
