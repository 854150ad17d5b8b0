package dbmodel

import (
	"sort"

	"caseledger/internal/validate"
)

// runConstraints validates every declared field of a record. Fields are
// checked in name order so repeated validation of the same record yields
// identical results.
func runConstraints(constraints map[string]validate.Constraint, values map[string]any, res *validate.Result) {
	names := make([]string, 0, len(constraints))
	for name := range constraints {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, msg := range validate.Field(name, values[name], constraints[name]) {
			res.AddError(name, msg)
		}
	}
}
