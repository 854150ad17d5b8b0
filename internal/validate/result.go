package validate

// Issue is a single validation finding tied to a field.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result accumulates validation issues in two buckets. Errors block
// validity; warnings are advisory and never affect IsValid.
type Result struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// NewResult returns an empty, valid result.
func NewResult() *Result {
	return &Result{}
}

// AddError records a hard violation against a field.
func (r *Result) AddError(field, message string) {
	r.Errors = append(r.Errors, Issue{Field: field, Message: message})
}

// AddWarning records an advisory finding against a field.
func (r *Result) AddWarning(field, message string) {
	r.Warnings = append(r.Warnings, Issue{Field: field, Message: message})
}

// IsValid reports whether no errors were recorded.
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}

// HasWarnings reports whether any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Merge appends all issues from other into r.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}
