package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldOperation     = "operation"
	FieldError         = "error"
	FieldDuration      = "duration_ms"
	FieldCCDCaseNumber = "ccd_case_number"
	FieldBackend       = "backend"
	FieldCaseCount     = "case_count"
	FieldLinkCount     = "payment_fee_link_count"
	FieldFeeCount      = "fee_count"
	FieldPaymentCount  = "payment_count"
	FieldRefundCount   = "refund_count"
	FieldDroppedRows   = "dropped_rows"
	FieldErrorCount    = "error_count"
	FieldWarningCount  = "warning_count"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentSeed    = "seed"
)

// Operations defines standard operation names
const (
	OpFetch     = "fetch"
	OpTransform = "transform"
	OpMerge     = "merge"
	OpValidate  = "validate"
	OpPublish   = "publish"
	OpMigrate   = "migrate"
	OpSeed      = "seed"
	OpStartup   = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithCase adds the case number field
func (f LogFields) WithCase(ccdCaseNumber string) LogFields {
	f[FieldCCDCaseNumber] = ccdCaseNumber
	return f
}

// WithRowCounts adds the per-table row count fields of a fetched case
func (f LogFields) WithRowCounts(links, fees, payments, refunds int) LogFields {
	f[FieldLinkCount] = links
	f[FieldFeeCount] = fees
	f[FieldPaymentCount] = payments
	f[FieldRefundCount] = refunds
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
