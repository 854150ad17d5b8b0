package dbmodel

import (
	"fmt"
	"time"

	"caseledger/internal/money"
	"caseledger/internal/validate"
)

// Refund is a row of the refunds table in the refunds store. It points back
// at a payment by reference string, not by foreign key: the two stores are
// independently writable.
type Refund struct {
	ID                    int64      `json:"id"`
	DateCreated           *time.Time `json:"date_created"`
	DateUpdated           *time.Time `json:"date_updated"`
	Amount                *float64   `json:"amount"`
	Reason                *string    `json:"reason"`
	RefundStatus          *string    `json:"refund_status"`
	Reference             *string    `json:"reference"`
	PaymentReference      *string    `json:"payment_reference"`
	CreatedBy             *string    `json:"created_by"`
	UpdatedBy             *string    `json:"updated_by"`
	CCDCaseNumber         *string    `json:"ccd_case_number"`
	FeeIDs                *string    `json:"fee_ids"`
	NotificationSentFlag  *string    `json:"notification_sent_flag"`
	ContactDetails        *string    `json:"contact_details"`
	ServiceType           *string    `json:"service_type"`
	RefundInstructionType *string    `json:"refund_instruction_type"`
}

var refundConstraints = map[string]validate.Constraint{
	"date_created":      validate.Nullable(),
	"date_updated":      validate.Nullable(),
	"amount":            validate.Nullable().PositiveNumber(),
	"refund_status":     validate.Nullable().Enum(RefundStatuses...),
	"reference":         validate.Nullable().MaxLength(255),
	"payment_reference": validate.Nullable().MaxLength(255),
	"ccd_case_number":   validate.Nullable().MaxLength(255),
}

// Validate runs every declared field constraint.
func (r *Refund) Validate() *validate.Result {
	res := validate.NewResult()
	runConstraints(refundConstraints, map[string]any{
		"date_created":      r.DateCreated,
		"date_updated":      r.DateUpdated,
		"amount":            r.Amount,
		"refund_status":     r.RefundStatus,
		"reference":         r.Reference,
		"payment_reference": r.PaymentReference,
		"ccd_case_number":   r.CCDCaseNumber,
	}, res)
	return res
}

// ValidateAmount errors when the refund exceeds the referenced payment's
// amount. A nil payment or absent refund amount passes.
func (r *Refund) ValidateAmount(payment *Payment) *validate.Result {
	res := validate.NewResult()

	if payment != nil && r.Amount != nil && *r.Amount != 0 {
		refundAmount := money.Value(r.Amount)
		paymentAmount := money.Num(payment.Amount)

		if refundAmount > paymentAmount {
			res.AddError("amount", fmt.Sprintf(
				"Refund amount (%v) cannot exceed payment amount (%v)",
				refundAmount, paymentAmount))
		}
	}

	return res
}
