package dbmodel

import (
	"fmt"
	"time"

	"caseledger/internal/money"
	"caseledger/internal/validate"
)

// Remission is a row of the remission table: a Help with Fees reduction
// granted against a single fee.
type Remission struct {
	ID                 int64      `json:"id"`
	FeeID              int64      `json:"fee_id"`
	PaymentLinkID      *int64     `json:"payment_link_id"`
	HWFReference       *string    `json:"hwf_reference"`
	HWFAmount          float64    `json:"hwf_amount"`
	BeneficiaryName    *string    `json:"beneficiary_name"`
	CCDCaseNumber      *string    `json:"ccd_case_number"`
	DateCreated        *time.Time `json:"date_created"`
	DateUpdated        *time.Time `json:"date_updated"`
	RemissionReference *string    `json:"remission_reference"`
}

var remissionConstraints = map[string]validate.Constraint{
	"hwf_amount":      validate.NotNull().PositiveNumber(),
	"hwf_reference":   validate.Nullable().MaxLength(50),
	"ccd_case_number": validate.Nullable().MaxLength(25),
	"date_created":    validate.Nullable(),
	"date_updated":    validate.Nullable(),
}

// Validate runs every declared field constraint.
func (r *Remission) Validate() *validate.Result {
	res := validate.NewResult()
	runConstraints(remissionConstraints, map[string]any{
		"hwf_amount":      r.HWFAmount,
		"hwf_reference":   r.HWFReference,
		"ccd_case_number": r.CCDCaseNumber,
		"date_created":    r.DateCreated,
		"date_updated":    r.DateUpdated,
	}, res)
	return res
}

// ValidateAmount errors when the remission exceeds the owning fee's
// calculated amount.
func (r *Remission) ValidateAmount(fee *Fee) *validate.Result {
	res := validate.NewResult()

	if fee != nil && r.HWFAmount != 0 {
		remissionAmount := money.Num(r.HWFAmount)
		feeAmount := money.Num(fee.CalculatedAmount)

		if remissionAmount > feeAmount {
			res.AddError("hwf_amount", fmt.Sprintf(
				"Remission amount (%v) cannot exceed fee amount (%v)",
				remissionAmount, feeAmount))
		}
	}

	return res
}
