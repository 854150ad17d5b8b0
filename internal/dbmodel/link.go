package dbmodel

import (
	"fmt"
	"time"

	"caseledger/internal/money"
	"caseledger/internal/validate"
)

// PaymentFeeLink is a row of the payment_fee_link table: one service request
// grouping the fees and payments raised under a single payment reference.
type PaymentFeeLink struct {
	ID                        int64      `json:"id"`
	DateCreated               time.Time  `json:"date_created"`
	DateUpdated               time.Time  `json:"date_updated"`
	PaymentReference          string     `json:"payment_reference"`
	OrgID                     *string    `json:"org_id"`
	EnterpriseServiceName     *string    `json:"enterprise_service_name"`
	CCDCaseNumber             string     `json:"ccd_case_number"`
	CaseReference             *string    `json:"case_reference"`
	ServiceRequestCallbackURL *string    `json:"service_request_callback_url"`
	// amount_due is stored denormalized and must track
	// sum(fees) - sum(payments) - sum(remissions).
	AmountDue *float64 `json:"amount_due"`
}

var linkConstraints = map[string]validate.Constraint{
	"date_created":            validate.NotNull(),
	"date_updated":            validate.NotNull(),
	"payment_reference":       validate.NotNull().MaxLength(50),
	"org_id":                  validate.Nullable().MaxLength(20),
	"enterprise_service_name": validate.Nullable().MaxLength(255),
	"ccd_case_number":         validate.NotNull().MinLength(16).MaxLength(25),
	"case_reference":          validate.Nullable().MaxLength(25),
	"amount_due":              validate.Nullable().PositiveNumber(),
}

// Validate runs every declared field constraint.
func (l *PaymentFeeLink) Validate() *validate.Result {
	res := validate.NewResult()
	runConstraints(linkConstraints, map[string]any{
		"date_created":            l.DateCreated,
		"date_updated":            l.DateUpdated,
		"payment_reference":       l.PaymentReference,
		"org_id":                  l.OrgID,
		"enterprise_service_name": l.EnterpriseServiceName,
		"ccd_case_number":         l.CCDCaseNumber,
		"case_reference":          l.CaseReference,
		"amount_due":              l.AmountDue,
	}, res)
	return res
}

// ValidateAmountDue recomputes amount_due from the related fees, payments
// and remissions and errors when the stored value disagrees beyond the
// rounding tolerance.
func (l *PaymentFeeLink) ValidateAmountDue(fees []*Fee, payments []*Payment, remissions []*Remission) *validate.Result {
	res := validate.NewResult()

	var totalFees, totalPayments, totalRemissions float64
	for _, f := range fees {
		totalFees += money.Num(f.FeeAmount)
	}
	for _, p := range payments {
		totalPayments += money.Num(p.Amount)
	}
	for _, r := range remissions {
		totalRemissions += money.Num(r.HWFAmount)
	}

	calculated := totalFees - totalPayments - totalRemissions
	current := money.Value(l.AmountDue)

	if !money.Within(calculated, current) {
		res.AddError("amount_due", fmt.Sprintf(
			"amount_due (%v) does not match calculated value (%v). Fees: %v, Payments: %v, Remissions: %v",
			current, calculated, totalFees, totalPayments, totalRemissions))
	}

	return res
}
