package dbmodel

import (
	"fmt"
	"time"

	"caseledger/internal/money"
	"caseledger/internal/validate"
)

// Fee is a row of the fee table.
type Fee struct {
	ID               int64     `json:"id"`
	Code             string    `json:"code"`
	Version          string    `json:"version"`
	PaymentLinkID    int64     `json:"payment_link_id"`
	CalculatedAmount float64   `json:"calculated_amount"`
	Volume           float64   `json:"volume"`
	CCDCaseNumber    string    `json:"ccd_case_number"`
	Reference        *string   `json:"reference"`
	NetAmount        float64   `json:"net_amount"`
	FeeAmount        float64   `json:"fee_amount"`
	AmountDue        float64   `json:"amount_due"`
	DateCreated      time.Time `json:"date_created"`
	DateUpdated      time.Time `json:"date_updated"`
}

var feeConstraints = map[string]validate.Constraint{
	"code":              validate.NotNull().MaxLength(20),
	"version":           validate.NotNull(),
	"calculated_amount": validate.NotNull().PositiveNumber(),
	"volume":            validate.NotNull().PositiveNumber(),
	"ccd_case_number":   validate.NotNull().MinLength(16).MaxLength(25),
	"net_amount":        validate.NotNull().PositiveNumber(),
	"fee_amount":        validate.NotNull().PositiveNumber(),
	"amount_due":        validate.NotNull().PositiveNumber(),
	"date_created":      validate.NotNull(),
	"date_updated":      validate.NotNull(),
}

// Validate runs the field constraints and warns when calculated_amount does
// not equal fee_amount * volume within the rounding tolerance.
func (f *Fee) Validate() *validate.Result {
	res := validate.NewResult()
	runConstraints(feeConstraints, map[string]any{
		"code":              f.Code,
		"version":           f.Version,
		"calculated_amount": f.CalculatedAmount,
		"volume":            f.Volume,
		"ccd_case_number":   f.CCDCaseNumber,
		"net_amount":        f.NetAmount,
		"fee_amount":        f.FeeAmount,
		"amount_due":        f.AmountDue,
		"date_created":      f.DateCreated,
		"date_updated":      f.DateUpdated,
	}, res)

	if f.CalculatedAmount != 0 && f.FeeAmount != 0 && f.Volume != 0 {
		expected := money.Num(f.FeeAmount) * money.Num(f.Volume)
		if !money.Within(expected, f.CalculatedAmount) {
			res.AddWarning("calculated_amount", fmt.Sprintf(
				"calculated_amount (%v) should equal fee_amount (%v) * volume (%v) = %v",
				f.CalculatedAmount, f.FeeAmount, f.Volume, expected))
		}
	}

	return res
}
