package dbmodel

import (
	"fmt"
	"time"

	"caseledger/internal/money"
	"caseledger/internal/validate"
)

// Apportionment is a row of the fee_pay_apportion table: the attribution of
// part of a payment's value to a specific fee.
type Apportionment struct {
	ID                int64      `json:"id"`
	PaymentID         int64      `json:"payment_id"`
	FeeID             int64      `json:"fee_id"`
	Amount            *float64   `json:"amount"`
	PaymentLinkID     *int64     `json:"payment_link_id"`
	FeeAmount         *float64   `json:"fee_amount"`
	PaymentAmount     *float64   `json:"payment_amount"`
	CCDCaseNumber     *string    `json:"ccd_case_number"`
	DateCreated       *time.Time `json:"date_created"`
	DateUpdated       *time.Time `json:"date_updated"`
	ApportionType     *string    `json:"apportion_type"`
	CallSurplusAmount *float64   `json:"call_surplus_amount"`
	ApportionAmount   *float64   `json:"apportion_amount"`
}

var apportionmentConstraints = map[string]validate.Constraint{
	"amount":           validate.Nullable().PositiveNumber(),
	"ccd_case_number":  validate.Nullable().MaxLength(25),
	"date_created":     validate.Nullable(),
	"date_updated":     validate.Nullable(),
	"apportion_amount": validate.Nullable().PositiveNumber(),
}

// Validate runs every declared field constraint.
func (a *Apportionment) Validate() *validate.Result {
	res := validate.NewResult()
	runConstraints(apportionmentConstraints, map[string]any{
		"amount":           a.Amount,
		"ccd_case_number":  a.CCDCaseNumber,
		"date_created":     a.DateCreated,
		"date_updated":     a.DateUpdated,
		"apportion_amount": a.ApportionAmount,
	}, res)
	return res
}

// ValidateAmount warns when the apportioned amount exceeds the payment's
// amount or the fee's calculated amount. Apportionment overshoot is a soft
// inconsistency, never an error.
func (a *Apportionment) ValidateAmount(payment *Payment, fee *Fee) *validate.Result {
	res := validate.NewResult()

	if payment != nil && a.ApportionAmount != nil && *a.ApportionAmount != 0 {
		apportionAmount := money.Value(a.ApportionAmount)
		paymentAmount := money.Num(payment.Amount)

		if apportionAmount > paymentAmount {
			res.AddWarning("apportion_amount", fmt.Sprintf(
				"Apportionment amount (%v) exceeds payment amount (%v)",
				apportionAmount, paymentAmount))
		}
	}

	if fee != nil && a.ApportionAmount != nil && *a.ApportionAmount != 0 {
		apportionAmount := money.Value(a.ApportionAmount)
		feeAmount := money.Num(fee.CalculatedAmount)

		if apportionAmount > feeAmount {
			res.AddWarning("apportion_amount", fmt.Sprintf(
				"Apportionment amount (%v) exceeds fee amount (%v)",
				apportionAmount, feeAmount))
		}
	}

	return res
}
