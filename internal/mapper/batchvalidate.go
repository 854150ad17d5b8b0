package mapper

import (
	"caseledger/internal/dbmodel"
	"caseledger/internal/validate"
)

// RecordValidation ties one record's validation result to its position and
// synthetic id within the row set.
type RecordValidation struct {
	Index  int              `json:"index"`
	ID     int64            `json:"id"`
	Result *validate.Result `json:"result"`
}

// EntitySetValidation is the batch validation outcome for a mapped row set.
// Valid is the AND of every record's validity; warnings never affect it.
type EntitySetValidation struct {
	Valid           bool               `json:"isValid"`
	PaymentFeeLinks []RecordValidation `json:"payment_fee_links"`
	Fees            []RecordValidation `json:"fees"`
	Payments        []RecordValidation `json:"payments"`
	Refunds         []RecordValidation `json:"refunds"`
	Remissions      []RecordValidation `json:"remissions"`
	Apportionments  []RecordValidation `json:"apportionments"`
}

// ValidateEntitySet runs every produced record's Validate and aggregates the
// results per entity type.
func ValidateEntitySet(set *dbmodel.EntitySet) *EntitySetValidation {
	v := &EntitySetValidation{Valid: true}

	for i, link := range set.PaymentFeeLinks {
		v.add(&v.PaymentFeeLinks, i, link.ID, link.Validate())
	}
	for i, fee := range set.Fees {
		v.add(&v.Fees, i, fee.ID, fee.Validate())
	}
	for i, payment := range set.Payments {
		v.add(&v.Payments, i, payment.ID, payment.Validate())
	}
	for i, refund := range set.Refunds {
		v.add(&v.Refunds, i, refund.ID, refund.Validate())
	}
	for i, remission := range set.Remissions {
		v.add(&v.Remissions, i, remission.ID, remission.Validate())
	}
	for i, ap := range set.Apportionments {
		v.add(&v.Apportionments, i, ap.ID, ap.Validate())
	}

	return v
}

// Flatten merges every record's issues into a single result, for callers
// that only need set-wide error and warning counts.
func (v *EntitySetValidation) Flatten() *validate.Result {
	res := validate.NewResult()
	for _, bucket := range [][]RecordValidation{
		v.PaymentFeeLinks, v.Fees, v.Payments, v.Refunds, v.Remissions, v.Apportionments,
	} {
		for _, rv := range bucket {
			res.Merge(rv.Result)
		}
	}
	return res
}

func (v *EntitySetValidation) add(bucket *[]RecordValidation, index int, id int64, result *validate.Result) {
	if !result.IsValid() {
		v.Valid = false
	}
	*bucket = append(*bucket, RecordValidation{Index: index, ID: id, Result: result})
}
