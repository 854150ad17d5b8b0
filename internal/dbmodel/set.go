package dbmodel

// EntitySet is the six-collection bag exchanged with the mappers: the
// denormalized domain graph flattens into exactly these row sets, and the
// reverse mapping consumes the same shape.
type EntitySet struct {
	PaymentFeeLinks []*PaymentFeeLink `json:"payment_fee_links"`
	Fees            []*Fee            `json:"fees"`
	Payments        []*Payment        `json:"payments"`
	Refunds         []*Refund         `json:"refunds"`
	Remissions      []*Remission      `json:"remissions"`
	Apportionments  []*Apportionment  `json:"apportionments"`
}

// PaymentData is everything the payments store returns for one case number.
type PaymentData struct {
	PaymentFeeLinks      []*PaymentFeeLink       `json:"payment_fee_links"`
	Fees                 []*Fee                  `json:"fees"`
	Payments             []*Payment              `json:"payments"`
	Apportionments       []*Apportionment        `json:"apportionments"`
	Remissions           []*Remission            `json:"remissions"`
	PaymentStatusHistory []*PaymentStatusHistory `json:"payment_status_history"`
	PaymentAuditHistory  []*PaymentAuditHistory  `json:"payment_audit_history"`
}

// RefundData is everything the refunds store returns for one case number.
type RefundData struct {
	Refunds             []*Refund              `json:"refunds"`
	RefundStatusHistory []*RefundStatusHistory `json:"refund_status_history"`
	RefundFees          []*RefundFee           `json:"refund_fees"`
}

// EntitySet extracts the mappable row sets from the payment-store bag,
// merging in the refund rows fetched from the refunds store.
func (d *PaymentData) EntitySet(refunds []*Refund) *EntitySet {
	return &EntitySet{
		PaymentFeeLinks: d.PaymentFeeLinks,
		Fees:            d.Fees,
		Payments:        d.Payments,
		Refunds:         refunds,
		Remissions:      d.Remissions,
		Apportionments:  d.Apportionments,
	}
}
