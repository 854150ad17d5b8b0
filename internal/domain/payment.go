package domain

import (
	"time"

	"caseledger/internal/money"
)

// Payment is money received against a service request.
type Payment struct {
	Reference         string                `json:"reference"`
	Amount            float64               `json:"amount"`
	Currency          string                `json:"currency"`
	Status            string                `json:"status,omitempty"`
	Method            string                `json:"method,omitempty"`
	Provider          string                `json:"provider,omitempty"`
	Channel           string                `json:"channel,omitempty"`
	CustomerReference string                `json:"customerReference,omitempty"`
	PBANumber         string                `json:"pbaNumber,omitempty"`
	PayerName         string                `json:"payerName,omitempty"`
	Refunds           []*Refund             `json:"refunds"`
	FeeAllocations    []FeeAllocation       `json:"feeAllocations"`
	StatusHistory     []*PaymentStatusEvent `json:"statusHistory,omitempty"`
	CreatedAt         *time.Time            `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time            `json:"updatedAt,omitempty"`
	BankedAt          *time.Time            `json:"bankedAt,omitempty"`
}

// NewPayment creates a payment in the default currency.
func NewPayment(reference string, amount float64) *Payment {
	return &Payment{Reference: reference, Amount: amount, Currency: "GBP"}
}

// AddRefund appends a refund to the payment.
func (p *Payment) AddRefund(r *Refund) {
	p.Refunds = append(p.Refunds, r)
}

// AddFeeAllocation records how part of this payment's value is attributed
// to a fee.
func (p *Payment) AddFeeAllocation(feeCode string, amount float64) {
	p.FeeAllocations = append(p.FeeAllocations, FeeAllocation{FeeCode: feeCode, Amount: amount})
}

// AddStatusEvent appends a status transition to the payment's history.
func (p *Payment) AddStatusEvent(e *PaymentStatusEvent) {
	p.StatusHistory = append(p.StatusHistory, e)
}

// TotalRefunded sums every refund against the payment.
func (p *Payment) TotalRefunded() float64 {
	var total float64
	for _, r := range p.Refunds {
		total += money.Num(r.Amount)
	}
	return total
}

// NetAmount returns the payment amount less refunds.
func (p *Payment) NetAmount() float64 {
	return money.Num(p.Amount) - p.TotalRefunded()
}

// FeeAllocation is the attribution of part of a payment's value to one fee.
// It has no identity of its own.
type FeeAllocation struct {
	FeeCode string  `json:"feeCode"`
	Amount  float64 `json:"amount"`
}

// Refund is money returned against a previously received payment. The link
// back to the payment is by reference string, not a structural edge.
type Refund struct {
	Reference        string               `json:"reference"`
	Amount           float64              `json:"amount"`
	Reason           string               `json:"reason,omitempty"`
	Status           string               `json:"status,omitempty"`
	InstructionType  string               `json:"instructionType,omitempty"`
	PaymentReference string               `json:"paymentReference,omitempty"`
	CreatedBy        string               `json:"createdBy,omitempty"`
	UpdatedBy        string               `json:"updatedBy,omitempty"`
	StatusHistory    []*RefundStatusEvent `json:"statusHistory,omitempty"`
	Fees             []RefundFee          `json:"fees,omitempty"`
	CreatedAt        *time.Time           `json:"createdAt,omitempty"`
	UpdatedAt        *time.Time           `json:"updatedAt,omitempty"`
}

// NewRefund creates a refund.
func NewRefund(reference string, amount float64, reason string) *Refund {
	return &Refund{Reference: reference, Amount: amount, Reason: reason}
}

// AddStatusEvent appends a status transition to the refund's history.
func (r *Refund) AddStatusEvent(e *RefundStatusEvent) {
	r.StatusHistory = append(r.StatusHistory, e)
}

// AddFee records the portion of the refund attributed to one fee.
func (r *Refund) AddFee(f RefundFee) {
	r.Fees = append(r.Fees, f)
}

// PaymentStatusEvent is one status transition of a payment.
type PaymentStatusEvent struct {
	Status         string     `json:"status"`
	ExternalStatus string     `json:"externalStatus,omitempty"`
	ErrorCode      string     `json:"errorCode,omitempty"`
	Message        string     `json:"message,omitempty"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
}

// RefundStatusEvent is one status transition of a refund.
type RefundStatusEvent struct {
	Status    string     `json:"status"`
	Notes     string     `json:"notes,omitempty"`
	CreatedBy string     `json:"createdBy,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// RefundFee is the portion of a refund attributed to one fee.
type RefundFee struct {
	Code    string  `json:"code"`
	Version string  `json:"version,omitempty"`
	Volume  float64 `json:"volume,omitempty"`
	Amount  float64 `json:"amount"`
}
