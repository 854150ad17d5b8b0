package domain

import (
	"time"

	"caseledger/internal/money"
)

// Fee is a charge identified by a (code, version) pair within its service
// request.
type Fee struct {
	Code       string       `json:"code"`
	Version    string       `json:"version"`
	Amount     float64      `json:"amount"`
	Volume     float64      `json:"volume"`
	Reference  string       `json:"reference,omitempty"`
	Remissions []*Remission `json:"remissions"`
	CreatedAt  *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time   `json:"updatedAt,omitempty"`
}

// NewFee creates a fee with the default volume of 1.
func NewFee(code, version string, amount float64) *Fee {
	return &Fee{Code: code, Version: version, Amount: amount, Volume: 1}
}

// AddRemission appends a remission to the fee.
func (f *Fee) AddRemission(r *Remission) {
	f.Remissions = append(f.Remissions, r)
}

// TotalAmount returns amount * volume.
func (f *Fee) TotalAmount() float64 {
	return money.Num(f.Amount) * money.Num(f.Volume)
}

// AmountAfterRemissions returns the total amount less every remission.
func (f *Fee) AmountAfterRemissions() float64 {
	total := f.TotalAmount()
	for _, r := range f.Remissions {
		total -= money.Num(r.Amount)
	}
	return total
}

// Remission is a Help with Fees reduction granted against a fee.
type Remission struct {
	HWFReference       string     `json:"hwfReference"`
	Amount             float64    `json:"amount"`
	BeneficiaryName    string     `json:"beneficiaryName,omitempty"`
	RemissionReference string     `json:"remissionReference,omitempty"`
	CreatedAt          *time.Time `json:"createdAt,omitempty"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty"`
}

// NewRemission creates a remission for the given assistance reference.
func NewRemission(hwfReference string, amount float64) *Remission {
	return &Remission{HWFReference: hwfReference, Amount: amount}
}
