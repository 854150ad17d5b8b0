// Package domain holds the case-centric object graph: Case owns
// ServiceRequests, which own Fees (with Remissions) and Payments (with
// Refunds and FeeAllocations). These are pure data holders with summary
// arithmetic; validation lives with the database records, not here.
package domain

import (
	"time"

	"caseledger/internal/money"
)

// Case is a legal proceeding identified by a CCD case number.
type Case struct {
	CCDCaseNumber   string            `json:"ccdCaseNumber"`
	ServiceRequests []*ServiceRequest `json:"serviceRequests"`
}

// NewCase creates a case. The case number is fixed for the life of the
// object.
func NewCase(ccdCaseNumber string) *Case {
	return &Case{CCDCaseNumber: ccdCaseNumber}
}

// AddServiceRequest appends a service request to the case.
func (c *Case) AddServiceRequest(sr *ServiceRequest) {
	c.ServiceRequests = append(c.ServiceRequests, sr)
}

// Summary is the computed monetary view of one service request.
type Summary struct {
	TotalFees       float64 `json:"totalFees"`
	TotalPayments   float64 `json:"totalPayments"`
	TotalRefunds    float64 `json:"totalRefunds"`
	TotalRemissions float64 `json:"totalRemissions"`
	FeeCount        int     `json:"feeCount"`
	PaymentCount    int     `json:"paymentCount"`
	RefundCount     int     `json:"refundCount"`
	NetAmount       float64 `json:"netAmount"`
	AmountDue       float64 `json:"amountDue"`
}

// CaseSummary is the case-wide view: the pointwise sum of every owned
// service request's summary, with the derived amounts recomputed at the top.
type CaseSummary struct {
	Summary
	ServiceRequestCount int `json:"serviceRequestCount"`
	RemissionCount      int `json:"remissionCount"`
}

// Summary aggregates every service request of the case.
func (c *Case) Summary() CaseSummary {
	var cs CaseSummary
	for _, sr := range c.ServiceRequests {
		s := sr.Summary()
		cs.TotalFees += s.TotalFees
		cs.TotalPayments += s.TotalPayments
		cs.TotalRefunds += s.TotalRefunds
		cs.TotalRemissions += s.TotalRemissions
		cs.FeeCount += s.FeeCount
		cs.PaymentCount += s.PaymentCount
		cs.RefundCount += s.RefundCount
		cs.ServiceRequestCount++
		for _, fee := range sr.Fees {
			cs.RemissionCount += len(fee.Remissions)
		}
	}
	cs.NetAmount = cs.TotalPayments + cs.TotalRemissions - cs.TotalRefunds
	cs.AmountDue = cs.TotalFees - cs.TotalPayments - cs.TotalRemissions
	return cs
}

// ServiceRequest is a request to settle one or more fees, tied to a payment
// reference within its owning case.
type ServiceRequest struct {
	PaymentReference string     `json:"paymentReference"`
	CCDCaseNumber    string     `json:"ccdCaseNumber"`
	CaseReference    string     `json:"caseReference,omitempty"`
	OrgID            string     `json:"orgId,omitempty"`
	ServiceName      string     `json:"serviceName,omitempty"`
	CallbackURL      string     `json:"callbackUrl,omitempty"`
	Fees             []*Fee     `json:"fees"`
	Payments         []*Payment `json:"payments"`
	CreatedAt        *time.Time `json:"createdAt,omitempty"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}

// NewServiceRequest creates a service request for the given payment
// reference and owning case number.
func NewServiceRequest(paymentReference, ccdCaseNumber string) *ServiceRequest {
	return &ServiceRequest{
		PaymentReference: paymentReference,
		CCDCaseNumber:    ccdCaseNumber,
	}
}

// AddFee appends a fee to the service request.
func (sr *ServiceRequest) AddFee(f *Fee) {
	sr.Fees = append(sr.Fees, f)
}

// AddPayment appends a payment to the service request.
func (sr *ServiceRequest) AddPayment(p *Payment) {
	sr.Payments = append(sr.Payments, p)
}

// AllRefunds returns every refund across the service request's payments.
func (sr *ServiceRequest) AllRefunds() []*Refund {
	var refunds []*Refund
	for _, p := range sr.Payments {
		refunds = append(refunds, p.Refunds...)
	}
	return refunds
}

// Summary computes the service request's monetary view. Absent amounts
// contribute zero, never NaN.
func (sr *ServiceRequest) Summary() Summary {
	var s Summary

	for _, fee := range sr.Fees {
		s.TotalFees += fee.TotalAmount()
		for _, r := range fee.Remissions {
			s.TotalRemissions += money.Num(r.Amount)
		}
	}
	for _, p := range sr.Payments {
		s.TotalPayments += money.Num(p.Amount)
	}
	refunds := sr.AllRefunds()
	for _, r := range refunds {
		s.TotalRefunds += money.Num(r.Amount)
	}

	s.FeeCount = len(sr.Fees)
	s.PaymentCount = len(sr.Payments)
	s.RefundCount = len(refunds)
	s.NetAmount = s.TotalPayments + s.TotalRemissions - s.TotalRefunds
	s.AmountDue = s.TotalFees - s.TotalPayments - s.TotalRemissions
	return s
}
