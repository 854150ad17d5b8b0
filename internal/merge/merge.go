// Package merge combines the raw query results of the two independent
// stores into cross-source reports and into the domain graph. It never
// builds on live database handles: both inputs are already-materialized row
// bags.
package merge

import (
	"caseledger/internal/dbmodel"
	"caseledger/internal/money"
)

// ReportSummary carries the source-wide totals of one merged report.
type ReportSummary struct {
	PaymentFeeLinkCount  int     `json:"payment_fee_link_count"`
	FeeCount             int     `json:"fee_count"`
	PaymentCount         int     `json:"payment_count"`
	RefundCount          int     `json:"refund_count"`
	RemissionCount       int     `json:"remission_count"`
	TotalPaymentAmount   float64 `json:"total_payment_amount"`
	TotalRefundAmount    float64 `json:"total_refund_amount"`
	TotalFeeAmount       float64 `json:"total_fee_amount"`
	TotalRemissionAmount float64 `json:"total_remission_amount"`
	NetAmount            float64 `json:"net_amount"`
}

// Report is the lightweight cross-source view: every case number seen in
// either store plus the raw rows and their totals, without building the
// domain graph.
type Report struct {
	CCDCaseNumbers []string             `json:"ccd_case_numbers"`
	Payments       *dbmodel.PaymentData `json:"payments"`
	Refunds        *dbmodel.RefundData  `json:"refunds"`
	Summary        ReportSummary        `json:"summary"`
}

// MergeAll merges the two per-source bags into one report. Absent amounts
// contribute zero to every total.
func MergeAll(paymentData *dbmodel.PaymentData, refundData *dbmodel.RefundData) *Report {
	seen := make(map[string]bool)
	var ccds []string
	note := func(ccd string) {
		if ccd != "" && !seen[ccd] {
			seen[ccd] = true
			ccds = append(ccds, ccd)
		}
	}

	for _, link := range paymentData.PaymentFeeLinks {
		note(link.CCDCaseNumber)
	}
	for _, refund := range refundData.Refunds {
		if refund.CCDCaseNumber != nil {
			note(*refund.CCDCaseNumber)
		}
	}

	var totalPayments, totalRefunds, totalFees, totalRemissions float64
	for _, p := range paymentData.Payments {
		totalPayments += money.Num(p.Amount)
	}
	for _, r := range refundData.Refunds {
		totalRefunds += money.Value(r.Amount)
	}
	for _, f := range paymentData.Fees {
		totalFees += money.Num(f.FeeAmount)
	}
	for _, r := range paymentData.Remissions {
		totalRemissions += money.Num(r.HWFAmount)
	}

	return &Report{
		CCDCaseNumbers: ccds,
		Payments:       paymentData,
		Refunds:        refundData,
		Summary: ReportSummary{
			PaymentFeeLinkCount:  len(paymentData.PaymentFeeLinks),
			FeeCount:             len(paymentData.Fees),
			PaymentCount:         len(paymentData.Payments),
			RefundCount:          len(refundData.Refunds),
			RemissionCount:       len(paymentData.Remissions),
			TotalPaymentAmount:   totalPayments,
			TotalRefundAmount:    totalRefunds,
			TotalFeeAmount:       totalFees,
			TotalRemissionAmount: totalRemissions,
			NetAmount:            totalPayments - totalRefunds,
		},
	}
}

// FlatSummary carries the totals of a flat payments-and-refunds merge.
type FlatSummary struct {
	PaymentCount  int     `json:"paymentCount"`
	RefundCount   int     `json:"refundCount"`
	TotalPayments float64 `json:"totalPayments"`
	TotalRefunds  float64 `json:"totalRefunds"`
}

// FlatMerge is the legacy merge shape: two already case-scoped row lists
// keyed by the first row's case number.
type FlatMerge struct {
	CCD      string             `json:"ccd"`
	Payments []*dbmodel.Payment `json:"payments"`
	Refunds  []*dbmodel.Refund  `json:"refunds"`
	Summary  FlatSummary        `json:"summary"`
}

// MergePaymentsAndRefunds merges two flat, case-scoped row lists. Kept for
// callers of the original single-case report.
func MergePaymentsAndRefunds(payments []*dbmodel.Payment, refunds []*dbmodel.Refund) *FlatMerge {
	var ccd string
	if len(payments) > 0 {
		ccd = payments[0].CCDCaseNumber
	} else if len(refunds) > 0 && refunds[0].CCDCaseNumber != nil {
		ccd = *refunds[0].CCDCaseNumber
	}

	var totalPayments, totalRefunds float64
	for _, p := range payments {
		totalPayments += money.Num(p.Amount)
	}
	for _, r := range refunds {
		totalRefunds += money.Value(r.Amount)
	}

	return &FlatMerge{
		CCD:      ccd,
		Payments: payments,
		Refunds:  refunds,
		Summary: FlatSummary{
			PaymentCount:  len(payments),
			RefundCount:   len(refunds),
			TotalPayments: totalPayments,
			TotalRefunds:  totalRefunds,
		},
	}
}
