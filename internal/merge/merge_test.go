package merge

import (
	"math"
	"testing"

	"caseledger/internal/dbmodel"
	"caseledger/internal/money"
)

func str(s string) *string { return &s }

func samplePaymentData() *dbmodel.PaymentData {
	return &dbmodel.PaymentData{
		PaymentFeeLinks: []*dbmodel.PaymentFeeLink{
			{ID: 1, PaymentReference: "RC-a", CCDCaseNumber: "1111"},
			{ID: 2, PaymentReference: "RC-b", CCDCaseNumber: "1111"},
		},
		Fees: []*dbmodel.Fee{
			{ID: 1, PaymentLinkID: 1, FeeAmount: 200, CCDCaseNumber: "1111"},
			{ID: 2, PaymentLinkID: 2, FeeAmount: 55, CCDCaseNumber: "1111"},
		},
		Payments: []*dbmodel.Payment{
			{ID: 1, PaymentLinkID: 1, Reference: "RC-pay-1", Amount: 150, CCDCaseNumber: "1111"},
		},
		Remissions: []*dbmodel.Remission{
			{ID: 1, FeeID: 1, HWFAmount: 50},
		},
	}
}

func sampleRefundData() *dbmodel.RefundData {
	return &dbmodel.RefundData{
		Refunds: []*dbmodel.Refund{
			{ID: 1, Reference: str("RF-1"), PaymentReference: str("RC-pay-1"), Amount: money.Ptr(40), CCDCaseNumber: str("1111")},
			{ID: 2, Reference: str("RF-2"), PaymentReference: str("RC-unknown"), Amount: money.Ptr(10), CCDCaseNumber: str("2222")},
		},
	}
}

func TestMergeAll(t *testing.T) {
	report := MergeAll(samplePaymentData(), sampleRefundData())

	// Case numbers from either source, first seen order, no duplicates.
	if len(report.CCDCaseNumbers) != 2 || report.CCDCaseNumbers[0] != "1111" || report.CCDCaseNumbers[1] != "2222" {
		t.Fatalf("CCDCaseNumbers = %v", report.CCDCaseNumbers)
	}

	s := report.Summary
	if s.PaymentFeeLinkCount != 2 || s.FeeCount != 2 || s.PaymentCount != 1 || s.RefundCount != 2 || s.RemissionCount != 1 {
		t.Fatalf("counts = %+v", s)
	}
	if s.TotalFeeAmount != 255 || s.TotalPaymentAmount != 150 || s.TotalRefundAmount != 50 || s.TotalRemissionAmount != 50 {
		t.Fatalf("totals = %+v", s)
	}
	if s.NetAmount != 100 {
		t.Fatalf("NetAmount = %v, want 100", s.NetAmount)
	}
}

func TestMergeAllEmptySources(t *testing.T) {
	report := MergeAll(&dbmodel.PaymentData{}, &dbmodel.RefundData{})
	if len(report.CCDCaseNumbers) != 0 {
		t.Fatalf("CCDCaseNumbers = %v, want none", report.CCDCaseNumbers)
	}
	if report.Summary != (ReportSummary{}) {
		t.Fatalf("summary should be all zero, got %+v", report.Summary)
	}
}

func TestMergeAllGuardsBadAmounts(t *testing.T) {
	pd := samplePaymentData()
	pd.Payments = append(pd.Payments, &dbmodel.Payment{ID: 2, Amount: math.NaN(), CCDCaseNumber: "1111"})
	rd := sampleRefundData()
	nan := math.NaN()
	rd.Refunds = append(rd.Refunds, &dbmodel.Refund{ID: 3, Amount: &nan})
	rd.Refunds = append(rd.Refunds, &dbmodel.Refund{ID: 4}) // nil amount

	report := MergeAll(pd, rd)
	if math.IsNaN(report.Summary.TotalPaymentAmount) || math.IsNaN(report.Summary.TotalRefundAmount) || math.IsNaN(report.Summary.NetAmount) {
		t.Fatalf("NaN leaked into totals: %+v", report.Summary)
	}
	if report.Summary.TotalRefundAmount != 50 {
		t.Fatalf("TotalRefundAmount = %v, want 50", report.Summary.TotalRefundAmount)
	}
}

func TestMergePaymentsAndRefunds(t *testing.T) {
	payments := []*dbmodel.Payment{
		{ID: 1, Reference: "RC-1", Amount: 100, CCDCaseNumber: "1111"},
		{ID: 2, Reference: "RC-2", Amount: 50, CCDCaseNumber: "1111"},
	}
	refunds := []*dbmodel.Refund{
		{ID: 1, Amount: money.Ptr(30), CCDCaseNumber: str("1111")},
	}

	merged := MergePaymentsAndRefunds(payments, refunds)
	if merged.CCD != "1111" {
		t.Fatalf("CCD = %q", merged.CCD)
	}
	if merged.Summary.PaymentCount != 2 || merged.Summary.RefundCount != 1 {
		t.Fatalf("counts = %+v", merged.Summary)
	}
	if merged.Summary.TotalPayments != 150 || merged.Summary.TotalRefunds != 30 {
		t.Fatalf("totals = %+v", merged.Summary)
	}
}

func TestMergePaymentsAndRefundsFallsBackToRefundCCD(t *testing.T) {
	refunds := []*dbmodel.Refund{{ID: 1, CCDCaseNumber: str("9999")}}
	merged := MergePaymentsAndRefunds(nil, refunds)
	if merged.CCD != "9999" {
		t.Fatalf("CCD = %q, want 9999", merged.CCD)
	}

	empty := MergePaymentsAndRefunds(nil, nil)
	if empty.CCD != "" || empty.Summary.TotalPayments != 0 {
		t.Fatalf("empty merge = %+v", empty)
	}
}
