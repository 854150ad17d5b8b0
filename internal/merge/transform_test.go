package merge

import (
	"testing"

	"caseledger/internal/dbmodel"
	"caseledger/internal/money"
)

func transformFixtures() (*dbmodel.PaymentData, *dbmodel.RefundData) {
	pd := samplePaymentData()
	pd.Fees[0].Code = "FEE0226"
	pd.Fees[1].Code = "FEE0002"
	pd.PaymentStatusHistory = []*dbmodel.PaymentStatusHistory{
		{ID: 1, PaymentID: 1, Status: str("initiated")},
		{ID: 2, PaymentID: 1, Status: str("success")},
		{ID: 3, PaymentID: 999, Status: str("failed")}, // unknown payment
	}
	pd.Apportionments = []*dbmodel.Apportionment{
		{ID: 1, PaymentID: 1, FeeID: 1, ApportionAmount: money.Ptr(150)},
	}

	rd := sampleRefundData()
	rd.RefundStatusHistory = []*dbmodel.RefundStatusHistory{
		{ID: 1, RefundsID: 1, Status: str("Sent for approval")},
	}
	rd.RefundFees = []*dbmodel.RefundFee{
		{ID: 1, RefundsID: 1, FeeID: 1, Code: str("FEE0226"), RefundAmount: money.Ptr(40)},
	}
	return pd, rd
}

func TestTransformToCase(t *testing.T) {
	m := TransformToCase(transformFixtures())

	c, ok := m.Single()
	if !ok {
		t.Fatalf("expected one case, got %d", len(m.Cases))
	}
	if len(c.ServiceRequests) != 2 {
		t.Fatalf("service requests = %d, want 2", len(c.ServiceRequests))
	}

	sr := c.ServiceRequests[0]
	if len(sr.Fees) != 1 || len(sr.Payments) != 1 {
		t.Fatalf("first SR fees/payments = %d/%d", len(sr.Fees), len(sr.Payments))
	}
	if len(sr.Fees[0].Remissions) != 1 {
		t.Fatalf("remissions = %d, want 1", len(sr.Fees[0].Remissions))
	}

	payment := sr.Payments[0]
	if len(payment.StatusHistory) != 2 || payment.StatusHistory[1].Status != "success" {
		t.Fatalf("status history = %+v", payment.StatusHistory)
	}
	if len(payment.FeeAllocations) != 1 || payment.FeeAllocations[0].FeeCode != "FEE0226" {
		t.Fatalf("allocations = %+v", payment.FeeAllocations)
	}

	if len(payment.Refunds) != 1 {
		t.Fatalf("refunds = %d, want 1", len(payment.Refunds))
	}
	refund := payment.Refunds[0]
	if len(refund.StatusHistory) != 1 || refund.StatusHistory[0].Status != "Sent for approval" {
		t.Fatalf("refund status history = %+v", refund.StatusHistory)
	}
	if len(refund.Fees) != 1 || refund.Fees[0].Amount != 40 {
		t.Fatalf("refund fees = %+v", refund.Fees)
	}

	// The refund pointing at an unknown payment reference is dropped.
	if m.Dropped.Refunds != 1 {
		t.Fatalf("Dropped.Refunds = %d, want 1", m.Dropped.Refunds)
	}

	s := c.Summary()
	if s.TotalFees != 255 || s.TotalPayments != 150 || s.TotalRefunds != 40 || s.TotalRemissions != 50 {
		t.Fatalf("summary = %+v", s)
	}
}

func TestTransformToCaseNoLinks(t *testing.T) {
	m := TransformToCase(&dbmodel.PaymentData{}, &dbmodel.RefundData{
		Refunds: []*dbmodel.Refund{{ID: 1, PaymentReference: str("RC-x")}},
	})
	if len(m.Cases) != 0 {
		t.Fatalf("expected no cases, got %d", len(m.Cases))
	}
	if m.Dropped.Refunds != 1 {
		t.Fatalf("Dropped.Refunds = %d, want 1", m.Dropped.Refunds)
	}
}

func TestTransformToCaseOrphanedFee(t *testing.T) {
	pd, rd := transformFixtures()
	pd.Fees[1].PaymentLinkID = 999

	m := TransformToCase(pd, rd)
	c, _ := m.Single()
	if len(c.ServiceRequests[1].Fees) != 0 {
		t.Fatal("orphaned fee should not attach")
	}
	if m.Dropped.Fees != 1 {
		t.Fatalf("Dropped.Fees = %d, want 1", m.Dropped.Fees)
	}
}
