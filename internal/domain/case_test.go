package domain

import (
	"math"
	"testing"
)

// buildServiceRequest assembles the worked scenario used throughout: one fee
// of 100 x 2 with a 50 remission, one payment of 100.
func buildServiceRequest() *ServiceRequest {
	sr := NewServiceRequest("RC-1111-2222-3333-4444", "1111222233334444")

	fee := NewFee("FEE0226", "1", 100)
	fee.Volume = 2
	fee.AddRemission(NewRemission("HWF-A1B-23C", 50))
	sr.AddFee(fee)

	sr.AddPayment(NewPayment("RC-pay-0001", 100))
	return sr
}

func TestServiceRequestSummary(t *testing.T) {
	s := buildServiceRequest().Summary()

	if s.TotalFees != 200 {
		t.Fatalf("TotalFees = %v, want 200", s.TotalFees)
	}
	if s.TotalRemissions != 50 {
		t.Fatalf("TotalRemissions = %v, want 50", s.TotalRemissions)
	}
	if s.TotalPayments != 100 {
		t.Fatalf("TotalPayments = %v, want 100", s.TotalPayments)
	}
	if s.AmountDue != 50 {
		t.Fatalf("AmountDue = %v, want 50", s.AmountDue)
	}
	if s.NetAmount != 150 {
		t.Fatalf("NetAmount = %v, want 150", s.NetAmount)
	}
	if s.FeeCount != 1 || s.PaymentCount != 1 || s.RefundCount != 0 {
		t.Fatalf("counts = %d/%d/%d, want 1/1/0", s.FeeCount, s.PaymentCount, s.RefundCount)
	}
}

func TestSummaryInvariants(t *testing.T) {
	cases := []struct {
		name string
		sr   func() *ServiceRequest
	}{
		{"empty", func() *ServiceRequest {
			return NewServiceRequest("RC-1", "1")
		}},
		{"fees only", func() *ServiceRequest {
			sr := NewServiceRequest("RC-1", "1")
			sr.AddFee(NewFee("X1", "1", 75))
			return sr
		}},
		{"payments and refunds", func() *ServiceRequest {
			sr := NewServiceRequest("RC-1", "1")
			p := NewPayment("RC-p", 300)
			p.AddRefund(NewRefund("RF-1", 120, "duplicate payment"))
			sr.AddPayment(p)
			return sr
		}},
		{"everything", func() *ServiceRequest {
			return buildServiceRequest()
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.sr().Summary()
			if got := s.TotalFees - s.TotalPayments - s.TotalRemissions; got != s.AmountDue {
				t.Fatalf("amountDue invariant broken: %v != %v", got, s.AmountDue)
			}
			if got := s.TotalPayments + s.TotalRemissions - s.TotalRefunds; got != s.NetAmount {
				t.Fatalf("netAmount invariant broken: %v != %v", got, s.NetAmount)
			}
		})
	}
}

func TestCaseSummaryAggregates(t *testing.T) {
	c := NewCase("1111222233334444")
	c.AddServiceRequest(buildServiceRequest())

	sr2 := NewServiceRequest("RC-5555-6666-7777-8888", "1111222233334444")
	sr2.AddFee(NewFee("FEE0002", "3", 25))
	p := NewPayment("RC-pay-0002", 25)
	p.AddRefund(NewRefund("RF-2024-0001", 10, "overpayment"))
	sr2.AddPayment(p)
	c.AddServiceRequest(sr2)

	s := c.Summary()

	if s.ServiceRequestCount != 2 {
		t.Fatalf("ServiceRequestCount = %d, want 2", s.ServiceRequestCount)
	}
	if s.TotalFees != 225 || s.TotalPayments != 125 || s.TotalRefunds != 10 || s.TotalRemissions != 50 {
		t.Fatalf("totals = %v/%v/%v/%v", s.TotalFees, s.TotalPayments, s.TotalRefunds, s.TotalRemissions)
	}
	if s.FeeCount != 2 || s.PaymentCount != 2 || s.RefundCount != 1 || s.RemissionCount != 1 {
		t.Fatalf("counts = %d/%d/%d/%d", s.FeeCount, s.PaymentCount, s.RefundCount, s.RemissionCount)
	}
	// Derived amounts are recomputed at the case level, not summed.
	if s.AmountDue != 225-125-50 {
		t.Fatalf("AmountDue = %v, want %v", s.AmountDue, 225-125-50)
	}
	if s.NetAmount != 125+50-10 {
		t.Fatalf("NetAmount = %v, want %v", s.NetAmount, 125+50-10)
	}
}

func TestServiceRequestAllRefunds(t *testing.T) {
	sr := NewServiceRequest("RC-1", "1")
	p1 := NewPayment("RC-p1", 100)
	p1.AddRefund(NewRefund("RF-1", 30, ""))
	p2 := NewPayment("RC-p2", 200)
	p2.AddRefund(NewRefund("RF-2", 20, ""))
	p2.AddRefund(NewRefund("RF-3", 10, ""))
	sr.AddPayment(p1)
	sr.AddPayment(p2)

	refunds := sr.AllRefunds()
	if len(refunds) != 3 {
		t.Fatalf("AllRefunds returned %d refunds, want 3", len(refunds))
	}

	s := sr.Summary()
	if s.TotalRefunds != 60 || s.RefundCount != 3 {
		t.Fatalf("refund totals = %v/%d, want 60/3", s.TotalRefunds, s.RefundCount)
	}
}

func TestFeeArithmetic(t *testing.T) {
	fee := NewFee("FEE0226", "1", 100)
	fee.Volume = 2
	if got := fee.TotalAmount(); got != 200 {
		t.Fatalf("TotalAmount = %v, want 200", got)
	}
	fee.AddRemission(NewRemission("HWF-1", 50))
	if got := fee.AmountAfterRemissions(); got != 150 {
		t.Fatalf("AmountAfterRemissions = %v, want 150", got)
	}
}

func TestPaymentArithmetic(t *testing.T) {
	p := NewPayment("RC-p", 100)
	if p.Currency != "GBP" {
		t.Fatalf("Currency = %q, want GBP", p.Currency)
	}
	p.AddRefund(NewRefund("RF-1", 30, ""))
	p.AddRefund(NewRefund("RF-2", 20, ""))
	if got := p.TotalRefunded(); got != 50 {
		t.Fatalf("TotalRefunded = %v, want 50", got)
	}
	if got := p.NetAmount(); got != 50 {
		t.Fatalf("NetAmount = %v, want 50", got)
	}
}

func TestSummaryGuardsNaN(t *testing.T) {
	sr := NewServiceRequest("RC-1", "1")
	sr.AddFee(NewFee("X", "1", math.NaN()))
	p := NewPayment("RC-p", math.Inf(1))
	p.AddRefund(NewRefund("RF", math.NaN(), ""))
	sr.AddPayment(p)

	s := sr.Summary()
	for name, v := range map[string]float64{
		"TotalFees":     s.TotalFees,
		"TotalPayments": s.TotalPayments,
		"TotalRefunds":  s.TotalRefunds,
		"NetAmount":     s.NetAmount,
		"AmountDue":     s.AmountDue,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("%s propagated a non-finite value: %v", name, v)
		}
	}
}
