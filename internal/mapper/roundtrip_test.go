package mapper

import (
	"testing"

	"caseledger/internal/domain"
)

// Round trip: flattening a case to rows and reconstituting it must
// reproduce every monetary figure and structural count, whatever the mix of
// fees, payments, refunds and remissions.
func TestRoundTripPreservesSummary(t *testing.T) {
	cases := []struct {
		name  string
		build func() *domain.Case
	}{
		{"full case", func() *domain.Case { return fixtureCase() }},
		{"empty case", func() *domain.Case {
			c := domain.NewCase("42")
			c.AddServiceRequest(domain.NewServiceRequest("RC-empty", "42"))
			return c
		}},
		{"remissions without payments", func() *domain.Case {
			c := domain.NewCase("43")
			sr := domain.NewServiceRequest("RC-r", "43")
			fee := domain.NewFee("FEE0100", "2", 500)
			fee.AddRemission(domain.NewRemission("HWF-1", 200))
			fee.AddRemission(domain.NewRemission("HWF-2", 100))
			sr.AddFee(fee)
			c.AddServiceRequest(sr)
			return c
		}},
		{"multiple refunds on one payment", func() *domain.Case {
			c := domain.NewCase("44")
			sr := domain.NewServiceRequest("RC-m", "44")
			p := domain.NewPayment("RC-pay-m", 400)
			p.AddRefund(domain.NewRefund("RF-1", 100, "duplicate payment"))
			p.AddRefund(domain.NewRefund("RF-2", 50, "overpayment"))
			sr.AddPayment(p)
			c.AddServiceRequest(sr)
			return c
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			original := tc.build()
			set := ToDatabase(original)
			m := ToDomain(set)

			back, ok := m.Single()
			if !ok {
				t.Fatalf("round trip produced %d cases, want 1", len(m.Cases))
			}
			if m.Dropped.Total() != 0 {
				t.Fatalf("round trip dropped rows: %+v", m.Dropped)
			}
			if back.CCDCaseNumber != original.CCDCaseNumber {
				t.Fatalf("case number %q != %q", back.CCDCaseNumber, original.CCDCaseNumber)
			}

			want := original.Summary()
			got := back.Summary()
			if got != want {
				t.Fatalf("summary mismatch:\n got %+v\nwant %+v", got, want)
			}
		})
	}
}
