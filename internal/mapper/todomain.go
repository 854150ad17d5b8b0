// Package mapper converts between the flat database row sets and the
// denormalized domain graph, in both directions, and batch-validates the
// rows produced for persistence.
package mapper

import (
	"caseledger/internal/dbmodel"
	"caseledger/internal/domain"
	"caseledger/internal/money"
)

// DropStats counts rows silently skipped because their structural parent
// could not be resolved. Dropping stays silent by design (the two stores are
// independently writable and may be transiently inconsistent); the counts
// exist so callers can surface the loss if they care.
type DropStats struct {
	Fees           int `json:"fees"`
	Payments       int `json:"payments"`
	Refunds        int `json:"refunds"`
	Remissions     int `json:"remissions"`
	Apportionments int `json:"apportionments"`
}

// Total returns the number of rows dropped across all entity types.
func (d DropStats) Total() int {
	return d.Fees + d.Payments + d.Refunds + d.Remissions + d.Apportionments
}

// Mapped is the outcome of a database-to-domain pass: one case per distinct
// case number, in first-seen order.
type Mapped struct {
	Cases   []*domain.Case `json:"cases"`
	Dropped DropStats      `json:"-"`
}

// Single returns the sole case when exactly one case number appeared.
func (m Mapped) Single() (*domain.Case, bool) {
	if len(m.Cases) == 1 {
		return m.Cases[0], true
	}
	return nil, false
}

// ToDomain reconstitutes the domain graph from the six row sets. Rows whose
// parents cannot be resolved are dropped, not reported as errors.
func ToDomain(set *dbmodel.EntitySet) Mapped {
	var m Mapped

	// First pass: one case per distinct case number, one service request
	// per link. Links are the spine; everything else hangs off them.
	caseByCCD := make(map[string]*domain.Case)
	linkByID := make(map[int64]*dbmodel.PaymentFeeLink)
	srByLinkID := make(map[int64]*domain.ServiceRequest)

	for _, link := range set.PaymentFeeLinks {
		ccd := link.CCDCaseNumber
		c, ok := caseByCCD[ccd]
		if !ok {
			c = domain.NewCase(ccd)
			caseByCCD[ccd] = c
			m.Cases = append(m.Cases, c)
		}

		sr := domain.NewServiceRequest(link.PaymentReference, ccd)
		sr.CaseReference = strVal(link.CaseReference)
		sr.OrgID = strVal(link.OrgID)
		sr.ServiceName = strVal(link.EnterpriseServiceName)
		sr.CallbackURL = strVal(link.ServiceRequestCallbackURL)
		sr.CreatedAt = timePtr(link.DateCreated)
		sr.UpdatedAt = timePtr(link.DateUpdated)

		c.AddServiceRequest(sr)
		linkByID[link.ID] = link
		srByLinkID[link.ID] = sr
	}

	// Fees resolve to their service request through the link id; a fee whose
	// link or case is missing is an orphan.
	feeRowByID := make(map[int64]*dbmodel.Fee)
	domainFeeByRowID := make(map[int64]*domain.Fee)

	for _, row := range set.Fees {
		sr := resolveServiceRequest(caseByCCD, linkByID, srByLinkID, row.CCDCaseNumber, row.PaymentLinkID)
		if sr == nil {
			m.Dropped.Fees++
			continue
		}

		fee := domain.NewFee(row.Code, row.Version, row.FeeAmount)
		fee.Volume = volumeOr1(row.Volume)
		fee.Reference = strVal(row.Reference)
		fee.CreatedAt = timePtr(row.DateCreated)
		fee.UpdatedAt = timePtr(row.DateUpdated)

		sr.AddFee(fee)
		feeRowByID[row.ID] = row
		domainFeeByRowID[row.ID] = fee
	}

	// Remissions attach to fees by database id.
	for _, row := range set.Remissions {
		fee, ok := domainFeeByRowID[row.FeeID]
		if !ok {
			m.Dropped.Remissions++
			continue
		}
		rem := domain.NewRemission(strVal(row.HWFReference), row.HWFAmount)
		rem.BeneficiaryName = strVal(row.BeneficiaryName)
		rem.RemissionReference = strVal(row.RemissionReference)
		rem.CreatedAt = row.DateCreated
		rem.UpdatedAt = row.DateUpdated
		fee.AddRemission(rem)
	}

	// Payments resolve like fees; apportionments become fee allocations by
	// looking up the fee row for its code.
	paymentByReference := make(map[string]*domain.Payment)

	for _, row := range set.Payments {
		sr := resolveServiceRequest(caseByCCD, linkByID, srByLinkID, row.CCDCaseNumber, row.PaymentLinkID)
		if sr == nil {
			m.Dropped.Payments++
			continue
		}

		payment := domain.NewPayment(row.Reference, row.Amount)
		if row.Currency != "" {
			payment.Currency = row.Currency
		}
		payment.Status = strVal(row.PaymentStatus)
		payment.Method = strVal(row.PaymentMethod)
		payment.Provider = strVal(row.PaymentProvider)
		payment.Channel = strVal(row.PaymentChannel)
		payment.CustomerReference = strVal(row.CustomerReference)
		payment.PBANumber = strVal(row.PBANumber)
		payment.PayerName = strVal(row.PayerName)
		payment.CreatedAt = timePtr(row.DateCreated)
		payment.UpdatedAt = timePtr(row.DateUpdated)
		payment.BankedAt = row.BankedDate

		for _, ap := range set.Apportionments {
			if ap.PaymentID != row.ID {
				continue
			}
			feeRow, ok := feeRowByID[ap.FeeID]
			if !ok {
				m.Dropped.Apportionments++
				continue
			}
			payment.AddFeeAllocation(feeRow.Code, money.Value(ap.ApportionAmount))
		}

		sr.AddPayment(payment)
		if _, exists := paymentByReference[row.Reference]; !exists {
			paymentByReference[row.Reference] = payment
		}
	}

	// Refunds attach by payment reference equality, not by id: the refunds
	// store only knows the payment's reference string.
	for _, row := range set.Refunds {
		payment, ok := paymentByReference[strVal(row.PaymentReference)]
		if !ok {
			m.Dropped.Refunds++
			continue
		}
		refund := domain.NewRefund(strVal(row.Reference), money.Value(row.Amount), strVal(row.Reason))
		refund.Status = strVal(row.RefundStatus)
		refund.InstructionType = strVal(row.RefundInstructionType)
		refund.PaymentReference = strVal(row.PaymentReference)
		refund.CreatedBy = strVal(row.CreatedBy)
		refund.UpdatedBy = strVal(row.UpdatedBy)
		refund.CreatedAt = row.DateCreated
		refund.UpdatedAt = row.DateUpdated
		payment.AddRefund(refund)
	}

	return m
}

// resolveServiceRequest walks row -> case -> link -> service request and
// returns nil when any hop is missing.
func resolveServiceRequest(
	caseByCCD map[string]*domain.Case,
	linkByID map[int64]*dbmodel.PaymentFeeLink,
	srByLinkID map[int64]*domain.ServiceRequest,
	ccd string,
	linkID int64,
) *domain.ServiceRequest {
	if _, ok := caseByCCD[ccd]; !ok {
		return nil
	}
	link, ok := linkByID[linkID]
	if !ok {
		return nil
	}
	sr := srByLinkID[link.ID]
	if sr == nil || sr.CCDCaseNumber != ccd {
		return nil
	}
	return sr
}
