package merge

import (
	"caseledger/internal/dbmodel"
	"caseledger/internal/domain"
	"caseledger/internal/mapper"
	"caseledger/internal/money"
)

// TransformToCase groups the raw results of both stores by case number and
// builds the full domain graph, including the status histories and refund
// fee breakdowns the plain entity-set mapper does not carry. Rows whose
// parents cannot be resolved are dropped, matching the mapper's policy.
func TransformToCase(paymentData *dbmodel.PaymentData, refundData *dbmodel.RefundData) mapper.Mapped {
	var m mapper.Mapped

	caseByCCD := make(map[string]*domain.Case)
	srByLinkID := make(map[int64]*domain.ServiceRequest)

	for _, link := range paymentData.PaymentFeeLinks {
		c, ok := caseByCCD[link.CCDCaseNumber]
		if !ok {
			c = domain.NewCase(link.CCDCaseNumber)
			caseByCCD[link.CCDCaseNumber] = c
			m.Cases = append(m.Cases, c)
		}

		sr := domain.NewServiceRequest(link.PaymentReference, link.CCDCaseNumber)
		sr.CaseReference = deref(link.CaseReference)
		sr.OrgID = deref(link.OrgID)
		sr.ServiceName = deref(link.EnterpriseServiceName)
		sr.CallbackURL = deref(link.ServiceRequestCallbackURL)
		if !link.DateCreated.IsZero() {
			t := link.DateCreated
			sr.CreatedAt = &t
		}
		if !link.DateUpdated.IsZero() {
			t := link.DateUpdated
			sr.UpdatedAt = &t
		}

		c.AddServiceRequest(sr)
		srByLinkID[link.ID] = sr
	}

	feeRowByID := make(map[int64]*dbmodel.Fee)
	domainFeeByRowID := make(map[int64]*domain.Fee)

	for _, row := range paymentData.Fees {
		sr, ok := srByLinkID[row.PaymentLinkID]
		if !ok || sr.CCDCaseNumber != row.CCDCaseNumber {
			m.Dropped.Fees++
			continue
		}

		fee := domain.NewFee(row.Code, row.Version, row.FeeAmount)
		fee.Volume = volumeOr1(row.Volume)
		fee.Reference = deref(row.Reference)

		sr.AddFee(fee)
		feeRowByID[row.ID] = row
		domainFeeByRowID[row.ID] = fee
	}

	for _, row := range paymentData.Remissions {
		fee, ok := domainFeeByRowID[row.FeeID]
		if !ok {
			m.Dropped.Remissions++
			continue
		}
		rem := domain.NewRemission(deref(row.HWFReference), row.HWFAmount)
		rem.BeneficiaryName = deref(row.BeneficiaryName)
		rem.RemissionReference = deref(row.RemissionReference)
		rem.CreatedAt = row.DateCreated
		rem.UpdatedAt = row.DateUpdated
		fee.AddRemission(rem)
	}

	paymentByRowID := make(map[int64]*domain.Payment)
	paymentByReference := make(map[string]*domain.Payment)

	for _, row := range paymentData.Payments {
		sr, ok := srByLinkID[row.PaymentLinkID]
		if !ok || sr.CCDCaseNumber != row.CCDCaseNumber {
			m.Dropped.Payments++
			continue
		}

		payment := domain.NewPayment(row.Reference, row.Amount)
		if row.Currency != "" {
			payment.Currency = row.Currency
		}
		payment.Status = deref(row.PaymentStatus)
		payment.Method = deref(row.PaymentMethod)
		payment.Provider = deref(row.PaymentProvider)
		payment.Channel = deref(row.PaymentChannel)
		payment.CustomerReference = deref(row.CustomerReference)
		payment.PBANumber = deref(row.PBANumber)
		payment.PayerName = deref(row.PayerName)
		payment.BankedAt = row.BankedDate

		sr.AddPayment(payment)
		paymentByRowID[row.ID] = payment
		if _, exists := paymentByReference[row.Reference]; !exists {
			paymentByReference[row.Reference] = payment
		}
	}

	for _, row := range paymentData.PaymentStatusHistory {
		payment, ok := paymentByRowID[row.PaymentID]
		if !ok {
			continue
		}
		payment.AddStatusEvent(&domain.PaymentStatusEvent{
			Status:         deref(row.Status),
			ExternalStatus: deref(row.ExternalStatus),
			ErrorCode:      deref(row.ErrorCode),
			Message:        deref(row.Message),
			CreatedAt:      row.DateCreated,
		})
	}

	for _, row := range paymentData.Apportionments {
		payment, ok := paymentByRowID[row.PaymentID]
		if !ok {
			m.Dropped.Apportionments++
			continue
		}
		feeRow, ok := feeRowByID[row.FeeID]
		if !ok {
			m.Dropped.Apportionments++
			continue
		}
		payment.AddFeeAllocation(feeRow.Code, money.Value(row.ApportionAmount))
	}

	refundByRowID := make(map[int64]*domain.Refund)

	for _, row := range refundData.Refunds {
		payment, ok := paymentByReference[deref(row.PaymentReference)]
		if !ok {
			m.Dropped.Refunds++
			continue
		}
		refund := domain.NewRefund(deref(row.Reference), money.Value(row.Amount), deref(row.Reason))
		refund.Status = deref(row.RefundStatus)
		refund.InstructionType = deref(row.RefundInstructionType)
		refund.PaymentReference = deref(row.PaymentReference)
		refund.CreatedBy = deref(row.CreatedBy)
		refund.UpdatedBy = deref(row.UpdatedBy)
		refund.CreatedAt = row.DateCreated
		refund.UpdatedAt = row.DateUpdated

		payment.AddRefund(refund)
		refundByRowID[row.ID] = refund
	}

	for _, row := range refundData.RefundStatusHistory {
		refund, ok := refundByRowID[row.RefundsID]
		if !ok {
			continue
		}
		refund.AddStatusEvent(&domain.RefundStatusEvent{
			Status:    deref(row.Status),
			Notes:     deref(row.Notes),
			CreatedBy: deref(row.CreatedBy),
			CreatedAt: row.DateCreated,
		})
	}

	for _, row := range refundData.RefundFees {
		refund, ok := refundByRowID[row.RefundsID]
		if !ok {
			continue
		}
		refund.AddFee(domain.RefundFee{
			Code:    deref(row.Code),
			Version: deref(row.Version),
			Volume:  money.Value(row.Volume),
			Amount:  money.Value(row.RefundAmount),
		})
	}

	return m
}

func volumeOr1(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
