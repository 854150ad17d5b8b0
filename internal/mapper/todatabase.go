package mapper

import (
	"time"

	"caseledger/internal/dbmodel"
	"caseledger/internal/domain"
)

// idAllocator hands out synthetic surrogate ids, one counter per entity
// type, scoped to a single mapping call. No persisted sequence is consulted.
type idAllocator struct {
	link, fee, payment, refund, remission, apportionment int64
}

func (a *idAllocator) nextLink() int64          { a.link++; return a.link }
func (a *idAllocator) nextFee() int64           { a.fee++; return a.fee }
func (a *idAllocator) nextPayment() int64       { a.payment++; return a.payment }
func (a *idAllocator) nextRefund() int64        { a.refund++; return a.refund }
func (a *idAllocator) nextRemission() int64     { a.remission++; return a.remission }
func (a *idAllocator) nextApportionment() int64 { a.apportionment++; return a.apportionment }

// ToDatabase flattens a domain case into the six row sets, ready for the
// persistence layer to execute as inserts. Ids start at 1 per entity type
// and increase in traversal order; missing timestamps default to now.
func ToDatabase(c *domain.Case) *dbmodel.EntitySet {
	set := &dbmodel.EntitySet{}
	var ids idAllocator
	now := time.Now()

	for _, sr := range c.ServiceRequests {
		linkID := ids.nextLink()
		summary := sr.Summary()

		link := &dbmodel.PaymentFeeLink{
			ID:                        linkID,
			PaymentReference:          sr.PaymentReference,
			CCDCaseNumber:             sr.CCDCaseNumber,
			CaseReference:             strOpt(sr.CaseReference),
			OrgID:                     strOpt(sr.OrgID),
			EnterpriseServiceName:     strOpt(sr.ServiceName),
			ServiceRequestCallbackURL: strOpt(sr.CallbackURL),
			DateCreated:               timeOr(sr.CreatedAt, now),
			DateUpdated:               timeOr(sr.UpdatedAt, now),
			// amount_due comes from the computed summary, never recomputed
			// independently here.
			AmountDue: &summary.AmountDue,
		}
		set.PaymentFeeLinks = append(set.PaymentFeeLinks, link)

		for _, fee := range sr.Fees {
			feeID := ids.nextFee()
			netAmount := fee.AmountAfterRemissions()

			row := &dbmodel.Fee{
				ID:               feeID,
				PaymentLinkID:    linkID,
				Code:             fee.Code,
				Version:          fee.Version,
				FeeAmount:        fee.Amount,
				Volume:           volumeOr1(fee.Volume),
				CalculatedAmount: fee.TotalAmount(),
				NetAmount:        netAmount,
				AmountDue:        netAmount, // no apportionment offset at fee level
				CCDCaseNumber:    sr.CCDCaseNumber,
				Reference:        strOpt(fee.Reference),
				DateCreated:      timeOr(fee.CreatedAt, now),
				DateUpdated:      timeOr(fee.UpdatedAt, now),
			}
			set.Fees = append(set.Fees, row)

			for _, rem := range fee.Remissions {
				amount := rem.Amount
				set.Remissions = append(set.Remissions, &dbmodel.Remission{
					ID:              ids.nextRemission(),
					FeeID:           feeID,
					PaymentLinkID:   &linkID,
					HWFReference:    strOpt(rem.HWFReference),
					HWFAmount:       amount,
					BeneficiaryName: strOpt(rem.BeneficiaryName),
					CCDCaseNumber:   &sr.CCDCaseNumber,
					DateCreated:     timeOrPtr(rem.CreatedAt, now),
					DateUpdated:     timeOrPtr(rem.UpdatedAt, now),
				})
			}
		}

		for _, payment := range sr.Payments {
			paymentID := ids.nextPayment()

			row := &dbmodel.Payment{
				ID:                paymentID,
				PaymentLinkID:     linkID,
				Reference:         payment.Reference,
				Amount:            payment.Amount,
				Currency:          currencyOrGBP(payment.Currency),
				PaymentStatus:     strOpt(payment.Status),
				PaymentMethod:     strOpt(payment.Method),
				PaymentProvider:   strOpt(payment.Provider),
				PaymentChannel:    strOpt(payment.Channel),
				CustomerReference: strOpt(payment.CustomerReference),
				PBANumber:         strOpt(payment.PBANumber),
				PayerName:         strOpt(payment.PayerName),
				CCDCaseNumber:     sr.CCDCaseNumber,
				DateCreated:       timeOr(payment.CreatedAt, now),
				DateUpdated:       timeOr(payment.UpdatedAt, now),
				BankedDate:        payment.BankedAt,
			}
			set.Payments = append(set.Payments, row)

			for _, refund := range payment.Refunds {
				set.Refunds = append(set.Refunds, &dbmodel.Refund{
					ID:                    ids.nextRefund(),
					Reference:             strOpt(refund.Reference),
					Amount:                &refund.Amount,
					Reason:                strOpt(refund.Reason),
					RefundStatus:          strOpt(refund.Status),
					RefundInstructionType: strOpt(refund.InstructionType),
					PaymentReference:      &payment.Reference,
					CCDCaseNumber:         &sr.CCDCaseNumber,
					CreatedBy:             strOpt(refund.CreatedBy),
					UpdatedBy:             strOpt(refund.UpdatedBy),
					DateCreated:           timeOrPtr(refund.CreatedAt, now),
					DateUpdated:           timeOrPtr(refund.UpdatedAt, now),
				})
			}

			for _, alloc := range payment.FeeAllocations {
				feeRow := findFeeByCode(set.Fees, alloc.FeeCode)
				if feeRow == nil {
					// Allocation references a code with no fee row in this
					// pass; dropped.
					continue
				}
				amount := alloc.Amount
				set.Apportionments = append(set.Apportionments, &dbmodel.Apportionment{
					ID:              ids.nextApportionment(),
					PaymentID:       paymentID,
					FeeID:           feeRow.ID,
					PaymentLinkID:   &linkID,
					ApportionAmount: &amount,
					Amount:          &amount, // legacy column mirrors apportion_amount
					CCDCaseNumber:   &sr.CCDCaseNumber,
					DateCreated:     &now,
					DateUpdated:     &now,
				})
			}
		}
	}

	return set
}

func findFeeByCode(fees []*dbmodel.Fee, code string) *dbmodel.Fee {
	for _, f := range fees {
		if f.Code == code {
			return f
		}
	}
	return nil
}

func strOpt(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeOr(t *time.Time, fallback time.Time) time.Time {
	if t != nil {
		return *t
	}
	return fallback
}

func timeOrPtr(t *time.Time, fallback time.Time) *time.Time {
	if t != nil {
		return t
	}
	return &fallback
}

func volumeOr1(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func currencyOrGBP(c string) string {
	if c == "" {
		return "GBP"
	}
	return c
}
