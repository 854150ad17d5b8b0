package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"caseledger/internal/dbmodel"
)

// insertQuery renders an INSERT for the dialect's placeholder style.
func (d dialect) insertQuery(table string, columns []string) string {
	marks := make([]string, len(columns))
	for i := range columns {
		marks[i] = d.placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(marks, ", "))
}

// SeedEntitySet inserts the payments-store slice of an entity set in one
// transaction, parents before children.
func (s *PaymentsStore) SeedEntitySet(ctx context.Context, set *dbmodel.EntitySet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	linkInsert := s.dialect.insertQuery("payment_fee_link", []string{
		"id", "date_created", "date_updated", "payment_reference", "org_id",
		"enterprise_service_name", "ccd_case_number", "case_reference",
		"service_request_callback_url", "amount_due",
	})
	for _, l := range set.PaymentFeeLinks {
		if _, err := tx.ExecContext(ctx, linkInsert,
			l.ID, l.DateCreated, l.DateUpdated, l.PaymentReference, l.OrgID,
			l.EnterpriseServiceName, l.CCDCaseNumber, l.CaseReference,
			l.ServiceRequestCallbackURL, l.AmountDue,
		); err != nil {
			return fmt.Errorf("insert payment_fee_link %d: %w", l.ID, err)
		}
	}

	feeInsert := s.dialect.insertQuery("fee", []string{
		"id", "code", "version", "payment_link_id", "calculated_amount",
		"volume", "ccd_case_number", "reference", "net_amount", "fee_amount",
		"amount_due", "date_created", "date_updated",
	})
	for _, f := range set.Fees {
		if _, err := tx.ExecContext(ctx, feeInsert,
			f.ID, f.Code, f.Version, f.PaymentLinkID, f.CalculatedAmount,
			f.Volume, f.CCDCaseNumber, f.Reference, f.NetAmount, f.FeeAmount,
			f.AmountDue, f.DateCreated, f.DateUpdated,
		); err != nil {
			return fmt.Errorf("insert fee %d: %w", f.ID, err)
		}
	}

	paymentInsert := s.dialect.insertQuery("payment", []string{
		"id", "amount", "case_reference", "ccd_case_number", "currency",
		"date_created", "date_updated", "description", "service_type",
		"site_id", "user_id", "payment_channel", "payment_method",
		"payment_provider", "payment_status", "payment_link_id",
		"customer_reference", "external_reference", "organisation_name",
		"pba_number", "reference", "giro_slip_no", "s2s_service_name",
		"reported_date_offline", "service_callback_url",
		"document_control_number", "banked_date", "payer_name",
		"internal_reference",
	})
	for _, p := range set.Payments {
		if _, err := tx.ExecContext(ctx, paymentInsert,
			p.ID, p.Amount, p.CaseReference, p.CCDCaseNumber, p.Currency,
			p.DateCreated, p.DateUpdated, p.Description, p.ServiceType,
			p.SiteID, p.UserID, p.PaymentChannel, p.PaymentMethod,
			p.PaymentProvider, p.PaymentStatus, p.PaymentLinkID,
			p.CustomerReference, p.ExternalReference, p.OrganisationName,
			p.PBANumber, p.Reference, p.GiroSlipNo, p.S2SServiceName,
			p.ReportedDateOffline, p.ServiceCallbackURL,
			p.DocumentControlNumber, p.BankedDate, p.PayerName,
			p.InternalReference,
		); err != nil {
			return fmt.Errorf("insert payment %d: %w", p.ID, err)
		}
	}

	apportionInsert := s.dialect.insertQuery("fee_pay_apportion", []string{
		"id", "payment_id", "fee_id", "amount", "payment_link_id",
		"fee_amount", "payment_amount", "ccd_case_number", "date_created",
		"date_updated", "apportion_type", "call_surplus_amount",
		"apportion_amount",
	})
	for _, a := range set.Apportionments {
		if _, err := tx.ExecContext(ctx, apportionInsert,
			a.ID, a.PaymentID, a.FeeID, a.Amount, a.PaymentLinkID,
			a.FeeAmount, a.PaymentAmount, a.CCDCaseNumber, a.DateCreated,
			a.DateUpdated, a.ApportionType, a.CallSurplusAmount,
			a.ApportionAmount,
		); err != nil {
			return fmt.Errorf("insert fee_pay_apportion %d: %w", a.ID, err)
		}
	}

	remissionInsert := s.dialect.insertQuery("remission", []string{
		"id", "fee_id", "payment_link_id", "hwf_reference", "hwf_amount",
		"beneficiary_name", "ccd_case_number", "date_created", "date_updated",
		"remission_reference",
	})
	for _, r := range set.Remissions {
		if _, err := tx.ExecContext(ctx, remissionInsert,
			r.ID, r.FeeID, r.PaymentLinkID, r.HWFReference, r.HWFAmount,
			r.BeneficiaryName, r.CCDCaseNumber, r.DateCreated, r.DateUpdated,
			r.RemissionReference,
		); err != nil {
			return fmt.Errorf("insert remission %d: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// SeedRefunds inserts refund rows in one transaction.
func (s *RefundsStore) SeedRefunds(ctx context.Context, refunds []*dbmodel.Refund) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.insertRefunds(ctx, tx, refunds); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *RefundsStore) insertRefunds(ctx context.Context, tx *sql.Tx, refunds []*dbmodel.Refund) error {
	refundInsert := s.dialect.insertQuery("refunds", []string{
		"id", "date_created", "date_updated", "amount", "reason",
		"refund_status", "reference", "payment_reference", "created_by",
		"updated_by", "ccd_case_number", "fee_ids", "notification_sent_flag",
		"contact_details", "service_type", "refund_instruction_type",
	})
	for _, r := range refunds {
		if _, err := tx.ExecContext(ctx, refundInsert,
			r.ID, r.DateCreated, r.DateUpdated, r.Amount, r.Reason,
			r.RefundStatus, r.Reference, r.PaymentReference, r.CreatedBy,
			r.UpdatedBy, r.CCDCaseNumber, r.FeeIDs, r.NotificationSentFlag,
			r.ContactDetails, r.ServiceType, r.RefundInstructionType,
		); err != nil {
			return fmt.Errorf("insert refund %d: %w", r.ID, err)
		}
	}
	return nil
}
