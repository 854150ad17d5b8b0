package storage

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/sync/errgroup"

	"caseledger/internal/dbmodel"
)

// PaymentsStore reads and seeds the payments database.
type PaymentsStore struct {
	db      *sql.DB
	dialect dialect
}

const (
	linkColumns = `id, date_created, date_updated, payment_reference, org_id,
		enterprise_service_name, ccd_case_number, case_reference,
		service_request_callback_url, amount_due`

	feeColumns = `id, code, version, payment_link_id, calculated_amount, volume,
		ccd_case_number, reference, net_amount, fee_amount, amount_due,
		date_created, date_updated`

	paymentColumns = `id, amount, case_reference, ccd_case_number, currency,
		date_created, date_updated, description, service_type, site_id, user_id,
		payment_channel, payment_method, payment_provider, payment_status,
		payment_link_id, customer_reference, external_reference,
		organisation_name, pba_number, reference, giro_slip_no,
		s2s_service_name, reported_date_offline, service_callback_url,
		document_control_number, banked_date, payer_name, internal_reference`

	apportionColumns = `id, payment_id, fee_id, amount, payment_link_id,
		fee_amount, payment_amount, ccd_case_number, date_created, date_updated,
		apportion_type, call_surplus_amount, apportion_amount`

	remissionColumns = `id, fee_id, payment_link_id, hwf_reference, hwf_amount,
		beneficiary_name, ccd_case_number, date_created, date_updated,
		remission_reference`

	statusHistoryColumns = `id, payment_id, status, external_status, error_code,
		message, date_created, date_updated`

	auditHistoryColumns = `id, ccd_case_no, audit_type, audit_payload,
		audit_description, date_created`
)

// FetchCaseData returns every payments-store row belonging to the given case
// number: the payment_fee_link rows first, then their fees, payments,
// apportionments and remissions in parallel, then the status history of the
// payments found. An unknown case number yields an empty bag, not an error.
func (s *PaymentsStore) FetchCaseData(ctx context.Context, ccdCaseNumber string) (*dbmodel.PaymentData, error) {
	data := &dbmodel.PaymentData{}

	links, err := s.fetchLinks(ctx, ccdCaseNumber)
	if err != nil {
		return nil, fmt.Errorf("fetch payment fee links: %w", err)
	}
	data.PaymentFeeLinks = links

	audit, err := s.fetchAuditHistory(ctx, ccdCaseNumber)
	if err != nil {
		return nil, fmt.Errorf("fetch payment audit history: %w", err)
	}
	data.PaymentAuditHistory = audit

	if len(links) == 0 {
		return data, nil
	}

	linkIDs := make([]int64, len(links))
	for i, l := range links {
		linkIDs[i] = l.ID
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.fetchFees(gctx, linkIDs)
		if err != nil {
			return fmt.Errorf("fetch fees: %w", err)
		}
		data.Fees = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.fetchPayments(gctx, linkIDs)
		if err != nil {
			return fmt.Errorf("fetch payments: %w", err)
		}
		data.Payments = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.fetchApportionments(gctx, linkIDs)
		if err != nil {
			return fmt.Errorf("fetch apportionments: %w", err)
		}
		data.Apportionments = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.fetchRemissions(gctx, linkIDs)
		if err != nil {
			return fmt.Errorf("fetch remissions: %w", err)
		}
		data.Remissions = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(data.Payments) > 0 {
		paymentIDs := make([]int64, len(data.Payments))
		for i, p := range data.Payments {
			paymentIDs[i] = p.ID
		}
		history, err := s.fetchStatusHistory(ctx, paymentIDs)
		if err != nil {
			return nil, fmt.Errorf("fetch payment status history: %w", err)
		}
		data.PaymentStatusHistory = history
	}

	return data, nil
}

func (s *PaymentsStore) fetchLinks(ctx context.Context, ccd string) ([]*dbmodel.PaymentFeeLink, error) {
	query := fmt.Sprintf(`SELECT %s FROM payment_fee_link WHERE ccd_case_number = %s ORDER BY id`,
		linkColumns, s.dialect.placeholder(1))

	rows, err := s.db.QueryContext(ctx, query, ccd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*dbmodel.PaymentFeeLink
	for rows.Next() {
		l := &dbmodel.PaymentFeeLink{}
		if err := rows.Scan(
			&l.ID, &l.DateCreated, &l.DateUpdated, &l.PaymentReference,
			&l.OrgID, &l.EnterpriseServiceName, &l.CCDCaseNumber,
			&l.CaseReference, &l.ServiceRequestCallbackURL, &l.AmountDue,
		); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *PaymentsStore) fetchFees(ctx context.Context, linkIDs []int64) ([]*dbmodel.Fee, error) {
	cond, args := s.dialect.inInt64("payment_link_id", linkIDs)
	query := fmt.Sprintf(`SELECT %s FROM fee WHERE %s ORDER BY id`, feeColumns, cond)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*dbmodel.Fee
	for rows.Next() {
		f := &dbmodel.Fee{}
		if err := rows.Scan(
			&f.ID, &f.Code, &f.Version, &f.PaymentLinkID, &f.CalculatedAmount,
			&f.Volume, &f.CCDCaseNumber, &f.Reference, &f.NetAmount,
			&f.FeeAmount, &f.AmountDue, &f.DateCreated, &f.DateUpdated,
		); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *PaymentsStore) fetchPayments(ctx context.Context, linkIDs []int64) ([]*dbmodel.Payment, error) {
	cond, args := s.dialect.inInt64("payment_link_id", linkIDs)
	query := fmt.Sprintf(`SELECT %s FROM payment WHERE %s ORDER BY id`, paymentColumns, cond)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*dbmodel.Payment
	for rows.Next() {
		p := &dbmodel.Payment{}
		if err := rows.Scan(
			&p.ID, &p.Amount, &p.CaseReference, &p.CCDCaseNumber, &p.Currency,
			&p.DateCreated, &p.DateUpdated, &p.Description, &p.ServiceType,
			&p.SiteID, &p.UserID, &p.PaymentChannel, &p.PaymentMethod,
			&p.PaymentProvider, &p.PaymentStatus, &p.PaymentLinkID,
			&p.CustomerReference, &p.ExternalReference, &p.OrganisationName,
			&p.PBANumber, &p.Reference, &p.GiroSlipNo, &p.S2SServiceName,
			&p.ReportedDateOffline, &p.ServiceCallbackURL,
			&p.DocumentControlNumber, &p.BankedDate, &p.PayerName,
			&p.InternalReference,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PaymentsStore) fetchApportionments(ctx context.Context, linkIDs []int64) ([]*dbmodel.Apportionment, error) {
	cond, args := s.dialect.inInt64("payment_link_id", linkIDs)
	query := fmt.Sprintf(`SELECT %s FROM fee_pay_apportion WHERE %s ORDER BY id`, apportionColumns, cond)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*dbmodel.Apportionment
	for rows.Next() {
		a := &dbmodel.Apportionment{}
		if err := rows.Scan(
			&a.ID, &a.PaymentID, &a.FeeID, &a.Amount, &a.PaymentLinkID,
			&a.FeeAmount, &a.PaymentAmount, &a.CCDCaseNumber, &a.DateCreated,
			&a.DateUpdated, &a.ApportionType, &a.CallSurplusAmount,
			&a.ApportionAmount,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *PaymentsStore) fetchRemissions(ctx context.Context, linkIDs []int64) ([]*dbmodel.Remission, error) {
	cond, args := s.dialect.inInt64("payment_link_id", linkIDs)
	query := fmt.Sprintf(`SELECT %s FROM remission WHERE %s ORDER BY id`, remissionColumns, cond)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*dbmodel.Remission
	for rows.Next() {
		r := &dbmodel.Remission{}
		if err := rows.Scan(
			&r.ID, &r.FeeID, &r.PaymentLinkID, &r.HWFReference, &r.HWFAmount,
			&r.BeneficiaryName, &r.CCDCaseNumber, &r.DateCreated,
			&r.DateUpdated, &r.RemissionReference,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PaymentsStore) fetchStatusHistory(ctx context.Context, paymentIDs []int64) ([]*dbmodel.PaymentStatusHistory, error) {
	cond, args := s.dialect.inInt64("payment_id", paymentIDs)
	query := fmt.Sprintf(`SELECT %s FROM status_history WHERE %s ORDER BY id`, statusHistoryColumns, cond)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*dbmodel.PaymentStatusHistory
	for rows.Next() {
		h := &dbmodel.PaymentStatusHistory{}
		if err := rows.Scan(
			&h.ID, &h.PaymentID, &h.Status, &h.ExternalStatus, &h.ErrorCode,
			&h.Message, &h.DateCreated, &h.DateUpdated,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *PaymentsStore) fetchAuditHistory(ctx context.Context, ccd string) ([]*dbmodel.PaymentAuditHistory, error) {
	query := fmt.Sprintf(`SELECT %s FROM payment_audit_history WHERE ccd_case_no = %s ORDER BY id`,
		auditHistoryColumns, s.dialect.placeholder(1))

	rows, err := s.db.QueryContext(ctx, query, ccd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*dbmodel.PaymentAuditHistory
	for rows.Next() {
		h := &dbmodel.PaymentAuditHistory{}
		if err := rows.Scan(
			&h.ID, &h.CCDCaseNo, &h.AuditType, &h.AuditPayload,
			&h.AuditDescription, &h.DateCreated,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
