package storage

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/sync/errgroup"

	"caseledger/internal/dbmodel"
)

// RefundsStore reads and seeds the refunds database.
type RefundsStore struct {
	db      *sql.DB
	dialect dialect
}

const (
	refundColumns = `id, date_created, date_updated, amount, reason,
		refund_status, reference, payment_reference, created_by, updated_by,
		ccd_case_number, fee_ids, notification_sent_flag, contact_details,
		service_type, refund_instruction_type`

	refundStatusHistoryColumns = `id, refunds_id, status, notes, date_created,
		created_by`

	refundFeeColumns = `id, refunds_id, fee_id, code, version, volume,
		refund_amount`
)

// FetchCaseData returns every refunds-store row belonging to the given case
// number: the refunds first, then their status history and fee breakdown in
// parallel. An unknown case number yields an empty bag, not an error.
func (s *RefundsStore) FetchCaseData(ctx context.Context, ccdCaseNumber string) (*dbmodel.RefundData, error) {
	data := &dbmodel.RefundData{}

	refunds, err := s.fetchRefunds(ctx, ccdCaseNumber)
	if err != nil {
		return nil, fmt.Errorf("fetch refunds: %w", err)
	}
	data.Refunds = refunds

	if len(refunds) == 0 {
		return data, nil
	}

	refundIDs := make([]int64, len(refunds))
	for i, r := range refunds {
		refundIDs[i] = r.ID
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.fetchStatusHistory(gctx, refundIDs)
		if err != nil {
			return fmt.Errorf("fetch refund status history: %w", err)
		}
		data.RefundStatusHistory = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.fetchRefundFees(gctx, refundIDs)
		if err != nil {
			return fmt.Errorf("fetch refund fees: %w", err)
		}
		data.RefundFees = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return data, nil
}

func (s *RefundsStore) fetchRefunds(ctx context.Context, ccd string) ([]*dbmodel.Refund, error) {
	query := fmt.Sprintf(`SELECT %s FROM refunds WHERE ccd_case_number = %s ORDER BY id`,
		refundColumns, s.dialect.placeholder(1))

	rows, err := s.db.QueryContext(ctx, query, ccd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*dbmodel.Refund
	for rows.Next() {
		r := &dbmodel.Refund{}
		if err := rows.Scan(
			&r.ID, &r.DateCreated, &r.DateUpdated, &r.Amount, &r.Reason,
			&r.RefundStatus, &r.Reference, &r.PaymentReference, &r.CreatedBy,
			&r.UpdatedBy, &r.CCDCaseNumber, &r.FeeIDs, &r.NotificationSentFlag,
			&r.ContactDetails, &r.ServiceType, &r.RefundInstructionType,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *RefundsStore) fetchStatusHistory(ctx context.Context, refundIDs []int64) ([]*dbmodel.RefundStatusHistory, error) {
	cond, args := s.dialect.inInt64("refunds_id", refundIDs)
	query := fmt.Sprintf(`SELECT %s FROM status_history WHERE %s ORDER BY id`, refundStatusHistoryColumns, cond)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*dbmodel.RefundStatusHistory
	for rows.Next() {
		h := &dbmodel.RefundStatusHistory{}
		if err := rows.Scan(
			&h.ID, &h.RefundsID, &h.Status, &h.Notes, &h.DateCreated,
			&h.CreatedBy,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *RefundsStore) fetchRefundFees(ctx context.Context, refundIDs []int64) ([]*dbmodel.RefundFee, error) {
	cond, args := s.dialect.inInt64("refunds_id", refundIDs)
	query := fmt.Sprintf(`SELECT %s FROM refund_fees WHERE %s ORDER BY id`, refundFeeColumns, cond)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*dbmodel.RefundFee
	for rows.Next() {
		f := &dbmodel.RefundFee{}
		if err := rows.Scan(
			&f.ID, &f.RefundsID, &f.FeeID, &f.Code, &f.Version, &f.Volume,
			&f.RefundAmount,
		); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
