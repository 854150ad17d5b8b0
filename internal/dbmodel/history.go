package dbmodel

import "time"

// PaymentStatusHistory is a row of the payments store's status_history
// table: one status transition of a payment.
type PaymentStatusHistory struct {
	ID             int64      `json:"id"`
	PaymentID      int64      `json:"payment_id"`
	Status         *string    `json:"status"`
	ExternalStatus *string    `json:"external_status"`
	ErrorCode      *string    `json:"error_code"`
	Message        *string    `json:"message"`
	DateCreated    *time.Time `json:"date_created"`
	DateUpdated    *time.Time `json:"date_updated"`
}

// PaymentAuditHistory is a row of the payment_audit_history table.
type PaymentAuditHistory struct {
	ID               int64      `json:"id"`
	CCDCaseNo        *string    `json:"ccd_case_no"`
	AuditType        *string    `json:"audit_type"`
	AuditPayload     *string    `json:"audit_payload"`
	AuditDescription *string    `json:"audit_description"`
	DateCreated      *time.Time `json:"date_created"`
}

// RefundStatusHistory is a row of the refunds store's status_history table.
type RefundStatusHistory struct {
	ID          int64      `json:"id"`
	RefundsID   int64      `json:"refunds_id"`
	Status      *string    `json:"status"`
	Notes       *string    `json:"notes"`
	DateCreated *time.Time `json:"date_created"`
	CreatedBy   *string    `json:"created_by"`
}

// RefundFee is a row of the refund_fees table: the portion of a refund
// attributed to one fee.
type RefundFee struct {
	ID           int64    `json:"id"`
	RefundsID    int64    `json:"refunds_id"`
	FeeID        int64    `json:"fee_id"`
	Code         *string  `json:"code"`
	Version      *string  `json:"version"`
	Volume       *float64 `json:"volume"`
	RefundAmount *float64 `json:"refund_amount"`
}
