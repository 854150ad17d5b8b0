// Package dbmodel defines one record type per database table across the two
// source stores, together with the field constraints and cross-record checks
// applied before persistence. These shapes mirror the columns exactly;
// nullable columns are pointers.
package dbmodel

// Payment lifecycle statuses.
const (
	PaymentStatusInitiated = "initiated"
	PaymentStatusSuccess   = "success"
	PaymentStatusFailed    = "failed"
	PaymentStatusPending   = "pending"
	PaymentStatusCancelled = "cancelled"
)

// PaymentStatuses lists every accepted payment_status value.
var PaymentStatuses = []string{
	PaymentStatusInitiated,
	PaymentStatusSuccess,
	PaymentStatusFailed,
	PaymentStatusPending,
	PaymentStatusCancelled,
}

// Refund review statuses.
const (
	RefundStatusSentForApproval = "Sent for approval"
	RefundStatusApproved        = "Approved"
	RefundStatusUpdateRequired  = "Update required"
	RefundStatusAccepted        = "Accepted"
	RefundStatusRejected        = "Rejected"
	RefundStatusCancelled       = "Cancelled"
)

// RefundStatuses lists every accepted refund_status value.
var RefundStatuses = []string{
	RefundStatusSentForApproval,
	RefundStatusApproved,
	RefundStatusUpdateRequired,
	RefundStatusAccepted,
	RefundStatusRejected,
	RefundStatusCancelled,
}

// Payment methods.
const (
	MethodCard             = "card"
	MethodPaymentByAccount = "payment by account"
	MethodCash             = "cash"
	MethodCheque           = "cheque"
	MethodPostalOrder      = "postal order"
)

// PaymentMethods lists every accepted payment_method value.
var PaymentMethods = []string{
	MethodCard,
	MethodPaymentByAccount,
	MethodCash,
	MethodCheque,
	MethodPostalOrder,
}

// Payment channels.
const (
	ChannelOnline    = "online"
	ChannelTelephony = "telephony"
	ChannelBulkScan  = "bulk scan"
)

// PaymentChannels lists every accepted payment_channel value.
var PaymentChannels = []string{
	ChannelOnline,
	ChannelTelephony,
	ChannelBulkScan,
}
