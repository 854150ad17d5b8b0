package dbmodel

import (
	"time"

	"caseledger/internal/validate"
)

// Payment is a row of the payment table.
type Payment struct {
	ID                    int64      `json:"id"`
	Amount                float64    `json:"amount"`
	CaseReference         *string    `json:"case_reference"`
	CCDCaseNumber         string     `json:"ccd_case_number"`
	Currency              string     `json:"currency"`
	DateCreated           time.Time  `json:"date_created"`
	DateUpdated           time.Time  `json:"date_updated"`
	Description           *string    `json:"description"`
	ServiceType           *string    `json:"service_type"`
	SiteID                *string    `json:"site_id"`
	UserID                *string    `json:"user_id"`
	PaymentChannel        *string    `json:"payment_channel"`
	PaymentMethod         *string    `json:"payment_method"`
	PaymentProvider       *string    `json:"payment_provider"`
	PaymentStatus         *string    `json:"payment_status"`
	PaymentLinkID         int64      `json:"payment_link_id"`
	CustomerReference     *string    `json:"customer_reference"`
	ExternalReference     *string    `json:"external_reference"`
	OrganisationName      *string    `json:"organisation_name"`
	PBANumber             *string    `json:"pba_number"`
	Reference             string     `json:"reference"`
	GiroSlipNo            *string    `json:"giro_slip_no"`
	S2SServiceName        *string    `json:"s2s_service_name"`
	ReportedDateOffline   *time.Time `json:"reported_date_offline"`
	ServiceCallbackURL    *string    `json:"service_callback_url"`
	DocumentControlNumber *string    `json:"document_control_number"`
	BankedDate            *time.Time `json:"banked_date"`
	PayerName             *string    `json:"payer_name"`
	InternalReference     *string    `json:"internal_reference"`
}

var paymentConstraints = map[string]validate.Constraint{
	"amount":          validate.NotNull().PositiveNumber(),
	"ccd_case_number": validate.NotNull().MinLength(16).MaxLength(25),
	"currency":        validate.NotNull().MaxLength(3),
	"date_created":    validate.NotNull(),
	"date_updated":    validate.NotNull(),
	"payment_channel": validate.Nullable().Enum(PaymentChannels...),
	"payment_method":  validate.Nullable().Enum(PaymentMethods...),
	"payment_status":  validate.Nullable().Enum(PaymentStatuses...),
	"reference":       validate.NotNull().MaxLength(50),
}

// Validate runs the field constraints and warns when an account-based
// payment carries no PBA number.
func (p *Payment) Validate() *validate.Result {
	res := validate.NewResult()
	runConstraints(paymentConstraints, map[string]any{
		"amount":          p.Amount,
		"ccd_case_number": p.CCDCaseNumber,
		"currency":        p.Currency,
		"date_created":    p.DateCreated,
		"date_updated":    p.DateUpdated,
		"payment_channel": p.PaymentChannel,
		"payment_method":  p.PaymentMethod,
		"payment_status":  p.PaymentStatus,
		"reference":       p.Reference,
	}, res)

	if p.PaymentMethod != nil && *p.PaymentMethod == MethodPaymentByAccount {
		if p.PBANumber == nil || *p.PBANumber == "" {
			res.AddWarning("pba_number", `PBA number expected when payment method is "payment by account"`)
		}
	}

	return res
}
