package amqp

import (
	"testing"
	"time"

	"caseledger/internal/domain"
)

func sampleSummary() domain.CaseSummary {
	return domain.CaseSummary{
		Summary: domain.Summary{
			TotalFees:       200,
			TotalPayments:   150,
			TotalRefunds:    40,
			TotalRemissions: 50,
			FeeCount:        2,
			PaymentCount:    1,
			RefundCount:     1,
			NetAmount:       160,
			AmountDue:       0,
		},
		ServiceRequestCount: 2,
		RemissionCount:      1,
	}
}

func TestNewCaseSummaryMessage(t *testing.T) {
	msg := NewCaseSummaryMessage("1111222233334444", sampleSummary())

	if msg.CCDCaseNumber != "1111222233334444" {
		t.Errorf("CCDCaseNumber = %q", msg.CCDCaseNumber)
	}
	if msg.Summary != sampleSummary() {
		t.Errorf("Summary = %+v", msg.Summary)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}
}

func TestCaseSummaryMessage_JSON(t *testing.T) {
	msg := &CaseSummaryMessage{
		CCDCaseNumber: "1111222233334444",
		Summary:       sampleSummary(),
		Timestamp:     time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := CaseSummaryMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("CaseSummaryMessageFromJSON() error = %v", err)
	}

	if parsed.CCDCaseNumber != msg.CCDCaseNumber {
		t.Errorf("Parsed CCDCaseNumber = %q, want %q", parsed.CCDCaseNumber, msg.CCDCaseNumber)
	}
	if parsed.Summary != msg.Summary {
		t.Errorf("Parsed Summary = %+v, want %+v", parsed.Summary, msg.Summary)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestCaseSummaryMessage_InvalidJSON(t *testing.T) {
	invalidJSON := []byte(`{"ccdCaseNumber": 42, "summary": "nope"}`)

	if _, err := CaseSummaryMessageFromJSON(invalidJSON); err == nil {
		t.Error("CaseSummaryMessageFromJSON() should fail with invalid JSON")
	}
}
