package amqp

import (
	"encoding/json"
	"time"

	"caseledger/internal/domain"
)

// CaseSummaryMessage carries the aggregated totals of one case. Downstream
// consumers refetch the full case graph if they need more than the summary.
type CaseSummaryMessage struct {
	CCDCaseNumber string             `json:"ccdCaseNumber"`
	Summary       domain.CaseSummary `json:"summary"`
	Timestamp     time.Time          `json:"timestamp"`
}

// NewCaseSummaryMessage creates a summary message stamped with the current
// time.
func NewCaseSummaryMessage(ccdCaseNumber string, summary domain.CaseSummary) *CaseSummaryMessage {
	return &CaseSummaryMessage{
		CCDCaseNumber: ccdCaseNumber,
		Summary:       summary,
		Timestamp:     time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *CaseSummaryMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// CaseSummaryMessageFromJSON creates a message from JSON bytes.
func CaseSummaryMessageFromJSON(data []byte) (*CaseSummaryMessage, error) {
	var msg CaseSummaryMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
