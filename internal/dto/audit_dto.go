package dto

import (
	"time"

	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AuditLogResponse is the wire shape of one audit entry.
type AuditLogResponse struct {
	AuditID     int64            `json:"auditID"`
	Action      string           `json:"action"`
	Description string           `json:"description"`
	PerformedBy string           `json:"performedBy"`
	Timestamp   string           `json:"timestamp"`
	PaymentID   *int64           `json:"paymentID,omitempty"`
	StudentID   *int64           `json:"studentID,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
}

// AuditLogListResponse is a page of audit entries.
type AuditLogListResponse struct {
	Entries   []AuditLogResponse `json:"entries"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToAuditLogListResponse converts audit entries to a paged response DTO.
func ToAuditLogListResponse(entries []domain.AuditLogEntry, nextToken *string) AuditLogListResponse {
	out := make([]AuditLogResponse, len(entries))
	for i, e := range entries {
		out[i] = AuditLogResponse{
			AuditID:     e.AuditID,
			Action:      string(e.Action),
			Description: e.Description,
			PerformedBy: e.PerformedBy,
			Timestamp:   e.Timestamp.Format(time.RFC3339),
			PaymentID:   e.PaymentID,
			StudentID:   e.StudentID,
			Amount:      e.Amount,
		}
	}
	return AuditLogListResponse{Entries: out, NextToken: nextToken}
}
