package mapping

import (
	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	"github.com/mubiru-dev/school-fees-api/internal/models"
)

// ToModelAuditLog converts a domain AuditLogEntry to a model AuditLog
func ToModelAuditLog(d domain.AuditLogEntry) models.AuditLog {
	return models.AuditLog{
		AuditID:     d.AuditID,
		Action:      string(d.Action),
		Description: d.Description,
		PerformedBy: d.PerformedBy,
		Timestamp:   d.Timestamp,
		PaymentID:   d.PaymentID,
		StudentID:   d.StudentID,
		Amount:      d.Amount,
	}
}

// ToDomainAuditLog converts a model AuditLog to a domain AuditLogEntry
func ToDomainAuditLog(m models.AuditLog) domain.AuditLogEntry {
	return domain.AuditLogEntry{
		AuditID:     m.AuditID,
		Action:      domain.AuditAction(m.Action),
		Description: m.Description,
		PerformedBy: m.PerformedBy,
		Timestamp:   m.Timestamp,
		PaymentID:   m.PaymentID,
		StudentID:   m.StudentID,
		Amount:      m.Amount,
	}
}
