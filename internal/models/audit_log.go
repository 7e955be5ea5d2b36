package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditLog mirrors the audit_log table. Rows are append-only.
type AuditLog struct {
	AuditID     int64
	Action      string
	Description string
	PerformedBy string
	Timestamp   time.Time
	PaymentID   *int64
	StudentID   *int64
	Amount      *decimal.Decimal
}
