package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditAction identifies the mutating ledger operation an audit entry records.
type AuditAction string

const (
	ActionRecordPayment    AuditAction = "RECORD_PAYMENT"
	ActionStatusRepair     AuditAction = "STATUS_REPAIR"
	ActionUpsertFeeSetting AuditAction = "UPSERT_FEE_SETTING"
	ActionDeleteFeeSetting AuditAction = "DELETE_FEE_SETTING"
)

// AuditLogEntry is an immutable record of one mutating ledger operation.
// Entries are append-only; there is no update or delete.
type AuditLogEntry struct {
	AuditID     int64            `json:"auditID"`
	Action      AuditAction      `json:"action"`
	Description string           `json:"description"`
	PerformedBy string           `json:"performedBy"`
	Timestamp   time.Time        `json:"timestamp"`
	PaymentID   *int64           `json:"paymentID,omitempty"`
	StudentID   *int64           `json:"studentID,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
}
