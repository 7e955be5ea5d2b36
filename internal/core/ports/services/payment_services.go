package services

import (
	"context"

	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	"github.com/mubiru-dev/school-fees-api/internal/dto"
)

// PaymentSvcFacade defines the write side of the fee ledger plus the per-key and
// per-class status reads that belong to it.
type PaymentSvcFacade interface {
	// RecordPayment appends one payment row with derived balance/status, writes a
	// RECORD_PAYMENT audit entry and returns a receipt.
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.PaymentReceipt, error)

	// GetCurrentStatus reads the latest row for the key; a key with no rows is a
	// NON_PAYER owing the full scheduled fee.
	GetCurrentStatus(ctx context.Context, key domain.PaymentKey) (*domain.PaymentStatusSnapshot, error)

	// ClassStatusSummary groups the students of one form/section into status
	// buckets for a billing period.
	ClassStatusSummary(ctx context.Context, form, section, term, month, academicYear string) ([]domain.PaymentStatusGroup, error)

	// RepairStatuses recomputes balance/status for every ledger row and rewrites
	// only the rows that drifted. Idempotent; returns a human-readable summary.
	RepairStatuses(ctx context.Context, userID string) (string, error)

	// SearchStudents proxies the student directory for the payment UI.
	SearchStudents(ctx context.Context, query string) ([]domain.Student, error)
}
