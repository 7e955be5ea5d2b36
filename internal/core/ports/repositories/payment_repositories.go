package repositories

import (
	"context"

	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
)

// PaymentRepository defines persistence operations for the payment ledger.
// The ledger is append-only: rows are never deleted, and only the derived
// balance/status fields may be rewritten (by a repair pass).
type PaymentRepository interface {
	// CreatePayment appends a payment row. Inside one database transaction it
	// serializes writers on the same billing key, sums the prior rows for the key,
	// derives balance/status for the new row and inserts it. The returned payment
	// carries the generated id and the derived fields.
	CreatePayment(ctx context.Context, payment domain.Payment) (*domain.Payment, error)

	// FindLatestPaymentForKey returns the row with the greatest payment_id for the
	// key, or apperrors.ErrNotFound when the key has no rows yet.
	FindLatestPaymentForKey(ctx context.Context, key domain.PaymentKey) (*domain.Payment, error)

	// ListPaymentsForRepair returns every payment row ordered by (key, payment_id)
	// from a single snapshot read, so a repair pass can fold cumulative amounts in
	// insertion order.
	ListPaymentsForRepair(ctx context.Context) ([]domain.Payment, error)

	// ApplyCorrections rewrites balance/status on the given rows in one transaction
	// and reports how many rows were updated. amount_paid and payment_date are never
	// touched.
	ApplyCorrections(ctx context.Context, corrections []domain.PaymentCorrection) (int64, error)

	// GetClassStatusData returns the current payment state of every student in a
	// form/section for one billing period. Students with no payment rows appear as
	// non-payers owing the full scheduled fee.
	GetClassStatusData(ctx context.Context, form, section, term, month, academicYear string) ([]domain.StudentPaymentStatus, error)
}
