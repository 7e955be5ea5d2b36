package repositories

import (
	"context"
	"time"

	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
)

// ReportingRepository defines read-only aggregation queries over the payment
// ledger. "Current" state always means the latest row per billing key (greatest
// payment_id).
type ReportingRepository interface {
	// GetDailySummaryData sums and counts the payment rows recorded on one date.
	GetDailySummaryData(ctx context.Context, date time.Time) (*domain.DailyPaymentSummary, error)

	// GetClassFinancialData aggregates per-class status counts, collected and
	// outstanding totals and expected revenue for a term/year scope; amountPaid is
	// summed over the [from, to] date range.
	GetClassFinancialData(ctx context.Context, term, academicYear string, from, to time.Time) ([]domain.ClassFinancialSummary, error)

	// GetDailyBreakdownData returns one summary per day with activity in [from, to],
	// ascending by date.
	GetDailyBreakdownData(ctx context.Context, from, to time.Time) ([]domain.DailyPaymentSummary, error)

	// GetStudentPaymentHistoryData returns the full payment history per student,
	// ordered by payment date. A nil studentID means all students.
	GetStudentPaymentHistoryData(ctx context.Context, studentID *int64) ([]domain.StudentPaymentHistory, error)

	// GetClassComparisonData returns per-class student counts and collected and
	// outstanding totals for an academic year. Rates and averages are derived by the
	// service.
	GetClassComparisonData(ctx context.Context, academicYear string) ([]domain.ClassComparison, error)

	// GetOutstandingPaymentsData returns the latest row per key with balance > 0 for
	// the scope, joined with student identity.
	GetOutstandingPaymentsData(ctx context.Context, term, academicYear string) ([]domain.PaymentWithStudent, error)

	// GetAllPaymentsData returns every payment row for the scope joined with student
	// identity, ordered by payment date then id, for spreadsheet export.
	GetAllPaymentsData(ctx context.Context, term, academicYear string) ([]domain.PaymentWithStudent, error)
}
