package services

import (
	"context"
	"time"

	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
)

// ReportingSvcFacade defines the read-only aggregated financial views. All
// operations are side-effect-free; a scope with no data yields empty results,
// never an error.
type ReportingSvcFacade interface {
	// DailySummary totals the payments recorded on one date.
	DailySummary(ctx context.Context, date time.Time) (*domain.DailyPaymentSummary, error)

	// FinancialReport composes per-class summaries and the daily breakdown for a
	// term/year + date-range scope.
	FinancialReport(ctx context.Context, term, academicYear string, from, to time.Time) (*domain.FinancialReport, error)

	// StudentPaymentHistory lists every payment row per student with running
	// totals. A nil studentID means all students.
	StudentPaymentHistory(ctx context.Context, studentID *int64) ([]domain.StudentPaymentHistory, error)

	// PaymentTrends returns one point per day with activity in the range.
	PaymentTrends(ctx context.Context, from, to time.Time) ([]domain.PaymentTrendPoint, error)

	// ClassComparison compares collection performance across classes for a year.
	ClassComparison(ctx context.Context, academicYear string) ([]domain.ClassComparison, error)

	// OutstandingPayments lists latest-row payments with balance still owing.
	OutstandingPayments(ctx context.Context, term, academicYear string) ([]domain.PaymentWithStudent, error)

	// AuditLogs returns audit entries in a time range, ascending by timestamp.
	AuditLogs(ctx context.Context, from, to time.Time, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error)
}
