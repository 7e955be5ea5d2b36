package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	portsrepo "github.com/mubiru-dev/school-fees-api/internal/core/ports/repositories"
	portssvc "github.com/mubiru-dev/school-fees-api/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// reportingService implements the ReportingSvcFacade interface. All operations
// are read-only folds over the ledger; a scope with no data yields empty
// results, matching the defensive behavior the calling UI expects.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	auditRepo     portsrepo.AuditRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, auditRepo portsrepo.AuditRepository) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		auditRepo:     auditRepo,
	}
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// DailySummary totals the payments recorded on one date.
func (s *reportingService) DailySummary(ctx context.Context, date time.Time) (*domain.DailyPaymentSummary, error) {
	summary, err := s.reportingRepo.GetDailySummaryData(ctx, date)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve daily summary data",
			slog.String("date", date.Format("2006-01-02")))
		return nil, fmt.Errorf("failed to retrieve daily summary data: %w", err)
	}
	return summary, nil
}

// FinancialReport composes per-class summaries and the daily breakdown for a
// term/year + date-range scope. An inverted or unknown scope produces a zeroed
// report rather than an error.
func (s *reportingService) FinancialReport(ctx context.Context, term, academicYear string, from, to time.Time) (*domain.FinancialReport, error) {
	report := &domain.FinancialReport{
		Term:             term,
		AcademicYear:     academicYear,
		StartDate:        from,
		EndDate:          to,
		Classes:          []domain.ClassFinancialSummary{},
		DailyBreakdown:   []domain.DailyPaymentSummary{},
		TotalCollected:   decimal.Zero,
		TotalOutstanding: decimal.Zero,
		ExpectedRevenue:  decimal.Zero,
	}
	if from.After(to) {
		s.LogDebug(ctx, "Inverted date range for financial report, returning empty report",
			slog.String("from", from.Format("2006-01-02")),
			slog.String("to", to.Format("2006-01-02")))
		return report, nil
	}

	classes, err := s.reportingRepo.GetClassFinancialData(ctx, term, academicYear, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve class financial data",
			slog.String("term", term), slog.String("academic_year", academicYear))
		return nil, fmt.Errorf("failed to retrieve class financial data: %w", err)
	}

	breakdown, err := s.reportingRepo.GetDailyBreakdownData(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve daily breakdown data")
		return nil, fmt.Errorf("failed to retrieve daily breakdown data: %w", err)
	}

	for _, c := range classes {
		report.TotalCollected = report.TotalCollected.Add(c.TotalCollected)
		report.TotalOutstanding = report.TotalOutstanding.Add(c.TotalOutstanding)
		report.ExpectedRevenue = report.ExpectedRevenue.Add(c.ExpectedRevenue)
	}
	report.Classes = classes
	report.DailyBreakdown = breakdown

	s.LogInfo(ctx, "Financial report generated",
		slog.String("term", term),
		slog.String("academic_year", academicYear),
		slog.Int("class_count", len(classes)),
		slog.Int("day_count", len(breakdown)))
	return report, nil
}

// StudentPaymentHistory lists every payment row per student with running totals.
func (s *reportingService) StudentPaymentHistory(ctx context.Context, studentID *int64) ([]domain.StudentPaymentHistory, error) {
	histories, err := s.reportingRepo.GetStudentPaymentHistoryData(ctx, studentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve student payment history data")
		return nil, fmt.Errorf("failed to retrieve student payment history data: %w", err)
	}
	return histories, nil
}

// PaymentTrends returns one point per day with activity in the range.
func (s *reportingService) PaymentTrends(ctx context.Context, from, to time.Time) ([]domain.PaymentTrendPoint, error) {
	if from.After(to) {
		return []domain.PaymentTrendPoint{}, nil
	}

	breakdown, err := s.reportingRepo.GetDailyBreakdownData(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve payment trend data")
		return nil, fmt.Errorf("failed to retrieve payment trend data: %w", err)
	}

	points := make([]domain.PaymentTrendPoint, len(breakdown))
	for i, day := range breakdown {
		points[i] = domain.PaymentTrendPoint{
			Date:             day.Date,
			TotalAmount:      day.TotalAmount,
			TransactionCount: day.TotalTransactions,
		}
	}
	return points, nil
}

// ClassComparison compares collection performance across classes for a year.
// The rate and average are derived here so every caller sees the same math:
// collectionRate = collected / (collected + outstanding) * 100, zero when the
// denominator is zero.
func (s *reportingService) ClassComparison(ctx context.Context, academicYear string) ([]domain.ClassComparison, error) {
	comparisons, err := s.reportingRepo.GetClassComparisonData(ctx, academicYear)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve class comparison data",
			slog.String("academic_year", academicYear))
		return nil, fmt.Errorf("failed to retrieve class comparison data: %w", err)
	}

	for i := range comparisons {
		c := &comparisons[i]
		denominator := c.TotalCollected.Add(c.TotalOutstanding)
		if denominator.IsZero() {
			c.CollectionRate = decimal.Zero
		} else {
			c.CollectionRate = c.TotalCollected.Div(denominator).Mul(oneHundred).Round(2)
		}
		if c.TotalStudents == 0 {
			c.AveragePaymentPerStudent = decimal.Zero
		} else {
			c.AveragePaymentPerStudent = c.TotalCollected.Div(decimal.NewFromInt(c.TotalStudents)).Round(2)
		}
	}
	return comparisons, nil
}

// OutstandingPayments lists latest-row payments with balance still owing.
func (s *reportingService) OutstandingPayments(ctx context.Context, term, academicYear string) ([]domain.PaymentWithStudent, error) {
	payments, err := s.reportingRepo.GetOutstandingPaymentsData(ctx, term, academicYear)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve outstanding payments",
			slog.String("term", term), slog.String("academic_year", academicYear))
		return nil, fmt.Errorf("failed to retrieve outstanding payments: %w", err)
	}
	return payments, nil
}

// AuditLogs returns audit entries in a time range, ascending by timestamp.
func (s *reportingService) AuditLogs(ctx context.Context, from, to time.Time, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	if from.After(to) {
		return []domain.AuditLogEntry{}, nil, nil
	}
	entries, token, err := s.auditRepo.QueryAuditLogs(ctx, from, to, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to query audit logs")
		return nil, nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	return entries, token, nil
}
