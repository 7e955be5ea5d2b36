package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	portsrepo "github.com/mubiru-dev/school-fees-api/internal/core/ports/repositories"
	"github.com/mubiru-dev/school-fees-api/internal/models"
	"github.com/mubiru-dev/school-fees-api/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetDailySummaryData sums and counts the payment rows recorded on one date.
func (r *reportingRepository) GetDailySummaryData(ctx context.Context, date time.Time) (*domain.DailyPaymentSummary, error) {
	query := `
		SELECT COALESCE(SUM(amount_paid), 0), COUNT(*)
		FROM payments
		WHERE payment_date = $1
	`

	summary := domain.DailyPaymentSummary{Date: date}
	err := r.Pool.QueryRow(ctx, query, date).Scan(&summary.TotalAmount, &summary.TotalTransactions)
	if err != nil {
		return nil, fmt.Errorf("error querying daily summary data: %w", err)
	}
	return &summary, nil
}

// GetClassFinancialData aggregates the current ledger state per class for a
// term/year scope. Status counts and outstanding totals come from the latest row
// per billing key; collected amounts are summed over the [from, to] date range.
func (r *reportingRepository) GetClassFinancialData(ctx context.Context, term, academicYear string, from, to time.Time) ([]domain.ClassFinancialSummary, error) {
	query := `
		WITH latest AS (
			SELECT DISTINCT ON (student_id, month)
				student_id, month, monthly_fee_amount, balance, status
			FROM payments
			WHERE term = $1 AND academic_year = $2
			ORDER BY student_id, month, payment_id DESC
		),
		per_student AS (
			SELECT student_id,
				COUNT(*) FILTER (WHERE status = 'FULL_PAYMENT') AS full_count,
				COUNT(*) FILTER (WHERE status = 'PART_PAYMENT') AS part_count,
				COUNT(*) FILTER (WHERE status = 'NON_PAYER') AS non_count,
				SUM(balance) AS outstanding,
				SUM(monthly_fee_amount) AS expected
			FROM latest
			GROUP BY student_id
		),
		collected AS (
			SELECT student_id, SUM(amount_paid) AS total
			FROM payments
			WHERE term = $1 AND academic_year = $2
				AND payment_date BETWEEN $3 AND $4
			GROUP BY student_id
		)
		SELECT
			s.form || ' ' || s.section AS class_name,
			COALESCE(SUM(ps.full_count), 0),
			COALESCE(SUM(ps.part_count), 0),
			COALESCE(SUM(ps.non_count), 0),
			COALESCE(SUM(c.total), 0),
			COALESCE(SUM(ps.outstanding), 0),
			COALESCE(SUM(ps.expected), 0)
		FROM students s
		JOIN per_student ps ON ps.student_id = s.student_id
		LEFT JOIN collected c ON c.student_id = s.student_id
		GROUP BY class_name
		ORDER BY class_name
	`

	rows, err := r.Pool.Query(ctx, query, term, academicYear, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying class financial data: %w", err)
	}
	defer rows.Close()

	var result []domain.ClassFinancialSummary
	for rows.Next() {
		var row domain.ClassFinancialSummary
		if err := rows.Scan(
			&row.ClassName,
			&row.FullPayers,
			&row.PartPayers,
			&row.NonPayers,
			&row.TotalCollected,
			&row.TotalOutstanding,
			&row.ExpectedRevenue,
		); err != nil {
			return nil, fmt.Errorf("error scanning class financial row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating class financial rows: %w", err)
	}

	if len(result) == 0 {
		// Return empty slice instead of nil
		return []domain.ClassFinancialSummary{}, nil
	}
	return result, nil
}

// GetDailyBreakdownData returns one summary per day with activity in [from, to].
func (r *reportingRepository) GetDailyBreakdownData(ctx context.Context, from, to time.Time) ([]domain.DailyPaymentSummary, error) {
	query := `
		SELECT payment_date, SUM(amount_paid), COUNT(*)
		FROM payments
		WHERE payment_date BETWEEN $1 AND $2
		GROUP BY payment_date
		ORDER BY payment_date
	`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying daily breakdown data: %w", err)
	}
	defer rows.Close()

	var result []domain.DailyPaymentSummary
	for rows.Next() {
		var row domain.DailyPaymentSummary
		if err := rows.Scan(&row.Date, &row.TotalAmount, &row.TotalTransactions); err != nil {
			return nil, fmt.Errorf("error scanning daily breakdown row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily breakdown rows: %w", err)
	}

	if len(result) == 0 {
		return []domain.DailyPaymentSummary{}, nil
	}
	return result, nil
}

// GetStudentPaymentHistoryData returns the full payment history per student in
// date order with running totals. TotalBalance sums the latest-row balance per
// billing key, since that row is the current truth for the obligation.
func (r *reportingRepository) GetStudentPaymentHistoryData(ctx context.Context, studentID *int64) ([]domain.StudentPaymentHistory, error) {
	query := `
		SELECT p.payment_id, p.student_id, p.term, p.month, p.academic_year,
			p.monthly_fee_amount, p.amount_paid, p.balance, p.status,
			p.payment_date, p.created_at, p.recorded_by,
			s.first_name || ' ' || s.last_name AS student_name,
			s.form || ' ' || s.section AS class_name
		FROM payments p
		JOIN students s ON s.student_id = p.student_id
		WHERE ($1::BIGINT IS NULL OR p.student_id = $1)
		ORDER BY p.student_id, p.payment_date, p.payment_id
	`

	rows, err := r.Pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error querying student payment history: %w", err)
	}
	defer rows.Close()

	var result []domain.StudentPaymentHistory
	var current *domain.StudentPaymentHistory
	latestPerKey := map[domain.PaymentKey]decimal.Decimal{}

	flush := func() {
		if current == nil {
			return
		}
		for _, balance := range latestPerKey {
			current.TotalBalance = current.TotalBalance.Add(balance)
		}
		result = append(result, *current)
		current = nil
		latestPerKey = map[domain.PaymentKey]decimal.Decimal{}
	}

	for rows.Next() {
		var m models.Payment
		var studentName, className string
		if err := rows.Scan(
			&m.PaymentID, &m.StudentID, &m.Term, &m.Month, &m.AcademicYear,
			&m.MonthlyFeeAmount, &m.AmountPaid, &m.Balance, &m.Status,
			&m.PaymentDate, &m.CreatedAt, &m.RecordedBy,
			&studentName, &className,
		); err != nil {
			return nil, fmt.Errorf("error scanning student payment history row: %w", err)
		}

		payment := mapping.ToDomainPayment(m)
		if current == nil || current.StudentID != payment.StudentID {
			flush()
			current = &domain.StudentPaymentHistory{
				StudentID:    payment.StudentID,
				StudentName:  studentName,
				ClassName:    className,
				Payments:     []domain.Payment{},
				TotalPaid:    decimal.Zero,
				TotalBalance: decimal.Zero,
			}
		}
		current.Payments = append(current.Payments, payment)
		current.TotalPaid = current.TotalPaid.Add(payment.AmountPaid)
		// Rows arrive in insertion order per key, so the last one seen wins.
		latestPerKey[payment.Key()] = payment.Balance
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student payment history rows: %w", err)
	}
	flush()

	if len(result) == 0 {
		return []domain.StudentPaymentHistory{}, nil
	}
	return result, nil
}

// GetClassComparisonData returns per-class student counts and collected and
// outstanding totals for an academic year. Rates and averages are derived by
// the service layer.
func (r *reportingRepository) GetClassComparisonData(ctx context.Context, academicYear string) ([]domain.ClassComparison, error) {
	query := `
		WITH latest AS (
			SELECT DISTINCT ON (student_id, term, month)
				student_id, term, month, balance
			FROM payments
			WHERE academic_year = $1
			ORDER BY student_id, term, month, payment_id DESC
		),
		per_student AS (
			SELECT student_id, SUM(balance) AS outstanding
			FROM latest
			GROUP BY student_id
		),
		collected AS (
			SELECT student_id, SUM(amount_paid) AS total
			FROM payments
			WHERE academic_year = $1
			GROUP BY student_id
		)
		SELECT
			s.form || ' ' || s.section AS class_name,
			COUNT(DISTINCT s.student_id),
			COALESCE(SUM(c.total), 0),
			COALESCE(SUM(ps.outstanding), 0)
		FROM students s
		LEFT JOIN per_student ps ON ps.student_id = s.student_id
		LEFT JOIN collected c ON c.student_id = s.student_id
		GROUP BY class_name
		ORDER BY class_name
	`

	rows, err := r.Pool.Query(ctx, query, academicYear)
	if err != nil {
		return nil, fmt.Errorf("error querying class comparison data: %w", err)
	}
	defer rows.Close()

	var result []domain.ClassComparison
	for rows.Next() {
		var row domain.ClassComparison
		if err := rows.Scan(
			&row.ClassName,
			&row.TotalStudents,
			&row.TotalCollected,
			&row.TotalOutstanding,
		); err != nil {
			return nil, fmt.Errorf("error scanning class comparison row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating class comparison rows: %w", err)
	}

	if len(result) == 0 {
		return []domain.ClassComparison{}, nil
	}
	return result, nil
}

// GetOutstandingPaymentsData returns the latest row per billing key with a
// balance still owing, joined with student identity.
func (r *reportingRepository) GetOutstandingPaymentsData(ctx context.Context, term, academicYear string) ([]domain.PaymentWithStudent, error) {
	query := `
		WITH latest AS (
			SELECT DISTINCT ON (student_id, term, month, academic_year)
				payment_id, student_id, term, month, academic_year,
				monthly_fee_amount, amount_paid, balance, status,
				payment_date, created_at, recorded_by
			FROM payments
			WHERE term = $1 AND academic_year = $2
			ORDER BY student_id, term, month, academic_year, payment_id DESC
		)
		SELECT l.payment_id, l.student_id, l.term, l.month, l.academic_year,
			l.monthly_fee_amount, l.amount_paid, l.balance, l.status,
			l.payment_date, l.created_at, l.recorded_by,
			s.first_name || ' ' || s.last_name AS student_name,
			s.form || ' ' || s.section AS class_name
		FROM latest l
		JOIN students s ON s.student_id = l.student_id
		WHERE l.balance > 0
		ORDER BY class_name, student_name, l.month
	`

	return r.queryPaymentsWithStudents(ctx, query, term, academicYear)
}

// GetAllPaymentsData returns every payment row for the scope joined with
// student identity, ordered for spreadsheet export.
func (r *reportingRepository) GetAllPaymentsData(ctx context.Context, term, academicYear string) ([]domain.PaymentWithStudent, error) {
	query := `
		SELECT p.payment_id, p.student_id, p.term, p.month, p.academic_year,
			p.monthly_fee_amount, p.amount_paid, p.balance, p.status,
			p.payment_date, p.created_at, p.recorded_by,
			s.first_name || ' ' || s.last_name AS student_name,
			s.form || ' ' || s.section AS class_name
		FROM payments p
		JOIN students s ON s.student_id = p.student_id
		WHERE p.term = $1 AND p.academic_year = $2
		ORDER BY p.payment_date, p.payment_id
	`

	return r.queryPaymentsWithStudents(ctx, query, term, academicYear)
}

// queryPaymentsWithStudents runs a query returning payment columns plus
// student_name and class_name and scans the joined rows.
func (r *reportingRepository) queryPaymentsWithStudents(ctx context.Context, query string, args ...any) ([]domain.PaymentWithStudent, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying joined payments: %w", err)
	}
	defer rows.Close()

	var result []domain.PaymentWithStudent
	for rows.Next() {
		var m models.Payment
		var studentName, className string
		if err := rows.Scan(
			&m.PaymentID, &m.StudentID, &m.Term, &m.Month, &m.AcademicYear,
			&m.MonthlyFeeAmount, &m.AmountPaid, &m.Balance, &m.Status,
			&m.PaymentDate, &m.CreatedAt, &m.RecordedBy,
			&studentName, &className,
		); err != nil {
			return nil, fmt.Errorf("error scanning joined payment row: %w", err)
		}
		result = append(result, domain.PaymentWithStudent{
			Payment:     mapping.ToDomainPayment(m),
			StudentName: studentName,
			ClassName:   className,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating joined payment rows: %w", err)
	}

	if len(result) == 0 {
		return []domain.PaymentWithStudent{}, nil
	}
	return result, nil
}
