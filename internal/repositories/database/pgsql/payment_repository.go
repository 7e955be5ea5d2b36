package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mubiru-dev/school-fees-api/internal/apperrors"
	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	portsrepo "github.com/mubiru-dev/school-fees-api/internal/core/ports/repositories"
	"github.com/mubiru-dev/school-fees-api/internal/models"
	"github.com/mubiru-dev/school-fees-api/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const paymentColumns = `payment_id, student_id, term, month, academic_year, monthly_fee_amount, amount_paid, balance, status, payment_date, created_at, recorded_by`

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for the payment ledger.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepository {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PaymentRepository = (*PgxPaymentRepository)(nil)

// lockKey serializes same-key writers. hashtext collisions only cost extra
// serialization, never correctness.
func lockKey(key domain.PaymentKey) string {
	return fmt.Sprintf("fee_payment:%d|%s|%s|%s", key.StudentID, key.Term, key.Month, key.AcademicYear)
}

// CreatePayment appends one ledger row. The advisory lock, the cumulative sum
// and the insert all happen inside one transaction, so concurrent payments on
// the same billing key derive from a consistent cumulative amount.
func (r *PgxPaymentRepository) CreatePayment(ctx context.Context, payment domain.Payment) (*domain.Payment, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	key := payment.Key()
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey(key)); err != nil {
		return nil, fmt.Errorf("failed to acquire payment key lock: %w", err)
	}

	var priorPaid decimal.Decimal
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount_paid), 0)
		FROM payments
		WHERE student_id = $1 AND term = $2 AND month = $3 AND academic_year = $4;
	`, key.StudentID, key.Term, key.Month, key.AcademicYear).Scan(&priorPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to sum prior payments for key: %w", err)
	}

	cumulative := priorPaid.Add(payment.AmountPaid)
	payment.Balance = domain.DeriveBalance(payment.MonthlyFeeAmount, cumulative)
	payment.Status = domain.DeriveStatus(payment.MonthlyFeeAmount, cumulative)

	modelPayment := mapping.ToModelPayment(payment)
	err = tx.QueryRow(ctx, `
		INSERT INTO payments (student_id, term, month, academic_year, monthly_fee_amount, amount_paid, balance, status, payment_date, created_at, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING payment_id;
	`,
		modelPayment.StudentID,
		modelPayment.Term,
		modelPayment.Month,
		modelPayment.AcademicYear,
		modelPayment.MonthlyFeeAmount,
		modelPayment.AmountPaid,
		modelPayment.Balance,
		modelPayment.Status,
		modelPayment.PaymentDate,
		modelPayment.CreatedAt,
		modelPayment.RecordedBy,
	).Scan(&payment.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &payment, nil
}

// FindLatestPaymentForKey returns the row with the greatest payment_id for the
// key. payment_id is a BIGSERIAL, so greatest id equals latest insertion.
func (r *PgxPaymentRepository) FindLatestPaymentForKey(ctx context.Context, key domain.PaymentKey) (*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE student_id = $1 AND term = $2 AND month = $3 AND academic_year = $4
		ORDER BY payment_id DESC
		LIMIT 1;
	`
	var m models.Payment
	err := r.Pool.QueryRow(ctx, query, key.StudentID, key.Term, key.Month, key.AcademicYear).Scan(
		&m.PaymentID,
		&m.StudentID,
		&m.Term,
		&m.Month,
		&m.AcademicYear,
		&m.MonthlyFeeAmount,
		&m.AmountPaid,
		&m.Balance,
		&m.Status,
		&m.PaymentDate,
		&m.CreatedAt,
		&m.RecordedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest payment for key: %w", err)
	}

	domainPayment := mapping.ToDomainPayment(m)
	return &domainPayment, nil
}

// ListPaymentsForRepair snapshots the whole ledger ordered by (key, payment_id)
// so a repair pass can fold cumulative amounts in insertion order per key.
func (r *PgxPaymentRepository) ListPaymentsForRepair(ctx context.Context) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		ORDER BY student_id, term, month, academic_year, payment_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for repair: %w", err)
	}
	defer rows.Close()

	modelPayments, err := pgx.CollectRows(rows, scanPayment)
	if err != nil {
		return nil, fmt.Errorf("failed to scan payments for repair: %w", err)
	}

	payments := make([]domain.Payment, len(modelPayments))
	for i, m := range modelPayments {
		payments[i] = mapping.ToDomainPayment(m)
	}
	return payments, nil
}

// ApplyCorrections rewrites only the derived fields of the given rows in one
// transaction. amount_paid and payment_date stay untouched.
func (r *PgxPaymentRepository) ApplyCorrections(ctx context.Context, corrections []domain.PaymentCorrection) (int64, error) {
	if len(corrections) == 0 {
		return 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	batch := &pgx.Batch{}
	for _, c := range corrections {
		batch.Queue(`UPDATE payments SET balance = $1, status = $2 WHERE payment_id = $3;`,
			c.Balance, string(c.Status), c.PaymentID)
	}

	results := tx.SendBatch(ctx, batch)
	var updated int64
	for range corrections {
		tag, err := results.Exec()
		if err != nil {
			_ = results.Close()
			return 0, fmt.Errorf("failed to apply payment correction: %w", err)
		}
		updated += tag.RowsAffected()
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("failed to close correction batch: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return updated, nil
}

// GetClassStatusData returns the current state per student in a form/section for
// one billing period. Students with no ledger rows surface as non-payers owing
// the full scheduled fee for their level.
func (r *PgxPaymentRepository) GetClassStatusData(ctx context.Context, form, section, term, month, academicYear string) ([]domain.StudentPaymentStatus, error) {
	query := `
		WITH latest AS (
			SELECT DISTINCT ON (student_id, term, month, academic_year)
				student_id, amount_paid, balance, status
			FROM payments
			WHERE term = $3 AND month = $4 AND academic_year = $5
			ORDER BY student_id, term, month, academic_year, payment_id DESC
		),
		paid AS (
			SELECT student_id, SUM(amount_paid) AS total_paid
			FROM payments
			WHERE term = $3 AND month = $4 AND academic_year = $5
			GROUP BY student_id
		)
		SELECT s.student_id,
			s.first_name || ' ' || s.last_name AS student_name,
			COALESCE(p.total_paid, 0) AS amount_paid,
			COALESCE(l.balance, fs.amount, 0) AS balance,
			COALESCE(l.status, 'NON_PAYER') AS status
		FROM students s
		LEFT JOIN latest l ON l.student_id = s.student_id
		LEFT JOIN paid p ON p.student_id = s.student_id
		LEFT JOIN fee_settings fs
			ON fs.level = s.level AND fs.academic_year = $5 AND fs.term = $3 AND fs.active
		WHERE s.form = $1 AND s.section = $2
		ORDER BY student_name;
	`
	rows, err := r.Pool.Query(ctx, query, form, section, term, month, academicYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query class status data: %w", err)
	}
	defer rows.Close()

	statuses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.StudentPaymentStatus, error) {
		var st domain.StudentPaymentStatus
		var statusStr string
		err := row.Scan(&st.StudentID, &st.StudentName, &st.AmountPaid, &st.Balance, &statusStr)
		st.Status = domain.PaymentStatus(statusStr)
		return st, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan class status data: %w", err)
	}
	return statuses, nil
}

// scanPayment scans one payments row in paymentColumns order.
func scanPayment(row pgx.CollectableRow) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.StudentID,
		&m.Term,
		&m.Month,
		&m.AcademicYear,
		&m.MonthlyFeeAmount,
		&m.AmountPaid,
		&m.Balance,
		&m.Status,
		&m.PaymentDate,
		&m.CreatedAt,
		&m.RecordedBy,
	)
	return m, err
}
