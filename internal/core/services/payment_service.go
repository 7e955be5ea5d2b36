package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mubiru-dev/school-fees-api/internal/apperrors"
	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	portsrepo "github.com/mubiru-dev/school-fees-api/internal/core/ports/repositories"
	portssvc "github.com/mubiru-dev/school-fees-api/internal/core/ports/services"
	"github.com/mubiru-dev/school-fees-api/internal/dto"
	"github.com/shopspring/decimal"
)

const studentSearchLimit = 20

// paymentService implements the PaymentSvcFacade interface. It exclusively owns
// write access to the payment ledger and the audit log.
type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentRepository
	auditRepo   portsrepo.AuditRepository
	studentRepo portsrepo.StudentRepository
	feeSchedule portssvc.FeeScheduleSvcFacade
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepository,
	auditRepo portsrepo.AuditRepository,
	studentRepo portsrepo.StudentRepository,
	feeSchedule portssvc.FeeScheduleSvcFacade,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo: paymentRepo,
		auditRepo:   auditRepo,
		studentRepo: studentRepo,
		feeSchedule: feeSchedule,
	}
}

// Ensure paymentService implements the PaymentSvcFacade interface
var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// RecordPayment validates the request, snapshots the scheduled fee, appends a
// ledger row with derived balance/status and writes a RECORD_PAYMENT audit entry.
// The repository serializes concurrent writers on the same billing key, so the
// cumulative amount the derivation sees always reflects every committed row.
func (s *paymentService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.PaymentReceipt, error) {
	if req.AmountPaid.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount paid must be positive", apperrors.ErrValidation)
	}

	paymentDate, err := req.ParsePaymentDate()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid payment date %q, use YYYY-MM-DD", apperrors.ErrValidation, req.PaymentDate)
	}

	student, err := s.studentRepo.FindStudentByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: student %d", apperrors.ErrNotFound, req.StudentID)
		}
		return nil, fmt.Errorf("failed to resolve student %d: %w", req.StudentID, err)
	}

	// Snapshot the scheduled fee now; the stored row never re-joins the schedule,
	// so later fee changes cannot rewrite history.
	monthlyFee, err := s.feeSchedule.LookupFee(ctx, student.Level, req.AcademicYear, req.Term)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		StudentID:        req.StudentID,
		Term:             req.Term,
		Month:            req.Month,
		AcademicYear:     req.AcademicYear,
		MonthlyFeeAmount: monthlyFee,
		AmountPaid:       req.AmountPaid,
		PaymentDate:      paymentDate,
		CreatedAt:        now,
		RecordedBy:       userID,
	}

	saved, err := s.paymentRepo.CreatePayment(ctx, payment)
	if err != nil {
		s.LogError(ctx, err, "Failed to record payment",
			slog.Int64("student_id", req.StudentID),
			slog.String("term", req.Term),
			slog.String("month", req.Month))
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	// The payment row is committed; an audit failure leaves the ledger ahead of the
	// audit trail. The receipt may already be promised to the payer, so the row is
	// not rolled back. Surface the failure loudly for manual reconciliation.
	amount := saved.AmountPaid
	if _, err := s.auditRepo.AppendAuditLog(ctx, domain.AuditLogEntry{
		Action: domain.ActionRecordPayment,
		Description: fmt.Sprintf("Payment of %s recorded for student %d (%s %s %s), balance %s",
			saved.AmountPaid, saved.StudentID, saved.Term, saved.Month, saved.AcademicYear, saved.Balance),
		PerformedBy: userID,
		Timestamp:   now,
		PaymentID:   &saved.PaymentID,
		StudentID:   &saved.StudentID,
		Amount:      &amount,
	}); err != nil {
		s.LogError(ctx, err, "Audit append failed after committed payment; manual reconciliation required",
			slog.Int64("payment_id", saved.PaymentID),
			slog.Int64("student_id", saved.StudentID),
			slog.String("amount", saved.AmountPaid.String()))
		return nil, apperrors.NewAppError(500, "payment recorded but audit log write failed", err)
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.Int64("payment_id", saved.PaymentID),
		slog.Int64("student_id", saved.StudentID),
		slog.String("status", string(saved.Status)),
		slog.String("balance", saved.Balance.String()))

	return &domain.PaymentReceipt{
		PaymentID:        saved.PaymentID,
		StudentID:        student.StudentID,
		StudentName:      student.FullName(),
		ClassName:        student.ClassName(),
		Term:             saved.Term,
		Month:            saved.Month,
		AcademicYear:     saved.AcademicYear,
		MonthlyFeeAmount: saved.MonthlyFeeAmount,
		AmountPaid:       saved.AmountPaid,
		Balance:          saved.Balance,
		Status:           saved.Status,
		PaymentDate:      saved.PaymentDate,
	}, nil
}

// GetCurrentStatus reads the latest row for the key. A key with no rows is a
// NON_PAYER owing the full scheduled fee, which requires resolving the student's
// level against the schedule.
func (s *paymentService) GetCurrentStatus(ctx context.Context, key domain.PaymentKey) (*domain.PaymentStatusSnapshot, error) {
	latest, err := s.paymentRepo.FindLatestPaymentForKey(ctx, key)
	if err == nil {
		return &domain.PaymentStatusSnapshot{Key: key, Balance: latest.Balance, Status: latest.Status}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to read latest payment for key: %w", err)
	}

	student, err := s.studentRepo.FindStudentByID(ctx, key.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve student %d: %w", key.StudentID, err)
	}
	monthlyFee, err := s.feeSchedule.LookupFee(ctx, student.Level, key.AcademicYear, key.Term)
	if err != nil {
		return nil, err
	}

	return &domain.PaymentStatusSnapshot{Key: key, Balance: monthlyFee, Status: domain.NonPayer}, nil
}

// ClassStatusSummary groups the students of one form/section into status buckets
// for a billing period. Buckets are always returned in the same order, including
// empty ones, so the caller can render stable columns.
func (s *paymentService) ClassStatusSummary(ctx context.Context, form, section, term, month, academicYear string) ([]domain.PaymentStatusGroup, error) {
	statuses, err := s.paymentRepo.GetClassStatusData(ctx, form, section, term, month, academicYear)
	if err != nil {
		s.LogError(ctx, err, "Failed to load class status data",
			slog.String("form", form), slog.String("section", section))
		return nil, fmt.Errorf("failed to load class status data: %w", err)
	}

	buckets := map[domain.PaymentStatus][]domain.StudentPaymentStatus{}
	for _, st := range statuses {
		buckets[st.Status] = append(buckets[st.Status], st)
	}

	groups := make([]domain.PaymentStatusGroup, 0, 3)
	for _, status := range []domain.PaymentStatus{domain.FullPayment, domain.PartPayment, domain.NonPayer} {
		students := buckets[status]
		if students == nil {
			students = []domain.StudentPaymentStatus{}
		}
		groups = append(groups, domain.PaymentStatusGroup{Status: status, Students: students})
	}
	return groups, nil
}

// RepairStatuses recomputes every row's derived fields from the ledger itself and
// rewrites only the rows that drifted. Running it twice in a row changes nothing
// the second time: the fold is a pure function of amount_paid history, which the
// repair never touches.
func (s *paymentService) RepairStatuses(ctx context.Context, userID string) (string, error) {
	rows, err := s.paymentRepo.ListPaymentsForRepair(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to snapshot ledger for repair: %w", err)
	}

	var corrections []domain.PaymentCorrection
	cumulative := map[domain.PaymentKey]decimal.Decimal{}
	for _, row := range rows {
		key := row.Key()
		paid := cumulative[key].Add(row.AmountPaid)
		cumulative[key] = paid

		wantBalance := domain.DeriveBalance(row.MonthlyFeeAmount, paid)
		wantStatus := domain.DeriveStatus(row.MonthlyFeeAmount, paid)
		if !row.Balance.Equal(wantBalance) || row.Status != wantStatus {
			corrections = append(corrections, domain.PaymentCorrection{
				PaymentID: row.PaymentID,
				Balance:   wantBalance,
				Status:    wantStatus,
			})
		}
	}

	var fixed int64
	if len(corrections) > 0 {
		fixed, err = s.paymentRepo.ApplyCorrections(ctx, corrections)
		if err != nil {
			return "", fmt.Errorf("failed to apply status corrections: %w", err)
		}
	}

	summary := fmt.Sprintf("Repaired %d of %d payment rows.", fixed, len(rows))

	if _, err := s.auditRepo.AppendAuditLog(ctx, domain.AuditLogEntry{
		Action:      domain.ActionStatusRepair,
		Description: summary,
		PerformedBy: userID,
		Timestamp:   time.Now().UTC(),
	}); err != nil {
		s.LogError(ctx, err, "Audit append failed after status repair; manual reconciliation required",
			slog.Int64("rows_fixed", fixed))
		return "", apperrors.NewAppError(500, "statuses repaired but audit log write failed", err)
	}

	s.LogInfo(ctx, "Status repair completed",
		slog.Int64("rows_fixed", fixed),
		slog.Int("rows_scanned", len(rows)))
	return summary, nil
}

// SearchStudents proxies the external student directory for the payment UI.
func (s *paymentService) SearchStudents(ctx context.Context, query string) ([]domain.Student, error) {
	if query == "" {
		return []domain.Student{}, nil
	}
	students, err := s.studentRepo.SearchStudents(ctx, query, studentSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search students: %w", err)
	}
	return students, nil
}
