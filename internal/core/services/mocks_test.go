package services_test

import (
	"context"
	"time"

	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock FeeSettingRepository ---
type MockFeeSettingRepository struct {
	mock.Mock
}

func (m *MockFeeSettingRepository) SaveFeeSetting(ctx context.Context, setting domain.FeeSetting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

func (m *MockFeeSettingRepository) UpdateFeeSetting(ctx context.Context, setting domain.FeeSetting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

func (m *MockFeeSettingRepository) FindActiveFeeSetting(ctx context.Context, level domain.AcademicLevel, academicYear, term string) (*domain.FeeSetting, error) {
	args := m.Called(ctx, level, academicYear, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeSetting), args.Error(1)
}

func (m *MockFeeSettingRepository) FindFeeSettingByID(ctx context.Context, feeSettingID string) (*domain.FeeSetting, error) {
	args := m.Called(ctx, feeSettingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeSetting), args.Error(1)
}

func (m *MockFeeSettingRepository) ListFeeSettings(ctx context.Context) ([]domain.FeeSetting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeeSetting), args.Error(1)
}

func (m *MockFeeSettingRepository) DeactivateFeeSetting(ctx context.Context, feeSettingID string, updatedBy string, at time.Time) error {
	args := m.Called(ctx, feeSettingID, updatedBy, at)
	return args.Error(0)
}

func (m *MockFeeSettingRepository) DeleteFeeSetting(ctx context.Context, feeSettingID string) error {
	args := m.Called(ctx, feeSettingID)
	return args.Error(0)
}

func (m *MockFeeSettingRepository) HasReferencingPayments(ctx context.Context, level domain.AcademicLevel, academicYear, term string) (bool, error) {
	args := m.Called(ctx, level, academicYear, term)
	return args.Bool(0), args.Error(1)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) CreatePayment(ctx context.Context, payment domain.Payment) (*domain.Payment, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindLatestPaymentForKey(ctx context.Context, key domain.PaymentKey) (*domain.Payment, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsForRepair(ctx context.Context) ([]domain.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ApplyCorrections(ctx context.Context, corrections []domain.PaymentCorrection) (int64, error) {
	args := m.Called(ctx, corrections)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) GetClassStatusData(ctx context.Context, form, section, term, month, academicYear string) ([]domain.StudentPaymentStatus, error) {
	args := m.Called(ctx, form, section, term, month, academicYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudentPaymentStatus), args.Error(1)
}

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) AppendAuditLog(ctx context.Context, entry domain.AuditLogEntry) (*domain.AuditLogEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditLogEntry), args.Error(1)
}

func (m *MockAuditRepository) QueryAuditLogs(ctx context.Context, from, to time.Time, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	args := m.Called(ctx, from, to, limit, nextToken)
	var entries []domain.AuditLogEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.AuditLogEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

// --- Mock StudentRepository ---
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) FindStudentByID(ctx context.Context, studentID int64) (*domain.Student, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepository) SearchStudents(ctx context.Context, query string, limit int) ([]domain.Student, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Student), args.Error(1)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetDailySummaryData(ctx context.Context, date time.Time) (*domain.DailyPaymentSummary, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyPaymentSummary), args.Error(1)
}

func (m *MockReportingRepository) GetClassFinancialData(ctx context.Context, term, academicYear string, from, to time.Time) ([]domain.ClassFinancialSummary, error) {
	args := m.Called(ctx, term, academicYear, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClassFinancialSummary), args.Error(1)
}

func (m *MockReportingRepository) GetDailyBreakdownData(ctx context.Context, from, to time.Time) ([]domain.DailyPaymentSummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyPaymentSummary), args.Error(1)
}

func (m *MockReportingRepository) GetStudentPaymentHistoryData(ctx context.Context, studentID *int64) ([]domain.StudentPaymentHistory, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudentPaymentHistory), args.Error(1)
}

func (m *MockReportingRepository) GetClassComparisonData(ctx context.Context, academicYear string) ([]domain.ClassComparison, error) {
	args := m.Called(ctx, academicYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClassComparison), args.Error(1)
}

func (m *MockReportingRepository) GetOutstandingPaymentsData(ctx context.Context, term, academicYear string) ([]domain.PaymentWithStudent, error) {
	args := m.Called(ctx, term, academicYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentWithStudent), args.Error(1)
}

func (m *MockReportingRepository) GetAllPaymentsData(ctx context.Context, term, academicYear string) ([]domain.PaymentWithStudent, error) {
	args := m.Called(ctx, term, academicYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentWithStudent), args.Error(1)
}

// dec is a test shorthand for decimal literals.
func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
