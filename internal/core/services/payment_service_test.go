package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/mubiru-dev/school-fees-api/internal/apperrors"
	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	portssvc "github.com/mubiru-dev/school-fees-api/internal/core/ports/services"
	"github.com/mubiru-dev/school-fees-api/internal/core/services"
	"github.com/mubiru-dev/school-fees-api/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockAuditRepo   *MockAuditRepository
	mockStudentRepo *MockStudentRepository
	mockFeeSchedule *MockFeeScheduleSvc
	service         portssvc.PaymentSvcFacade
}

// MockFeeScheduleSvc mocks the fee schedule facade the payment service consults.
type MockFeeScheduleSvc struct {
	mock.Mock
}

func (m *MockFeeScheduleSvc) LookupFee(ctx context.Context, level domain.AcademicLevel, academicYear, term string) (decimal.Decimal, error) {
	args := m.Called(ctx, level, academicYear, term)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockFeeScheduleSvc) UpsertFeeSetting(ctx context.Context, req dto.UpsertFeeSettingRequest, userID string) (*domain.FeeSetting, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeSetting), args.Error(1)
}

func (m *MockFeeScheduleSvc) GetFeeSetting(ctx context.Context, feeSettingID string) (*domain.FeeSetting, error) {
	args := m.Called(ctx, feeSettingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeSetting), args.Error(1)
}

func (m *MockFeeScheduleSvc) ListFeeSettings(ctx context.Context) ([]domain.FeeSetting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeeSetting), args.Error(1)
}

func (m *MockFeeScheduleSvc) DeleteFeeSetting(ctx context.Context, feeSettingID string, userID string) error {
	args := m.Called(ctx, feeSettingID, userID)
	return args.Error(0)
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.mockStudentRepo = new(MockStudentRepository)
	suite.mockFeeSchedule = new(MockFeeScheduleSvc)
	suite.service = services.NewPaymentService(suite.mockPaymentRepo, suite.mockAuditRepo, suite.mockStudentRepo, suite.mockFeeSchedule)
}

func (suite *PaymentServiceTestSuite) testStudent() *domain.Student {
	return &domain.Student{
		StudentID: 42,
		FirstName: "Amina",
		LastName:  "Nakato",
		Level:     domain.OLevel,
		Form:      "S3",
		Section:   "A",
	}
}

func (suite *PaymentServiceTestSuite) recordRequest(amount string) dto.RecordPaymentRequest {
	return dto.RecordPaymentRequest{
		StudentID:    42,
		Term:         "Term 1",
		Month:        "February",
		AcademicYear: "2025",
		AmountPaid:   dec(amount),
		PaymentDate:  "2025-02-10",
	}
}

// --- Test Cases ---

func (suite *PaymentServiceTestSuite) TestRecordPayment_PartialThenFull() {
	ctx := context.Background()
	userID := "bursar-1"
	fee := dec("100")

	suite.mockStudentRepo.On("FindStudentByID", ctx, int64(42)).Return(suite.testStudent(), nil).Twice()
	suite.mockFeeSchedule.On("LookupFee", ctx, domain.OLevel, "2025", "Term 1").Return(fee, nil).Twice()

	// First payment of 60 against a fee of 100 leaves 40 owing.
	suite.mockPaymentRepo.On("CreatePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.AmountPaid.Equal(dec("60")) && p.MonthlyFeeAmount.Equal(fee)
	})).Return(&domain.Payment{
		PaymentID:        1,
		StudentID:        42,
		Term:             "Term 1",
		Month:            "February",
		AcademicYear:     "2025",
		MonthlyFeeAmount: fee,
		AmountPaid:       dec("60"),
		Balance:          dec("40"),
		Status:           domain.PartPayment,
		PaymentDate:      time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
	}, nil).Once()
	suite.mockAuditRepo.On("AppendAuditLog", ctx, mock.MatchedBy(func(e domain.AuditLogEntry) bool {
		return e.Action == domain.ActionRecordPayment && e.PaymentID != nil && *e.PaymentID == 1
	})).Return(&domain.AuditLogEntry{AuditID: 10}, nil).Once()

	receipt, err := suite.service.RecordPayment(ctx, suite.recordRequest("60"), userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(receipt)
	suite.True(receipt.Balance.Equal(dec("40")))
	suite.Equal(domain.PartPayment, receipt.Status)
	suite.Equal("Amina Nakato", receipt.StudentName)
	suite.Equal("S3 A", receipt.ClassName)

	// Second payment of 40 clears the obligation.
	suite.mockPaymentRepo.On("CreatePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.AmountPaid.Equal(dec("40"))
	})).Return(&domain.Payment{
		PaymentID:        2,
		StudentID:        42,
		Term:             "Term 1",
		Month:            "February",
		AcademicYear:     "2025",
		MonthlyFeeAmount: fee,
		AmountPaid:       dec("40"),
		Balance:          dec("0"),
		Status:           domain.FullPayment,
		PaymentDate:      time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
	}, nil).Once()
	suite.mockAuditRepo.On("AppendAuditLog", ctx, mock.MatchedBy(func(e domain.AuditLogEntry) bool {
		return e.Action == domain.ActionRecordPayment && e.PaymentID != nil && *e.PaymentID == 2
	})).Return(&domain.AuditLogEntry{AuditID: 11}, nil).Once()

	receipt, err = suite.service.RecordPayment(ctx, suite.recordRequest("40"), userID)

	suite.Require().NoError(err)
	suite.True(receipt.Balance.IsZero())
	suite.Equal(domain.FullPayment, receipt.Status)

	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_NonPositiveAmount() {
	ctx := context.Background()

	req := suite.recordRequest("0")
	receipt, err := suite.service.RecordPayment(ctx, req, "bursar-1")

	suite.Require().Error(err)
	suite.Nil(receipt)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "CreatePayment", mock.Anything, mock.Anything)

	req.AmountPaid = dec("-5")
	receipt, err = suite.service.RecordPayment(ctx, req, "bursar-1")
	suite.Require().Error(err)
	suite.Nil(receipt)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_BadPaymentDate() {
	ctx := context.Background()

	req := suite.recordRequest("60")
	req.PaymentDate = "10/02/2025"

	receipt, err := suite.service.RecordPayment(ctx, req, "bursar-1")

	suite.Require().Error(err)
	suite.Nil(receipt)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_StudentNotFound() {
	ctx := context.Background()

	suite.mockStudentRepo.On("FindStudentByID", ctx, int64(42)).Return(nil, apperrors.ErrNotFound).Once()

	receipt, err := suite.service.RecordPayment(ctx, suite.recordRequest("60"), "bursar-1")

	suite.Require().Error(err)
	suite.Nil(receipt)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockStudentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_ScheduleNotConfigured() {
	ctx := context.Background()

	suite.mockStudentRepo.On("FindStudentByID", ctx, int64(42)).Return(suite.testStudent(), nil).Once()
	suite.mockFeeSchedule.On("LookupFee", ctx, domain.OLevel, "2025", "Term 1").
		Return(dec("0"), apperrors.ErrScheduleNotConfigured).Once()

	receipt, err := suite.service.RecordPayment(ctx, suite.recordRequest("60"), "bursar-1")

	suite.Require().Error(err)
	suite.Nil(receipt)
	suite.ErrorIs(err, apperrors.ErrScheduleNotConfigured)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "CreatePayment", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_AuditFailureSurfacesLoudly() {
	ctx := context.Background()
	fee := dec("100")

	suite.mockStudentRepo.On("FindStudentByID", ctx, int64(42)).Return(suite.testStudent(), nil).Once()
	suite.mockFeeSchedule.On("LookupFee", ctx, domain.OLevel, "2025", "Term 1").Return(fee, nil).Once()
	suite.mockPaymentRepo.On("CreatePayment", ctx, mock.AnythingOfType("domain.Payment")).Return(&domain.Payment{
		PaymentID:        7,
		StudentID:        42,
		MonthlyFeeAmount: fee,
		AmountPaid:       dec("60"),
		Balance:          dec("40"),
		Status:           domain.PartPayment,
	}, nil).Once()
	suite.mockAuditRepo.On("AppendAuditLog", ctx, mock.AnythingOfType("domain.AuditLogEntry")).
		Return(nil, assert.AnError).Once()

	receipt, err := suite.service.RecordPayment(ctx, suite.recordRequest("60"), "bursar-1")

	// The payment row stays committed; only the audit failure propagates.
	suite.Require().Error(err)
	suite.Nil(receipt)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(500, appErr.Code)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestGetCurrentStatus_LatestRowWins() {
	ctx := context.Background()
	key := domain.PaymentKey{StudentID: 42, Term: "Term 1", Month: "February", AcademicYear: "2025"}

	suite.mockPaymentRepo.On("FindLatestPaymentForKey", ctx, key).Return(&domain.Payment{
		PaymentID: 9,
		Balance:   dec("40"),
		Status:    domain.PartPayment,
	}, nil).Once()

	snapshot, err := suite.service.GetCurrentStatus(ctx, key)

	suite.Require().NoError(err)
	suite.True(snapshot.Balance.Equal(dec("40")))
	suite.Equal(domain.PartPayment, snapshot.Status)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestGetCurrentStatus_NoRowsMeansNonPayer() {
	ctx := context.Background()
	key := domain.PaymentKey{StudentID: 42, Term: "Term 1", Month: "March", AcademicYear: "2025"}

	suite.mockPaymentRepo.On("FindLatestPaymentForKey", ctx, key).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockStudentRepo.On("FindStudentByID", ctx, int64(42)).Return(suite.testStudent(), nil).Once()
	suite.mockFeeSchedule.On("LookupFee", ctx, domain.OLevel, "2025", "Term 1").Return(dec("100"), nil).Once()

	snapshot, err := suite.service.GetCurrentStatus(ctx, key)

	suite.Require().NoError(err)
	suite.Equal(domain.NonPayer, snapshot.Status)
	suite.True(snapshot.Balance.Equal(dec("100")))
}

func (suite *PaymentServiceTestSuite) TestClassStatusSummary_StableBucketOrder() {
	ctx := context.Background()

	suite.mockPaymentRepo.On("GetClassStatusData", ctx, "S3", "A", "Term 1", "February", "2025").
		Return([]domain.StudentPaymentStatus{
			{StudentID: 1, StudentName: "Amina Nakato", Status: domain.PartPayment, AmountPaid: dec("60"), Balance: dec("40")},
			{StudentID: 2, StudentName: "John Okello", Status: domain.NonPayer, AmountPaid: dec("0"), Balance: dec("100")},
		}, nil).Once()

	groups, err := suite.service.ClassStatusSummary(ctx, "S3", "A", "Term 1", "February", "2025")

	suite.Require().NoError(err)
	suite.Require().Len(groups, 3)
	suite.Equal(domain.FullPayment, groups[0].Status)
	suite.Equal(domain.PartPayment, groups[1].Status)
	suite.Equal(domain.NonPayer, groups[2].Status)
	suite.Empty(groups[0].Students)
	suite.NotNil(groups[0].Students)
	suite.Len(groups[1].Students, 1)
	suite.Len(groups[2].Students, 1)
}

func (suite *PaymentServiceTestSuite) TestRepairStatuses_FixesDriftedRows() {
	ctx := context.Background()
	fee := dec("100")

	// Row 2's stored derived fields disagree with the cumulative fold:
	// after 60 + 40 the balance must be 0 and the status FULL_PAYMENT.
	rows := []domain.Payment{
		{PaymentID: 1, StudentID: 42, Term: "Term 1", Month: "February", AcademicYear: "2025",
			MonthlyFeeAmount: fee, AmountPaid: dec("60"), Balance: dec("40"), Status: domain.PartPayment},
		{PaymentID: 2, StudentID: 42, Term: "Term 1", Month: "February", AcademicYear: "2025",
			MonthlyFeeAmount: fee, AmountPaid: dec("40"), Balance: dec("40"), Status: domain.PartPayment},
	}

	suite.mockPaymentRepo.On("ListPaymentsForRepair", ctx).Return(rows, nil).Once()
	suite.mockPaymentRepo.On("ApplyCorrections", ctx, mock.MatchedBy(func(cs []domain.PaymentCorrection) bool {
		return len(cs) == 1 && cs[0].PaymentID == 2 && cs[0].Balance.IsZero() && cs[0].Status == domain.FullPayment
	})).Return(int64(1), nil).Once()
	suite.mockAuditRepo.On("AppendAuditLog", ctx, mock.MatchedBy(func(e domain.AuditLogEntry) bool {
		return e.Action == domain.ActionStatusRepair
	})).Return(&domain.AuditLogEntry{AuditID: 20}, nil).Once()

	summary, err := suite.service.RepairStatuses(ctx, "admin-1")

	suite.Require().NoError(err)
	suite.Equal("Repaired 1 of 2 payment rows.", summary)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRepairStatuses_Idempotent() {
	ctx := context.Background()
	fee := dec("100")

	// Already-consistent ledger: the repair scans but rewrites nothing.
	rows := []domain.Payment{
		{PaymentID: 1, StudentID: 42, Term: "Term 1", Month: "February", AcademicYear: "2025",
			MonthlyFeeAmount: fee, AmountPaid: dec("60"), Balance: dec("40"), Status: domain.PartPayment},
		{PaymentID: 2, StudentID: 42, Term: "Term 1", Month: "February", AcademicYear: "2025",
			MonthlyFeeAmount: fee, AmountPaid: dec("40"), Balance: dec("0"), Status: domain.FullPayment},
	}

	suite.mockPaymentRepo.On("ListPaymentsForRepair", ctx).Return(rows, nil).Once()
	suite.mockAuditRepo.On("AppendAuditLog", ctx, mock.AnythingOfType("domain.AuditLogEntry")).
		Return(&domain.AuditLogEntry{AuditID: 21}, nil).Once()

	summary, err := suite.service.RepairStatuses(ctx, "admin-1")

	suite.Require().NoError(err)
	suite.Equal("Repaired 0 of 2 payment rows.", summary)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "ApplyCorrections", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestSearchStudents_EmptyQuery() {
	ctx := context.Background()

	students, err := suite.service.SearchStudents(ctx, "")

	suite.Require().NoError(err)
	suite.Empty(students)
	suite.NotNil(students)
	suite.mockStudentRepo.AssertNotCalled(suite.T(), "SearchStudents", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestSearchStudents_DelegatesWithLimit() {
	ctx := context.Background()
	expected := []domain.Student{*suite.testStudent()}

	suite.mockStudentRepo.On("SearchStudents", ctx, "Nakato", 20).Return(expected, nil).Once()

	students, err := suite.service.SearchStudents(ctx, "Nakato")

	suite.Require().NoError(err)
	suite.Equal(expected, students)
	suite.mockStudentRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
