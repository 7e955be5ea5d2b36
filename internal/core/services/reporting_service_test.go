package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	portssvc "github.com/mubiru-dev/school-fees-api/internal/core/ports/services"
	"github.com/mubiru-dev/school-fees-api/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockReportingRepository
	mockAuditRepo *MockAuditRepository
	service       portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.service = services.NewReportingService(suite.mockRepo, suite.mockAuditRepo)
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestFinancialReport_ComposesTotals() {
	ctx := context.Background()
	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)

	classes := []domain.ClassFinancialSummary{
		{ClassName: "S3 A", TotalCollected: dec("500"), TotalOutstanding: dec("300"), ExpectedRevenue: dec("800")},
		{ClassName: "S3 B", TotalCollected: dec("200"), TotalOutstanding: dec("600"), ExpectedRevenue: dec("800")},
	}
	breakdown := []domain.DailyPaymentSummary{
		{Date: from, TotalAmount: dec("700"), TotalTransactions: 7},
	}

	suite.mockRepo.On("GetClassFinancialData", ctx, "Term 1", "2025", from, to).Return(classes, nil).Once()
	suite.mockRepo.On("GetDailyBreakdownData", ctx, from, to).Return(breakdown, nil).Once()

	report, err := suite.service.FinancialReport(ctx, "Term 1", "2025", from, to)

	suite.Require().NoError(err)
	suite.True(report.TotalCollected.Equal(dec("700")))
	suite.True(report.TotalOutstanding.Equal(dec("900")))
	suite.True(report.ExpectedRevenue.Equal(dec("1600")))
	suite.Len(report.Classes, 2)
	suite.Len(report.DailyBreakdown, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestFinancialReport_InvertedRangeIsEmptyNotError() {
	ctx := context.Background()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	report, err := suite.service.FinancialReport(ctx, "Term 1", "2025", from, to)

	suite.Require().NoError(err)
	suite.Empty(report.Classes)
	suite.Empty(report.DailyBreakdown)
	suite.True(report.TotalCollected.IsZero())
	suite.mockRepo.AssertNotCalled(suite.T(), "GetClassFinancialData",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestFinancialReport_UnknownScopeIsEmpty() {
	ctx := context.Background()
	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("GetClassFinancialData", ctx, "Term 9", "1999", from, to).
		Return([]domain.ClassFinancialSummary{}, nil).Once()
	suite.mockRepo.On("GetDailyBreakdownData", ctx, from, to).
		Return([]domain.DailyPaymentSummary{}, nil).Once()

	report, err := suite.service.FinancialReport(ctx, "Term 9", "1999", from, to)

	suite.Require().NoError(err)
	suite.Empty(report.Classes)
	suite.True(report.TotalCollected.IsZero())
	suite.True(report.ExpectedRevenue.IsZero())
}

func (suite *ReportingServiceTestSuite) TestClassComparison_DerivesRateAndAverage() {
	ctx := context.Background()

	suite.mockRepo.On("GetClassComparisonData", ctx, "2025").Return([]domain.ClassComparison{
		{ClassName: "S3 A", TotalStudents: 4, TotalCollected: dec("750"), TotalOutstanding: dec("250")},
		{ClassName: "S4 B", TotalStudents: 0, TotalCollected: dec("0"), TotalOutstanding: dec("0")},
	}, nil).Once()

	comparisons, err := suite.service.ClassComparison(ctx, "2025")

	suite.Require().NoError(err)
	suite.Require().Len(comparisons, 2)
	suite.True(comparisons[0].CollectionRate.Equal(dec("75")), "rate was %s", comparisons[0].CollectionRate)
	suite.True(comparisons[0].AveragePaymentPerStudent.Equal(dec("187.5")))

	// Zero denominators must not panic or divide by zero.
	suite.True(comparisons[1].CollectionRate.IsZero())
	suite.True(comparisons[1].AveragePaymentPerStudent.IsZero())
}

func (suite *ReportingServiceTestSuite) TestPaymentTrends_MapsBreakdown() {
	ctx := context.Background()
	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("GetDailyBreakdownData", ctx, from, to).Return([]domain.DailyPaymentSummary{
		{Date: from, TotalAmount: dec("100"), TotalTransactions: 2},
		{Date: from.AddDate(0, 0, 2), TotalAmount: dec("50"), TotalTransactions: 1},
	}, nil).Once()

	points, err := suite.service.PaymentTrends(ctx, from, to)

	suite.Require().NoError(err)
	suite.Require().Len(points, 2)
	suite.True(points[0].TotalAmount.Equal(dec("100")))
	suite.Equal(int64(2), points[0].TransactionCount)
}

func (suite *ReportingServiceTestSuite) TestPaymentTrends_InvertedRange() {
	ctx := context.Background()

	points, err := suite.service.PaymentTrends(ctx,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.Empty(points)
	suite.NotNil(points)
}

func (suite *ReportingServiceTestSuite) TestOutstandingPayments_Delegates() {
	ctx := context.Background()
	expected := []domain.PaymentWithStudent{
		{Payment: domain.Payment{PaymentID: 1, Balance: dec("40"), Status: domain.PartPayment}, StudentName: "Amina Nakato", ClassName: "S3 A"},
	}

	suite.mockRepo.On("GetOutstandingPaymentsData", ctx, "Term 1", "2025").Return(expected, nil).Once()

	payments, err := suite.service.OutstandingPayments(ctx, "Term 1", "2025")

	suite.Require().NoError(err)
	suite.Equal(expected, payments)
}

func (suite *ReportingServiceTestSuite) TestDailySummary_RepoError() {
	ctx := context.Background()
	date := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("GetDailySummaryData", ctx, date).Return(nil, assert.AnError).Once()

	summary, err := suite.service.DailySummary(ctx, date)

	suite.Require().Error(err)
	suite.Nil(summary)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *ReportingServiceTestSuite) TestAuditLogs_PagesThrough() {
	ctx := context.Background()
	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	next := "token-2"

	suite.mockAuditRepo.On("QueryAuditLogs", ctx, from, to, 50, (*string)(nil)).
		Return([]domain.AuditLogEntry{{AuditID: 1, Action: domain.ActionRecordPayment}}, &next, nil).Once()

	entries, token, err := suite.service.AuditLogs(ctx, from, to, 50, nil)

	suite.Require().NoError(err)
	suite.Len(entries, 1)
	suite.Require().NotNil(token)
	suite.Equal("token-2", *token)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
