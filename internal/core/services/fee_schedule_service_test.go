package services_test

import (
	"context"
	"testing"

	"github.com/mubiru-dev/school-fees-api/internal/apperrors"
	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	portssvc "github.com/mubiru-dev/school-fees-api/internal/core/ports/services"
	"github.com/mubiru-dev/school-fees-api/internal/core/services"
	"github.com/mubiru-dev/school-fees-api/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type FeeScheduleServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockFeeSettingRepository
	mockAuditRepo *MockAuditRepository
	service       portssvc.FeeScheduleSvcFacade
}

func (suite *FeeScheduleServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockFeeSettingRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.service = services.NewFeeScheduleService(suite.mockRepo, suite.mockAuditRepo)
}

// --- Test Cases ---

func (suite *FeeScheduleServiceTestSuite) TestLookupFee_Success() {
	ctx := context.Background()

	suite.mockRepo.On("FindActiveFeeSetting", ctx, domain.OLevel, "2025", "Term 1").
		Return(&domain.FeeSetting{Amount: dec("150000")}, nil).Once()

	fee, err := suite.service.LookupFee(ctx, domain.OLevel, "2025", "Term 1")

	suite.Require().NoError(err)
	suite.True(fee.Equal(dec("150000")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FeeScheduleServiceTestSuite) TestLookupFee_NotConfigured() {
	ctx := context.Background()

	suite.mockRepo.On("FindActiveFeeSetting", ctx, domain.ALevel, "2025", "Term 2").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.LookupFee(ctx, domain.ALevel, "2025", "Term 2")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrScheduleNotConfigured)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

func (suite *FeeScheduleServiceTestSuite) TestLookupFee_InvalidLevel() {
	ctx := context.Background()

	_, err := suite.service.LookupFee(ctx, domain.AcademicLevel("PRIMARY"), "2025", "Term 1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindActiveFeeSetting", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FeeScheduleServiceTestSuite) TestUpsertFeeSetting_CreateSuccess() {
	ctx := context.Background()
	userID := "admin-1"
	req := dto.UpsertFeeSettingRequest{
		Level:        string(domain.JuniorSecondary),
		Amount:       dec("120000"),
		AcademicYear: "2025",
		Term:         "Term 1",
	}

	suite.mockRepo.On("SaveFeeSetting", ctx, mock.MatchedBy(func(s domain.FeeSetting) bool {
		return s.FeeSettingID != "" && s.Level == domain.JuniorSecondary && s.Amount.Equal(req.Amount) &&
			s.Active && s.CreatedBy == userID
	})).Return(nil).Once()
	suite.mockAuditRepo.On("AppendAuditLog", ctx, mock.MatchedBy(func(e domain.AuditLogEntry) bool {
		return e.Action == domain.ActionUpsertFeeSetting && e.PerformedBy == userID
	})).Return(&domain.AuditLogEntry{AuditID: 1}, nil).Once()

	setting, err := suite.service.UpsertFeeSetting(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(setting)
	suite.NotEmpty(setting.FeeSettingID)
	suite.True(setting.Active)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *FeeScheduleServiceTestSuite) TestUpsertFeeSetting_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.UpsertFeeSettingRequest{
		Level:        string(domain.OLevel),
		Amount:       dec("0"),
		AcademicYear: "2025",
		Term:         "Term 1",
	}

	setting, err := suite.service.UpsertFeeSetting(ctx, req, "admin-1")

	suite.Require().Error(err)
	suite.Nil(setting)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveFeeSetting", mock.Anything, mock.Anything)
}

func (suite *FeeScheduleServiceTestSuite) TestUpsertFeeSetting_UpdatePreservesCreation() {
	ctx := context.Background()
	userID := "admin-2"
	req := dto.UpsertFeeSettingRequest{
		FeeSettingID: "fs-1",
		Level:        string(domain.OLevel),
		Amount:       dec("160000"),
		AcademicYear: "2025",
		Term:         "Term 1",
	}
	existing := &domain.FeeSetting{
		FeeSettingID: "fs-1",
		Level:        domain.OLevel,
		Amount:       dec("150000"),
		AcademicYear: "2025",
		Term:         "Term 1",
		Active:       true,
	}
	existing.CreatedBy = "admin-1"

	suite.mockRepo.On("FindFeeSettingByID", ctx, "fs-1").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateFeeSetting", ctx, mock.MatchedBy(func(s domain.FeeSetting) bool {
		return s.FeeSettingID == "fs-1" && s.Amount.Equal(dec("160000")) &&
			s.CreatedBy == "admin-1" && s.LastUpdatedBy == userID
	})).Return(nil).Once()
	suite.mockAuditRepo.On("AppendAuditLog", ctx, mock.AnythingOfType("domain.AuditLogEntry")).
		Return(&domain.AuditLogEntry{AuditID: 2}, nil).Once()

	setting, err := suite.service.UpsertFeeSetting(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Equal("admin-1", setting.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FeeScheduleServiceTestSuite) TestDeleteFeeSetting_UnreferencedIsDeleted() {
	ctx := context.Background()
	setting := &domain.FeeSetting{
		FeeSettingID: "fs-1",
		Level:        domain.OLevel,
		AcademicYear: "2025",
		Term:         "Term 1",
	}

	suite.mockRepo.On("FindFeeSettingByID", ctx, "fs-1").Return(setting, nil).Once()
	suite.mockRepo.On("HasReferencingPayments", ctx, domain.OLevel, "2025", "Term 1").Return(false, nil).Once()
	suite.mockRepo.On("DeleteFeeSetting", ctx, "fs-1").Return(nil).Once()
	suite.mockAuditRepo.On("AppendAuditLog", ctx, mock.MatchedBy(func(e domain.AuditLogEntry) bool {
		return e.Action == domain.ActionDeleteFeeSetting
	})).Return(&domain.AuditLogEntry{AuditID: 3}, nil).Once()

	err := suite.service.DeleteFeeSetting(ctx, "fs-1", "admin-1")

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateFeeSetting", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FeeScheduleServiceTestSuite) TestDeleteFeeSetting_ReferencedIsDeactivated() {
	ctx := context.Background()
	setting := &domain.FeeSetting{
		FeeSettingID: "fs-2",
		Level:        domain.ALevel,
		AcademicYear: "2025",
		Term:         "Term 2",
	}

	suite.mockRepo.On("FindFeeSettingByID", ctx, "fs-2").Return(setting, nil).Once()
	suite.mockRepo.On("HasReferencingPayments", ctx, domain.ALevel, "2025", "Term 2").Return(true, nil).Once()
	suite.mockRepo.On("DeactivateFeeSetting", ctx, "fs-2", "admin-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAuditRepo.On("AppendAuditLog", ctx, mock.AnythingOfType("domain.AuditLogEntry")).
		Return(&domain.AuditLogEntry{AuditID: 4}, nil).Once()

	err := suite.service.DeleteFeeSetting(ctx, "fs-2", "admin-1")

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteFeeSetting", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FeeScheduleServiceTestSuite) TestDeleteFeeSetting_AuditFailure() {
	ctx := context.Background()
	setting := &domain.FeeSetting{
		FeeSettingID: "fs-3",
		Level:        domain.OLevel,
		AcademicYear: "2025",
		Term:         "Term 1",
	}

	suite.mockRepo.On("FindFeeSettingByID", ctx, "fs-3").Return(setting, nil).Once()
	suite.mockRepo.On("HasReferencingPayments", ctx, domain.OLevel, "2025", "Term 1").Return(false, nil).Once()
	suite.mockRepo.On("DeleteFeeSetting", ctx, "fs-3").Return(nil).Once()
	suite.mockAuditRepo.On("AppendAuditLog", ctx, mock.AnythingOfType("domain.AuditLogEntry")).
		Return(nil, assert.AnError).Once()

	err := suite.service.DeleteFeeSetting(ctx, "fs-3", "admin-1")

	suite.Require().Error(err)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(500, appErr.Code)
}

// --- Run Suite ---
func TestFeeScheduleService(t *testing.T) {
	suite.Run(t, new(FeeScheduleServiceTestSuite))
}
