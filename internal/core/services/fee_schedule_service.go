package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mubiru-dev/school-fees-api/internal/apperrors"
	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	portsrepo "github.com/mubiru-dev/school-fees-api/internal/core/ports/repositories"
	portssvc "github.com/mubiru-dev/school-fees-api/internal/core/ports/services"
	"github.com/mubiru-dev/school-fees-api/internal/dto"
	"github.com/shopspring/decimal"
)

// feeScheduleService implements the FeeScheduleSvcFacade interface
type feeScheduleService struct {
	BaseService
	feeSettingRepo portsrepo.FeeSettingRepository
	auditRepo      portsrepo.AuditRepository
}

// NewFeeScheduleService creates a new fee schedule service
func NewFeeScheduleService(feeSettingRepo portsrepo.FeeSettingRepository, auditRepo portsrepo.AuditRepository) portssvc.FeeScheduleSvcFacade {
	return &feeScheduleService{
		feeSettingRepo: feeSettingRepo,
		auditRepo:      auditRepo,
	}
}

// Ensure feeScheduleService implements the FeeScheduleSvcFacade interface
var _ portssvc.FeeScheduleSvcFacade = (*feeScheduleService)(nil)

// LookupFee resolves the active monthly fee for a (level, academicYear, term)
// triple. A missing setting blocks payment recording, so the distinct
// ErrScheduleNotConfigured sentinel is returned rather than a plain not-found.
func (s *feeScheduleService) LookupFee(ctx context.Context, level domain.AcademicLevel, academicYear, term string) (decimal.Decimal, error) {
	if !level.IsValid() {
		return decimal.Zero, fmt.Errorf("%w: unknown academic level %q", apperrors.ErrValidation, level)
	}

	setting, err := s.feeSettingRepo.FindActiveFeeSetting(ctx, level, academicYear, term)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%w: no active fee setting for level=%s year=%s term=%s",
				apperrors.ErrScheduleNotConfigured, level, academicYear, term)
		}
		return decimal.Zero, fmt.Errorf("failed to look up fee setting: %w", err)
	}

	return setting.Amount, nil
}

// UpsertFeeSetting creates or updates a fee setting. The repository deactivates
// any prior active setting for the same triple inside the same transaction, so
// the single-active invariant holds even under concurrent upserts.
func (s *feeScheduleService) UpsertFeeSetting(ctx context.Context, req dto.UpsertFeeSettingRequest, userID string) (*domain.FeeSetting, error) {
	level := domain.AcademicLevel(req.Level)
	if !level.IsValid() {
		return nil, fmt.Errorf("%w: unknown academic level %q", apperrors.ErrValidation, req.Level)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: fee amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	setting := domain.FeeSetting{
		FeeSettingID: req.FeeSettingID,
		Level:        level,
		Amount:       req.Amount,
		AcademicYear: req.AcademicYear,
		Term:         req.Term,
		Active:       req.IsActive(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if setting.FeeSettingID == "" {
		setting.FeeSettingID = uuid.NewString()
		if err := s.feeSettingRepo.SaveFeeSetting(ctx, setting); err != nil {
			s.LogError(ctx, err, "Failed to create fee setting", slog.String("level", req.Level))
			return nil, fmt.Errorf("failed to create fee setting: %w", err)
		}
	} else {
		existing, err := s.feeSettingRepo.FindFeeSettingByID(ctx, setting.FeeSettingID)
		if err != nil {
			return nil, fmt.Errorf("failed to find fee setting %s: %w", setting.FeeSettingID, err)
		}
		setting.CreatedAt = existing.CreatedAt
		setting.CreatedBy = existing.CreatedBy
		if err := s.feeSettingRepo.UpdateFeeSetting(ctx, setting); err != nil {
			s.LogError(ctx, err, "Failed to update fee setting", slog.String("fee_setting_id", setting.FeeSettingID))
			return nil, fmt.Errorf("failed to update fee setting: %w", err)
		}
	}

	if _, err := s.auditRepo.AppendAuditLog(ctx, domain.AuditLogEntry{
		Action:      domain.ActionUpsertFeeSetting,
		Description: fmt.Sprintf("Fee setting %s: %s %s %s = %s", setting.FeeSettingID, setting.Level, setting.AcademicYear, setting.Term, setting.Amount),
		PerformedBy: userID,
		Timestamp:   now,
	}); err != nil {
		s.LogError(ctx, err, "Audit append failed after fee setting upsert; manual reconciliation required",
			slog.String("fee_setting_id", setting.FeeSettingID))
		return nil, apperrors.NewAppError(500, "fee setting saved but audit log write failed", err)
	}

	s.LogInfo(ctx, "Fee setting upserted",
		slog.String("fee_setting_id", setting.FeeSettingID),
		slog.String("level", string(setting.Level)),
		slog.String("academic_year", setting.AcademicYear),
		slog.String("term", setting.Term))
	return &setting, nil
}

// GetFeeSetting returns one setting by id.
func (s *feeScheduleService) GetFeeSetting(ctx context.Context, feeSettingID string) (*domain.FeeSetting, error) {
	setting, err := s.feeSettingRepo.FindFeeSettingByID(ctx, feeSettingID)
	if err != nil {
		return nil, fmt.Errorf("failed to find fee setting %s: %w", feeSettingID, err)
	}
	return setting, nil
}

// ListFeeSettings returns all settings.
func (s *feeScheduleService) ListFeeSettings(ctx context.Context) ([]domain.FeeSetting, error) {
	settings, err := s.feeSettingRepo.ListFeeSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fee settings: %w", err)
	}
	return settings, nil
}

// DeleteFeeSetting removes a setting, or deactivates it when payments reference
// its triple so historical receipts stay resolvable.
func (s *feeScheduleService) DeleteFeeSetting(ctx context.Context, feeSettingID string, userID string) error {
	setting, err := s.feeSettingRepo.FindFeeSettingByID(ctx, feeSettingID)
	if err != nil {
		return fmt.Errorf("failed to find fee setting %s: %w", feeSettingID, err)
	}

	referenced, err := s.feeSettingRepo.HasReferencingPayments(ctx, setting.Level, setting.AcademicYear, setting.Term)
	if err != nil {
		return fmt.Errorf("failed to check payments referencing fee setting %s: %w", feeSettingID, err)
	}

	now := time.Now().UTC()
	if referenced {
		if err := s.feeSettingRepo.DeactivateFeeSetting(ctx, feeSettingID, userID, now); err != nil {
			return fmt.Errorf("failed to deactivate fee setting %s: %w", feeSettingID, err)
		}
		s.LogInfo(ctx, "Fee setting deactivated instead of deleted (referenced by payments)",
			slog.String("fee_setting_id", feeSettingID))
	} else {
		if err := s.feeSettingRepo.DeleteFeeSetting(ctx, feeSettingID); err != nil {
			return fmt.Errorf("failed to delete fee setting %s: %w", feeSettingID, err)
		}
	}

	if _, err := s.auditRepo.AppendAuditLog(ctx, domain.AuditLogEntry{
		Action:      domain.ActionDeleteFeeSetting,
		Description: fmt.Sprintf("Fee setting %s removed (deactivated=%t)", feeSettingID, referenced),
		PerformedBy: userID,
		Timestamp:   now,
	}); err != nil {
		s.LogError(ctx, err, "Audit append failed after fee setting delete; manual reconciliation required",
			slog.String("fee_setting_id", feeSettingID))
		return apperrors.NewAppError(500, "fee setting removed but audit log write failed", err)
	}

	return nil
}
