package services

import (
	"context"

	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	"github.com/mubiru-dev/school-fees-api/internal/dto"
	"github.com/shopspring/decimal"
)

// FeeScheduleSvcFacade defines operations on the fee schedule.
type FeeScheduleSvcFacade interface {
	// LookupFee resolves the active monthly fee for a (level, academicYear, term)
	// triple. Returns apperrors.ErrScheduleNotConfigured when no active setting
	// exists; this blocks payment recording entirely.
	LookupFee(ctx context.Context, level domain.AcademicLevel, academicYear, term string) (decimal.Decimal, error)

	// UpsertFeeSetting creates or updates a setting, keeping at most one active
	// setting per triple.
	UpsertFeeSetting(ctx context.Context, req dto.UpsertFeeSettingRequest, userID string) (*domain.FeeSetting, error)

	// GetFeeSetting returns one setting by id.
	GetFeeSetting(ctx context.Context, feeSettingID string) (*domain.FeeSetting, error)

	// ListFeeSettings returns all settings.
	ListFeeSettings(ctx context.Context) ([]domain.FeeSetting, error)

	// DeleteFeeSetting deletes an unreferenced setting; a setting referenced by
	// payments is deactivated instead so historical receipts stay resolvable.
	DeleteFeeSetting(ctx context.Context, feeSettingID string, userID string) error
}
