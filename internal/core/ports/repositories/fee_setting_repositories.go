package repositories

import (
	"context"
	"time"

	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
)

// FeeSettingRepository defines persistence operations for the fee schedule.
type FeeSettingRepository interface {
	// SaveFeeSetting inserts a new setting. When the setting is active, any prior
	// active setting for the same (level, academicYear, term) triple is deactivated
	// in the same database transaction.
	SaveFeeSetting(ctx context.Context, setting domain.FeeSetting) error

	// UpdateFeeSetting rewrites an existing setting, enforcing the same single-active
	// invariant as SaveFeeSetting.
	UpdateFeeSetting(ctx context.Context, setting domain.FeeSetting) error

	// FindActiveFeeSetting returns the single active setting for the triple, or
	// apperrors.ErrNotFound.
	FindActiveFeeSetting(ctx context.Context, level domain.AcademicLevel, academicYear, term string) (*domain.FeeSetting, error)

	// FindFeeSettingByID returns the setting with the given id, or apperrors.ErrNotFound.
	FindFeeSettingByID(ctx context.Context, feeSettingID string) (*domain.FeeSetting, error)

	// ListFeeSettings returns all settings ordered by academic year, term, level.
	ListFeeSettings(ctx context.Context) ([]domain.FeeSetting, error)

	// DeactivateFeeSetting flips a setting inactive without touching its amount.
	DeactivateFeeSetting(ctx context.Context, feeSettingID string, updatedBy string, at time.Time) error

	// DeleteFeeSetting removes a setting outright. Callers must first check
	// HasReferencingPayments; referenced settings are deactivated instead.
	DeleteFeeSetting(ctx context.Context, feeSettingID string) error

	// HasReferencingPayments reports whether any payment row was recorded against the
	// triple this setting covers.
	HasReferencingPayments(ctx context.Context, level domain.AcademicLevel, academicYear, term string) (bool, error)
}
