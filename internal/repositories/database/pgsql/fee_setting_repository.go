package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mubiru-dev/school-fees-api/internal/apperrors"
	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	portsrepo "github.com/mubiru-dev/school-fees-api/internal/core/ports/repositories"
	"github.com/mubiru-dev/school-fees-api/internal/models"
	"github.com/mubiru-dev/school-fees-api/internal/utils/mapping"
)

const feeSettingColumns = `fee_setting_id, level, amount, academic_year, term, active, created_at, created_by, last_updated_at, last_updated_by`

type PgxFeeSettingRepository struct {
	BaseRepository
}

// newPgxFeeSettingRepository creates a new repository for fee schedule data.
func newPgxFeeSettingRepository(pool *pgxpool.Pool) portsrepo.FeeSettingRepository {
	return &PgxFeeSettingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.FeeSettingRepository = (*PgxFeeSettingRepository)(nil)

// SaveFeeSetting inserts a new setting. When it is active, any prior active
// setting for the same triple is deactivated in the same transaction so the
// single-active invariant holds.
func (r *PgxFeeSettingRepository) SaveFeeSetting(ctx context.Context, setting domain.FeeSetting) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m := mapping.ToModelFeeSetting(setting)
	if m.Active {
		if err := deactivateTriple(ctx, tx, m); err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO fee_settings (`+feeSettingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`,
		m.FeeSettingID,
		m.Level,
		m.Amount,
		m.AcademicYear,
		m.Term,
		m.Active,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save fee setting %s: %w", m.FeeSettingID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateFeeSetting rewrites an existing setting under the same single-active
// invariant as SaveFeeSetting.
func (r *PgxFeeSettingRepository) UpdateFeeSetting(ctx context.Context, setting domain.FeeSetting) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m := mapping.ToModelFeeSetting(setting)
	if m.Active {
		if err := deactivateTriple(ctx, tx, m); err != nil {
			return err
		}
	}

	tag, err := tx.Exec(ctx, `
		UPDATE fee_settings
		SET level = $2, amount = $3, academic_year = $4, term = $5, active = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE fee_setting_id = $1;
	`,
		m.FeeSettingID,
		m.Level,
		m.Amount,
		m.AcademicYear,
		m.Term,
		m.Active,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update fee setting %s: %w", m.FeeSettingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// deactivateTriple flips off any other active setting for the same triple.
func deactivateTriple(ctx context.Context, tx pgx.Tx, m models.FeeSetting) error {
	_, err := tx.Exec(ctx, `
		UPDATE fee_settings
		SET active = FALSE, last_updated_at = $4, last_updated_by = $5
		WHERE level = $1 AND academic_year = $2 AND term = $3 AND active AND fee_setting_id <> $6;
	`, m.Level, m.AcademicYear, m.Term, m.LastUpdatedAt, m.LastUpdatedBy, m.FeeSettingID)
	if err != nil {
		return fmt.Errorf("failed to deactivate superseded fee settings: %w", err)
	}
	return nil
}

// FindActiveFeeSetting returns the single active setting for the triple.
func (r *PgxFeeSettingRepository) FindActiveFeeSetting(ctx context.Context, level domain.AcademicLevel, academicYear, term string) (*domain.FeeSetting, error) {
	query := `
		SELECT ` + feeSettingColumns + `
		FROM fee_settings
		WHERE level = $1 AND academic_year = $2 AND term = $3 AND active
		LIMIT 1;
	`
	var m models.FeeSetting
	err := r.Pool.QueryRow(ctx, query, string(level), academicYear, term).Scan(
		&m.FeeSettingID,
		&m.Level,
		&m.Amount,
		&m.AcademicYear,
		&m.Term,
		&m.Active,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active fee setting for %s/%s/%s: %w", level, academicYear, term, err)
	}

	domainSetting := mapping.ToDomainFeeSetting(m)
	return &domainSetting, nil
}

// FindFeeSettingByID retrieves a setting by its id.
func (r *PgxFeeSettingRepository) FindFeeSettingByID(ctx context.Context, feeSettingID string) (*domain.FeeSetting, error) {
	query := `
		SELECT ` + feeSettingColumns + `
		FROM fee_settings
		WHERE fee_setting_id = $1;
	`
	var m models.FeeSetting
	err := r.Pool.QueryRow(ctx, query, feeSettingID).Scan(
		&m.FeeSettingID,
		&m.Level,
		&m.Amount,
		&m.AcademicYear,
		&m.Term,
		&m.Active,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fee setting %s: %w", feeSettingID, err)
	}

	domainSetting := mapping.ToDomainFeeSetting(m)
	return &domainSetting, nil
}

// ListFeeSettings retrieves all settings.
func (r *PgxFeeSettingRepository) ListFeeSettings(ctx context.Context) ([]domain.FeeSetting, error) {
	query := `
		SELECT ` + feeSettingColumns + `
		FROM fee_settings
		ORDER BY academic_year DESC, term, level;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fee settings: %w", err)
	}
	defer rows.Close()

	modelSettings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.FeeSetting, error) {
		var m models.FeeSetting
		err := row.Scan(
			&m.FeeSettingID,
			&m.Level,
			&m.Amount,
			&m.AcademicYear,
			&m.Term,
			&m.Active,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan fee settings: %w", err)
	}

	settings := make([]domain.FeeSetting, len(modelSettings))
	for i, m := range modelSettings {
		settings[i] = mapping.ToDomainFeeSetting(m)
	}
	return settings, nil
}

// DeactivateFeeSetting flips a setting inactive without touching its amount.
func (r *PgxFeeSettingRepository) DeactivateFeeSetting(ctx context.Context, feeSettingID string, updatedBy string, at time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE fee_settings
		SET active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE fee_setting_id = $1;
	`, feeSettingID, at, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to deactivate fee setting %s: %w", feeSettingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteFeeSetting removes a setting outright.
func (r *PgxFeeSettingRepository) DeleteFeeSetting(ctx context.Context, feeSettingID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM fee_settings WHERE fee_setting_id = $1;`, feeSettingID)
	if err != nil {
		return fmt.Errorf("failed to delete fee setting %s: %w", feeSettingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// HasReferencingPayments reports whether any payment was recorded against the
// triple this setting covers. The payments table stores the student's level
// indirectly via the student directory.
func (r *PgxFeeSettingRepository) HasReferencingPayments(ctx context.Context, level domain.AcademicLevel, academicYear, term string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM payments p
			JOIN students s ON s.student_id = p.student_id
			WHERE s.level = $1 AND p.academic_year = $2 AND p.term = $3
		);
	`, string(level), academicYear, term).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check payments referencing %s/%s/%s: %w", level, academicYear, term, err)
	}
	return exists, nil
}
