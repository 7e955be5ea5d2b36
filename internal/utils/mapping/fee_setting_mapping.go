package mapping

import (
	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	"github.com/mubiru-dev/school-fees-api/internal/models"
)

// ToModelFeeSetting converts a domain FeeSetting to a model FeeSetting
func ToModelFeeSetting(d domain.FeeSetting) models.FeeSetting {
	return models.FeeSetting{
		FeeSettingID:  d.FeeSettingID,
		Level:         string(d.Level),
		Amount:        d.Amount,
		AcademicYear:  d.AcademicYear,
		Term:          d.Term,
		Active:        d.Active,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainFeeSetting converts a model FeeSetting to a domain FeeSetting
func ToDomainFeeSetting(m models.FeeSetting) domain.FeeSetting {
	return domain.FeeSetting{
		FeeSettingID: m.FeeSettingID,
		Level:        domain.AcademicLevel(m.Level),
		Amount:       m.Amount,
		AcademicYear: m.AcademicYear,
		Term:         m.Term,
		Active:       m.Active,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}
