package dto

import (
	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertFeeSettingRequest creates or updates a fee setting. When FeeSettingID is
// empty a new setting is created.
type UpsertFeeSettingRequest struct {
	FeeSettingID string          `json:"feeSettingID"`
	Level        string          `json:"level" binding:"required,oneof=JUNIOR_SECONDARY O_LEVEL A_LEVEL"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	AcademicYear string          `json:"academicYear" binding:"required"`
	Term         string          `json:"term" binding:"required"`
	Active       *bool           `json:"active"`
}

// IsActive defaults new settings to active when the flag is omitted.
func (r UpsertFeeSettingRequest) IsActive() bool {
	if r.Active == nil {
		return true
	}
	return *r.Active
}

// FeeSettingResponse is the wire shape of a fee setting.
type FeeSettingResponse struct {
	FeeSettingID string          `json:"feeSettingID"`
	Level        string          `json:"level"`
	Amount       decimal.Decimal `json:"amount"`
	AcademicYear string          `json:"academicYear"`
	Term         string          `json:"term"`
	Active       bool            `json:"active"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}

// ToFeeSettingResponse converts a domain FeeSetting to its response DTO.
func ToFeeSettingResponse(s domain.FeeSetting) FeeSettingResponse {
	return FeeSettingResponse{
		FeeSettingID: s.FeeSettingID,
		Level:        string(s.Level),
		Amount:       s.Amount,
		AcademicYear: s.AcademicYear,
		Term:         s.Term,
		Active:       s.Active,
		CreatedAt:    s.CreatedAt.Format("2006-01-02"),
		UpdatedAt:    s.LastUpdatedAt.Format("2006-01-02"),
	}
}

// ToFeeSettingResponses converts a slice of settings.
func ToFeeSettingResponses(settings []domain.FeeSetting) []FeeSettingResponse {
	out := make([]FeeSettingResponse, len(settings))
	for i, s := range settings {
		out[i] = ToFeeSettingResponse(s)
	}
	return out
}
