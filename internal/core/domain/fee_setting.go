package domain

import "github.com/shopspring/decimal"

// AcademicLevel identifies the fee band a student belongs to.
type AcademicLevel string

const (
	JuniorSecondary AcademicLevel = "JUNIOR_SECONDARY"
	OLevel          AcademicLevel = "O_LEVEL"
	ALevel          AcademicLevel = "A_LEVEL"
)

// IsValid reports whether the level is one of the known fee bands.
func (l AcademicLevel) IsValid() bool {
	switch l {
	case JuniorSecondary, OLevel, ALevel:
		return true
	}
	return false
}

// FeeSetting is the configured monthly fee for a (level, academicYear, term) triple.
// At most one setting may be active per triple at any time; superseded settings are
// deactivated rather than deleted so historical payments keep a valid reference.
type FeeSetting struct {
	FeeSettingID string          `json:"feeSettingID"`
	Level        AcademicLevel   `json:"level"`
	Amount       decimal.Decimal `json:"amount"`
	AcademicYear string          `json:"academicYear"`
	Term         string          `json:"term"`
	Active       bool            `json:"active"`
	AuditFields
}
