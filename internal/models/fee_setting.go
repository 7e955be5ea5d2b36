package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeSetting mirrors the fee_settings table.
type FeeSetting struct {
	FeeSettingID  string
	Level         string
	Amount        decimal.Decimal
	AcademicYear  string
	Term          string
	Active        bool
	CreatedAt     time.Time
	CreatedBy     string
	LastUpdatedAt time.Time
	LastUpdatedBy string
}
