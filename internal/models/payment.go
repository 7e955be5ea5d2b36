package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment mirrors the payments table. payment_id is a BIGSERIAL so row order is
// insertion order, which is the tie-break rule for "latest row per key".
type Payment struct {
	PaymentID        int64
	StudentID        int64
	Term             string
	Month            string
	AcademicYear     string
	MonthlyFeeAmount decimal.Decimal
	AmountPaid       decimal.Decimal
	Balance          decimal.Decimal
	Status           string
	PaymentDate      time.Time
	CreatedAt        time.Time
	RecordedBy       string
}
