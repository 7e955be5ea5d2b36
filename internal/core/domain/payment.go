package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the derived state of one billing obligation.
type PaymentStatus string

const (
	FullPayment PaymentStatus = "FULL_PAYMENT"
	PartPayment PaymentStatus = "PART_PAYMENT"
	NonPayer    PaymentStatus = "NON_PAYER"
)

// PaymentKey identifies one billing obligation: a student owes the monthly fee
// once per (term, month, academicYear).
type PaymentKey struct {
	StudentID    int64  `json:"studentID"`
	Term         string `json:"term"`
	Month        string `json:"month"`
	AcademicYear string `json:"academicYear"`
}

// Payment is one payment event against a billing obligation. Several rows may share
// the same key (partial payments accumulate as separate rows); Balance and Status are
// point-in-time snapshots taken when the row was written. The latest row per key
// (greatest PaymentID) is the current truth for that obligation.
type Payment struct {
	PaymentID        int64           `json:"paymentID"`
	StudentID        int64           `json:"studentID"`
	Term             string          `json:"term"`
	Month            string          `json:"month"`
	AcademicYear     string          `json:"academicYear"`
	MonthlyFeeAmount decimal.Decimal `json:"monthlyFeeAmount"` // fee snapshot at time of payment
	AmountPaid       decimal.Decimal `json:"amountPaid"`
	Balance          decimal.Decimal `json:"balance"`
	Status           PaymentStatus   `json:"status"`
	PaymentDate      time.Time       `json:"paymentDate"`
	CreatedAt        time.Time       `json:"createdAt"`
	RecordedBy       string          `json:"recordedBy"`
}

// Key returns the billing obligation this payment belongs to.
func (p Payment) Key() PaymentKey {
	return PaymentKey{
		StudentID:    p.StudentID,
		Term:         p.Term,
		Month:        p.Month,
		AcademicYear: p.AcademicYear,
	}
}

// DeriveBalance computes the outstanding balance for an obligation given the monthly
// fee and the cumulative amount paid across all rows for the key. Overpayment clamps
// to zero.
func DeriveBalance(monthlyFee, cumulativePaid decimal.Decimal) decimal.Decimal {
	balance := monthlyFee.Sub(cumulativePaid)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// DeriveStatus computes the payment status from the monthly fee and cumulative paid
// amount. Status is a pure function of these two values and is never independently
// settable.
func DeriveStatus(monthlyFee, cumulativePaid decimal.Decimal) PaymentStatus {
	if cumulativePaid.LessThanOrEqual(decimal.Zero) {
		return NonPayer
	}
	if cumulativePaid.GreaterThanOrEqual(monthlyFee) {
		return FullPayment
	}
	return PartPayment
}

// PaymentCorrection carries the recomputed derived fields for a single payment row
// during a status repair pass. Only Balance and Status are ever rewritten.
type PaymentCorrection struct {
	PaymentID int64
	Balance   decimal.Decimal
	Status    PaymentStatus
}

// PaymentReceipt is the point-in-time snapshot returned to the caller immediately
// after a payment is recorded.
type PaymentReceipt struct {
	PaymentID        int64           `json:"paymentID"`
	StudentID        int64           `json:"studentID"`
	StudentName      string          `json:"studentName"`
	ClassName        string          `json:"className"`
	Term             string          `json:"term"`
	Month            string          `json:"month"`
	AcademicYear     string          `json:"academicYear"`
	MonthlyFeeAmount decimal.Decimal `json:"monthlyFeeAmount"`
	AmountPaid       decimal.Decimal `json:"amountPaid"`
	Balance          decimal.Decimal `json:"balance"`
	Status           PaymentStatus   `json:"status"`
	PaymentDate      time.Time       `json:"paymentDate"`
}

// PaymentStatusSnapshot is the current derived state for one billing obligation.
type PaymentStatusSnapshot struct {
	Key     PaymentKey      `json:"key"`
	Balance decimal.Decimal `json:"balance"`
	Status  PaymentStatus   `json:"status"`
}
