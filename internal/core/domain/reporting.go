package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyPaymentSummary aggregates all payment rows recorded on one calendar day.
type DailyPaymentSummary struct {
	Date              time.Time       `json:"date"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	TotalTransactions int64           `json:"totalTransactions"`
}

// ClassFinancialSummary aggregates the current ledger state for one class within a
// term/year scope. Status counts are taken from the latest row per billing key.
type ClassFinancialSummary struct {
	ClassName        string          `json:"className"`
	FullPayers       int64           `json:"fullPayers"`
	PartPayers       int64           `json:"partPayers"`
	NonPayers        int64           `json:"nonPayers"`
	TotalCollected   decimal.Decimal `json:"totalCollected"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	ExpectedRevenue  decimal.Decimal `json:"expectedRevenue"`
}

// FinancialReport is the composed term/year + date-range scoped view: per-class
// summaries plus the per-day breakdown for the range.
type FinancialReport struct {
	Term             string                  `json:"term"`
	AcademicYear     string                  `json:"academicYear"`
	StartDate        time.Time               `json:"startDate"`
	EndDate          time.Time               `json:"endDate"`
	Classes          []ClassFinancialSummary `json:"classes"`
	DailyBreakdown   []DailyPaymentSummary   `json:"dailyBreakdown"`
	TotalCollected   decimal.Decimal         `json:"totalCollected"`
	TotalOutstanding decimal.Decimal         `json:"totalOutstanding"`
	ExpectedRevenue  decimal.Decimal         `json:"expectedRevenue"`
}

// StudentPaymentHistory lists every payment row for one student in date order,
// with running totals derived from the ledger.
type StudentPaymentHistory struct {
	StudentID    int64           `json:"studentID"`
	StudentName  string          `json:"studentName"`
	ClassName    string          `json:"className"`
	Payments     []Payment       `json:"payments"`
	TotalPaid    decimal.Decimal `json:"totalPaid"`
	TotalBalance decimal.Decimal `json:"totalBalance"` // sum of latest-row balances per key
}

// PaymentTrendPoint is one day of payment activity within a trend range. Days with
// no activity are omitted.
type PaymentTrendPoint struct {
	Date             time.Time       `json:"date"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	TransactionCount int64           `json:"transactionCount"`
}

// ClassComparison compares collection performance across classes for one academic
// year.
type ClassComparison struct {
	ClassName                string          `json:"className"`
	TotalStudents            int64           `json:"totalStudents"`
	TotalCollected           decimal.Decimal `json:"totalCollected"`
	TotalOutstanding         decimal.Decimal `json:"totalOutstanding"`
	CollectionRate           decimal.Decimal `json:"collectionRate"`
	AveragePaymentPerStudent decimal.Decimal `json:"averagePaymentPerStudent"`
}

// PaymentWithStudent is a payment row joined with the student's identity, used by
// the outstanding-payments view and the spreadsheet exports.
type PaymentWithStudent struct {
	Payment
	StudentName string `json:"studentName"`
	ClassName   string `json:"className"`
}

// StudentPaymentStatus is one student's current state within a class status summary.
type StudentPaymentStatus struct {
	StudentID   int64           `json:"studentID"`
	StudentName string          `json:"studentName"`
	AmountPaid  decimal.Decimal `json:"amountPaid"`
	Balance     decimal.Decimal `json:"balance"`
	Status      PaymentStatus   `json:"status"`
}

// PaymentStatusGroup is one status bucket of a class, with the students in it.
type PaymentStatusGroup struct {
	Status   PaymentStatus          `json:"status"`
	Students []StudentPaymentStatus `json:"students"`
}
