package dto

import (
	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DailySummaryResponse is the daily payment summary response.
type DailySummaryResponse struct {
	Date              string          `json:"date"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	TotalTransactions int64           `json:"totalTransactions"`
}

// ToDailySummaryResponse converts a domain daily summary to its response DTO.
func ToDailySummaryResponse(s domain.DailyPaymentSummary) DailySummaryResponse {
	return DailySummaryResponse{
		Date:              s.Date.Format("2006-01-02"),
		TotalAmount:       s.TotalAmount,
		TotalTransactions: s.TotalTransactions,
	}
}

// ClassFinancialSummaryResponse is one class row of a financial report.
type ClassFinancialSummaryResponse struct {
	ClassName        string          `json:"className"`
	FullPayers       int64           `json:"fullPayers"`
	PartPayers       int64           `json:"partPayers"`
	NonPayers        int64           `json:"nonPayers"`
	TotalCollected   decimal.Decimal `json:"totalCollected"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	ExpectedRevenue  decimal.Decimal `json:"expectedRevenue"`
}

// FinancialReportResponse is the composed financial report response.
type FinancialReportResponse struct {
	Term           string                          `json:"term"`
	AcademicYear   string                          `json:"academicYear"`
	StartDate      string                          `json:"startDate"`
	EndDate        string                          `json:"endDate"`
	Classes        []ClassFinancialSummaryResponse `json:"classes"`
	DailyBreakdown []DailySummaryResponse          `json:"dailyBreakdown"`
	Summary        struct {
		TotalCollected   decimal.Decimal `json:"totalCollected"`
		TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
		ExpectedRevenue  decimal.Decimal `json:"expectedRevenue"`
	} `json:"summary"`
}

// ToFinancialReportResponse converts a domain financial report to its response DTO.
func ToFinancialReportResponse(r domain.FinancialReport) FinancialReportResponse {
	response := FinancialReportResponse{
		Term:           r.Term,
		AcademicYear:   r.AcademicYear,
		StartDate:      r.StartDate.Format("2006-01-02"),
		EndDate:        r.EndDate.Format("2006-01-02"),
		Classes:        make([]ClassFinancialSummaryResponse, len(r.Classes)),
		DailyBreakdown: make([]DailySummaryResponse, len(r.DailyBreakdown)),
	}

	for i, c := range r.Classes {
		response.Classes[i] = ClassFinancialSummaryResponse{
			ClassName:        c.ClassName,
			FullPayers:       c.FullPayers,
			PartPayers:       c.PartPayers,
			NonPayers:        c.NonPayers,
			TotalCollected:   c.TotalCollected,
			TotalOutstanding: c.TotalOutstanding,
			ExpectedRevenue:  c.ExpectedRevenue,
		}
	}
	for i, d := range r.DailyBreakdown {
		response.DailyBreakdown[i] = ToDailySummaryResponse(d)
	}

	response.Summary.TotalCollected = r.TotalCollected
	response.Summary.TotalOutstanding = r.TotalOutstanding
	response.Summary.ExpectedRevenue = r.ExpectedRevenue
	return response
}

// StudentPaymentHistoryResponse is one student's history with running totals.
type StudentPaymentHistoryResponse struct {
	StudentID    int64             `json:"studentID"`
	StudentName  string            `json:"studentName"`
	ClassName    string            `json:"className"`
	Payments     []PaymentResponse `json:"payments"`
	TotalPaid    decimal.Decimal   `json:"totalPaid"`
	TotalBalance decimal.Decimal   `json:"totalBalance"`
}

// ToStudentPaymentHistoryResponses converts domain histories to DTOs.
func ToStudentPaymentHistoryResponses(histories []domain.StudentPaymentHistory) []StudentPaymentHistoryResponse {
	out := make([]StudentPaymentHistoryResponse, len(histories))
	for i, h := range histories {
		payments := make([]PaymentResponse, len(h.Payments))
		for j, p := range h.Payments {
			payments[j] = ToPaymentResponse(p)
		}
		out[i] = StudentPaymentHistoryResponse{
			StudentID:    h.StudentID,
			StudentName:  h.StudentName,
			ClassName:    h.ClassName,
			Payments:     payments,
			TotalPaid:    h.TotalPaid,
			TotalBalance: h.TotalBalance,
		}
	}
	return out
}

// PaymentTrendResponse is one day in a payment trend series.
type PaymentTrendResponse struct {
	Date             string          `json:"date"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	TransactionCount int64           `json:"transactionCount"`
}

// ToPaymentTrendResponses converts domain trend points to DTOs.
func ToPaymentTrendResponses(points []domain.PaymentTrendPoint) []PaymentTrendResponse {
	out := make([]PaymentTrendResponse, len(points))
	for i, p := range points {
		out[i] = PaymentTrendResponse{
			Date:             p.Date.Format("2006-01-02"),
			TotalAmount:      p.TotalAmount,
			TransactionCount: p.TransactionCount,
		}
	}
	return out
}

// ClassComparisonResponse compares one class's collection performance.
type ClassComparisonResponse struct {
	ClassName                string          `json:"className"`
	TotalStudents            int64           `json:"totalStudents"`
	TotalCollected           decimal.Decimal `json:"totalCollected"`
	TotalOutstanding         decimal.Decimal `json:"totalOutstanding"`
	CollectionRate           decimal.Decimal `json:"collectionRate"`
	AveragePaymentPerStudent decimal.Decimal `json:"averagePaymentPerStudent"`
}

// ToClassComparisonResponses converts domain comparisons to DTOs.
func ToClassComparisonResponses(comparisons []domain.ClassComparison) []ClassComparisonResponse {
	out := make([]ClassComparisonResponse, len(comparisons))
	for i, c := range comparisons {
		out[i] = ClassComparisonResponse{
			ClassName:                c.ClassName,
			TotalStudents:            c.TotalStudents,
			TotalCollected:           c.TotalCollected,
			TotalOutstanding:         c.TotalOutstanding,
			CollectionRate:           c.CollectionRate,
			AveragePaymentPerStudent: c.AveragePaymentPerStudent,
		}
	}
	return out
}

// OutstandingPaymentResponse is a latest-row payment still owing, with identity.
type OutstandingPaymentResponse struct {
	PaymentResponse
	StudentName string `json:"studentName"`
	ClassName   string `json:"className"`
}

// ToOutstandingPaymentResponses converts joined payments to DTOs.
func ToOutstandingPaymentResponses(payments []domain.PaymentWithStudent) []OutstandingPaymentResponse {
	out := make([]OutstandingPaymentResponse, len(payments))
	for i, p := range payments {
		out[i] = OutstandingPaymentResponse{
			PaymentResponse: ToPaymentResponse(p.Payment),
			StudentName:     p.StudentName,
			ClassName:       p.ClassName,
		}
	}
	return out
}
