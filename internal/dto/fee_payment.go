package dto

import (
	"time"

	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest is the body of POST /fee-payments/record.
type RecordPaymentRequest struct {
	StudentID    int64           `json:"studentID" binding:"required"`
	Term         string          `json:"term" binding:"required"`
	Month        string          `json:"month" binding:"required,month"`
	AcademicYear string          `json:"academicYear" binding:"required"`
	AmountPaid   decimal.Decimal `json:"amountPaid" binding:"required"`
	PaymentDate  string          `json:"paymentDate" binding:"required"` // YYYY-MM-DD
}

// ParsePaymentDate parses the request's payment date.
func (r RecordPaymentRequest) ParsePaymentDate() (time.Time, error) {
	return time.Parse("2006-01-02", r.PaymentDate)
}

// PaymentReceiptResponse is the receipt returned after recording a payment.
type PaymentReceiptResponse struct {
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
	Status           string          `json:"status"`
	PaymentDate      string          `json:"paymentDate"`
}

// ToPaymentReceiptResponse converts a domain receipt to its response DTO.
func ToPaymentReceiptResponse(r domain.PaymentReceipt) PaymentReceiptResponse {
	return PaymentReceiptResponse{
		PaymentID:        r.PaymentID,
		StudentID:        r.StudentID,
		StudentName:      r.StudentName,
		ClassName:        r.ClassName,
		Term:             r.Term,
		Month:            r.Month,
		AcademicYear:     r.AcademicYear,
		MonthlyFeeAmount: r.MonthlyFeeAmount,
		AmountPaid:       r.AmountPaid,
		Balance:          r.Balance,
		Status:           string(r.Status),
		PaymentDate:      r.PaymentDate.Format("2006-01-02"),
	}
}

// PaymentResponse is the wire shape of one ledger row.
type PaymentResponse struct {
	PaymentID        int64           `json:"paymentID"`
	StudentID        int64           `json:"studentID"`
	Term             string          `json:"term"`
	Month            string          `json:"month"`
	AcademicYear     string          `json:"academicYear"`
	MonthlyFeeAmount decimal.Decimal `json:"monthlyFeeAmount"`
	AmountPaid       decimal.Decimal `json:"amountPaid"`
	Balance          decimal.Decimal `json:"balance"`
	Status           string          `json:"status"`
	PaymentDate      string          `json:"paymentDate"`
}

// ToPaymentResponse converts a domain payment to its response DTO.
func ToPaymentResponse(p domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:        p.PaymentID,
		StudentID:        p.StudentID,
		Term:             p.Term,
		Month:            p.Month,
		AcademicYear:     p.AcademicYear,
		MonthlyFeeAmount: p.MonthlyFeeAmount,
		AmountPaid:       p.AmountPaid,
		Balance:          p.Balance,
		Status:           string(p.Status),
		PaymentDate:      p.PaymentDate.Format("2006-01-02"),
	}
}

// PaymentStatusGroupResponse is one status bucket of a class summary.
type PaymentStatusGroupResponse struct {
	Status   string                         `json:"status"`
	Students []StudentPaymentStatusResponse `json:"students"`
}

// StudentPaymentStatusResponse is one student's state in a class summary.
type StudentPaymentStatusResponse struct {
	StudentID   int64           `json:"studentID"`
	StudentName string          `json:"studentName"`
	AmountPaid  decimal.Decimal `json:"amountPaid"`
	Balance     decimal.Decimal `json:"balance"`
	Status      string          `json:"status"`
}

// ToPaymentStatusGroupResponses converts class status groups to DTOs.
func ToPaymentStatusGroupResponses(groups []domain.PaymentStatusGroup) []PaymentStatusGroupResponse {
	out := make([]PaymentStatusGroupResponse, len(groups))
	for i, g := range groups {
		students := make([]StudentPaymentStatusResponse, len(g.Students))
		for j, s := range g.Students {
			students[j] = StudentPaymentStatusResponse{
				StudentID:   s.StudentID,
				StudentName: s.StudentName,
				AmountPaid:  s.AmountPaid,
				Balance:     s.Balance,
				Status:      string(s.Status),
			}
		}
		out[i] = PaymentStatusGroupResponse{Status: string(g.Status), Students: students}
	}
	return out
}

// StudentResponse is the wire shape of a student-directory match.
type StudentResponse struct {
	StudentID int64  `json:"studentID"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Level     string `json:"level"`
	ClassName string `json:"className"`
}

// ToStudentResponses converts directory students to DTOs.
func ToStudentResponses(students []domain.Student) []StudentResponse {
	out := make([]StudentResponse, len(students))
	for i, s := range students {
		out[i] = StudentResponse{
			StudentID: s.StudentID,
			FirstName: s.FirstName,
			LastName:  s.LastName,
			Level:     string(s.Level),
			ClassName: s.ClassName(),
		}
	}
	return out
}
