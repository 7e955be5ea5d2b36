package mapping

import (
	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	"github.com/mubiru-dev/school-fees-api/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:        d.PaymentID,
		StudentID:        d.StudentID,
		Term:             d.Term,
		Month:            d.Month,
		AcademicYear:     d.AcademicYear,
		MonthlyFeeAmount: d.MonthlyFeeAmount,
		AmountPaid:       d.AmountPaid,
		Balance:          d.Balance,
		Status:           string(d.Status),
		PaymentDate:      d.PaymentDate,
		CreatedAt:        d.CreatedAt,
		RecordedBy:       d.RecordedBy,
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:        m.PaymentID,
		StudentID:        m.StudentID,
		Term:             m.Term,
		Month:            m.Month,
		AcademicYear:     m.AcademicYear,
		MonthlyFeeAmount: m.MonthlyFeeAmount,
		AmountPaid:       m.AmountPaid,
		Balance:          m.Balance,
		Status:           domain.PaymentStatus(m.Status),
		PaymentDate:      m.PaymentDate,
		CreatedAt:        m.CreatedAt,
		RecordedBy:       m.RecordedBy,
	}
}
