package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	portsrepo "github.com/mubiru-dev/school-fees-api/internal/core/ports/repositories"
	portssvc "github.com/mubiru-dev/school-fees-api/internal/core/ports/services"
	"github.com/mubiru-dev/school-fees-api/internal/utils/export"
)

// paymentExportColumns is the fixed column layout for both payment exports. The
// dotted paths resolve against the row maps built by paymentRow.
var paymentExportColumns = []export.Column{
	{Path: "paymentID", Label: "Payment ID"},
	{Path: "student.id", Label: "Student ID"},
	{Path: "student.name", Label: "Student Name"},
	{Path: "student.class", Label: "Class"},
	{Path: "term", Label: "Term"},
	{Path: "month", Label: "Month"},
	{Path: "academicYear", Label: "Academic Year"},
	{Path: "monthlyFee", Label: "Monthly Fee"},
	{Path: "amountPaid", Label: "Amount Paid"},
	{Path: "balance", Label: "Balance"},
	{Path: "status", Label: "Status"},
	{Path: "paymentDate", Label: "Payment Date"},
	{Path: "recordedBy", Label: "Recorded By"},
}

// exportService implements the ExportSvcFacade interface. It reads report data
// through the reporting repository and streams xlsx workbooks.
type exportService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewExportService creates a new export service.
func NewExportService(reportingRepo portsrepo.ReportingRepository) portssvc.ExportSvcFacade {
	return &exportService{reportingRepo: reportingRepo}
}

// Ensure exportService implements the ExportSvcFacade interface
var _ portssvc.ExportSvcFacade = (*exportService)(nil)

// ExportAllPayments writes a workbook of every payment row in the term/year
// scope to w and returns the suggested download file name. An empty scope still
// produces a workbook with only the header row.
func (s *exportService) ExportAllPayments(ctx context.Context, term, academicYear string, w io.Writer) (string, error) {
	payments, err := s.reportingRepo.GetAllPaymentsData(ctx, term, academicYear)
	if err != nil {
		s.LogError(ctx, err, "Failed to load payments for export",
			slog.String("term", term), slog.String("academic_year", academicYear))
		return "", fmt.Errorf("failed to load payments for export: %w", err)
	}

	rows := make([]map[string]any, len(payments))
	for i, p := range payments {
		rows[i] = paymentRow(p)
	}

	flat := export.Flatten(rows, paymentExportColumns)
	if err := export.WriteWorkbook(flat, paymentExportColumns, "Payments", w); err != nil {
		s.LogError(ctx, err, "Failed to write payments workbook")
		return "", fmt.Errorf("failed to write payments workbook: %w", err)
	}

	s.LogInfo(ctx, "All-payments export generated",
		slog.String("term", term),
		slog.String("academic_year", academicYear),
		slog.Int("row_count", len(rows)))
	return fmt.Sprintf("fee_payments_%s_%s_%s.xlsx",
		sanitizeFileToken(term), sanitizeFileToken(academicYear), time.Now().UTC().Format("20060102_150405")), nil
}

// ExportStudentHistory writes a workbook of one student's full payment history
// to w and returns the suggested download file name.
func (s *exportService) ExportStudentHistory(ctx context.Context, studentID int64, w io.Writer) (string, error) {
	histories, err := s.reportingRepo.GetStudentPaymentHistoryData(ctx, &studentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load student history for export",
			slog.Int64("student_id", studentID))
		return "", fmt.Errorf("failed to load student history for export: %w", err)
	}

	var rows []map[string]any
	for _, h := range histories {
		for _, p := range h.Payments {
			rows = append(rows, paymentRow(domain.PaymentWithStudent{
				Payment:     p,
				StudentName: h.StudentName,
				ClassName:   h.ClassName,
			}))
		}
	}

	flat := export.Flatten(rows, paymentExportColumns)
	if err := export.WriteWorkbook(flat, paymentExportColumns, "Payment History", w); err != nil {
		s.LogError(ctx, err, "Failed to write student history workbook",
			slog.Int64("student_id", studentID))
		return "", fmt.Errorf("failed to write student history workbook: %w", err)
	}

	s.LogInfo(ctx, "Student-history export generated",
		slog.Int64("student_id", studentID),
		slog.Int("row_count", len(rows)))
	return fmt.Sprintf("student_%d_payment_history_%s.xlsx",
		studentID, time.Now().UTC().Format("20060102_150405")), nil
}

// paymentRow shapes one joined payment into the nested map the export columns
// resolve against.
func paymentRow(p domain.PaymentWithStudent) map[string]any {
	return map[string]any{
		"paymentID": p.PaymentID,
		"student": map[string]any{
			"id":    p.StudentID,
			"name":  p.StudentName,
			"class": p.ClassName,
		},
		"term":         p.Term,
		"month":        p.Month,
		"academicYear": p.AcademicYear,
		"monthlyFee":   p.MonthlyFeeAmount,
		"amountPaid":   p.AmountPaid,
		"balance":      p.Balance,
		"status":       string(p.Status),
		"paymentDate":  p.PaymentDate,
		"recordedBy":   p.RecordedBy,
	}
}

// sanitizeFileToken keeps file-name tokens shell and header safe.
func sanitizeFileToken(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
