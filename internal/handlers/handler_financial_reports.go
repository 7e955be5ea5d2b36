package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/mubiru-dev/school-fees-api/internal/core/ports/services"
	"github.com/mubiru-dev/school-fees-api/internal/dto"
	"github.com/mubiru-dev/school-fees-api/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// financialReportHandler handles HTTP requests for aggregated financial views
// and spreadsheet exports.
type financialReportHandler struct {
	reportingService portssvc.ReportingSvcFacade
	exportService    portssvc.ExportSvcFacade
}

// newFinancialReportHandler creates a new financialReportHandler.
func newFinancialReportHandler(rs portssvc.ReportingSvcFacade, es portssvc.ExportSvcFacade) *financialReportHandler {
	return &financialReportHandler{
		reportingService: rs,
		exportService:    es,
	}
}

// registerFinancialReportRoutes registers routes related to financial reports.
func registerFinancialReportRoutes(rg *gin.RouterGroup, rs portssvc.ReportingSvcFacade, es portssvc.ExportSvcFacade) {
	h := newFinancialReportHandler(rs, es)

	reports := rg.Group("/financial-reports")
	{
		reports.GET("/generate", h.generateReport)
		reports.GET("/student-payment-history", h.studentPaymentHistory)
		reports.GET("/student-payment-history/:studentId", h.studentPaymentHistory)
		reports.GET("/payment-trends", h.paymentTrends)
		reports.GET("/class-comparison", h.classComparison)
		reports.GET("/outstanding-payments", h.outstandingPayments)
		reports.GET("/audit-logs", h.auditLogs)
		reports.GET("/export/all-payments", h.exportAllPayments)
		reports.GET("/export/student-history/:studentId", h.exportStudentHistory)
	}
}

// parseDateRange reads startDate/endDate query params as YYYY-MM-DD.
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", c.Query("startDate"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("startDate must be YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", c.Query("endDate"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("endDate must be YYYY-MM-DD")
	}
	return from, to, nil
}

// generateReport godoc
// @Summary Generate a financial report
// @Description Composes per-class summaries, totals and a daily breakdown for a term/year and date range
// @Tags financial-reports
// @Produce  json
// @Param   term query string true "Term"
// @Param   academicYear query string true "Academic year"
// @Param   startDate query string true "Range start (YYYY-MM-DD)"
// @Param   endDate query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.FinancialReportResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /financial-reports/generate [get]
func (h *financialReportHandler) generateReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	term := c.Query("term")
	academicYear := c.Query("academicYear")
	if term == "" || academicYear == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "term and academicYear are required"})
		return
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportingService.FinancialReport(c.Request.Context(), term, academicYear, from, to)
	if err != nil {
		logger.Error("Failed to generate financial report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate financial report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancialReportResponse(*report))
}

// studentPaymentHistory godoc
// @Summary Student payment history
// @Description Lists every payment row per student with running totals. Without a studentId, all students are returned.
// @Tags financial-reports
// @Produce  json
// @Param   studentId path int false "Student ID"
// @Success 200 {array} dto.StudentPaymentHistoryResponse
// @Failure 400 {object} map[string]string "Invalid student id"
// @Failure 500 {object} map[string]string "Failed to load history"
// @Security BearerAuth
// @Router /financial-reports/student-payment-history/{studentId} [get]
func (h *financialReportHandler) studentPaymentHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var studentID *int64
	if raw := c.Param("studentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "studentId must be an integer"})
			return
		}
		studentID = &id
	}

	histories, err := h.reportingService.StudentPaymentHistory(c.Request.Context(), studentID)
	if err != nil {
		logger.Error("Failed to load student payment history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load student payment history"})
		return
	}

	c.JSON(http.StatusOK, dto.ToStudentPaymentHistoryResponses(histories))
}

// paymentTrends godoc
// @Summary Payment trends
// @Description Returns one point per day with payment activity in the range
// @Tags financial-reports
// @Produce  json
// @Param   startDate query string true "Range start (YYYY-MM-DD)"
// @Param   endDate query string true "Range end (YYYY-MM-DD)"
// @Success 200 {array} dto.PaymentTrendResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to load trends"
// @Security BearerAuth
// @Router /financial-reports/payment-trends [get]
func (h *financialReportHandler) paymentTrends(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	points, err := h.reportingService.PaymentTrends(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to load payment trends", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payment trends"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentTrendResponses(points))
}

// classComparison godoc
// @Summary Class collection comparison
// @Description Compares collection rate and average payment per student across classes for one academic year
// @Tags financial-reports
// @Produce  json
// @Param   academicYear query string true "Academic year"
// @Success 200 {array} dto.ClassComparisonResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to load comparison"
// @Security BearerAuth
// @Router /financial-reports/class-comparison [get]
func (h *financialReportHandler) classComparison(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	academicYear := c.Query("academicYear")
	if academicYear == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "academicYear is required"})
		return
	}

	comparisons, err := h.reportingService.ClassComparison(c.Request.Context(), academicYear)
	if err != nil {
		logger.Error("Failed to load class comparison", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load class comparison"})
		return
	}

	c.JSON(http.StatusOK, dto.ToClassComparisonResponses(comparisons))
}

// outstandingPayments godoc
// @Summary Outstanding payments
// @Description Lists the latest payment row per billing key with a balance still owing
// @Tags financial-reports
// @Produce  json
// @Param   term query string true "Term"
// @Param   academicYear query string true "Academic year"
// @Success 200 {array} dto.OutstandingPaymentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to load outstanding payments"
// @Security BearerAuth
// @Router /financial-reports/outstanding-payments [get]
func (h *financialReportHandler) outstandingPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	term := c.Query("term")
	academicYear := c.Query("academicYear")
	if term == "" || academicYear == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "term and academicYear are required"})
		return
	}

	payments, err := h.reportingService.OutstandingPayments(c.Request.Context(), term, academicYear)
	if err != nil {
		logger.Error("Failed to load outstanding payments", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load outstanding payments"})
		return
	}

	c.JSON(http.StatusOK, dto.ToOutstandingPaymentResponses(payments))
}

// auditLogs godoc
// @Summary Query the audit log
// @Description Returns audit entries in a date range, ascending by timestamp, paged via nextToken
// @Tags financial-reports
// @Produce  json
// @Param   startDate query string true "Range start (YYYY-MM-DD)"
// @Param   endDate query string true "Range end (YYYY-MM-DD)"
// @Param   limit query int false "Page size (default 50)"
// @Param   nextToken query string false "Resume token from the previous page"
// @Success 200 {object} dto.AuditLogListResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to query audit logs"
// @Security BearerAuth
// @Router /financial-reports/audit-logs [get]
func (h *financialReportHandler) auditLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Include the whole end day.
	to = to.Add(24*time.Hour - time.Nanosecond)

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
	}
	var nextToken *string
	if raw := c.Query("nextToken"); raw != "" {
		nextToken = &raw
	}

	entries, token, err := h.reportingService.AuditLogs(c.Request.Context(), from, to, limit, nextToken)
	if err != nil {
		logger.Error("Failed to query audit logs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query audit logs"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAuditLogListResponse(entries, token))
}

// exportAllPayments godoc
// @Summary Export all payments as a spreadsheet
// @Description Streams an xlsx workbook of every payment row in the term/year scope
// @Tags financial-reports
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   term query string true "Term"
// @Param   academicYear query string true "Academic year"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Export failed"
// @Security BearerAuth
// @Router /financial-reports/export/all-payments [get]
func (h *financialReportHandler) exportAllPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	term := c.Query("term")
	academicYear := c.Query("academicYear")
	if term == "" || academicYear == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "term and academicYear are required"})
		return
	}

	// Buffer the workbook so a mid-write failure still yields a clean JSON error.
	var buf bytes.Buffer
	filename, err := h.exportService.ExportAllPayments(c.Request.Context(), term, academicYear, &buf)
	if err != nil {
		logger.Error("Failed to export payments", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export payments"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// exportStudentHistory godoc
// @Summary Export one student's payment history as a spreadsheet
// @Description Streams an xlsx workbook of the student's full payment history
// @Tags financial-reports
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   studentId path int true "Student ID"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Invalid student id"
// @Failure 500 {object} map[string]string "Export failed"
// @Security BearerAuth
// @Router /financial-reports/export/student-history/{studentId} [get]
func (h *financialReportHandler) exportStudentHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studentID, err := strconv.ParseInt(c.Param("studentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "studentId must be an integer"})
		return
	}

	var buf bytes.Buffer
	filename, err := h.exportService.ExportStudentHistory(c.Request.Context(), studentID, &buf)
	if err != nil {
		logger.Error("Failed to export student history", slog.String("error", err.Error()), slog.Int64("student_id", studentID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export student history"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
