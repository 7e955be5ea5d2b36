package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mubiru-dev/school-fees-api/internal/apperrors"
	"github.com/mubiru-dev/school-fees-api/internal/core/domain"
	portssvc "github.com/mubiru-dev/school-fees-api/internal/core/ports/services"
	"github.com/mubiru-dev/school-fees-api/internal/dto"
	"github.com/mubiru-dev/school-fees-api/internal/middleware"
)

// feePaymentHandler handles HTTP requests on the payment ledger.
type feePaymentHandler struct {
	paymentService   portssvc.PaymentSvcFacade
	reportingService portssvc.ReportingSvcFacade
}

// newFeePaymentHandler creates a new feePaymentHandler.
func newFeePaymentHandler(ps portssvc.PaymentSvcFacade, rs portssvc.ReportingSvcFacade) *feePaymentHandler {
	return &feePaymentHandler{
		paymentService:   ps,
		reportingService: rs,
	}
}

// registerFeePaymentRoutes registers routes related to fee payments. The two
// mutating endpoints additionally carry the rate limiter.
func registerFeePaymentRoutes(rg *gin.RouterGroup, ps portssvc.PaymentSvcFacade, rs portssvc.ReportingSvcFacade, rateLimit gin.HandlerFunc) {
	h := newFeePaymentHandler(ps, rs)

	payments := rg.Group("/fee-payments")
	{
		payments.POST("/record", rateLimit, h.recordPayment)
		payments.GET("/status", h.getCurrentStatus)
		payments.GET("/status/class/:form/:section", h.classStatusSummary)
		payments.GET("/daily-summary/:date", h.dailySummary)
		payments.POST("/fix-payment-status", rateLimit, h.fixPaymentStatus)
		payments.GET("/search-students", h.searchStudents)
	}
}

// recordPayment godoc
// @Summary Record a fee payment
// @Description Appends a payment row with derived balance and status and returns a receipt
// @Tags fee-payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentReceiptResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Student not found"
// @Failure 422 {object} map[string]string "Fee schedule not configured"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /fee-payments/record [post]
func (h *feePaymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.Int64("student_id", req.StudentID), slog.String("month", req.Month))
	logger.Info("Received request to record payment")

	receipt, err := h.paymentService.RecordPayment(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrScheduleNotConfigured):
			logger.Warn("Payment blocked: fee schedule not configured", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "code": "SCHEDULE_NOT_CONFIGURED"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error recording payment", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Student not found for payment", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record payment in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}

	logger.Info("Payment recorded successfully", slog.Int64("payment_id", receipt.PaymentID))
	c.JSON(http.StatusCreated, dto.ToPaymentReceiptResponse(*receipt))
}

// getCurrentStatus godoc
// @Summary Get the current payment status for one billing period
// @Description Returns the latest derived balance and status for a (student, term, month, year) key
// @Tags fee-payments
// @Produce  json
// @Param   studentId query int true "Student ID"
// @Param   term query string true "Term"
// @Param   month query string true "Month"
// @Param   academicYear query string true "Academic year"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Fee schedule not configured"
// @Security BearerAuth
// @Router /fee-payments/status [get]
func (h *feePaymentHandler) getCurrentStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	studentID, err := strconv.ParseInt(c.Query("studentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "studentId must be an integer"})
		return
	}
	key := domain.PaymentKey{
		StudentID:    studentID,
		Term:         c.Query("term"),
		Month:        c.Query("month"),
		AcademicYear: c.Query("academicYear"),
	}
	if key.Term == "" || key.Month == "" || key.AcademicYear == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "term, month and academicYear are required"})
		return
	}

	snapshot, err := h.paymentService.GetCurrentStatus(c.Request.Context(), key)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrScheduleNotConfigured):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "code": "SCHEDULE_NOT_CONFIGURED"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to get current payment status", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get payment status"})
		}
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// classStatusSummary godoc
// @Summary Group a class into payment status buckets
// @Description Returns FULL_PAYMENT, PART_PAYMENT and NON_PAYER buckets for one form/section and billing period
// @Tags fee-payments
// @Produce  json
// @Param   form path string true "Form (e.g. S3)"
// @Param   section path string true "Section (e.g. A)"
// @Param   term query string true "Term"
// @Param   month query string true "Month"
// @Param   academicYear query string true "Academic year"
// @Success 200 {array} dto.PaymentStatusGroupResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to load class status"
// @Security BearerAuth
// @Router /fee-payments/status/class/{form}/{section} [get]
func (h *feePaymentHandler) classStatusSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	form := c.Param("form")
	section := c.Param("section")
	term := c.Query("term")
	month := c.Query("month")
	academicYear := c.Query("academicYear")

	if term == "" || month == "" || academicYear == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "term, month and academicYear are required"})
		return
	}

	groups, err := h.paymentService.ClassStatusSummary(c.Request.Context(), form, section, term, month, academicYear)
	if err != nil {
		logger.Error("Failed to load class status summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load class status summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentStatusGroupResponses(groups))
}

// dailySummary godoc
// @Summary Daily payment summary
// @Description Totals the payments recorded on one date
// @Tags fee-payments
// @Produce  json
// @Param   date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.DailySummaryResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 500 {object} map[string]string "Failed to load summary"
// @Security BearerAuth
// @Router /fee-payments/daily-summary/{date} [get]
func (h *feePaymentHandler) dailySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	summary, err := h.reportingService.DailySummary(c.Request.Context(), date)
	if err != nil {
		logger.Error("Failed to load daily summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load daily summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDailySummaryResponse(*summary))
}

// fixPaymentStatus godoc
// @Summary Repair drifted payment statuses
// @Description Recomputes balance and status for every ledger row and rewrites only drifted rows. Safe to run repeatedly.
// @Tags fee-payments
// @Produce  plain
// @Success 200 {string} string "Repair summary"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Repair failed"
// @Security BearerAuth
// @Router /fee-payments/fix-payment-status [post]
func (h *feePaymentHandler) fixPaymentStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to repair payment statuses")
	summary, err := h.paymentService.RepairStatuses(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to repair payment statuses", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to repair payment statuses"})
		return
	}

	c.String(http.StatusOK, summary)
}

// searchStudents godoc
// @Summary Search the student directory
// @Description Matches the query against student names for the payment UI
// @Tags fee-payments
// @Produce  json
// @Param   query query string true "Name fragment"
// @Success 200 {array} dto.StudentResponse
// @Failure 500 {object} map[string]string "Search failed"
// @Security BearerAuth
// @Router /fee-payments/search-students [get]
func (h *feePaymentHandler) searchStudents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	students, err := h.paymentService.SearchStudents(c.Request.Context(), c.Query("query"))
	if err != nil {
		logger.Error("Failed to search students", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search students"})
		return
	}

	c.JSON(http.StatusOK, dto.ToStudentResponses(students))
}
