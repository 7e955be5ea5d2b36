package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mubiru-dev/school-fees-api/internal/apperrors"
	portssvc "github.com/mubiru-dev/school-fees-api/internal/core/ports/services"
	"github.com/mubiru-dev/school-fees-api/internal/dto"
	"github.com/mubiru-dev/school-fees-api/internal/middleware"
)

// feeSettingHandler handles HTTP requests on the fee schedule.
type feeSettingHandler struct {
	feeScheduleService portssvc.FeeScheduleSvcFacade
}

// newFeeSettingHandler creates a new feeSettingHandler.
func newFeeSettingHandler(fs portssvc.FeeScheduleSvcFacade) *feeSettingHandler {
	return &feeSettingHandler{
		feeScheduleService: fs,
	}
}

// registerFeeSettingRoutes registers fee schedule CRUD routes.
func registerFeeSettingRoutes(rg *gin.RouterGroup, fs portssvc.FeeScheduleSvcFacade) {
	h := newFeeSettingHandler(fs)

	settings := rg.Group("/fees/settings")
	{
		settings.POST("", h.upsertFeeSetting)
		settings.GET("", h.listFeeSettings)
		settings.GET("/:id", h.getFeeSetting)
		settings.PUT("/:id", h.updateFeeSetting)
		settings.DELETE("/:id", h.deleteFeeSetting)
	}
}

// upsertFeeSetting godoc
// @Summary Create a fee setting
// @Description Configures the monthly fee for a (level, academicYear, term) triple; supersedes any prior active setting for the same triple
// @Tags fee-settings
// @Accept  json
// @Produce  json
// @Param   setting body dto.UpsertFeeSettingRequest true "Fee setting"
// @Success 201 {object} dto.FeeSettingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to save setting"
// @Security BearerAuth
// @Router /fees/settings [post]
func (h *feeSettingHandler) upsertFeeSetting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertFeeSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertFeeSetting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	setting, err := h.feeScheduleService.UpsertFeeSetting(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error saving fee setting", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to save fee setting", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save fee setting"})
		}
		return
	}

	logger.Info("Fee setting saved", slog.String("fee_setting_id", setting.FeeSettingID))
	c.JSON(http.StatusCreated, dto.ToFeeSettingResponse(*setting))
}

// updateFeeSetting godoc
// @Summary Update a fee setting
// @Description Rewrites an existing fee setting by id
// @Tags fee-settings
// @Accept  json
// @Produce  json
// @Param   id path string true "Fee setting ID"
// @Param   setting body dto.UpsertFeeSettingRequest true "Fee setting"
// @Success 200 {object} dto.FeeSettingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Setting not found"
// @Failure 500 {object} map[string]string "Failed to update setting"
// @Security BearerAuth
// @Router /fees/settings/{id} [put]
func (h *feeSettingHandler) updateFeeSetting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertFeeSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.FeeSettingID = c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	setting, err := h.feeScheduleService.UpsertFeeSetting(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Fee setting not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update fee setting", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update fee setting"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFeeSettingResponse(*setting))
}

// getFeeSetting godoc
// @Summary Get a fee setting
// @Tags fee-settings
// @Produce  json
// @Param   id path string true "Fee setting ID"
// @Success 200 {object} dto.FeeSettingResponse
// @Failure 404 {object} map[string]string "Setting not found"
// @Failure 500 {object} map[string]string "Failed to load setting"
// @Security BearerAuth
// @Router /fees/settings/{id} [get]
func (h *feeSettingHandler) getFeeSetting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	setting, err := h.feeScheduleService.GetFeeSetting(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fee setting not found"})
		} else {
			logger.Error("Failed to load fee setting", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load fee setting"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFeeSettingResponse(*setting))
}

// listFeeSettings godoc
// @Summary List all fee settings
// @Tags fee-settings
// @Produce  json
// @Success 200 {array} dto.FeeSettingResponse
// @Failure 500 {object} map[string]string "Failed to list settings"
// @Security BearerAuth
// @Router /fees/settings [get]
func (h *feeSettingHandler) listFeeSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	settings, err := h.feeScheduleService.ListFeeSettings(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list fee settings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fee settings"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFeeSettingResponses(settings))
}

// deleteFeeSetting godoc
// @Summary Delete a fee setting
// @Description Deletes an unreferenced setting; a setting referenced by payments is deactivated instead
// @Tags fee-settings
// @Produce  json
// @Param   id path string true "Fee setting ID"
// @Success 204 "Deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Setting not found"
// @Failure 500 {object} map[string]string "Failed to delete setting"
// @Security BearerAuth
// @Router /fees/settings/{id} [delete]
func (h *feeSettingHandler) deleteFeeSetting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.feeScheduleService.DeleteFeeSetting(c.Request.Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fee setting not found"})
		} else {
			logger.Error("Failed to delete fee setting", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete fee setting"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
