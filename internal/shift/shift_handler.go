package shift

import (
	"net/http"

	"github.com/kiwidressing/Maruschedule/internal/metrics"
	"github.com/kiwidressing/Maruschedule/internal/shared/apperror"
	"github.com/kiwidressing/Maruschedule/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("shift.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("shift.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("shift request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Upsert(c *gin.Context) {
	userID := c.GetString("user_id_validated")
	companyID := c.GetString("company_id")

	var req UpsertShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http upsert shift validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Upsert(c.Request.Context(), userID, companyID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	metrics.ShiftUpsertsTotal.Inc()
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetWeek(c *gin.Context) {
	userID := c.GetString("user_id_validated")
	weekStart := c.Query("week_start")

	resp, err := h.service.GetWeek(c.Request.Context(), userID, weekStart)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetCompanyWeek(c *gin.Context) {
	companyID := c.GetString("company_id")
	weekStart := c.Query("week_start")

	resp, err := h.service.GetCompanyWeek(c.Request.Context(), companyID, weekStart)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
