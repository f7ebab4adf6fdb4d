package export

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
	l := zap.L().Named("export.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("export.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("export request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) stream(c *gin.Context, file File) {
	metrics.ExportsTotal.WithLabelValues(formatParam(c)).Inc()
	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func formatParam(c *gin.Context) string {
	return c.DefaultQuery("format", FormatXLSX)
}

func (h *Handler) Week(c *gin.Context) {
	userID := c.GetString("user_id_validated")
	weekStart := c.Query("week_start")

	file, err := h.service.UserWeek(c.Request.Context(), userID, weekStart, formatParam(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.stream(c, file)
}

func (h *Handler) CompanyWeek(c *gin.Context) {
	companyID := c.GetString("company_id")
	weekStart := c.Query("week_start")

	file, err := h.service.CompanyWeek(c.Request.Context(), companyID, weekStart, formatParam(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.stream(c, file)
}

func (h *Handler) Archive(c *gin.Context) {
	userID := c.GetString("user_id_validated")
	archiveID := c.Param("id")

	file, err := h.service.Archive(c.Request.Context(), userID, archiveID, formatParam(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.stream(c, file)
}
