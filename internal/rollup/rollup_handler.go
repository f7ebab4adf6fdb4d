package rollup

import (
	"net/http"

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
	l := zap.L().Named("rollup.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rollup.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Get(c *gin.Context) {
	companyID := c.GetString("company_id")
	weekStart := c.Query("week_start")

	resp, err := h.service.Get(c.Request.Context(), companyID, weekStart)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("rollup request failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
