package shift

import (
	"github.com/kiwidressing/Maruschedule/internal/middleware"
	"github.com/kiwidressing/Maruschedule/internal/policy"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policySvc policy.Service) {
	shifts := r.Group("/shifts")
	shifts.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		shifts.PUT("",
			middleware.PolicyAuthorize(policySvc, policy.ResourceShift, "write"),
			handler.Upsert,
		)
		shifts.GET("/week",
			middleware.PolicyAuthorize(policySvc, policy.ResourceShift, "read"),
			handler.GetWeek,
		)
		shifts.GET("/company-week",
			middleware.PolicyAuthorize(policySvc, policy.ResourceShift, "read_all"),
			handler.GetCompanyWeek,
		)
	}
}
