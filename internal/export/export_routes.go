package export

import (
	"github.com/kiwidressing/Maruschedule/internal/middleware"
	"github.com/kiwidressing/Maruschedule/internal/policy"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policySvc policy.Service) {
	exports := r.Group("/exports")
	exports.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		exports.GET("/week",
			middleware.PolicyAuthorize(policySvc, policy.ResourceExport, "read"),
			middleware.RateLimitByUser(0.5, 3),
			handler.Week,
		)
		exports.GET("/company-week",
			middleware.PolicyAuthorize(policySvc, policy.ResourceExport, "read_all"),
			middleware.RateLimitByUser(0.5, 3),
			handler.CompanyWeek,
		)
		exports.GET("/archives/:id",
			middleware.PolicyAuthorize(policySvc, policy.ResourceExport, "read"),
			middleware.RateLimitByUser(0.5, 3),
			handler.Archive,
		)
	}
}
