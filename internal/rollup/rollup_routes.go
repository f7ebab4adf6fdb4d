package rollup

import (
	"github.com/kiwidressing/Maruschedule/internal/middleware"
	"github.com/kiwidressing/Maruschedule/internal/policy"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policySvc policy.Service) {
	rollups := r.Group("/rollups")
	rollups.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		rollups.GET("",
			middleware.PolicyAuthorize(policySvc, policy.ResourceRollup, "read"),
			handler.Get,
		)
	}
}
