package company

import (
	"github.com/kiwidressing/Maruschedule/internal/middleware"
	"github.com/kiwidressing/Maruschedule/internal/policy"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policySvc policy.Service) {
	// Invite-code lookup is used before the caller has an account.
	r.GET("/companies/by-code/:code", middleware.RateLimitByIP(0.5, 5), handler.GetByInviteCode)

	companies := r.Group("/companies")
	companies.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		companies.GET("/me",
			middleware.PolicyAuthorize(policySvc, policy.ResourceCompany, "read"),
			handler.GetMine,
		)
		companies.PATCH("/me",
			middleware.PolicyAuthorize(policySvc, policy.ResourceCompany, "update"),
			handler.Rename,
		)
	}
}
