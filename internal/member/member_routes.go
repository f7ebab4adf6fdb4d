package member

import (
	"github.com/kiwidressing/Maruschedule/internal/middleware"
	"github.com/kiwidressing/Maruschedule/internal/policy"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policySvc policy.Service) {
	members := r.Group("/companies/me/members")
	members.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		members.GET("",
			middleware.PolicyAuthorize(policySvc, policy.ResourceMember, "read"),
			handler.List,
		)
		members.POST("/:id/promote",
			middleware.PolicyAuthorize(policySvc, policy.ResourceMember, "promote"),
			handler.Promote,
		)
		members.DELETE("/:id",
			middleware.PolicyAuthorize(policySvc, policy.ResourceMember, "delete"),
			handler.Remove,
		)
	}

	// Leaving is self-service, so no policy check beyond auth.
	r.POST("/companies/me/withdraw",
		middleware.AuthMiddleware(), middleware.ExtractUserID(),
		handler.Withdraw,
	)
}
