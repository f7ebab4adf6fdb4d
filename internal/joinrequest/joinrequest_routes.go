package joinrequest

import (
	"github.com/kiwidressing/Maruschedule/internal/middleware"
	"github.com/kiwidressing/Maruschedule/internal/policy"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policySvc policy.Service) {
	requests := r.Group("/join-requests")
	requests.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		requests.GET("",
			middleware.PolicyAuthorize(policySvc, policy.ResourceJoinRequest, "read"),
			handler.ListPending,
		)
		requests.POST("/:id/approve",
			middleware.PolicyAuthorize(policySvc, policy.ResourceJoinRequest, "resolve"),
			handler.Approve,
		)
		requests.POST("/:id/reject",
			middleware.PolicyAuthorize(policySvc, policy.ResourceJoinRequest, "resolve"),
			handler.Reject,
		)
	}
}
