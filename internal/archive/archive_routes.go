package archive

import (
	"github.com/kiwidressing/Maruschedule/internal/middleware"
	"github.com/kiwidressing/Maruschedule/internal/policy"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the archive endpoints. idempotency guards the
// create endpoint so a retried request cannot snapshot the same week
// twice; pass nil to run without it (tests, no Redis).
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, policySvc policy.Service, idempotency gin.HandlerFunc) {
	archives := r.Group("/archives")
	archives.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		create := []gin.HandlerFunc{
			middleware.PolicyAuthorize(policySvc, policy.ResourceArchive, "write"),
		}
		if idempotency != nil {
			create = append(create, idempotency)
		}
		archives.POST("", append(create, handler.Create)...)

		archives.GET("",
			middleware.PolicyAuthorize(policySvc, policy.ResourceArchive, "read"),
			handler.List,
		)
		archives.GET("/:id",
			middleware.PolicyAuthorize(policySvc, policy.ResourceArchive, "read"),
			handler.Get,
		)
		archives.DELETE("/:id",
			middleware.PolicyAuthorize(policySvc, policy.ResourceArchive, "write"),
			handler.Delete,
		)
	}
}
