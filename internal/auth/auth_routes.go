package auth

import (
	"github.com/kiwidressing/Maruschedule/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/refresh", handler.RefreshToken)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), handler.Me)
		auth.PATCH("/me", middleware.AuthMiddleware(), middleware.RateLimitByUser(1, 3), handler.UpdateMe)

		auth.POST("/register", middleware.RateLimitByIP(0.1, 3), handler.RegisterIndividual)
		auth.POST("/register/company", middleware.RateLimitByIP(0.1, 3), handler.RegisterWithCompany)
		auth.POST("/register/join", middleware.RateLimitByIP(0.1, 3), handler.RegisterWithInvite)
	}
}
