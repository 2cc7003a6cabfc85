package routes

import (
	"github.com/gin-gonic/gin"

	"spotsolve-be/controllers"
	"spotsolve-be/middlewares"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(r *gin.Engine, h *controllers.Handler) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", h.RegisterUser)
		auth.POST("/login", h.LoginUser)
		auth.POST("/logout", h.LogoutUser)
		auth.GET("/me", middlewares.AuthMiddleware(h.Config.JWTSecret), h.GetMe)
	}
}
