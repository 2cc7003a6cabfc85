package routes

import (
	"github.com/gin-gonic/gin"

	"spotsolve-be/controllers"
	"spotsolve-be/middlewares"
	"spotsolve-be/models"
)

// IssueRoutes sets up the issue, statistics and assistant routes.
// submitLimit is applied to issue creation; nil disables it.
func IssueRoutes(r *gin.Engine, h *controllers.Handler, submitLimit gin.HandlerFunc) {
	auth := middlewares.AuthMiddleware(h.Config.JWTSecret)
	citizenOnly := middlewares.RequireRole(models.Citizen, "Admin accounts cannot report issues. Please use a citizen account.")
	adminOnly := middlewares.RequireRole(models.Admin, "Only administrators can change issue status")

	create := []gin.HandlerFunc{auth, citizenOnly}
	if submitLimit != nil {
		create = append(create, submitLimit)
	}
	create = append(create, h.CreateIssue)

	issue := r.Group("/api/issue")
	{
		issue.GET("", auth, h.GetAllIssues)
		issue.POST("/create", create...)
		issue.POST("/classify", auth, h.ClassifyImage)
		issue.GET("/mine", auth, h.GetIssuesByUser)
		issue.GET("/recent", h.RecentIssues)
		issue.GET("/analytics", auth, h.GetIssueAnalytics)
		issue.GET("/:id", auth, h.GetIssue)
		issue.PUT("/:id/status", auth, adminOnly, h.UpdateIssueStatus)
	}

	r.GET("/api/stats/home", h.GetHomeStats)

	chat := r.Group("/api/assistant", auth, middlewares.RequireRole(models.Citizen, "The assistant is available to citizen accounts only"))
	{
		chat.GET("/messages", h.GetAssistantTranscript)
		chat.POST("/messages", h.SendAssistantMessage)
		chat.DELETE("/messages", h.ResetAssistant)
	}
}
