package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"spotsolve-be/analytics"
	"spotsolve-be/middlewares"
	"spotsolve-be/models"
	"spotsolve-be/repository"
)

// GetIssueAnalytics returns dashboard aggregates. Citizens get figures for
// their own reports; administrators get the whole city.
func (h *Handler) GetIssueAnalytics(c *gin.Context) {
	_, role, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if role != models.Admin {
		issues, ok := h.callerIssues(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, analytics.Summarize(issues, h.now()))
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	issues, err := h.Issues.List(ctx, repository.IssueFilter{})
	if err != nil {
		h.logger().Error("Failed to load issues for analytics", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get analytics"})
		return
	}
	c.JSON(http.StatusOK, analytics.Summarize(issues, h.now()))
}

// GetHomeStats returns the public landing page counters
func (h *Handler) GetHomeStats(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	issues, err := h.Issues.List(ctx, repository.IssueFilter{})
	if err != nil {
		h.logger().Error("Failed to load issues for home stats", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get stats"})
		return
	}

	s := analytics.Summarize(issues, h.now())
	c.JSON(http.StatusOK, gin.H{
		"resolvedCount":    s.Statuses.Resolved,
		"communities":      s.Communities,
		"communityBadge":   s.CommunityBadge,
		"avgResponseHours": s.AvgResolution,
		"avgResponseLabel": s.ResponseLabel,
		"activeUsers":      s.ActiveReporters,
		"totalIssues":      s.Statuses.Total,
		"openIssues":       s.Statuses.Open(),
	})
}
