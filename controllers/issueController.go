package controllers

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spotsolve-be/analytics"
	"spotsolve-be/middlewares"
	"spotsolve-be/models"
	"spotsolve-be/repository"
)

// CreateIssue files a new citizen report
func (h *Handler) CreateIssue(c *gin.Context) {
	userID, _, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	ownerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input struct {
		Title        string   `json:"title" binding:"required,max=200"`
		Description  string   `json:"description" binding:"required,max=1000"`
		Department   string   `json:"department"`
		Priority     string   `json:"priority"`
		Location     string   `json:"location" binding:"max=300"`
		ImageURL     *string  `json:"imageUrl,omitempty"`
		AICategory   *string  `json:"aiCategory,omitempty"`
		AIConfidence *float64 `json:"aiConfidence,omitempty"`
		Latitude     *float64 `json:"latitude" binding:"required,latitude"`
		Longitude    *float64 `json:"longitude" binding:"required,longitude"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if len(title) < 5 || len(description) < 20 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please add a clearer title (5+) and description (20+) before submitting."})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	location := strings.TrimSpace(input.Location)
	if location == "" && h.Geocoder != nil {
		location = h.Geocoder.Reverse(ctx, *input.Latitude, *input.Longitude)
	}

	issue := models.Issue{
		ID:          primitive.NewObjectID(),
		UserID:      ownerID,
		Title:       title,
		Description: description,
		ImageURL:    input.ImageURL,
		Location:    location,
		Department:  models.ParseDepartment(input.Department),
		Priority:    models.ParsePriority(input.Priority),
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Status:      models.Reported,
		CreatedAt:   h.now(),
	}
	if input.AICategory != nil {
		if category := analytics.NormalizeAICategory(*input.AICategory); category != "" {
			issue.AICategory = &category
			issue.AIConfidence = validConfidence(input.AIConfidence)
		}
	}

	if err := h.Issues.Create(ctx, &issue); err != nil {
		h.logger().Error("Failed to create issue", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Issue submission failed. Please try once more."})
		return
	}

	if h.Metrics != nil {
		h.Metrics.IssuesCreated.WithLabelValues(string(issue.Department)).Inc()
	}
	c.JSON(http.StatusCreated, issue)
}

func validConfidence(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || *v < 0 || *v > 1 {
		return nil
	}
	return v
}

// GetAllIssues lists issues with filtering and pagination
func (h *Handler) GetAllIssues(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := repository.IssueFilter{
		Search: c.Query("search"),
		Skip:   int64((page - 1) * limit),
		Limit:  int64(limit),
	}
	if dept := c.Query("department"); dept != "" && dept != "all" {
		filter.Department = models.ParseDepartment(dept)
	}
	if status := c.Query("status"); status != "" && status != "all" {
		st, ok := models.ParseStatus(status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		filter.Status = st
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	total, err := h.Issues.Count(ctx, filter)
	if err != nil {
		h.logger().Error("Failed to count issues", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count issues"})
		return
	}

	issues, err := h.Issues.List(ctx, filter)
	if err != nil {
		h.logger().Error("Failed to retrieve issues", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"issues":      issues,
		"totalIssues": total,
		"totalPages":  int((total + int64(limit) - 1) / int64(limit)),
		"currentPage": page,
	})
}

// GetIssue retrieves an issue by its ID
func (h *Handler) GetIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	issue, err := h.Issues.Get(ctx, issueID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	c.JSON(http.StatusOK, issue)
}

// GetIssuesByUser retrieves the caller's issues, newest first
func (h *Handler) GetIssuesByUser(c *gin.Context) {
	issues, ok := h.callerIssues(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, issues)
}

// callerIssues loads the authenticated user's issues and writes the error
// response itself when that fails.
func (h *Handler) callerIssues(c *gin.Context) ([]models.Issue, bool) {
	userID, _, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, false
	}
	ownerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return nil, false
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	issues, err := h.Issues.List(ctx, repository.IssueFilter{UserID: &ownerID})
	if err != nil {
		h.logger().Error("Failed to retrieve issues", slog.String("user", userID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return nil, false
	}
	return issues, true
}

// UpdateIssueStatus lets an administrator move an issue through its lifecycle
func (h *Handler) UpdateIssueStatus(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required,issue_status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	status, _ := models.ParseStatus(input.Status)

	ctx, cancel := requestContext(c)
	defer cancel()

	at := h.now()
	if err := h.Issues.UpdateStatus(ctx, issueID, status, at); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
			return
		}
		h.logger().Error("Failed to update issue", slog.String("issue", issueID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		return
	}

	if h.Metrics != nil {
		h.Metrics.StatusChanges.WithLabelValues(string(status)).Inc()
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Issue updated successfully",
		"status":    status,
		"updatedAt": at,
	})
}

// recentIssueLimit caps the pins shown on the public home map.
const recentIssueLimit = 19

// RecentIssues returns the most recent issues that have coordinates
func (h *Handler) RecentIssues(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	issues, err := h.Issues.List(ctx, repository.IssueFilter{WithCoordinates: true, Limit: recentIssueLimit})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recent issues"})
		return
	}

	type IssueResponse struct {
		ID         string             `json:"id"`
		Title      string             `json:"title"`
		Latitude   float64            `json:"latitude"`
		Longitude  float64            `json:"longitude"`
		Location   string             `json:"location"`
		Department models.Department  `json:"department"`
		Status     models.IssueStatus `json:"status"`
		CreatedAt  time.Time          `json:"createdAt"`
	}

	response := []IssueResponse{}
	for _, issue := range issues {
		if _, ok := analytics.CommunityKey(issue.Latitude, issue.Longitude); !ok {
			continue
		}
		response = append(response, IssueResponse{
			ID:         issue.ID.Hex(),
			Title:      issue.Title,
			Latitude:   *issue.Latitude,
			Longitude:  *issue.Longitude,
			Location:   issue.Location,
			Department: issue.Department,
			Status:     issue.Status,
			CreatedAt:  issue.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}
