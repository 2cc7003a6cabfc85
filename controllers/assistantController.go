package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spotsolve-be/middlewares"
)

// SendAssistantMessage answers a citizen question using their own reports
func (h *Handler) SendAssistantMessage(c *gin.Context) {
	var input struct {
		Text string `json:"text" binding:"required,max=2000"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issues, ok := h.callerIssues(c)
	if !ok {
		return
	}
	userID, _, _ := middlewares.CurrentUser(c)

	user, reply, ok := h.Sessions.Get(userID).Send(input.Text, issues)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is empty"})
		return
	}

	if h.Metrics != nil {
		h.Metrics.AssistantIntents.WithLabelValues(string(reply.Intent)).Inc()
	}
	c.JSON(http.StatusOK, gin.H{"message": user, "reply": reply})
}

// GetAssistantTranscript returns the visible conversation
func (h *Handler) GetAssistantTranscript(c *gin.Context) {
	userID, _, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": h.Sessions.Get(userID).Messages()})
}

// ResetAssistant starts the conversation over
func (h *Handler) ResetAssistant(c *gin.Context) {
	userID, _, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	h.Sessions.Reset(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Conversation cleared"})
}
