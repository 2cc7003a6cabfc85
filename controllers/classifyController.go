package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const maxImageBytes = 10 << 20

// ClassifyImage forwards an uploaded photo to the classifier and returns the
// suggested category. Classifier failures are reported but never block a
// submission: the client may file the issue without an AI category.
func (h *Handler) ClassifyImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read image"})
		return
	}
	defer file.Close()

	result, err := h.Classifier.Classify(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		h.countClassification("error")
		h.logger().Warn("Image classification failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if result == nil {
		h.countClassification("none")
		c.JSON(http.StatusOK, gin.H{"detected": false})
		return
	}

	h.countClassification("detected")
	c.JSON(http.StatusOK, gin.H{
		"detected":   true,
		"category":   result.Category,
		"confidence": result.Confidence,
	})
}

func (h *Handler) countClassification(outcome string) {
	if h.Metrics != nil {
		h.Metrics.Classifications.WithLabelValues(outcome).Inc()
	}
}
