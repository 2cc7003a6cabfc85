package controllers

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spotsolve-be/assistant"
	"spotsolve-be/classifier"
	"spotsolve-be/config"
	"spotsolve-be/metrics"
	"spotsolve-be/models"
	"spotsolve-be/repository"
)

type IssueStore interface {
	List(ctx context.Context, f repository.IssueFilter) ([]models.Issue, error)
	Count(ctx context.Context, f repository.IssueFilter) (int64, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Issue, error)
	Create(ctx context.Context, issue *models.Issue) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.IssueStatus, at time.Time) error
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type Classifier interface {
	Classify(ctx context.Context, filename string, image io.Reader) (*classifier.Result, error)
}

type Geocoder interface {
	Reverse(ctx context.Context, lat, lng float64) string
}

// Handler carries the collaborators every route needs.
type Handler struct {
	Issues     IssueStore
	Users      UserStore
	Classifier Classifier
	Geocoder   Geocoder
	Sessions   *assistant.Sessions
	Metrics    *metrics.Metrics
	Config     *config.Config
	Logger     *slog.Logger
	Now        func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// requestContext bounds storage calls the same way for every handler.
func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 10*time.Second)
}
