package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"spotsolve-be/controllers"
	"spotsolve-be/middlewares"
)

// NewRouter builds the engine with shared middleware and every route group.
func NewRouter(h *controllers.Handler, submitLimit gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middlewares.RequestID())
	if h.Config != nil && len(h.Config.CORSOrigins) > 0 {
		r.Use(middlewares.CORSMiddleware(h.Config.CORSOrigins))
	}
	if h.Metrics != nil {
		r.Use(middlewares.Metrics(h.Metrics))
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	AuthRoutes(r, h)
	IssueRoutes(r, h, submitLimit)
	return r
}
