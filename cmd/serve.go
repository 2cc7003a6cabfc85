package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"spotsolve-be/assistant"
	"spotsolve-be/classifier"
	"spotsolve-be/config"
	"spotsolve-be/controllers"
	"spotsolve-be/geocode"
	"spotsolve-be/metrics"
	"spotsolve-be/middlewares"
	"spotsolve-be/repository"
	"spotsolve-be/routes"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg := config.Load()
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	warnOpenAdminSignup(cfg, logger)

	startCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, db, err := config.ConnectDB(startCtx, cfg)
	if err != nil {
		return err
	}
	defer disconnect(client)()

	rdb, err := config.ConnectRedis(startCtx, cfg)
	if err != nil {
		return err
	}
	defer rdb.Close()

	issues := repository.NewIssueRepository(db)
	users := repository.NewUserRepository(db)
	if err := issues.EnsureIndexes(startCtx); err != nil {
		return fmt.Errorf("issue indexes: %w", err)
	}
	if err := users.EnsureIndexes(startCtx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}

	if err := controllers.RegisterValidators(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}

	h := &controllers.Handler{
		Issues:     issues,
		Users:      users,
		Classifier: classifier.NewClient(cfg.ClassifierURL, cfg.ClassifierTimeout),
		Geocoder: geocode.NewClient(cfg.GeocoderURL, cfg.GeocoderTimeout,
			geocode.NewRedisCache(rdb, cfg.GeocodeCachePrefix, cfg.GeocodeCacheTTL), logger),
		Sessions: assistant.NewSessions(cfg.AssistantReplyDelay, cfg.AssistantSessionTTL),
		Metrics:  metrics.New(),
		Config:   cfg,
		Logger:   logger,
	}

	limiter := middlewares.IssueRateLimiter(rdb, cfg.IssueLimitPrefix, cfg.IssueLimitPerDay)
	r := routes.NewRouter(h, limiter)

	logger.Info("Starting server", slog.String("port", cfg.Port), slog.String("env", cfg.Env))
	return r.Run(":" + cfg.Port)
}

// warnOpenAdminSignup flags production deployments where anyone can
// register an administrator account.
func warnOpenAdminSignup(cfg *config.Config, logger *slog.Logger) bool {
	if !cfg.IsProduction() || cfg.AdminSignupCode != "" {
		return false
	}
	logger.Warn("ADMIN_SIGNUP_CODE is empty; anyone can register as admin")
	return true
}
