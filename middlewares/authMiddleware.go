package middlewares

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"spotsolve-be/models"
	authUtils "spotsolve-be/utils"
)

const (
	userIDKey = "user_id"
	roleKey   = "role"
)

// AuthMiddleware accepts a bearer token or the auth_token cookie.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtSecret == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "JWT secret not configured"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if tokenString == "" {
			if cookie, err := c.Cookie("auth_token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No authorization token provided"})
			c.Abort()
			return
		}

		claims, err := authUtils.ParseToken(tokenString, jwtSecret)
		if err != nil {
			slog.Debug("Token validation failed", slog.String("error", err.Error()))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization token"})
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(roleKey, claims.Role)
		c.Next()
	}
}

// CurrentUser returns the caller set by AuthMiddleware.
func CurrentUser(c *gin.Context) (userID string, role models.Role, ok bool) {
	userID = c.GetString(userIDKey)
	if userID == "" {
		return "", "", false
	}
	if v, exists := c.Get(roleKey); exists {
		role, _ = v.(models.Role)
	}
	return userID, role, true
}

// RequireRole aborts with 403 unless the caller has the given role.
func RequireRole(role models.Role, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, current, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}
		if current != role {
			c.JSON(http.StatusForbidden, gin.H{"error": message})
			c.Abort()
			return
		}
		c.Next()
	}
}
