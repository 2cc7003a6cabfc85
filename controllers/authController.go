package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spotsolve-be/middlewares"
	"spotsolve-be/models"
	"spotsolve-be/repository"
	authUtils "spotsolve-be/utils"
)

func userResponse(user *models.User) gin.H {
	return gin.H{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
		"createdAt": user.CreatedAt,
	}
}

// RegisterUser handles citizen and admin registration
func (h *Handler) RegisterUser(c *gin.Context) {
	var input struct {
		Name      string `json:"name" binding:"required,max=50"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=6"`
		Role      string `json:"role" binding:"omitempty,oneof=citizen admin"`
		AdminCode string `json:"adminCode"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := models.ParseRole(input.Role)
	if role == models.Admin && h.Config.AdminSignupCode != "" && input.AdminCode != h.Config.AdminSignupCode {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid admin signup code."})
		return
	}

	now := h.now()
	user := models.User{
		Name:      input.Name,
		Email:     strings.ToLower(input.Email),
		Password:  input.Password,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.HashPassword(); err != nil {
		h.logger().Error("Error hashing password", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User with this email already exists"})
			return
		}
		h.logger().Error("Error inserting user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusCreated, userResponse(&user))
}

// LoginUser handles user login
func (h *Handler) LoginUser(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.Users.FindByEmail(ctx, strings.ToLower(input.Email))
	if err != nil || !user.ComparePassword(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := authUtils.GenerateToken(user.ID.Hex(), user.Role, h.Config.JWTSecret, h.Config.JWTTTL)
	if err != nil {
		h.logger().Error("Error generating token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	// For production, don't set domain to allow cross-origin cookies
	domain := h.Config.Domain
	if h.Config.IsProduction() {
		domain = ""
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		MaxAge:   int(h.Config.JWTTTL.Seconds()),
		Path:     "/",
		Domain:   domain,
		Secure:   h.Config.IsProduction(),
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})

	resp := userResponse(user)
	resp["token"] = token
	c.JSON(http.StatusOK, resp)
}

// GetMe retrieves the authenticated user's information
func (h *Handler) GetMe(c *gin.Context) {
	userID, _, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.Users.FindByID(ctx, objectID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, userResponse(user))
}

// LogoutUser clears the auth_token cookie
func (h *Handler) LogoutUser(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", h.Config.Domain, h.Config.IsProduction(), true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
