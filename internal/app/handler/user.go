package handler

import (
	"net/http"
	"strings"
	"time"

	"CRM-Gateway/internal/app/config"
	"CRM-Gateway/internal/app/ds"
	"CRM-Gateway/internal/app/middleware"
	"CRM-Gateway/internal/app/repository"
	"CRM-Gateway/internal/app/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	repo *repository.Repository
}

func NewUserHandler(repo *repository.Repository) *UserHandler {
	return &UserHandler{
		repo: repo,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	AvatarURL *string `json:"avatar_url"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=NewPassword"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register godoc
// @Summary Register new user
// @Description Create a new gateway user account
// @Tags Users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "User registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/register [post]
func (h *UserHandler) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	user := &ds.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}

	if err := h.repo.User.RegisterUser(user); err != nil {
		logrus.Error(err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user_id": user.ID,
	})
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return JWT tokens
// @Tags Users
// @Accept json
// @Produce json
// @Param request body ds.LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /users/login [post]
func (h *UserHandler) Login(ctx *gin.Context) {
	var req ds.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	user, err := h.repo.User.Authenticate(req.Email, req.Password)
	if err != nil {
		logrus.Error(err)
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// Получаем конфигурацию для JWT
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Error("Failed to get config: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	accessToken, err := utils.GenerateAccessToken(user, cfg.JWTSecret, cfg.JWTAccessExpire)
	if err != nil {
		logrus.Error("Failed to generate access token: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	refreshToken, err := utils.GenerateRefreshToken(user, cfg.JWTSecret, cfg.JWTRefreshExpire)
	if err != nil {
		logrus.Error("Failed to generate refresh token: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	// Сохраняем refresh token и сессию в Redis (если доступен)
	if h.repo.GetRedisClient() != nil {
		err = h.repo.GetRedisClient().SaveRefreshToken(
			ctx.Request.Context(),
			user.ID,
			refreshToken,
			cfg.JWTRefreshExpire,
		)
		if err != nil {
			logrus.Error("Failed to save refresh token: ", err)
		}

		sessionData := map[string]interface{}{
			"user_id":    user.ID,
			"email":      user.Email,
			"is_admin":   user.IsAdmin,
			"login_time": time.Now().Format(time.RFC3339),
			"ip_address": ctx.ClientIP(),
		}

		err = h.repo.GetRedisClient().SaveUserSession(
			ctx.Request.Context(),
			user.ID,
			sessionData,
			cfg.JWTAccessExpire, // TTL такой же как у access token
		)
		if err != nil {
			logrus.Error("Failed to save user session: ", err)
		} else {
			logrus.Infof("User session saved for user_id: %d", user.ID)
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "Bearer",
		"expires_at":    time.Now().Add(cfg.JWTAccessExpire),
		"user_id":       user.ID,
		"email":         user.Email,
		"is_admin":      user.IsAdmin,
	})
}

// GetProfile godoc
// @Summary Get user profile
// @Description Get authenticated user's profile information
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} ds.User
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(ctx *gin.Context) {
	userID, exists := middleware.GetUserID(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	user, err := h.repo.User.GetUserProfile(userID)
	if err != nil {
		logrus.Error(err)
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update user profile
// @Description Update authenticated user's profile information
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile update data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(ctx *gin.Context) {
	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	userID, exists := middleware.GetUserID(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}

	if err := h.repo.User.UpdateProfile(userID, updates); err != nil {
		logrus.Error(err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// ChangePassword godoc
// @Summary Change password
// @Description Change authenticated user's password after verifying the current one
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "Password change data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /users/change-password [put]
func (h *UserHandler) ChangePassword(ctx *gin.Context) {
	var req ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	userID, exists := middleware.GetUserID(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.repo.User.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		logrus.Error(err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// Logout godoc
// @Summary User logout
// @Description Invalidate user token
// @Tags Users
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/logout [post]
func (h *UserHandler) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Authorization header required"})
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Error("Failed to get config: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Добавляем токен в blacklist (если Redis доступен)
	if h.repo.GetRedisClient() != nil {
		err = h.repo.GetRedisClient().AddToBlacklist(
			ctx.Request.Context(),
			tokenString,
			cfg.JWTAccessExpire,
		)
		if err != nil {
			logrus.Error("Failed to add token to blacklist: ", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
			return
		}

		if userID, exists := middleware.GetUserID(ctx); exists {
			err = h.repo.GetRedisClient().DeleteUserSession(ctx.Request.Context(), userID)
			if err != nil {
				logrus.Error("Failed to delete user session: ", err)
			} else {
				logrus.Infof("User session deleted for user_id: %d", userID)
			}
		}
	}

	if userID, exists := middleware.GetUserID(ctx); exists && h.repo.GetRedisClient() != nil {
		h.repo.GetRedisClient().DeleteRefreshToken(ctx.Request.Context(), userID)
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// RefreshToken обновляет access token
func (h *UserHandler) RefreshToken(ctx *gin.Context) {
	var req RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Error("Failed to get config: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Валидируем refresh token
	claims, err := utils.ValidateToken(req.RefreshToken, cfg.JWTSecret)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	// Проверяем, что refresh token есть в Redis
	if h.repo.GetRedisClient() != nil {
		storedToken, err := h.repo.GetRedisClient().GetRefreshToken(
			ctx.Request.Context(),
			claims.UserID,
		)
		if err != nil || storedToken != req.RefreshToken {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token not found"})
			return
		}
	}

	user, err := h.repo.User.GetUserProfile(claims.UserID)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	accessToken, err := utils.GenerateAccessToken(user, cfg.JWTSecret, cfg.JWTAccessExpire)
	if err != nil {
		logrus.Error("Failed to generate access token: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	refreshToken, err := utils.GenerateRefreshToken(user, cfg.JWTSecret, cfg.JWTRefreshExpire)
	if err != nil {
		logrus.Error("Failed to generate refresh token: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	if h.repo.GetRedisClient() != nil {
		err = h.repo.GetRedisClient().SaveRefreshToken(
			ctx.Request.Context(),
			user.ID,
			refreshToken,
			cfg.JWTRefreshExpire,
		)
		if err != nil {
			logrus.Error("Failed to save refresh token: ", err)
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "Bearer",
		"expires_at":    time.Now().Add(cfg.JWTAccessExpire),
	})
}
