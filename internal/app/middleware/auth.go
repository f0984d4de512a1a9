package middleware

import (
	"net/http"
	"strings"

	"CRM-Gateway/internal/app/config"
	"CRM-Gateway/internal/app/ds"
	"CRM-Gateway/internal/app/repository"
	"CRM-Gateway/internal/app/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	jwtPrefix = "Bearer "
)

// AuthMiddleware проверяет JWT токен и добавляет пользователя в контекст
func AuthMiddleware(repo *repository.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, jwtPrefix) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Bearer token required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, jwtPrefix)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is empty"})
			c.Abort()
			return
		}

		cfg, err := getConfig()
		if err != nil {
			logrus.Error("Failed to get config: ", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			c.Abort()
			return
		}

		// Проверяем токен в blacklist (если Redis доступен)
		if repo.GetRedisClient() != nil {
			inBlacklist, err := repo.GetRedisClient().IsInBlacklist(c.Request.Context(), tokenString)
			if err != nil {
				logrus.Error("Failed to check token in blacklist: ", err)
			} else if inBlacklist {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is invalidated"})
				c.Abort()
				return
			}
		}

		claims, err := utils.ValidateToken(tokenString, cfg.JWTSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("is_admin", claims.IsAdmin)

		logrus.Debugf("User authenticated: %s (ID: %d, Admin: %t)",
			claims.Email, claims.UserID, claims.IsAdmin)

		c.Next()
	}
}

// AdminOnly middleware проверяет, что пользователь является администратором
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("is_admin")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if !isAdmin.(bool) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuth добавляет пользователя в контекст если токен валиден, но не требует аутентификации
func OptionalAuth(repo *repository.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, jwtPrefix) {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, jwtPrefix)
		if tokenString == "" {
			c.Next()
			return
		}

		cfg, err := getConfig()
		if err != nil {
			logrus.Error("Failed to get config: ", err)
			c.Next()
			return
		}

		if repo.GetRedisClient() != nil {
			inBlacklist, err := repo.GetRedisClient().IsInBlacklist(c.Request.Context(), tokenString)
			if err == nil && inBlacklist {
				c.Next()
				return
			}
		}

		claims, err := utils.ValidateToken(tokenString, cfg.JWTSecret)
		if err != nil {
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("is_admin", claims.IsAdmin)

		c.Next()
	}
}

// GetUserFromContext извлекает информацию о пользователе из контекста
func GetUserFromContext(c *gin.Context) (*ds.JWTClaims, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return nil, false
	}

	email, exists := c.Get("email")
	if !exists {
		return nil, false
	}

	isAdmin, exists := c.Get("is_admin")
	if !exists {
		return nil, false
	}

	return &ds.JWTClaims{
		UserID:  userID.(uint),
		Email:   email.(string),
		IsAdmin: isAdmin.(bool),
	}, true
}

// getConfig вспомогательная функция для получения конфигурации
func getConfig() (*config.Config, error) {
	return config.NewConfig()
}
