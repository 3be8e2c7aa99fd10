package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"guildroster/config"
	"guildroster/utils"
)

// AdminLoginHandler handles POST /auth/login. The password is checked
// against the bcrypt hash from config; a successful login issues a JWT
// whose session lives in Redis so logout can revoke it.
func AdminLoginHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	hash := config.AppConfig.AdminPasswordHash
	if hash == "" {
		utils.JSONError(c, http.StatusServiceUnavailable, "admin login is not configured", "")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		logger.Warn("admin login rejected", zap.String("ip", c.ClientIP()))
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	tokenID := uuid.New().String()
	token, err := utils.GenerateAdminToken(tokenID, utils.AdminSessionTTL)
	if err != nil {
		logger.Error("failed to sign admin token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token", "")
		return
	}

	session := utils.AdminSession{
		TokenID:   tokenID,
		IssuedTo:  "admin",
		IP:        c.ClientIP(),
		CreatedAt: time.Now().UTC(),
	}
	if err := utils.SaveAdminSession(utils.GetAuthCacheClient(), session); err != nil {
		logger.Error("failed to save admin session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to persist session", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// AdminLogoutHandler handles POST /auth/logout. Deleting the Redis session
// revokes the presented token immediately.
func AdminLogoutHandler(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		utils.JSONError(c, http.StatusBadRequest, "missing bearer token", "")
		return
	}
	tokenID, err := utils.ExtractTokenID(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid token", "")
		return
	}
	if err := utils.DeleteAdminSession(utils.GetAuthCacheClient(), tokenID); err != nil {
		utils.GetLogger().Error("failed to revoke admin session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to revoke session", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
