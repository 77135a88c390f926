package handler

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"

	"reportbox/backend/internal/models"
)

// AdminLoginRequest is the DTO for POST /api/admin/login.
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// generateAdminJWT issues the session token the dashboard holds for its tab
// lifetime. This is a demo-grade gate, not real access control: the report
// routes themselves are not guarded.
func (h *Handler) generateAdminJWT() (string, error) {
	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(12 * time.Hour).Unix(),
		"iss":  "reportbox-service",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.Cfg.JWTSecret))
}

// AdminLogin handles POST /api/admin/login against the configured password.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			models.Fail(http.StatusBadRequest, "Password is required.", err))
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.Cfg.AdminPassword)) != 1 {
		c.JSON(http.StatusUnauthorized,
			models.Fail(http.StatusUnauthorized, "Invalid admin password", nil))
		return
	}

	token, err := h.generateAdminJWT()
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			models.Fail(http.StatusInternalServerError, "Failed to create session token", err))
		return
	}

	c.JSON(http.StatusOK,
		models.OK(http.StatusOK, "Login successful", gin.H{"token": token}))
}
