package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reportbox/backend/internal/models"
)

// SendOTPRequest is the DTO for POST /api/send-otp.
type SendOTPRequest struct {
	Phone string `json:"phone" binding:"required,numeric"`
}

// VerifyOTPRequest is the DTO for POST /api/verify-otp.
type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required,numeric"`
	OTP   string `json:"otp" binding:"required"`
}

// SendOTP handles POST /api/send-otp.
func (h *Handler) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			models.Fail(http.StatusBadRequest, "Invalid phone number.", err))
		return
	}

	normalized, err := h.OTP.SendOTP(c.Request.Context(), req.Phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			models.Fail(http.StatusInternalServerError, "Failed to send OTP", err))
		return
	}

	c.JSON(http.StatusOK,
		models.OK(http.StatusOK, "OTP sent successfully", gin.H{"phone": normalized}))
}

// VerifyOTP handles POST /api/verify-otp. The result is a UI gate only:
// report creation never checks it.
func (h *Handler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			models.Fail(http.StatusBadRequest, "Invalid verification payload.", err))
		return
	}

	approved, err := h.OTP.VerifyOTP(c.Request.Context(), req.Phone, req.OTP)
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			models.Fail(http.StatusInternalServerError, "Failed to verify OTP", err))
		return
	}
	if !approved {
		c.JSON(http.StatusBadRequest,
			models.Fail(http.StatusBadRequest, "Invalid OTP", nil))
		return
	}

	c.JSON(http.StatusOK,
		models.OK(http.StatusOK, "OTP verified successfully", nil))
}
