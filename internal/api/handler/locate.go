package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"reportbox/backend/internal/geocode"
	"reportbox/backend/internal/models"
)

// LocateRequest is the DTO for POST /api/locate.
type LocateRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

// Locate handles POST /api/locate: reverse geocode coordinates into a
// human-readable address for the submission form.
func (h *Handler) Locate(c *gin.Context) {
	var req LocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			models.Fail(http.StatusBadRequest, "Invalid coordinates.", err))
		return
	}

	address, err := h.Geocoder.Reverse(c.Request.Context(), *req.Latitude, *req.Longitude)
	if errors.Is(err, geocode.ErrNoAddress) {
		c.JSON(http.StatusNotFound,
			models.Fail(http.StatusNotFound, "Address not found from coordinates.", err))
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway,
			models.Fail(http.StatusBadGateway, "Failed to retrieve address from coordinates.", err))
		return
	}

	c.JSON(http.StatusOK,
		models.OK(http.StatusOK, "Address resolved successfully.", gin.H{"location": address}))
}
