package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"reportbox/backend/internal/models"
	"reportbox/backend/internal/storage"
)

// CreateReportRequest is the DTO for POST /api/ReportForm.
type CreateReportRequest struct {
	Name        string   `json:"name" binding:"required,max=50"`
	Email       string   `json:"email" binding:"required"`
	Phone       string   `json:"phone"`
	Location    string   `json:"location" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Priority    string   `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	MediaURL    string   `json:"mediaURL"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// UpdateStatusRequest is the DTO for PATCH /api/ReportForm/:id.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in-progress resolved"`
}

// ListReports handles GET /api/ReportForm.
func (h *Handler) ListReports(c *gin.Context) {
	reports, err := h.Reports.ListReports(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			models.Fail(http.StatusInternalServerError, "Failed to fetch report data.", err))
		return
	}

	c.JSON(http.StatusOK,
		models.OK(http.StatusOK, "Report data fetched successfully.", reports))
}

// CreateReport handles POST /api/ReportForm.
func (h *Handler) CreateReport(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			models.Fail(http.StatusBadRequest, "Invalid report payload.", err))
		return
	}

	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}

	report := models.Report{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Location:    req.Location,
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		MediaURL:    req.MediaURL,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Status:      models.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.Reports.InsertReport(c.Request.Context(), &report); err != nil {
		c.JSON(http.StatusInternalServerError,
			models.Fail(http.StatusInternalServerError, "Failed to submit report.", err))
		return
	}

	if h.Feed != nil {
		h.Feed.Publish(report)
	}
	if h.Notifier != nil {
		go h.Notifier.ReportCreated(&report)
	}

	c.JSON(http.StatusCreated,
		models.OK(http.StatusCreated, "Report submitted successfully.", report))
}

// UpdateReportStatus handles PATCH /api/ReportForm/:id. Only the status field
// moves; everything else stays as submitted.
func (h *Handler) UpdateReportStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			models.Fail(http.StatusBadRequest, "Invalid status payload.", err))
		return
	}

	report, err := h.Reports.UpdateReportStatus(c.Request.Context(), c.Param("id"), req.Status)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound,
			models.Fail(http.StatusNotFound, "Report not found.", err))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			models.Fail(http.StatusInternalServerError, "Failed to update report status.", err))
		return
	}

	c.JSON(http.StatusOK,
		models.OK(http.StatusOK, "Report status updated successfully.", report))
}
