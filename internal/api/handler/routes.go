package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches every endpoint to the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/ReportForm", h.ListReports)
		api.POST("/ReportForm", h.CreateReport)
		api.PATCH("/ReportForm/:id", h.UpdateReportStatus)

		api.POST("/send-otp", h.SendOTP)
		api.POST("/verify-otp", h.VerifyOTP)

		api.POST("/locate", h.Locate)

		api.POST("/admin/login", h.AdminLogin)
	}

	chat := r.Group("/chat")
	{
		chat.POST("/users", h.CreateChatUser)
		chat.POST("/chat", h.Chat)
		chat.GET("/history/:userId", h.ChatHistory)
	}

	r.GET("/ws/reports", h.ServeReportFeed)
}
