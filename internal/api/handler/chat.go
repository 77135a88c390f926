package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reportbox/backend/internal/models"
)

// contextTurns is how many past turns the assistant prompt sees.
const contextTurns = 5

// ChatRequest is the DTO for POST /chat/chat.
type ChatRequest struct {
	UserID  string `json:"userId" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// The /chat routes keep the assistant service's original bare response
// shapes ({reply}, {history}, {userId}) rather than the /api envelope; the
// chat page is written against them.

// CreateChatUser handles POST /chat/users.
func (h *Handler) CreateChatUser(c *gin.Context) {
	user, err := h.Chats.CreateChatUser(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": user.ID})
}

// Chat handles POST /chat/chat: build context from recent turns, ask the
// assistant, persist the new turn, return the reply.
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and message are required"})
		return
	}

	ctx := c.Request.Context()

	recent, err := h.Chats.RecentTurns(ctx, req.UserID, contextTurns)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load conversation context"})
		return
	}

	reply, err := h.Assistant.Generate(ctx, req.Message, recent)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Assistant is unavailable"})
		return
	}

	turn := &models.ChatTurn{UserID: req.UserID, UserText: req.Message, BotText: reply}
	if err := h.Chats.SaveTurn(ctx, turn); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save conversation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// ChatHistory handles GET /chat/history/:userId.
func (h *Handler) ChatHistory(c *gin.Context) {
	history, err := h.Chats.History(c.Request.Context(), c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}
