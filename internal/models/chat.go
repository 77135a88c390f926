package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatUser identifies a chat session with the legal assistant. The frontend
// creates one lazily and keeps the id in local storage.
type ChatUser struct {
	ID        string    `gorm:"primaryKey" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate generates a UUID when the id has not been set yet.
func (u *ChatUser) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// ChatTurn is one user message and the assistant's reply, persisted in
// PostgreSQL and cached in Redis for prompt context.
type ChatTurn struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:text;not null;index" json:"userId"`
	UserText  string    `gorm:"type:text;not null" json:"user"`
	BotText   string    `gorm:"type:text;not null" json:"bot"`
	CreatedAt time.Time `json:"timestamp"`
}
