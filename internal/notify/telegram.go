// Package notify pushes a Telegram message to the operations chat when a
// high-priority report lands.
package notify

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"reportbox/backend/internal/models"
)

// TelegramNotifier sends report summaries to a fixed chat. A nil notifier is
// valid and does nothing, so callers never need to branch on configuration.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier authorizes the bot. Returns (nil, nil) when no token is
// configured: notifications are simply off.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	log.Printf("telegram: authorized on account %s", bot.Self.UserName)

	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// notifiable limits pushes to the priorities the operations chat cares about.
func notifiable(r *models.Report) bool {
	return r.Priority == models.PriorityHigh || r.Priority == models.PriorityUrgent
}

func summary(r *models.Report) string {
	return fmt.Sprintf("New %s report: %s\nCategory: %s\nLocation: %s\nID: %s",
		r.Priority, r.Title, r.Category, r.Location, r.ID.Hex())
}

// ReportCreated notifies about high and urgent reports. Failures are logged
// and never bubble up to the create path.
func (n *TelegramNotifier) ReportCreated(r *models.Report) {
	if n == nil || !notifiable(r) {
		return
	}

	if _, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, summary(r))); err != nil {
		log.Printf("telegram: failed to notify about report %s: %v", r.ID.Hex(), err)
	}
}
