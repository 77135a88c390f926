// Package storage persists ReportBox state: reports live in MongoDB (the
// store assigns ObjectIDs), chat history lives in PostgreSQL with a Redis
// cache for the assistant's recent-turn context.
package storage

import (
	"context"
	"errors"

	"reportbox/backend/internal/models"
)

// ErrNotFound is returned when a lookup by id matches nothing.
var ErrNotFound = errors.New("not found")

// ReportStore is the persistence surface the report handlers depend on.
type ReportStore interface {
	InsertReport(ctx context.Context, r *models.Report) error
	ListReports(ctx context.Context) ([]models.Report, error)
	GetReportByID(ctx context.Context, id string) (*models.Report, error)
	UpdateReportStatus(ctx context.Context, id, status string) (*models.Report, error)
}

// ChatStore is the persistence surface the chat handlers depend on.
type ChatStore interface {
	CreateChatUser(ctx context.Context) (*models.ChatUser, error)
	SaveTurn(ctx context.Context, turn *models.ChatTurn) error
	History(ctx context.Context, userID string) ([]models.ChatTurn, error)
	RecentTurns(ctx context.Context, userID string, n int) ([]models.ChatTurn, error)
}
