package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report priorities as submitted by the form.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Report statuses walked by the admin dashboard.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
)

// Report is one citizen submission. Immutable after create except Status;
// the store assigns the ObjectID.
type Report struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Location    string             `bson:"location" json:"location"`
	Category    string             `bson:"category" json:"category"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Priority    string             `bson:"priority" json:"priority"`
	MediaURL    string             `bson:"mediaURL,omitempty" json:"mediaURL,omitempty"`
	Latitude    *float64           `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude   *float64           `bson:"longitude,omitempty" json:"longitude,omitempty"`
	Status      string             `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
