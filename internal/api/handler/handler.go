// Package handler exposes the REST surface of the ReportBox backend.
// Every dependency is injected; there is no package-level state.
package handler

import (
	"reportbox/backend/internal/assistant"
	"reportbox/backend/internal/config"
	"reportbox/backend/internal/geocode"
	"reportbox/backend/internal/livefeed"
	"reportbox/backend/internal/models"
	"reportbox/backend/internal/otp"
	"reportbox/backend/internal/storage"
)

// Notifier receives create events for out-of-band alerting.
type Notifier interface {
	ReportCreated(r *models.Report)
}

// Handler carries the collaborators the routes need.
type Handler struct {
	Reports   storage.ReportStore
	Chats     storage.ChatStore
	OTP       otp.Sender
	Geocoder  geocode.Reverser
	Assistant assistant.Generator
	Feed      *livefeed.Hub
	Notifier  Notifier
	Cfg       *config.Config
}

// NewHandler wires the handler with its collaborators.
func NewHandler(reports storage.ReportStore, chat storage.ChatStore, sender otp.Sender,
	geocoder geocode.Reverser, gen assistant.Generator, feed *livefeed.Hub,
	notifier Notifier, cfg *config.Config) *Handler {
	return &Handler{
		Reports:   reports,
		Chats:     chat,
		OTP:       sender,
		Geocoder:  geocoder,
		Assistant: gen,
		Feed:      feed,
		Notifier:  notifier,
		Cfg:       cfg,
	}
}
