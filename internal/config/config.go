// Package config holds the environment-driven configuration for the ReportBox
// backend. Everything an external collaborator needs (store URIs, provider
// credentials) lives here and is injected into constructors explicitly.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Addr string `env:"HTTP_ADDR" envDefault:":3000"`

	// Report store (MongoDB)
	MongoURI string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGODB_DB" envDefault:"reportbox"`

	// Chat store (PostgreSQL + Redis)
	PostgresDSN string `env:"POSTGRES_DSN" envDefault:"host=localhost user=user password=password dbname=reportbox port=5432 sslmode=disable"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass   string `env:"REDIS_PASSWORD"`

	// OTP provider (Twilio Verify style)
	TwilioAccountSID string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	TwilioServiceSID string `env:"TWILIO_SERVICE_SID"`
	OTPCountryCode   string `env:"OTP_COUNTRY_CODE" envDefault:"+91"`

	// Reverse geocoding provider
	GeocodeAPIKey string `env:"GEOCODE_API_KEY"`

	// External legal-assistant generation service
	AssistantURL string `env:"ASSISTANT_URL" envDefault:"http://localhost:8000"`

	// Admin dashboard gate
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin123"`
	JWTSecret     string `env:"JWT_SECRET" envDefault:"reportbox-dev-secret"`

	// Telegram notifications for high/urgent reports (disabled when empty)
	TelegramToken  string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `env:"TELEGRAM_CHAT_ID"`

	AllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
