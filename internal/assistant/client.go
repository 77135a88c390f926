// Package assistant talks to the external legal-assistant generation service.
// The service owns the retrieval pipeline; this client only ships the user's
// message plus recent conversation turns and reads back the reply.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"reportbox/backend/internal/models"
)

// Generator is the surface the chat handler depends on.
type Generator interface {
	Generate(ctx context.Context, message string, history []models.ChatTurn) (string, error)
}

// Client calls the assistant's generation endpoint.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient builds an assistant client for the configured base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type generateTurn struct {
	User string `json:"user"`
	Bot  string `json:"bot"`
}

type generateRequest struct {
	Message string         `json:"message"`
	History []generateTurn `json:"history"`
}

type generateResponse struct {
	Reply string `json:"reply"`
}

// Generate asks the assistant for a reply in the context of recent turns.
func (c *Client) Generate(ctx context.Context, message string, history []models.ChatTurn) (string, error) {
	req := generateRequest{Message: message, History: make([]generateTurn, 0, len(history))}
	for _, t := range history {
		req.History = append(req.History, generateTurn{User: t.UserText, Bot: t.BotText})
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/generate", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("assistant: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant: unexpected status %s", resp.Status)
	}

	var body generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("assistant: decode response: %w", err)
	}
	return body.Reply, nil
}
