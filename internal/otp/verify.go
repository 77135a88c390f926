// Package otp bridges phone verification to a Twilio-Verify-style provider.
// The provider stays an opaque HTTP collaborator; this adapter only normalizes
// the phone number and translates provider answers.
package otp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://verify.twilio.com/v2"

// Sender is the surface the HTTP handlers depend on.
type Sender interface {
	SendOTP(ctx context.Context, phone string) (string, error)
	VerifyOTP(ctx context.Context, phone, code string) (bool, error)
}

// Verifier calls the provider's Verification and VerificationCheck endpoints.
type Verifier struct {
	accountSID  string
	authToken   string
	serviceSID  string
	countryCode string

	// BaseURL is swappable so tests can point at an httptest server.
	BaseURL    string
	HTTPClient *http.Client
}

// NewVerifier builds a provider client from injected credentials.
func NewVerifier(accountSID, authToken, serviceSID, countryCode string) *Verifier {
	return &Verifier{
		accountSID:  accountSID,
		authToken:   authToken,
		serviceSID:  serviceSID,
		countryCode: countryCode,
		BaseURL:     defaultBaseURL,
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Normalize prefixes the configured country code.
func (v *Verifier) Normalize(phone string) string {
	return v.countryCode + phone
}

// SendOTP asks the provider to dispatch a code over SMS and returns the
// normalized phone number it was addressed to.
func (v *Verifier) SendOTP(ctx context.Context, phone string) (string, error) {
	to := v.Normalize(phone)
	form := url.Values{"To": {to}, "Channel": {"sms"}}

	if _, err := v.post(ctx, "/Services/"+v.serviceSID+"/Verifications", form); err != nil {
		return "", err
	}
	return to, nil
}

// VerifyOTP checks a code against the provider. It reports (false, nil) when
// the provider answers with any status other than "approved".
func (v *Verifier) VerifyOTP(ctx context.Context, phone, code string) (bool, error) {
	form := url.Values{"To": {v.Normalize(phone)}, "Code": {code}}

	status, err := v.post(ctx, "/Services/"+v.serviceSID+"/VerificationCheck", form)
	if err != nil {
		return false, err
	}
	return status == "approved", nil
}

type providerResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (v *Verifier) post(ctx context.Context, path string, form url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		v.BaseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(v.accountSID, v.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("otp provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Error bodies are not guaranteed to be JSON (gateways answer with
		// HTML), so a failed decode falls back to the HTTP status line.
		var body providerResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
			return "", fmt.Errorf("otp provider: %s", body.Message)
		}
		return "", fmt.Errorf("otp provider: %s", resp.Status)
	}

	var body providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("otp provider: decode response: %w", err)
	}
	return body.Status, nil
}
