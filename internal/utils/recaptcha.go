package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const recaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// RecaptchaVerifier gates public ticket submission. A false result is a
// hard rejection before any payload validation runs.
type RecaptchaVerifier interface {
	Verify(ctx context.Context, token string) bool
}

type googleRecaptchaVerifier struct {
	secretKey string
	verifyURL string
	client    *http.Client
}

func NewRecaptchaVerifier(secretKey string) RecaptchaVerifier {
	return &googleRecaptchaVerifier{
		secretKey: secretKey,
		verifyURL: recaptchaVerifyURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type recaptchaVerifyResponse struct {
	Success bool `json:"success"`
}

// Verify posts the token to Google's siteverify endpoint. Any transport
// or decode failure counts as a failed verification.
func (v *googleRecaptchaVerifier) Verify(ctx context.Context, token string) bool {
	if strings.TrimSpace(token) == "" {
		return false
	}

	form := url.Values{}
	form.Set("secret", v.secretKey)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		Logger.WithError(err).Error("Failed to build recaptcha verify request")
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		Logger.WithError(err).Error("Recaptcha verify request failed")
		return false
	}
	defer resp.Body.Close()

	var body recaptchaVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		Logger.WithError(err).Error("Failed to decode recaptcha verify response")
		return false
	}
	return body.Success
}
