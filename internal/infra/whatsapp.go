package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// WhatsAppClient talks to the Meta WhatsApp Cloud API to notify the store
// owner about incoming online orders.
type WhatsAppClient struct {
	apiBase       string
	phoneNumberID string
	token         string
	httpClient    *http.Client
}

func NewWhatsAppClient(apiBase, phoneNumberID, token string) *WhatsAppClient {
	return &WhatsAppClient{
		apiBase:       apiBase,
		phoneNumberID: phoneNumberID,
		token:         token,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Enabled reports whether credentials were configured. When disabled, order
// notifications fall back to email only.
func (c *WhatsAppClient) Enabled() bool {
	return c.phoneNumberID != "" && c.token != ""
}

type whatsAppTextMessage struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

type whatsAppAPIError struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// SendText sends a plain-text message to a phone number in E.164 digits.
func (c *WhatsAppClient) SendText(ctx context.Context, to, body string) error {
	msg := whatsAppTextMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
	}
	msg.Text.Body = body

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("whatsapp: marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.apiBase, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("whatsapp: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: api unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr whatsAppAPIError
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("whatsapp: api returned %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("whatsapp: api returned %d", resp.StatusCode)
	}
	return nil
}

// NormalizeMXPhone strips formatting and ensures the Mexican country code.
// Cloud API expects digits only: "33 1234 5678" becomes "523312345678".
func NormalizeMXPhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 10 {
		return "52" + digits
	}
	return digits
}
