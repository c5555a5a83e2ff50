// Package notify posts operator alerts to a Discord webhook.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

const (
	colorRed = 15158332 // 0xE74C3C

	defaultWebhookTimeout = 10 * time.Second
	maxRetries            = 3
)

// WebhookPayload represents a Discord webhook message
type WebhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

// Embed represents a Discord embed
type Embed struct {
	Title     string       `json:"title,omitempty"`
	Color     int          `json:"color,omitempty"`
	Fields    []EmbedField `json:"fields,omitempty"`
	Footer    *EmbedFooter `json:"footer,omitempty"`
	Timestamp string       `json:"timestamp,omitempty"`
}

// EmbedField represents a field in a Discord embed
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// EmbedFooter represents the footer of a Discord embed
type EmbedFooter struct {
	Text string `json:"text"`
}

// NewKeyRejectedPayload builds the alert sent when Riot rejects the API key
func NewKeyRejectedPayload(apiKey, source string, uptime time.Duration, now time.Time) WebhookPayload {
	return WebhookPayload{
		Content: "@here Riot API key rejected",
		Embeds: []Embed{
			{
				Title: "API Key Rejected",
				Color: colorRed,
				Fields: []EmbedField{
					{Name: "Key", Value: maskAPIKey(apiKey), Inline: true},
					{Name: "Detected By", Value: source, Inline: true},
					{Name: "Uptime", Value: formatDuration(uptime), Inline: true},
				},
				Footer: &EmbedFooter{
					Text: "Set a new RIOT_API_KEY and restart the server",
				},
				Timestamp: now.UTC().Format(time.RFC3339),
			},
		},
	}
}

// Notifier sends the key-rejected alert at most once per process
type Notifier struct {
	webhookURL string
	apiKey     string
	httpClient *http.Client
	started    time.Time
	sent       atomic.Bool
}

// NewNotifier creates a notifier for webhookURL. It returns nil when
// webhookURL is empty; a nil Notifier ignores every call.
func NewNotifier(webhookURL, apiKey string) *Notifier {
	if webhookURL == "" {
		return nil
	}
	return &Notifier{
		webhookURL: webhookURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultWebhookTimeout},
		started:    time.Now(),
	}
}

// KeyRejected posts the alert unless it was already sent
func (n *Notifier) KeyRejected(ctx context.Context, source string) error {
	if n == nil || !n.sent.CompareAndSwap(false, true) {
		return nil
	}
	payload := NewKeyRejectedPayload(n.apiKey, source, time.Since(n.started), time.Now())
	if err := n.sendPayload(ctx, payload); err != nil {
		n.sent.Store(false)
		return err
	}
	return nil
}

// sendPayload posts the payload, retrying while Discord rate limits us
func (n *Notifier) sendPayload(ctx context.Context, payload WebhookPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		resp.Body.Close()

		// Discord answers 204 No Content
		if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusOK {
			return nil
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			wait := time.Second
			if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
				wait = time.Duration(secs) * time.Second
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		return fmt.Errorf("webhook request failed with status %d", resp.StatusCode)
	}

	return fmt.Errorf("webhook request failed after %d retries", maxRetries)
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}

// maskAPIKey keeps the prefix and last four characters ("RGAPI-...abcd")
func maskAPIKey(key string) string {
	if len(key) <= 10 {
		return "****"
	}
	return key[:5] + "..." + key[len(key)-4:]
}
