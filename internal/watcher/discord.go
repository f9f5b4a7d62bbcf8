package watcher

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"riftreplay/internal/analysis"
)

const (
	colorBlue = 3447003 // 0x3498DB

	defaultWebhookTimeout = 10 * time.Second

	// Max retries for rate limiting
	maxRetries = 3
)

// WebhookPayload represents a Discord webhook message
type WebhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

// Embed represents a Discord embed
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type EmbedFooter struct {
	Text string `json:"text"`
}

// NewAnalysisPayload announces a finished analysis that is ready to replay
func NewAnalysisPayload(s analysis.Summary, matches int) WebhookPayload {
	role := s.PrimaryRole
	if role == "" {
		role = "unknown"
	}
	embed := Embed{
		Title: "New analysis ready: " + s.RiotID,
		Color: colorBlue,
		Fields: []EmbedField{
			{Name: "Matches", Value: strconv.Itoa(matches), Inline: true},
			{Name: "Primary Role", Value: role, Inline: true},
		},
		Footer: &EmbedFooter{Text: s.Filename},
	}
	if s.Created > 0 {
		sec := int64(s.Created)
		embed.Timestamp = time.Unix(sec, 0).UTC().Format(time.RFC3339)
	}
	return WebhookPayload{Embeds: []Embed{embed}}
}

// DiscordNotifier posts new analyses to a Discord webhook
type DiscordNotifier struct {
	webhookURL string
	httpClient *http.Client
}

// NewDiscordNotifier creates a notifier for webhookURL
func NewDiscordNotifier(webhookURL string) *DiscordNotifier {
	return &DiscordNotifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: defaultWebhookTimeout},
	}
}

// NotifyAnalysis implements Notifier
func (d *DiscordNotifier) NotifyAnalysis(ctx context.Context, s analysis.Summary, matches int) error {
	return d.sendPayload(ctx, NewAnalysisPayload(s, matches))
}

// sendPayload sends a webhook payload with retry on rate limiting
func (d *DiscordNotifier) sendPayload(ctx context.Context, payload WebhookPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := d.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		resp.Body.Close()

		// Discord returns 204 No Content
		if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusOK {
			return nil
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			wait := time.Second
			if s, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
				wait = time.Duration(s) * time.Second
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
