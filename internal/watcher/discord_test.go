package watcher

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joho/godotenv"
)

func TestNewAnalysisPayload(t *testing.T) {
	p := NewAnalysisPayload(summary("Fox#NA1", 1700000000), 12)

	if len(p.Embeds) != 1 {
		t.Fatalf("Expected 1 embed, got %d", len(p.Embeds))
	}
	e := p.Embeds[0]
	if !strings.Contains(e.Title, "Fox#NA1") {
		t.Errorf("title = %q", e.Title)
	}
	if e.Fields[0].Value != "12" {
		t.Errorf("matches field = %q", e.Fields[0].Value)
	}
	if e.Fields[1].Value != "unknown" {
		t.Errorf("role field = %q", e.Fields[1].Value)
	}
	if e.Timestamp != "2023-11-14T22:13:20Z" {
		t.Errorf("timestamp = %q", e.Timestamp)
	}
	if e.Footer.Text != "league_analysis_Fox_NA1.json" {
		t.Errorf("footer = %q", e.Footer.Text)
	}
}

func TestDiscordNotifier_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	var body WebhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewDiscordNotifier(srv.URL)
	if err := n.NotifyAnalysis(context.Background(), summary("Fox#NA1", 0), 3); err != nil {
		t.Fatalf("NotifyAnalysis: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
	if len(body.Embeds) != 1 || body.Embeds[0].Fields[0].Value != "3" {
		t.Errorf("unexpected payload %+v", body)
	}
}

func TestDiscordNotifier_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   string
	}{
		{"server error", http.StatusInternalServerError, "status 500"},
		{"always limited", http.StatusTooManyRequests, "after 3 retries"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Retry-After", "0")
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := NewDiscordNotifier(srv.URL).NotifyAnalysis(context.Background(), summary("Fox#NA1", 0), 1)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestDiscordNotifier_Integration(t *testing.T) {
	godotenv.Load("../../.env")

	webhookURL := os.Getenv("DISCORD_WEBHOOK")
	if webhookURL == "" {
		t.Skip("DISCORD_WEBHOOK not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := NewDiscordNotifier(webhookURL).NotifyAnalysis(ctx, summary("Integration#TEST", float64(time.Now().Unix())), 1); err != nil {
		t.Fatalf("Failed to send notification: %v", err)
	}
}
