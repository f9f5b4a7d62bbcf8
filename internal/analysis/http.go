package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPSource reads analyses from the backend REST API
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPSource creates a backend client. baseURL is the server root, e.g.
// http://localhost:8000
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPSource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// AnalyzeRequest is the body of POST /api/analyze/
type AnalyzeRequest struct {
	RiotID       string `json:"riot_id"`
	MatchCount   int    `json:"match_count"`
	UseTimeline  bool   `json:"use_timeline"`
	CallAI       bool   `json:"call_ai"`
	Region       string `json:"region,omitempty"`
	ForceRefresh bool   `json:"force_refresh,omitempty"`
}

func (s *HTTPSource) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error != "" {
			return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, e.Error)
		}
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}

// List fetches GET /api/analyses/, newest first
func (s *HTTPSource) List(ctx context.Context) ([]Summary, error) {
	var list []Summary
	if err := s.doRequest(ctx, http.MethodGet, "/api/analyses/", nil, &list); err != nil {
		return nil, err
	}
	sortByCreated(list)
	return list, nil
}

// Get fetches GET /api/analyses/{id}/. The backend does its own fuzzy
// filename matching.
func (s *HTTPSource) Get(ctx context.Context, id string) (*Document, error) {
	var doc Document
	if err := s.doRequest(ctx, http.MethodGet, "/api/analyses/"+url.PathEscape(id)+"/", nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Analyze asks the backend to run a new analysis with timeline data
func (s *HTTPSource) Analyze(ctx context.Context, riotID string, matchCount int) error {
	if riotID == "" {
		return fmt.Errorf("riot id is required")
	}
	if matchCount <= 0 {
		matchCount = 20
	}
	return s.doRequest(ctx, http.MethodPost, "/api/analyze/", AnalyzeRequest{
		RiotID:      riotID,
		MatchCount:  matchCount,
		UseTimeline: true,
		CallAI:      true,
	}, nil)
}
