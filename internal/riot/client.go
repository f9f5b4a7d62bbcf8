package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"riftreplay/internal/analysis"
	"riftreplay/internal/logger"
)

const (
	// Rate limits for dev key (using conservative values to be safe)
	requestsPerSecond = 15 // Actual: 20
	requestsPer2Min   = 90 // Actual: 100

	maxRateLimitRetries = 3
	defaultRetryAfter   = 10 * time.Second

	statusEndpoint = "/lol/status/v4/platform-data"
)

var (
	// ErrRateLimited is returned when 429s persist after retrying
	ErrRateLimited = errors.New("riot api rate limited")
	// ErrNotFound is returned for 404 responses
	ErrNotFound = errors.New("riot api: player or match not found")
	// ErrForbidden is returned for 401/403 responses
	ErrForbidden = errors.New("riot api: forbidden, check that the api key is valid")
)

// platformFor maps a regional route to the platform used for status checks
var platformFor = map[string]string{
	"americas": "na1",
	"europe":   "euw1",
	"asia":     "kr",
	"sea":      "sg2",
}

// Client is a rate-limited Riot API client
type Client struct {
	apiKey      string
	baseURL     string // regional route, e.g. https://americas.api.riotgames.com
	platformURL string // platform route, e.g. https://na1.api.riotgames.com
	httpClient  *http.Client
	log         *slog.Logger

	// Rate limiting
	mu          sync.Mutex
	perSecond   int
	per2Min     int
	shortWindow []time.Time // Requests in last second
	longWindow  []time.Time // Requests in last 2 minutes
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points both regional and platform requests at url (useful for testing)
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
		c.platformURL = c.baseURL
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRateLimits overrides the per-second and per-two-minute budgets
func WithRateLimits(perSecond, per2Min int) Option {
	return func(c *Client) {
		c.perSecond = perSecond
		c.per2Min = per2Min
	}
}

// NewClient creates a client for a regional route (americas, europe, asia, sea)
func NewClient(apiKey, region string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("RIOT_API_KEY is not set")
	}
	if region == "" {
		region = "americas"
	}
	platform, ok := platformFor[region]
	if !ok {
		platform = "na1"
	}

	c := &Client{
		apiKey:      apiKey,
		baseURL:     fmt.Sprintf("https://%s.api.riotgames.com", region),
		platformURL: fmt.Sprintf("https://%s.api.riotgames.com", platform),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log:       logger.With("riot"),
		perSecond: requestsPerSecond,
		per2Min:   requestsPer2Min,
	}
	for _, opt := range opts {
		opt(c)
	}

	// Show key prefix for debugging (don't show full key)
	if len(apiKey) > 12 {
		c.log.Debug("using api key", "key", apiKey[:8]+"..."+apiKey[len(apiKey)-4:])
	}
	return c, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func prune(window []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(window) && !window[i].After(cutoff) {
		i++
	}
	return window[i:]
}

// waitForRateLimit blocks until we can make another request
func (c *Client) waitForRateLimit(ctx context.Context) error {
	for {
		c.mu.Lock()
		now := time.Now()
		c.shortWindow = prune(c.shortWindow, now.Add(-time.Second))
		c.longWindow = prune(c.longWindow, now.Add(-2*time.Minute))

		var wait time.Duration
		switch {
		case len(c.shortWindow) >= c.perSecond:
			wait = c.shortWindow[0].Add(time.Second).Sub(now) + 100*time.Millisecond
		case len(c.longWindow) >= c.per2Min:
			wait = c.longWindow[0].Add(2*time.Minute).Sub(now) + 100*time.Millisecond
		default:
			c.shortWindow = append(c.shortWindow, now)
			c.longWindow = append(c.longWindow, now)
			c.mu.Unlock()
			return nil
		}
		c.mu.Unlock()

		c.log.Debug("rate limit reached, waiting", "wait", wait)
		if err := sleepCtx(ctx, wait); err != nil {
			return err
		}
	}
}

// doRequest makes a rate-limited GET and decodes the JSON body into result
func (c *Client) doRequest(ctx context.Context, url string, result interface{}) error {
	for attempt := 0; ; attempt++ {
		if err := c.waitForRateLimit(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("X-Riot-Token", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("riot request failed: %w", err)
		}

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(result)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("failed to decode riot response: %w", err)
			}
			return nil

		case http.StatusTooManyRequests:
			resp.Body.Close()
			if attempt >= maxRateLimitRetries {
				return ErrRateLimited
			}
			wait := defaultRetryAfter
			if s, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && s >= 0 {
				wait = time.Duration(s) * time.Second
			}
			c.log.Warn("429 rate limited", "retry_after", wait, "attempt", attempt+1)
			if err := sleepCtx(ctx, wait); err != nil {
				return err
			}

		case http.StatusUnauthorized, http.StatusForbidden:
			resp.Body.Close()
			return ErrForbidden

		case http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound

		default:
			resp.Body.Close()
			return fmt.Errorf("riot api returned status %d", resp.StatusCode)
		}
	}
}

// ValidateKey checks the key against the platform status endpoint.
// Returns:
//   - (true, nil) if the key is valid
//   - (false, nil) if the key is invalid (401/403)
//   - (false, error) if validity could not be determined
func (c *Client) ValidateKey(ctx context.Context) (bool, error) {
	var status struct {
		ID string `json:"id"`
	}
	err := c.doRequest(ctx, c.platformURL+statusEndpoint, &status)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrForbidden):
		return false, nil
	default:
		return false, err
	}
}

// GetAccountByRiotID fetches account info by Riot ID (gameName#tagLine)
func (c *Client) GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*AccountResponse, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.baseURL, url.PathEscape(gameName), url.PathEscape(tagLine))

	var account AccountResponse
	if err := c.doRequest(ctx, u, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetMatchHistory fetches recent match IDs for a player. queue 0 means any queue.
func (c *Client) GetMatchHistory(ctx context.Context, puuid string, queue, count int) ([]string, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?count=%d", c.baseURL, puuid, count)
	if queue > 0 {
		u += "&queue=" + strconv.Itoa(queue)
	}

	var matchIDs []string
	if err := c.doRequest(ctx, u, &matchIDs); err != nil {
		return nil, err
	}
	return matchIDs, nil
}

// GetMatch fetches match details
func (c *Client) GetMatch(ctx context.Context, matchID string) (*MatchResponse, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.baseURL, matchID)

	var match MatchResponse
	if err := c.doRequest(ctx, u, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

// GetTimeline fetches match timeline
func (c *Client) GetTimeline(ctx context.Context, matchID string) (*TimelineResponse, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s/timeline", c.baseURL, matchID)

	var timeline TimelineResponse
	if err := c.doRequest(ctx, u, &timeline); err != nil {
		return nil, err
	}
	return &timeline, nil
}

// FetchMatch downloads a match and its timeline and extracts the replay payload
func (c *Client) FetchMatch(ctx context.Context, matchID string) (*analysis.MatchData, error) {
	match, err := c.GetMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch match %s: %w", matchID, err)
	}
	timeline, err := c.GetTimeline(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch timeline %s: %w", matchID, err)
	}
	return Extract(match, timeline), nil
}

// FetchRecent resolves a Riot ID and fetches its latest count matches as an
// analysis document
func (c *Client) FetchRecent(ctx context.Context, riotID string, count int) (*analysis.Document, error) {
	name, tag, err := SplitRiotID(riotID)
	if err != nil {
		return nil, err
	}
	account, err := c.GetAccountByRiotID(ctx, name, tag)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", riotID, err)
	}
	ids, err := c.GetMatchHistory(ctx, account.PUUID, 0, count)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch match history: %w", err)
	}

	doc := &analysis.Document{RiotID: riotID, MatchCountRequested: count}
	for _, id := range ids {
		md, err := c.FetchMatch(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				c.log.Warn("match disappeared, skipping", "match", id)
				continue
			}
			return nil, err
		}
		for i := range md.Participants {
			md.Participants[i].IsSelf = md.Participants[i].PUUID == account.PUUID
		}
		doc.Analysis.DetailedMatches = append(doc.Analysis.DetailedMatches, *md)
	}
	return doc, nil
}

// SplitRiotID splits "gameName#tagLine"
func SplitRiotID(riotID string) (string, string, error) {
	name, tag, ok := strings.Cut(riotID, "#")
	if !ok || name == "" || tag == "" {
		return "", "", fmt.Errorf("invalid riot id %q, expected name#tag", riotID)
	}
	return name, tag, nil
}
