package riot

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

const (
	// Rate limits for dev key (using conservative values to be safe)
	DefaultRequestsPerSecond = 15 // Actual: 20
	DefaultRequestsPer2Min   = 90 // Actual: 100

	defaultRetryAfter  = 10 * time.Second
	defaultMaxRetries  = 3
	defaultHTTPTimeout = 30 * time.Second
	maxErrorBody       = 512
)

// Client is a rate-limited Riot API client
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string // overrides the per-route host when set
	maxRetries int

	// Rate limiting
	mu              sync.Mutex
	requestsPerSec  int
	requestsPer2Min int
	shortWindow     []time.Time // Requests in last second
	longWindow      []time.Time // Requests in last 2 minutes
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithClientBaseURL sends every request to url instead of the regional or
// platform host (useful for testing)
func WithClientBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimits overrides the request windows. Zero or negative disables a window.
func WithRateLimits(perSecond, per2Min int) ClientOption {
	return func(c *Client) {
		c.requestsPerSec = perSecond
		c.requestsPer2Min = per2Min
	}
}

// WithMaxRetries bounds how often a 429 response is retried
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// NewClient creates a new Riot API client
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("riot API key is empty")
	}

	c := &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		maxRetries:      defaultMaxRetries,
		requestsPerSec:  DefaultRequestsPerSecond,
		requestsPer2Min: DefaultRequestsPer2Min,
		shortWindow:     make([]time.Time, 0),
		longWindow:      make([]time.Time, 0),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// host returns the scheme+host for a routing value ("americas", "br1", ...)
func (c *Client) host(route string) string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return fmt.Sprintf("https://%s.api.riotgames.com", route)
}

// waitForRateLimit blocks until we can make another request or ctx ends
func (c *Client) waitForRateLimit(ctx context.Context) error {
	for {
		c.mu.Lock()

		now := time.Now()
		c.shortWindow = pruneBefore(c.shortWindow, now.Add(-1*time.Second))
		c.longWindow = pruneBefore(c.longWindow, now.Add(-2*time.Minute))

		var waitTime time.Duration
		if c.requestsPerSec > 0 && len(c.shortWindow) >= c.requestsPerSec {
			waitTime = c.shortWindow[0].Add(time.Second).Sub(now) + 50*time.Millisecond
		} else if c.requestsPer2Min > 0 && len(c.longWindow) >= c.requestsPer2Min {
			waitTime = c.longWindow[0].Add(2*time.Minute).Sub(now) + 100*time.Millisecond
		}

		if waitTime <= 0 {
			// Record this request and exit loop
			c.shortWindow = append(c.shortWindow, now)
			c.longWindow = append(c.longWindow, now)
			c.mu.Unlock()
			return nil
		}
		c.mu.Unlock()

		if err := sleepCtx(ctx, waitTime); err != nil {
			return err
		}
	}
}

func pruneBefore(window []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(window) && !window[i].After(cutoff) {
		i++
	}
	return window[i:]
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

// doRequest makes a rate-limited GET and decodes the JSON body into result
func (c *Client) doRequest(ctx context.Context, route, path string, result interface{}) error {
	for attempt := 0; ; attempt++ {
		if err := c.waitForRateLimit(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host(route)+path, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("X-Riot-Token", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request to %s failed: %w", path, err)
		}

		if resp.StatusCode == http.StatusTooManyRequests && attempt < c.maxRetries {
			waitTime := retryAfter(resp.Header.Get("Retry-After"))
			resp.Body.Close()
			log.Printf("[Riot] 429 on %s, waiting %.1fs (attempt %d/%d)", path, waitTime.Seconds(), attempt+1, c.maxRetries)
			if err := sleepCtx(ctx, waitTime); err != nil {
				return err
			}
			continue
		}

		err = decodeResponse(resp, path, result)
		resp.Body.Close()
		return err
	}
}

func decodeResponse(resp *http.Response, path string, result interface{}) error {
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Path: path, Body: string(body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response for %s: %w", path, err)
	}
	return nil
}

func retryAfter(header string) time.Duration {
	if header == "" {
		return defaultRetryAfter
	}
	secs, err := strconv.Atoi(header)
	if err != nil || secs < 0 {
		return defaultRetryAfter
	}
	return time.Duration(secs) * time.Second
}

// GetAccountByRiotID fetches account info by Riot ID (gameName#tagLine)
func (c *Client) GetAccountByRiotID(ctx context.Context, region, gameName, tagLine string) (*AccountResponse, error) {
	path := fmt.Sprintf("/riot/account/v1/accounts/by-riot-id/%s/%s",
		url.PathEscape(gameName), url.PathEscape(tagLine))

	var account AccountResponse
	if err := c.doRequest(ctx, region, path, &account); err != nil {
		return nil, err
	}
	if account.PUUID == "" {
		return nil, fmt.Errorf("PUUID not found for %s#%s: %w", gameName, tagLine, ErrNotFound)
	}
	return &account, nil
}

// GetSummonerByPUUID fetches the summoner profile on a platform
func (c *Client) GetSummonerByPUUID(ctx context.Context, platform, puuid string) (*Summoner, error) {
	path := fmt.Sprintf("/lol/summoner/v4/summoners/by-puuid/%s", url.PathEscape(puuid))

	var summoner Summoner
	if err := c.doRequest(ctx, platform, path, &summoner); err != nil {
		return nil, err
	}
	return &summoner, nil
}

// GetLeagueEntries fetches ranked entries directly by PUUID
func (c *Client) GetLeagueEntries(ctx context.Context, platform, puuid string) ([]LeagueEntry, error) {
	path := fmt.Sprintf("/lol/league/v4/entries/by-puuid/%s", url.PathEscape(puuid))

	var entries []LeagueEntry
	if err := c.doRequest(ctx, platform, path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetTopMasteries fetches the player's highest mastery champions
func (c *Client) GetTopMasteries(ctx context.Context, platform, puuid string, count int) ([]MasteryEntry, error) {
	path := fmt.Sprintf("/lol/champion-mastery/v4/champion-masteries/by-puuid/%s/top?count=%d",
		url.PathEscape(puuid), count)

	var entries []MasteryEntry
	if err := c.doRequest(ctx, platform, path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetMatchIDs fetches match IDs for a player, most recent first
func (c *Client) GetMatchIDs(ctx context.Context, region, puuid string, start, count int) ([]string, error) {
	path := fmt.Sprintf("/lol/match/v5/matches/by-puuid/%s/ids?start=%d&count=%d",
		url.PathEscape(puuid), start, count)

	var matchIDs []string
	if err := c.doRequest(ctx, region, path, &matchIDs); err != nil {
		return nil, err
	}
	return matchIDs, nil
}

// GetMatch fetches match details
func (c *Client) GetMatch(ctx context.Context, region, matchID string) (*Match, error) {
	path := fmt.Sprintf("/lol/match/v5/matches/%s", url.PathEscape(matchID))

	var match Match
	if err := c.doRequest(ctx, region, path, &match); err != nil {
		return nil, err
	}
	return &match, nil
}
