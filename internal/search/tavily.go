package search

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avolkov/claimlens/internal/cache"
	"github.com/avolkov/claimlens/internal/util"
)

const searchMaxRetries = 3

// searchSleepFunc is the sleep function used between retries (injectable for tests)
var searchSleepFunc = time.Sleep

// Client performs web searches against the Tavily API
type Client struct {
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	depth        string
	maxResults   int
	maxBodyBytes int64
	store        cache.Cache // nil disables caching
	cacheTTL     time.Duration
}

// Options configures a Client
type Options struct {
	APIKey       string
	BaseURL      string
	Depth        string // "basic" or "advanced"
	MaxResults   int
	Timeout      time.Duration
	MaxBodyBytes int64 // Response read ceiling
	HTTPProxy    string
	HTTPSProxy   string
	NoProxy      string
	InsecureTLS  bool
	Cache        cache.Cache
	CacheTTL     time.Duration
}

// Response contains ranked search results for one query
type Response struct {
	Query   string   `json:"query"`
	Results []Result `json:"results"`
}

// Result is a single ranked search hit
type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"` // Snippet, sanitized of markup
	Score   float64 `json:"score,omitempty"`
}

// Tavily API structures
type tavilyRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth,omitempty"`
	MaxResults  int    `json:"max_results,omitempty"`
}

type tavilyResponse struct {
	Query   string `json:"query"`
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

type tavilyError struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// NewClient creates a new Tavily search client
func NewClient(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("Tavily API key is required")
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "https://api.tavily.com"
	}

	depth := opts.Depth
	if depth == "" {
		depth = "advanced"
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	maxBodyBytes := opts.MaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = 4 << 20
	}

	transport := &http.Transport{
		Proxy: util.NewProxyFunc(opts.HTTPProxy, opts.HTTPSProxy, opts.NoProxy),
	}
	if opts.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		apiKey:  opts.APIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		depth:        depth,
		maxResults:   maxResults,
		maxBodyBytes: maxBodyBytes,
		store:        opts.Cache,
		cacheTTL:     opts.CacheTTL,
	}, nil
}

// Search runs the query and returns ranked results. Responses are cached
// by query so repeated checks of the same document cost no API quota.
func (c *Client) Search(ctx context.Context, query string) (*Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}

	key := cache.SearchKey(query, c.depth)
	if c.store != nil {
		if data, found := c.store.Get(key); found {
			var cached Response
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	resp, err := c.searchWithRetry(ctx, query)
	if err != nil {
		return nil, err
	}

	if c.store != nil {
		if data, err := json.Marshal(resp); err == nil {
			_ = c.store.Set(key, data, c.cacheTTL)
		}
	}

	return resp, nil
}

// searchWithRetry retries transient failures with exponential backoff
func (c *Client) searchWithRetry(ctx context.Context, query string) (*Response, error) {
	var lastErr error

	for attempt := 1; attempt <= searchMaxRetries; attempt++ {
		resp, retryable, err := c.searchOnce(ctx, query)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable || attempt == searchMaxRetries {
			break
		}

		backoff := time.Duration(attempt) * 500 * time.Millisecond
		searchSleepFunc(backoff)
	}

	return nil, lastErr
}

// searchOnce issues a single Tavily search request
func (c *Client) searchOnce(ctx context.Context, query string) (*Response, bool, error) {
	body, err := json.Marshal(tavilyRequest{
		APIKey:      c.apiKey,
		Query:       query,
		SearchDepth: c.depth,
		MaxResults:  c.maxResults,
	})
	if err != nil {
		return nil, false, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/search", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		// Network errors are worth retrying
		return nil, true, fmt.Errorf("search request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, c.maxBodyBytes))
	if err != nil {
		return nil, true, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		retryable := httpResp.StatusCode == http.StatusTooManyRequests || httpResp.StatusCode >= 500

		var apiErr tavilyError
		if err := json.Unmarshal(respBody, &apiErr); err == nil {
			msg := apiErr.Detail
			if msg == "" {
				msg = apiErr.Error
			}
			if msg != "" {
				return nil, retryable, fmt.Errorf("tavily API error (%d): %s", httpResp.StatusCode, msg)
			}
		}
		return nil, retryable, fmt.Errorf("tavily API error (%d): %s", httpResp.StatusCode, string(respBody))
	}

	var raw tavilyResponse
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return nil, false, fmt.Errorf("unmarshal response: %w", err)
	}

	resp := &Response{Query: query}
	for _, r := range raw.Results {
		resp.Results = append(resp.Results, Result{
			Title:   r.Title,
			URL:     r.URL,
			Content: SanitizeSnippet(r.Content),
			Score:   r.Score,
		})
	}

	return resp, false, nil
}
