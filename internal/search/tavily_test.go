package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avolkov/claimlens/internal/cache"
)

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(Options{})
	if err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestClient_Search(t *testing.T) {
	var captured tavilyRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("expected /search, got %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		_, _ = w.Write([]byte(`{
			"query": "test query",
			"results": [
				{"title": "Result One", "url": "https://example.com/1", "content": "First snippet", "score": 0.9},
				{"title": "Result Two", "url": "https://example.com/2", "content": "Second snippet", "score": 0.7}
			]
		}`))
	}))
	defer server.Close()

	client, err := NewClient(Options{APIKey: "tvly-test", BaseURL: server.URL, Depth: "advanced", MaxResults: 5})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	resp, err := client.Search(context.Background(), "test query")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if resp.Results[0].URL != "https://example.com/1" {
		t.Errorf("unexpected first URL: %q", resp.Results[0].URL)
	}
	if captured.APIKey != "tvly-test" {
		t.Errorf("expected API key in request, got %q", captured.APIKey)
	}
	if captured.SearchDepth != "advanced" {
		t.Errorf("expected advanced depth, got %q", captured.SearchDepth)
	}
	if captured.MaxResults != 5 {
		t.Errorf("expected max_results 5, got %d", captured.MaxResults)
	}
}

func TestClient_EmptyQuery(t *testing.T) {
	client, _ := NewClient(Options{APIKey: "k"})
	if _, err := client.Search(context.Background(), "  "); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestClient_RetryOnServerError(t *testing.T) {
	original := searchSleepFunc
	searchSleepFunc = func(time.Duration) {}
	defer func() { searchSleepFunc = original }()

	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"query": "q", "results": [{"title": "T", "url": "https://example.com", "content": "C"}]}`))
	}))
	defer server.Close()

	client, _ := NewClient(Options{APIKey: "k", BaseURL: server.URL})
	resp, err := client.Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if len(resp.Results) != 1 {
		t.Errorf("expected 1 result, got %d", len(resp.Results))
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestClient_NoRetryOnClientError(t *testing.T) {
	original := searchSleepFunc
	searchSleepFunc = func(time.Duration) {}
	defer func() { searchSleepFunc = original }()

	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "invalid query"}`))
	}))
	defer server.Close()

	client, _ := NewClient(Options{APIKey: "k", BaseURL: server.URL})
	_, err := client.Search(context.Background(), "q")
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if !strings.Contains(err.Error(), "invalid query") {
		t.Errorf("expected API detail in error, got %v", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("expected 1 attempt (no retry on 400), got %d", got)
	}
}

func TestClient_ResponseBodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"query": "q", "results": [{"title": "T", "url": "https://example.com", "content": "`))
		_, _ = w.Write([]byte(strings.Repeat("a", 8192)))
		_, _ = w.Write([]byte(`"}]}`))
	}))
	defer server.Close()

	client, _ := NewClient(Options{APIKey: "k", BaseURL: server.URL, MaxBodyBytes: 1024})
	if _, err := client.Search(context.Background(), "q"); err == nil {
		t.Error("expected error for response exceeding the body limit")
	}
}

func TestClient_CacheHit(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"query": "cached", "results": [{"title": "T", "url": "https://example.com", "content": "C"}]}`))
	}))
	defer server.Close()

	store := cache.NewMemoryCache(time.Minute, time.Minute)
	client, _ := NewClient(Options{APIKey: "k", BaseURL: server.URL, Cache: store, CacheTTL: time.Minute})

	for i := 0; i < 3; i++ {
		resp, err := client.Search(context.Background(), "cached")
		if err != nil {
			t.Fatalf("search %d: %v", i, err)
		}
		if len(resp.Results) != 1 {
			t.Fatalf("search %d: expected 1 result, got %d", i, len(resp.Results))
		}
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected 1 upstream call with cache, got %d", got)
	}
}

func TestClient_SnippetSanitized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"query": "q", "results": [{"title": "T", "url": "https://example.com", "content": "<b>Bold</b> claim <script>alert(1)</script>here"}]}`))
	}))
	defer server.Close()

	client, _ := NewClient(Options{APIKey: "k", BaseURL: server.URL})
	resp, err := client.Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	content := resp.Results[0].Content
	if strings.Contains(content, "<") || strings.Contains(content, "alert") {
		t.Errorf("expected sanitized snippet, got %q", content)
	}
	if !strings.Contains(content, "Bold") {
		t.Errorf("expected text content preserved, got %q", content)
	}
}
