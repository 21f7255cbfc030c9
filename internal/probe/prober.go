package probe

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/avolkov/claimlens/internal/cache"
	"github.com/avolkov/claimlens/internal/model"
	"github.com/avolkov/claimlens/internal/util"
)

const probeMaxRetries = 3

// probeSleepFunc is the sleep function used between retries (injectable for tests)
var probeSleepFunc = time.Sleep

// Prober checks accessibility of cited source URLs concurrently.
// A verdict that rests on dead links deserves less trust than one
// backed by reachable primary sources.
type Prober struct {
	httpClient *http.Client
	maxWorkers int
	authority  *AuthorityClassifier
	robots     *util.RobotsChecker // nil disables robots.txt checks
	userAgent  string
	store      cache.Cache // nil disables caching
	cacheTTL   time.Duration
}

// Options configures a Prober
type Options struct {
	Timeout     time.Duration
	MaxWorkers  int
	UserAgent   string
	Sources     *model.SourcesConfig
	HTTPProxy   string
	HTTPSProxy  string
	NoProxy     string
	InsecureTLS bool
	Cache       cache.Cache
	CacheTTL    time.Duration
}

// NewProber creates a new prober
func NewProber(opts Options) *Prober {
	maxWorkers := opts.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 20
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	var robots *util.RobotsChecker
	if opts.Sources == nil || opts.Sources.RespectRobots {
		robots = util.NewRobotsChecker(opts.UserAgent, timeout)
	}

	transport := &http.Transport{
		Proxy: util.NewProxyFunc(opts.HTTPProxy, opts.HTTPSProxy, opts.NoProxy),
	}
	if opts.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Prober{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		maxWorkers: maxWorkers,
		authority:  NewAuthorityClassifier(opts.Sources),
		robots:     robots,
		userAgent:  opts.UserAgent,
		store:      opts.Cache,
		cacheTTL:   opts.CacheTTL,
	}
}

// ProbeAll probes all URLs concurrently, preserving input order
func (p *Prober) ProbeAll(ctx context.Context, urls []string) []model.SourceCheck {
	if len(urls) == 0 {
		return []model.SourceCheck{}
	}

	results := make([]model.SourceCheck, len(urls))
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, p.maxWorkers)

	for i, u := range urls {
		wg.Add(1)
		go func(idx int, rawURL string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = model.SourceCheck{
					URL:   rawURL,
					Error: "context cancelled",
				}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = p.probeWithRetry(ctx, rawURL)
		}(i, u)
	}

	wg.Wait()
	return results
}

// probeWithRetry retries transient failures with exponential backoff.
// Conclusive results are cached so repeated checks citing the same URL
// probe it once.
func (p *Prober) probeWithRetry(ctx context.Context, rawURL string) model.SourceCheck {
	key := cache.ProbeKey(rawURL)
	if p.store != nil {
		if data, found := p.store.Get(key); found {
			var cached model.SourceCheck
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached
			}
		}
	}

	var result model.SourceCheck
	for attempt := 0; attempt < probeMaxRetries; attempt++ {
		result = p.probeSingle(ctx, rawURL)
		if !isRetryableCheck(result) {
			break
		}
		if attempt < probeMaxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			probeSleepFunc(backoff)
		}
	}

	if p.store != nil && ctx.Err() == nil && !isRetryableCheck(result) {
		if data, err := json.Marshal(result); err == nil {
			_ = p.store.Set(key, data, p.cacheTTL)
		}
	}

	return result
}

// probeSingle probes one URL with a HEAD request
func (p *Prober) probeSingle(ctx context.Context, rawURL string) model.SourceCheck {
	result := model.SourceCheck{
		URL:       rawURL,
		Authority: p.authority.Classify(rawURL),
	}

	if p.robots != nil && !p.robots.IsAllowed(ctx, rawURL) {
		// Respect the site's wishes; classify but don't probe
		result.Error = "disallowed by robots.txt"
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		result.Error = fmt.Sprintf("create request: %v", err)
		result.IsDead = true
		return result
	}

	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		result.IsDead = true
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		result.IsAccessible = true
	} else if resp.StatusCode == 404 || resp.StatusCode == 410 {
		result.IsDead = true
	}

	return result
}

// isRetryableCheck returns true for results that indicate transient failures
func isRetryableCheck(result model.SourceCheck) bool {
	if result.StatusCode >= 500 && result.StatusCode < 600 {
		return true
	}
	if result.StatusCode == 429 {
		return true
	}
	if result.Error != "" && isRetryableNetworkError(result.Error) {
		return true
	}
	return false
}

// isRetryableNetworkError checks error strings for transient network failures
func isRetryableNetworkError(errMsg string) bool {
	s := strings.ToLower(errMsg)
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}
