package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avolkov/claimlens/internal/cache"
	"github.com/avolkov/claimlens/internal/model"
)

func newTestProber(t *testing.T) *Prober {
	t.Helper()
	cfg := &model.SourcesConfig{Probe: true, RespectRobots: false}
	return NewProber(Options{
		Timeout:    5 * time.Second,
		MaxWorkers: 4,
		UserAgent:  "claimlens-test/1.0",
		Sources:    cfg,
	})
}

func TestProbeAll_Accessible(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD request, got %s", r.Method)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	prober := newTestProber(t)
	checks := prober.ProbeAll(context.Background(), []string{server.URL})

	if len(checks) != 1 {
		t.Fatalf("expected 1 check, got %d", len(checks))
	}
	if !checks[0].IsAccessible {
		t.Error("expected accessible source")
	}
	if checks[0].IsDead {
		t.Error("did not expect dead source")
	}
	if checks[0].StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", checks[0].StatusCode)
	}
}

func TestProbeAll_DeadLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	prober := newTestProber(t)
	checks := prober.ProbeAll(context.Background(), []string{server.URL})

	if !checks[0].IsDead {
		t.Error("expected 404 to mark source dead")
	}
	if checks[0].IsAccessible {
		t.Error("did not expect accessible source")
	}
}

func TestProbeAll_PreservesOrder(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ok.Close()
	gone := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	}))
	defer gone.Close()

	prober := newTestProber(t)
	urls := []string{ok.URL + "/a", gone.URL + "/b", ok.URL + "/c"}
	checks := prober.ProbeAll(context.Background(), urls)

	if len(checks) != 3 {
		t.Fatalf("expected 3 checks, got %d", len(checks))
	}
	for i, u := range urls {
		if checks[i].URL != u {
			t.Errorf("position %d: expected %q, got %q", i, u, checks[i].URL)
		}
	}
	if !checks[1].IsDead {
		t.Error("expected 410 to mark source dead")
	}
}

func TestProbeAll_Empty(t *testing.T) {
	prober := newTestProber(t)
	checks := prober.ProbeAll(context.Background(), nil)
	if len(checks) != 0 {
		t.Errorf("expected no checks, got %d", len(checks))
	}
}

func TestProbeWithRetry_TransientServerError(t *testing.T) {
	original := probeSleepFunc
	probeSleepFunc = func(time.Duration) {}
	defer func() { probeSleepFunc = original }()

	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	prober := newTestProber(t)
	checks := prober.ProbeAll(context.Background(), []string{server.URL})

	if !checks[0].IsAccessible {
		t.Errorf("expected success after retries, got %+v", checks[0])
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestProbeWithRetry_NoRetryOn404(t *testing.T) {
	original := probeSleepFunc
	probeSleepFunc = func(time.Duration) {}
	defer func() { probeSleepFunc = original }()

	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	prober := newTestProber(t)
	prober.ProbeAll(context.Background(), []string{server.URL})

	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("expected 1 attempt for 404, got %d", got)
	}
}

func TestProbeWithRetry_CachesConclusiveResults(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := &model.SourcesConfig{Probe: true, RespectRobots: false}
	prober := NewProber(Options{
		Timeout:    5 * time.Second,
		MaxWorkers: 2,
		UserAgent:  "claimlens-test/1.0",
		Sources:    cfg,
		Cache:      cache.NewMemoryCache(time.Minute, time.Minute),
		CacheTTL:   time.Minute,
	})

	ctx := context.Background()
	prober.ProbeAll(ctx, []string{server.URL})
	checks := prober.ProbeAll(ctx, []string{server.URL})

	if !checks[0].IsAccessible {
		t.Errorf("expected cached result to stay accessible, got %+v", checks[0])
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("expected 1 upstream probe with caching, got %d", got)
	}
}

func TestProbeSingle_InsecureTLS(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := &model.SourcesConfig{Probe: true, RespectRobots: false}
	base := Options{
		Timeout:    5 * time.Second,
		MaxWorkers: 1,
		UserAgent:  "claimlens-test/1.0",
		Sources:    cfg,
	}

	strict := NewProber(base)
	checks := strict.ProbeAll(context.Background(), []string{server.URL})
	if checks[0].IsAccessible {
		t.Error("expected self-signed certificate to fail verification")
	}

	relaxed := base
	relaxed.InsecureTLS = true
	checks = NewProber(relaxed).ProbeAll(context.Background(), []string{server.URL})
	if !checks[0].IsAccessible {
		t.Errorf("expected probe to succeed with TLS verification off, got %+v", checks[0])
	}
}

func TestProbeSingle_ConnectionFailure(t *testing.T) {
	original := probeSleepFunc
	probeSleepFunc = func(time.Duration) {}
	defer func() { probeSleepFunc = original }()

	prober := newTestProber(t)
	checks := prober.ProbeAll(context.Background(), []string{"http://127.0.0.1:1/unreachable"})

	if !checks[0].IsDead {
		t.Error("expected connection failure to mark source dead")
	}
	if checks[0].Error == "" {
		t.Error("expected error message recorded")
	}
}

func TestIsRetryableCheck(t *testing.T) {
	cases := []struct {
		check model.SourceCheck
		want  bool
	}{
		{model.SourceCheck{StatusCode: 503}, true},
		{model.SourceCheck{StatusCode: 429}, true},
		{model.SourceCheck{StatusCode: 404}, false},
		{model.SourceCheck{StatusCode: 200}, false},
		{model.SourceCheck{Error: "request failed: connection refused"}, true},
		{model.SourceCheck{Error: "request failed: context deadline exceeded (Client.Timeout exceeded)"}, true},
		{model.SourceCheck{Error: "disallowed by robots.txt"}, false},
	}

	for _, tc := range cases {
		if got := isRetryableCheck(tc.check); got != tc.want {
			t.Errorf("isRetryableCheck(%+v) = %v, want %v", tc.check, got, tc.want)
		}
	}
}
