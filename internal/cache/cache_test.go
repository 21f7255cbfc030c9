package cache

import (
	"strings"
	"testing"
	"time"
)

func TestSearchKey_DepthMatters(t *testing.T) {
	basic := SearchKey("population of tokyo", "basic")
	advanced := SearchKey("population of tokyo", "advanced")

	if basic == advanced {
		t.Error("expected different keys for different depths")
	}
	if !strings.HasPrefix(basic, "claimlens:v1:search:") {
		t.Errorf("unexpected key prefix: %q", basic)
	}
}

func TestSearchKey_Deterministic(t *testing.T) {
	a := SearchKey("query", "advanced")
	b := SearchKey("query", "advanced")
	if a != b {
		t.Error("expected deterministic keys")
	}
}

func TestProbeKey(t *testing.T) {
	a := ProbeKey("https://example.com/page")
	b := ProbeKey("https://example.com/other")
	if a == b {
		t.Error("expected different keys for different URLs")
	}
	if !strings.HasPrefix(a, "claimlens:v1:probe:") {
		t.Errorf("unexpected key prefix: %q", a)
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set("key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, found := c.Get("key")
	if !found {
		t.Fatal("expected hit after set")
	}
	if string(val) != "value" {
		t.Errorf("expected value, got %q", val)
	}

	if err := c.Delete("key"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, found := c.Get("key"); found {
		t.Error("expected miss after delete")
	}
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_ = c.Set("short", []byte("v"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("short"); found {
		t.Error("expected expiry after TTL")
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set(SearchKey("q", "advanced"), []byte("payload"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, found := c.Get(SearchKey("q", "advanced"))
	if !found {
		t.Fatal("expected hit after set")
	}
	if string(val) != "payload" {
		t.Errorf("expected payload, got %q", val)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	_ = c.Set("key", []byte("v"), -time.Second)
	if _, found := c.Get("key"); found {
		t.Error("expected expired entry to miss")
	}
}

func TestDiskCache_DefaultTTL(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	// ttl=0 falls back to the cache default
	if err := c.Set("key", []byte("v"), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if _, found := c.Get("key"); !found {
		t.Error("expected hit with default TTL")
	}
}

func TestLayeredCache_DiskPromotion(t *testing.T) {
	dir := t.TempDir()
	layered := NewLayeredCache(time.Minute, dir, time.Hour)

	if err := layered.Set("key", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	// Simulate a restart: fresh layered cache over the same disk dir
	restarted := NewLayeredCache(time.Minute, dir, time.Hour)
	val, found := restarted.Get("key")
	if !found {
		t.Fatal("expected disk hit after restart")
	}
	if string(val) != "v" {
		t.Errorf("expected v, got %q", val)
	}

	// The value should now be promoted to memory
	if val, found := restarted.memory.Get("key"); !found || string(val) != "v" {
		t.Error("expected promotion to memory layer")
	}
}

func TestLayeredCache_MemoryTTLIndependent(t *testing.T) {
	layered := NewLayeredCache(20*time.Millisecond, t.TempDir(), time.Hour)

	if err := layered.Set("key", []byte("v"), time.Hour); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	time.Sleep(60 * time.Millisecond)

	// The long disk TTL must not pin the entry in memory
	if _, found := layered.memory.Get("key"); found {
		t.Error("expected memory entry to expire on the memory TTL")
	}
	if val, found := layered.Get("key"); !found || string(val) != "v" {
		t.Errorf("expected disk layer to still serve the value, got %q (found=%v)", val, found)
	}
}

func TestLayeredCache_Clear(t *testing.T) {
	layered := NewLayeredCache(time.Minute, t.TempDir(), time.Hour)

	_ = layered.Set("key", []byte("v"), time.Minute)
	if err := layered.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, found := layered.Get("key"); found {
		t.Error("expected miss after clear")
	}
}
