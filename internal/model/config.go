package model

import "time"

// Config is the complete claimlens configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Search      SearchConfig      `yaml:"search" mapstructure:"search"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Sources     SourcesConfig     `yaml:"sources" mapstructure:"sources"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls outbound HTTP behavior shared by API clients and probes
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// ServerConfig controls the web server surface
type ServerConfig struct {
	BindAddr       string        `yaml:"bind_addr" mapstructure:"bind_addr"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
}

// LLMConfig holds language-model provider configuration
type LLMConfig struct {
	Provider     string `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama
	Model        string `yaml:"model" mapstructure:"model"`
	APIKey       string `yaml:"-" mapstructure:"-"` // Always from environment, never serialized
	BaseURL      string `yaml:"base_url" mapstructure:"base_url"`
	Timeout      int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens    int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	MaxTextChars int    `yaml:"max_text_chars" mapstructure:"max_text_chars"` // Document prefix sent for claim extraction
}

// SearchConfig holds web-search (Tavily) configuration
type SearchConfig struct {
	APIKey          string        `yaml:"-" mapstructure:"-"` // TAVILY_API_KEY
	BaseURL         string        `yaml:"base_url" mapstructure:"base_url"`
	Depth           string        `yaml:"depth" mapstructure:"depth"` // "basic" or "advanced"
	MaxResults      int           `yaml:"max_results" mapstructure:"max_results"`
	MaxSources      int           `yaml:"max_sources" mapstructure:"max_sources"` // Results passed to the verifier
	SnippetMaxChars int           `yaml:"snippet_max_chars" mapstructure:"snippet_max_chars"`
	Timeout         time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// CacheConfig controls search-result caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig bounds parallel work
type ConcurrencyConfig struct {
	VerifyWorkers int     `yaml:"verify_workers" mapstructure:"verify_workers"` // Concurrent claim verifications
	ProbeWorkers  int     `yaml:"probe_workers" mapstructure:"probe_workers"`   // Concurrent source probes
	RatePerHost   float64 `yaml:"rate_per_host" mapstructure:"rate_per_host"`   // Requests/second per host
	Burst         int     `yaml:"burst" mapstructure:"burst"`
}

// SourcesConfig controls cited-source probing and authority classification
type SourcesConfig struct {
	Probe            bool          `yaml:"probe" mapstructure:"probe"`
	RespectRobots    bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	ProbeTimeout     time.Duration `yaml:"probe_timeout" mapstructure:"probe_timeout"`
	PrimaryDomains   []string      `yaml:"primary_domains" mapstructure:"primary_domains"`
	SecondaryDomains []string      `yaml:"secondary_domains" mapstructure:"secondary_domains"`
	PathPatterns     []PathPattern `yaml:"path_patterns" mapstructure:"path_patterns"`
}

// PathPattern maps a URL path regex to an authority tier
type PathPattern struct {
	Pattern string `yaml:"pattern" mapstructure:"pattern"`
	Tier    string `yaml:"tier" mapstructure:"tier"` // "primary", "secondary", "tertiary"
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Claimlens/0.1 (+https://github.com/avolkov/claimlens)",
			MaxBodyBytes: 2_000_000,
		},
		Server: ServerConfig{
			BindAddr:       "0.0.0.0:8080",
			MaxUploadBytes: 200 << 20, // 200MB upload ceiling
			RequestTimeout: 5 * time.Minute,
		},
		LLM: LLMConfig{
			Provider:     "openai",
			Model:        "gpt-4o-mini",
			Timeout:      60,
			MaxTokens:    2000,
			MaxTextChars: 8000,
		},
		Search: SearchConfig{
			BaseURL:         "https://api.tavily.com",
			Depth:           "advanced",
			MaxResults:      5,
			MaxSources:      3,
			SnippetMaxChars: 500,
			Timeout:         30 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			VerifyWorkers: 4,
			ProbeWorkers:  20,
			RatePerHost:   1.0,
			Burst:         5,
		},
		Sources: SourcesConfig{
			Probe:         true,
			RespectRobots: true,
			ProbeTimeout:  10 * time.Second,
			PrimaryDomains: []string{
				"data.gov", "census.gov", "bls.gov", "sec.gov", "who.int",
				"un.org", "europa.eu", "nature.com", "science.org", "arxiv.org",
				"worldbank.org", "imf.org", "oecd.org",
			},
			SecondaryDomains: []string{
				"britannica.com", "reuters.com", "apnews.com", "bbc.com",
				"nytimes.com", "economist.com", "wikipedia.org", "bloomberg.com",
				"statista.com",
			},
			PathPatterns: []PathPattern{
				{Pattern: `/doi/`, Tier: "primary"},
				{Pattern: `/statistics/`, Tier: "secondary"},
				{Pattern: `/blog/`, Tier: "tertiary"},
			},
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

func defaultCacheDir() string {
	return ".claimlens-cache"
}
