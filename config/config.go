package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Fetch     FetchConfig
	Analyzer  AnalyzerConfig
	Store     StoreConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Batch     BatchConfig
	Log       LogConfig
	Stripe    StripeConfig
	Mail      MailConfig
	Leads     LeadsConfig
	LLM       LLMConfig
	Webhook   WebhookConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// FetchConfig controls page fetching and resource probing.
type FetchConfig struct {
	// Timeout is the deadline for fetching the main document.
	Timeout time.Duration // default: 10s

	// ProbeTimeout is the deadline for a single resource HEAD probe.
	ProbeTimeout time.Duration // default: 5s

	// Proxy is an optional proxy URL applied to all outbound fetches.
	Proxy string
}

// AnalyzerConfig controls signal extraction and the speed budgets.
// Each missed budget costs 20 performance points.
type AnalyzerConfig struct {
	// ProbeWorkers bounds the concurrent resource-size probes per scan.
	ProbeWorkers int // default: 10

	// MaxResources caps how many discovered resources are probed.
	MaxResources int // default: 200

	TTFBBudgetMs    int64 // default: 200
	TotalBudgetMs   int64 // default: 3000
	ResourceBudget  int   // default: 50
	SizeBudgetBytes int64 // default: 5000000
}

// StoreConfig controls the SQLite history store.
type StoreConfig struct {
	// Path is the database file location.
	Path string // default: "rankscore.db"
}

// SessionConfig controls pro sessions created by access-code redemption.
type SessionConfig struct {
	// TTL is how long a redeemed session token stays valid.
	TTL time.Duration // default: 24h
}

// RateLimitConfig controls per-identity rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per session token or IP.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per identity.
	Burst int // default: 10
}

// CacheConfig controls the analysis response cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached analyses.
	MaxEntries int // default: 1000
}

// BatchConfig controls multi-URL batch analysis jobs.
type BatchConfig struct {
	// MaxURLs is the maximum number of URLs accepted per batch.
	MaxURLs int // default: 20

	// Concurrency bounds how many URLs are analyzed at once.
	Concurrency int // default: 5
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// StripeConfig controls checkout sessions and webhook verification.
// Stripe keys keep their conventional variable names.
type StripeConfig struct {
	SecretKey     string // STRIPE_SECRET_KEY
	PriceID       string // STRIPE_PRICE_ID
	WebhookSecret string // STRIPE_WEBHOOK_SECRET
	SuccessURL    string // default: "https://rankscore.ai/success"
	CancelURL     string // default: "https://rankscore.ai/cancel"
}

// MailConfig controls access-code delivery over SMTP.
type MailConfig struct {
	Host     string // default: "smtp.gmail.com"
	Port     int    // default: 465 (implicit SSL)
	Sender   string
	Password string
}

// LeadsConfig controls the Google Sheets lead sink.
type LeadsConfig struct {
	// CredentialsFile is the path to a service-account JSON key.
	CredentialsFile string // default: "credentials.json"

	// SpreadsheetID is the target spreadsheet. Empty disables the sink.
	SpreadsheetID string

	// Range is the A1 range rows are appended to.
	Range string // default: "Leads!A:C"
}

// LLMConfig controls the optional report summary writer. An empty APIKey
// disables the summary block.
type LLMConfig struct {
	APIKey  string
	Model   string // default: "gpt-4o-mini"
	BaseURL string // default: "https://api.openai.com/v1"
}

// WebhookConfig controls outbound event delivery. An empty URL disables it.
type WebhookConfig struct {
	URL    string
	Secret string
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("RANKSCORE_HOST", "0.0.0.0"),
			Port: envIntOr("RANKSCORE_PORT", 8080),
			Mode: envOr("RANKSCORE_MODE", "release"),
		},
		Fetch: FetchConfig{
			Timeout:      envDurationOr("RANKSCORE_FETCH_TIMEOUT", 10*time.Second),
			ProbeTimeout: envDurationOr("RANKSCORE_PROBE_TIMEOUT", 5*time.Second),
			Proxy:        os.Getenv("RANKSCORE_PROXY"),
		},
		Analyzer: AnalyzerConfig{
			ProbeWorkers:    envIntOr("RANKSCORE_PROBE_WORKERS", 10),
			MaxResources:    envIntOr("RANKSCORE_MAX_RESOURCES", 200),
			TTFBBudgetMs:    envInt64Or("RANKSCORE_TTFB_BUDGET_MS", 200),
			TotalBudgetMs:   envInt64Or("RANKSCORE_TOTAL_BUDGET_MS", 3000),
			ResourceBudget:  envIntOr("RANKSCORE_RESOURCE_BUDGET", 50),
			SizeBudgetBytes: envInt64Or("RANKSCORE_SIZE_BUDGET_BYTES", 5_000_000),
		},
		Store: StoreConfig{
			Path: envOr("RANKSCORE_DB_PATH", "rankscore.db"),
		},
		Session: SessionConfig{
			TTL: envDurationOr("RANKSCORE_SESSION_TTL", 24*time.Hour),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("RANKSCORE_RATE_RPS", 5.0),
			Burst:             envIntOr("RANKSCORE_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("RANKSCORE_CACHE_MAX_ENTRIES", 1000),
		},
		Batch: BatchConfig{
			MaxURLs:     envIntOr("RANKSCORE_BATCH_MAX_URLS", 20),
			Concurrency: envIntOr("RANKSCORE_BATCH_CONCURRENCY", 5),
		},
		Log: LogConfig{
			Level:  envOr("RANKSCORE_LOG_LEVEL", "info"),
			Format: envOr("RANKSCORE_LOG_FORMAT", "json"),
		},
		Stripe: StripeConfig{
			SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
			PriceID:       envOr("STRIPE_PRICE_ID", "price_1R0skJFAFoWFp1B2AVfYvzAV"),
			WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
			SuccessURL:    envOr("RANKSCORE_CHECKOUT_SUCCESS_URL", "https://rankscore.ai/success"),
			CancelURL:     envOr("RANKSCORE_CHECKOUT_CANCEL_URL", "https://rankscore.ai/cancel"),
		},
		Mail: MailConfig{
			Host:     envOr("RANKSCORE_SMTP_HOST", "smtp.gmail.com"),
			Port:     envIntOr("RANKSCORE_SMTP_PORT", 465),
			Sender:   os.Getenv("RANKSCORE_MAIL_SENDER"),
			Password: os.Getenv("RANKSCORE_MAIL_PASSWORD"),
		},
		Leads: LeadsConfig{
			CredentialsFile: envOr("RANKSCORE_SHEETS_CREDENTIALS", "credentials.json"),
			SpreadsheetID:   os.Getenv("RANKSCORE_SHEETS_ID"),
			Range:           envOr("RANKSCORE_SHEETS_RANGE", "Leads!A:C"),
		},
		LLM: LLMConfig{
			APIKey:  os.Getenv("RANKSCORE_LLM_API_KEY"),
			Model:   envOr("RANKSCORE_LLM_MODEL", "gpt-4o-mini"),
			BaseURL: envOr("RANKSCORE_LLM_BASE_URL", "https://api.openai.com/v1"),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("RANKSCORE_WEBHOOK_URL"),
			Secret: os.Getenv("RANKSCORE_WEBHOOK_SECRET"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envInt64Or(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

