package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule limits requests whose method and path match. Pattern segments written
// as {name} match any single path segment.
type Rule struct {
	Method  string
	Pattern string
	Limit   int           // Maximum requests per window; 0 means unlimited
	Window  time.Duration // Time window
	Burst   int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	Rules           []Rule
}

// DefaultConfig returns the built-in limits with no environment overrides.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		Rules:           DefaultRules(),
	}
}

// LoadConfig loads rate limiting configuration from RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = getEnvBool("RATE_LIMIT_ENABLED", cfg.Enabled)
	cfg.DefaultLimit = getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.Whitelist = parseIPList(os.Getenv("RATE_LIMIT_WHITELIST"))
	cfg.Blacklist = parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST"))
	return cfg
}

// DefaultRules returns the per-endpoint limits. Anything unmatched falls back
// to the default limit.
func DefaultRules() []Rule {
	return []Rule{
		// Health checks are never limited
		{Method: "GET", Pattern: "/health", Limit: 0},

		// Exports start a headless browser or build whole documents
		{Method: "GET", Pattern: "/export/pdf", Limit: 10, Window: time.Minute, Burst: 2},
		{Method: "GET", Pattern: "/export/html", Limit: 60, Window: time.Minute, Burst: 10},
		{Method: "GET", Pattern: "/export/text", Limit: 60, Window: time.Minute, Burst: 10},

		// Every write re-renders and persists
		{Method: "PUT", Pattern: "/fields", Limit: 300, Window: time.Minute, Burst: 30},
		{Method: "PUT", Pattern: "/template", Limit: 100, Window: time.Minute, Burst: 10},
		{Method: "PUT", Pattern: "/customizations", Limit: 100, Window: time.Minute, Burst: 10},
		{Method: "POST", Pattern: "/sections", Limit: 100, Window: time.Minute, Burst: 10},
		{Method: "DELETE", Pattern: "/sections/{name}", Limit: 100, Window: time.Minute, Burst: 10},
		{Method: "POST", Pattern: "/sections/{index}/up", Limit: 300, Window: time.Minute, Burst: 30},
		{Method: "POST", Pattern: "/sections/{index}/down", Limit: 300, Window: time.Minute, Burst: 30},
		{Method: "POST", Pattern: "/theme/toggle", Limit: 100, Window: time.Minute, Burst: 10},
		{Method: "PUT", Pattern: "/theme", Limit: 100, Window: time.Minute, Burst: 10},
	}
}

// ruleFor returns the first rule matching the request, or the default limit.
// The returned key identifies the bucket shared by all requests of that rule.
func (c *Config) ruleFor(method, path string) (Rule, string) {
	for _, r := range c.Rules {
		if r.Method == method && matchPattern(r.Pattern, path) {
			return r, r.Method + " " + r.Pattern
		}
	}
	return Rule{Limit: c.DefaultLimit, Window: c.DefaultWindow, Burst: c.DefaultLimit}, "default"
}

// matchPattern compares path with pattern segment by segment
func matchPattern(pattern, path string) bool {
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")
	if len(want) != len(got) {
		return false
	}
	for i, seg := range want {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if got[i] == "" {
				return false
			}
			continue
		}
		if seg != got[i] {
			return false
		}
	}
	return true
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
