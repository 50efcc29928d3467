package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix prefixes the rate limit environment variables.
const EnvPrefix = "RESUME_STUDIO_RATE_LIMIT_"

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path; a trailing "/" matches by prefix
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !getEnvBool(EnvPrefix+"ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt(EnvPrefix+"DEFAULT_LIMIT", 600),
		DefaultWindow:   getEnvDuration(EnvPrefix+"DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration(EnvPrefix+"CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv(EnvPrefix + "WHITELIST")),
		EndpointConfigs: DefaultEndpointConfigs(getEnvInt(EnvPrefix+"PDF_LIMIT", 6)),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific limits. pdfPerMinute
// bounds PDF exports, each of which launches a headless browser. Field edits
// are unlimited: a rejected blur would lose typed text.
func DefaultEndpointConfigs(pdfPerMinute int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/export/pdf", Method: "GET", Limit: pdfPerMinute, Window: time.Minute, Burst: 2},
		{Path: "/api/fields", Method: "POST"},
		{Path: "/api/", Method: "POST", Limit: 300, Window: time.Minute, Burst: 60},
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
