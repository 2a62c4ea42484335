package ratelimit

import (
	"time"
)

// EndpointConfig limits one route. Requests matched by the same route share a bucket per client.
type EndpointConfig struct {
	Route  string        // "METHOD /path"; a trailing slash covers every path below it
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig builds a configuration where assistant turns are limited to
// chatPerMinute with the given burst, and everything else uses a lenient default.
func NewConfig(enabled bool, chatPerMinute, burst int) *Config {
	return &Config{
		Enabled:         enabled,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(chatPerMinute, burst),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs(chatPerMinute, burst int) []EndpointConfig {
	return []EndpointConfig{
		// Model calls (strictest)
		{Route: "POST /chat", Limit: chatPerMinute, Window: time.Minute, Burst: burst},

		// PDF generation
		{Route: "GET /export.pdf", Limit: 30, Window: time.Minute, Burst: 5},
	}
}
