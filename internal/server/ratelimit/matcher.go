package ratelimit

import (
	"strings"
)

// UnlimitedRoutes are never rate limited: liveness probes and the long-lived preview stream
var UnlimitedRoutes = []string{"GET /health", "GET /preview/stream"}

// splitRoute splits a "METHOD /path" route into its parts
func splitRoute(route string) (method, path string) {
	method, path, ok := strings.Cut(route, " ")
	if !ok {
		return "", route
	}
	return method, path
}

// routeMatches reports whether route covers the request. A route path ending in "/"
// covers every path below it.
func routeMatches(route, method, path string) bool {
	m, p := splitRoute(route)
	if m != "" && m != method {
		return false
	}
	if strings.HasSuffix(p, "/") {
		return strings.HasPrefix(path, p)
	}
	return p == path
}

// MatchEndpoint returns the configuration limiting the request, or nil when none of
// configs covers it. Exact routes win over prefix routes. Unlimited routes match a
// zero-limit configuration.
func MatchEndpoint(method, path string, configs []EndpointConfig) *EndpointConfig {
	for _, route := range UnlimitedRoutes {
		if routeMatches(route, method, path) {
			return &EndpointConfig{Route: route}
		}
	}

	var prefix *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if !routeMatches(c.Route, method, path) {
			continue
		}
		if _, p := splitRoute(c.Route); !strings.HasSuffix(p, "/") {
			return c
		}
		if prefix == nil || len(c.Route) > len(prefix.Route) {
			prefix = c
		}
	}
	return prefix
}
