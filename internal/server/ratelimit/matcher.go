package ratelimit

import (
	"path"
	"strings"
)

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Exact patterns win over "*" segment patterns, which win over "/"-suffixed prefixes.
// Returns nil if nothing matches.
func MatchEndpoint(requestPath string, method string, configs []EndpointConfig) *EndpointConfig {
	// Health checks are unlimited
	if requestPath == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && config.Path == requestPath {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method != method || !strings.Contains(config.Path, "*") {
			continue
		}
		if ok, err := path.Match(config.Path, requestPath); err == nil && ok {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(requestPath, config.Path) {
			return config
		}
	}

	return nil
}
