package config

import (
	"net/url"
	"strings"
)

const (
	apiPath          = "/api"
	localServicePort = "5000"
	localServiceURL  = "http://localhost:5000/api"
)

// ResolveAPIBase picks the note API base for a client that considers itself
// served from origin:
//
//   - localhost:5000 is the service itself, so the API is same-origin;
//   - any other local port talks to the local service;
//   - a host inside the configured remote domain uses the remote URL;
//   - everything else is same-origin.
func ResolveAPIBase(origin string, service ServiceConfig) string {
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return sameOrigin(origin)
	}
	host := strings.ToLower(parsed.Hostname())
	port := parsed.Port()

	if host == "localhost" && port == localServicePort {
		return sameOrigin(origin)
	}
	if host == "localhost" || host == "127.0.0.1" {
		return localServiceURL
	}
	domain := strings.ToLower(strings.TrimSpace(service.RemoteDomain))
	if domain != "" && strings.Contains(host, domain) {
		if remote := strings.TrimRight(strings.TrimSpace(service.RemoteURL), "/"); remote != "" {
			return remote
		}
	}
	return sameOrigin(origin)
}

func sameOrigin(origin string) string {
	if origin == "" {
		return apiPath
	}
	return origin + apiPath
}
