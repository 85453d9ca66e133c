package truenasapi

import "strings"

const apiPath = "/api/current"

// Endpoint normalizes a host given as a bare hostname/IP or an http(s)/ws(s)
// URL into the websocket address of the middleware API. Bare hosts and
// https:// map to wss://, http:// maps to ws://, explicit ws(s):// passes
// through. The /api/current suffix is appended exactly once.
func Endpoint(host string) string {
	base := wsBase(host)
	if strings.HasSuffix(base, apiPath) {
		return base
	}
	return base + apiPath
}

// HTTPBase normalizes a host into the http(s) base address downloads are
// served from, with no trailing slash.
func HTTPBase(host string) string {
	h := strings.TrimSpace(host)
	switch {
	case strings.HasPrefix(h, "http://"), strings.HasPrefix(h, "https://"):
		return strings.TrimRight(h, "/")
	case strings.HasPrefix(h, "ws://"):
		return "http://" + strings.TrimRight(strings.TrimPrefix(h, "ws://"), "/")
	case strings.HasPrefix(h, "wss://"):
		return "https://" + strings.TrimRight(strings.TrimPrefix(h, "wss://"), "/")
	}
	return "https://" + h
}

func wsBase(host string) string {
	h := strings.TrimSpace(host)
	switch {
	case strings.HasPrefix(h, "ws://"), strings.HasPrefix(h, "wss://"):
		return strings.TrimRight(h, "/")
	case strings.HasPrefix(h, "http://"):
		return "ws://" + strings.TrimRight(strings.TrimPrefix(h, "http://"), "/")
	case strings.HasPrefix(h, "https://"):
		return "wss://" + strings.TrimRight(strings.TrimPrefix(h, "https://"), "/")
	}
	// Bare host/IP defaults to TLS.
	return "wss://" + h
}
