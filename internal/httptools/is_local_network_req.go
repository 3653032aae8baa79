package httptools

import "net/http"

// IsLocalNetworkReq reports whether r reached the admin server directly
// rather than through a reverse proxy.
func IsLocalNetworkReq(r *http.Request) bool {
	// Proxies set one of these
	if r.Header.Get("X-Real-IP") != "" || r.Header.Get("X-Forwarded-For") != "" {
		return false
	}
	return true
}
