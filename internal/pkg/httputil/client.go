// Package httputil provides helpers for reading client details from HTTP requests.
package httputil

import "strings"

// UnknownClient is used when a request carries no client address or user agent
const UnknownClient = "unknown"

// FirstForwardedIP returns the first address of an X-Forwarded-For header value
func FirstForwardedIP(forwardedFor string) string {
	first, _, _ := strings.Cut(forwardedFor, ",")
	first = strings.TrimSpace(first)
	if first == "" {
		return UnknownClient
	}
	return first
}

// UserAgentOrUnknown returns ua, or UnknownClient when it is blank
func UserAgentOrUnknown(ua string) string {
	if strings.TrimSpace(ua) == "" {
		return UnknownClient
	}
	return ua
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header value
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
