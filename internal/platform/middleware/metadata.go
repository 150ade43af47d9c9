package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"paperflow/pkg/requestcontext"
)

// ClientMetadata extracts the client IP and a parsed User-Agent summary and
// adds them to the context for audit enrichment. Apply early in the chain.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIPFromRequest(r)
		ua := ParseUserAgent(r.Header.Get("User-Agent"))
		ctx := requestcontext.WithClientMetadata(r.Context(), ip, ua)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ParseUserAgent condenses a raw User-Agent header into a short display
// string like "Chrome on Mac OS X". Unknown agents degrade gracefully.
func ParseUserAgent(raw string) string {
	if raw == "" {
		return "Unknown Device"
	}
	ua := useragent.New(raw)
	name, _ := ua.Browser()
	os := ua.OS()
	if name == "" {
		name = "Unknown Browser"
	}
	if os == "" {
		os = "Unknown OS"
	}
	return fmt.Sprintf("%s on %s", name, os)
}

// ClientIPFromRequest extracts the real client IP, handling proxies and load balancers.
func ClientIPFromRequest(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs; the first is the client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr is "ip:port" (or "[::1]:port" for IPv6).
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return addr[:idx]
		}
		return addr
	}

	return "unknown"
}
